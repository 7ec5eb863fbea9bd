package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := configuration.GetDefaultRuntimeConfiguration()
	config.Subgraph.Endpoints[constants.SUBGRAPH_ENDPOINT_REFERRALS] = server.URL + "/referrals"
	client, err := InitClient(&config, nil)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestQuery(t *testing.T) {
	assert := assert.New(t)

	var received string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodPost, r.Method)
		assert.Equal("/referrals", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		request := graphqlRequest{}
		assert.Nil(json.Unmarshal(body, &request))
		received = request.Query
		w.Write([]byte(`{"data":{"affiliates":[{"id":"0x01","tierId":"2"}]}}`))
	})

	data, err := client.Query(context.Background(), constants.SUBGRAPH_ENDPOINT_REFERRALS, "{ affiliates { id tierId } }")
	assert.Nil(err)
	assert.Equal("{ affiliates { id tierId } }", received)
	assert.JSONEq(`{"affiliates":[{"id":"0x01","tierId":"2"}]}`, string(data))
}

func TestQuerySurfacesGraphqlErrors(t *testing.T) {
	assert := assert.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"indexing error"},{"message":"timeout"}]}`))
	})

	_, err := client.Query(context.Background(), constants.SUBGRAPH_ENDPOINT_REFERRALS, "{}")
	assert.True(errors.Is(err, constants.ErrIndexerQueryFailed))
	assert.ErrorContains(err, "indexing error; timeout")
}

func TestQueryFailures(t *testing.T) {
	assert := assert.New(t)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	_, err := client.Query(context.Background(), constants.SUBGRAPH_ENDPOINT_REFERRALS, "{}")
	assert.True(errors.Is(err, constants.ErrIndexerQueryFailed))
	assert.ErrorContains(err, "502")

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	_, err = client.Query(context.Background(), constants.SUBGRAPH_ENDPOINT_REFERRALS, "{}")
	assert.True(errors.Is(err, constants.ErrIndexerResponseInvalid))

	client.configuration.ChainId = configuration.LOCALHOST
	_, err = client.Query(context.Background(), constants.SUBGRAPH_ENDPOINT_STATS_V1, "{}")
	assert.True(errors.Is(err, constants.ErrUnsupportedChain))
}

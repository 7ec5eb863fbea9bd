package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/metrics"
)

const maxErrorBodyLength = 512

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

type Client struct {
	*http.Client
	configuration *configuration.RuntimeConfiguration
}

func InitClient(config *configuration.RuntimeConfiguration, httpClient *http.Client) (*Client, error) {
	if config == nil {
		return nil, errors.Join(constants.ErrIndexerLoadFailed, constants.ErrMissingConfiguration)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Subgraph.Timeout,
		}
	}
	return &Client{
		Client:        httpClient,
		configuration: config,
	}, nil
}

func (client *Client) GetId() string {
	return "SubgraphClient"
}

func (client *Client) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	return client.Do(request)
}

// Query posts the document to the endpoint's subgraph and returns the `data` object
func (client *Client) Query(ctx context.Context, endpoint string, query string) (json.RawMessage, error) {
	start := time.Now()
	data, err := client.query(ctx, endpoint, query)
	metrics.ObserveIndexerQuery(endpoint, time.Since(start).Seconds(), err)
	return data, err
}

func (client *Client) query(ctx context.Context, endpoint string, query string) (json.RawMessage, error) {
	url, err := client.configuration.GetSubgraphUrl(endpoint)
	if err != nil {
		return nil, errors.Join(constants.ErrIndexerQueryFailed, err)
	}
	body, err := json.Marshal(graphqlRequest{Query: query})
	if err != nil {
		return nil, errors.Join(constants.ErrIndexerQueryFailed, err)
	}

	slog.Debug("querying subgraph", "endpoint", endpoint, "url", url)
	resp, err := client.post(ctx, url, body)
	if err != nil {
		return nil, errors.Join(constants.ErrIndexerQueryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		content, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return nil, errors.Join(constants.ErrIndexerQueryFailed, fmt.Errorf("%s responded with %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(content))))
	}

	result := graphqlResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Join(constants.ErrIndexerResponseInvalid, err)
	}
	if len(result.Errors) > 0 {
		messages := lo.Map(result.Errors, func(e graphqlError, _ int) string { return e.Message })
		return nil, errors.Join(constants.ErrIndexerQueryFailed, fmt.Errorf("%s: %s", endpoint, strings.Join(messages, "; ")))
	}
	if len(result.Data) == 0 || string(result.Data) == "null" {
		return nil, errors.Join(constants.ErrIndexerResponseInvalid, fmt.Errorf("%s returned no data", endpoint))
	}
	return result.Data, nil
}

package configuration

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

func TestDefaultRuntimeConfigurationIsValid(t *testing.T) {
	assert := assert.New(t)
	configuration := GetDefaultRuntimeConfiguration()
	assert.Nil(configuration.Validate())
	assert.Equal(constants.PAYOUT_BATCH_SIZE, configuration.Distribution.BatchSize)
	assert.Equal(enums.STORE_KIND_FILE, configuration.Store.Kind)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	configuration := GetDefaultRuntimeConfiguration()
	configuration.Store.Kind = "postgres"
	assert.True(errors.Is(configuration.Validate(), constants.ErrConfigurationValidationFailed))

	configuration = GetDefaultRuntimeConfiguration()
	configuration.Store.Kind = enums.STORE_KIND_REDIS
	configuration.Store.Redis.Address = ""
	assert.ErrorContains(configuration.Validate(), "redis.address")

	configuration = GetDefaultRuntimeConfiguration()
	configuration.Distribution.BatchSize = -1
	assert.ErrorContains(configuration.Validate(), "batch_size")

	configuration = GetDefaultRuntimeConfiguration()
	configuration.Distribution.StatsPeriod = "last"
	assert.ErrorContains(configuration.Validate(), "stats_period")

	configuration = GetDefaultRuntimeConfiguration()
	configuration.AddressOverrides["router"] = common.Address{}
	assert.ErrorContains(configuration.Validate(), "unsupported contract name")
}

func TestGetAddress(t *testing.T) {
	assert := assert.New(t)
	configuration := GetDefaultRuntimeConfiguration()

	wnt, err := configuration.GetAddress(CONTRACT_WNT)
	assert.Nil(err)
	assert.Equal(common.HexToAddress("0x82af49447d8a07e3bd95bd0d56f35241523fbab1"), wnt)

	override := common.HexToAddress("0x2222222222222222222222222222222222222222")
	configuration.AddressOverrides[CONTRACT_WNT] = override
	wnt, err = configuration.GetAddress(CONTRACT_WNT)
	assert.Nil(err)
	assert.Equal(override, wnt)

	_, err = configuration.GetAddress("router")
	assert.True(errors.Is(err, constants.ErrUnsupportedContract))
}

func TestGetSubgraphUrl(t *testing.T) {
	assert := assert.New(t)
	configuration := GetDefaultRuntimeConfiguration()
	configuration.Subgraph.BaseUrl = "https://example.org/gmx/"

	url, err := configuration.GetSubgraphUrl(constants.SUBGRAPH_ENDPOINT_STATS_V2)
	assert.Nil(err)
	assert.Equal("https://example.org/gmx/synthetics-arbitrum-stats/api", url)

	configuration.Subgraph.Endpoints[constants.SUBGRAPH_ENDPOINT_REFERRALS] = "http://localhost:8000/referrals"
	url, err = configuration.GetSubgraphUrl(constants.SUBGRAPH_ENDPOINT_REFERRALS)
	assert.Nil(err)
	assert.Equal("http://localhost:8000/referrals", url)

	configuration.ChainId = LOCALHOST
	_, err = configuration.GetSubgraphUrl(constants.SUBGRAPH_ENDPOINT_STATS_V1)
	assert.True(errors.Is(err, constants.ErrUnsupportedChain))
}

package configuration

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	test_assert "github.com/stretchr/testify/assert"
	refpay_configuration "github.com/tez-capital/refpay/configuration/v"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

func TestConfigurationToRuntimeConfiguration(t *testing.T) {
	assert := test_assert.New(t)

	configuration := refpay_configuration.GetDefaultV0()
	configuration.Chain.ChainId = AVALANCHE
	configuration.Chain.Addresses = map[string]string{
		CONTRACT_FEE_DISTRIBUTOR: "0x1111111111111111111111111111111111111111",
		CONTRACT_WNT:             "not-an-address",
	}
	configuration.Distribution.DistributionId = "0x10"
	configuration.Distribution.BatchSize = 0
	configuration.Watch.IntervalSeconds = 30

	runtime, err := ConfigurationToRuntimeConfiguration(&configuration)
	assert.Nil(err)
	assert.Equal(AVALANCHE, runtime.ChainId)
	assert.Equal(common.HexToAddress("0x1111111111111111111111111111111111111111"), runtime.AddressOverrides[CONTRACT_FEE_DISTRIBUTOR])
	_, ok := runtime.AddressOverrides[CONTRACT_WNT]
	assert.False(ok)
	assert.Equal([]string{CONTRACT_WNT}, runtime.invalidAddressOverrides)
	assert.Equal(big.NewInt(16), runtime.Distribution.DistributionId)
	assert.Equal(constants.PAYOUT_BATCH_SIZE, runtime.Distribution.BatchSize)
	assert.Equal(30*time.Second, runtime.Watch.Interval)

	err = runtime.Validate()
	assert.True(errors.Is(err, constants.ErrConfigurationValidationFailed))
	assert.Contains(err.Error(), CONTRACT_WNT)
}

func TestConfigurationToRuntimeConfigurationRejectsInvalidValues(t *testing.T) {
	assert := test_assert.New(t)

	configuration := refpay_configuration.GetDefaultV0()
	configuration.Distribution.DistributionId = "abc"
	_, err := ConfigurationToRuntimeConfiguration(&configuration)
	assert.True(errors.Is(err, constants.ErrInvalidArgument))

	configuration = refpay_configuration.GetDefaultV0()
	configuration.DataStoreKeys.WntPrice = "0x1234"
	_, err = ConfigurationToRuntimeConfiguration(&configuration)
	assert.True(errors.Is(err, constants.ErrInvalidArgument))
}

func TestLoadFromString(t *testing.T) {
	assert := test_assert.New(t)
	t.Setenv(constants.RPC_URL_ENV, "http://127.0.0.1:8545")
	t.Setenv(constants.REDIS_PASSWORD_ENV, "")

	runtime, err := LoadFromString([]byte(`{
		# arbitrum deployment
		refpay_config_version: "0.1"
		chain: {
			chain_id: 42161
		}
		store: {
			kind: redis
			redis: {
				address: redis:6379
				db: 2
			}
		}
		distribution: {
			initial_from_timestamp: 1700006400
			should_send_txn: true
			distribution_id: "7"
		}
	}`))
	assert.Nil(err)
	assert.Equal(ARBITRUM, runtime.ChainId)
	assert.Equal("http://127.0.0.1:8545", runtime.RpcUrl)
	assert.Equal(enums.STORE_KIND_REDIS, runtime.Store.Kind)
	assert.Equal("redis:6379", runtime.Store.Redis.Address)
	assert.Equal(2, runtime.Store.Redis.DB)
	assert.Equal(int64(1700006400), runtime.Distribution.InitialFromTimestamp)
	assert.True(runtime.Distribution.ShouldSendTxn)
	assert.Equal(big.NewInt(7), runtime.Distribution.DistributionId)
	assert.Equal(constants.PERIOD_PREV, runtime.Distribution.StatsPeriod)
	assert.Equal(common.HexToHash(constants.DEFAULT_ES_GMX_REWARDS_KEY), runtime.DataStoreKeys.EsGmxRewards)
	assert.NotEmpty(runtime.SourceBytes)
}

func TestLoadFromStringVersionCheck(t *testing.T) {
	assert := test_assert.New(t)

	_, err := LoadFromString([]byte(`{ chain: { chain_id: 42161 } }`))
	assert.True(errors.Is(err, constants.ErrUnsupportedConfigurationVersion))

	_, err = LoadFromString([]byte(`{ refpay_config_version: "1.2", chain: { chain_id: 42161 } }`))
	assert.True(errors.Is(err, constants.ErrUnsupportedConfigurationVersion))

	_, err = LoadFromString([]byte(`{ refpay_config_version: "0.1", chain: { chain_id: 1 } }`))
	assert.True(errors.Is(err, constants.ErrConfigurationValidationFailed))
}

package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

func _assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

func (configuration *RuntimeConfiguration) Validate() (err error) {
	defer func() {
		msg, _ := recover().(string)
		if msg != "" {
			err = errors.Join(constants.ErrConfigurationValidationFailed, errors.New(msg))
		}
	}()

	_assert(configuration != nil, "configuration is nil")
	_assert(IsSupportedChainId(configuration.ChainId),
		fmt.Sprintf("configuration.chain.chain_id - '%d' not supported", configuration.ChainId))
	_assert(len(configuration.invalidAddressOverrides) == 0,
		fmt.Sprintf("configuration.chain.addresses - invalid address for %s", strings.Join(configuration.invalidAddressOverrides, ", ")))
	for name := range configuration.AddressOverrides {
		_assert(IsSupportedContractName(name), fmt.Sprintf("configuration.chain.addresses.%s - unsupported contract name", name))
	}

	_assert(lo.Contains(enums.SUPPORTED_STORE_KINDS, configuration.Store.Kind),
		fmt.Sprintf("configuration.store.kind - '%s' not supported", configuration.Store.Kind))
	_assert(configuration.Store.Kind != enums.STORE_KIND_FILE || configuration.Store.Path != "",
		"configuration.store.path is required for file store")
	_assert(configuration.Store.Kind != enums.STORE_KIND_REDIS || configuration.Store.Redis.Address != "",
		"configuration.store.redis.address is required for redis store")

	_assert(configuration.Subgraph.BaseUrl != "" || len(configuration.Subgraph.Endpoints) > 0, "configuration.subgraph.base_url is required")
	_assert(configuration.Subgraph.Timeout > 0, "configuration.subgraph.timeout must be positive")

	_assert(configuration.DataStoreKeys.EsGmxRewards != (configuration.DataStoreKeys.WntPrice), "configuration.data_store_keys must be distinct")

	_assert(configuration.Distribution.InitialFromTimestamp >= 0, "configuration.distribution.initial_from_timestamp must not be negative")
	_assert(configuration.Distribution.DistributionId != nil && configuration.Distribution.DistributionId.Sign() >= 0,
		"configuration.distribution.distribution_id must not be negative")
	_assert(configuration.Distribution.BatchSize > 0,
		fmt.Sprintf("configuration.distribution.batch_size must be positive. Current value '%d'", configuration.Distribution.BatchSize))
	_assert(lo.Contains([]string{constants.PERIOD_PREV, constants.PERIOD_CURRENT}, configuration.Distribution.StatsPeriod),
		fmt.Sprintf("configuration.distribution.stats_period - '%s' not supported", configuration.Distribution.StatsPeriod))

	_assert(configuration.Watch.Interval > 0, "configuration.watch.interval must be positive")
	_assert(configuration.Watch.BlockRange > 0, "configuration.watch.block_range must be positive")
	return
}

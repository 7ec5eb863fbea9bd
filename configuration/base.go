package configuration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-version"
	"github.com/hjson/hjson-go/v4"
	refpay_configuration "github.com/tez-capital/refpay/configuration/v"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/state"
)

type LatestConfigurationType = refpay_configuration.ConfigurationV0

type ConfigurationVersionInfo struct {
	Version *string `json:"refpay_config_version,omitempty"`
}

func checkConfigurationVersion(versionInfo *ConfigurationVersionInfo) error {
	if versionInfo.Version == nil {
		return errors.Join(constants.ErrUnsupportedConfigurationVersion, errors.New("missing refpay_config_version"))
	}
	v, err := version.NewVersion(*versionInfo.Version)
	if err != nil {
		return errors.Join(constants.ErrUnsupportedConfigurationVersion, err)
	}
	supported, err := version.NewConstraint(constants.SUPPORTED_CONFIGURATION_VERSIONS)
	if err != nil {
		return err
	}
	if !supported.Check(v) {
		return errors.Join(constants.ErrUnsupportedConfigurationVersion, fmt.Errorf("version %s does not satisfy %s", v, supported))
	}
	return nil
}

func ConfigurationToRuntimeConfiguration(configuration *LatestConfigurationType) (*RuntimeConfiguration, error) {
	runtime := GetDefaultRuntimeConfiguration()

	runtime.ChainId = configuration.Chain.ChainId
	runtime.RpcUrl = configuration.Chain.RpcUrl
	for name, address := range configuration.Chain.Addresses {
		if !common.IsHexAddress(address) {
			runtime.invalidAddressOverrides = append(runtime.invalidAddressOverrides, name)
			continue
		}
		runtime.AddressOverrides[name] = common.HexToAddress(address)
	}

	if configuration.Subgraph.BaseUrl != "" {
		runtime.Subgraph.BaseUrl = configuration.Subgraph.BaseUrl
	}
	for endpoint, url := range configuration.Subgraph.Endpoints {
		runtime.Subgraph.Endpoints[endpoint] = url
	}
	if configuration.Subgraph.TimeoutSeconds > 0 {
		runtime.Subgraph.Timeout = time.Duration(configuration.Subgraph.TimeoutSeconds) * time.Second
	}

	if configuration.Store.Kind != "" {
		runtime.Store.Kind = configuration.Store.Kind
	}
	if configuration.Store.Path != "" {
		runtime.Store.Path = configuration.Store.Path
	}
	if configuration.Store.Redis.Address != "" {
		runtime.Store.Redis.Address = configuration.Store.Redis.Address
	}
	if configuration.Store.Redis.KeyPrefix != "" {
		runtime.Store.Redis.KeyPrefix = configuration.Store.Redis.KeyPrefix
	}
	runtime.Store.Redis.Password = configuration.Store.Redis.Password
	runtime.Store.Redis.DB = configuration.Store.Redis.DB

	keys := []struct {
		value  string
		target *common.Hash
	}{
		{configuration.DataStoreKeys.EsGmxRewards, &runtime.DataStoreKeys.EsGmxRewards},
		{configuration.DataStoreKeys.WntPrice, &runtime.DataStoreKeys.WntPrice},
		{configuration.DataStoreKeys.GmxPrice, &runtime.DataStoreKeys.GmxPrice},
	}
	for _, key := range keys {
		if key.value == "" {
			continue
		}
		if !isHexHash(key.value) {
			return nil, errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid data store key '%s'", key.value))
		}
		*key.target = common.HexToHash(key.value)
	}

	distributionId, err := parseDistributionId(configuration.Distribution.DistributionId)
	if err != nil {
		return nil, err
	}
	runtime.Distribution = RuntimeDistributionConfiguration{
		InitialFromTimestamp: configuration.Distribution.InitialFromTimestamp,
		ShouldSendTxn:        configuration.Distribution.ShouldSendTxn,
		DistributionId:       distributionId,
		BatchSize:            configuration.Distribution.BatchSize,
		StatsPeriod:          configuration.Distribution.StatsPeriod,
	}
	if runtime.Distribution.BatchSize == 0 {
		runtime.Distribution.BatchSize = constants.PAYOUT_BATCH_SIZE
	}
	if runtime.Distribution.StatsPeriod == "" {
		runtime.Distribution.StatsPeriod = constants.PERIOD_PREV
	}

	if configuration.Watch.IntervalSeconds > 0 {
		runtime.Watch.Interval = time.Duration(configuration.Watch.IntervalSeconds) * time.Second
	}
	if configuration.Watch.BlockRange > 0 {
		runtime.Watch.BlockRange = uint64(configuration.Watch.BlockRange)
	}
	runtime.Watch.FromBlock = configuration.Watch.FromBlock
	if configuration.Watch.MetricsAddress != "" {
		runtime.Watch.MetricsAddress = configuration.Watch.MetricsAddress
	}

	if configuration.Reports.Directory != "" {
		runtime.Reports.Directory = configuration.Reports.Directory
	}
	runtime.Reports.Disabled = configuration.Reports.Disabled
	runtime.SourceBytes = configuration.SourceBytes

	return &runtime, nil
}

func isHexHash(value string) bool {
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	if len(value) != 2*common.HashLength {
		return false
	}
	for _, c := range value {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// applyEnvironmentOverrides injects secrets which should not live in the configuration file
func applyEnvironmentOverrides(runtime *RuntimeConfiguration) {
	if rpcUrl := os.Getenv(constants.RPC_URL_ENV); rpcUrl != "" {
		slog.Debug("using rpc url from environment", "env", constants.RPC_URL_ENV)
		runtime.RpcUrl = rpcUrl
	}
	if password := os.Getenv(constants.REDIS_PASSWORD_ENV); password != "" {
		runtime.Store.Redis.Password = password
	}
}

func LoadFromString(configurationBytes []byte) (*RuntimeConfiguration, error) {
	slog.Debug("loading version info")
	versionInfo := ConfigurationVersionInfo{}
	if err := hjson.Unmarshal(configurationBytes, &versionInfo); err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	if err := checkConfigurationVersion(&versionInfo); err != nil {
		return nil, err
	}

	configuration := refpay_configuration.GetDefaultV0()
	if err := hjson.Unmarshal(configurationBytes, &configuration); err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	configuration.SourceBytes = configurationBytes

	runtime, err := ConfigurationToRuntimeConfiguration(&configuration)
	if err != nil {
		return nil, err
	}
	applyEnvironmentOverrides(runtime)
	err = runtime.Validate()
	return runtime, err
}

func Load() (*RuntimeConfiguration, error) {
	if hasInjectedConfiguration, configurationBytes := state.Global.GetInjectedConfiguration(); hasInjectedConfiguration {
		slog.Debug("loading injected configuration")
		return LoadFromString(configurationBytes)
	}
	configurationFilePath := state.Global.GetConfigurationFilePath()
	slog.Debug("loading configuration", "path", configurationFilePath)
	configurationBytes, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	return LoadFromString(configurationBytes)
}

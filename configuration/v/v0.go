package refpay_configuration

import (
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

type ChainConfigurationV0 struct {
	ChainId int64  `json:"chain_id"`
	RpcUrl  string `json:"rpc_url,omitempty"`
	// Addresses overrides the built-in contract registry, keyed by contract name
	Addresses map[string]string `json:"addresses,omitempty"`
}

type SubgraphConfigurationV0 struct {
	BaseUrl        string            `json:"base_url,omitempty"`
	Endpoints      map[string]string `json:"endpoints,omitempty"`
	TimeoutSeconds int64             `json:"timeout,omitempty"`
}

type RedisConfigurationV0 struct {
	Address   string `json:"address,omitempty"`
	Password  string `json:"password,omitempty"`
	DB        int    `json:"db,omitempty"`
	KeyPrefix string `json:"key_prefix,omitempty"`
}

type StoreConfigurationV0 struct {
	Kind  enums.EStoreKind     `json:"kind,omitempty"`
	Path  string               `json:"path,omitempty"`
	Redis RedisConfigurationV0 `json:"redis,omitempty"`
}

type DataStoreKeysV0 struct {
	EsGmxRewards string `json:"es_gmx_rewards,omitempty"`
	WntPrice     string `json:"wnt_price,omitempty"`
	GmxPrice     string `json:"gmx_price,omitempty"`
}

type DistributionConfigurationV0 struct {
	InitialFromTimestamp int64  `json:"initial_from_timestamp,omitempty"`
	ShouldSendTxn        bool   `json:"should_send_txn,omitempty"`
	DistributionId       string `json:"distribution_id,omitempty"`
	BatchSize            int    `json:"batch_size,omitempty"`
	StatsPeriod          string `json:"stats_period,omitempty"`
}

type WatchConfigurationV0 struct {
	IntervalSeconds int64  `json:"interval,omitempty"`
	BlockRange      int64  `json:"block_range,omitempty"`
	FromBlock       uint64 `json:"from_block,omitempty"`
	MetricsAddress  string `json:"metrics_address,omitempty"`
}

type ReportsConfigurationV0 struct {
	Directory string `json:"directory,omitempty"`
	Disabled  bool   `json:"disabled,omitempty"`
}

type ConfigurationV0 struct {
	Version       string                      `json:"refpay_config_version"`
	Chain         ChainConfigurationV0        `json:"chain"`
	Subgraph      SubgraphConfigurationV0     `json:"subgraph,omitempty"`
	Store         StoreConfigurationV0        `json:"store,omitempty"`
	DataStoreKeys DataStoreKeysV0             `json:"data_store_keys,omitempty"`
	Distribution  DistributionConfigurationV0 `json:"distribution,omitempty"`
	Watch         WatchConfigurationV0        `json:"watch,omitempty"`
	Reports       ReportsConfigurationV0      `json:"reports,omitempty"`
	SourceBytes   []byte                      `json:"-"`
}

func GetDefaultV0() ConfigurationV0 {
	return ConfigurationV0{
		Version: constants.CONFIGURATION_VERSION,
		Chain: ChainConfigurationV0{
			Addresses: map[string]string{},
		},
		Subgraph: SubgraphConfigurationV0{
			BaseUrl:        constants.DEFAULT_SUBGRAPH_BASE_URL,
			Endpoints:      map[string]string{},
			TimeoutSeconds: constants.DEFAULT_SUBGRAPH_TIMEOUT,
		},
		Store: StoreConfigurationV0{
			Kind: enums.STORE_KIND_FILE,
			Path: constants.DEFAULT_STORE_FILE_NAME,
			Redis: RedisConfigurationV0{
				Address:   constants.DEFAULT_REDIS_ADDRESS,
				KeyPrefix: constants.DEFAULT_REDIS_KEY_PREFIX,
			},
		},
		DataStoreKeys: DataStoreKeysV0{
			EsGmxRewards: constants.DEFAULT_ES_GMX_REWARDS_KEY,
			WntPrice:     constants.DEFAULT_WNT_PRICE_KEY,
			GmxPrice:     constants.DEFAULT_GMX_PRICE_KEY,
		},
		Distribution: DistributionConfigurationV0{
			DistributionId: "0",
			BatchSize:      constants.PAYOUT_BATCH_SIZE,
			StatsPeriod:    constants.PERIOD_PREV,
		},
		Watch: WatchConfigurationV0{
			IntervalSeconds: constants.DEFAULT_WATCH_INTERVAL,
			BlockRange:      constants.DEFAULT_WATCH_BLOCK_RANGE,
			MetricsAddress:  constants.DEFAULT_METRICS_ADDRESS,
		},
		Reports: ReportsConfigurationV0{
			Directory: constants.REPORTS_DIRECTORY,
		},
	}
}

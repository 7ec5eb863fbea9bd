package configuration

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

type RuntimeSubgraphConfiguration struct {
	BaseUrl string `json:"base_url"`
	// Endpoints holds full url overrides keyed by logical endpoint name
	Endpoints map[string]string `json:"endpoints,omitempty"`
	Timeout   time.Duration     `json:"timeout"`
}

type RuntimeRedisConfiguration struct {
	Address   string `json:"address"`
	Password  string `json:"-"`
	DB        int    `json:"db"`
	KeyPrefix string `json:"key_prefix"`
}

type RuntimeStoreConfiguration struct {
	Kind  enums.EStoreKind          `json:"kind"`
	Path  string                    `json:"path,omitempty"`
	Redis RuntimeRedisConfiguration `json:"redis"`
}

type RuntimeDataStoreKeys struct {
	EsGmxRewards common.Hash `json:"es_gmx_rewards"`
	WntPrice     common.Hash `json:"wnt_price"`
	GmxPrice     common.Hash `json:"gmx_price"`
}

type RuntimeDistributionConfiguration struct {
	InitialFromTimestamp int64    `json:"initial_from_timestamp"`
	ShouldSendTxn        bool     `json:"should_send_txn"`
	DistributionId       *big.Int `json:"distribution_id"`
	BatchSize            int      `json:"batch_size"`
	StatsPeriod          string   `json:"stats_period"`
}

type RuntimeWatchConfiguration struct {
	Interval       time.Duration `json:"interval"`
	BlockRange     uint64        `json:"block_range"`
	FromBlock      uint64        `json:"from_block,omitempty"`
	MetricsAddress string        `json:"metrics_address,omitempty"`
}

type RuntimeReportsConfiguration struct {
	Directory string `json:"directory"`
	Disabled  bool   `json:"disabled,omitempty"`
}

type RuntimeConfiguration struct {
	ChainId                 int64                            `json:"chain_id"`
	RpcUrl                  string                           `json:"-"`
	AddressOverrides        map[string]common.Address        `json:"address_overrides,omitempty"`
	Subgraph                RuntimeSubgraphConfiguration     `json:"subgraph"`
	Store                   RuntimeStoreConfiguration        `json:"store"`
	DataStoreKeys           RuntimeDataStoreKeys             `json:"data_store_keys"`
	Distribution            RuntimeDistributionConfiguration `json:"distribution"`
	Watch                   RuntimeWatchConfiguration        `json:"watch"`
	Reports                 RuntimeReportsConfiguration      `json:"reports"`
	SourceBytes             []byte                           `json:"-"`
	invalidAddressOverrides []string
}

func GetDefaultRuntimeConfiguration() RuntimeConfiguration {
	return RuntimeConfiguration{
		ChainId:          ARBITRUM,
		AddressOverrides: map[string]common.Address{},
		Subgraph: RuntimeSubgraphConfiguration{
			BaseUrl:   constants.DEFAULT_SUBGRAPH_BASE_URL,
			Endpoints: map[string]string{},
			Timeout:   time.Duration(constants.DEFAULT_SUBGRAPH_TIMEOUT) * time.Second,
		},
		Store: RuntimeStoreConfiguration{
			Kind: enums.STORE_KIND_FILE,
			Path: constants.DEFAULT_STORE_FILE_NAME,
			Redis: RuntimeRedisConfiguration{
				Address:   constants.DEFAULT_REDIS_ADDRESS,
				KeyPrefix: constants.DEFAULT_REDIS_KEY_PREFIX,
			},
		},
		DataStoreKeys: RuntimeDataStoreKeys{
			EsGmxRewards: common.HexToHash(constants.DEFAULT_ES_GMX_REWARDS_KEY),
			WntPrice:     common.HexToHash(constants.DEFAULT_WNT_PRICE_KEY),
			GmxPrice:     common.HexToHash(constants.DEFAULT_GMX_PRICE_KEY),
		},
		Distribution: RuntimeDistributionConfiguration{
			DistributionId: big.NewInt(0),
			BatchSize:      constants.PAYOUT_BATCH_SIZE,
			StatsPeriod:    constants.PERIOD_PREV,
		},
		Watch: RuntimeWatchConfiguration{
			Interval:       time.Duration(constants.DEFAULT_WATCH_INTERVAL) * time.Second,
			BlockRange:     uint64(constants.DEFAULT_WATCH_BLOCK_RANGE),
			MetricsAddress: constants.DEFAULT_METRICS_ADDRESS,
		},
		Reports: RuntimeReportsConfiguration{
			Directory: constants.REPORTS_DIRECTORY,
		},
		SourceBytes: []byte{},
	}
}

// GetAddress resolves a contract address, configured overrides take precedence over the registry
func (configuration *RuntimeConfiguration) GetAddress(name string) (common.Address, error) {
	if address, ok := configuration.AddressOverrides[name]; ok {
		return address, nil
	}
	return GetContractAddress(configuration.ChainId, name)
}

func (configuration *RuntimeConfiguration) MustGetAddress(name string) common.Address {
	address, err := configuration.GetAddress(name)
	if err != nil {
		panic(err)
	}
	return address
}

func (configuration *RuntimeConfiguration) GetSubgraphUrl(endpoint string) (string, error) {
	if url, ok := configuration.Subgraph.Endpoints[endpoint]; ok && url != "" {
		return url, nil
	}
	fragment, err := GetSubgraphFragment(configuration.ChainId, endpoint)
	if err != nil {
		return "", err
	}
	return BuildSubgraphUrl(configuration.Subgraph.BaseUrl, fragment), nil
}

func parseDistributionId(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return big.NewInt(0), nil
	}
	id, ok := new(big.Int).SetString(value, 0)
	if !ok {
		return nil, errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid distribution id '%s'", value))
	}
	return id, nil
}

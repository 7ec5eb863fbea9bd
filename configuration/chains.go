package configuration

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/tez-capital/refpay/constants"
)

const (
	ARBITRUM         int64 = 42161
	ARBITRUM_SEPOLIA int64 = 421614
	AVALANCHE        int64 = 43114
	AVALANCHE_FUJI   int64 = 43113
	LOCALHOST        int64 = 31337
)

const (
	CONTRACT_DATA_STORE            = "dataStore"
	CONTRACT_CONFIG                = "config"
	CONTRACT_CONFIG_SYNCER         = "configSyncer"
	CONTRACT_EVENT_EMITTER         = "eventEmitter"
	CONTRACT_FEE_HANDLER           = "feeHandler"
	CONTRACT_GLV_READER            = "glvReader"
	CONTRACT_MULTICALL3            = "multicall3"
	CONTRACT_ORDER_HANDLER         = "orderHandler"
	CONTRACT_READER                = "reader"
	CONTRACT_WNT                   = "wnt"
	CONTRACT_ES_GMX                = "esGmx"
	CONTRACT_FEE_DISTRIBUTOR       = "feeDistributor"
	CONTRACT_FEE_DISTRIBUTOR_VAULT = "feeDistributorVault"
)

var (
	SUPPORTED_CHAIN_IDS = []int64{ARBITRUM, ARBITRUM_SEPOLIA, AVALANCHE, AVALANCHE_FUJI, LOCALHOST}

	SUPPORTED_CONTRACT_NAMES = []string{
		CONTRACT_DATA_STORE,
		CONTRACT_CONFIG,
		CONTRACT_CONFIG_SYNCER,
		CONTRACT_EVENT_EMITTER,
		CONTRACT_FEE_HANDLER,
		CONTRACT_GLV_READER,
		CONTRACT_MULTICALL3,
		CONTRACT_ORDER_HANDLER,
		CONTRACT_READER,
		CONTRACT_WNT,
		CONTRACT_ES_GMX,
		CONTRACT_FEE_DISTRIBUTOR,
		CONTRACT_FEE_DISTRIBUTOR_VAULT,
	}
)

const zeroAddress = "0x0000000000000000000000000000000000000000"

var contractAddresses = map[int64]map[string]string{
	LOCALHOST: {
		CONTRACT_DATA_STORE:            "0x610178dA211FEF7D417bC0e6FeD39F05609AD788",
		CONTRACT_CONFIG:                "0xa82fF9aFd8f496c3d6ac40E2a0F282E47488CFc9",
		CONTRACT_CONFIG_SYNCER:         "0xefc1aB2475ACb7E60499Efb171D173be19928a05",
		CONTRACT_EVENT_EMITTER:         "0x67d269191c92Caf3cD7723F116c85e6E9bf55933",
		CONTRACT_FEE_HANDLER:           "0x2625760C4A8e8101801D3a48eE64B2bEA42f1E96",
		CONTRACT_GLV_READER:            "0x162700d1613DfEC978032A909DE02643bC55df1A",
		CONTRACT_MULTICALL3:            "0x851356ae760d987E095750cCeb3bC6014560891C",
		CONTRACT_ORDER_HANDLER:         "0x26B862f640357268Bd2d9E95bc81553a2Aa81D7E",
		CONTRACT_READER:                "0x7580708993de7CA120E957A62f26A5dDD4b3D8aC",
		CONTRACT_WNT:                   "0xB7f8BC63BbcaD18155201308C8f3540b07f84F5e",
		CONTRACT_ES_GMX:                "0x9A676e781A523b5d0C0e43731313A708CB607508",
		CONTRACT_FEE_DISTRIBUTOR:       "0x82EdA215Fa92B45a3a76837C65Ab862b6C7564a8",
		CONTRACT_FEE_DISTRIBUTOR_VAULT: "0x3904b8f5b0F49cD206b7d5AABeE5D1F37eE15D8d",
	},
	ARBITRUM: {
		CONTRACT_CONFIG:                "0xD1781719eDbED8940534511ac671027989e724b9",
		CONTRACT_CONFIG_SYNCER:         "0xb6d37DFCdA9c237ca98215f9154Dc414EFe0aC1b",
		CONTRACT_DATA_STORE:            "0xFD70de6b91282D8017aA4E741e9Ae325CAb992d8",
		CONTRACT_EVENT_EMITTER:         "0xC8ee91A54287DB53897056e12D9819156D3822Fb",
		CONTRACT_FEE_HANDLER:           "0x7EB417637a3E6d1C19E6d69158c47610b7a5d9B3",
		CONTRACT_GLV_READER:            "0x6a9505D0B44cFA863d9281EA5B0b34cB36243b45",
		CONTRACT_MULTICALL3:            "0xe79118d6D92a4b23369ba356C90b9A7ABf1CB961",
		CONTRACT_ORDER_HANDLER:         "0xe68CAAACdf6439628DFD2fe624847602991A31eB",
		CONTRACT_READER:                "0x0537C767cDAC0726c76Bb89e92904fe28fd02fE1",
		CONTRACT_WNT:                   "0x82af49447d8a07e3bd95bd0d56f35241523fbab1",
		CONTRACT_ES_GMX:                "0xf42ae1d54fd613c9bb14810b0588faaa09a426ca",
		CONTRACT_FEE_DISTRIBUTOR:       zeroAddress,
		CONTRACT_FEE_DISTRIBUTOR_VAULT: zeroAddress,
	},
	ARBITRUM_SEPOLIA: lo.SliceToMap(SUPPORTED_CONTRACT_NAMES, func(name string) (string, string) {
		return name, zeroAddress
	}),
	AVALANCHE: {
		CONTRACT_CONFIG:                "0xEb376626D44c638Fd0C41170a40fd23a1A0622b7",
		CONTRACT_CONFIG_SYNCER:         "0x7dCec0356434d03a6071C96347516df3eF4471bB",
		CONTRACT_DATA_STORE:            "0x2F0b22339414ADeD7D5F06f9D604c7fF5b2fe3f6",
		CONTRACT_EVENT_EMITTER:         "0xDb17B211c34240B014ab6d61d4A31FA0C0e20c26",
		CONTRACT_FEE_HANDLER:           "0x1A3A103F9F536a0456C9b205152A3ac2b3c54490",
		CONTRACT_GLV_READER:            "0xae9596a1C438675AcC75f69d32E21Ac9c8fF99bD",
		CONTRACT_MULTICALL3:            "0x50474CAe810B316c294111807F94F9f48527e7F8",
		CONTRACT_ORDER_HANDLER:         "0x088711C3d2FA992188125e009E65c726bA090AD6",
		CONTRACT_READER:                "0x618fCEe30D9A26e8533C3B244CAd2D6486AFf655",
		CONTRACT_WNT:                   "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7",
		CONTRACT_ES_GMX:                "0xff1489227bbaac61a9209a08929e4c2a526ddd17",
		CONTRACT_FEE_DISTRIBUTOR:       zeroAddress,
		CONTRACT_FEE_DISTRIBUTOR_VAULT: zeroAddress,
	},
	AVALANCHE_FUJI: {
		CONTRACT_CONFIG:                "0x1518ab348e7187d9CDCAB6Ba4ea3e37E187eB8D7",
		CONTRACT_CONFIG_SYNCER:         "0xc1Af3b20EDA9fA05702ef9fc6AC16D03f302E7E5",
		CONTRACT_DATA_STORE:            "0xEA1BFb4Ea9A412dCCd63454AbC127431eBB0F0d4",
		CONTRACT_EVENT_EMITTER:         "0xc67D98AC5803aFD776958622CeEE332A0B2CabB9",
		CONTRACT_FEE_HANDLER:           zeroAddress,
		CONTRACT_GLV_READER:            "0x0D4231689B92E6978E5A0439B156bFBe35592C6d",
		CONTRACT_MULTICALL3:            "0x966D1F5c54a714C6443205F0Ec49eEF81F10fdfD",
		CONTRACT_ORDER_HANDLER:         "0x109fd3cd6e6b3711f70EA9d7C4fD8055CEc175e5",
		CONTRACT_READER:                "0xA71e8b30c9414852F065e4cE12bbCC05cF50937A",
		CONTRACT_WNT:                   "0x1D308089a2D1Ced3f1Ce36B1FcaF815b07217be3",
		CONTRACT_ES_GMX:                zeroAddress,
		CONTRACT_FEE_DISTRIBUTOR:       zeroAddress,
		CONTRACT_FEE_DISTRIBUTOR_VAULT: zeroAddress,
	},
}

var chainNames = map[int64]string{
	ARBITRUM:  "arbitrum",
	AVALANCHE: "avalanche",
}

func IsSupportedChainId(chainId int64) bool {
	return slices.Contains(SUPPORTED_CHAIN_IDS, chainId)
}

func IsSupportedContractName(name string) bool {
	return slices.Contains(SUPPORTED_CONTRACT_NAMES, name)
}

// GetContractAddress looks the contract up in the built-in registry
func GetContractAddress(chainId int64, name string) (common.Address, error) {
	if !IsSupportedChainId(chainId) {
		return common.Address{}, errors.Join(constants.ErrUnsupportedChain, fmt.Errorf("can not get address for unsupported chain id %d", chainId))
	}
	if !IsSupportedContractName(name) {
		return common.Address{}, errors.Join(constants.ErrUnsupportedContract, fmt.Errorf("can not get address for unsupported contract name %s", name))
	}
	address, ok := contractAddresses[chainId][name]
	if !ok || address == "" {
		return common.Address{}, errors.Join(constants.ErrUnsupportedContract, fmt.Errorf("can not get address for %s chain id %d", name, chainId))
	}
	return common.HexToAddress(address), nil
}

// GetSubgraphFragment maps a logical subgraph endpoint to its deployment name
func GetSubgraphFragment(chainId int64, endpoint string) (string, error) {
	if !IsSupportedChainId(chainId) {
		return "", errors.Join(constants.ErrUnsupportedChain, fmt.Errorf("can not get subgraph for unsupported chain id %d", chainId))
	}
	chainName, ok := chainNames[chainId]
	if !ok {
		return "", errors.Join(constants.ErrUnsupportedChain, fmt.Errorf("no subgraph fragments defined for chain id %d", chainId))
	}
	switch endpoint {
	case constants.SUBGRAPH_ENDPOINT_REFERRALS:
		return fmt.Sprintf("gmx-%s-referrals", chainName), nil
	case constants.SUBGRAPH_ENDPOINT_STATS_V1:
		return fmt.Sprintf("gmx-%s-stats", chainName), nil
	case constants.SUBGRAPH_ENDPOINT_STATS_V2:
		return fmt.Sprintf("synthetics-%s-stats", chainName), nil
	}
	return "", errors.Join(constants.ErrUnsupportedEndpoint, fmt.Errorf("no subgraph fragment found for endpoint '%s' on chain %d", endpoint, chainId))
}

func BuildSubgraphUrl(baseUrl string, fragment string) string {
	return strings.TrimSuffix(baseUrl, "/") + "/" + fragment + "/api"
}

package constants

import "math/big"

const (
	REFPAY_REPOSITORY = "tez-capital/refpay"

	SHARE_DIVISOR_VALUE = 1_000_000_000 // 1e9
	BONUS_TIER          = 2
	BONUS_DIVISOR       = 5 // bonus is 20% of v1+v2 rebates
	USD_DECIMALS        = 30
	GMX_DECIMALS        = 18
	// data store prices are USD per smallest token unit
	PRICE_DECIMALS = USD_DECIMALS - GMX_DECIMALS

	V2_FEES_SHARE_PERCENT = 10

	STATS_PAGE_SIZE  = 10000
	STATS_PAGE_COUNT = 6
	TIER_QUERY_LIMIT = 1000

	PAYOUT_BATCH_SIZE = 150

	DEFAULT_SUBGRAPH_BASE_URL = "https://subgraph.satsuma-prod.com/3b2ced13c8d9/gmx/"
	DEFAULT_SUBGRAPH_TIMEOUT  = int64(10) // seconds
	DEFAULT_STORE_FILE_NAME   = "storage.json"
	DEFAULT_REDIS_ADDRESS     = "localhost:6379"
	DEFAULT_REDIS_KEY_PREFIX  = "refpay"
	DEFAULT_WATCH_INTERVAL    = int64(15) // seconds
	DEFAULT_WATCH_BLOCK_RANGE = int64(2000)
	DEFAULT_METRICS_ADDRESS   = "127.0.0.1:9090"

	CONFIG_FILE_NAME                 = "config.hjson"
	CONFIGURATION_VERSION            = "0.1"
	SUPPORTED_CONFIGURATION_VERSIONS = ">= 0.1, < 1.0"
	CONFIGURATION_FILE_ENV           = "CONFIGURATION_FILE"
	RPC_URL_ENV                      = "REFPAY_RPC_URL"
	REDIS_PASSWORD_ENV               = "REFPAY_REDIS_PASSWORD"
	DEFAULT_ES_GMX_REWARDS_KEY       = "0x40526da0fbc85a8524586c9c30616320eabcc480b42239a800f3287664b8b34f"
	DEFAULT_WNT_PRICE_KEY            = "0x66af7011ac8687696c07a8c00f07a4cd3b8574eccaa9d8609991b2824888e113"
	DEFAULT_GMX_PRICE_KEY            = "0xfb0c2a8c499410abada8871e1b7bb6142f067b1b04951090b658c6843dcf78c9"
	CONFIG_FILE_BACKUP_SUFFIX        = ".backup"
	AFFILIATES_REPORT_FILE_NAME      = "affiliates.csv"
	REFERRALS_REPORT_FILE_NAME       = "referrals.csv"
	PAYOUTS_REPORT_FILE_NAME         = "payouts.csv"
	PAYOUT_SUMMARY_FILE_NAME         = "payouts.json"
	SNAPSHOT_REPORT_FILE_NAME        = "snapshot.json"
	REPORTS_DIRECTORY                = "reports"
)

// state store keys
const (
	STORE_KEY_DISTRIBUTION_DATA = "distributionData"
	STORE_KEY_FROM_TIMESTAMP    = "fromTimestamp"
	STORE_KEY_WNT_PRICE         = "wntPrice"
	STORE_KEY_GMX_PRICE         = "gmxPrice"
)

// subgraph endpoints
const (
	SUBGRAPH_ENDPOINT_REFERRALS = "referrals"
	SUBGRAPH_ENDPOINT_STATS_V1  = "stats"
	SUBGRAPH_ENDPOINT_STATS_V2  = "synthetics-stats"
)

const (
	PERIOD_PREV    = "prev"
	PERIOD_CURRENT = "current"
)

var (
	SHARE_DIVISOR           = big.NewInt(SHARE_DIVISOR_VALUE)
	REWARD_THRESHOLD        = new(big.Int).Exp(big.NewInt(10), big.NewInt(28), nil) // 1 cent
	BONUS_REWARDS_THRESHOLD = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil) // 0.01 esGMX
)

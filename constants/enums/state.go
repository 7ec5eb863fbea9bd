package enums

type EDistributionState string

const (
	DISTRIBUTION_STATE_AWAITING_TRIGGER    EDistributionState = "awaiting_trigger"
	DISTRIBUTION_STATE_COMPUTING           EDistributionState = "computing"
	DISTRIBUTION_STATE_AWAITING_COMPLETION EDistributionState = "awaiting_completion"
	DISTRIBUTION_STATE_PAYING              EDistributionState = "paying"
	DISTRIBUTION_STATE_IDLE                EDistributionState = "idle"
)

type EStoreKind string

const (
	STORE_KIND_FILE   EStoreKind = "file"
	STORE_KIND_REDIS  EStoreKind = "redis"
	STORE_KIND_MEMORY EStoreKind = "memory"
)

var (
	SUPPORTED_STORE_KINDS = []EStoreKind{
		STORE_KIND_FILE,
		STORE_KIND_REDIS,
		STORE_KIND_MEMORY,
	}
)

type EPayoutCategory string

const (
	PAYOUT_CATEGORY_AFFILIATE EPayoutCategory = "affiliate"
	PAYOUT_CATEGORY_DISCOUNT  EPayoutCategory = "discount"
	PAYOUT_CATEGORY_BONUS     EPayoutCategory = "bonus"
)

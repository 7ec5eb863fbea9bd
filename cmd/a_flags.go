package cmd

const (
	DRY_RUN_FLAG      = "dry-run"
	ACCOUNT_FLAG      = "account"
	PERIOD_FLAG       = "period"
	TO_FLAG           = "to"
	FROM_FLAG         = "from"
	SEND_FLAG         = "send"
	BATCH_SIZE_FLAG   = "batch-size"
	LOG_FLAG          = "log"
	TX_FLAG           = "tx"
	SIMULATE_FLAG     = "simulate"
	FROM_BLOCK_FLAG   = "from-block"
	ALL_FLAG          = "all"
	LOCK_TIMEOUT_FLAG = "lock-timeout"
)

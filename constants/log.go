package constants

const (
	LOG_MESSAGE_DISTRIBUTION_COMPUTED = "distribution computed"
	LOG_MESSAGE_PAYOUTS_GENERATED     = "payouts generated"
	LOG_MESSAGE_TRIGGER_ROUTED        = "trigger routed"

	LOG_FIELD_INVOCATION_ID = "invocation_id"
	LOG_FIELD_CHAIN_ID      = "chain_id"
	LOG_FIELD_TRIGGER       = "trigger"
	LOG_FIELD_STATE         = "state"
	LOG_FIELD_PERIOD        = "period"
	LOG_FIELD_AFFILIATES    = "affiliates"
	LOG_FIELD_REFERRALS     = "referrals"
	LOG_FIELD_BATCHES       = "batches"
	LOG_FIELD_CALLS         = "calls"
)

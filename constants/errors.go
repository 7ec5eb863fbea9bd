package constants

import "errors"

var (
	// miscllaneous

	ErrNotImplemented  = errors.New("not implemented")
	ErrInvalidArgument = errors.New("invalid argument")

	// load

	ErrConfigurationLoadFailed         = errors.New("failed to load configuration")
	ErrConfigurationValidationFailed   = errors.New("failed to validate configuration")
	ErrUnsupportedConfigurationVersion = errors.New("unsupported configuration version")
	ErrStoreLoadFailed                 = errors.New("failed to load state store")
	ErrChainReaderLoadFailed           = errors.New("failed to load chain reader engine")
	ErrIndexerLoadFailed               = errors.New("failed to load indexer engine")

	// registry

	ErrUnsupportedChain    = errors.New("unsupported chain")
	ErrUnsupportedContract = errors.New("unsupported contract")
	ErrUnsupportedEndpoint = errors.New("unsupported subgraph endpoint")

	// context validation

	ErrMissingEngine         = errors.New("missing engine")
	ErrMissingIndexerEngine  = errors.New("undefined indexer engine")
	ErrMissingChainEngine    = errors.New("undefined chain reader engine")
	ErrMissingStoreEngine    = errors.New("undefined state store engine")
	ErrMissingDecoderEngine  = errors.New("undefined event decoder engine")
	ErrMissingConfiguration  = errors.New("undefined configuration")
	ErrMissingDistributionId = errors.New("undefined distribution id")
	ErrInvalidStoreKind      = errors.New("invalid state store kind")

	// period

	ErrInvalidPeriod = errors.New("invalid period name")

	// indexer

	ErrIndexerQueryFailed     = errors.New("indexer query failed")
	ErrIndexerResponseInvalid = errors.New("invalid indexer response")
	ErrPaginationOverflow     = errors.New("query page is full, results should be paginated")

	// chain

	ErrChainReadFailed    = errors.New("failed to read chain data")
	ErrReceiptFetchFailed = errors.New("failed to fetch transaction receipt")
	ErrLogsFetchFailed    = errors.New("failed to fetch logs")
	ErrCallEncodingFailed = errors.New("failed to encode contract call")
	ErrCallDecodingFailed = errors.New("failed to decode contract call result")
	ErrInvalidPrice       = errors.New("price must be positive")

	// events

	ErrEventDecodeFailed     = errors.New("failed to decode event log")
	ErrEventDataKeyNotFound  = errors.New("key not found in event data")
	ErrEventDataTypeMismatch = errors.New("event data value has unexpected type")

	// state

	ErrStateStoreFailed      = errors.New("state store operation failed")
	ErrMissingState          = errors.New("required state is missing")
	ErrSnapshotMarshalFailed = errors.New("failed to marshal distribution snapshot")
	ErrSnapshotParseFailed   = errors.New("failed to parse distribution snapshot")
	ErrStateLockFailed       = errors.New("failed to lock state")

	// payouts

	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrPayoutListLengthMismatch = errors.New("accounts and amounts lengths differ")

	// reports

	ErrReportWriteFailed = errors.New("failed to write report")
)

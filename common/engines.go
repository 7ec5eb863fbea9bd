package common

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// IndexerQueryService executes a GraphQL document against a named subgraph endpoint
// and returns the `data` object. GraphQL level errors are returned as errors.
type IndexerQueryService interface {
	GetId() string
	Query(ctx context.Context, endpoint string, query string) (json.RawMessage, error)
}

type ChainDataReader interface {
	GetId() string
	// GetUint reads dataStore.getUint(key)
	GetUint(ctx context.Context, key common.Hash) (*big.Int, error)
	GetLatestBlockTimestamp(ctx context.Context) (int64, error)
	BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error)
}

// LogSource is used by the cli to obtain trigger logs. It is not needed by the core.
type LogSource interface {
	GetTransactionLogs(ctx context.Context, txHash common.Hash) ([]types.Log, error)
	GetLatestBlockNumber(ctx context.Context) (uint64, error)
	FilterTriggerLogs(ctx context.Context, emitter common.Address, fromBlock uint64, toBlock uint64) ([]types.Log, error)
}

type KeyValueStore interface {
	GetId() string
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

type EventLogDecoder interface {
	Decode(log *types.Log) (*DecodedEvent, error)
}

type ReporterEngine interface {
	GetId() string
	ReportDistribution(snapshot *DistributionSnapshot, summary *DistributionSummary) error
	ReportPayouts(summary *PayoutSummary) error
}

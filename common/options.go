package common

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/tez-capital/refpay/constants"
)

type ComputeEngineContext struct {
	indexer  IndexerQueryService
	chain    ChainDataReader
	store    KeyValueStore
	reporter ReporterEngine
	logger   *slog.Logger
}

func NewComputeEngineContext(indexer IndexerQueryService, chain ChainDataReader, store KeyValueStore, reporter ReporterEngine) *ComputeEngineContext {
	return &ComputeEngineContext{
		indexer:  indexer,
		chain:    chain,
		store:    store,
		reporter: reporter,
	}
}

func (engines *ComputeEngineContext) WithLogger(logger *slog.Logger) *ComputeEngineContext {
	engines.logger = logger
	return engines
}

func (engines *ComputeEngineContext) GetIndexer() IndexerQueryService {
	return engines.indexer
}

func (engines *ComputeEngineContext) GetChainReader() ChainDataReader {
	return engines.chain
}

func (engines *ComputeEngineContext) GetStore() KeyValueStore {
	return engines.store
}

// GetReporter may return nil, reporting is optional
func (engines *ComputeEngineContext) GetReporter() ReporterEngine {
	return engines.reporter
}

func (engines *ComputeEngineContext) GetLogger() *slog.Logger {
	if engines.logger == nil {
		return slog.Default()
	}
	return engines.logger
}

func (engines *ComputeEngineContext) Validate() error {
	if engines.indexer == nil {
		return errors.Join(constants.ErrMissingEngine, constants.ErrMissingIndexerEngine)
	}
	if engines.chain == nil {
		return errors.Join(constants.ErrMissingEngine, constants.ErrMissingChainEngine)
	}
	if engines.store == nil {
		return errors.Join(constants.ErrMissingEngine, constants.ErrMissingStoreEngine)
	}
	return nil
}

type PayoutEngineContext struct {
	chain    ChainDataReader
	store    KeyValueStore
	reporter ReporterEngine
	logger   *slog.Logger
}

func NewPayoutEngineContext(chain ChainDataReader, store KeyValueStore, reporter ReporterEngine) *PayoutEngineContext {
	return &PayoutEngineContext{
		chain:    chain,
		store:    store,
		reporter: reporter,
	}
}

func (engines *PayoutEngineContext) WithLogger(logger *slog.Logger) *PayoutEngineContext {
	engines.logger = logger
	return engines
}

func (engines *PayoutEngineContext) GetChainReader() ChainDataReader {
	return engines.chain
}

func (engines *PayoutEngineContext) GetStore() KeyValueStore {
	return engines.store
}

func (engines *PayoutEngineContext) GetReporter() ReporterEngine {
	return engines.reporter
}

func (engines *PayoutEngineContext) GetLogger() *slog.Logger {
	if engines.logger == nil {
		return slog.Default()
	}
	return engines.logger
}

func (engines *PayoutEngineContext) Validate() error {
	if engines.chain == nil {
		return errors.Join(constants.ErrMissingEngine, constants.ErrMissingChainEngine)
	}
	if engines.store == nil {
		return errors.Join(constants.ErrMissingEngine, constants.ErrMissingStoreEngine)
	}
	return nil
}

type ComputeOptions struct {
	// StatsPeriod selects the period the protocol fee totals are read for, "prev" unless overridden
	StatsPeriod string `json:"stats_period,omitempty"`
	// Account restricts the stats queries to a single affiliate/referral. Only valid with DryRun.
	Account string `json:"account,omitempty"`
	// DryRun computes the snapshot without touching the persisted state
	DryRun bool `json:"dry_run,omitempty"`
	// ToTimestamp overrides the latest block timestamp as the end of the period
	ToTimestamp int64 `json:"to_timestamp,omitempty"`

	Clock clockwork.Clock `json:"-"`
}

func (options *ComputeOptions) Validate() error {
	switch options.StatsPeriod {
	case "":
		options.StatsPeriod = constants.PERIOD_PREV
	case constants.PERIOD_PREV, constants.PERIOD_CURRENT:
	default:
		return errors.Join(constants.ErrInvalidPeriod, fmt.Errorf("'%s'", options.StatsPeriod))
	}
	if options.Account != "" {
		if !common.IsHexAddress(options.Account) {
			return errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid account '%s'", options.Account))
		}
		if !options.DryRun {
			return errors.Join(constants.ErrInvalidArgument, errors.New("account filter requires a dry run"))
		}
		options.Account = strings.ToLower(options.Account)
	}
	if options.ToTimestamp < 0 {
		return errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid to timestamp %d", options.ToTimestamp))
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	return nil
}

type ComputeResult struct {
	Snapshot *DistributionSnapshot `json:"snapshot"`
	Summary  *DistributionSummary  `json:"summary"`
	Result   *ExecutionResult      `json:"result"`
}

type PayoutOptions struct {
	ShouldSend     bool     `json:"should_send"`
	DistributionId *big.Int `json:"distribution_id"`
	BatchSize      int      `json:"batch_size,omitempty"`
}

func (options *PayoutOptions) Validate() error {
	if options.DistributionId == nil || options.DistributionId.Sign() < 0 {
		return constants.ErrMissingDistributionId
	}
	if options.BatchSize == 0 {
		options.BatchSize = constants.PAYOUT_BATCH_SIZE
	}
	if options.BatchSize < 0 {
		return errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid batch size %d", options.BatchSize))
	}
	return nil
}

type PayoutResult struct {
	Summary *PayoutSummary   `json:"summary"`
	Result  *ExecutionResult `json:"result"`
}

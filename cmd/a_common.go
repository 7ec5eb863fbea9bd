package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	chain_engines "github.com/tez-capital/refpay/engines/chain"
	"github.com/tez-capital/refpay/engines/events"
	reporter_engines "github.com/tez-capital/refpay/engines/reporter"
	store_engines "github.com/tez-capital/refpay/engines/store"
	"github.com/tez-capital/refpay/engines/subgraph"
	"github.com/tez-capital/refpay/state"
)

type ConfigurationAndEngines struct {
	Configuration *configuration.RuntimeConfiguration
	Indexer       *subgraph.Client
	Chain         *chain_engines.Reader
	Store         common.KeyValueStore
	closeStore    func() error
}

func (cae *ConfigurationAndEngines) Unwrap() (*configuration.RuntimeConfiguration, *subgraph.Client, *chain_engines.Reader, common.KeyValueStore) {
	return cae.Configuration, cae.Indexer, cae.Chain, cae.Store
}

func (cae *ConfigurationAndEngines) Close() {
	if err := cae.closeStore(); err != nil {
		slog.Warn("failed to close state store", "error", err.Error())
	}
}

func (cae *ConfigurationAndEngines) logger() *slog.Logger {
	return slog.Default().With(constants.LOG_FIELD_CHAIN_ID, cae.Configuration.ChainId)
}

// reporter returns the file system reporter or nil when reports are disabled
func (cae *ConfigurationAndEngines) reporter(dryRun bool) common.ReporterEngine {
	if cae.Configuration.Reports.Disabled {
		return nil
	}
	return reporter_engines.NewFileSystemReporter(reporter_engines.FsReporterOptions{
		Directory: state.Global.ResolvePath(cae.Configuration.Reports.Directory),
		DryRun:    dryRun,
	})
}

func (cae *ConfigurationAndEngines) ComputeEngines(dryRun bool) *common.ComputeEngineContext {
	return common.NewComputeEngineContext(cae.Indexer, cae.Chain, cae.Store, cae.reporter(dryRun)).WithLogger(cae.logger())
}

func (cae *ConfigurationAndEngines) PayoutEngines() *common.PayoutEngineContext {
	return common.NewPayoutEngineContext(cae.Chain, cae.Store, cae.reporter(false)).WithLogger(cae.logger())
}

func (cae *ConfigurationAndEngines) Decoder() (*events.Decoder, error) {
	emitter, err := cae.Configuration.GetAddress(configuration.CONTRACT_EVENT_EMITTER)
	if err != nil {
		return nil, err
	}
	return events.NewDecoder(emitter), nil
}

func loadConfiguration() (*configuration.RuntimeConfiguration, error) {
	config, err := configuration.Load()
	if err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded", constants.LOG_FIELD_CHAIN_ID, config.ChainId)
	return config, nil
}

func loadChainReader(ctx context.Context, config *configuration.RuntimeConfiguration) (*chain_engines.Reader, error) {
	client, err := chain_engines.DialEVMClient(config.RpcUrl)
	if err != nil {
		return nil, err
	}
	dataStore, err := config.GetAddress(configuration.CONTRACT_DATA_STORE)
	if err != nil {
		return nil, errors.Join(constants.ErrChainReaderLoadFailed, err)
	}
	reader := chain_engines.NewReader(client, dataStore)
	if err := reader.VerifyChainId(ctx, config.ChainId); err != nil {
		return nil, err
	}
	return reader, nil
}

func loadConfigurationAndEngines(ctx context.Context) (*ConfigurationAndEngines, error) {
	config, err := loadConfiguration()
	if err != nil {
		return nil, err
	}
	indexer, err := subgraph.InitClient(config, nil)
	if err != nil {
		return nil, err
	}
	reader, err := loadChainReader(ctx, config)
	if err != nil {
		return nil, err
	}
	store, closeStore, err := store_engines.Load(ctx, config)
	if err != nil {
		return nil, errors.Join(constants.ErrStoreLoadFailed, err)
	}
	slog.Debug("engines loaded", "indexer", indexer.GetId(), "chain", reader.GetId(), "store", store.GetId())
	return &ConfigurationAndEngines{
		Configuration: config,
		Indexer:       indexer,
		Chain:         reader,
		Store:         store,
		closeStore:    closeStore,
	}, nil
}

// printJson writes the value to stdout, indented unless json output was requested
func printJson(value any) {
	var data []byte
	var err error
	if state.Global.GetWantsOutputJson() {
		data, err = json.Marshal(value)
	} else {
		data, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		slog.Error("failed to marshal output", "error", err.Error())
		os.Exit(common.EXIT_COMMON_FAILURE)
	}
	fmt.Fprintln(os.Stdout, string(data))
}

func printExecutionResult(result *common.ExecutionResult) {
	if result == nil {
		result = common.NewNoopResult("")
	}
	printJson(result)
}

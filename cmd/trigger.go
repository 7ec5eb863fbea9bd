package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/core"
	"github.com/tez-capital/refpay/engines/events"
)

// readLogs accepts a single log object or an array of logs, "-" reads stdin
func readLogs(source string) ([]types.Log, error) {
	var data []byte
	var err error
	if source == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		logs := []types.Log{}
		if err := json.Unmarshal(data, &logs); err != nil {
			return nil, err
		}
		return logs, nil
	}
	log := types.Log{}
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, err
	}
	return []types.Log{log}, nil
}

// simulatedLog builds a completed trigger event emitted by the configured EventEmitter
func simulatedLog(emitter ethcommon.Address, eventName string) (*types.Log, error) {
	data := events.NewEventLogData()
	switch enums.TriggerKindFromEventNameHash(crypto.Keccak256Hash([]byte(eventName))) {
	case enums.TRIGGER_DATA_RECEIVED:
		data.BoolItems.Items = append(data.BoolItems.Items, events.BoolKeyValue{Key: "isBridgingCompleted", Value: true})
	case enums.TRIGGER_BRIDGED_GMX_RECEIVED, enums.TRIGGER_DISTRIBUTION_COMPLETED:
	default:
		return nil, errors.Join(constants.ErrInvalidArgument, fmt.Errorf("'%s' is not a trigger event", eventName))
	}
	return events.EncodeLog(emitter, ethcommon.Address{}, eventName, data)
}

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "routes fee distribution events",
	Long:  "decodes EventEmitter logs and runs the distribution phase each trigger asks for",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logSource, _ := cmd.Flags().GetString(LOG_FLAG)
		txHash, _ := cmd.Flags().GetString(TX_FLAG)
		simulate, _ := cmd.Flags().GetString(SIMULATE_FLAG)
		dryRun, _ := cmd.Flags().GetBool(DRY_RUN_FLAG)

		if lo.Count([]bool{logSource != "", txHash != "", simulate != ""}, true) != 1 {
			slog.Error("exactly one of --log, --tx or --simulate is required")
			os.Exit(common.EXIT_INVALID_ARGS)
		}

		cae := assertRunWithResultAndErrorMessage(func() (*ConfigurationAndEngines, error) {
			return loadConfigurationAndEngines(ctx)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load configuration and engines")
		defer cae.Close()
		decoder := assertRunWithResult(cae.Decoder, common.EXIT_CONFIGURATION_LOAD_FAILURE)

		var logs []types.Log
		switch {
		case logSource != "":
			logs = assertRunWithResultAndErrorMessage(func() ([]types.Log, error) {
				return readLogs(logSource)
			}, common.EXIT_LOG_READ_FAILURE, "failed to read logs", "source", logSource)
		case txHash != "":
			logs = assertRunWithResultAndErrorMessage(func() ([]types.Log, error) {
				return cae.Chain.GetTransactionLogs(ctx, ethcommon.HexToHash(txHash))
			}, common.EXIT_LOG_READ_FAILURE, "failed to fetch transaction logs", "tx", txHash)
			logs = lo.Filter(logs, func(log types.Log, _ int) bool {
				return decoder.IsTriggerLog(&log)
			})
		default:
			emitter, _ := cae.Configuration.GetAddress(configuration.CONTRACT_EVENT_EMITTER)
			log := assertRunWithResultAndErrorMessage(func() (*types.Log, error) {
				return simulatedLog(emitter, simulate)
			}, common.EXIT_INVALID_ARGS, "failed to simulate event", "event", simulate)
			logs = []types.Log{*log}
		}
		if len(logs) == 0 {
			slog.Info("no trigger logs found")
			printExecutionResult(common.NewNoopResult(core.MESSAGE_NO_RELEVANT_EVENT))
			return
		}

		if !dryRun {
			unlock := assertRunWithResultAndErrorMessage(func() (func() error, error) {
				return lockStateStoreWithTimeout(DEFAULT_LOCK_TIMEOUT)
			}, common.EXIT_STATE_LOCK_FAILURE, "failed to lock state")
			defer unlock()
		}

		router := assertRunWithResultAndErrorMessage(func() (*core.EventRouter, error) {
			return core.NewEventRouter(cae.Configuration, decoder, cae.ComputeEngines(dryRun), cae.PayoutEngines())
		}, common.EXIT_TRIGGER_FAILURE, "failed to create event router")

		options := &core.RouteOptions{
			Compute: &common.ComputeOptions{
				StatsPeriod: cae.Configuration.Distribution.StatsPeriod,
				DryRun:      dryRun,
			},
		}
		results := make([]*common.ExecutionResult, 0, len(logs))
		for i := range logs {
			result := assertRunWithErrorHandler(func() (*core.RouteResult, error) {
				return router.Route(ctx, &logs[i], options)
			}, exitWithPhaseError(common.EXIT_TRIGGER_FAILURE, "failed to route trigger"))
			results = append(results, result.Result)
		}
		if len(results) == 1 {
			printExecutionResult(results[0])
			return
		}
		printJson(results)
	},
}

func init() {
	triggerCmd.Flags().String(LOG_FLAG, "", "json encoded log or array of logs, - reads stdin")
	triggerCmd.Flags().String(TX_FLAG, "", "routes the trigger logs of the transaction")
	triggerCmd.Flags().String(SIMULATE_FLAG, "", "routes a synthetic trigger event by name")
	triggerCmd.Flags().Bool(DRY_RUN_FLAG, false, "computes without persisting the snapshot")
	RootCmd.AddCommand(triggerCmd)
}

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/core"
	"github.com/tez-capital/refpay/engines/events"
	"github.com/tez-capital/refpay/metrics"
	"github.com/tez-capital/refpay/utils"
)

func serveMetrics(address string) {
	if address == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		slog.Info("serving metrics", "address", address)
		if err := http.ListenAndServe(address, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "error", err.Error())
		}
	}()
}

type watcher struct {
	cae       *ConfigurationAndEngines
	router    *core.EventRouter
	decoder   *events.Decoder
	options   *core.RouteOptions
	lastBlock uint64
}

// scan routes trigger logs from the blocks after lastBlock up to the current head
func (w *watcher) scan(ctx context.Context) error {
	head, err := w.cae.Chain.GetLatestBlockNumber(ctx)
	if err != nil {
		return err
	}
	emitter, err := w.cae.Configuration.GetAddress(configuration.CONTRACT_EVENT_EMITTER)
	if err != nil {
		return err
	}
	blockRange := max(w.cae.Configuration.Watch.BlockRange, 1)
	for from := w.lastBlock + 1; from <= head; from += blockRange {
		to := min(from+blockRange-1, head)
		logs, err := w.cae.Chain.FilterTriggerLogs(ctx, emitter, from, to)
		if err != nil {
			return err
		}
		for i := range logs {
			if !w.decoder.IsTriggerLog(&logs[i]) {
				continue
			}
			// an interrupt cancels ctx, the trigger in progress still runs to completion
			protectedSection := utils.StartNewProtectedSection("routing trigger, wait for it to finish")
			result, err := w.router.Route(context.WithoutCancel(ctx), &logs[i], w.options)
			protectedSection.Close()
			if err != nil {
				return err
			}
			slog.Info("trigger processed", constants.LOG_FIELD_TRIGGER, result.Trigger, "can_exec", result.Result.CanExec, "block", logs[i].BlockNumber)
			printExecutionResult(result.Result)
			if protectedSection.Signaled() || ctx.Err() != nil {
				return context.Canceled
			}
		}
		w.lastBlock = to
		metrics.WatchLastProcessedBlock.Set(float64(to))
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watches EventEmitter for fee distribution triggers",
	Long:  "polls the EventEmitter logs and routes every trigger until stopped manually",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		utils.CallbackOnInterrupt(ctx, cancel)

		cae := assertRunWithResultAndErrorMessage(func() (*ConfigurationAndEngines, error) {
			return loadConfigurationAndEngines(ctx)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load configuration and engines")
		defer cae.Close()
		decoder := assertRunWithResult(cae.Decoder, common.EXIT_CONFIGURATION_LOAD_FAILURE)
		router := assertRunWithResultAndErrorMessage(func() (*core.EventRouter, error) {
			return core.NewEventRouter(cae.Configuration, decoder, cae.ComputeEngines(false), cae.PayoutEngines())
		}, common.EXIT_TRIGGER_FAILURE, "failed to create event router")

		unlock := assertRunWithResultAndErrorMessage(func() (func() error, error) {
			return lockStateStoreWithTimeout(DEFAULT_LOCK_TIMEOUT)
		}, common.EXIT_STATE_LOCK_FAILURE, "failed to lock state")
		defer unlock()

		fromBlock := cae.Configuration.Watch.FromBlock
		if cmd.Flags().Changed(FROM_BLOCK_FLAG) {
			fromBlock, _ = cmd.Flags().GetUint64(FROM_BLOCK_FLAG)
		}
		if fromBlock == 0 {
			fromBlock = assertRunWithResultAndErrorMessage(func() (uint64, error) {
				return cae.Chain.GetLatestBlockNumber(ctx)
			}, common.EXIT_COMMON_FAILURE, "failed to get latest block")
		}

		serveMetrics(cae.Configuration.Watch.MetricsAddress)
		w := &watcher{
			cae:     cae,
			router:  router,
			decoder: decoder,
			options: &core.RouteOptions{
				Compute: &common.ComputeOptions{StatsPeriod: cae.Configuration.Distribution.StatsPeriod},
			},
			lastBlock: fromBlock - 1,
		}

		slog.Info("watching for triggers", "from_block", fromBlock, "interval", cae.Configuration.Watch.Interval)
		metrics.SetDistributionState(string(enums.DISTRIBUTION_STATE_AWAITING_TRIGGER))
		ticker := clockwork.NewRealClock().NewTicker(cae.Configuration.Watch.Interval)
		defer ticker.Stop()
	loop:
		for {
			if err := w.scan(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					break
				}
				// the block range is retried on the next tick
				slog.Error("failed to process triggers", "error", err.Error(), "last_block", w.lastBlock)
			}
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.Chan():
			}
		}
		metrics.SetDistributionState(string(enums.DISTRIBUTION_STATE_IDLE))
		slog.Info("watch stopped", "last_block", w.lastBlock)
	},
}

func init() {
	watchCmd.Flags().Uint64(FROM_BLOCK_FLAG, 0, "first block to scan, defaults to the configured from_block or the current head")
	RootCmd.AddCommand(watchCmd)
}

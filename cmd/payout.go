package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/core"
	reporter_engines "github.com/tez-capital/refpay/engines/reporter"
	"github.com/tez-capital/refpay/state"
)

// warnIfAlreadyReported looks for payouts reported for the snapshot period by an earlier run
func warnIfAlreadyReported(ctx context.Context, cae *ConfigurationAndEngines) {
	if cae.Configuration.Reports.Disabled {
		return
	}
	snapshot, err := state.NewDistributionState(cae.Store).LoadSnapshot(ctx)
	if err != nil {
		return
	}
	fsReporter := reporter_engines.NewFileSystemReporter(reporter_engines.FsReporterOptions{
		Directory: state.Global.ResolvePath(cae.Configuration.Reports.Directory),
	})
	recipes, err := fsReporter.GetExistingPayouts(snapshot.GetPeriod())
	switch {
	case err == nil && len(recipes) > 0:
		slog.Warn("payouts for this period were already reported, make sure they were not sent twice",
			constants.LOG_FIELD_PERIOD, snapshot.GetPeriod(), "recipes", len(recipes))
	case err != nil && !errors.Is(err, os.ErrNotExist):
		slog.Debug("failed to read existing payouts", "error", err.Error())
	}
}

var payoutCmd = &cobra.Command{
	Use:   "payout",
	Short: "generates referral payouts",
	Long:  "turns the persisted distribution snapshot into batched depositReferralRewards calls",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cae := assertRunWithResultAndErrorMessage(func() (*ConfigurationAndEngines, error) {
			return loadConfigurationAndEngines(ctx)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load configuration and engines")
		defer cae.Close()

		options := &common.PayoutOptions{
			ShouldSend:     cae.Configuration.Distribution.ShouldSendTxn,
			DistributionId: cae.Configuration.Distribution.DistributionId,
			BatchSize:      cae.Configuration.Distribution.BatchSize,
		}
		if cmd.Flags().Changed(SEND_FLAG) {
			options.ShouldSend, _ = cmd.Flags().GetBool(SEND_FLAG)
		}
		if cmd.Flags().Changed(BATCH_SIZE_FLAG) {
			options.BatchSize, _ = cmd.Flags().GetInt(BATCH_SIZE_FLAG)
		}

		unlock := assertRunWithResultAndErrorMessage(func() (func() error, error) {
			return lockStateStoreWithTimeout(DEFAULT_LOCK_TIMEOUT)
		}, common.EXIT_STATE_LOCK_FAILURE, "failed to lock state")
		defer unlock()

		warnIfAlreadyReported(ctx, cae)
		result := assertRunWithErrorHandler(func() (*common.PayoutResult, error) {
			return core.GeneratePayouts(ctx, cae.Configuration, cae.PayoutEngines(), options)
		}, exitWithPhaseError(common.EXIT_PAYOUT_FAILURE, "failed to generate payouts"))

		stdio := reporter_engines.NewStdioReporter(os.Stderr, state.Global.GetWantsOutputJson())
		if err := stdio.ReportPayouts(result.Summary); err != nil {
			slog.Warn("failed to print payout summary", "error", err.Error())
		}
		printExecutionResult(result.Result)
	},
}

func init() {
	payoutCmd.Flags().Bool(SEND_FLAG, false, "overrides should_send_txn from the configuration")
	payoutCmd.Flags().Int(BATCH_SIZE_FLAG, constants.PAYOUT_BATCH_SIZE, "max recipients per call")
	RootCmd.AddCommand(payoutCmd)
}

package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/core"
	reporter_engines "github.com/tez-capital/refpay/engines/reporter"
	"github.com/tez-capital/refpay/state"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "computes the referral distribution",
	Long:  "aggregates the referral stats since the last run, persists the snapshot and prints the distribute call",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		dryRun, _ := cmd.Flags().GetBool(DRY_RUN_FLAG)
		account, _ := cmd.Flags().GetString(ACCOUNT_FLAG)
		statsPeriod, _ := cmd.Flags().GetString(PERIOD_FLAG)
		toTimestamp, _ := cmd.Flags().GetInt64(TO_FLAG)

		cae := assertRunWithResultAndErrorMessage(func() (*ConfigurationAndEngines, error) {
			return loadConfigurationAndEngines(ctx)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load configuration and engines")
		defer cae.Close()
		if statsPeriod == "" {
			statsPeriod = cae.Configuration.Distribution.StatsPeriod
		}

		if !dryRun {
			unlock := assertRunWithResultAndErrorMessage(func() (func() error, error) {
				return lockStateStoreWithTimeout(DEFAULT_LOCK_TIMEOUT)
			}, common.EXIT_STATE_LOCK_FAILURE, "failed to lock state")
			defer unlock()
		}

		result := assertRunWithErrorHandler(func() (*common.ComputeResult, error) {
			return core.ComputeDistribution(ctx, cae.Configuration, cae.ComputeEngines(dryRun), &common.ComputeOptions{
				StatsPeriod: statsPeriod,
				Account:     account,
				DryRun:      dryRun,
				ToTimestamp: toTimestamp,
			})
		}, exitWithPhaseError(common.EXIT_COMPUTE_FAILURE, "failed to compute distribution"))

		stdio := reporter_engines.NewStdioReporter(os.Stderr, state.Global.GetWantsOutputJson())
		if err := stdio.ReportDistribution(result.Snapshot, result.Summary); err != nil {
			slog.Warn("failed to print distribution summary", "error", err.Error())
		}
		printExecutionResult(result.Result)
	},
}

func init() {
	computeCmd.Flags().Bool(DRY_RUN_FLAG, false, "computes without persisting the snapshot or moving the cursor")
	computeCmd.Flags().String(ACCOUNT_FLAG, "", "restricts stats to a single account (dry run only)")
	computeCmd.Flags().String(PERIOD_FLAG, "", "stats period for protocol fees (prev/current)")
	computeCmd.Flags().Int64(TO_FLAG, 0, "overrides the end of the period (unix timestamp)")
	RootCmd.AddCommand(computeCmd)
}

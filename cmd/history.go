package cmd

import (
	"context"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/core/compute"
	"github.com/tez-capital/refpay/core/period"
	"github.com/tez-capital/refpay/engines/subgraph"
	"github.com/tez-capital/refpay/state"
	"github.com/tez-capital/refpay/utils"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "sums esGMX bonus rewards already distributed",
	Long:  "sums esGMX bonus rewards distributed per receiver within the period, the previous week by default",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		from, _ := cmd.Flags().GetInt64(FROM_FLAG)
		to, _ := cmd.Flags().GetInt64(TO_FLAG)
		account, _ := cmd.Flags().GetString(ACCOUNT_FLAG)

		config := assertRunWithResultAndErrorMessage(loadConfiguration, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load configuration")
		indexer := assertRunWithResultAndErrorMessage(func() (*subgraph.Client, error) {
			return subgraph.InitClient(config, nil)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load indexer")
		esGmx := assertRunWithResultAndErrorMessage(func() (ethcommon.Address, error) {
			return config.GetAddress(configuration.CONTRACT_ES_GMX)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to resolve esGMX address")

		distributionPeriod := assertRunWithResult(func() (common.DistributionPeriod, error) {
			return period.NewResolver(clockwork.NewRealClock()).Resolve(constants.PERIOD_PREV)
		}, common.EXIT_INVALID_ARGS)
		if from != 0 {
			distributionPeriod.FromTimestamp = from
		}
		if to != 0 {
			distributionPeriod.ToTimestamp = to
		}

		distributions := assertRunWithErrorHandler(func() ([]compute.BonusDistribution, error) {
			return compute.GetBonusDistributionHistory(ctx, indexer, esGmx, distributionPeriod, account)
		}, exitWithPhaseError(common.EXIT_COMMON_FAILURE, "failed to load bonus distribution history"))

		if state.Global.GetWantsOutputJson() {
			printJson(struct {
				Period        common.DistributionPeriod   `json:"period"`
				Distributions []compute.BonusDistribution `json:"distributions"`
				Total         common.Amount               `json:"total"`
			}{distributionPeriod, distributions, compute.SumBonusDistributions(distributions)})
			return
		}
		utils.PrintAccountAmounts(os.Stdout, "esGMX distributed "+utils.FormatPeriod(distributionPeriod),
			lo.Map(distributions, func(d compute.BonusDistribution, _ int) string { return d.Account }),
			lo.Map(distributions, func(d compute.BonusDistribution, _ int) common.Amount { return d.Amount }))
	},
}

func init() {
	historyCmd.Flags().Int64(FROM_FLAG, 0, "start of the period (unix timestamp)")
	historyCmd.Flags().Int64(TO_FLAG, 0, "end of the period (unix timestamp)")
	historyCmd.Flags().String(ACCOUNT_FLAG, "", "restricts the history to a single receiver")
	RootCmd.AddCommand(historyCmd)
}

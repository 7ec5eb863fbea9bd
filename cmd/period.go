package cmd

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/core/period"
	"github.com/tez-capital/refpay/state"
	"github.com/tez-capital/refpay/utils"
)

var periodCmd = &cobra.Command{
	Use:       "period [prev|current]",
	Short:     "prints the weekly stats period",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{constants.PERIOD_PREV, constants.PERIOD_CURRENT},
	Run: func(cmd *cobra.Command, args []string) {
		name := constants.PERIOD_PREV
		if len(args) > 0 {
			name = args[0]
		}
		resolved := assertRunWithResult(func() (common.DistributionPeriod, error) {
			return period.NewResolver(clockwork.NewRealClock()).Resolve(name)
		}, common.EXIT_INVALID_ARGS)
		if state.Global.GetWantsOutputJson() {
			printJson(resolved)
			return
		}
		fmt.Println(utils.FormatPeriod(resolved))
	},
}

func init() {
	RootCmd.AddCommand(periodCmd)
}

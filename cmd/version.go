package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/constants"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints refpay version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(constants.VERSION)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hjson/hjson-go/v4"
	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	refpay_configuration "github.com/tez-capital/refpay/configuration/v"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/state"
)

const (
	CHAIN_ID_FLAG = "chain-id"
	FORCE_FLAG    = "force"
)

func writeDefaultConfiguration(chainId int64, force bool) (string, error) {
	if !configuration.IsSupportedChainId(chainId) {
		return "", errors.Join(constants.ErrUnsupportedChain, constants.ErrInvalidArgument)
	}
	config := refpay_configuration.GetDefaultV0()
	config.Chain.ChainId = chainId
	data, err := hjson.MarshalWithOptions(config, hjson.DefaultOptions())
	if err != nil {
		return "", err
	}

	target := state.Global.GetConfigurationFilePath()
	if _, err := os.Stat(target); err == nil {
		if !force {
			return "", errors.Join(constants.ErrInvalidArgument, errors.New("configuration already exists, use --force to replace it"))
		}
		backup := target + constants.CONFIG_FILE_BACKUP_SUFFIX
		if err := os.Rename(target, backup); err != nil {
			return "", err
		}
		slog.Info("existing configuration backed up", "path", backup)
	}
	return target, os.WriteFile(target, data, 0600)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "writes the default configuration",
	Long:  "writes the default hjson configuration for the chain into the working directory",
	Run: func(cmd *cobra.Command, args []string) {
		chainId, _ := cmd.Flags().GetInt64(CHAIN_ID_FLAG)
		force, _ := cmd.Flags().GetBool(FORCE_FLAG)
		target := assertRunWithResultAndErrorMessage(func() (string, error) {
			return writeDefaultConfiguration(chainId, force)
		}, common.EXIT_COMMON_FAILURE, "failed to write configuration")
		slog.Info("configuration written", "path", target, constants.LOG_FIELD_CHAIN_ID, chainId)
	},
}

func init() {
	initCmd.Flags().Int64(CHAIN_ID_FLAG, configuration.ARBITRUM, "chain the distribution runs on")
	initCmd.Flags().Bool(FORCE_FLAG, false, "replaces an existing configuration, the old one is kept as a backup")
	RootCmd.AddCommand(initCmd)
}

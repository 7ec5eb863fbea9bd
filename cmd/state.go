package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	store_engines "github.com/tez-capital/refpay/engines/store"
	"github.com/tez-capital/refpay/state"
)

type storeAndConfiguration struct {
	configuration *configuration.RuntimeConfiguration
	store         common.KeyValueStore
	close         func() error
}

// loadStore opens only the state store, the chain and the indexer are not needed to inspect it
func loadStore(ctx context.Context) (*storeAndConfiguration, error) {
	config, err := loadConfiguration()
	if err != nil {
		return nil, err
	}
	store, closeStore, err := store_engines.Load(ctx, config)
	if err != nil {
		return nil, err
	}
	return &storeAndConfiguration{configuration: config, store: store, close: closeStore}, nil
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "inspects the persisted distribution state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "prints the persisted distribution state",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		loaded := assertRunWithResultAndErrorMessage(func() (*storeAndConfiguration, error) {
			return loadStore(ctx)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load state store")
		defer loaded.close()

		dump := assertRunWithResultAndErrorMessage(func() (*state.StoredState, error) {
			return state.NewDistributionState(loaded.store).Dump(ctx)
		}, common.EXIT_STATE_LOAD_FAILURE, "failed to read state")
		printJson(dump)
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "drops the persisted snapshot and prices",
	Long:  "drops the persisted snapshot and prices, with --all the period cursor is removed as well",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		all, _ := cmd.Flags().GetBool(ALL_FLAG)
		loaded := assertRunWithResultAndErrorMessage(func() (*storeAndConfiguration, error) {
			return loadStore(ctx)
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load state store")
		defer loaded.close()

		unlock := assertRunWithResultAndErrorMessage(func() (func() error, error) {
			return lockStateStoreWithTimeout(DEFAULT_LOCK_TIMEOUT)
		}, common.EXIT_STATE_LOCK_FAILURE, "failed to lock state")
		defer unlock()

		distributionState := state.NewDistributionState(loaded.store)
		reset := distributionState.Reset
		if all {
			reset = distributionState.Clear
		}
		assertRunWithErrorMessage(func() error {
			return reset(ctx)
		}, common.EXIT_STATE_LOAD_FAILURE, "failed to reset state")
		slog.Info("state reset", "store", loaded.store.GetId(), "all", all)
	},
}

func init() {
	stateResetCmd.Flags().Bool(ALL_FLAG, false, "removes the period cursor too")
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)
	RootCmd.AddCommand(stateCmd)
}

package compute

import (
	"time"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/metrics"
)

func ResetState(ctx *ComputeContext, options *common.ComputeOptions) (*ComputeContext, error) {
	defer metrics.ObserveStage(PIPELINE, "reset_state", time.Now())
	logger := ctx.logger.With("phase", "reset_state")
	logger.Info("computing distribution", constants.LOG_FIELD_STATE, enums.DISTRIBUTION_STATE_COMPUTING)
	metrics.SetDistributionState(string(enums.DISTRIBUTION_STATE_COMPUTING))

	if options.DryRun {
		logger.Debug("dry run, persisted state is left untouched")
		return ctx, nil
	}

	logger.Debug("removing previous distribution data")
	if err := ctx.state.Reset(ctx.Context()); err != nil {
		return ctx, err
	}
	return ctx, nil
}

package compute

import (
	"time"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/metrics"
)

// PersistSnapshot stores the snapshot and prices for the payout phase and advances the cursor past the period
func PersistSnapshot(ctx *ComputeContext, options *common.ComputeOptions) (*ComputeContext, error) {
	defer metrics.ObserveStage(PIPELINE, "persist_snapshot", time.Now())
	logger := ctx.logger.With("phase", "persist_snapshot")
	if options.DryRun {
		logger.Info("dry run, distribution data not persisted")
		return ctx, nil
	}

	data := ctx.StageData
	if err := ctx.state.SaveSnapshot(ctx.Context(), data.Snapshot); err != nil {
		return ctx, err
	}
	if err := ctx.state.SavePrices(ctx.Context(), data.WntPrice, data.GmxPrice); err != nil {
		return ctx, err
	}
	nextFromTimestamp := data.Period.ToTimestamp + 1
	if err := ctx.state.SaveFromTimestamp(ctx.Context(), nextFromTimestamp); err != nil {
		return ctx, err
	}
	logger.Debug("distribution data persisted", "store", ctx.GetStore().GetId(), "next_from_timestamp", nextFromTimestamp)
	return ctx, nil
}

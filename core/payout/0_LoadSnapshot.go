package payout

import (
	"time"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/metrics"
)

func LoadSnapshot(ctx *PayoutContext, options *common.PayoutOptions) (*PayoutContext, error) {
	defer metrics.ObserveStage(PIPELINE, "load_snapshot", time.Now())
	logger := ctx.logger.With("phase", "load_snapshot")
	logger.Info("paying referral rewards", constants.LOG_FIELD_STATE, enums.DISTRIBUTION_STATE_PAYING)
	metrics.SetDistributionState(string(enums.DISTRIBUTION_STATE_PAYING))

	snapshot, err := ctx.state.LoadSnapshot(ctx.Context())
	if err != nil {
		return ctx, err
	}
	wntPrice, err := ctx.state.LoadWntPrice(ctx.Context())
	if err != nil {
		return ctx, err
	}
	if !wntPrice.IsPositive() {
		return ctx, constants.ErrInvalidPrice
	}

	ctx.StageData.Snapshot = snapshot
	ctx.StageData.WntPrice = wntPrice
	logger.Debug("distribution data loaded", constants.LOG_FIELD_PERIOD, snapshot.GetPeriod(),
		constants.LOG_FIELD_AFFILIATES, len(snapshot.Affiliates),
		constants.LOG_FIELD_REFERRALS, len(snapshot.Referrals))
	return ctx, nil
}

package compute

import (
	"time"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/metrics"
	"golang.org/x/sync/errgroup"
)

func AggregateStats(ctx *ComputeContext, options *common.ComputeOptions) (*ComputeContext, error) {
	defer metrics.ObserveStage(PIPELINE, "aggregate_stats", time.Now())
	logger := ctx.logger.With("phase", "aggregate_stats")
	data := ctx.StageData
	indexer := ctx.GetIndexer()

	logger.Debug("fetching referral stats", constants.LOG_FIELD_PERIOD, data.Period, "account", options.Account)
	group, groupContext := errgroup.WithContext(ctx.Context())
	group.Go(func() (err error) {
		data.AffiliateStats, data.ReferralStats, err = FetchStats(groupContext, indexer, data.Period, options.Account)
		return err
	})
	group.Go(func() (err error) {
		data.AffiliateTiers, err = FetchAffiliateTiers(groupContext, indexer)
		return err
	})
	if err := group.Wait(); err != nil {
		return ctx, err
	}

	data.Aggregation = AggregateRows(data.AffiliateStats, data.ReferralStats, data.AffiliateTiers)
	if data.Aggregation.AllAffiliatesRebateUsd.IsZero() {
		logger.Warn("no V1 rebates, affiliate shares are zero", constants.LOG_FIELD_CHAIN_ID, ctx.GetConfiguration().ChainId)
	}

	logger.Info("stats aggregated",
		"affiliate_rows", len(data.AffiliateStats),
		"referral_rows", len(data.ReferralStats),
		constants.LOG_FIELD_AFFILIATES, len(data.Aggregation.Affiliates),
		constants.LOG_FIELD_REFERRALS, len(data.Aggregation.Referrals),
		"total_referral_volume", data.Aggregation.TotalReferralVolume.Format(constants.USD_DECIMALS, 4),
		"total_rebate_usd", data.Aggregation.TotalRebateUsd.Format(constants.USD_DECIMALS, 4),
		"affiliates_rebate_usd", data.Aggregation.AllAffiliatesRebateUsd.Format(constants.USD_DECIMALS, 4),
		"referrals_discount_usd", data.Aggregation.AllReferralsDiscountUsd.Format(constants.USD_DECIMALS, 4))
	return ctx, nil
}

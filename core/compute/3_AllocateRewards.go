package compute

import (
	"time"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/metrics"
)

func AllocateRewards(ctx *ComputeContext, options *common.ComputeOptions) (*ComputeContext, error) {
	defer metrics.ObserveStage(PIPELINE, "allocate_rewards", time.Now())
	logger := ctx.logger.With("phase", "allocate_rewards")
	data := ctx.StageData
	aggregation := data.Aggregation

	allocation := Allocate(aggregation, data.GmxPrice, data.MaxBonusAmount)
	data.Allocation = allocation

	if allocation.Bonus.IsCapped {
		logger.Warn("esGMX rewards exceed the available budget, rescaling",
			"total_usd", allocation.Bonus.TotalBonusUsd.Format(constants.USD_DECIMALS, 4),
			"cap_usd", allocation.Bonus.CapUsd.Format(constants.USD_DECIMALS, 4))
	}
	for _, affiliate := range allocation.Affiliates {
		if !affiliate.IsFiltered {
			continue
		}
		bonus := common.Zero
		if affiliate.BonusRewardAmount != nil {
			bonus = *affiliate.BonusRewardAmount
		}
		logger.Debug("skip affiliate with small rewards", "account", affiliate.Account,
			"rebate_usd", affiliate.RebateUsd.Format(constants.USD_DECIMALS, 2),
			"es_gmx", bonus.Format(constants.GMX_DECIMALS, 2))
	}
	threshold := common.NewAmountFromBig(constants.REWARD_THRESHOLD).Format(constants.USD_DECIMALS, 2)
	logger.Info("filtered affiliates", "filtered", allocation.FilteredAffiliates, "total", len(allocation.Affiliates), "threshold_usd", threshold)
	logger.Info("filtered referrals", "filtered", allocation.FilteredReferrals, "total", len(allocation.Referrals), "threshold_usd", threshold)

	payableAffiliates := allocation.PayableAffiliates()
	payableReferrals := allocation.PayableReferrals()
	configuration := ctx.GetConfiguration()

	data.Snapshot = &common.DistributionSnapshot{
		FromTimestamp:       data.Period.FromTimestamp,
		ToTimestamp:         data.Period.ToTimestamp,
		ChainId:             configuration.ChainId,
		TotalReferralVolume: aggregation.TotalReferralVolume,
		TotalRebateUsd:      aggregation.TotalRebateUsd,
		ShareDivisor:        common.NewAmountFromBig(constants.SHARE_DIVISOR),
		Affiliates:          payableAffiliates,
		Referrals:           payableReferrals,
		GmxPrice:            data.GmxPrice,
		TotalBonusRewards:   allocation.Bonus.TotalBonusRewards,
	}
	data.Summary = &common.DistributionSummary{
		ChainId:                 configuration.ChainId,
		Period:                  data.Period,
		TotalReferralVolume:     aggregation.TotalReferralVolume,
		TotalRebateUsd:          aggregation.TotalRebateUsd,
		AllAffiliatesRebateUsd:  aggregation.AllAffiliatesRebateUsd,
		AllReferralsDiscountUsd: aggregation.AllReferralsDiscountUsd,
		TotalBonusRewardsUsd:    allocation.Bonus.TotalBonusUsd,
		TotalBonusRewards:       allocation.Bonus.TotalBonusRewards,
		BonusCapUsd:             allocation.Bonus.CapUsd,
		IsBonusCapped:           allocation.Bonus.IsCapped,
		FeesV1Usd:               data.FeesV1Usd,
		FeesV2Usd:               data.FeesV2Usd,
		Affiliates:              allocation.Affiliates,
		Referrals:               allocation.Referrals,
	}
	return ctx, nil
}

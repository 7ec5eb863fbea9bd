package common

import (
	"encoding/json"
	"errors"

	"github.com/tez-capital/refpay/constants"
)

type DistributionPeriod struct {
	FromTimestamp int64 `json:"fromTimestamp"`
	ToTimestamp   int64 `json:"toTimestamp"`
}

type AffiliateAggregate struct {
	Account           string  `json:"account" csv:"account"`
	Share             Amount  `json:"share" csv:"share"`
	Volume            Amount  `json:"volume" csv:"volume"`
	TradesCount       int64   `json:"tradesCount" csv:"trades"`
	RebateUsd         Amount  `json:"rebateUsd" csv:"rebate_usd"`
	TotalRebateUsd    Amount  `json:"totalRebateUsd" csv:"total_rebate_usd"`
	V2TotalRebateUsd  Amount  `json:"-" csv:"v2_total_rebate_usd"`
	TierId            int     `json:"tierId" csv:"tier"`
	BonusRewardAmount *Amount `json:"esGmxRewards" csv:"bonus_amount"`
	BonusRewardUsd    *Amount `json:"esGmxRewardsUsd" csv:"bonus_usd"`

	IsFiltered bool `json:"-" csv:"filtered"`
}

func (affiliate *AffiliateAggregate) HasBonus() bool {
	return affiliate.BonusRewardAmount != nil && affiliate.BonusRewardAmount.IsPositive()
}

type ReferralAggregate struct {
	Account     string `json:"account" csv:"account"`
	Share       Amount `json:"share" csv:"share"`
	DiscountUsd Amount `json:"discountUsd" csv:"discount_usd"`
	Volume      Amount `json:"volume" csv:"volume"`

	IsFiltered bool `json:"-" csv:"filtered"`
}

// DistributionSnapshot is the only artifact handed over from the compute phase to the payout phase.
type DistributionSnapshot struct {
	FromTimestamp       int64                `json:"fromTimestamp"`
	ToTimestamp         int64                `json:"toTimestamp"`
	ChainId             int64                `json:"chainId"`
	TotalReferralVolume Amount               `json:"totalReferralVolume"`
	TotalRebateUsd      Amount               `json:"totalRebateUsd"`
	ShareDivisor        Amount               `json:"shareDivisor"`
	Affiliates          []AffiliateAggregate `json:"affiliates"`
	Referrals           []ReferralAggregate  `json:"referrals"`
	GmxPrice            Amount               `json:"gmxPrice"`
	TotalBonusRewards   Amount               `json:"totalEsGmxRewards"`
}

func (snapshot *DistributionSnapshot) GetPeriod() DistributionPeriod {
	return DistributionPeriod{
		FromTimestamp: snapshot.FromTimestamp,
		ToTimestamp:   snapshot.ToTimestamp,
	}
}

func (snapshot *DistributionSnapshot) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return nil, errors.Join(constants.ErrSnapshotMarshalFailed, err)
	}
	return data, nil
}

func ParseDistributionSnapshot(data []byte) (*DistributionSnapshot, error) {
	snapshot := DistributionSnapshot{}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Join(constants.ErrSnapshotParseFailed, err)
	}
	if snapshot.Affiliates == nil {
		snapshot.Affiliates = []AffiliateAggregate{}
	}
	if snapshot.Referrals == nil {
		snapshot.Referrals = []ReferralAggregate{}
	}
	return &snapshot, nil
}

// DistributionSummary carries period totals and all aggregates, filtered ones included, for reporting.
type DistributionSummary struct {
	ChainId                 int64                `json:"chain_id"`
	Period                  DistributionPeriod   `json:"period"`
	TotalReferralVolume     Amount               `json:"total_referral_volume"`
	TotalRebateUsd          Amount               `json:"total_rebate_usd"`
	AllAffiliatesRebateUsd  Amount               `json:"all_affiliates_rebate_usd"`
	AllReferralsDiscountUsd Amount               `json:"all_referrals_discount_usd"`
	TotalBonusRewardsUsd    Amount               `json:"total_bonus_rewards_usd"`
	TotalBonusRewards       Amount               `json:"total_bonus_rewards"`
	BonusCapUsd             Amount               `json:"bonus_cap_usd"`
	IsBonusCapped           bool                 `json:"is_bonus_capped"`
	FeesV1Usd               Amount               `json:"fees_v1_usd"`
	FeesV2Usd               Amount               `json:"fees_v2_usd"`
	Affiliates              []AffiliateAggregate `json:"affiliates"`
	Referrals               []ReferralAggregate  `json:"referrals"`
}

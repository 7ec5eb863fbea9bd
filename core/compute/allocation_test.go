package compute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

const (
	affiliateA = "0x000000000000000000000000000000000000000a"
	affiliateB = "0x000000000000000000000000000000000000000b"
	affiliateC = "0x000000000000000000000000000000000000000c"
	affiliateD = "0x000000000000000000000000000000000000000d"
	referral1  = "0x0000000000000000000000000000000000000001"
	referral2  = "0x0000000000000000000000000000000000000002"
	referral3  = "0x0000000000000000000000000000000000000003"
	referral4  = "0x0000000000000000000000000000000000000004"
)

func usd(n int64) common.Amount {
	return common.ExpandDecimals(n, constants.USD_DECIMALS)
}

func affiliateRow(affiliate string, totalRebateUsd common.Amount, discountUsd common.Amount, v2TotalRebateUsd common.Amount) AffiliateStatRow {
	return AffiliateStatRow{
		Affiliate: affiliate,
		V1Data: V1AffiliateData{
			TotalRebateUsd: totalRebateUsd,
			DiscountUsd:    discountUsd,
			Volume:         totalRebateUsd.Mul64(100),
			Trades:         common.NewAmount(3),
		},
		V2Data: V2AffiliateData{TotalRebateUsd: v2TotalRebateUsd},
	}
}

func referralRow(referral string, discountUsd common.Amount) ReferralStatRow {
	return ReferralStatRow{
		Referral: referral,
		V1Data: V1ReferralData{
			DiscountUsd: discountUsd,
			Volume:      discountUsd.Mul64(200),
		},
	}
}

// $50 per esGMX, quoted per token unit like the data store does
var gmxPrice = common.ExpandDecimals(50, constants.PRICE_DECIMALS)

func TestAggregateRows(t *testing.T) {
	assert := assert.New(t)

	aggregation := AggregateRows([]AffiliateStatRow{
		affiliateRow(affiliateA, usd(60), usd(25), usd(10)),
		affiliateRow(affiliateA, usd(40), usd(15), usd(10)),
		affiliateRow(affiliateB, usd(50), usd(10), common.Zero),
	}, []ReferralStatRow{
		referralRow(referral1, usd(20)),
		referralRow(referral1, usd(10)),
		referralRow(referral2, usd(10)),
	}, map[string]int{affiliateA: 2, affiliateB: 1})

	assert.Len(aggregation.Affiliates, 2)
	a := aggregation.Affiliates[affiliateA]
	assert.Equal(usd(60), a.RebateUsd)
	assert.Equal(usd(100), a.TotalRebateUsd)
	assert.Equal(usd(20), a.V2TotalRebateUsd)
	assert.Equal(usd(10000), a.Volume)
	assert.Equal(int64(6), a.TradesCount)
	assert.Equal(2, a.TierId)
	assert.Equal(0, AggregateRows([]AffiliateStatRow{affiliateRow(affiliateC, usd(1), common.Zero, common.Zero)}, nil, nil).Affiliates[affiliateC].TierId)

	assert.Equal(usd(150), aggregation.TotalRebateUsd)
	assert.Equal(usd(15000), aggregation.TotalReferralVolume)
	assert.Equal(usd(100), aggregation.AllAffiliatesRebateUsd)
	assert.Equal(usd(40), aggregation.AllReferralsDiscountUsd)
	assert.Equal(usd(30), aggregation.Referrals[referral1].DiscountUsd)
	assert.Equal(usd(8000), aggregation.Referrals[referral2].Volume)
}

func TestAggregateAndShareSoleAffiliate(t *testing.T) {
	assert := assert.New(t)

	first := affiliateRow(affiliateA, usd(600), usd(100), common.Zero)
	first.V1Data.Trades = common.NewAmount(2)
	second := affiliateRow(affiliateA, usd(400), usd(100), common.Zero)
	aggregation := AggregateRows([]AffiliateStatRow{first, second}, nil, nil)

	a := aggregation.Affiliates[affiliateA]
	assert.Equal(usd(800), a.RebateUsd)
	assert.Equal(usd(1000), a.TotalRebateUsd)
	assert.Equal(int64(5), a.TradesCount)
	assert.Equal(usd(800), aggregation.AllAffiliatesRebateUsd)

	allocation := Allocate(aggregation, gmxPrice, common.Zero)
	assert.Len(allocation.Affiliates, 1)
	assert.Equal(shareDivisor, allocation.Affiliates[0].Share)
}

func TestComputeShare(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(common.NewAmount(600_000_000), ComputeShare(usd(60), usd(100)))
	assert.Equal(common.NewAmount(333_333_333), ComputeShare(usd(1), usd(3)))
	assert.Equal(common.Zero, ComputeShare(usd(1), common.Zero))
}

func TestBonusConversions(t *testing.T) {
	assert := assert.New(t)
	// 10 esGMX at $50
	assert.Equal(usd(500), BonusUsdCap(common.ExpandDecimals(10, constants.GMX_DECIMALS), gmxPrice))
	// $24 at $50 is 0.48 esGMX
	assert.Equal(common.ExpandDecimals(48, 16), BonusAmountFromUsd(usd(24), gmxPrice))
}

func TestAllocateBonusRewardsWithinBudget(t *testing.T) {
	assert := assert.New(t)

	affiliates := []*common.AffiliateAggregate{
		{Account: affiliateA, TierId: 2, TotalRebateUsd: usd(100), V2TotalRebateUsd: usd(20)},
	}
	// 1000 esGMX budget is $50000
	result := AllocateBonusRewards(affiliates, gmxPrice, common.ExpandDecimals(1000, constants.GMX_DECIMALS))

	assert.False(result.IsCapped)
	assert.Equal(usd(50000), result.CapUsd)
	assert.Equal(usd(24), *affiliates[0].BonusRewardUsd)
	assert.Equal(common.ExpandDecimals(48, 16), *affiliates[0].BonusRewardAmount)
	assert.Equal(common.ExpandDecimals(48, 16), result.TotalBonusRewards)
}

func TestAllocate(t *testing.T) {
	assert := assert.New(t)

	aggregation := AggregateRows([]AffiliateStatRow{
		affiliateRow(affiliateB, usd(50), usd(10), common.Zero),
		affiliateRow(affiliateA, usd(100), usd(40), usd(20)),
		// below the rebate threshold and without bonus
		affiliateRow(affiliateD, common.ExpandDecimals(5, 27), common.Zero, common.Zero),
	}, []ReferralStatRow{
		referralRow(referral1, usd(30)),
		referralRow(referral2, usd(10)),
		referralRow(referral3, common.Zero),
		referralRow(referral4, common.ExpandDecimals(5, 27)),
	}, map[string]int{affiliateA: 2, affiliateB: 1})

	allocation := Allocate(aggregation, gmxPrice, common.ExpandDecimals(10, constants.GMX_DECIMALS))

	assert.Equal([]string{affiliateA, affiliateB, affiliateD}, accounts(allocation.Affiliates))
	assert.Equal(1, allocation.FilteredAffiliates)
	assert.True(allocation.Affiliates[2].IsFiltered)
	assert.Equal([]string{affiliateA, affiliateB}, accounts(allocation.PayableAffiliates()))

	shares := common.Zero
	for _, affiliate := range allocation.Affiliates {
		shares = shares.Add(affiliate.Share)
	}
	assert.True(shares.Cmp(shareDivisor) <= 0)
	assert.True(shares.Cmp(shareDivisor.Sub(common.NewAmount(int64(len(allocation.Affiliates))))) >= 0)

	a := allocation.Affiliates[0]
	assert.True(a.HasBonus())
	assert.Equal(usd(24), *a.BonusRewardUsd)
	assert.Equal(common.ExpandDecimals(48, 16), *a.BonusRewardAmount)
	assert.False(allocation.Affiliates[1].HasBonus())
	assert.False(allocation.Bonus.IsCapped)
	assert.Equal(common.ExpandDecimals(48, 16), allocation.Bonus.TotalBonusRewards)

	// zero share referrals are dropped, small ones are flagged
	assert.Equal([]string{referral1, referral2, referral4}, referralAccounts(allocation.Referrals))
	assert.Equal(1, allocation.FilteredReferrals)
	assert.Equal([]string{referral1, referral2}, referralAccounts(allocation.PayableReferrals()))
}

func TestAllocateBonusRewardsCapped(t *testing.T) {
	assert := assert.New(t)

	affiliates := []*common.AffiliateAggregate{
		{Account: affiliateA, TierId: 2, TotalRebateUsd: usd(100), V2TotalRebateUsd: usd(20)},
		{Account: affiliateB, TierId: 1, TotalRebateUsd: usd(500), V2TotalRebateUsd: common.Zero},
		{Account: affiliateC, TierId: 2, TotalRebateUsd: usd(30), V2TotalRebateUsd: common.Zero},
	}
	// $12 budget for $30 of bonus
	result := AllocateBonusRewards(affiliates, gmxPrice, common.ExpandDecimals(24, 16))

	assert.True(result.IsCapped)
	assert.Equal(usd(12), result.CapUsd)
	assert.Equal(usd(30), result.TotalBonusUsd)
	assert.Equal(common.ExpandDecimals(96, 29), *affiliates[0].BonusRewardUsd)
	assert.Equal(common.ExpandDecimals(24, 29), *affiliates[2].BonusRewardUsd)
	assert.Nil(affiliates[1].BonusRewardAmount)
	assert.Equal(common.ExpandDecimals(24, 16), result.TotalBonusRewards)
	assert.True(result.TotalBonusRewards.Cmp(common.ExpandDecimals(24, 16)) <= 0)
}

func TestAllocateBonusRewardsSlightlyOverCap(t *testing.T) {
	assert := assert.New(t)

	affiliates := []*common.AffiliateAggregate{
		{Account: affiliateA, TierId: 2, TotalRebateUsd: usd(300), V2TotalRebateUsd: common.Zero},
		{Account: affiliateB, TierId: 2, TotalRebateUsd: usd(200), V2TotalRebateUsd: usd(10)},
	}
	// $102 of bonus for a $100 budget, 2 esGMX at $50
	budget := common.ExpandDecimals(2, constants.GMX_DECIMALS)
	result := AllocateBonusRewards(affiliates, gmxPrice, budget)

	assert.True(result.IsCapped)
	assert.Equal(usd(100), result.CapUsd)
	assert.Equal(usd(102), result.TotalBonusUsd)

	rescaledUsd := affiliates[0].BonusRewardUsd.Add(*affiliates[1].BonusRewardUsd)
	assert.True(rescaledUsd.Cmp(result.CapUsd) <= 0)
	assert.True(rescaledUsd.Cmp(result.CapUsd.Sub(common.NewAmount(2))) >= 0)
	// 60:42 proportions survive the haircut
	assert.True(affiliates[0].BonusRewardUsd.Cmp(usd(58)) > 0)
	assert.True(affiliates[1].BonusRewardUsd.Cmp(usd(42)) < 0)

	assert.Equal(affiliates[0].BonusRewardAmount.Add(*affiliates[1].BonusRewardAmount), result.TotalBonusRewards)
	assert.True(result.TotalBonusRewards.Cmp(budget) <= 0)
	assert.True(result.TotalBonusRewards.Cmp(budget.Sub(common.NewAmount(2))) >= 0)
}

func TestAllocateBonusRewardsZeroCap(t *testing.T) {
	assert := assert.New(t)

	affiliates := []*common.AffiliateAggregate{
		{Account: affiliateA, TierId: 2, TotalRebateUsd: usd(100), V2TotalRebateUsd: common.Zero},
	}
	result := AllocateBonusRewards(affiliates, gmxPrice, common.Zero)
	assert.True(result.IsCapped)
	assert.True(result.TotalBonusRewards.IsZero())
	assert.True(affiliates[0].BonusRewardAmount.IsZero())
	assert.False(affiliates[0].HasBonus())
}

func TestAllocateWithoutV1Rebates(t *testing.T) {
	assert := assert.New(t)

	aggregation := AggregateRows([]AffiliateStatRow{
		affiliateRow(affiliateA, common.Zero, common.Zero, usd(50)),
	}, nil, map[string]int{affiliateA: 2})
	allocation := Allocate(aggregation, gmxPrice, common.ExpandDecimals(10, constants.GMX_DECIMALS))

	assert.Len(allocation.Affiliates, 1)
	a := allocation.Affiliates[0]
	assert.True(a.Share.IsZero())
	// $10 of bonus keeps the affiliate payable
	assert.Equal(usd(10), *a.BonusRewardUsd)
	assert.False(a.IsFiltered)
	assert.Empty(allocation.Referrals)
}

func TestThresholds(t *testing.T) {
	assert := assert.New(t)

	small := common.ExpandDecimals(9, 27)
	bonus := bonusThreshold
	assert.True(IsAffiliateTooSmall(&common.AffiliateAggregate{RebateUsd: small}))
	assert.False(IsAffiliateTooSmall(&common.AffiliateAggregate{RebateUsd: rewardThreshold}))
	assert.False(IsAffiliateTooSmall(&common.AffiliateAggregate{RebateUsd: small, BonusRewardAmount: &bonus}))
	tinyBonus := bonusThreshold.Sub(common.NewAmount(1))
	assert.True(IsAffiliateTooSmall(&common.AffiliateAggregate{RebateUsd: small, BonusRewardAmount: &tinyBonus}))

	assert.True(IsReferralTooSmall(&common.ReferralAggregate{DiscountUsd: small}))
	assert.False(IsReferralTooSmall(&common.ReferralAggregate{DiscountUsd: rewardThreshold}))
}

func accounts(affiliates []common.AffiliateAggregate) []string {
	result := make([]string, 0, len(affiliates))
	for _, affiliate := range affiliates {
		result = append(result, affiliate.Account)
	}
	return result
}

func referralAccounts(referrals []common.ReferralAggregate) []string {
	result := make([]string, 0, len(referrals))
	for _, referral := range referrals {
		result = append(result, referral.Account)
	}
	return result
}

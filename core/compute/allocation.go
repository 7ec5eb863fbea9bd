package compute

import (
	"slices"

	"github.com/samber/lo"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

var (
	shareDivisor    = common.NewAmountFromBig(constants.SHARE_DIVISOR)
	rewardThreshold = common.NewAmountFromBig(constants.REWARD_THRESHOLD)
	bonusThreshold  = common.NewAmountFromBig(constants.BONUS_REWARDS_THRESHOLD)
	usdPrecision    = common.ExpandDecimals(1, constants.USD_DECIMALS)
)

// Aggregation holds per account sums of the daily stats rows of a period
type Aggregation struct {
	Affiliates map[string]*common.AffiliateAggregate
	Referrals  map[string]*common.ReferralAggregate

	TotalRebateUsd          common.Amount
	TotalReferralVolume     common.Amount
	AllAffiliatesRebateUsd  common.Amount
	AllReferralsDiscountUsd common.Amount
}

func AggregateRows(affiliateStats []AffiliateStatRow, referralStats []ReferralStatRow, tiers map[string]int) *Aggregation {
	result := &Aggregation{
		Affiliates:              make(map[string]*common.AffiliateAggregate),
		Referrals:               make(map[string]*common.ReferralAggregate),
		TotalRebateUsd:          common.Zero,
		TotalReferralVolume:     common.Zero,
		AllAffiliatesRebateUsd:  common.Zero,
		AllReferralsDiscountUsd: common.Zero,
	}

	for _, row := range affiliateStats {
		affiliate, ok := result.Affiliates[row.Affiliate]
		if !ok {
			affiliate = &common.AffiliateAggregate{
				Account:          row.Affiliate,
				Share:            common.Zero,
				Volume:           common.Zero,
				RebateUsd:        common.Zero,
				TotalRebateUsd:   common.Zero,
				V2TotalRebateUsd: common.Zero,
				TierId:           tiers[row.Affiliate],
			}
			result.Affiliates[row.Affiliate] = affiliate
		}

		rebateUsd := row.V1Data.TotalRebateUsd.Sub(row.V1Data.DiscountUsd)
		result.AllAffiliatesRebateUsd = result.AllAffiliatesRebateUsd.Add(rebateUsd)
		affiliate.RebateUsd = affiliate.RebateUsd.Add(rebateUsd)
		affiliate.TotalRebateUsd = affiliate.TotalRebateUsd.Add(row.V1Data.TotalRebateUsd)
		affiliate.Volume = affiliate.Volume.Add(row.V1Data.Volume)
		affiliate.V2TotalRebateUsd = affiliate.V2TotalRebateUsd.Add(row.V2Data.TotalRebateUsd)
		affiliate.TradesCount += row.V1Data.Trades.Big().Int64()

		result.TotalRebateUsd = result.TotalRebateUsd.Add(row.V1Data.TotalRebateUsd)
		result.TotalReferralVolume = result.TotalReferralVolume.Add(row.V1Data.Volume)
	}

	for _, row := range referralStats {
		referral, ok := result.Referrals[row.Referral]
		if !ok {
			referral = &common.ReferralAggregate{
				Account:     row.Referral,
				Share:       common.Zero,
				DiscountUsd: common.Zero,
				Volume:      common.Zero,
			}
			result.Referrals[row.Referral] = referral
		}
		referral.DiscountUsd = referral.DiscountUsd.Add(row.V1Data.DiscountUsd)
		referral.Volume = referral.Volume.Add(row.V1Data.Volume)
		result.AllReferralsDiscountUsd = result.AllReferralsDiscountUsd.Add(row.V1Data.DiscountUsd)
	}
	return result
}

// ComputeShare returns value * SHARE_DIVISOR / total, zero when total is zero
func ComputeShare(value common.Amount, total common.Amount) common.Amount {
	if total.IsZero() {
		return common.Zero
	}
	return value.Mul(shareDivisor).Div(total)
}

// BonusUsdCap converts the on-chain bonus token budget to USD.
// gmxPrice is the data store price, USD per smallest token unit.
func BonusUsdCap(maxBonusAmount common.Amount, gmxPrice common.Amount) common.Amount {
	return maxBonusAmount.Mul(gmxPrice)
}

// BonusAmountFromUsd converts a USD value to bonus token units
func BonusAmountFromUsd(usd common.Amount, gmxPrice common.Amount) common.Amount {
	return usd.Div(gmxPrice)
}

type BonusAllocation struct {
	TotalBonusUsd     common.Amount `json:"total_bonus_usd"`
	TotalBonusRewards common.Amount `json:"total_bonus_rewards"`
	CapUsd            common.Amount `json:"cap_usd"`
	IsCapped          bool          `json:"is_capped"`
}

// AllocateBonusRewards sets bonus rewards of BONUS_TIER affiliates and rescales them uniformly
// when their USD value exceeds the cap. TotalBonusUsd is the value before rescaling.
func AllocateBonusRewards(affiliates []*common.AffiliateAggregate, gmxPrice common.Amount, maxBonusAmount common.Amount) BonusAllocation {
	result := BonusAllocation{
		TotalBonusUsd:     common.Zero,
		TotalBonusRewards: common.Zero,
		CapUsd:            BonusUsdCap(maxBonusAmount, gmxPrice),
	}

	eligible := lo.Filter(affiliates, func(affiliate *common.AffiliateAggregate, _ int) bool {
		return affiliate.TierId == constants.BONUS_TIER
	})
	for _, affiliate := range eligible {
		// 20% of v1 and v2 rebates
		usd := affiliate.TotalRebateUsd.Add(affiliate.V2TotalRebateUsd).Div64(constants.BONUS_DIVISOR)
		amount := BonusAmountFromUsd(usd, gmxPrice)
		affiliate.BonusRewardUsd = &usd
		affiliate.BonusRewardAmount = &amount
		result.TotalBonusUsd = result.TotalBonusUsd.Add(usd)
		result.TotalBonusRewards = result.TotalBonusRewards.Add(amount)
	}

	if result.TotalBonusUsd.Cmp(result.CapUsd) <= 0 {
		return result
	}

	result.IsCapped = true
	result.TotalBonusRewards = common.Zero
	// rescale factor kept at USD precision so caps binding by a fraction of a percent still apply
	denominator := result.TotalBonusUsd.Mul(usdPrecision).Div(result.CapUsd)
	for _, affiliate := range eligible {
		usd := common.Zero
		if !denominator.IsZero() {
			usd = affiliate.BonusRewardUsd.Mul(usdPrecision).Div(denominator)
		}
		amount := BonusAmountFromUsd(usd, gmxPrice)
		affiliate.BonusRewardUsd = &usd
		affiliate.BonusRewardAmount = &amount
		result.TotalBonusRewards = result.TotalBonusRewards.Add(amount)
	}
	return result
}

// IsAffiliateTooSmall reports affiliates below both the rebate and the bonus thresholds
func IsAffiliateTooSmall(affiliate *common.AffiliateAggregate) bool {
	tooSmallBonus := affiliate.BonusRewardAmount == nil || affiliate.BonusRewardAmount.IsLess(bonusThreshold)
	return affiliate.RebateUsd.IsLess(rewardThreshold) && tooSmallBonus
}

func IsReferralTooSmall(referral *common.ReferralAggregate) bool {
	return referral.DiscountUsd.IsLess(rewardThreshold)
}

// Allocation is the outcome of the reward allocation, ordered by account
type Allocation struct {
	// Affiliates contains every aggregated affiliate, filtered ones are flagged
	Affiliates []common.AffiliateAggregate
	// Referrals contains referrals with a non zero share, filtered ones are flagged
	Referrals []common.ReferralAggregate
	Bonus     BonusAllocation

	FilteredAffiliates int
	FilteredReferrals  int
}

func (allocation *Allocation) PayableAffiliates() []common.AffiliateAggregate {
	return lo.Filter(allocation.Affiliates, func(affiliate common.AffiliateAggregate, _ int) bool {
		return !affiliate.IsFiltered
	})
}

func (allocation *Allocation) PayableReferrals() []common.ReferralAggregate {
	return lo.Filter(allocation.Referrals, func(referral common.ReferralAggregate, _ int) bool {
		return !referral.IsFiltered
	})
}

func sortedKeys[T any](m map[string]T) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

// Allocate computes shares, bonus rewards and threshold flags. The aggregation is modified in place.
func Allocate(aggregation *Aggregation, gmxPrice common.Amount, maxBonusAmount common.Amount) *Allocation {
	affiliates := lo.Map(sortedKeys(aggregation.Affiliates), func(account string, _ int) *common.AffiliateAggregate {
		return aggregation.Affiliates[account]
	})
	for _, affiliate := range affiliates {
		affiliate.Share = ComputeShare(affiliate.RebateUsd, aggregation.AllAffiliatesRebateUsd)
	}

	result := &Allocation{
		Affiliates: make([]common.AffiliateAggregate, 0, len(affiliates)),
		Referrals:  make([]common.ReferralAggregate, 0, len(aggregation.Referrals)),
		Bonus:      AllocateBonusRewards(affiliates, gmxPrice, maxBonusAmount),
	}

	for _, affiliate := range affiliates {
		affiliate.IsFiltered = IsAffiliateTooSmall(affiliate)
		if affiliate.IsFiltered {
			result.FilteredAffiliates++
		}
		result.Affiliates = append(result.Affiliates, *affiliate)
	}

	for _, account := range sortedKeys(aggregation.Referrals) {
		referral := aggregation.Referrals[account]
		referral.Share = ComputeShare(referral.DiscountUsd, aggregation.AllReferralsDiscountUsd)
		if referral.Share.IsZero() {
			continue
		}
		referral.IsFiltered = IsReferralTooSmall(referral)
		if referral.IsFiltered {
			result.FilteredReferrals++
		}
		result.Referrals = append(result.Referrals, *referral)
	}
	return result
}

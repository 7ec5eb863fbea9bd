package payout

import (
	"errors"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/metrics"
)

func parseAccount(account string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(account) {
		return ethcommon.Address{}, errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid account '%s' in distribution data", account))
	}
	return ethcommon.HexToAddress(account), nil
}

// CollectPayoutRecipes converts snapshot entries to token amounts. The zero address is never paid.
func CollectPayoutRecipes(snapshot *common.DistributionSnapshot, wntPrice common.Amount, wnt ethcommon.Address, esGmx ethcommon.Address) (affiliates []common.PayoutRecipe, discounts []common.PayoutRecipe, bonuses []common.PayoutRecipe, err error) {
	affiliates = make([]common.PayoutRecipe, 0, len(snapshot.Affiliates))
	discounts = make([]common.PayoutRecipe, 0, len(snapshot.Referrals))
	bonuses = make([]common.PayoutRecipe, 0)

	for _, affiliate := range snapshot.Affiliates {
		account, err := parseAccount(affiliate.Account)
		if err != nil {
			return nil, nil, nil, err
		}
		if account == (ethcommon.Address{}) {
			continue
		}
		if affiliate.RebateUsd.IsPositive() {
			affiliates = append(affiliates, common.PayoutRecipe{
				Category: enums.PAYOUT_CATEGORY_AFFILIATE,
				Account:  account,
				Token:    wnt,
				Amount:   affiliate.RebateUsd.Div(wntPrice),
			})
		}
		if affiliate.HasBonus() {
			bonuses = append(bonuses, common.PayoutRecipe{
				Category: enums.PAYOUT_CATEGORY_BONUS,
				Account:  account,
				Token:    esGmx,
				Amount:   *affiliate.BonusRewardAmount,
			})
		}
	}

	for _, referral := range snapshot.Referrals {
		account, err := parseAccount(referral.Account)
		if err != nil {
			return nil, nil, nil, err
		}
		if account == (ethcommon.Address{}) {
			continue
		}
		if referral.DiscountUsd.IsPositive() {
			discounts = append(discounts, common.PayoutRecipe{
				Category: enums.PAYOUT_CATEGORY_DISCOUNT,
				Account:  account,
				Token:    wnt,
				Amount:   referral.DiscountUsd.Div(wntPrice),
			})
		}
	}
	return affiliates, discounts, bonuses, nil
}

func CollectPayouts(ctx *PayoutContext, options *common.PayoutOptions) (*PayoutContext, error) {
	defer metrics.ObserveStage(PIPELINE, "collect_payouts", time.Now())
	logger := ctx.logger.With("phase", "collect_payouts")
	data := ctx.StageData

	var err error
	data.AffiliateRewards, data.TraderDiscounts, data.BonusRewards, err = CollectPayoutRecipes(data.Snapshot, data.WntPrice, ctx.Tokens.Wnt, ctx.Tokens.EsGmx)
	if err != nil {
		return ctx, err
	}
	logger.Info("payouts collected",
		"affiliate_rewards", len(data.AffiliateRewards),
		"trader_discounts", len(data.TraderDiscounts),
		"bonus_rewards", len(data.BonusRewards))
	return ctx, nil
}

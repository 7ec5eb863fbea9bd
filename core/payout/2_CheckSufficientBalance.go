package payout

import (
	"errors"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/metrics"
)

// CheckSufficientBalance runs regardless of the send flag so dry runs surface solvency problems too
func CheckSufficientBalance(ctx *PayoutContext, options *common.PayoutOptions) (*PayoutContext, error) {
	defer metrics.ObserveStage(PIPELINE, "check_sufficient_balance", time.Now())
	logger := ctx.logger.With("phase", "check_sufficient_balance")
	data := ctx.StageData

	required := common.SumPayoutAmounts(data.AffiliateRewards).Add(common.SumPayoutAmounts(data.TraderDiscounts))
	logger.Debug("checking vault balance", "vault", ctx.Tokens.Vault, "token", ctx.Tokens.Wnt)
	balance, err := vaultBalance(ctx, ctx.Tokens.Wnt)
	if err != nil {
		return ctx, err
	}
	data.VaultBalance = balance
	if data.VaultBalance.IsLess(required) {
		return ctx, errors.Join(constants.ErrInsufficientBalance, fmt.Errorf("required: %s, available: %s", required, data.VaultBalance))
	}

	requiredBonus := common.SumPayoutAmounts(data.BonusRewards)
	logger.Debug("checking vault balance", "vault", ctx.Tokens.Vault, "token", ctx.Tokens.EsGmx)
	bonusBalance, err := vaultBalance(ctx, ctx.Tokens.EsGmx)
	if err != nil {
		return ctx, err
	}
	data.VaultBonusBalance = bonusBalance
	if data.VaultBonusBalance.IsLess(requiredBonus) {
		return ctx, errors.Join(constants.ErrInsufficientBalance, fmt.Errorf("insufficient esGMX, required: %s, available: %s", requiredBonus, data.VaultBonusBalance))
	}
	return ctx, nil
}

func vaultBalance(ctx *PayoutContext, token ethcommon.Address) (common.Amount, error) {
	balance, err := ctx.GetChainReader().BalanceOf(ctx.Context(), token, ctx.Tokens.Vault)
	if err != nil {
		return common.Zero, err
	}
	return common.NewAmountFromBig(balance), nil
}

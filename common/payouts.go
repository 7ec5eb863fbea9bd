package common

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/tez-capital/refpay/constants/enums"
)

type PayoutRecipe struct {
	Category enums.EPayoutCategory `json:"category" csv:"category"`
	Account  common.Address        `json:"account" csv:"account"`
	Token    common.Address        `json:"token" csv:"token"`
	Amount   Amount                `json:"amount" csv:"amount"`
}

func (recipe PayoutRecipe) GetAmount() Amount {
	return recipe.Amount
}

func SumPayoutAmounts(recipes []PayoutRecipe) Amount {
	return lo.Reduce(recipes, func(agg Amount, recipe PayoutRecipe, _ int) Amount {
		return agg.Add(recipe.Amount)
	}, Zero)
}

// CallDescriptor is a call the automation runtime submits on our behalf
type CallDescriptor struct {
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

type ExecutionResult struct {
	CanExec  bool             `json:"canExec"`
	CallData []CallDescriptor `json:"callData"`
	Message  string           `json:"message,omitempty"`
}

func NewNoopResult(message string) *ExecutionResult {
	return &ExecutionResult{
		CanExec:  false,
		CallData: []CallDescriptor{},
		Message:  message,
	}
}

type PayoutSummary struct {
	ChainId           int64              `json:"chain_id"`
	Period            DistributionPeriod `json:"period"`
	DistributionId    *big.Int           `json:"distribution_id"`
	WntPrice          Amount             `json:"wnt_price"`
	AffiliateRewards  []PayoutRecipe     `json:"affiliate_rewards"`
	TraderDiscounts   []PayoutRecipe     `json:"trader_discounts"`
	BonusRewards      []PayoutRecipe     `json:"bonus_rewards"`
	TotalAffiliateWnt Amount             `json:"total_affiliate_wnt"`
	TotalDiscountWnt  Amount             `json:"total_discount_wnt"`
	TotalBonusAmount  Amount             `json:"total_bonus_amount"`
	VaultBalance      Amount             `json:"vault_balance"`
	VaultBonusBalance Amount             `json:"vault_bonus_balance"`
	Batches           int                `json:"batches"`
	IsSendEnabled     bool               `json:"send_enabled"`
}

func (summary *PayoutSummary) AllRecipes() []PayoutRecipe {
	result := make([]PayoutRecipe, 0, len(summary.AffiliateRewards)+len(summary.TraderDiscounts)+len(summary.BonusRewards))
	result = append(result, summary.AffiliateRewards...)
	result = append(result, summary.TraderDiscounts...)
	return append(result, summary.BonusRewards...)
}

package payout

import (
	"context"
	"log/slog"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/state"
)

const PIPELINE = "payout"

type StageData struct {
	Snapshot *common.DistributionSnapshot
	WntPrice common.Amount

	AffiliateRewards  []common.PayoutRecipe
	TraderDiscounts   []common.PayoutRecipe
	BonusRewards      []common.PayoutRecipe
	VaultBalance      common.Amount
	VaultBonusBalance common.Amount

	Batches  []common.PayoutBatch
	CallData []common.CallDescriptor

	Summary *common.PayoutSummary
	Result  *common.ExecutionResult
}

type Tokens struct {
	Wnt            ethcommon.Address
	EsGmx          ethcommon.Address
	FeeDistributor ethcommon.Address
	Vault          ethcommon.Address
}

type PayoutContext struct {
	common.PayoutEngineContext
	configuration *configuration.RuntimeConfiguration

	runContext context.Context
	logger     *slog.Logger
	state      *state.DistributionState

	Tokens    Tokens
	StageData *StageData
}

func resolveTokens(config *configuration.RuntimeConfiguration) (Tokens, error) {
	var (
		result Tokens
		err    error
	)
	for name, target := range map[string]*ethcommon.Address{
		configuration.CONTRACT_WNT:                   &result.Wnt,
		configuration.CONTRACT_ES_GMX:                &result.EsGmx,
		configuration.CONTRACT_FEE_DISTRIBUTOR:       &result.FeeDistributor,
		configuration.CONTRACT_FEE_DISTRIBUTOR_VAULT: &result.Vault,
	} {
		if *target, err = config.GetAddress(name); err != nil {
			return result, err
		}
	}
	return result, nil
}

func NewPayoutContext(runContext context.Context, config *configuration.RuntimeConfiguration, engineContext *common.PayoutEngineContext) (*PayoutContext, error) {
	if err := engineContext.Validate(); err != nil {
		return nil, err
	}
	if runContext == nil {
		runContext = context.Background()
	}
	tokens, err := resolveTokens(config)
	if err != nil {
		return nil, err
	}

	return &PayoutContext{
		PayoutEngineContext: *engineContext,
		configuration:       config,

		runContext: runContext,
		logger:     engineContext.GetLogger().With(constants.LOG_FIELD_CHAIN_ID, config.ChainId),
		state:      state.NewDistributionState(engineContext.GetStore()),

		Tokens: tokens,
		StageData: &StageData{
			WntPrice:          common.Zero,
			VaultBalance:      common.Zero,
			VaultBonusBalance: common.Zero,
		},
	}, nil
}

func (ctx *PayoutContext) GetConfiguration() *configuration.RuntimeConfiguration {
	return ctx.configuration
}

func (ctx *PayoutContext) Context() context.Context {
	return ctx.runContext
}

func (ctx *PayoutContext) ToResult() *common.PayoutResult {
	return &common.PayoutResult{
		Summary: ctx.StageData.Summary,
		Result:  ctx.StageData.Result,
	}
}

func (ctx *PayoutContext) buildSummary(options *common.PayoutOptions) *common.PayoutSummary {
	data := ctx.StageData
	summary := &common.PayoutSummary{
		ChainId:           ctx.configuration.ChainId,
		DistributionId:    new(big.Int).Set(options.DistributionId),
		WntPrice:          data.WntPrice,
		AffiliateRewards:  data.AffiliateRewards,
		TraderDiscounts:   data.TraderDiscounts,
		BonusRewards:      data.BonusRewards,
		TotalAffiliateWnt: common.SumPayoutAmounts(data.AffiliateRewards),
		TotalDiscountWnt:  common.SumPayoutAmounts(data.TraderDiscounts),
		TotalBonusAmount:  common.SumPayoutAmounts(data.BonusRewards),
		VaultBalance:      data.VaultBalance,
		VaultBonusBalance: data.VaultBonusBalance,
		Batches:           len(data.Batches),
		IsSendEnabled:     options.ShouldSend,
	}
	if data.Snapshot != nil {
		summary.Period = data.Snapshot.GetPeriod()
	}
	return summary
}

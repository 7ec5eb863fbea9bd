package compute

import (
	"context"
	"log/slog"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/core/period"
	"github.com/tez-capital/refpay/state"
)

const PIPELINE = "compute"

type StageData struct {
	Period         common.DistributionPeriod
	FeesPeriod     common.DistributionPeriod
	MaxBonusAmount common.Amount
	WntPrice       common.Amount
	GmxPrice       common.Amount
	FeesV1Usd      common.Amount
	FeesV2Usd      common.Amount

	AffiliateStats []AffiliateStatRow
	ReferralStats  []ReferralStatRow
	AffiliateTiers map[string]int

	Aggregation *Aggregation
	Allocation  *Allocation

	Snapshot *common.DistributionSnapshot
	Summary  *common.DistributionSummary
	Result   *common.ExecutionResult
}

type ComputeContext struct {
	common.ComputeEngineContext
	configuration *configuration.RuntimeConfiguration

	runContext context.Context
	logger     *slog.Logger
	state      *state.DistributionState
	periods    *period.Resolver

	StageData *StageData
}

func NewComputeContext(runContext context.Context, configuration *configuration.RuntimeConfiguration, engineContext *common.ComputeEngineContext, options *common.ComputeOptions) (*ComputeContext, error) {
	if err := engineContext.Validate(); err != nil {
		return nil, err
	}
	if runContext == nil {
		runContext = context.Background()
	}

	return &ComputeContext{
		ComputeEngineContext: *engineContext,
		configuration:        configuration,

		runContext: runContext,
		logger:     engineContext.GetLogger().With(constants.LOG_FIELD_CHAIN_ID, configuration.ChainId),
		state:      state.NewDistributionState(engineContext.GetStore()),
		periods:    period.NewResolver(options.Clock),

		StageData: &StageData{
			MaxBonusAmount: common.Zero,
			WntPrice:       common.Zero,
			GmxPrice:       common.Zero,
			FeesV1Usd:      common.Zero,
			FeesV2Usd:      common.Zero,
		},
	}, nil
}

func (ctx *ComputeContext) GetConfiguration() *configuration.RuntimeConfiguration {
	return ctx.configuration
}

func (ctx *ComputeContext) Context() context.Context {
	return ctx.runContext
}

func (ctx *ComputeContext) GetDistributionState() *state.DistributionState {
	return ctx.state
}

func (ctx *ComputeContext) ToResult() *common.ComputeResult {
	return &common.ComputeResult{
		Snapshot: ctx.StageData.Snapshot,
		Summary:  ctx.StageData.Summary,
		Result:   ctx.StageData.Result,
	}
}

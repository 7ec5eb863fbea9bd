package core

import (
	"context"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/core/compute"
)

// ComputeDistribution runs Phase A: it aggregates the period stats, allocates rewards,
// persists the snapshot and returns the distribute call.
func ComputeDistribution(ctx context.Context, config *configuration.RuntimeConfiguration, engineContext *common.ComputeEngineContext, options *common.ComputeOptions) (*common.ComputeResult, error) {
	if config == nil {
		return nil, constants.ErrMissingConfiguration
	}
	if options == nil {
		options = &common.ComputeOptions{}
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	computeContext, err := compute.NewComputeContext(ctx, config, engineContext, options)
	if err != nil {
		return nil, err
	}

	computeContext, err = WrapContext[*compute.ComputeContext, *common.ComputeOptions](computeContext).ExecuteStages(options,
		compute.ResetState,
		compute.CollectInputs,
		compute.AggregateStats,
		compute.AllocateRewards,
		compute.PersistSnapshot,
		compute.ReportDistribution,
		compute.CreateDistributeCall).Unwrap()
	if err != nil {
		return nil, err
	}
	return computeContext.ToResult(), nil
}

package compute

import (
	"time"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/engines/contracts"
	"github.com/tez-capital/refpay/metrics"
)

func CreateDistributeCall(ctx *ComputeContext, options *common.ComputeOptions) (*ComputeContext, error) {
	defer metrics.ObserveStage(PIPELINE, "create_distribute_call", time.Now())
	logger := ctx.logger.With("phase", "create_distribute_call")
	data := ctx.StageData

	feeDistributor, err := ctx.GetConfiguration().GetAddress(configuration.CONTRACT_FEE_DISTRIBUTOR)
	if err != nil {
		return ctx, err
	}
	callData, err := contracts.EncodeDistribute(
		data.Snapshot.TotalRebateUsd.Clone(),
		data.Snapshot.TotalBonusRewards.Clone(),
		data.FeesV1Usd.Clone(),
		data.FeesV2Usd.Clone(),
	)
	if err != nil {
		return ctx, err
	}

	data.Result = &common.ExecutionResult{
		CanExec: true,
		CallData: []common.CallDescriptor{
			{To: feeDistributor, Data: callData},
		},
	}
	logger.Info(constants.LOG_MESSAGE_DISTRIBUTION_COMPUTED,
		constants.LOG_FIELD_PERIOD, data.Period,
		constants.LOG_FIELD_AFFILIATES, len(data.Snapshot.Affiliates),
		constants.LOG_FIELD_REFERRALS, len(data.Snapshot.Referrals),
		"total_rebate_usd", data.Snapshot.TotalRebateUsd.Format(constants.USD_DECIMALS, 4),
		"total_es_gmx_rewards", data.Snapshot.TotalBonusRewards.Format(constants.GMX_DECIMALS, 4),
		constants.LOG_FIELD_STATE, enums.DISTRIBUTION_STATE_AWAITING_COMPLETION)
	if !options.DryRun {
		metrics.SetDistributionState(string(enums.DISTRIBUTION_STATE_AWAITING_COMPLETION))
	}
	return ctx, nil
}

package core

import (
	"context"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/core/payout"
)

// GeneratePayouts runs Phase B: it turns the persisted snapshot into batched depositReferralRewards calls.
// Calls are only returned when sending is enabled, the balance check runs either way.
func GeneratePayouts(ctx context.Context, config *configuration.RuntimeConfiguration, engineContext *common.PayoutEngineContext, options *common.PayoutOptions) (*common.PayoutResult, error) {
	if config == nil {
		return nil, constants.ErrMissingConfiguration
	}
	if options == nil {
		options = &common.PayoutOptions{
			ShouldSend:     config.Distribution.ShouldSendTxn,
			DistributionId: config.Distribution.DistributionId,
			BatchSize:      config.Distribution.BatchSize,
		}
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	payoutContext, err := payout.NewPayoutContext(ctx, config, engineContext)
	if err != nil {
		return nil, err
	}

	payoutContext, err = WrapContext[*payout.PayoutContext, *common.PayoutOptions](payoutContext).ExecuteStages(options,
		payout.LoadSnapshot,
		payout.CollectPayouts,
		payout.CheckSufficientBalance,
		payout.SplitIntoBatches,
		payout.EncodeCalls,
		payout.ReportPayouts).Unwrap()
	if err != nil {
		return nil, err
	}
	return payoutContext.ToResult(), nil
}

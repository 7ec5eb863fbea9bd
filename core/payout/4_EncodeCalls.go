package payout

import (
	"math/big"
	"time"

	"github.com/samber/lo"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/engines/contracts"
	"github.com/tez-capital/refpay/metrics"
)

func EncodeCalls(ctx *PayoutContext, options *common.PayoutOptions) (*PayoutContext, error) {
	defer metrics.ObserveStage(PIPELINE, "encode_calls", time.Now())
	logger := ctx.logger.With("phase", "encode_calls")
	data := ctx.StageData

	data.CallData = make([]common.CallDescriptor, 0, len(data.Batches))
	for _, batch := range data.Batches {
		amounts := lo.Map(batch.Amounts, func(amount common.Amount, _ int) *big.Int {
			return amount.Clone()
		})
		callData, err := contracts.EncodeDepositReferralRewards(batch.Token, options.DistributionId, batch.Accounts, amounts)
		if err != nil {
			return ctx, err
		}
		data.CallData = append(data.CallData, common.CallDescriptor{
			To:   ctx.Tokens.FeeDistributor,
			Data: callData,
		})
		metrics.PayoutCallsTotal.WithLabelValues(string(batch.Category)).Inc()
	}

	data.Summary = ctx.buildSummary(options)
	data.Result = &common.ExecutionResult{
		CanExec:  options.ShouldSend,
		CallData: data.CallData,
	}
	if !options.ShouldSend {
		data.Result.Message = "referral rewards not sent, sending is disabled"
	}

	logger.Info(constants.LOG_MESSAGE_PAYOUTS_GENERATED,
		constants.LOG_FIELD_BATCHES, len(data.Batches),
		constants.LOG_FIELD_CALLS, len(data.CallData),
		"total_affiliate_wnt", data.Summary.TotalAffiliateWnt,
		"total_discount_wnt", data.Summary.TotalDiscountWnt,
		"total_es_gmx", data.Summary.TotalBonusAmount,
		constants.LOG_FIELD_STATE, enums.DISTRIBUTION_STATE_IDLE)
	metrics.SetDistributionState(string(enums.DISTRIBUTION_STATE_IDLE))
	return ctx, nil
}

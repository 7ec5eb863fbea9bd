package payout

import (
	"github.com/tez-capital/refpay/common"
)

func ReportPayouts(ctx *PayoutContext, options *common.PayoutOptions) (*PayoutContext, error) {
	reporter := ctx.GetReporter()
	if reporter == nil {
		return ctx, nil
	}
	logger := ctx.logger.With("phase", "report_payouts")
	if err := reporter.ReportPayouts(ctx.StageData.Summary); err != nil {
		logger.Warn("failed to report payouts", "reporter", reporter.GetId(), "error", err.Error())
	}
	return ctx, nil
}

package compute

import (
	"github.com/tez-capital/refpay/common"
)

func ReportDistribution(ctx *ComputeContext, options *common.ComputeOptions) (*ComputeContext, error) {
	reporter := ctx.GetReporter()
	if reporter == nil {
		return ctx, nil
	}
	logger := ctx.logger.With("phase", "report_distribution")
	if err := reporter.ReportDistribution(ctx.StageData.Snapshot, ctx.StageData.Summary); err != nil {
		logger.Warn("failed to report distribution", "reporter", reporter.GetId(), "error", err.Error())
	}
	return ctx, nil
}

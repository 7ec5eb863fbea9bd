package mock

import (
	"github.com/tez-capital/refpay/common"
)

// SimpleReporter keeps reported data in memory
type SimpleReporter struct {
	Snapshots     []*common.DistributionSnapshot
	Summaries     []*common.DistributionSummary
	Payouts       []*common.PayoutSummary
	FailWithError error
}

func (engine *SimpleReporter) GetId() string {
	return "SimpleReporter"
}

func (engine *SimpleReporter) ReportDistribution(snapshot *common.DistributionSnapshot, summary *common.DistributionSummary) error {
	if engine.FailWithError != nil {
		return engine.FailWithError
	}
	engine.Snapshots = append(engine.Snapshots, snapshot)
	engine.Summaries = append(engine.Summaries, summary)
	return nil
}

func (engine *SimpleReporter) ReportPayouts(summary *common.PayoutSummary) error {
	if engine.FailWithError != nil {
		return engine.FailWithError
	}
	engine.Payouts = append(engine.Payouts, summary)
	return nil
}

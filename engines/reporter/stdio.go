package reporter_engines

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/utils"
)

// StdioReporter prints tables, or one json object per report when json output is requested
type StdioReporter struct {
	writer    io.Writer
	wantsJson bool
}

func NewStdioReporter(writer io.Writer, wantsJson bool) *StdioReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &StdioReporter{
		writer:    writer,
		wantsJson: wantsJson,
	}
}

func (engine *StdioReporter) GetId() string {
	return "StdioReporter"
}

type DistributionReport struct {
	Snapshot *common.DistributionSnapshot `json:"snapshot"`
	Summary  *common.DistributionSummary  `json:"summary"`
}

func (engine *StdioReporter) printJson(value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(engine.writer, string(data))
	return err
}

func (engine *StdioReporter) ReportDistribution(snapshot *common.DistributionSnapshot, summary *common.DistributionSummary) error {
	if engine.wantsJson {
		return engine.printJson(struct {
			Distribution DistributionReport `json:"distribution"`
		}{DistributionReport{snapshot, summary}})
	}
	utils.PrintDistributionSummary(engine.writer, summary)
	return nil
}

func (engine *StdioReporter) ReportPayouts(summary *common.PayoutSummary) error {
	if engine.wantsJson {
		return engine.printJson(struct {
			Payouts *common.PayoutSummary `json:"payouts"`
		}{summary})
	}
	utils.PrintPayoutSummary(engine.writer, summary)
	return nil
}

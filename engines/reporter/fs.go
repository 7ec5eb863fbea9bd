package reporter_engines

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/gocarina/gocsv"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

type FsReporterOptions struct {
	Directory string
	DryRun    bool
}

type FsReporter struct {
	options FsReporterOptions
}

func NewFileSystemReporter(options FsReporterOptions) *FsReporter {
	return &FsReporter{
		options: options,
	}
}

func (engine *FsReporter) GetId() string {
	return "FsReporter"
}

func periodDirectoryName(period common.DistributionPeriod) string {
	return fmt.Sprintf("%d-%d", period.FromTimestamp, period.ToTimestamp)
}

func (engine *FsReporter) getReportsDirectory(period common.DistributionPeriod) (string, error) {
	directory := engine.options.Directory
	if engine.options.DryRun {
		directory = path.Join(directory, "dry")
	}
	directory = path.Join(directory, periodDirectoryName(period))
	return directory, os.MkdirAll(directory, 0700)
}

func writeCsv[T any](targetFile string, rows []T) error {
	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return errors.Join(constants.ErrReportWriteFailed, err)
	}
	if err := os.WriteFile(targetFile, data, 0644); err != nil {
		return errors.Join(constants.ErrReportWriteFailed, err)
	}
	return nil
}

func readCsv[T any](sourceFile string) ([]T, error) {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return nil, err
	}
	rows := make([]T, 0)
	err = gocsv.UnmarshalBytes(data, &rows)
	return rows, err
}

// ReportDistribution writes the snapshot as json and every aggregate, filtered ones included, as csv
func (engine *FsReporter) ReportDistribution(snapshot *common.DistributionSnapshot, summary *common.DistributionSummary) error {
	reportsDirectory, err := engine.getReportsDirectory(summary.Period)
	if err != nil {
		return errors.Join(constants.ErrReportWriteFailed, err)
	}
	data, err := snapshot.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path.Join(reportsDirectory, constants.SNAPSHOT_REPORT_FILE_NAME), data, 0644); err != nil {
		return errors.Join(constants.ErrReportWriteFailed, err)
	}
	if err := writeCsv(path.Join(reportsDirectory, constants.AFFILIATES_REPORT_FILE_NAME), summary.Affiliates); err != nil {
		return err
	}
	return writeCsv(path.Join(reportsDirectory, constants.REFERRALS_REPORT_FILE_NAME), summary.Referrals)
}

func (engine *FsReporter) ReportPayouts(summary *common.PayoutSummary) error {
	reportsDirectory, err := engine.getReportsDirectory(summary.Period)
	if err != nil {
		return errors.Join(constants.ErrReportWriteFailed, err)
	}
	if err := writeCsv(path.Join(reportsDirectory, constants.PAYOUTS_REPORT_FILE_NAME), summary.AllRecipes()); err != nil {
		return err
	}
	data, err := json.MarshalIndent(summary, "", "\t")
	if err != nil {
		return errors.Join(constants.ErrReportWriteFailed, err)
	}
	if err := os.WriteFile(path.Join(reportsDirectory, constants.PAYOUT_SUMMARY_FILE_NAME), data, 0644); err != nil {
		return errors.Join(constants.ErrReportWriteFailed, err)
	}
	return nil
}

func (engine *FsReporter) GetExistingSnapshot(period common.DistributionPeriod) (*common.DistributionSnapshot, error) {
	reportsDirectory, err := engine.getReportsDirectory(period)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path.Join(reportsDirectory, constants.SNAPSHOT_REPORT_FILE_NAME))
	if err != nil {
		return nil, err
	}
	return common.ParseDistributionSnapshot(data)
}

// GetExistingPayouts returns payouts already reported for the period, os.ErrNotExist when there are none
func (engine *FsReporter) GetExistingPayouts(period common.DistributionPeriod) ([]common.PayoutRecipe, error) {
	reportsDirectory, err := engine.getReportsDirectory(period)
	if err != nil {
		return nil, err
	}
	return readCsv[common.PayoutRecipe](path.Join(reportsDirectory, constants.PAYOUTS_REPORT_FILE_NAME))
}

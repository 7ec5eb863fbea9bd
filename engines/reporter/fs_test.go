package reporter_engines

import (
	"bytes"
	"math/big"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/test/mock"
)

var period = common.DistributionPeriod{FromTimestamp: 1700000000, ToTimestamp: 1700604800}

func testReports() (*common.DistributionSnapshot, *common.DistributionSummary, *common.PayoutSummary) {
	bonus := common.ExpandDecimals(1, constants.GMX_DECIMALS)
	affiliates := []common.AffiliateAggregate{
		{Account: mock.Account(1), TierId: 2, RebateUsd: common.ExpandDecimals(3, constants.USD_DECIMALS), BonusRewardAmount: &bonus},
		{Account: mock.Account(2), RebateUsd: common.NewAmount(1), IsFiltered: true},
	}
	snapshot := &common.DistributionSnapshot{
		FromTimestamp: period.FromTimestamp,
		ToTimestamp:   period.ToTimestamp,
		Affiliates:    affiliates[:1],
		Referrals:     []common.ReferralAggregate{},
	}
	summary := &common.DistributionSummary{
		Period:     period,
		Affiliates: affiliates,
		Referrals:  []common.ReferralAggregate{{Account: mock.Account(3), DiscountUsd: common.NewAmount(5)}},
	}
	payouts := &common.PayoutSummary{
		Period:         period,
		DistributionId: big.NewInt(1),
		AffiliateRewards: []common.PayoutRecipe{
			{Category: enums.PAYOUT_CATEGORY_AFFILIATE, Account: mock.GetRandomAddress(), Token: mock.GetRandomAddress(), Amount: common.NewAmount(15)},
		},
		BonusRewards: []common.PayoutRecipe{
			{Category: enums.PAYOUT_CATEGORY_BONUS, Account: mock.GetRandomAddress(), Token: mock.GetRandomAddress(), Amount: bonus},
		},
	}
	return snapshot, summary, payouts
}

func TestFsReporter(t *testing.T) {
	assert := assert.New(t)

	directory := t.TempDir()
	reporter := NewFileSystemReporter(FsReporterOptions{Directory: directory})
	snapshot, summary, payouts := testReports()

	_, err := reporter.GetExistingPayouts(period)
	assert.True(os.IsNotExist(err))

	assert.Nil(reporter.ReportDistribution(snapshot, summary))
	assert.Nil(reporter.ReportPayouts(payouts))

	periodDirectory := path.Join(directory, "1700000000-1700604800")
	for _, file := range []string{constants.SNAPSHOT_REPORT_FILE_NAME, constants.AFFILIATES_REPORT_FILE_NAME, constants.REFERRALS_REPORT_FILE_NAME, constants.PAYOUTS_REPORT_FILE_NAME, constants.PAYOUT_SUMMARY_FILE_NAME} {
		assert.FileExists(path.Join(periodDirectory, file))
	}
	affiliates, err := os.ReadFile(path.Join(periodDirectory, constants.AFFILIATES_REPORT_FILE_NAME))
	assert.Nil(err)
	assert.Contains(string(affiliates), mock.Account(2))

	existing, err := reporter.GetExistingSnapshot(period)
	assert.Nil(err)
	assert.Equal(snapshot.Affiliates[0].Account, existing.Affiliates[0].Account)
	assert.Equal(bonus(), *existing.Affiliates[0].BonusRewardAmount)

	recipes, err := reporter.GetExistingPayouts(period)
	assert.Nil(err)
	assert.Equal(payouts.AllRecipes(), recipes)
}

func TestFsReporterDryRun(t *testing.T) {
	assert := assert.New(t)

	directory := t.TempDir()
	reporter := NewFileSystemReporter(FsReporterOptions{Directory: directory, DryRun: true})
	snapshot, summary, _ := testReports()
	assert.Nil(reporter.ReportDistribution(snapshot, summary))
	assert.FileExists(path.Join(directory, "dry", "1700000000-1700604800", constants.SNAPSHOT_REPORT_FILE_NAME))
}

func TestStdioReporter(t *testing.T) {
	assert := assert.New(t)

	snapshot, summary, payouts := testReports()
	var buffer bytes.Buffer
	reporter := NewStdioReporter(&buffer, true)
	assert.Nil(reporter.ReportDistribution(snapshot, summary))
	assert.Nil(reporter.ReportPayouts(payouts))
	assert.Contains(buffer.String(), `{"distribution":{"snapshot":`)
	assert.Contains(buffer.String(), `{"payouts":{`)

	buffer.Reset()
	reporter = NewStdioReporter(&buffer, false)
	assert.Nil(reporter.ReportDistribution(snapshot, summary))
	assert.Contains(buffer.String(), mock.Account(1))
}

func bonus() common.Amount {
	return common.ExpandDecimals(1, constants.GMX_DECIMALS)
}

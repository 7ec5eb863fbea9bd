package utils

import (
	"bytes"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

func TestFormat(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("$12.34", FormatUsd(common.ExpandDecimals(1234, constants.USD_DECIMALS-2)))
	assert.Equal("0.500000", FormatToken(common.ExpandDecimals(5, constants.GMX_DECIMALS-1)))
	assert.Equal("2023-11-14 22:13:20 - 2023-11-21 22:13:20", FormatPeriod(common.DistributionPeriod{FromTimestamp: 1700000000, ToTimestamp: 1700604800}))
}

func TestPrintDistributionSummary(t *testing.T) {
	assert := assert.New(t)

	bonus := common.ExpandDecimals(2, constants.GMX_DECIMALS)
	summary := &common.DistributionSummary{
		ChainId: 42161,
		Affiliates: []common.AffiliateAggregate{
			{Account: "0xaffiliate", TierId: 2, RebateUsd: common.ExpandDecimals(3, constants.USD_DECIMALS), Share: common.NewAmount(1_000_000_000), BonusRewardAmount: &bonus},
			{Account: "0xsmall", RebateUsd: common.NewAmount(1), IsFiltered: true},
		},
	}
	var buffer bytes.Buffer
	PrintDistributionSummary(&buffer, summary)
	output := buffer.String()
	assert.Contains(output, "0xaffiliate")
	assert.Contains(output, "2.000000")
	assert.Contains(output, FILTERED)
	assert.Contains(output, "No referrals")
}

func TestPrintPayoutSummary(t *testing.T) {
	assert := assert.New(t)

	account := ethcommon.HexToAddress("0x1111111111111111111111111111111111111111")
	summary := &common.PayoutSummary{
		DistributionId: big.NewInt(7),
		AffiliateRewards: []common.PayoutRecipe{
			{Category: enums.PAYOUT_CATEGORY_AFFILIATE, Account: account, Amount: common.ExpandDecimals(15, 17)},
		},
		TotalAffiliateWnt: common.ExpandDecimals(15, 17),
		Batches:           1,
	}
	var buffer bytes.Buffer
	PrintPayoutSummary(&buffer, summary)
	output := buffer.String()
	assert.Contains(output, "#7")
	assert.Contains(output, account.Hex())
	assert.Contains(output, "1.500000")
	assert.Contains(output, TRADER_DISCOUNTS+" (0)")
}

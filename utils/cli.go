package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

const (
	AFFILIATE_REWARDS = "Affiliate Rewards"
	TRADER_DISCOUNTS  = "Trader Discounts"
	BONUS_REWARDS     = "esGMX Rewards"
	FILTERED          = "Below Threshold"
)

func columnsAsInterfaces[T any](row []T) []any {
	return lo.Map(row, func(c T, _ int) any {
		return c
	})
}

func fillRow[T any](val T, headers []string) []any {
	return lo.Map(headers, func(_ string, _ int) any {
		return val
	})
}

func replaceZeroFields[T comparable](items []T, value T) []T {
	var zero T
	for i, item := range items {
		if item == zero {
			items[i] = value
		}
	}
	return items
}

func newTable(w io.Writer, title string, alignments ...text.Align) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs(lo.Map(alignments, func(align text.Align, i int) table.ColumnConfig {
		return table.ColumnConfig{Number: i + 1, Align: align}
	}))
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.Style().Title.Align = text.AlignCenter
	return t
}

func FormatUsd(amount common.Amount) string {
	return "$" + amount.Format(constants.USD_DECIMALS, 2)
}

func FormatToken(amount common.Amount) string {
	return amount.Format(constants.GMX_DECIMALS, 6)
}

func formatOptionalToken(amount *common.Amount) string {
	if amount == nil {
		return ""
	}
	return FormatToken(*amount)
}

func FormatPeriod(period common.DistributionPeriod) string {
	from := time.Unix(period.FromTimestamp, 0).UTC().Format(time.DateTime)
	to := time.Unix(period.ToTimestamp, 0).UTC().Format(time.DateTime)
	return fmt.Sprintf("%s - %s", from, to)
}

func affiliateRow(affiliate common.AffiliateAggregate) []string {
	status := ""
	if affiliate.IsFiltered {
		status = FILTERED
	}
	return replaceZeroFields([]string{
		affiliate.Account,
		fmt.Sprint(affiliate.TierId),
		fmt.Sprint(affiliate.TradesCount),
		FormatUsd(affiliate.Volume),
		FormatUsd(affiliate.RebateUsd),
		affiliate.Share.String(),
		formatOptionalToken(affiliate.BonusRewardAmount),
		status,
	}, "-")
}

func referralRow(referral common.ReferralAggregate) []string {
	status := ""
	if referral.IsFiltered {
		status = FILTERED
	}
	return replaceZeroFields([]string{
		referral.Account,
		FormatUsd(referral.Volume),
		FormatUsd(referral.DiscountUsd),
		referral.Share.String(),
		status,
	}, "-")
}

func PrintDistributionSummary(w io.Writer, summary *common.DistributionSummary) {
	if w == nil {
		w = os.Stdout
	}
	title := fmt.Sprintf("Distribution - %s", FormatPeriod(summary.Period))

	summaryTable := newTable(w, title, text.AlignLeft, text.AlignRight)
	summaryTable.AppendRow(table.Row{"Chain", summary.ChainId})
	summaryTable.AppendRow(table.Row{"Referral Volume", FormatUsd(summary.TotalReferralVolume)})
	summaryTable.AppendRow(table.Row{"Total Rebates", FormatUsd(summary.TotalRebateUsd)})
	summaryTable.AppendRow(table.Row{AFFILIATE_REWARDS, FormatUsd(summary.AllAffiliatesRebateUsd)})
	summaryTable.AppendRow(table.Row{TRADER_DISCOUNTS, FormatUsd(summary.AllReferralsDiscountUsd)})
	summaryTable.AppendSeparator()
	summaryTable.AppendRow(table.Row{BONUS_REWARDS, FormatToken(summary.TotalBonusRewards)})
	summaryTable.AppendRow(table.Row{"esGMX Rewards (USD)", FormatUsd(summary.TotalBonusRewardsUsd)})
	summaryTable.AppendRow(table.Row{"esGMX Cap (USD)", FormatUsd(summary.BonusCapUsd)})
	summaryTable.AppendRow(table.Row{"Capped", summary.IsBonusCapped})
	summaryTable.AppendSeparator()
	summaryTable.AppendRow(table.Row{"Fees V1", FormatUsd(summary.FeesV1Usd)})
	summaryTable.AppendRow(table.Row{"Fees V2", FormatUsd(summary.FeesV2Usd)})
	summaryTable.Render()

	headers := []string{"Affiliate", "Tier", "Trades", "Volume", "Rebate", "Share", "esGMX", "Status"}
	affiliatesTable := newTable(w, fmt.Sprintf("Affiliates (%d)", len(summary.Affiliates)),
		text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignLeft)
	affiliatesTable.AppendHeader(columnsAsInterfaces(headers))
	if len(summary.Affiliates) == 0 {
		affiliatesTable.AppendRow(fillRow("No affiliates", headers), table.RowConfig{AutoMerge: true})
	}
	for _, affiliate := range summary.Affiliates {
		affiliatesTable.AppendRow(columnsAsInterfaces(affiliateRow(affiliate)))
	}
	affiliatesTable.Render()

	headers = []string{"Referral", "Volume", "Discount", "Share", "Status"}
	referralsTable := newTable(w, fmt.Sprintf("Referrals (%d)", len(summary.Referrals)),
		text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignLeft)
	referralsTable.AppendHeader(columnsAsInterfaces(headers))
	if len(summary.Referrals) == 0 {
		referralsTable.AppendRow(fillRow("No referrals", headers), table.RowConfig{AutoMerge: true})
	}
	for _, referral := range summary.Referrals {
		referralsTable.AppendRow(columnsAsInterfaces(referralRow(referral)))
	}
	referralsTable.Render()
}

func PrintPayoutSummary(w io.Writer, summary *common.PayoutSummary) {
	if w == nil {
		w = os.Stdout
	}
	headers := []string{"Account", "Token", "Amount"}
	payoutTable := newTable(w, fmt.Sprintf("Payouts #%s - %s", summary.DistributionId, FormatPeriod(summary.Period)),
		text.AlignLeft, text.AlignLeft, text.AlignRight)

	sections := []struct {
		header  string
		recipes []common.PayoutRecipe
		total   common.Amount
	}{
		{AFFILIATE_REWARDS, summary.AffiliateRewards, summary.TotalAffiliateWnt},
		{TRADER_DISCOUNTS, summary.TraderDiscounts, summary.TotalDiscountWnt},
		{BONUS_REWARDS, summary.BonusRewards, summary.TotalBonusAmount},
	}
	for _, section := range sections {
		payoutTable.AppendSeparator()
		payoutTable.AppendRow(fillRow(fmt.Sprintf("%s (%d)", section.header, len(section.recipes)), headers), table.RowConfig{AutoMerge: true})
		payoutTable.AppendSeparator()
		for _, recipe := range section.recipes {
			payoutTable.AppendRow(table.Row{recipe.Account.Hex(), recipe.Token.Hex(), FormatToken(recipe.Amount)})
		}
		payoutTable.AppendRow(table.Row{"Total", "", FormatToken(section.total)})
	}

	payoutTable.AppendSeparator()
	payoutTable.AppendRow(table.Row{"Vault Balance", "", FormatToken(summary.VaultBalance)})
	payoutTable.AppendRow(table.Row{"Vault esGMX Balance", "", FormatToken(summary.VaultBonusBalance)})
	payoutTable.AppendRow(table.Row{"Batches", "", summary.Batches})
	payoutTable.AppendRow(table.Row{"Send Enabled", "", summary.IsSendEnabled})
	payoutTable.Render()
}

// PrintAccountAmounts renders a two column account/amount table with a total row
func PrintAccountAmounts(w io.Writer, title string, accounts []string, amounts []common.Amount) {
	if w == nil {
		w = os.Stdout
	}
	amountsTable := newTable(w, title, text.AlignLeft, text.AlignRight)
	amountsTable.AppendHeader(table.Row{"Account", "Amount"})
	for i, account := range accounts {
		amountsTable.AppendRow(table.Row{account, FormatToken(amounts[i])})
	}
	amountsTable.AppendSeparator()
	amountsTable.AppendRow(table.Row{fmt.Sprintf("Total (%d)", len(accounts)), FormatToken(common.SumAmounts(amounts...))})
	amountsTable.Render()
}

func IsTty() bool {
	fileInfo, err := os.Stdout.Stat()
	return err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0
}

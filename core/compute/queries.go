package compute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

type V1AffiliateData struct {
	TotalRebateUsd common.Amount `json:"totalRebateUsd"`
	DiscountUsd    common.Amount `json:"discountUsd"`
	Volume         common.Amount `json:"volume"`
	Trades         common.Amount `json:"trades"`
}

type V2AffiliateData struct {
	TotalRebateUsd common.Amount `json:"totalRebateUsd"`
}

type AffiliateStatRow struct {
	Id        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Affiliate string          `json:"affiliate"`
	V1Data    V1AffiliateData `json:"v1Data"`
	V2Data    V2AffiliateData `json:"v2Data"`
}

type V1ReferralData struct {
	DiscountUsd common.Amount `json:"discountUsd"`
	Volume      common.Amount `json:"volume"`
}

type ReferralStatRow struct {
	Id        string         `json:"id"`
	Timestamp int64          `json:"timestamp"`
	Referral  string         `json:"referral"`
	V1Data    V1ReferralData `json:"v1Data"`
}

type affiliateTierRow struct {
	Id     string `json:"id"`
	TierId string `json:"tierId"`
}

func accountCondition(field string, account string) string {
	if account == "" {
		return ""
	}
	return fmt.Sprintf(`, %s: "%s"`, field, account)
}

func statsWhere(period common.DistributionPeriod, condition string) string {
	return fmt.Sprintf(`where: {
      period: daily,
      timestamp_gte: %d,
      timestamp_lt: %d,
      discountUsd_gt: 0%s
    }`, period.FromTimestamp, period.ToTimestamp, condition)
}

func affiliateStatsQuery(period common.DistributionPeriod, account string, skip int) string {
	return fmt.Sprintf(`affiliateStats(first: %d, skip: %d, %s) {
    id
    timestamp
    affiliate
    v1Data {
      totalRebateUsd
      discountUsd
      volume
      trades
    }
    v2Data {
      totalRebateUsd
    }
  }`, constants.STATS_PAGE_SIZE, skip, statsWhere(period, accountCondition("affiliate", account)))
}

func referralStatsQuery(period common.DistributionPeriod, account string, skip int) string {
	return fmt.Sprintf(`referralStats(first: %d, skip: %d, %s) {
    id
    timestamp
    referral
    v1Data {
      discountUsd
      volume
    }
  }`, constants.STATS_PAGE_SIZE, skip, statsWhere(period, accountCondition("referral", account)))
}

func affiliateStatsAlias(page int) string {
	return fmt.Sprintf("affiliateStats%d", page)
}

func referralStatsAlias(page int) string {
	return fmt.Sprintf("referralStats%d", page)
}

// BuildStatsQuery renders one document with STATS_PAGE_COUNT aliased chunks of affiliate and referral stats
func BuildStatsQuery(period common.DistributionPeriod, account string) string {
	var builder strings.Builder
	builder.WriteString("{\n")
	for page := 0; page < constants.STATS_PAGE_COUNT; page++ {
		fmt.Fprintf(&builder, "  %s: %s\n", affiliateStatsAlias(page), affiliateStatsQuery(period, account, page*constants.STATS_PAGE_SIZE))
	}
	builder.WriteString("\n")
	for page := 0; page < constants.STATS_PAGE_COUNT; page++ {
		fmt.Fprintf(&builder, "  %s: %s\n", referralStatsAlias(page), referralStatsQuery(period, account, page*constants.STATS_PAGE_SIZE))
	}
	builder.WriteString("}")
	return builder.String()
}

func BuildTiersQuery() string {
	return fmt.Sprintf(`{
  affiliates(first: %d, where: { tierId_in: ["2", "1"]}) {
    id,
    tierId
  }
}`, constants.TIER_QUERY_LIMIT)
}

func BuildFeesV1Query(period common.DistributionPeriod) string {
	return fmt.Sprintf(`{
  feeStats(where: { id_gte: %d, id_lt: %d, period: daily }) {
    id
    marginAndLiquidation
    swap
    mint
    burn
    period
  }
}`, period.FromTimestamp, period.ToTimestamp)
}

func BuildFeesV2Query(period common.DistributionPeriod) string {
	where := fmt.Sprintf(`id_gte: %d, id_lt: %d, period: "1d"`, period.FromTimestamp, period.ToTimestamp)
	return fmt.Sprintf(`query {
  position: positionFeesInfoWithPeriods(where: { %s }) {
    totalBorrowingFeeUsd
    totalPositionFeeUsd
  }
  swap: swapFeesInfoWithPeriods(where: { %s }) {
    totalFeeReceiverUsd
    totalFeeUsdForPool
  }
}`, where, where)
}

func unmarshalResponse[T any](endpoint string, data json.RawMessage) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Join(constants.ErrIndexerResponseInvalid, fmt.Errorf("endpoint %s", endpoint), err)
	}
	return &result, nil
}

// pagesFromResponse picks aliased chunks in page order, a missing alias is an invalid response
func pagesFromResponse[T any](data json.RawMessage, alias func(int) string) ([][]T, error) {
	chunks, err := unmarshalResponse[map[string][]T](constants.SUBGRAPH_ENDPOINT_REFERRALS, data)
	if err != nil {
		return nil, err
	}
	pages := make([][]T, 0, constants.STATS_PAGE_COUNT)
	for page := 0; page < constants.STATS_PAGE_COUNT; page++ {
		rows, ok := (*chunks)[alias(page)]
		if !ok {
			return nil, errors.Join(constants.ErrIndexerResponseInvalid, fmt.Errorf("missing %s", alias(page)))
		}
		pages = append(pages, rows)
	}
	return pages, nil
}

// FetchStats loads daily affiliate and referral stats of the period
func FetchStats(ctx context.Context, indexer common.IndexerQueryService, period common.DistributionPeriod, account string) ([]AffiliateStatRow, []ReferralStatRow, error) {
	data, err := indexer.Query(ctx, constants.SUBGRAPH_ENDPOINT_REFERRALS, BuildStatsQuery(period, account))
	if err != nil {
		return nil, nil, err
	}

	affiliatePages, err := pagesFromResponse[AffiliateStatRow](data, affiliateStatsAlias)
	if err != nil {
		return nil, nil, err
	}
	referralPages, err := pagesFromResponse[ReferralStatRow](data, referralStatsAlias)
	if err != nil {
		return nil, nil, err
	}

	affiliateStats, err := common.CollectPages(affiliatePages, constants.STATS_PAGE_SIZE)
	if err != nil {
		return nil, nil, errors.Join(err, errors.New("affiliates stats should be paginated"))
	}
	referralStats, err := common.CollectPages(referralPages, constants.STATS_PAGE_SIZE)
	if err != nil {
		return nil, nil, errors.Join(err, errors.New("referrals stats should be paginated"))
	}
	return affiliateStats, referralStats, nil
}

// FetchAffiliateTiers returns tier ids of tiered affiliates keyed by account
func FetchAffiliateTiers(ctx context.Context, indexer common.IndexerQueryService) (map[string]int, error) {
	data, err := indexer.Query(ctx, constants.SUBGRAPH_ENDPOINT_REFERRALS, BuildTiersQuery())
	if err != nil {
		return nil, err
	}
	response, err := unmarshalResponse[struct {
		Affiliates []affiliateTierRow `json:"affiliates"`
	}](constants.SUBGRAPH_ENDPOINT_REFERRALS, data)
	if err != nil {
		return nil, err
	}
	if len(response.Affiliates) >= constants.TIER_QUERY_LIMIT {
		return nil, errors.Join(constants.ErrPaginationOverflow, errors.New("affiliates should be paginated"))
	}

	tiers := make(map[string]int, len(response.Affiliates))
	for _, affiliate := range response.Affiliates {
		var tierId int
		if _, err := fmt.Sscan(affiliate.TierId, &tierId); err != nil {
			return nil, errors.Join(constants.ErrIndexerResponseInvalid, fmt.Errorf("invalid tier id '%s' of %s", affiliate.TierId, affiliate.Id), err)
		}
		tiers[affiliate.Id] = tierId
	}
	return tiers, nil
}

// FetchFeesV1 sums v1 protocol fees of the period
func FetchFeesV1(ctx context.Context, indexer common.IndexerQueryService, period common.DistributionPeriod) (common.Amount, error) {
	data, err := indexer.Query(ctx, constants.SUBGRAPH_ENDPOINT_STATS_V1, BuildFeesV1Query(period))
	if err != nil {
		return common.Zero, err
	}
	response, err := unmarshalResponse[struct {
		FeeStats []struct {
			MarginAndLiquidation common.Amount `json:"marginAndLiquidation"`
			Swap                 common.Amount `json:"swap"`
			Mint                 common.Amount `json:"mint"`
			Burn                 common.Amount `json:"burn"`
		} `json:"feeStats"`
	}](constants.SUBGRAPH_ENDPOINT_STATS_V1, data)
	if err != nil {
		return common.Zero, err
	}
	total := common.Zero
	for _, stat := range response.FeeStats {
		total = total.Add(common.SumAmounts(stat.MarginAndLiquidation, stat.Swap, stat.Mint, stat.Burn))
	}
	return total, nil
}

// FetchFeesV2 sums v2 position and swap fees of the period
func FetchFeesV2(ctx context.Context, indexer common.IndexerQueryService, period common.DistributionPeriod) (common.Amount, error) {
	data, err := indexer.Query(ctx, constants.SUBGRAPH_ENDPOINT_STATS_V2, BuildFeesV2Query(period))
	if err != nil {
		return common.Zero, err
	}
	response, err := unmarshalResponse[struct {
		Position []struct {
			TotalBorrowingFeeUsd common.Amount `json:"totalBorrowingFeeUsd"`
			TotalPositionFeeUsd  common.Amount `json:"totalPositionFeeUsd"`
		} `json:"position"`
		Swap []struct {
			TotalFeeReceiverUsd common.Amount `json:"totalFeeReceiverUsd"`
			TotalFeeUsdForPool  common.Amount `json:"totalFeeUsdForPool"`
		} `json:"swap"`
	}](constants.SUBGRAPH_ENDPOINT_STATS_V2, data)
	if err != nil {
		return common.Zero, err
	}
	total := common.Zero
	for _, stat := range response.Position {
		total = total.Add(stat.TotalBorrowingFeeUsd).Add(stat.TotalPositionFeeUsd)
	}
	for _, stat := range response.Swap {
		total = total.Add(stat.TotalFeeReceiverUsd).Add(stat.TotalFeeUsdForPool)
	}
	return total, nil
}

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tez-capital/refpay/constants"
)

type Row = map[string]any

func AffiliateStat(affiliate string, totalRebateUsd string, discountUsd string, volume string, trades int, v2TotalRebateUsd string) Row {
	return Row{
		"id":        fmt.Sprintf("%s:daily", affiliate),
		"timestamp": 1700000000,
		"affiliate": affiliate,
		"v1Data": Row{
			"totalRebateUsd": totalRebateUsd,
			"discountUsd":    discountUsd,
			"volume":         volume,
			"trades":         fmt.Sprint(trades),
		},
		"v2Data": Row{
			"totalRebateUsd": v2TotalRebateUsd,
		},
	}
}

func ReferralStat(referral string, discountUsd string, volume string) Row {
	return Row{
		"id":        fmt.Sprintf("%s:daily", referral),
		"timestamp": 1700000000,
		"referral":  referral,
		"v1Data": Row{
			"discountUsd": discountUsd,
			"volume":      volume,
		},
	}
}

func AffiliateTier(affiliate string, tierId int) Row {
	return Row{"id": affiliate, "tierId": fmt.Sprint(tierId)}
}

func FeeStat(marginAndLiquidation string, swap string, mint string, burn string) Row {
	return Row{
		"id":                   "1700000000",
		"marginAndLiquidation": marginAndLiquidation,
		"swap":                 swap,
		"mint":                 mint,
		"burn":                 burn,
		"period":               "daily",
	}
}

func Distribution(receiver string, tokens []string, amounts []string) Row {
	return Row{"receiver": receiver, "tokens": tokens, "amounts": amounts}
}

// Repeat returns n copies of row, used to fill pages
func Repeat(row Row, n int) []Row {
	result := make([]Row, n)
	for i := range result {
		result[i] = row
	}
	return result
}

type SimpleIndexerOpts struct {
	AffiliateStatsPages [][]Row
	ReferralStatsPages  [][]Row
	Tiers               []Row
	FeeStats            []Row
	PositionFees        []Row
	SwapFees            []Row
	DistributionPages   [][]Row
	FailWithError       error
}

type SimpleIndexer struct {
	opts *SimpleIndexerOpts

	mtx     sync.Mutex
	queries map[string][]string
}

func InitSimpleIndexer(opts *SimpleIndexerOpts) *SimpleIndexer {
	if opts == nil {
		opts = &SimpleIndexerOpts{}
	}
	return &SimpleIndexer{
		opts:    opts,
		queries: map[string][]string{},
	}
}

func (engine *SimpleIndexer) GetId() string {
	return "SimpleIndexer"
}

func (engine *SimpleIndexer) GetQueries(endpoint string) []string {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	return append([]string{}, engine.queries[endpoint]...)
}

func aliasedPages(result map[string]any, prefix string, pages [][]Row) {
	for page := 0; page < constants.STATS_PAGE_COUNT; page++ {
		rows := []Row{}
		if page < len(pages) && pages[page] != nil {
			rows = pages[page]
		}
		result[fmt.Sprintf("%s%d", prefix, page)] = rows
	}
}

func orEmpty(rows []Row) []Row {
	if rows == nil {
		return []Row{}
	}
	return rows
}

func (engine *SimpleIndexer) Query(ctx context.Context, endpoint string, query string) (json.RawMessage, error) {
	engine.mtx.Lock()
	engine.queries[endpoint] = append(engine.queries[endpoint], query)
	engine.mtx.Unlock()

	if engine.opts.FailWithError != nil {
		return nil, engine.opts.FailWithError
	}

	result := map[string]any{}
	switch endpoint {
	case constants.SUBGRAPH_ENDPOINT_REFERRALS:
		switch {
		case strings.Contains(query, "affiliates("):
			result["affiliates"] = orEmpty(engine.opts.Tiers)
		case strings.Contains(query, "esGmxDistribution"):
			aliasedPages(result, "esGmxDistribution", engine.opts.DistributionPages)
		default:
			aliasedPages(result, "affiliateStats", engine.opts.AffiliateStatsPages)
			aliasedPages(result, "referralStats", engine.opts.ReferralStatsPages)
		}
	case constants.SUBGRAPH_ENDPOINT_STATS_V1:
		result["feeStats"] = orEmpty(engine.opts.FeeStats)
	case constants.SUBGRAPH_ENDPOINT_STATS_V2:
		result["position"] = orEmpty(engine.opts.PositionFees)
		result["swap"] = orEmpty(engine.opts.SwapFees)
	default:
		return nil, fmt.Errorf("unexpected endpoint %s", endpoint)
	}
	return json.Marshal(result)
}

package compute

import (
	"context"
	"errors"
	"strings"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/test/mock"
)

var testPeriod = common.DistributionPeriod{FromTimestamp: 1700000000, ToTimestamp: 1700604800}

func TestBuildStatsQuery(t *testing.T) {
	assert := assert.New(t)

	query := BuildStatsQuery(testPeriod, "")
	assert.Contains(query, "affiliateStats0: affiliateStats(first: 10000, skip: 0,")
	assert.Contains(query, "referralStats5: referralStats(first: 10000, skip: 50000,")
	assert.Contains(query, "timestamp_gte: 1700000000")
	assert.Contains(query, "timestamp_lt: 1700604800")
	assert.NotContains(query, "affiliate: \"")

	query = BuildStatsQuery(testPeriod, mock.Account(7))
	assert.Contains(query, `discountUsd_gt: 0, affiliate: "`+mock.Account(7)+`"`)
	assert.Contains(query, `discountUsd_gt: 0, referral: "`+mock.Account(7)+`"`)
}

func TestFetchStats(t *testing.T) {
	assert := assert.New(t)

	indexer := mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		AffiliateStatsPages: [][]mock.Row{
			mock.Repeat(mock.AffiliateStat(mock.Account(1), "100", "40", "1000", 2, "5"), constants.STATS_PAGE_SIZE),
			{mock.AffiliateStat(mock.Account(2), "10", "1", "50", 1, "0")},
		},
		ReferralStatsPages: [][]mock.Row{
			{mock.ReferralStat(mock.Account(3), "7", "70")},
		},
	})

	affiliates, referrals, err := FetchStats(context.Background(), indexer, testPeriod, "")
	assert.Nil(err)
	assert.Len(affiliates, constants.STATS_PAGE_SIZE+1)
	assert.Equal(mock.Account(2), affiliates[constants.STATS_PAGE_SIZE].Affiliate)
	assert.Equal(common.NewAmount(40), affiliates[0].V1Data.DiscountUsd)
	assert.Equal(common.NewAmount(5), affiliates[0].V2Data.TotalRebateUsd)
	assert.Len(referrals, 1)
	assert.Equal(common.NewAmount(70), referrals[0].V1Data.Volume)
	assert.Len(indexer.GetQueries(constants.SUBGRAPH_ENDPOINT_REFERRALS), 1)
}

func TestFetchStatsOverflow(t *testing.T) {
	assert := assert.New(t)

	full := mock.Repeat(mock.ReferralStat(mock.Account(3), "7", "70"), constants.STATS_PAGE_SIZE)
	pages := make([][]mock.Row, constants.STATS_PAGE_COUNT)
	for i := range pages {
		pages[i] = full
	}
	indexer := mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{ReferralStatsPages: pages})

	_, _, err := FetchStats(context.Background(), indexer, testPeriod, "")
	assert.True(errors.Is(err, constants.ErrPaginationOverflow))
	assert.ErrorContains(err, "referrals stats should be paginated")
}

func TestFetchStatsFailure(t *testing.T) {
	assert := assert.New(t)
	failure := errors.New("subgraph unavailable")
	indexer := mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{FailWithError: failure})
	_, _, err := FetchStats(context.Background(), indexer, testPeriod, "")
	assert.True(errors.Is(err, failure))
}

func TestFetchAffiliateTiers(t *testing.T) {
	assert := assert.New(t)

	indexer := mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		Tiers: []mock.Row{mock.AffiliateTier(mock.Account(1), 2), mock.AffiliateTier(mock.Account(2), 1)},
	})
	tiers, err := FetchAffiliateTiers(context.Background(), indexer)
	assert.Nil(err)
	assert.Equal(map[string]int{mock.Account(1): 2, mock.Account(2): 1}, tiers)

	indexer = mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		Tiers: mock.Repeat(mock.AffiliateTier(mock.Account(1), 2), constants.TIER_QUERY_LIMIT),
	})
	_, err = FetchAffiliateTiers(context.Background(), indexer)
	assert.True(errors.Is(err, constants.ErrPaginationOverflow))

	indexer = mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		Tiers: []mock.Row{{"id": mock.Account(1), "tierId": "gold"}},
	})
	_, err = FetchAffiliateTiers(context.Background(), indexer)
	assert.True(errors.Is(err, constants.ErrIndexerResponseInvalid))
}

func TestFetchFees(t *testing.T) {
	assert := assert.New(t)

	indexer := mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		FeeStats: []mock.Row{mock.FeeStat("1", "2", "3", "4"), mock.FeeStat("10", "0", "0", "0")},
		PositionFees: []mock.Row{
			{"totalBorrowingFeeUsd": "100", "totalPositionFeeUsd": "200"},
		},
		SwapFees: []mock.Row{
			{"totalFeeReceiverUsd": "30", "totalFeeUsdForPool": "70"},
		},
	})

	feesV1, err := FetchFeesV1(context.Background(), indexer, testPeriod)
	assert.Nil(err)
	assert.Equal(common.NewAmount(20), feesV1)

	feesV2, err := FetchFeesV2(context.Background(), indexer, testPeriod)
	assert.Nil(err)
	assert.Equal(common.NewAmount(400), feesV2)

	query := indexer.GetQueries(constants.SUBGRAPH_ENDPOINT_STATS_V2)[0]
	assert.Equal(2, strings.Count(query, `id_gte: 1700000000, id_lt: 1700604800, period: "1d"`))
}

func TestGetBonusDistributionHistory(t *testing.T) {
	assert := assert.New(t)

	esGmx := ethcommon.HexToAddress("0xf42Ae1D54fd613C9bb14810b0588FaAa09a426cA")
	other := "0x82af49447d8a07e3bd95bd0d56f35241523fbab1"
	token := strings.ToLower(esGmx.Hex())
	indexer := mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		DistributionPages: [][]mock.Row{{
			mock.Distribution(mock.Account(2), []string{token}, []string{"5"}),
			mock.Distribution(mock.Account(1), []string{other, token}, []string{"100", "7"}),
			mock.Distribution(mock.Account(2), []string{token}, []string{"6"}),
			mock.Distribution(mock.Account(3), []string{token}, []string{"0"}),
			mock.Distribution(mock.Account(4), []string{other}, []string{"9"}),
		}},
	})

	history, err := GetBonusDistributionHistory(context.Background(), indexer, esGmx, testPeriod, "")
	assert.Nil(err)
	assert.Equal([]BonusDistribution{
		{Account: mock.Account(1), Amount: common.NewAmount(7)},
		{Account: mock.Account(2), Amount: common.NewAmount(11)},
	}, history)
	assert.Equal(common.NewAmount(18), SumBonusDistributions(history))
	assert.Contains(indexer.GetQueries(constants.SUBGRAPH_ENDPOINT_REFERRALS)[0], `tokens_contains: ["`+token+`"]`)

	_, err = GetBonusDistributionHistory(context.Background(), indexer, esGmx, testPeriod, "not-an-address")
	assert.True(errors.Is(err, constants.ErrInvalidArgument))

	indexer = mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		DistributionPages: [][]mock.Row{{mock.Distribution(mock.Account(1), []string{other, token}, []string{"1"})}},
	})
	_, err = GetBonusDistributionHistory(context.Background(), indexer, esGmx, testPeriod, mock.Account(1))
	assert.True(errors.Is(err, constants.ErrIndexerResponseInvalid))
	assert.Contains(indexer.GetQueries(constants.SUBGRAPH_ENDPOINT_REFERRALS)[0], `receiver: "`+mock.Account(1)+`"`)
}

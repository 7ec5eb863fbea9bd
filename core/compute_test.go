package core

import (
	"context"
	"errors"
	"math/big"
	"strconv"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/engines/contracts"
	store_engines "github.com/tez-capital/refpay/engines/store"
	"github.com/tez-capital/refpay/state"
	"github.com/tez-capital/refpay/test/mock"
)

const (
	initialFromTimestamp = int64(1700000000)
	latestTimestamp      = int64(1700604800)
)

var (
	// 2024-01-12, a Friday
	now = time.Date(2024, 1, 12, 15, 0, 0, 0, time.UTC)

	wntPrice = common.ExpandDecimals(2000, constants.PRICE_DECIMALS)
	gmxPrice = common.ExpandDecimals(50, constants.PRICE_DECIMALS)
)

func usd(n int64) string {
	return common.ExpandDecimals(n, constants.USD_DECIMALS).String()
}

func testConfiguration() *configuration.RuntimeConfiguration {
	config := configuration.GetDefaultRuntimeConfiguration()
	config.ChainId = configuration.LOCALHOST
	config.Distribution.InitialFromTimestamp = initialFromTimestamp
	return &config
}

func testIndexer() *mock.SimpleIndexer {
	return mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{
		AffiliateStatsPages: [][]mock.Row{{
			mock.AffiliateStat(mock.Account(1), usd(100), usd(40), usd(10000), 5, usd(20)),
			mock.AffiliateStat(mock.Account(2), usd(50), usd(10), usd(5000), 2, "0"),
			mock.AffiliateStat(mock.Account(3), "1000", "0", "10", 1, "0"),
		}},
		ReferralStatsPages: [][]mock.Row{{
			mock.ReferralStat(mock.Account(11), usd(30), usd(6000)),
			mock.ReferralStat(mock.Account(12), usd(10), usd(2000)),
		}},
		Tiers:        []mock.Row{mock.AffiliateTier(mock.Account(1), 2), mock.AffiliateTier(mock.Account(2), 1)},
		FeeStats:     []mock.Row{mock.FeeStat(usd(1000), usd(200), "0", "0")},
		PositionFees: []mock.Row{{"totalBorrowingFeeUsd": usd(300), "totalPositionFeeUsd": usd(700)}},
	})
}

func testChain(config *configuration.RuntimeConfiguration) *mock.SimpleChainReader {
	return mock.InitSimpleChainReader(&mock.SimpleChainReaderOpts{
		Uints: map[ethcommon.Hash]*big.Int{
			config.DataStoreKeys.EsGmxRewards: common.ExpandDecimals(10, constants.GMX_DECIMALS).Clone(),
			config.DataStoreKeys.WntPrice:     wntPrice.Clone(),
			config.DataStoreKeys.GmxPrice:     gmxPrice.Clone(),
		},
		LatestTimestamp: latestTimestamp,
	})
}

func TestComputeDistribution(t *testing.T) {
	assert := assert.New(t)

	config := testConfiguration()
	indexer := testIndexer()
	store := store_engines.NewMemoryStore()
	reporter := &mock.SimpleReporter{}
	engines := common.NewComputeEngineContext(indexer, testChain(config), store, reporter)

	result, err := ComputeDistribution(context.Background(), config, engines, &common.ComputeOptions{Clock: clockwork.NewFakeClockAt(now)})
	assert.Nil(err)

	snapshot := result.Snapshot
	assert.Equal(initialFromTimestamp, snapshot.FromTimestamp)
	assert.Equal(latestTimestamp, snapshot.ToTimestamp)
	assert.Equal(configuration.LOCALHOST, snapshot.ChainId)
	// the third affiliate is below the threshold
	assert.Len(snapshot.Affiliates, 2)
	assert.Len(result.Summary.Affiliates, 3)
	assert.Len(snapshot.Referrals, 2)
	assert.Equal(common.ExpandDecimals(150, constants.USD_DECIMALS).Add(common.NewAmount(1000)), snapshot.TotalRebateUsd)
	assert.Equal(common.ExpandDecimals(48, 16), snapshot.TotalBonusRewards)
	assert.Equal(common.ExpandDecimals(1200, constants.USD_DECIMALS), result.Summary.FeesV1Usd)
	assert.Equal(common.ExpandDecimals(100, constants.USD_DECIMALS), result.Summary.FeesV2Usd)

	stored := state.NewDistributionState(store)
	persisted, err := stored.LoadSnapshot(context.Background())
	assert.Nil(err)
	assert.Equal(snapshot.Affiliates[0].Account, persisted.Affiliates[0].Account)
	assert.Equal(snapshot.TotalBonusRewards, persisted.TotalBonusRewards)
	assert.Equal(strconv.FormatInt(latestTimestamp+1, 10), store.Values()[constants.STORE_KEY_FROM_TIMESTAMP])
	storedWntPrice, err := stored.LoadWntPrice(context.Background())
	assert.Nil(err)
	assert.Equal(wntPrice, storedWntPrice)

	feeDistributor, _ := config.GetAddress(configuration.CONTRACT_FEE_DISTRIBUTOR)
	expected, err := contracts.EncodeDistribute(snapshot.TotalRebateUsd.Clone(), snapshot.TotalBonusRewards.Clone(),
		result.Summary.FeesV1Usd.Clone(), result.Summary.FeesV2Usd.Clone())
	assert.Nil(err)
	assert.True(result.Result.CanExec)
	assert.Len(result.Result.CallData, 1)
	assert.Equal(feeDistributor, result.Result.CallData[0].To)
	assert.Equal(expected, []byte(result.Result.CallData[0].Data))

	assert.Len(reporter.Snapshots, 1)
	assert.Len(indexer.GetQueries(constants.SUBGRAPH_ENDPOINT_REFERRALS), 2)
	assert.Contains(indexer.GetQueries(constants.SUBGRAPH_ENDPOINT_REFERRALS)[0]+indexer.GetQueries(constants.SUBGRAPH_ENDPOINT_REFERRALS)[1], "timestamp_lt: 1700604800")

	// the next run starts where the previous one ended
	_, err = ComputeDistribution(context.Background(), config, engines, &common.ComputeOptions{Clock: clockwork.NewFakeClockAt(now), ToTimestamp: latestTimestamp + 1000})
	assert.Nil(err)
	next, err := stored.LoadSnapshot(context.Background())
	assert.Nil(err)
	assert.Equal(latestTimestamp+1, next.FromTimestamp)
	assert.Equal(latestTimestamp+1000, next.ToTimestamp)
}

func TestComputeDistributionDryRun(t *testing.T) {
	assert := assert.New(t)

	config := testConfiguration()
	store := store_engines.NewMemoryStoreFrom(map[string]string{
		constants.STORE_KEY_FROM_TIMESTAMP:    "1700300000",
		constants.STORE_KEY_DISTRIBUTION_DATA: `{"fromTimestamp": 1}`,
	})
	engines := common.NewComputeEngineContext(testIndexer(), testChain(config), store, nil)

	result, err := ComputeDistribution(context.Background(), config, engines, &common.ComputeOptions{
		DryRun:  true,
		Account: "0x0000000000000000000000000000000000000001",
		Clock:   clockwork.NewFakeClockAt(now),
	})
	assert.Nil(err)
	assert.Equal(int64(1700300000), result.Snapshot.FromTimestamp)
	assert.Equal(map[string]string{
		constants.STORE_KEY_FROM_TIMESTAMP:    "1700300000",
		constants.STORE_KEY_DISTRIBUTION_DATA: `{"fromTimestamp": 1}`,
	}, store.Values())

	_, err = ComputeDistribution(context.Background(), config, engines, &common.ComputeOptions{
		Account: "0x0000000000000000000000000000000000000001",
	})
	assert.True(errors.Is(err, constants.ErrInvalidArgument))
}

func TestComputeDistributionFailures(t *testing.T) {
	assert := assert.New(t)

	config := testConfiguration()
	chain := testChain(config)
	chain.GetOpts().Uints[config.DataStoreKeys.GmxPrice] = big.NewInt(0)
	store := store_engines.NewMemoryStore()
	engines := common.NewComputeEngineContext(testIndexer(), chain, store, nil)
	_, err := ComputeDistribution(context.Background(), config, engines, nil)
	assert.True(errors.Is(err, constants.ErrInvalidPrice))
	_, hasCursor := store.Values()[constants.STORE_KEY_FROM_TIMESTAMP]
	assert.False(hasCursor)

	failure := errors.New("subgraph down")
	engines = common.NewComputeEngineContext(mock.InitSimpleIndexer(&mock.SimpleIndexerOpts{FailWithError: failure}), testChain(config), store, nil)
	_, err = ComputeDistribution(context.Background(), config, engines, nil)
	assert.True(errors.Is(err, failure))

	_, err = ComputeDistribution(context.Background(), nil, engines, nil)
	assert.True(errors.Is(err, constants.ErrMissingConfiguration))

	_, err = ComputeDistribution(context.Background(), config, common.NewComputeEngineContext(nil, chain, store, nil), nil)
	assert.True(errors.Is(err, constants.ErrMissingIndexerEngine))

	_, err = ComputeDistribution(context.Background(), config, engines, &common.ComputeOptions{StatsPeriod: "last"})
	assert.True(errors.Is(err, constants.ErrInvalidPeriod))
}

package compute

import (
	"context"
	"errors"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/metrics"
	"golang.org/x/sync/errgroup"
)

func readPrice(ctx context.Context, chain common.ChainDataReader, name string, key ethcommon.Hash, target *common.Amount) func() error {
	return func() error {
		value, err := chain.GetUint(ctx, key)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to read %s price", name), err)
		}
		if value == nil || value.Sign() <= 0 {
			return errors.Join(constants.ErrInvalidPrice, fmt.Errorf("%s price is %v", name, value))
		}
		*target = common.NewAmountFromBig(value)
		return nil
	}
}

func CollectInputs(ctx *ComputeContext, options *common.ComputeOptions) (*ComputeContext, error) {
	defer metrics.ObserveStage(PIPELINE, "collect_inputs", time.Now())
	logger := ctx.logger.With("phase", "collect_inputs")
	configuration := ctx.GetConfiguration()

	fromTimestamp, err := ctx.state.LoadFromTimestamp(ctx.Context(), configuration.Distribution.InitialFromTimestamp)
	if err != nil {
		return ctx, err
	}
	feesPeriod, err := ctx.periods.Resolve(options.StatsPeriod)
	if err != nil {
		return ctx, err
	}

	data := ctx.StageData
	toTimestamp := options.ToTimestamp
	chain := ctx.GetChainReader()
	indexer := ctx.GetIndexer()

	group, groupContext := errgroup.WithContext(ctx.Context())
	if toTimestamp == 0 {
		group.Go(func() error {
			timestamp, err := chain.GetLatestBlockTimestamp(groupContext)
			if err != nil {
				return err
			}
			toTimestamp = timestamp
			return nil
		})
	}
	group.Go(func() error {
		value, err := chain.GetUint(groupContext, configuration.DataStoreKeys.EsGmxRewards)
		if err != nil {
			return errors.Join(errors.New("failed to read esGMX rewards"), err)
		}
		data.MaxBonusAmount = common.NewAmountFromBig(value)
		return nil
	})
	group.Go(readPrice(groupContext, chain, "wnt", configuration.DataStoreKeys.WntPrice, &data.WntPrice))
	group.Go(readPrice(groupContext, chain, "gmx", configuration.DataStoreKeys.GmxPrice, &data.GmxPrice))
	group.Go(func() error {
		fees, err := FetchFeesV1(groupContext, indexer, feesPeriod)
		if err != nil {
			return err
		}
		data.FeesV1Usd = fees
		return nil
	})
	group.Go(func() error {
		fees, err := FetchFeesV2(groupContext, indexer, feesPeriod)
		if err != nil {
			return err
		}
		data.FeesV2Usd = fees.Mul64(constants.V2_FEES_SHARE_PERCENT).Div64(100)
		return nil
	})
	if err := group.Wait(); err != nil {
		return ctx, err
	}

	if toTimestamp <= fromTimestamp {
		logger.Warn("distribution period is empty", "from", fromTimestamp, "to", toTimestamp)
	}

	data.Period = common.DistributionPeriod{FromTimestamp: fromTimestamp, ToTimestamp: toTimestamp}
	data.FeesPeriod = feesPeriod
	logger.Info("inputs collected",
		constants.LOG_FIELD_PERIOD, data.Period,
		"fees_period", feesPeriod,
		"wnt_price", data.WntPrice.Format(constants.PRICE_DECIMALS, 4),
		"gmx_price", data.GmxPrice.Format(constants.PRICE_DECIMALS, 4),
		"max_es_gmx_rewards", data.MaxBonusAmount.Format(constants.GMX_DECIMALS, 4),
		"fees_v1_usd", data.FeesV1Usd.Format(constants.USD_DECIMALS, 2),
		"fees_v2_usd", data.FeesV2Usd.Format(constants.USD_DECIMALS, 2))
	return ctx, nil
}

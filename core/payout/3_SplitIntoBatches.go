package payout

import (
	"log/slog"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/metrics"
)

type payoutList struct {
	category     enums.EPayoutCategory
	token        ethcommon.Address
	recipes      []common.PayoutRecipe
	emptyMessage string
}

func splitIntoBatches(logger *slog.Logger, lists []payoutList, batchSize int) ([]common.PayoutBatch, error) {
	result := make([]common.PayoutBatch, 0)
	for _, list := range lists {
		if len(list.recipes) == 0 {
			logger.Info(list.emptyMessage)
			continue
		}
		batches, err := common.SplitIntoBatches(list.category, list.token, list.recipes, batchSize)
		if err != nil {
			return nil, err
		}
		logger.Debug("payouts split into batches", "category", list.category, "payouts", len(list.recipes), constants.LOG_FIELD_BATCHES, len(batches))
		result = append(result, batches...)
	}
	return result, nil
}

func SplitIntoBatches(ctx *PayoutContext, options *common.PayoutOptions) (*PayoutContext, error) {
	defer metrics.ObserveStage(PIPELINE, "split_into_batches", time.Now())
	logger := ctx.logger.With("phase", "split_into_batches")
	data := ctx.StageData
	if !options.ShouldSend {
		logger.Info("referral rewards not sent, sending is disabled")
		return ctx, nil
	}

	batches, err := splitIntoBatches(logger, []payoutList{
		{enums.PAYOUT_CATEGORY_AFFILIATE, ctx.Tokens.Wnt, data.AffiliateRewards, "affiliateAccounts length = 0, no affiliate referral rewards sent"},
		{enums.PAYOUT_CATEGORY_DISCOUNT, ctx.Tokens.Wnt, data.TraderDiscounts, "discountAccounts length = 0, no discount referral rewards sent"},
		{enums.PAYOUT_CATEGORY_BONUS, ctx.Tokens.EsGmx, data.BonusRewards, "esGmxAccounts length = 0, no esGMX referral rewards sent"},
	}, options.BatchSize)
	if err != nil {
		return ctx, err
	}
	data.Batches = batches
	return ctx, nil
}

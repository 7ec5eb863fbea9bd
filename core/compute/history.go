package compute

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

type distributionRow struct {
	Tokens   []string        `json:"tokens"`
	Amounts  []common.Amount `json:"amounts"`
	Receiver string          `json:"receiver"`
}

type BonusDistribution struct {
	Account string        `json:"account" csv:"account"`
	Amount  common.Amount `json:"amount" csv:"amount"`
}

func bonusDistributionAlias(page int) string {
	return fmt.Sprintf("esGmxDistribution%d", page)
}

func BuildBonusDistributionQuery(bonusToken ethcommon.Address, period common.DistributionPeriod, account string) string {
	token := strings.ToLower(bonusToken.Hex())
	var builder strings.Builder
	builder.WriteString("{\n")
	for page := 0; page < constants.STATS_PAGE_COUNT; page++ {
		fmt.Fprintf(&builder, `  %s: distributions(
    where: {
      typeId: "1",
      tokens_contains: ["%s"]
      timestamp_gte: %d,
      timestamp_lt: %d%s
    }
    orderBy: timestamp
    orderDirection: desc
    first: %d
    skip: %d
  ) {
    tokens
    amounts
    receiver
  }
`, bonusDistributionAlias(page), token, period.FromTimestamp, period.ToTimestamp, accountCondition("receiver", account), constants.STATS_PAGE_SIZE, page*constants.STATS_PAGE_SIZE)
	}
	builder.WriteString("}")
	return builder.String()
}

// GetBonusDistributionHistory sums bonus token amounts already distributed per receiver within the period.
// Receivers with a zero total are omitted. The result is ordered by account.
func GetBonusDistributionHistory(ctx context.Context, indexer common.IndexerQueryService, bonusToken ethcommon.Address, period common.DistributionPeriod, account string) ([]BonusDistribution, error) {
	if account != "" {
		if !ethcommon.IsHexAddress(account) {
			return nil, errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid account '%s'", account))
		}
		account = strings.ToLower(account)
	}

	data, err := indexer.Query(ctx, constants.SUBGRAPH_ENDPOINT_REFERRALS, BuildBonusDistributionQuery(bonusToken, period, account))
	if err != nil {
		return nil, err
	}
	pages, err := pagesFromResponse[distributionRow](data, bonusDistributionAlias)
	if err != nil {
		return nil, err
	}
	rows, err := common.CollectPages(pages, constants.STATS_PAGE_SIZE)
	if err != nil {
		return nil, errors.Join(err, errors.New("esGMX distributions should be paginated"))
	}

	totals := make(map[string]common.Amount)
	for _, row := range rows {
		index := slices.IndexFunc(row.Tokens, func(token string) bool {
			return strings.EqualFold(token, bonusToken.Hex())
		})
		if index == -1 {
			continue
		}
		if index >= len(row.Amounts) {
			return nil, errors.Join(constants.ErrIndexerResponseInvalid, fmt.Errorf("distribution to %s has no amount for token index %d", row.Receiver, index))
		}
		total, ok := totals[row.Receiver]
		if !ok {
			total = common.Zero
		}
		totals[row.Receiver] = total.Add(row.Amounts[index])
	}

	result := make([]BonusDistribution, 0, len(totals))
	for _, receiver := range sortedKeys(totals) {
		if totals[receiver].IsZero() {
			continue
		}
		result = append(result, BonusDistribution{Account: receiver, Amount: totals[receiver]})
	}
	return result, nil
}

func SumBonusDistributions(distributions []BonusDistribution) common.Amount {
	return lo.Reduce(distributions, func(agg common.Amount, distribution BonusDistribution, _ int) common.Amount {
		return agg.Add(distribution.Amount)
	}, common.Zero)
}

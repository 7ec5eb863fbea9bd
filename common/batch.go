package common

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
)

type PayoutBatch struct {
	Category enums.EPayoutCategory
	Token    common.Address
	Accounts []common.Address
	Amounts  []Amount
}

func (b *PayoutBatch) Len() int {
	return len(b.Accounts)
}

// ProcessBatch walks accounts and amounts in consecutive windows of at most batchSize entries
func ProcessBatch(accounts []common.Address, amounts []Amount, batchSize int, process func(accounts []common.Address, amounts []Amount) error) error {
	if len(accounts) != len(amounts) {
		return errors.Join(constants.ErrPayoutListLengthMismatch, fmt.Errorf("accounts: %d, amounts: %d", len(accounts), len(amounts)))
	}
	if batchSize <= 0 {
		return errors.Join(constants.ErrInvalidArgument, fmt.Errorf("invalid batch size %d", batchSize))
	}
	for start := 0; start < len(accounts); start += batchSize {
		end := min(start+batchSize, len(accounts))
		if err := process(accounts[start:end], amounts[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// SplitIntoBatches groups recipes of a single category into batches. Empty input yields no batches.
func SplitIntoBatches(category enums.EPayoutCategory, token common.Address, recipes []PayoutRecipe, batchSize int) ([]PayoutBatch, error) {
	accounts := make([]common.Address, len(recipes))
	amounts := make([]Amount, len(recipes))
	for i, recipe := range recipes {
		accounts[i] = recipe.Account
		amounts[i] = recipe.Amount
	}

	batches := make([]PayoutBatch, 0, len(recipes)/max(batchSize, 1)+1)
	err := ProcessBatch(accounts, amounts, batchSize, func(accounts []common.Address, amounts []Amount) error {
		batches = append(batches, PayoutBatch{
			Category: category,
			Token:    token,
			Accounts: accounts,
			Amounts:  amounts,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}

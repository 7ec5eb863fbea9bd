package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

// DistributionState is the typed view over the key/value store shared by both phases.
type DistributionState struct {
	store common.KeyValueStore
}

func NewDistributionState(store common.KeyValueStore) *DistributionState {
	return &DistributionState{store: store}
}

func (s *DistributionState) get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return "", false, errors.Join(constants.ErrStateStoreFailed, fmt.Errorf("get %s", key), err)
	}
	return value, ok, nil
}

func (s *DistributionState) set(ctx context.Context, key string, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		return errors.Join(constants.ErrStateStoreFailed, fmt.Errorf("set %s", key), err)
	}
	return nil
}

// Reset drops everything the previous compute run left behind. The cursor survives.
func (s *DistributionState) Reset(ctx context.Context) error {
	for _, key := range []string{constants.STORE_KEY_DISTRIBUTION_DATA, constants.STORE_KEY_WNT_PRICE, constants.STORE_KEY_GMX_PRICE} {
		if err := s.store.Delete(ctx, key); err != nil {
			return errors.Join(constants.ErrStateStoreFailed, fmt.Errorf("delete %s", key), err)
		}
	}
	return nil
}

// LoadFromTimestamp returns the persisted cursor or initial when none was stored yet
func (s *DistributionState) LoadFromTimestamp(ctx context.Context, initial int64) (int64, error) {
	value, ok, err := s.get(ctx, constants.STORE_KEY_FROM_TIMESTAMP)
	if err != nil {
		return 0, err
	}
	if !ok || value == "" {
		return initial, nil
	}
	fromTimestamp, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Join(constants.ErrStateStoreFailed, fmt.Errorf("invalid %s '%s'", constants.STORE_KEY_FROM_TIMESTAMP, value), err)
	}
	return fromTimestamp, nil
}

func (s *DistributionState) SaveFromTimestamp(ctx context.Context, fromTimestamp int64) error {
	return s.set(ctx, constants.STORE_KEY_FROM_TIMESTAMP, strconv.FormatInt(fromTimestamp, 10))
}

func (s *DistributionState) SaveSnapshot(ctx context.Context, snapshot *common.DistributionSnapshot) error {
	data, err := snapshot.ToJSON()
	if err != nil {
		return err
	}
	return s.set(ctx, constants.STORE_KEY_DISTRIBUTION_DATA, string(data))
}

func (s *DistributionState) LoadSnapshot(ctx context.Context) (*common.DistributionSnapshot, error) {
	value, ok, err := s.get(ctx, constants.STORE_KEY_DISTRIBUTION_DATA)
	if err != nil {
		return nil, err
	}
	if !ok || value == "" {
		return nil, errors.Join(constants.ErrMissingState, errors.New("distribution data not found"))
	}
	return common.ParseDistributionSnapshot([]byte(value))
}

func (s *DistributionState) SavePrices(ctx context.Context, wntPrice common.Amount, gmxPrice common.Amount) error {
	if err := s.set(ctx, constants.STORE_KEY_WNT_PRICE, wntPrice.String()); err != nil {
		return err
	}
	return s.set(ctx, constants.STORE_KEY_GMX_PRICE, gmxPrice.String())
}

func (s *DistributionState) loadPrice(ctx context.Context, key string) (common.Amount, error) {
	value, ok, err := s.get(ctx, key)
	if err != nil {
		return common.Zero, err
	}
	if !ok || value == "" {
		return common.Zero, errors.Join(constants.ErrMissingState, fmt.Errorf("%s not found", key))
	}
	price, err := common.ParseAmount(value)
	if err != nil {
		return common.Zero, errors.Join(constants.ErrStateStoreFailed, err)
	}
	return price, nil
}

func (s *DistributionState) LoadWntPrice(ctx context.Context) (common.Amount, error) {
	return s.loadPrice(ctx, constants.STORE_KEY_WNT_PRICE)
}

func (s *DistributionState) LoadGmxPrice(ctx context.Context) (common.Amount, error) {
	return s.loadPrice(ctx, constants.STORE_KEY_GMX_PRICE)
}

// StoredState is a read-only dump of the persisted keys, used by `refpay state show`
type StoredState struct {
	FromTimestamp *int64                       `json:"fromTimestamp"`
	WntPrice      *common.Amount               `json:"wntPrice"`
	GmxPrice      *common.Amount               `json:"gmxPrice"`
	Snapshot      *common.DistributionSnapshot `json:"distributionData"`
}

func (s *DistributionState) Dump(ctx context.Context) (*StoredState, error) {
	result := &StoredState{}
	if value, ok, err := s.get(ctx, constants.STORE_KEY_FROM_TIMESTAMP); err != nil {
		return nil, err
	} else if ok {
		if fromTimestamp, err := strconv.ParseInt(value, 10, 64); err == nil {
			result.FromTimestamp = &fromTimestamp
		}
	}
	if price, err := s.LoadWntPrice(ctx); err == nil {
		result.WntPrice = &price
	} else if !errors.Is(err, constants.ErrMissingState) {
		return nil, err
	}
	if price, err := s.LoadGmxPrice(ctx); err == nil {
		result.GmxPrice = &price
	} else if !errors.Is(err, constants.ErrMissingState) {
		return nil, err
	}
	if snapshot, err := s.LoadSnapshot(ctx); err == nil {
		result.Snapshot = snapshot
	} else if !errors.Is(err, constants.ErrMissingState) {
		return nil, err
	}
	return result, nil
}

// Clear removes every key including the cursor
func (s *DistributionState) Clear(ctx context.Context) error {
	if err := s.Reset(ctx); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, constants.STORE_KEY_FROM_TIMESTAMP); err != nil {
		return errors.Join(constants.ErrStateStoreFailed, err)
	}
	return nil
}

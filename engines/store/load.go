package store_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/state"
)

// Load instantiates the store backend selected in the configuration. The returned
// close function is never nil.
func Load(ctx context.Context, config *configuration.RuntimeConfiguration) (common.KeyValueStore, func() error, error) {
	noop := func() error { return nil }
	switch config.Store.Kind {
	case enums.STORE_KIND_MEMORY:
		return NewMemoryStore(), noop, nil
	case enums.STORE_KIND_FILE:
		store, err := NewFileStore(state.Global.ResolvePath(config.Store.Path))
		if err != nil {
			return nil, noop, err
		}
		slog.Debug("using file state store", "path", store.GetPath())
		return store, noop, nil
	case enums.STORE_KIND_REDIS:
		store, err := NewRedisStore(ctx, RedisStoreOptions{
			Address:   config.Store.Redis.Address,
			Password:  config.Store.Redis.Password,
			DB:        config.Store.Redis.DB,
			KeyPrefix: config.Store.Redis.KeyPrefix,
			ChainId:   config.ChainId,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	}
	return nil, noop, errors.Join(constants.ErrInvalidStoreKind, fmt.Errorf("'%s'", config.Store.Kind))
}

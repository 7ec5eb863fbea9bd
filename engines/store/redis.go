package store_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tez-capital/refpay/constants"
)

type RedisStoreOptions struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
	ChainId   int64
}

// RedisStore namespaces every key as <prefix>:<chainId>:<key>
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(ctx context.Context, options RedisStoreOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.DB,

		PoolSize:     4,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Join(constants.ErrStoreLoadFailed, fmt.Errorf("failed to connect to redis at %s", options.Address), err)
	}
	slog.Debug("connected to redis", "address", options.Address, "db", options.DB)

	return &RedisStore{
		client: client,
		prefix: fmt.Sprintf("%s:%d:", options.KeyPrefix, options.ChainId),
	}, nil
}

func (engine *RedisStore) GetId() string {
	return "RedisStore"
}

func (engine *RedisStore) Close() error {
	return engine.client.Close()
}

func (engine *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := engine.client.Get(ctx, engine.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (engine *RedisStore) Set(ctx context.Context, key string, value string) error {
	return engine.client.Set(ctx, engine.prefix+key, value, 0).Err()
}

func (engine *RedisStore) Delete(ctx context.Context, key string) error {
	return engine.client.Del(ctx, engine.prefix+key).Err()
}

package store_engines

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/constants"
)

// set REFPAY_TEST_REDIS_ADDRESS (e.g. localhost:6379) to run against a live redis
const testRedisAddressEnv = "REFPAY_TEST_REDIS_ADDRESS"

func newTestRedisStore(t *testing.T, prefix string, chainId int64) *RedisStore {
	address := os.Getenv(testRedisAddressEnv)
	if address == "" {
		t.Skipf("%s not set", testRedisAddressEnv)
	}
	store, err := NewRedisStore(context.Background(), RedisStoreOptions{
		Address:   address,
		Password:  os.Getenv(constants.REDIS_PASSWORD_ENV),
		KeyPrefix: prefix,
		ChainId:   chainId,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	prefix := "refpay-test-" + uuid.NewString()
	store := newTestRedisStore(t, prefix, 42161)

	_, ok, err := store.Get(ctx, "missing")
	assert.Nil(err)
	assert.False(ok)

	assert.Nil(store.Set(ctx, "a", "1"))
	value, ok, err := store.Get(ctx, "a")
	assert.Nil(err)
	assert.True(ok)
	assert.Equal("1", value)

	// keys are namespaced per chain
	other := newTestRedisStore(t, prefix, 43114)
	_, ok, err = other.Get(ctx, "a")
	assert.Nil(err)
	assert.False(ok)

	assert.Nil(store.Delete(ctx, "a"))
	assert.Nil(store.Delete(ctx, "never-set"))
	_, ok, _ = store.Get(ctx, "a")
	assert.False(ok)
}

func TestDistributionStateOverRedis(t *testing.T) {
	testDistributionState(t, newTestRedisStore(t, "refpay-test-"+uuid.NewString(), 42161))
}

func TestRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := NewRedisStore(ctx, RedisStoreOptions{Address: "127.0.0.1:1", KeyPrefix: "refpay", ChainId: 42161})
	assert.ErrorIs(t, err, constants.ErrStoreLoadFailed)
}

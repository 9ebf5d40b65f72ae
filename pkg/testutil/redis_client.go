package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/questx-lab/basenft/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type MockRedisClient struct {
	DelFunc      func(ctx context.Context, key ...string) error
	IncrFunc     func(ctx context.Context, key string) (int64, error)
	GetObjFunc   func(ctx context.Context, key string, v any) error
	TransactFunc func(ctx context.Context, key string, ttl time.Duration, fn xredis.TxFunc) error
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key)
	}

	return 0, nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return redis.Nil
}

func (m *MockRedisClient) Transact(ctx context.Context, key string, ttl time.Duration, fn xredis.TxFunc) error {
	if m.TransactFunc != nil {
		return m.TransactFunc(ctx, key, ttl, fn)
	}

	_, err := fn("", false)
	return err
}

// NewMapRedisClient returns a MockRedisClient backed by a map, enough to
// exercise code written against xredis.Client without a server.
func NewMapRedisClient() *MockRedisClient {
	var mu sync.Mutex
	values := map[string]string{}
	counters := map[string]int64{}

	return &MockRedisClient{
		DelFunc: func(ctx context.Context, keys ...string) error {
			mu.Lock()
			defer mu.Unlock()
			for _, key := range keys {
				delete(values, key)
			}
			return nil
		},
		IncrFunc: func(ctx context.Context, key string) (int64, error) {
			mu.Lock()
			defer mu.Unlock()
			counters[key]++
			return counters[key], nil
		},
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			mu.Lock()
			value, ok := values[key]
			mu.Unlock()
			if !ok {
				return redis.Nil
			}
			return json.Unmarshal([]byte(value), v)
		},
		TransactFunc: func(ctx context.Context, key string, ttl time.Duration, fn xredis.TxFunc) error {
			mu.Lock()
			defer mu.Unlock()
			current, exists := values[key]
			next, err := fn(current, exists)
			if err != nil {
				return err
			}

			if next == "" {
				delete(values, key)
			} else {
				values[key] = next
			}
			return nil
		},
	}
}

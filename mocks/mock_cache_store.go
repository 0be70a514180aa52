package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docverify/internal/port"
)

// MockCacheStore is a mock implementation of port.CacheStore.
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Get(ctx context.Context, key string) (*port.StoreItem, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoreItem), args.Error(1)
}

func (m *MockCacheStore) Put(ctx context.Context, item port.StoreItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCacheStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheStore) Touch(ctx context.Context, key string, at time.Time) error {
	args := m.Called(ctx, key, at)
	return args.Error(0)
}

func (m *MockCacheStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

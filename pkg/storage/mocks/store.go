// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/williamokano/s3meta/pkg/storage"
)

// MockStore is a mock implementation of the storage.Store interface
type MockStore struct {
	mock.Mock
}

// Name provides a mock function with given fields:
func (m *MockStore) Name() string {
	ret := m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// ListBuckets provides a mock function with given fields: ctx
func (m *MockStore) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	ret := m.Called(ctx)

	var r0 []storage.BucketInfo
	if rf, ok := ret.Get(0).(func(context.Context) ([]storage.BucketInfo, error)); ok {
		return rf(ctx)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]storage.BucketInfo)
	}

	return r0, ret.Error(1)
}

// CreateBucket provides a mock function with given fields: ctx, bucket
func (m *MockStore) CreateBucket(ctx context.Context, bucket string) (string, error) {
	ret := m.Called(ctx, bucket)

	if rf, ok := ret.Get(0).(func(context.Context, string) (string, error)); ok {
		return rf(ctx, bucket)
	}

	return ret.String(0), ret.Error(1)
}

// HeadBucket provides a mock function with given fields: ctx, bucket
func (m *MockStore) HeadBucket(ctx context.Context, bucket string) error {
	ret := m.Called(ctx, bucket)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, bucket)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListObjects provides a mock function with given fields: ctx, bucket
func (m *MockStore) ListObjects(ctx context.Context, bucket string) ([]storage.ObjectInfo, error) {
	ret := m.Called(ctx, bucket)

	var r0 []storage.ObjectInfo
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]storage.ObjectInfo, error)); ok {
		return rf(ctx, bucket)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]storage.ObjectInfo)
	}

	return r0, ret.Error(1)
}

// Upload provides a mock function with given fields: ctx, bucket, key, sourcePath, metadata
func (m *MockStore) Upload(ctx context.Context, bucket, key, sourcePath string, metadata map[string]string) error {
	ret := m.Called(ctx, bucket, key, sourcePath, metadata)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, string, map[string]string) error); ok {
		r0 = rf(ctx, bucket, key, sourcePath, metadata)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Stat provides a mock function with given fields: ctx, bucket, key
func (m *MockStore) Stat(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	ret := m.Called(ctx, bucket, key)

	var r0 *storage.ObjectInfo
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (*storage.ObjectInfo, error)); ok {
		return rf(ctx, bucket, key)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*storage.ObjectInfo)
	}

	return r0, ret.Error(1)
}

// NewMockStore creates a new instance of MockStore
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	mock_1 := &MockStore{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}

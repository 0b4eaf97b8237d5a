// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// MockS3API is a mock of the S3 client subset used by the s3 store.
// Option functions are not recorded.
type MockS3API struct {
	mock.Mock
}

func (m *MockS3API) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.ListBucketsOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.CreateBucketOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.HeadBucketOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.HeadObjectOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.ListObjectsV2Output)
	return out, ret.Error(1)
}

func (m *MockS3API) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.PutObjectOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.UploadPartOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.CreateMultipartUploadOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.CompleteMultipartUploadOutput)
	return out, ret.Error(1)
}

func (m *MockS3API) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	ret := m.Called(ctx, params)
	out, _ := ret.Get(0).(*s3.AbortMultipartUploadOutput)
	return out, ret.Error(1)
}

// NewMockS3API creates a new instance of MockS3API
func NewMockS3API(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockS3API {
	mock_1 := &MockS3API{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}

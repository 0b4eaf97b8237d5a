package s3

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/williamokano/s3meta/pkg/storage"
)

const defaultRegion = "us-east-1"

// API is the subset of the S3 client used here
type API interface {
	manager.UploadAPIClient
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ API = (*s3.Client)(nil)

var _ storage.Store = (*Client)(nil)

type Client struct {
	name     string
	api      API
	region   string
	uploader *manager.Uploader
	logger   zerolog.Logger
}

// New creates a client bound to a single S3-compatible endpoint
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("missing required option: endpoint")
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	if cfg.InsecureSkipVerify {
		logger.Warn().
			Str("endpoint", cfg.Endpoint).
			Msg("TLS certificate verification is disabled")
	}

	// Build AWS config
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
		config.WithHTTPClient(newHTTPClient(cfg.InsecureSkipVerify)),
		// S3-compatible appliances often reject the newer default checksums
		config.WithRequestChecksumCalculation(aws.RequestChecksumCalculationWhenRequired),
		config.WithResponseChecksumValidation(aws.ResponseChecksumValidationWhenRequired),
	)
	if err != nil {
		return nil, storage.WrapError("s3", "init", nil, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = !cfg.VirtualHostedStyle
	})

	logger.Debug().
		Str("endpoint", cfg.Endpoint).
		Str("region", region).
		Bool("path_style", !cfg.VirtualHostedStyle).
		Msg("created s3 client")

	return NewWithAPI(client, region, logger), nil
}

// NewWithAPI wraps an already configured API implementation
func NewWithAPI(api API, region string, logger zerolog.Logger) *Client {
	if region == "" {
		region = defaultRegion
	}
	return &Client{
		name:     "s3",
		api:      api,
		region:   region,
		uploader: manager.NewUploader(api),
		logger:   logger,
	}
}

// newHTTPClient returns the SDK's buildable client, so AWS_CA_BUNDLE keeps
// working, with verification switched off only on request.
func newHTTPClient(insecureSkipVerify bool) *awshttp.BuildableClient {
	client := awshttp.NewBuildableClient()
	if !insecureSkipVerify {
		return client
	}
	return client.WithTransportOptions(func(tr *http.Transport) {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		tr.TLSClientConfig.InsecureSkipVerify = true
	})
}

func (c *Client) Name() string { return c.name }

// ListBuckets returns all buckets of the caller
func (c *Client) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	var buckets []storage.BucketInfo

	paginator := s3.NewListBucketsPaginator(c.api, &s3.ListBucketsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.wrap("list buckets", err)
		}

		for _, b := range page.Buckets {
			buckets = append(buckets, storage.BucketInfo{
				Name:         aws.ToString(b.Name),
				CreationDate: aws.ToTime(b.CreationDate),
			})
		}
	}

	return buckets, nil
}

// CreateBucket creates a bucket. A bucket the caller already owns is not an error.
func (c *Client) CreateBucket(ctx context.Context, bucket string) (string, error) {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	if c.region != defaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}

	out, err := c.api.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			c.logger.Info().Str("bucket", bucket).Msg("bucket already owned by caller")
			return "", nil
		}
		return "", c.wrap("create bucket", err)
	}

	return aws.ToString(out.Location), nil
}

// HeadBucket checks that a bucket exists and is accessible
func (c *Client) HeadBucket(ctx context.Context, bucket string) error {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return c.wrap("head bucket", err)
	}
	return nil
}

// ListObjects returns all objects of a bucket, following pagination
func (c *Client) ListObjects(ctx context.Context, bucket string) ([]storage.ObjectInfo, error) {
	var objects []storage.ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.wrap("list objects", err)
		}

		for _, obj := range page.Contents {
			objects = append(objects, storage.ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return objects, nil
}

// Upload puts a local file into the bucket with user metadata attached
func (c *Client) Upload(ctx context.Context, bucket, key, sourcePath string, metadata map[string]string) error {
	file, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		Body:     file,
		Metadata: metadata,
	}
	if mt, err := mimetype.DetectFile(sourcePath); err == nil {
		input.ContentType = aws.String(mt.String())
	}

	if _, err := c.uploader.Upload(ctx, input); err != nil {
		return c.wrap("upload", err)
	}

	return nil
}

// Stat returns metadata about an object
func (c *Client) Stat(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	result, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, c.wrap("stat", err)
	}

	return &storage.ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(result.ContentLength),
		LastModified: aws.ToTime(result.LastModified),
		ContentType:  aws.ToString(result.ContentType),
		Metadata:     result.Metadata,
	}, nil
}

func (c *Client) wrap(operation string, err error) error {
	return storage.WrapError(c.name, operation, classify(err), err)
}

// classify maps SDK errors onto the storage error kinds
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return storage.ErrTimeout
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket", "NoSuchKey", "NotFound", "404":
			return storage.ErrNotFound
		case "AccessDenied", "Forbidden", "AllAccessDisabled", "403":
			return storage.ErrPermissionDenied
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
			return storage.ErrAuthFailed
		case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
			return storage.ErrBucketExists
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return storage.ErrNotFound
		case http.StatusUnauthorized:
			return storage.ErrAuthFailed
		case http.StatusForbidden:
			return storage.ErrPermissionDenied
		}
	}

	var sendErr *smithyhttp.RequestSendError
	if errors.As(err, &sendErr) {
		return storage.ErrConnFailed
	}

	return nil
}

package ops

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/williamokano/s3meta/pkg/storage"
)

// ListBuckets returns every visible bucket, oldest first. Any error aborts
// the listing; partial results are never returned.
func ListBuckets(ctx context.Context, store storage.Store, logger zerolog.Logger) ([]storage.BucketInfo, error) {
	buckets, err := store.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	storage.SortBuckets(buckets)

	logger.Info().Int("count", len(buckets)).Msg("listed buckets")
	return buckets, nil
}

// CreateOptions tunes bucket creation
type CreateOptions struct {
	// FailIfExists probes the bucket first and refuses to continue when it
	// is already there. Without it an existing bucket is not an error.
	FailIfExists bool
}

// CreateBucket creates bucket and returns the location reported by the service
func CreateBucket(ctx context.Context, store storage.Store, bucket string, opts CreateOptions, logger zerolog.Logger) (string, error) {
	log := logger.With().Str("bucket", bucket).Logger()

	if opts.FailIfExists {
		err := store.HeadBucket(ctx, bucket)
		switch {
		case err == nil:
			return "", fmt.Errorf("failed to create bucket %s: %w", bucket, storage.ErrBucketExists)
		case !errors.Is(err, storage.ErrNotFound):
			return "", fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		log.Debug().Msg("bucket does not exist yet")
	}

	location, err := store.CreateBucket(ctx, bucket)
	if err != nil {
		return "", fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	log.Info().Str("location", location).Msg("bucket created")
	return location, nil
}

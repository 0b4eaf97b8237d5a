package ops

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/williamokano/s3meta/pkg/storage"
)

// ListObjects checks that bucket exists, then returns all of its objects
// ordered by last modification (oldest first)
func ListObjects(ctx context.Context, store storage.Store, bucket string, logger zerolog.Logger) ([]storage.ObjectInfo, error) {
	log := logger.With().Str("bucket", bucket).Logger()

	if err := store.HeadBucket(ctx, bucket); err != nil {
		return nil, fmt.Errorf("bucket %s is not accessible: %w", bucket, err)
	}

	objects, err := store.ListObjects(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects in %s: %w", bucket, err)
	}

	storage.SortObjects(objects)

	log.Info().Int("count", len(objects)).Msg("listed objects")
	return objects, nil
}

package storage

import (
	"context"
	"sort"
	"time"
)

// Store is the set of object-storage operations the commands need
type Store interface {
	// Name returns a human-readable name for this store (e.g., "s3")
	Name() string

	// ListBuckets returns every bucket visible to the caller
	ListBuckets(ctx context.Context) ([]BucketInfo, error)

	// CreateBucket creates a bucket and returns its location, if the service reports one
	CreateBucket(ctx context.Context, bucket string) (string, error)

	// HeadBucket succeeds when the bucket exists and is reachable
	HeadBucket(ctx context.Context, bucket string) error

	// ListObjects returns every object in the bucket
	ListObjects(ctx context.Context, bucket string) ([]ObjectInfo, error)

	// Upload stores a local file under key with the given user metadata
	// sourcePath: path to local file
	// key: object key in the bucket
	Upload(ctx context.Context, bucket, key, sourcePath string, metadata map[string]string) error

	// Stat returns metadata about a specific object
	Stat(ctx context.Context, bucket, key string) (*ObjectInfo, error)
}

// BucketInfo describes a bucket
type BucketInfo struct {
	Name         string
	CreationDate time.Time
}

// ObjectInfo represents metadata about a stored object
type ObjectInfo struct {
	Key          string            // Unique within the bucket
	Size         int64             // Size in bytes
	LastModified time.Time         // Last modification time
	ContentType  string            // Only filled by Stat
	Metadata     map[string]string // User metadata, only filled by Stat
}

// SortBuckets orders buckets by creation time (oldest first). Ties keep input order.
func SortBuckets(buckets []BucketInfo) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].CreationDate.Before(buckets[j].CreationDate)
	})
}

// SortObjects orders objects by modification time (oldest first). Ties keep input order.
func SortObjects(objects []ObjectInfo) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].LastModified.Before(objects[j].LastModified)
	})
}

package ops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/williamokano/s3meta/pkg/config"
	"github.com/williamokano/s3meta/pkg/storage"
	"github.com/williamokano/s3meta/pkg/storage/local"
	"github.com/williamokano/s3meta/pkg/storage/mocks"
)

var modified = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newSource(t *testing.T, root string) *local.Source {
	t.Helper()
	src, err := local.New(root, config.SidecarExt)
	require.NoError(t, err)
	return src
}

// expectStored makes Upload and Stat succeed for key, echoing the metadata
func expectStored(store *mocks.MockStore, key string, metadata map[string]string, size int64) {
	store.On("Upload", mock.Anything, "photos", key, mock.Anything, metadata).Return(nil).Once()
	store.On("Stat", mock.Anything, "photos", key).Return(&storage.ObjectInfo{
		Key:          key,
		Size:         size,
		LastModified: modified,
		Metadata:     metadata,
	}, nil).Once()
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("file_without_sidecar_is_skipped", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a.txt":  "hello",
			"a.JSON": `{"type":"doc"}`,
			"b.txt":  "no sidecar",
		})

		store := mocks.NewMockStore(t)
		expectStored(store, "a.txt", map[string]string{"type": "doc"}, 5)

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos"}, zerolog.Nop())
		require.NoError(t, err)

		require.Len(t, result.Records, 1)
		assert.Equal(t, 1, result.Uploaded())
		assert.Equal(t, "a.txt", result.Records[0].Key)
		assert.Equal(t, "doc", result.Records[0].Type)
		assert.Equal(t, int64(5), result.Records[0].Size)
		assert.Equal(t, modified, result.Records[0].LastModified)
		assert.Equal(t, []string{filepath.Join(root, "b.txt")}, result.Skipped)
		assert.Empty(t, result.Failures)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, "b.txt", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, "a.JSON", mock.Anything, mock.Anything)
	})

	t.Run("invalid_sidecar_is_skipped", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a.txt":  "hello",
			"a.JSON": `{"type": ["not", "a", "string"]}`,
		})

		store := mocks.NewMockStore(t)

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos"}, zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, result.Records)
		assert.Len(t, result.Skipped, 1)
	})

	t.Run("not_found_continues_with_next_file", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a.txt":  "a",
			"a.JSON": `{"type":"doc"}`,
			"b.txt":  "b",
			"b.JSON": `{"type":"img"}`,
			"c.txt":  "c",
			"c.JSON": `{"type":"log"}`,
		})

		store := mocks.NewMockStore(t)
		expectStored(store, "a.txt", map[string]string{"type": "doc"}, 1)
		store.On("Upload", mock.Anything, "photos", "b.txt", mock.Anything, mock.Anything).
			Return(storage.WrapError("s3", "upload", storage.ErrNotFound, errors.New("NoSuchKey"))).Once()
		expectStored(store, "c.txt", map[string]string{"type": "log"}, 1)

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos"}, zerolog.Nop())
		require.NoError(t, err)

		require.Len(t, result.Records, 2)
		assert.Equal(t, "a.txt", result.Records[0].Key)
		assert.Equal(t, "c.txt", result.Records[1].Key)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "b.txt", result.Failures[0].Key)
		assert.ErrorIs(t, result.Failures[0].Err, storage.ErrNotFound)
	})

	t.Run("not_found_on_stat_is_a_per_file_failure", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a.txt":  "a",
			"a.JSON": `{"type":"doc"}`,
		})

		store := mocks.NewMockStore(t)
		store.On("Upload", mock.Anything, "photos", "a.txt", mock.Anything, mock.Anything).Return(nil).Once()
		store.On("Stat", mock.Anything, "photos", "a.txt").Return(nil, storage.ErrNotFound).Once()

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos"}, zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, result.Records)
		assert.Len(t, result.Failures, 1)
	})

	t.Run("other_error_halts_remaining_files", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a.txt":  "a",
			"a.JSON": `{"type":"doc"}`,
			"b.txt":  "b",
			"b.JSON": `{"type":"img"}`,
			"c.txt":  "c",
			"c.JSON": `{"type":"log"}`,
		})

		store := mocks.NewMockStore(t)
		expectStored(store, "a.txt", map[string]string{"type": "doc"}, 1)
		store.On("Upload", mock.Anything, "photos", "b.txt", mock.Anything, mock.Anything).
			Return(storage.ErrPermissionDenied).Once()

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos"}, zerolog.Nop())
		require.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrPermissionDenied)
		assert.Contains(t, err.Error(), "b.txt")

		require.Len(t, result.Records, 1)
		assert.Equal(t, "a.txt", result.Records[0].Key)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, "c.txt", mock.Anything, mock.Anything)
	})

	t.Run("subdirectories_share_one_running_total", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a.txt":              "a",
			"a.JSON":             `{"type":"doc"}`,
			"nested/b.txt":       "b",
			"nested/b.JSON":      `{"type":"img"}`,
			"nested/deep/c.txt":  "c",
			"nested/deep/c.JSON": `{"type":"log"}`,
		})

		store := mocks.NewMockStore(t)
		expectStored(store, "a.txt", map[string]string{"type": "doc"}, 1)
		expectStored(store, "b.txt", map[string]string{"type": "img"}, 1)
		expectStored(store, "c.txt", map[string]string{"type": "log"}, 1)

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos"}, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, 3, result.Uploaded())
		assert.Equal(t, root, result.Records[0].Dir)
		assert.Equal(t, filepath.Join(root, "nested"), result.Records[1].Dir)
		assert.Equal(t, filepath.Join(root, "nested", "deep"), result.Records[2].Dir)
	})

	t.Run("missing_type_renders_empty", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"a.txt":  "a",
			"a.JSON": `{"owner":"ops"}`,
		})

		store := mocks.NewMockStore(t)
		expectStored(store, "a.txt", map[string]string{"owner": "ops"}, 1)

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos"}, zerolog.Nop())
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Empty(t, result.Records[0].Type)
	})
}

func TestUploadParallel(t *testing.T) {
	ctx := context.Background()

	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		files[name+".txt"] = name
		files[name+".JSON"] = `{"type":"` + name + `"}`
	}

	t.Run("records_keep_walk_order", func(t *testing.T) {
		root := writeTree(t, files)

		store := mocks.NewMockStore(t)
		for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
			expectStored(store, name+".txt", map[string]string{"type": name}, 1)
		}

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos", Concurrency: 3}, zerolog.Nop())
		require.NoError(t, err)
		require.Len(t, result.Records, 6)
		for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
			assert.Equal(t, name+".txt", result.Records[i].Key)
			assert.Equal(t, name, result.Records[i].Type)
		}
	})

	t.Run("respects_concurrency_limit", func(t *testing.T) {
		root := writeTree(t, files)

		var mu sync.Mutex
		inFlight, peak := 0, 0

		store := mocks.NewMockStore(t)
		store.On("Upload", mock.Anything, "photos", mock.Anything, mock.Anything, mock.Anything).
			Return(func(context.Context, string, string, string, map[string]string) error {
				mu.Lock()
				inFlight++
				if inFlight > peak {
					peak = inFlight
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				inFlight--
				mu.Unlock()
				return nil
			})
		store.On("Stat", mock.Anything, "photos", mock.Anything).
			Return(&storage.ObjectInfo{LastModified: modified}, nil)

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos", Concurrency: 2}, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, 6, result.Uploaded())
		assert.LessOrEqual(t, peak, 2)
	})

	t.Run("fatal_error_is_returned", func(t *testing.T) {
		root := writeTree(t, files)

		store := mocks.NewMockStore(t)
		store.On("Upload", mock.Anything, "photos", "c.txt", mock.Anything, mock.Anything).
			Return(storage.ErrAuthFailed).Maybe()
		store.On("Upload", mock.Anything, "photos", mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Maybe()
		store.On("Stat", mock.Anything, "photos", mock.Anything).
			Return(&storage.ObjectInfo{LastModified: modified}, nil).Maybe()

		result, err := Upload(ctx, store, newSource(t, root), UploadOptions{Bucket: "photos", Concurrency: 2}, zerolog.Nop())
		assert.ErrorIs(t, err, storage.ErrAuthFailed)
		for _, r := range result.Records {
			assert.NotEqual(t, "c.txt", r.Key)
		}
	})
}

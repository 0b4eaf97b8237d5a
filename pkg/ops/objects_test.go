package ops

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/williamokano/s3meta/pkg/storage"
	"github.com/williamokano/s3meta/pkg/storage/mocks"
)

func TestListObjects(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted_by_last_modified", func(t *testing.T) {
		base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		store := mocks.NewMockStore(t)
		store.On("HeadBucket", mock.Anything, "photos").Return(nil).Once()
		store.On("ListObjects", mock.Anything, "photos").Return([]storage.ObjectInfo{
			{Key: "c.jpg", LastModified: base.Add(2 * time.Hour), Size: 3},
			{Key: "a.jpg", LastModified: base, Size: 1},
			{Key: "b.jpg", LastModified: base.Add(time.Hour), Size: 2},
		}, nil).Once()

		objects, err := ListObjects(ctx, store, "photos", zerolog.Nop())
		require.NoError(t, err)
		require.Len(t, objects, 3)
		for i := 1; i < len(objects); i++ {
			assert.False(t, objects[i].LastModified.Before(objects[i-1].LastModified))
		}
		assert.Equal(t, "a.jpg", objects[0].Key)
	})

	t.Run("missing_bucket_aborts_before_listing", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		store.On("HeadBucket", mock.Anything, "ghost").Return(storage.ErrNotFound).Once()

		objects, err := ListObjects(ctx, store, "ghost", zerolog.Nop())
		assert.Nil(t, objects)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		store.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything)
	})

	t.Run("list_error", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		store.On("HeadBucket", mock.Anything, "photos").Return(nil).Once()
		store.On("ListObjects", mock.Anything, "photos").Return(nil, storage.ErrTimeout).Once()

		objects, err := ListObjects(ctx, store, "photos", zerolog.Nop())
		assert.Nil(t, objects)
		assert.ErrorIs(t, err, storage.ErrTimeout)
	})

	t.Run("empty_bucket", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		store.On("HeadBucket", mock.Anything, "empty").Return(nil).Once()
		store.On("ListObjects", mock.Anything, "empty").Return(nil, nil).Once()

		objects, err := ListObjects(ctx, store, "empty", zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, objects)
	})
}

package pack

import (
	"bytes"
	"context"
	"io"
	"testing"

	"asset-cache/core/assets"
	"asset-cache/core/storage/mocks"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBucketStore_EnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "assets").Return(true, nil)

		require.NoError(t, NewBucketStore(client, "assets", "").EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Create", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "assets").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "assets", mock.Anything).Return(nil)

		require.NoError(t, NewBucketStore(client, "assets", "").EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "assets").Return(false, assert.AnError)

		assert.ErrorIs(t, NewBucketStore(client, "assets", "").EnsureBucket(context.Background()), assert.AnError)
	})
}

func TestBucketStore_SaveLoad(t *testing.T) {
	client := new(mocks.Client)
	store := NewBucketStore(client, "assets", "databases/")
	ctx := context.Background()

	rows := []assets.Row{{UID: uuid.New(), Location: "app:/data/a.png", Type: "image"}}

	var uploaded []byte
	client.On("PutObject", mock.Anything, "assets", "databases/app/assets.pack", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
			assert.Equal(t, int64(len(data)), args.Get(4).(int64))
		}).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, store.Save(ctx, "app", rows))
	require.NotEmpty(t, uploaded)

	client.On("GetObject", mock.Anything, "assets", "databases/app/assets.pack", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(uploaded)), nil)

	got, err := store.Load(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestBucketStore_LoadMissing(t *testing.T) {
	client := new(mocks.Client)
	store := NewBucketStore(client, "assets", "")
	noSuchKey := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}

	client.On("GetObject", mock.Anything, "assets", "app/assets.pack", mock.Anything).Return(nil, noSuchKey)

	rows, err := store.Load(context.Background(), "app")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBucketStore_LoadError(t *testing.T) {
	client := new(mocks.Client)
	store := NewBucketStore(client, "assets", "")
	client.On("GetObject", mock.Anything, "assets", "app/assets.pack", mock.Anything).Return(nil, assert.AnError)

	_, err := store.Load(context.Background(), "app")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBucketStore_Delete(t *testing.T) {
	client := new(mocks.Client)
	store := NewBucketStore(client, "assets", "")
	client.On("RemoveObject", mock.Anything, "assets", "app/assets.pack", mock.Anything).Return(nil)

	require.NoError(t, store.Delete(context.Background(), "app"))
	client.AssertExpectations(t)
}

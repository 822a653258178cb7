package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrestling-admin/internal/domains/image/model"
	"wrestling-admin/internal/infrastructure/storage"
	"wrestling-admin/internal/shared/capability"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
	calls   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.objects[key] = data
	f.types[key] = contentType
	return "http://localhost:9000/wrestler-images/" + key, nil
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestService(st ObjectStorage, maxBytes int64, maxDim int) (*imageService, *capability.Set) {
	caps := capability.New([]string{"wrestlers"}, true)
	proc := storage.NewImageProcessor(maxBytes, maxDim, []string{"image/png", "image/jpeg", "image/gif", "image/webp"})
	svc := NewImageService(st, proc, caps).(*imageService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	svc.newID = func() string { return "0b7c" }
	return svc, caps
}

func TestUploadEncoded(t *testing.T) {
	st := newFakeStorage()
	svc, _ := newTestService(st, 10<<20, 2048)

	res, err := svc.UploadEncoded(context.Background(), model.EncodeDataURL(pngOf(t, 4, 3)), "wrestlers")

	require.NoError(t, err)
	assert.Equal(t, "wrestlers/0b7c_1700000000000.png", res.Key)
	assert.Equal(t, "http://localhost:9000/wrestler-images/wrestlers/0b7c_1700000000000.png", res.URL)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, 4, res.Width)
	assert.Equal(t, 3, res.Height)
	assert.False(t, res.Resized)
	assert.Equal(t, "image/png", st.types[res.Key])
}

func TestUploadEncoded_DownscalesLargeImages(t *testing.T) {
	st := newFakeStorage()
	svc, _ := newTestService(st, 10<<20, 16)

	res, err := svc.UploadEncoded(context.Background(), model.EncodeDataURL(pngOf(t, 64, 32)), "factions")

	require.NoError(t, err)
	assert.True(t, res.Resized)
	assert.Equal(t, 16, res.Width)
	assert.Equal(t, 8, res.Height)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(st.objects[res.Key]))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
}

func TestUploadEncoded_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		data     func(t *testing.T) string
		folder   string
		maxBytes int64
		wantCode string
	}{
		{
			name:     "folder not allowed",
			data:     func(t *testing.T) string { return model.EncodeDataURL(pngOf(t, 1, 1)) },
			folder:   "championships",
			maxBytes: 10 << 20,
			wantCode: model.CodeInvalidFolder,
		},
		{
			name:     "not base64",
			data:     func(*testing.T) string { return "data:image/png;base64,@@@" },
			folder:   "wrestlers",
			maxBytes: 10 << 20,
			wantCode: model.CodeInvalidImage,
		},
		{
			name:     "too large",
			data:     func(t *testing.T) string { return model.EncodeDataURL(pngOf(t, 32, 32)) },
			folder:   "wrestlers",
			maxBytes: 10,
			wantCode: model.CodeInvalidImage,
		},
		{
			name:     "not an image",
			data:     func(*testing.T) string { return model.EncodeDataURL([]byte("just some text, not pixels")) },
			folder:   "promotions",
			maxBytes: 10 << 20,
			wantCode: model.CodeInvalidImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newFakeStorage()
			svc, _ := newTestService(st, tt.maxBytes, 2048)

			_, err := svc.UploadEncoded(context.Background(), tt.data(t), tt.folder)

			assert.Equal(t, tt.wantCode, model.GetErrorCode(err))
			assert.Zero(t, st.calls)
		})
	}
}

func TestUploadEncoded_StorageFailure(t *testing.T) {
	st := newFakeStorage()
	st.err = errors.New("connection refused")
	svc, _ := newTestService(st, 10<<20, 2048)

	_, err := svc.UploadEncoded(context.Background(), model.EncodeDataURL(pngOf(t, 1, 1)), "wrestlers")

	assert.Equal(t, model.CodeUploadFailed, model.GetErrorCode(err))
}

func TestUploadEncoded_Disabled(t *testing.T) {
	svc, caps := newTestService(newFakeStorage(), 10<<20, 2048)
	caps.DisableImageUploads()

	_, err := svc.UploadEncoded(context.Background(), model.EncodeDataURL(pngOf(t, 1, 1)), "wrestlers")

	assert.Equal(t, model.CodeUploadsDisabled, model.GetErrorCode(err))
}

func TestUploadEncoded_NoStorageConfigured(t *testing.T) {
	caps := capability.New(nil, true)
	svc := NewImageService(nil, storage.NewImageProcessor(10<<20, 0, []string{"image/png"}), caps)

	_, err := svc.UploadEncoded(context.Background(), model.EncodeDataURL(pngOf(t, 1, 1)), "wrestlers")

	assert.Equal(t, model.CodeUploadsDisabled, model.GetErrorCode(err))
}

func TestUploadFile_UsesFirstFile(t *testing.T) {
	st := newFakeStorage()
	svc, _ := newTestService(st, 10<<20, 2048)
	first := pngOf(t, 2, 2)

	res, err := svc.UploadFile(context.Background(), "promotions",
		model.File{Name: "first.png", Data: first},
		model.File{Name: "second.png", Data: pngOf(t, 5, 5)},
	)

	require.NoError(t, err)
	assert.Equal(t, first, st.objects[res.Key])
	assert.Equal(t, 1, st.calls)
}

func TestUploadFile_NoFile(t *testing.T) {
	svc, _ := newTestService(newFakeStorage(), 10<<20, 2048)

	_, err := svc.UploadFile(context.Background(), "promotions")

	assert.Equal(t, model.CodeInvalidImage, model.GetErrorCode(err))
}

func TestResolve_FailureClearsImageAndDisablesUploads(t *testing.T) {
	ctx := context.Background()
	st := newFakeStorage()
	st.err = errors.New("bucket missing")
	svc, caps := newTestService(st, 10<<20, 2048)
	previous := "http://old/image.png"
	data := model.EncodeDataURL(pngOf(t, 1, 1))

	got := svc.Resolve(ctx, "wrestlers", data, &previous)

	assert.Nil(t, got)
	assert.False(t, caps.ImageUploads())
	assert.Equal(t, 1, st.calls)

	got = svc.Resolve(ctx, "wrestlers", data, &previous)
	assert.Equal(t, &previous, got)
	assert.Equal(t, 1, st.calls, "later saves skip the upload step")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	st := newFakeStorage()
	svc, caps := newTestService(st, 10<<20, 2048)
	existing := "http://cdn/existing.png"

	assert.Equal(t, &existing, svc.Resolve(ctx, "wrestlers", "", &existing))
	assert.Nil(t, svc.Resolve(ctx, "wrestlers", "", nil))

	got := svc.Resolve(ctx, "wrestlers", model.EncodeDataURL(pngOf(t, 1, 1)), &existing)
	require.NotNil(t, got)
	assert.Equal(t, "http://localhost:9000/wrestler-images/wrestlers/0b7c_1700000000000.png", *got)
	assert.True(t, caps.ImageUploads())
}

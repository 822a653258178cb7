package storage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

func jpegOf(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func gifOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, w, h), []color.Color{color.Black, color.White})
	buf := new(bytes.Buffer)
	require.NoError(t, gif.Encode(buf, img, nil))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor(1<<20, 0, allTypes)

	img, err := p.ValidateImage(jpegOf(t, 10, 20))

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, ".jpg", img.Ext)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 20, img.Height)
}

func TestValidateImage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		proc    *ImageProcessor
		data    []byte
		wantErr error
	}{
		{"empty", NewImageProcessor(1<<20, 0, allTypes), nil, ErrImageEmpty},
		{"too large", NewImageProcessor(8, 0, allTypes), []byte("0123456789"), ErrImageTooLarge},
		{"type not allowed", NewImageProcessor(1<<20, 0, []string{"image/png"}), jpegOf(t, 2, 2), ErrImageType},
		{"text", NewImageProcessor(1<<20, 0, allTypes), []byte("hello world"), ErrImageType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.proc.ValidateImage(tt.data)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateImage_TooLargeMessageIsHumanReadable(t *testing.T) {
	p := NewImageProcessor(1024, 0, allTypes)

	_, err := p.ValidateImage(make([]byte, 2048))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2.0 KiB exceeds 1.0 KiB")
}

func TestProcess_ResizesJPEG(t *testing.T) {
	p := NewImageProcessor(1<<20, 50, allTypes)

	img, err := p.Process(jpegOf(t, 200, 100))

	require.NoError(t, err)
	assert.True(t, img.Resized)
	assert.Equal(t, 50, img.Width)
	assert.Equal(t, 25, img.Height)
	assert.Equal(t, "image/jpeg", img.ContentType)
}

func TestProcess_KeepsGIFAsIs(t *testing.T) {
	data := gifOf(t, 200, 100)
	p := NewImageProcessor(1<<20, 50, allTypes)

	img, err := p.Process(data)

	require.NoError(t, err)
	assert.False(t, img.Resized)
	assert.Equal(t, data, img.Data)
	assert.Equal(t, "image/gif", img.ContentType)
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(errors.New("network")))
	assert.False(t, IsValidationError(nil))
}

package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

var (
	ErrImageTooLarge   = errors.New("image too large")
	ErrImageType       = errors.New("image type not allowed")
	ErrImageUndecoding = errors.New("not a decodable image")
	ErrImageEmpty      = errors.New("image is empty")
)

// ProcessedImage là ảnh đã được validate, sẵn sàng upload
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Ext         string // ".png", ".jpg", ...
	Width       int
	Height      int
	Resized     bool
}

type ImageProcessor struct {
	MaxSize      int64 // bytes
	MaxDimension int   // px, 0 = không resize
	allowed      map[string]bool
}

func NewImageProcessor(maxSize int64, maxDimension int, allowedTypes []string) *ImageProcessor {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &ImageProcessor{MaxSize: maxSize, MaxDimension: maxDimension, allowed: allowed}
}

// ValidateImage kiểm tra size, MIME type (sniff từ nội dung, không tin client) và decode header
func (p *ImageProcessor) ValidateImage(data []byte) (*ProcessedImage, error) {
	if len(data) == 0 {
		return nil, ErrImageEmpty
	}
	if int64(len(data)) > p.MaxSize {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrImageTooLarge,
			humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(p.MaxSize)))
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	if !p.allowed[contentType] {
		return nil, fmt.Errorf("%w: %s", ErrImageType, contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUndecoding, err)
	}

	return &ProcessedImage{
		Data:        data,
		ContentType: contentType,
		Ext:         mt.Extension(),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// Process validate rồi thu nhỏ ảnh JPEG/PNG vượt MaxDimension.
// GIF (có thể animated) và WebP (không có encoder) được giữ nguyên.
func (p *ImageProcessor) Process(data []byte) (*ProcessedImage, error) {
	img, err := p.ValidateImage(data)
	if err != nil {
		return nil, err
	}
	if p.MaxDimension <= 0 || (img.Width <= p.MaxDimension && img.Height <= p.MaxDimension) {
		return img, nil
	}

	var format imaging.Format
	switch img.ContentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return img, nil
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUndecoding, err)
	}
	resized := imaging.Fit(src, p.MaxDimension, p.MaxDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, format, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("cannot encode resized image: %w", err)
	}

	b := resized.Bounds()
	img.Data = buf.Bytes()
	img.Width = b.Dx()
	img.Height = b.Dy()
	img.Resized = true
	return img, nil
}

// IsValidationError: lỗi do nội dung ảnh, không phải do hạ tầng
func IsValidationError(err error) bool {
	return errors.Is(err, ErrImageTooLarge) ||
		errors.Is(err, ErrImageType) ||
		errors.Is(err, ErrImageUndecoding) ||
		errors.Is(err, ErrImageEmpty)
}

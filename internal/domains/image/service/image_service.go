package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wrestling-admin/internal/domains/image/model"
	"wrestling-admin/internal/infrastructure/storage"
	"wrestling-admin/internal/shared/capability"
)

type imageService struct {
	storage   ObjectStorage
	processor Processor
	caps      *capability.Set
	now       func() time.Time
	newID     func() string
}

// NewImageService: storage có thể nil (MinIO không khả dụng lúc startup),
// khi đó mọi upload bị từ chối với UPLOADS_DISABLED.
func NewImageService(storage ObjectStorage, processor Processor, caps *capability.Set) ServiceInterface {
	return &imageService{
		storage:   storage,
		processor: processor,
		caps:      caps,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// objectKey: <folder>/<random>_<unix millis><ext>
func (s *imageService) objectKey(folder, ext string) string {
	return fmt.Sprintf("%s/%s_%d%s", folder, s.newID(), s.now().UnixMilli(), ext)
}

func (s *imageService) UploadEncoded(ctx context.Context, dataURL, folder string) (*model.Result, error) {
	if !s.caps.ImageUploads() || s.storage == nil {
		return nil, model.ErrUploadsDisabled
	}
	if !model.ValidFolder(folder) {
		return nil, model.NewInvalidFolder(folder)
	}

	declared, raw, err := model.ParseDataURL(dataURL)
	if err != nil {
		return nil, model.NewInvalidImage(err)
	}

	img, err := s.processor.Process(raw)
	if err != nil {
		if storage.IsValidationError(err) {
			return nil, model.NewInvalidImage(err)
		}
		return nil, model.NewUploadFailed(err)
	}
	if declared != "" && declared != img.ContentType {
		log.Debug().Str("declared", declared).Str("sniffed", img.ContentType).Msg("[IMAGE] declared MIME type ignored")
	}

	key := s.objectKey(folder, img.Ext)
	url, err := s.storage.Upload(ctx, key, img.Data, img.ContentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("[IMAGE] upload failed")
		return nil, model.NewUploadFailed(err)
	}

	log.Info().Str("key", key).Int("bytes", len(img.Data)).Bool("resized", img.Resized).Msg("[IMAGE] uploaded")
	return &model.Result{
		URL:         url,
		Key:         key,
		ContentType: img.ContentType,
		Size:        len(img.Data),
		Width:       img.Width,
		Height:      img.Height,
		Resized:     img.Resized,
	}, nil
}

func (s *imageService) UploadFile(ctx context.Context, folder string, files ...model.File) (*model.Result, error) {
	var result *model.Result

	upload := model.NewUpload()
	_, err := upload.Run(ctx, files, func(ctx context.Context, dataURL string) (string, error) {
		r, err := s.UploadEncoded(ctx, dataURL, folder)
		if err != nil {
			return "", err
		}
		result = r
		return r.URL, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNoFile) {
			return nil, model.NewInvalidImage(err)
		}
		return nil, err
	}
	return result, nil
}

func (s *imageService) Resolve(ctx context.Context, folder string, imageData string, imageURL *string) *string {
	if imageData == "" {
		return imageURL
	}
	if !s.caps.ImageUploads() {
		return imageURL
	}

	res, err := s.UploadEncoded(ctx, imageData, folder)
	if err != nil {
		log.Error().Err(err).Str("folder", folder).Msg("[IMAGE] upload failed, saving without image")
		if s.caps.DisableImageUploads() {
			log.Warn().Msg("[IMAGE] image uploads disabled for this session")
		}
		return nil
	}
	return &res.URL
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/domains/entity/repository"
	"wrestling-admin/internal/infrastructure/database"
	"wrestling-admin/internal/shared/capability"
	"wrestling-admin/internal/shared/listing"
)

const imageColumn = "image_url"

type entityService struct {
	repo    repository.RepositoryInterface
	caps    *capability.Set
	counter AssociationCounter
	images  ImageResolver
	now     func() time.Time
}

// NewEntityService creates the entity store service.
// counter và images có thể nil (không có association counts / không upload ảnh).
func NewEntityService(
	repo repository.RepositoryInterface,
	caps *capability.Set,
	counter AssociationCounter,
	images ImageResolver,
) ServiceInterface {
	return &entityService{
		repo:    repo,
		caps:    caps,
		counter: counter,
		images:  images,
		now:     time.Now,
	}
}

// ==================== READ ====================

func (s *entityService) List(ctx context.Context, kind model.Kind) []model.Entity {
	if !kind.Valid() {
		log.Error().Str("kind", string(kind)).Msg("list called with unsupported kind")
		return []model.Entity{}
	}

	var list []model.Entity
	err := s.withImageFallback(kind, func() error {
		var err error
		list, err = s.repo.List(ctx, kind)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to list entities")
		return []model.Entity{}
	}
	if list == nil {
		list = []model.Entity{}
	}
	// collation của DB không chắc là locale-aware, sort lại ở đây
	listing.SortByNameAsc(list, entityName)
	return list
}

func (s *entityService) ListWithWrestlerCount(ctx context.Context, kind model.Kind) []model.EntityWithCount {
	list := s.List(ctx, kind)

	counts := map[int64]int{}
	if s.counter != nil && kind.IsRelated() && len(list) > 0 {
		c, err := s.counter.CountsByEntity(ctx, kind)
		if err != nil {
			log.Error().Err(err).Str("kind", string(kind)).Msg("failed to count wrestlers, defaulting to 0")
		} else {
			counts = c
		}
	}

	out := make([]model.EntityWithCount, len(list))
	for i, e := range list {
		out[i] = model.EntityWithCount{Entity: e, WrestlerCount: counts[e.ID]}
	}
	return out
}

func (s *entityService) Get(ctx context.Context, kind model.Kind, id int64) (*model.Entity, error) {
	if !kind.Valid() {
		return nil, model.NewUnsupportedKind(string(kind))
	}
	if id <= 0 {
		return nil, model.NewNotFound(kind, id)
	}

	var e *model.Entity
	err := s.withImageFallback(kind, func() error {
		var err error
		e, err = s.repo.GetByID(ctx, kind, id)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Int64("id", id).Msg("failed to get entity")
		return nil, model.NewStoreFailure("get", kind, err)
	}
	if e == nil {
		return nil, model.NewNotFound(kind, id)
	}
	return e, nil
}

// ==================== WRITE ====================

func (s *entityService) Create(ctx context.Context, kind model.Kind, req *model.SaveRequest) (*model.Entity, error) {
	if req == nil {
		req = &model.SaveRequest{}
	}
	fields, err := s.validate(kind, req)
	if err != nil {
		return nil, err
	}
	fields = s.resolveImage(ctx, kind, req, fields)

	var created *model.Entity
	err = s.withImageFallback(kind, func() error {
		var err error
		created, err = s.repo.Create(ctx, kind, s.project(kind, fields))
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("name", fields.Name).Msg("failed to create entity")
		return nil, model.NewStoreFailure("create", kind, err)
	}

	log.Info().Str("kind", string(kind)).Int64("id", created.ID).Msg("entity created")
	return created, nil
}

func (s *entityService) Update(ctx context.Context, kind model.Kind, id int64, req *model.SaveRequest) (*model.Entity, error) {
	if id <= 0 {
		return nil, model.NewNotFound(kind, id)
	}
	if req == nil {
		req = &model.SaveRequest{}
	}
	fields, err := s.validate(kind, req)
	if err != nil {
		return nil, err
	}

	// record phải tồn tại trước khi upload, tránh object mồ côi trong bucket
	if s.runsImagePipeline(kind, req) {
		if _, err := s.Get(ctx, kind, id); err != nil {
			return nil, err
		}
	}
	fields = s.resolveImage(ctx, kind, req, fields)

	updatedAt := s.now().UTC()

	var updated *model.Entity
	err = s.withImageFallback(kind, func() error {
		var err error
		updated, err = s.repo.Update(ctx, kind, id, s.project(kind, fields), updatedAt)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Int64("id", id).Msg("failed to update entity")
		return nil, model.NewStoreFailure("update", kind, err)
	}
	if updated == nil {
		return nil, model.NewNotFound(kind, id)
	}
	return updated, nil
}

func (s *entityService) Delete(ctx context.Context, kind model.Kind, id int64) error {
	if !kind.Valid() {
		return model.NewUnsupportedKind(string(kind))
	}
	if id <= 0 {
		return model.NewNotFound(kind, id)
	}

	ok, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Int64("id", id).Msg("failed to delete entity")
		return model.NewStoreFailure("delete", kind, err)
	}
	if !ok {
		return model.NewNotFound(kind, id)
	}

	log.Info().Str("kind", string(kind)).Int64("id", id).Msg("entity deleted")
	return nil
}

// ==================== HELPERS ====================

func entityName(e model.Entity) string { return e.Name }

// validate chạy trước mọi network call; req (khác nil) được normalize tại chỗ
func (s *entityService) validate(kind model.Kind, req *model.SaveRequest) (model.Fields, error) {
	if !kind.Valid() {
		return model.Fields{}, model.NewUnsupportedKind(string(kind))
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return model.Fields{}, model.NewValidationError(err)
	}
	return req.Fields(), nil
}

func (s *entityService) runsImagePipeline(kind model.Kind, req *model.SaveRequest) bool {
	return req.ImageData != "" && s.images != nil && s.imageColumn(kind)
}

// resolveImage upload image_data nếu có; lỗi upload trả về ảnh rỗng, save vẫn tiếp tục
func (s *entityService) resolveImage(ctx context.Context, kind model.Kind, req *model.SaveRequest, fields model.Fields) model.Fields {
	if !s.imageColumn(kind) {
		return fields.WithoutImage()
	}
	if s.runsImagePipeline(kind, req) {
		fields.ImageURL = s.images.Resolve(ctx, string(kind), req.ImageData, req.ImageURL)
	}
	return fields
}

func (s *entityService) imageColumn(kind model.Kind) bool {
	return kind.SupportsImage() && s.caps.ImageColumn(kind.Table())
}

// project bỏ image_url khỏi câu lệnh nếu bảng không có cột, đọc capability tại thời điểm gọi
func (s *entityService) project(kind model.Kind, fields model.Fields) model.Fields {
	if !s.imageColumn(kind) {
		return fields.WithoutImage()
	}
	return fields
}

func (s *entityService) withImageFallback(kind model.Kind, fn func() error) error {
	return imageFallback(s.caps, kind, fn)
}

// imageFallback chạy fn; nếu store báo thiếu cột image_url thì tắt capability
// của bảng cho cả session và chạy lại đúng một lần.
func imageFallback(caps *capability.Set, kind model.Kind, fn func() error) error {
	err := fn()
	if err == nil || !kind.SupportsImage() || !database.IsUndefinedColumn(err, imageColumn) {
		return err
	}

	if caps.DisableImageColumn(kind.Table()) {
		log.Warn().Str("table", kind.Table()).Msg("image_url column missing, image support disabled for this session")
	}
	return fn()
}

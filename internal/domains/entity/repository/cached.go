package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/pkg/cache"
)

// cachedRepository bọc một RepositoryInterface với cache-aside cho List và GetByID.
// Mọi write vào một kind sẽ invalidate list của kind đó và key của id bị ghi.
// Lỗi cache chỉ được log, không bao giờ làm fail operation.
type cachedRepository struct {
	inner RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(inner RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{inner: inner, cache: c, ttl: ttl}
}

func listKey(kind model.Kind) string {
	return fmt.Sprintf("entity:%s:list", kind)
}

func itemKey(kind model.Kind, id int64) string {
	return fmt.Sprintf("entity:%s:%d", kind, id)
}

// KindPattern match mọi key cache của một kind
func KindPattern(kind model.Kind) string {
	return fmt.Sprintf("entity:%s:*", kind)
}

func (r *cachedRepository) List(ctx context.Context, kind model.Kind) ([]model.Entity, error) {
	key := listKey(kind)

	var cached []model.Entity
	if found, err := r.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] get failed")
	} else if found {
		return cached, nil
	}

	list, err := r.inner.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, list, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] set failed")
	}
	return list, nil
}

func (r *cachedRepository) GetByID(ctx context.Context, kind model.Kind, id int64) (*model.Entity, error) {
	key := itemKey(kind, id)

	var cached model.Entity
	if found, err := r.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] get failed")
	} else if found {
		return &cached, nil
	}

	e, err := r.inner.GetByID(ctx, kind, id)
	if err != nil || e == nil {
		return e, err
	}

	if err := r.cache.Set(ctx, key, e, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] set failed")
	}
	return e, nil
}

// GetByIDs không cache: kết quả phụ thuộc vào tập id
func (r *cachedRepository) GetByIDs(ctx context.Context, kind model.Kind, ids []int64) ([]model.Entity, error) {
	return r.inner.GetByIDs(ctx, kind, ids)
}

func (r *cachedRepository) Create(ctx context.Context, kind model.Kind, fields model.Fields) (*model.Entity, error) {
	e, err := r.inner.Create(ctx, kind, fields)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, kind, listKey(kind))
	return e, nil
}

func (r *cachedRepository) Update(ctx context.Context, kind model.Kind, id int64, fields model.Fields, updatedAt time.Time) (*model.Entity, error) {
	e, err := r.inner.Update(ctx, kind, id, fields, updatedAt)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, kind, listKey(kind), itemKey(kind, id))
	return e, nil
}

func (r *cachedRepository) Delete(ctx context.Context, kind model.Kind, id int64) (bool, error) {
	ok, err := r.inner.Delete(ctx, kind, id)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, kind, listKey(kind), itemKey(kind, id))
	return ok, nil
}

func (r *cachedRepository) invalidate(ctx context.Context, kind model.Kind, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("[CACHE] invalidate failed")
	}
}

package service

import (
	"context"

	"wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/domains/entity/repository"
	"wrestling-admin/internal/shared/capability"
)

// Reader là batch lookup của Entity Store cho Association Manager.
// Dùng chung fallback image_url với entity service để read không fail khi
// capability còn tin rằng bảng có cột đó.
type Reader struct {
	repo repository.RepositoryInterface
	caps *capability.Set
}

func NewReader(repo repository.RepositoryInterface, caps *capability.Set) *Reader {
	return &Reader{repo: repo, caps: caps}
}

func (r *Reader) GetByIDs(ctx context.Context, kind model.Kind, ids []int64) ([]model.Entity, error) {
	var list []model.Entity
	err := imageFallback(r.caps, kind, func() error {
		var err error
		list, err = r.repo.GetByIDs(ctx, kind, ids)
		return err
	})
	return list, err
}

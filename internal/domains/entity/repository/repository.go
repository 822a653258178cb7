package repository

import (
	"context"
	"time"

	"wrestling-admin/internal/domains/entity/model"
)

// RepositoryInterface defines data access for the four entity tables.
// Kind luôn được validate ở service trước khi tới đây.
type RepositoryInterface interface {
	// List trả về toàn bộ record, ordered by name ascending
	List(ctx context.Context, kind model.Kind) ([]model.Entity, error)

	// GetByID returns nil, nil if not found
	GetByID(ctx context.Context, kind model.Kind, id int64) (*model.Entity, error)

	// GetByIDs là batch lookup ("in" predicate); id không tồn tại bị bỏ qua
	GetByIDs(ctx context.Context, kind model.Kind, ids []int64) ([]model.Entity, error)

	Create(ctx context.Context, kind model.Kind, fields model.Fields) (*model.Entity, error)

	// Update returns nil, nil if not found
	Update(ctx context.Context, kind model.Kind, id int64, fields model.Fields, updatedAt time.Time) (*model.Entity, error)

	// Delete trả về false nếu không có row nào bị xóa
	Delete(ctx context.Context, kind model.Kind, id int64) (bool, error)
}

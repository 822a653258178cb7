package service

import (
	"context"

	"wrestling-admin/internal/domains/entity/model"
)

// ServiceInterface là Entity Store cho cả 4 kind
type ServiceInterface interface {
	// List không bao giờ trả error: lỗi store được log và trả về slice rỗng
	List(ctx context.Context, kind model.Kind) []model.Entity

	// ListWithWrestlerCount gắn số wrestler liên kết vào từng record (0 nếu count lỗi)
	ListWithWrestlerCount(ctx context.Context, kind model.Kind) []model.EntityWithCount

	Get(ctx context.Context, kind model.Kind, id int64) (*model.Entity, error)

	Create(ctx context.Context, kind model.Kind, req *model.SaveRequest) (*model.Entity, error)

	// Update luôn stamp updated_at
	Update(ctx context.Context, kind model.Kind, id int64, req *model.SaveRequest) (*model.Entity, error)

	// Delete không cascade associations ở tầng application
	Delete(ctx context.Context, kind model.Kind, id int64) error
}

// AssociationCounter trả về số wrestler theo entity id của một kind
type AssociationCounter interface {
	CountsByEntity(ctx context.Context, kind model.Kind) (map[int64]int, error)
}

// ImageResolver chạy image pipeline cho một save và trả về URL cuối cùng.
// Lỗi upload không làm fail save: resolver trả về nil.
type ImageResolver interface {
	Resolve(ctx context.Context, folder string, imageData string, imageURL *string) *string
}

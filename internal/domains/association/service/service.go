package service

import (
	"context"

	entitymodel "wrestling-admin/internal/domains/entity/model"
	wrestlermodel "wrestling-admin/internal/domains/wrestler/model"
)

// ServiceInterface là Association Manager
type ServiceInterface interface {
	// AssociatedEntities: entity của kind liên kết với wrestler, ordered by name.
	// Không có liên kết thì trả về rỗng mà không query bảng entity.
	AssociatedEntities(ctx context.Context, wrestlerID int64, kind entitymodel.Kind) ([]entitymodel.Entity, error)

	// ReplaceAssociations thay toàn bộ liên kết của wrestler với kind bằng ids
	ReplaceAssociations(ctx context.Context, wrestlerID int64, kind entitymodel.Kind, ids []int64) error

	// ReplaceAll thay cả ba kind, chạy song song
	ReplaceAll(ctx context.Context, wrestlerID int64, sel wrestlermodel.Selection) error

	CountAssociated(ctx context.Context, entityID int64, kind entitymodel.Kind) (int, error)

	// CountsByEntity: entity_id → số wrestler cho cả kind, một query
	CountsByEntity(ctx context.Context, kind entitymodel.Kind) (map[int64]int, error)

	// AssociatedWrestlers: chiều ngược, wrestler tham chiếu entityID kèm quan hệ
	AssociatedWrestlers(ctx context.Context, entityID int64, kind entitymodel.Kind) ([]wrestlermodel.Wrestler, error)

	// Enrich gắn ba tập quan hệ vào danh sách wrestler base rows
	Enrich(ctx context.Context, base []entitymodel.Entity) ([]wrestlermodel.Wrestler, error)
}

// EntityReader là query contract của Entity Store mà Association Manager dùng
type EntityReader interface {
	GetByIDs(ctx context.Context, kind entitymodel.Kind, ids []int64) ([]entitymodel.Entity, error)
}

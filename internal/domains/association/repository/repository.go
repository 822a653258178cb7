package repository

import (
	"context"

	entitymodel "wrestling-admin/internal/domains/entity/model"
)

// RepositoryInterface sở hữu ba bảng junction.
// Kind phải là một trong model.RelatedKinds.
type RepositoryInterface interface {
	// RelatedIDs: id phía kind của một wrestler
	RelatedIDs(ctx context.Context, kind entitymodel.Kind, wrestlerID int64) ([]int64, error)

	// RelatedIDsByWrestlers: batch version, map wrestler_id → ids
	RelatedIDsByWrestlers(ctx context.Context, kind entitymodel.Kind, wrestlerIDs []int64) (map[int64][]int64, error)

	// WrestlerIDs: chiều ngược lại, các wrestler liên kết với entityID
	WrestlerIDs(ctx context.Context, kind entitymodel.Kind, entityID int64) ([]int64, error)

	// Replace xóa toàn bộ liên kết của wrestler với kind rồi insert tập ids mới
	Replace(ctx context.Context, kind entitymodel.Kind, wrestlerID int64, ids []int64) error

	// Count đếm số row junction tham chiếu entityID (không materialize row)
	Count(ctx context.Context, kind entitymodel.Kind, entityID int64) (int, error)

	// CountAll: entity_id → số wrestler, một query GROUP BY
	CountAll(ctx context.Context, kind entitymodel.Kind) (map[int64]int, error)
}

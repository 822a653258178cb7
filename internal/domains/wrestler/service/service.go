package service

import (
	"context"

	"wrestling-admin/internal/domains/wrestler/model"
)

// ServiceInterface là aggregate wrestler: base row trong entity store
// cộng ba tập quan hệ trong association manager
type ServiceInterface interface {
	// List load toàn bộ wrestler kèm quan hệ, build filter options từ list đầy đủ
	// rồi mới áp filter. Không trả error: lỗi store cho ra list rỗng.
	List(ctx context.Context, filter model.Filter) *model.ListResult

	Get(ctx context.Context, id int64) (*model.Wrestler, error)

	// Create insert base row rồi ghi các liên kết đã chọn
	Create(ctx context.Context, req *model.SaveRequest) (*model.Wrestler, error)

	// Update ghi base row rồi full replace cả ba kind
	Update(ctx context.Context, id int64, req *model.SaveRequest) (*model.Wrestler, error)

	Delete(ctx context.Context, id int64) error
}

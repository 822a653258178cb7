package service

import (
	"context"

	"wrestling-admin/internal/domains/image/model"
	"wrestling-admin/internal/infrastructure/storage"
)

// ServiceInterface là privileged upload path của image pipeline
type ServiceInterface interface {
	// UploadEncoded decode data URL, validate, resize nếu cần, ghi vào object storage
	UploadEncoded(ctx context.Context, dataURL, folder string) (*model.Result, error)

	// UploadFile chạy state machine đầy đủ cho file nhận qua multipart
	UploadFile(ctx context.Context, folder string, files ...model.File) (*model.Result, error)

	// Resolve dùng khi save entity: lỗi upload không làm fail save,
	// image bị clear và uploads bị tắt cho tới khi restart
	Resolve(ctx context.Context, folder string, imageData string, imageURL *string) *string
}

// ObjectStorage là phần object-storage mà pipeline cần
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Processor validate và chuẩn hóa ảnh trước khi upload
type Processor interface {
	Process(data []byte) (*storage.ProcessedImage, error)
}

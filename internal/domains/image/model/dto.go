package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Folders được phép upload, một folder cho mỗi kind có ảnh
var Folders = []interface{}{"wrestlers", "promotions", "factions"}

// UploadRequest là body JSON của POST /images
type UploadRequest struct {
	Data   string `json:"data"`
	Folder string `json:"folder"`
}

func (r UploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Data, validation.Required.Error("data is required")),
		validation.Field(&r.Folder,
			validation.Required.Error("folder is required"),
			validation.In(Folders...).Error("folder must be one of wrestlers, promotions, factions"),
		),
	)
}

// ValidFolder kiểm tra folder có trong danh sách cho phép
func ValidFolder(folder string) bool {
	return validation.Validate(folder, validation.Required, validation.In(Folders...)) == nil
}

// Result là kết quả upload thành công
type Result struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Resized     bool   `json:"resized"`
}

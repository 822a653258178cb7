package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var dataURLPattern = regexp.MustCompile(`^data:[a-z]+/[a-z0-9.+-]+;base64,`)

// SaveRequest dùng cho cả create và update.
// ImageData là data URL base64 do dashboard encode; nếu có, ảnh được upload
// và URL trả về ghi đè ImageURL.
// Update không gửi image_url/image_data thì giữ nguyên ảnh cũ; muốn xóa ảnh
// thì gửi clear_image=true hoặc image_url rỗng.
type SaveRequest struct {
	Name       string  `json:"name"`
	ImageURL   *string `json:"image_url,omitempty"`
	ImageData  string  `json:"image_data,omitempty"`
	ClearImage bool    `json:"clear_image,omitempty"`
}

// Normalize trim name; image_url rỗng được hiểu là yêu cầu xóa ảnh
func (r *SaveRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.ImageURL != nil {
		trimmed := strings.TrimSpace(*r.ImageURL)
		if trimmed == "" {
			r.ImageURL = nil
			r.ClearImage = true
		} else {
			r.ImageURL = &trimmed
		}
	}
	r.ImageData = strings.TrimSpace(r.ImageData)
}

// TouchesImage: request có nhắc tới ảnh (set, upload hoặc xóa)
func (r SaveRequest) TouchesImage() bool {
	return r.ImageURL != nil || r.ImageData != "" || r.ClearImage
}

func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 255).Error("name must be at most 255 characters"),
		),
		validation.Field(&r.ImageURL,
			validation.NilOrNotEmpty,
			is.URL.Error("image_url must be a valid URL"),
		),
		validation.Field(&r.ImageData,
			validation.When(r.ImageData != "",
				validation.Match(dataURLPattern).Error("image_data must be a base64 data URL"),
			),
		),
	)
}

// Fields chuyển request thành Fields. WithImage chỉ bật khi request nhắc tới ảnh;
// service vẫn tắt nó nếu bảng không có cột image_url.
func (r SaveRequest) Fields() Fields {
	if r.ClearImage && r.ImageData == "" {
		return Fields{Name: r.Name, WithImage: true}
	}
	return Fields{Name: r.Name, ImageURL: r.ImageURL, WithImage: r.TouchesImage()}
}

// ListQuery là query string của màn list
type ListQuery struct {
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wrestling-admin/internal/domains/image/model"
	"wrestling-admin/internal/domains/image/service"
	"wrestling-admin/internal/shared/response"
)

const label = "image"

type ImageHandler struct {
	service  service.ServiceInterface
	maxBytes int64
}

// NewImageHandler: maxBytes giới hạn số byte đọc từ mỗi file multipart
func NewImageHandler(service service.ServiceInterface, maxBytes int64) *ImageHandler {
	return &ImageHandler{service: service, maxBytes: maxBytes}
}

func (h *ImageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images", h.Upload)
}

func failUpload(c *gin.Context, err error) {
	statusCode, message, code := model.MapErrorToHTTP(err)
	response.MutationFailed(c, statusCode, "upload", label, message, code)
}

// Upload handles POST /images
// multipart: field "file" (chỉ file đầu tiên) + "folder"; JSON: {data, folder}
func (h *ImageHandler) Upload(c *gin.Context) {
	var (
		result *model.Result
		err    error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		result, err = h.uploadMultipart(c)
	} else {
		result, err = h.uploadEncoded(c)
	}
	if err != nil {
		failUpload(c, err)
		return
	}

	response.Mutated(c, http.StatusCreated, "Image uploaded", result)
}

func (h *ImageHandler) uploadEncoded(c *gin.Context) (*model.Result, error) {
	var req model.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, model.NewInvalidImage(fmt.Errorf("invalid request payload: %w", err))
	}
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidImage(err)
	}
	return h.service.UploadEncoded(c.Request.Context(), req.Data, req.Folder)
}

func (h *ImageHandler) uploadMultipart(c *gin.Context) (*model.Result, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, model.NewInvalidImage(fmt.Errorf("invalid multipart form: %w", err))
	}

	folder := c.PostForm("folder")
	headers := form.File["file"]
	if len(headers) > 1 {
		log.Debug().Int("files", len(headers)).Msg("[IMAGE] multiple files selected, using the first")
	}

	var files []model.File
	if len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			return nil, model.NewInvalidImage(err)
		}
		defer f.Close()

		// đọc tối đa maxBytes+1 để processor vẫn nhận ra file quá lớn
		data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
		if err != nil {
			return nil, model.NewInvalidImage(err)
		}
		files = append(files, model.File{Name: headers[0].Filename, Data: data})
	}

	result, err := h.service.UploadFile(c.Request.Context(), folder, files...)
	if err != nil && !errors.As(err, new(*model.ImageError)) {
		return nil, model.NewUploadFailed(err)
	}
	return result, err
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrestling-admin/internal/domains/image/model"
	"wrestling-admin/internal/domains/image/service"
	"wrestling-admin/internal/infrastructure/storage"
	"wrestling-admin/internal/shared/capability"
)

type memStorage struct {
	keys []string
}

func (m *memStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	m.keys = append(m.keys, key)
	return "http://cdn.test/" + key, nil
}

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		URL   string `json:"url"`
		Width int    `json:"width"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Notification *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"notification"`
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func setupRouter(uploads bool) (*memStorage, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	st := &memStorage{}
	caps := capability.New(nil, uploads)
	proc := storage.NewImageProcessor(1<<20, 0, []string{"image/png", "image/jpeg"})
	h := NewImageHandler(service.NewImageService(st, proc, caps), 1<<20)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return st, r
}

func serve(t *testing.T, r http.Handler, req *http.Request) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, folder string, files ...[]byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("folder", folder))
	for i, data := range files {
		fw, err := mw.CreateFormFile("file", "photo"+string(rune('a'+i))+".png")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_JSON(t *testing.T) {
	st, r := setupRouter(true)
	body, _ := json.Marshal(model.UploadRequest{Data: model.EncodeDataURL(pngOf(t, 3, 3)), Folder: "wrestlers"})

	code, env := serve(t, r, jsonRequest(string(body)))

	require.Equal(t, http.StatusCreated, code)
	require.Len(t, st.keys, 1)
	assert.True(t, strings.HasPrefix(st.keys[0], "wrestlers/"))
	assert.Equal(t, "http://cdn.test/"+st.keys[0], env.Data.URL)
	assert.Equal(t, "Image uploaded", env.Notification.Message)
}

func TestUpload_MultipartUsesFirstFile(t *testing.T) {
	st, r := setupRouter(true)

	code, env := serve(t, r, multipartRequest(t, "factions", pngOf(t, 7, 2), pngOf(t, 9, 9)))

	require.Equal(t, http.StatusCreated, code)
	assert.Len(t, st.keys, 1)
	assert.Equal(t, 7, env.Data.Width)
}

func TestUpload_Failures(t *testing.T) {
	tests := []struct {
		name       string
		uploads    bool
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing folder",
			uploads:    true,
			req:        func(t *testing.T) *http.Request { return jsonRequest(`{"data":"data:image/png;base64,AAAA"}`) },
			wantStatus: http.StatusBadRequest,
			wantCode:   model.CodeInvalidImage,
		},
		{
			name:    "championships have no images",
			uploads: true,
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "championships", pngOf(t, 1, 1))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   model.CodeInvalidFolder,
		},
		{
			name:       "no file",
			uploads:    true,
			req:        func(t *testing.T) *http.Request { return multipartRequest(t, "wrestlers") },
			wantStatus: http.StatusBadRequest,
			wantCode:   model.CodeInvalidImage,
		},
		{
			name:       "not an image",
			uploads:    true,
			req:        func(t *testing.T) *http.Request { return multipartRequest(t, "wrestlers", []byte("plain text")) },
			wantStatus: http.StatusBadRequest,
			wantCode:   model.CodeInvalidImage,
		},
		{
			name:    "uploads disabled",
			uploads: false,
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "wrestlers", pngOf(t, 1, 1))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   model.CodeUploadsDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, r := setupRouter(tt.uploads)

			code, env := serve(t, r, tt.req(t))

			assert.Equal(t, tt.wantStatus, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, "Failed to upload image", env.Notification.Message)
			assert.Empty(t, st.keys)
		})
	}
}

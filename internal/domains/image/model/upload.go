package model

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// State của một lần upload
type State string

const (
	StateIdle         State = "idle"
	StateFileSelected State = "file_selected"
	StateEncoding     State = "encoding"
	StateUploading    State = "uploading"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

var (
	ErrInvalidTransition = errors.New("invalid upload state transition")
	ErrNoFile            = errors.New("no file selected")
)

// File là một file được chọn (file picker hoặc drag-and-drop)
type File struct {
	Name string
	Data []byte
}

// UploadFunc gửi payload đã encode tới đường upload privileged và trả về public URL
type UploadFunc func(ctx context.Context, dataURL string) (string, error)

// Upload là state machine cho một lần upload:
// Idle → FileSelected → Encoding → Uploading → Succeeded | Failed.
// Không an toàn cho concurrent use; mỗi request dùng một instance.
type Upload struct {
	state   State
	file    *File
	encoded string
	url     string
	err     error
}

func NewUpload() *Upload {
	return &Upload{state: StateIdle}
}

func (u *Upload) State() State { return u.state }
func (u *Upload) URL() string  { return u.url }
func (u *Upload) Err() error   { return u.err }

// File trả về file đã chọn, nil nếu chưa chọn
func (u *Upload) File() *File { return u.file }

func (u *Upload) transition(from []State, to State) error {
	for _, s := range from {
		if u.state == s {
			u.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, u.state, to)
}

func (u *Upload) fail(err error) error {
	u.state = StateFailed
	u.err = err
	return err
}

// Select chỉ dùng file đầu tiên, các file còn lại bị bỏ qua
func (u *Upload) Select(files ...File) error {
	if len(files) == 0 || len(files[0].Data) == 0 {
		return ErrNoFile
	}
	if err := u.transition([]State{StateIdle}, StateFileSelected); err != nil {
		return err
	}
	first := files[0]
	u.file = &first
	return nil
}

// Encode chuyển file sang base64 data URL, hoàn toàn local
func (u *Upload) Encode() (string, error) {
	if err := u.transition([]State{StateFileSelected}, StateEncoding); err != nil {
		return "", err
	}
	u.encoded = EncodeDataURL(u.file.Data)
	return u.encoded, nil
}

// Send chạy upload; kết quả là Succeeded(url) hoặc Failed
func (u *Upload) Send(ctx context.Context, upload UploadFunc) (string, error) {
	if err := u.transition([]State{StateEncoding}, StateUploading); err != nil {
		return "", err
	}
	url, err := upload(ctx, u.encoded)
	if err != nil {
		return "", u.fail(err)
	}
	if url == "" {
		return "", u.fail(errors.New("upload returned an empty url"))
	}
	u.state = StateSucceeded
	u.url = url
	return url, nil
}

// Reset về Idle từ bất kỳ state nào
func (u *Upload) Reset() {
	*u = Upload{state: StateIdle}
}

// Run chạy toàn bộ chu trình cho các file được chọn
func (u *Upload) Run(ctx context.Context, files []File, upload UploadFunc) (string, error) {
	if err := u.Select(files...); err != nil {
		return "", u.fail(err)
	}
	if _, err := u.Encode(); err != nil {
		return "", u.fail(err)
	}
	return u.Send(ctx, upload)
}

// ==================== DATA URL ====================

// EncodeDataURL: data:<mime>;base64,<payload>, MIME được sniff từ nội dung
func EncodeDataURL(data []byte) string {
	mime := mimetype.Detect(data).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL tách MIME khai báo và payload đã decode.
// Chuỗi không có prefix "data:" được coi là base64 thuần.
func ParseDataURL(s string) (string, []byte, error) {
	s = strings.TrimSpace(s)
	mime := ""
	payload := s

	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return "", nil, errors.New("malformed data URL")
		}
		meta := s[len("data:"):comma]
		if !strings.HasSuffix(meta, ";base64") {
			return "", nil, errors.New("data URL is not base64 encoded")
		}
		mime = strings.TrimSuffix(meta, ";base64")
		payload = s[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return "", nil, errors.New("empty image payload")
	}
	return mime, data, nil
}

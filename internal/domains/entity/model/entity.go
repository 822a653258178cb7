package model

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind là tên bảng của một loại entity
type Kind string

const (
	KindWrestler     Kind = "wrestlers"
	KindPromotion    Kind = "promotions"
	KindFaction      Kind = "factions"
	KindChampionship Kind = "championships"
)

type kindInfo struct {
	label  string
	images bool
}

var kinds = map[Kind]kindInfo{
	KindWrestler:     {label: "wrestler", images: true},
	KindPromotion:    {label: "promotion", images: true},
	KindFaction:      {label: "faction", images: true},
	KindChampionship: {label: "championship", images: false},
}

// RelatedKinds là các kind được liên kết với wrestler qua bảng junction, theo thứ tự hiển thị
var RelatedKinds = []Kind{KindPromotion, KindFaction, KindChampionship}

// AllKinds liệt kê cả 4 bảng entity
var AllKinds = []Kind{KindWrestler, KindPromotion, KindFaction, KindChampionship}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", NewUnsupportedKind(s)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k Kind) Table() string {
	return string(k)
}

// Label là tên số ít dùng trong notification ("Failed to delete championship")
func (k Kind) Label() string {
	if info, ok := kinds[k]; ok {
		return info.label
	}
	return string(k)
}

// Title là label viết hoa cho notification thành công ("Championship deleted")
func (k Kind) Title() string {
	return cases.Title(language.English).String(k.Label())
}

// SupportsImage: championships không bao giờ có image_url
func (k Kind) SupportsImage() bool {
	return kinds[k].images
}

// IsRelated: kind có bảng junction với wrestlers
func (k Kind) IsRelated() bool {
	for _, r := range RelatedKinds {
		if r == k {
			return true
		}
	}
	return false
}

// ParseID đọc id từ path param
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewInvalidID(raw)
	}
	return id, nil
}

// ImageTables trả về các bảng có thể có cột image_url
func ImageTables() []string {
	out := make([]string, 0, len(AllKinds))
	for _, k := range AllKinds {
		if k.SupportsImage() {
			out = append(out, k.Table())
		}
	}
	return out
}

// Entity là record chung cho cả 4 bảng
type Entity struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	ImageURL  *string    `json:"image_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// EntityWithCount dùng cho list promotions/factions/championships
type EntityWithCount struct {
	Entity
	WrestlerCount int `json:"wrestler_count"`
}

// Fields là dữ liệu ghi xuống store.
// WithImage = false nghĩa là câu lệnh không được nhắc tới cột image_url.
type Fields struct {
	Name      string
	ImageURL  *string
	WithImage bool
}

// WithoutImage trả về bản sao không đụng tới cột image_url
func (f Fields) WithoutImage() Fields {
	return Fields{Name: f.Name}
}

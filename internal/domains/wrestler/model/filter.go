package model

import (
	entitymodel "wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/shared/listing"
)

// Filter của màn list wrestlers.
// OR trong một kind, AND giữa các kind; set rỗng nghĩa là không lọc theo kind đó.
type Filter struct {
	Query         string   `form:"search"`
	Promotions    []string `form:"promotion"`
	Factions      []string `form:"faction"`
	Championships []string `form:"championship"`
}

func (f Filter) labels(kind entitymodel.Kind) []string {
	switch kind {
	case entitymodel.KindPromotion:
		return f.Promotions
	case entitymodel.KindFaction:
		return f.Factions
	case entitymodel.KindChampionship:
		return f.Championships
	}
	return nil
}

func (f Filter) IsEmpty() bool {
	return f.Query == "" && len(f.Promotions) == 0 && len(f.Factions) == 0 && len(f.Championships) == 0
}

func (f Filter) Matches(w Wrestler) bool {
	if !listing.Matches(w.Name, f.Query) {
		return false
	}
	for _, kind := range entitymodel.RelatedKinds {
		selected := f.labels(kind)
		if len(selected) == 0 {
			continue
		}
		if !anyNameIn(w.Related(kind), selected) {
			return false
		}
	}
	return true
}

// Apply trả về slice mới, giữ nguyên thứ tự
func (f Filter) Apply(wrestlers []Wrestler) []Wrestler {
	out := make([]Wrestler, 0, len(wrestlers))
	for _, w := range wrestlers {
		if f.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}

func anyNameIn(entities []entitymodel.Entity, names []string) bool {
	for _, e := range entities {
		for _, n := range names {
			if e.Name == n {
				return true
			}
		}
	}
	return false
}

// Options là các label có thể chọn, lấy từ danh sách wrestler đang load
// (không từ bảng master: entity không có wrestler nào sẽ không xuất hiện).
type Options struct {
	Promotions    []string `json:"promotions"`
	Factions      []string `json:"factions"`
	Championships []string `json:"championships"`
}

// BuildOptions: unique names theo thứ tự xuất hiện đầu tiên
func BuildOptions(wrestlers []Wrestler) Options {
	collect := func(kind entitymodel.Kind) []string {
		seen := map[string]bool{}
		out := []string{}
		for _, w := range wrestlers {
			for _, e := range w.Related(kind) {
				if !seen[e.Name] {
					seen[e.Name] = true
					out = append(out, e.Name)
				}
			}
		}
		return out
	}

	return Options{
		Promotions:    collect(entitymodel.KindPromotion),
		Factions:      collect(entitymodel.KindFaction),
		Championships: collect(entitymodel.KindChampionship),
	}
}

// ListResult là response của GET /wrestlers
type ListResult struct {
	Wrestlers     []Wrestler `json:"wrestlers"`
	FilterOptions Options    `json:"filter_options"`
	Total         int        `json:"total"`
}

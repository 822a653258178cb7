// Package listing chứa search và sort thuần (không query lại store) cho các màn list.
package listing

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder của màn list promotions/factions/championships
type SortOrder string

const (
	SortByName  SortOrder = "name"
	SortByCount SortOrder = "count"
)

// ParseSortOrder: giá trị lạ hoặc rỗng → SortByName
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == SortByCount {
		return SortByCount
	}
	return SortByName
}

// Toggle chuyển qua lại giữa name và count
func (o SortOrder) Toggle() SortOrder {
	if o == SortByCount {
		return SortByName
	}
	return SortByCount
}

// Matches: substring, không phân biệt hoa thường; query rỗng match tất cả
func Matches(name, query string) bool {
	if query == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(name), fold.String(query))
}

// Search trả về slice mới chứa các item có name match query, giữ nguyên thứ tự
func Search[T any](items []T, query string, name func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(name(it), query) {
			out = append(out, it)
		}
	}
	return out
}

// SortByNameAsc sort tại chỗ theo collation (locale-aware), stable.
// Collator không an toàn cho concurrent use nên mỗi lần gọi tạo mới.
func SortByNameAsc[T any](items []T, name func(T) string) {
	c := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}

// SortByCountDesc sort tại chỗ theo count giảm dần, stable
func SortByCountDesc[T any](items []T, count func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return count(items[i]) > count(items[j])
	})
}

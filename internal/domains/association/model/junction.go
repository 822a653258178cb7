package model

import (
	entitymodel "wrestling-admin/internal/domains/entity/model"
)

// Junction mô tả bảng liên kết wrestler ↔ kind
type Junction struct {
	Kind   entitymodel.Kind
	Table  string
	Column string // cột id của phía không phải wrestler
}

var junctions = map[entitymodel.Kind]Junction{
	entitymodel.KindPromotion:    {Kind: entitymodel.KindPromotion, Table: "wrestler_promotions", Column: "promotion_id"},
	entitymodel.KindFaction:      {Kind: entitymodel.KindFaction, Table: "wrestler_factions", Column: "faction_id"},
	entitymodel.KindChampionship: {Kind: entitymodel.KindChampionship, Table: "wrestler_championships", Column: "championship_id"},
}

// JunctionFor trả về UNSUPPORTED_KIND cho wrestlers hoặc kind lạ
func JunctionFor(kind entitymodel.Kind) (Junction, error) {
	j, ok := junctions[kind]
	if !ok {
		return Junction{}, entitymodel.NewUnsupportedKind(string(kind))
	}
	return j, nil
}

// UniqueIDs bỏ id trùng và id <= 0, giữ thứ tự xuất hiện đầu tiên
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	entitymodel "wrestling-admin/internal/domains/entity/model"
)

func ent(id int64, name string) entitymodel.Entity {
	return entitymodel.Entity{ID: id, Name: name}
}

func roster() []Wrestler {
	hogan := NewWrestler(ent(1, "Hulk Hogan"))
	hogan.Promotions = []entitymodel.Entity{ent(10, "WWE"), ent(11, "WCW")}
	hogan.Factions = []entitymodel.Entity{ent(20, "nWo")}

	sting := NewWrestler(ent(2, "Sting"))
	sting.Promotions = []entitymodel.Entity{ent(11, "WCW"), ent(12, "AEW")}
	sting.Championships = []entitymodel.Entity{ent(30, "WCW World Heavyweight")}

	austin := NewWrestler(ent(3, "Stone Cold Steve Austin"))
	austin.Promotions = []entitymodel.Entity{ent(10, "WWE")}
	austin.Championships = []entitymodel.Entity{ent(31, "WWE Championship")}

	rookie := NewWrestler(ent(4, "Rookie"))

	return []Wrestler{hogan, sting, austin, rookie}
}

func ids(ws []Wrestler) []int64 {
	out := make([]int64, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"empty filter matches all", Filter{}, []int64{1, 2, 3, 4}},
		{"single promotion ignores other kinds", Filter{Promotions: []string{"WWE"}}, []int64{1, 3}},
		{"OR within a kind", Filter{Promotions: []string{"WWE", "AEW"}}, []int64{1, 2, 3}},
		{"AND across kinds", Filter{Promotions: []string{"WCW"}, Factions: []string{"nWo"}}, []int64{1}},
		{"search combined with filter", Filter{Query: "st", Promotions: []string{"WWE"}}, []int64{3}},
		{"search is case-insensitive", Filter{Query: "HOGAN"}, []int64{1}},
		{"unknown label matches nothing", Filter{Championships: []string{"IWGP"}}, []int64{}},
		{"championship filter", Filter{Championships: []string{"WWE Championship", "WCW World Heavyweight"}}, []int64{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(roster())))
		})
	}
}

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, Filter{Query: "x"}.IsEmpty())
	assert.False(t, Filter{Factions: []string{"nWo"}}.IsEmpty())
}

func TestBuildOptions_FirstSeenOrderAndUnique(t *testing.T) {
	opts := BuildOptions(roster())

	assert.Equal(t, []string{"WWE", "WCW", "AEW"}, opts.Promotions)
	assert.Equal(t, []string{"nWo"}, opts.Factions)
	assert.Equal(t, []string{"WCW World Heavyweight", "WWE Championship"}, opts.Championships)
}

func TestBuildOptions_Empty(t *testing.T) {
	opts := BuildOptions(nil)

	assert.Empty(t, opts.Promotions)
	assert.NotNil(t, opts.Promotions)
}

func TestSelection(t *testing.T) {
	sel := Selection{PromotionIDs: []int64{1}, ChampionshipIDs: []int64{3, 4}}

	assert.Equal(t, []int64{1}, sel.IDs(entitymodel.KindPromotion))
	assert.Nil(t, sel.IDs(entitymodel.KindFaction))
	assert.Equal(t, []int64{3, 4}, sel.IDs(entitymodel.KindChampionship))
	assert.False(t, sel.IsEmpty())
	assert.True(t, Selection{}.IsEmpty())
}

func TestSaveRequest_Validate(t *testing.T) {
	ok := SaveRequest{Selection: Selection{PromotionIDs: []int64{1, 2}}}
	assert.NoError(t, ok.Validate())

	bad := SaveRequest{Selection: Selection{FactionIDs: []int64{3, 0}}}
	assert.Error(t, bad.Validate())
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	entitymodel "wrestling-admin/internal/domains/entity/model"
)

// Wrestler là base row kèm ba tập quan hệ, được populate bằng join queries
type Wrestler struct {
	entitymodel.Entity
	Promotions    []entitymodel.Entity `json:"promotions"`
	Factions      []entitymodel.Entity `json:"factions"`
	Championships []entitymodel.Entity `json:"championships"`
}

// NewWrestler khởi tạo với các slice rỗng (JSON ra [] thay vì null)
func NewWrestler(e entitymodel.Entity) Wrestler {
	return Wrestler{
		Entity:        e,
		Promotions:    []entitymodel.Entity{},
		Factions:      []entitymodel.Entity{},
		Championships: []entitymodel.Entity{},
	}
}

// Related trả về tập quan hệ theo kind
func (w *Wrestler) Related(kind entitymodel.Kind) []entitymodel.Entity {
	switch kind {
	case entitymodel.KindPromotion:
		return w.Promotions
	case entitymodel.KindFaction:
		return w.Factions
	case entitymodel.KindChampionship:
		return w.Championships
	}
	return nil
}

func (w *Wrestler) SetRelated(kind entitymodel.Kind, list []entitymodel.Entity) {
	if list == nil {
		list = []entitymodel.Entity{}
	}
	switch kind {
	case entitymodel.KindPromotion:
		w.Promotions = list
	case entitymodel.KindFaction:
		w.Factions = list
	case entitymodel.KindChampionship:
		w.Championships = list
	}
}

// Selection là tập id được chọn trong form, một list cho mỗi kind
type Selection struct {
	PromotionIDs    []int64 `json:"promotion_ids"`
	FactionIDs      []int64 `json:"faction_ids"`
	ChampionshipIDs []int64 `json:"championship_ids"`
}

func (s Selection) IDs(kind entitymodel.Kind) []int64 {
	switch kind {
	case entitymodel.KindPromotion:
		return s.PromotionIDs
	case entitymodel.KindFaction:
		return s.FactionIDs
	case entitymodel.KindChampionship:
		return s.ChampionshipIDs
	}
	return nil
}

func (s Selection) IsEmpty() bool {
	return len(s.PromotionIDs) == 0 && len(s.FactionIDs) == 0 && len(s.ChampionshipIDs) == 0
}

// SaveRequest DTO cho create/update wrestler
type SaveRequest struct {
	entitymodel.SaveRequest
	Selection
}

var positiveID = validation.By(func(value interface{}) error {
	ids, _ := value.([]int64)
	for _, id := range ids {
		if id <= 0 {
			return validation.NewError("validation_invalid_id", "ids must be positive")
		}
	}
	return nil
})

// Validate chỉ kiểm tra selection; phần base row do entity store validate
func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r.Selection,
		validation.Field(&r.Selection.PromotionIDs, positiveID),
		validation.Field(&r.Selection.FactionIDs, positiveID),
		validation.Field(&r.Selection.ChampionshipIDs, positiveID),
	)
}

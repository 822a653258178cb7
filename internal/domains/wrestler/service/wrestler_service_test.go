package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assocservice "wrestling-admin/internal/domains/association/service"
	entitymodel "wrestling-admin/internal/domains/entity/model"
	entityservice "wrestling-admin/internal/domains/entity/service"
	"wrestling-admin/internal/domains/wrestler/model"
	"wrestling-admin/internal/shared/capability"
	"wrestling-admin/internal/testutil/memstore"
)

func setup() (*memstore.Store, ServiceInterface) {
	store := memstore.New()
	caps := capability.New(entitymodel.ImageTables(), false)
	return store, newService(store, caps)
}

func newService(store *memstore.Store, caps *capability.Set) ServiceInterface {
	assoc := assocservice.NewAssociationService(store, entityservice.NewReader(store, caps))
	entities := entityservice.NewEntityService(store, caps, assoc, nil)
	return NewWrestlerService(entities, assoc)
}

func names(list []entitymodel.Entity) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name
	}
	return out
}

func wrestlerNames(list []model.Wrestler) []string {
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = w.Name
	}
	return out
}

func saveRequest(name string, sel model.Selection) *model.SaveRequest {
	req := &model.SaveRequest{Selection: sel}
	req.Name = name
	return req
}

func TestCreate_WritesBaseRowAndRelations(t *testing.T) {
	ctx := context.Background()
	store, svc := setup()
	wwe := store.Seed(entitymodel.KindPromotion, "WWE")
	dx := store.Seed(entitymodel.KindFaction, "D-Generation X")
	ic := store.Seed(entitymodel.KindChampionship, "Intercontinental")

	w, err := svc.Create(ctx, saveRequest("  Shawn Michaels ", model.Selection{
		PromotionIDs:    []int64{wwe},
		FactionIDs:      []int64{dx},
		ChampionshipIDs: []int64{ic, ic},
	}))

	require.NoError(t, err)
	assert.Equal(t, "Shawn Michaels", w.Name)
	assert.Equal(t, []string{"WWE"}, names(w.Promotions))
	assert.Equal(t, []string{"D-Generation X"}, names(w.Factions))
	assert.Equal(t, []string{"Intercontinental"}, names(w.Championships))
	assert.Equal(t, []int64{ic}, store.JunctionRows(entitymodel.KindChampionship, w.ID))
}

func TestCreate_EmptySelectionSkipsJunctionWrites(t *testing.T) {
	store, svc := setup()

	w, err := svc.Create(context.Background(), saveRequest("Goldberg", model.Selection{}))

	require.NoError(t, err)
	assert.Empty(t, w.Promotions)
	assert.Zero(t, store.Calls("Replace"))
}

func TestCreate_ValidationHappensBeforeStore(t *testing.T) {
	tests := []struct {
		name string
		req  *model.SaveRequest
	}{
		{"blank name", saveRequest("   ", model.Selection{})},
		{"bad selection id", saveRequest("Kane", model.Selection{FactionIDs: []int64{-1}})},
		{"nil request", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc := setup()

			_, err := svc.Create(context.Background(), tt.req)

			assert.True(t, entitymodel.IsValidation(err), "got %v", err)
			assert.Zero(t, store.Calls("Create"))
		})
	}
}

func TestCreate_RelationFailureIsReported(t *testing.T) {
	store, svc := setup()
	wwe := store.Seed(entitymodel.KindPromotion, "WWE")
	store.FailOn("Replace", errors.New("connection reset"))

	_, err := svc.Create(context.Background(), saveRequest("Triple H", model.Selection{PromotionIDs: []int64{wwe}}))

	assert.True(t, entitymodel.IsStoreFailure(err))
}

func TestUpdate_ReplacesAllKinds(t *testing.T) {
	ctx := context.Background()
	store, svc := setup()
	w := store.Seed(entitymodel.KindWrestler, "Chris Jericho")
	wwe := store.Seed(entitymodel.KindPromotion, "WWE")
	aew := store.Seed(entitymodel.KindPromotion, "AEW")
	ic := store.Seed(entitymodel.KindFaction, "Inner Circle")
	store.Link(entitymodel.KindPromotion, w, wwe)
	store.Link(entitymodel.KindFaction, w, ic)

	got, err := svc.Update(ctx, w, saveRequest("Chris Jericho", model.Selection{PromotionIDs: []int64{aew, wwe}}))

	require.NoError(t, err)
	assert.Equal(t, []string{"AEW", "WWE"}, names(got.Promotions))
	assert.Empty(t, got.Factions, "an empty selection clears the kind")
	assert.Empty(t, store.JunctionRows(entitymodel.KindFaction, w))
	assert.NotNil(t, got.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	store, svc := setup()

	_, err := svc.Update(context.Background(), 999, saveRequest("Nobody", model.Selection{}))

	assert.True(t, entitymodel.IsNotFound(err))
	assert.Zero(t, store.Calls("Replace"))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	store, svc := setup()
	w := store.Seed(entitymodel.KindWrestler, "Sting")
	wcw := store.Seed(entitymodel.KindPromotion, "WCW")
	store.Link(entitymodel.KindPromotion, w, wcw)

	got, err := svc.Get(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, []string{"WCW"}, names(got.Promotions))

	_, err = svc.Get(ctx, 12345)
	assert.True(t, entitymodel.IsNotFound(err))
}

func TestList_FilterOptionsComeFromFullList(t *testing.T) {
	ctx := context.Background()
	store, svc := setup()
	hogan := store.Seed(entitymodel.KindWrestler, "Hulk Hogan")
	sting := store.Seed(entitymodel.KindWrestler, "Sting")
	store.Seed(entitymodel.KindWrestler, "Rookie")
	wwe := store.Seed(entitymodel.KindPromotion, "WWE")
	wcw := store.Seed(entitymodel.KindPromotion, "WCW")
	store.Seed(entitymodel.KindPromotion, "ROH")
	nwo := store.Seed(entitymodel.KindFaction, "nWo")
	store.Link(entitymodel.KindPromotion, hogan, wwe, wcw)
	store.Link(entitymodel.KindPromotion, sting, wcw)
	store.Link(entitymodel.KindFaction, hogan, nwo)

	res := svc.List(ctx, model.Filter{Factions: []string{"nWo"}})

	assert.Equal(t, []string{"Hulk Hogan"}, wrestlerNames(res.Wrestlers))
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"WCW", "WWE"}, res.FilterOptions.Promotions, "unused ROH is not an option")
	assert.Equal(t, []string{"nWo"}, res.FilterOptions.Factions)
}

func TestList_NoFilterReturnsEveryoneByName(t *testing.T) {
	store, svc := setup()
	store.Seed(entitymodel.KindWrestler, "Undertaker")
	store.Seed(entitymodel.KindWrestler, "Bret Hart")

	res := svc.List(context.Background(), model.Filter{})

	assert.Equal(t, []string{"Bret Hart", "Undertaker"}, wrestlerNames(res.Wrestlers))
	assert.NotNil(t, res.Wrestlers[0].Championships)
}

func TestList_LocaleAwareOrder(t *testing.T) {
	store, svc := setup()
	store.Seed(entitymodel.KindWrestler, "Bret Hart")
	store.Seed(entitymodel.KindWrestler, "Édouard Carpentier")
	store.Seed(entitymodel.KindWrestler, "adam Cole")

	res := svc.List(context.Background(), model.Filter{})

	assert.Equal(t, []string{"adam Cole", "Bret Hart", "Édouard Carpentier"}, wrestlerNames(res.Wrestlers))
}

func TestList_LoadsRelationsWhenImageColumnMissing(t *testing.T) {
	store := memstore.New()
	caps := capability.New(entitymodel.ImageTables(), false)
	store.UseCapabilities(caps)
	store.RejectImageColumn("promotions")
	svc := newService(store, caps)

	bret := store.Seed(entitymodel.KindWrestler, "Bret Hart")
	wcw := store.Seed(entitymodel.KindPromotion, "WCW")
	hf := store.Seed(entitymodel.KindFaction, "Hart Foundation")
	store.Link(entitymodel.KindPromotion, bret, wcw)
	store.Link(entitymodel.KindFaction, bret, hf)

	res := svc.List(context.Background(), model.Filter{})

	require.Len(t, res.Wrestlers, 1)
	assert.Equal(t, []string{"WCW"}, names(res.Wrestlers[0].Promotions))
	assert.Equal(t, []string{"Hart Foundation"}, names(res.Wrestlers[0].Factions))
	assert.False(t, caps.ImageColumn("promotions"))
	assert.True(t, caps.ImageColumn("factions"))
}

func TestUpdate_RenameKeepsImage(t *testing.T) {
	ctx := context.Background()
	_, svc := setup()
	req := saveRequest("Razor Ramon", model.Selection{})
	req.ImageURL = strPtr("https://cdn.example.com/razor.png")
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, saveRequest("Scott Hall", model.Selection{}))

	require.NoError(t, err)
	assert.Equal(t, "Scott Hall", got.Name)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://cdn.example.com/razor.png", *got.ImageURL)
}

func strPtr(s string) *string { return &s }

func TestList_StoreFailureYieldsEmptyList(t *testing.T) {
	store, svc := setup()
	w := store.Seed(entitymodel.KindWrestler, "Mankind")
	store.Link(entitymodel.KindFaction, w, store.Seed(entitymodel.KindFaction, "Corporation"))
	store.FailOn("RelatedIDsByWrestlers", errors.New("timeout"))

	res := svc.List(context.Background(), model.Filter{})

	assert.NotNil(t, res.Wrestlers)
	assert.Empty(t, res.Wrestlers)
	assert.Zero(t, res.Total)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, svc := setup()
	w := store.Seed(entitymodel.KindWrestler, "Big Show")

	require.NoError(t, svc.Delete(ctx, w))
	assert.True(t, entitymodel.IsNotFound(svc.Delete(ctx, w)))
}

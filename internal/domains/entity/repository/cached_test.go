package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/testutil/memstore"
)

func TestCachedRepository_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	store.Seed(model.KindPromotion, "WWE")
	c := memstore.NewCache()
	repo := NewCachedRepository(store, c, time.Minute)

	first, err := repo.List(ctx, model.KindPromotion)
	require.NoError(t, err)
	second, err := repo.List(ctx, model.KindPromotion)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.Equal(t, 1, store.Calls("List"))
	assert.True(t, c.Has("entity:promotions:list"))

	_, err = repo.Create(ctx, model.KindPromotion, model.Fields{Name: "AEW"})
	require.NoError(t, err)
	assert.False(t, c.Has("entity:promotions:list"))

	third, err := repo.List(ctx, model.KindPromotion)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, store.Calls("List"))
}

func TestCachedRepository_GetByIDInvalidatedOnUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	id := store.Seed(model.KindFaction, "DX")
	c := memstore.NewCache()
	repo := NewCachedRepository(store, c, time.Minute)

	_, err := repo.GetByID(ctx, model.KindFaction, id)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, model.KindFaction, id)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Calls("GetByID"))

	_, err = repo.Update(ctx, model.KindFaction, id, model.Fields{Name: "D-Generation X"}, time.Now())
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, model.KindFaction, id)
	require.NoError(t, err)
	assert.Equal(t, "D-Generation X", got.Name)
	assert.Equal(t, 2, store.Calls("GetByID"))

	ok, err := repo.Delete(ctx, model.KindFaction, id)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, model.KindFaction, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCachedRepository_MissingRowsAreNotCached(t *testing.T) {
	c := memstore.NewCache()
	repo := NewCachedRepository(memstore.New(), c, time.Minute)

	got, err := repo.GetByID(context.Background(), model.KindWrestler, 99)

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, c.Len())
}

func TestCachedRepository_CacheFailureFallsThrough(t *testing.T) {
	store := memstore.New()
	store.Seed(model.KindChampionship, "ROH World Championship")
	c := memstore.NewCache()
	c.Err = errors.New("redis down")
	repo := NewCachedRepository(store, c, time.Minute)

	list, err := repo.List(context.Background(), model.KindChampionship)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.Create(context.Background(), model.KindChampionship, model.Fields{Name: "TV Championship"})
	assert.NoError(t, err)
}

func TestKindPattern(t *testing.T) {
	assert.Equal(t, "entity:wrestlers:*", KindPattern(model.KindWrestler))
}

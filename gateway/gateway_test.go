package gateway

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMemoryListProductsNewestFirst(t *testing.T) {
	now := time.Now()
	g := NewMemory(
		models.Product{Name: "old", Slug: "old", CreatedAt: now.Add(-time.Hour)},
		models.Product{Name: "new", Slug: "new", CreatedAt: now},
	)

	products, err := g.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "new", products[0].Name)
	assert.Equal(t, "old", products[1].Name)
}

func TestMemoryProductLifecycle(t *testing.T) {
	ctx := context.Background()
	g := NewMemory()

	var events []models.ProductEvent
	unsubscribe, err := g.SubscribeProducts(ctx, func(ev models.ProductEvent) {
		events = append(events, ev)
	})
	require.NoError(t, err)
	defer unsubscribe()

	p, err := g.InsertProduct(ctx, models.Product{Name: "Robe", Slug: "robe", Price: 100})
	require.NoError(t, err)
	assert.False(t, p.Id.IsZero())
	assert.NotNil(t, p.ImageUrls)

	_, err = g.InsertProduct(ctx, models.Product{Name: "Robe", Slug: "robe"})
	assert.Equal(t, http.StatusConflict, errx.Status(err))

	updated, err := g.UpdateProduct(ctx, p.Id.Hex(), models.ProductPatch{Price: ptr(80.0)})
	require.NoError(t, err)
	assert.Equal(t, 80.0, updated.Price)
	assert.Equal(t, "Robe", updated.Name)

	_, err = g.UpdateProduct(ctx, p.Id.Hex(), models.ProductPatch{})
	assert.Equal(t, http.StatusBadRequest, errx.Status(err))

	deleted, err := g.DeleteProduct(ctx, p.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "robe", deleted.Slug)

	_, err = g.GetProduct(ctx, p.Id.Hex())
	assert.ErrorIs(t, err, errx.ErrNotFound)

	_, err = g.GetProduct(ctx, "not-an-id")
	assert.ErrorIs(t, err, errx.ErrNotFound)

	require.Len(t, events, 3)
	assert.Equal(t, models.ProductInserted, events[0].Kind)
	assert.Equal(t, models.ProductUpdated, events[1].Kind)
	assert.Equal(t, models.ProductDeleted, events[2].Kind)
	assert.Equal(t, p.Id.Hex(), events[2].ProductID)
}

func TestMemorySettingsUpsertNotifies(t *testing.T) {
	ctx := context.Background()
	g := NewMemory()

	var got []models.SettingsPatch
	unsubscribe, err := g.SubscribeSettings(ctx, func(p models.SettingsPatch) { got = append(got, p) })
	require.NoError(t, err)

	s, err := g.UpsertSettings(ctx, models.SettingsPatch{IsOpen: ptr(true), MapLat: ptr(33.5)})
	require.NoError(t, err)
	assert.True(t, s.IsOpen)
	assert.Zero(t, s.MapLat)
	assert.Equal(t, models.StoreSettingsID, s.Id)

	require.Len(t, got, 1)
	assert.Nil(t, got[0].MapLat)

	unsubscribe()
	_, err = g.UpsertSettings(ctx, models.SettingsPatch{IsOpen: ptr(false)})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestProductSetOnlyCarriesPresentFields(t *testing.T) {
	set := productSet(models.ProductPatch{Name: ptr("Chemise"), Quantity: ptr(0)})
	assert.Len(t, set, 2)
	assert.Equal(t, "Chemise", set["name"])
	assert.Equal(t, 0, set["quantity"])

	assert.Empty(t, productSet(models.ProductPatch{}))
}

func TestSettingsSetSkipsLocalOnlyFields(t *testing.T) {
	set := settingsSet(models.SettingsPatch{Phone: ptr("+212600"), MapLat: ptr(1.0), MapLng: ptr(2.0)})
	assert.Len(t, set, 1)
	assert.Equal(t, "+212600", set["phone"])
}

func TestProductEventKind(t *testing.T) {
	assert.Equal(t, models.ProductInserted, productEventKind("insert"))
	assert.Equal(t, models.ProductDeleted, productEventKind("delete"))
	assert.Equal(t, models.ProductUpdated, productEventKind("replace"))
}

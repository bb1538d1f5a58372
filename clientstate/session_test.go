package clientstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/princinho/boutique/catalog"
	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	out := map[string]Store{
		"Memory": NewMemoryStore(),
		"File":   fileStore,
	}
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		client, err := NewRedisClient(context.Background(), RedisConfig{URL: url, DialTimeout: time.Second})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		out["Redis"] = NewRedisStore(client, time.Minute)
	}
	return out
}

func TestOpenEmptySession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s, err := Open(context.Background(), store, NewSessionID(), i18n.French)
			require.NoError(t, err)

			assert.Empty(t, s.Cart)
			assert.NotNil(t, s.Cart)
			assert.Empty(t, s.Wishlist)
			assert.Equal(t, i18n.French, s.Lang)
			assert.Equal(t, models.StoreConfig{}, s.StoreConfig)
			assert.Zero(t, s.Grid)
		})
	}
}

func TestSessionRehydrates(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			id := NewSessionID()
			s, err := Open(ctx, store, id, i18n.French)
			require.NoError(t, err)

			lines := []models.CartLine{{ProductID: "p1", Size: "M", Color: "RED", Quantity: 2, StockLimit: 4, Price: 99.5}}
			require.NoError(t, s.SaveCart(ctx, lines))
			require.NoError(t, s.SaveWishlist(ctx, []models.WishlistEntry{{Product: models.Product{Name: "Dress"}}}))
			require.NoError(t, s.SetLang(ctx, i18n.English))
			require.NoError(t, s.SetStoreConfig(ctx, models.StoreConfig{Phone: "212600000000", MapLat: 1.5}))
			grid := catalog.Cursor{Visible: 48, Criteria: catalog.DefaultCriteria(), Synced: true}
			require.NoError(t, s.SaveGrid(ctx, grid))

			again, err := Open(ctx, store, id, i18n.French)
			require.NoError(t, err)

			assert.Equal(t, lines, again.Cart)
			require.Len(t, again.Wishlist, 1)
			assert.Equal(t, "Dress", again.Wishlist[0].Product.Name)
			assert.Equal(t, i18n.English, again.Lang)
			assert.Equal(t, "212600000000", again.StoreConfig.Phone)
			assert.Equal(t, grid, again.Grid)
		})
	}
}

func TestSetLangRejectsUnsupported(t *testing.T) {
	s, err := Open(context.Background(), NewMemoryStore(), NewSessionID(), i18n.English)
	require.NoError(t, err)

	assert.Error(t, s.SetLang(context.Background(), i18n.Lang("de")))
	assert.Equal(t, i18n.English, s.Lang)
}

func TestFileStoreRejectsPathLikeIDs(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var v any
	_, err = store.Get(context.Background(), "../../etc", KeyCart, &v)
	assert.Error(t, err)
	assert.Error(t, store.Put(context.Background(), "../x", KeyCart, 1))
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	id := NewSessionID()

	require.NoError(t, store.Put(context.Background(), id, KeyLang, "fr"))

	b, err := os.ReadFile(filepath.Join(dir, id, "lang.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `"fr"`, string(b))
}

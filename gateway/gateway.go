// Package gateway reads and writes the hosted rows: products and the store
// settings singleton, and pushes their changes to subscribers.
package gateway

import (
	"context"

	"github.com/princinho/boutique/models"
)

type Gateway interface {
	// ListProducts returns every product, newest first.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct returns errx.ErrNotFound (wrapped) when the id is unknown.
	GetProduct(ctx context.Context, id string) (models.Product, error)
	InsertProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) (models.Product, error)

	GetSettings(ctx context.Context) (models.StoreSettings, error)
	UpsertSettings(ctx context.Context, patch models.SettingsPatch) (models.StoreSettings, error)

	// SubscribeSettings calls onChange with the changed fields of every
	// settings update until unsubscribe is called or ctx is done.
	SubscribeSettings(ctx context.Context, onChange func(models.SettingsPatch)) (func(), error)
	SubscribeProducts(ctx context.Context, onChange func(models.ProductEvent)) (func(), error)
}

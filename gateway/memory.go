package gateway

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/models"
	"github.com/princinho/boutique/settings"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory is an in-process Gateway used by tests and local runs without a
// database. Subscribers are called synchronously on every write.
type Memory struct {
	mu               sync.Mutex
	products         map[bson.ObjectID]models.Product
	settings         models.StoreSettings
	settingsSubs     map[int]func(models.SettingsPatch)
	productSubs      map[int]func(models.ProductEvent)
	nextSub          int
	FailListProducts error
}

func NewMemory(products ...models.Product) *Memory {
	m := &Memory{
		products:     map[bson.ObjectID]models.Product{},
		settings:     models.StoreSettings{Id: models.StoreSettingsID},
		settingsSubs: map[int]func(models.SettingsPatch){},
		productSubs:  map[int]func(models.ProductEvent){},
	}
	for _, p := range products {
		if p.Id.IsZero() {
			p.Id = bson.NewObjectID()
		}
		m.products[p.Id] = p
	}
	return m
}

func (m *Memory) ListProducts(_ context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailListProducts != nil {
		return nil, m.FailListProducts
	}
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Id.Hex() > out[j].Id.Hex()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) GetProduct(_ context.Context, id string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.lookup(id)
	if !ok {
		return models.Product{}, errx.NotFound("product not found")
	}
	return p, nil
}

func (m *Memory) lookup(id string) (models.Product, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, false
	}
	p, ok := m.products[oid]
	return p, ok
}

func (m *Memory) InsertProduct(_ context.Context, p models.Product) (models.Product, error) {
	m.mu.Lock()
	for _, existing := range m.products {
		if existing.Slug == p.Slug {
			m.mu.Unlock()
			return models.Product{}, errx.New(nil, http.StatusConflict, errx.DuplicateKeyMessage)
		}
	}
	if p.Id.IsZero() {
		p.Id = bson.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.ImageUrls == nil {
		p.ImageUrls = []string{}
	}
	m.products[p.Id] = p
	m.mu.Unlock()

	m.emitProduct(models.ProductEvent{Kind: models.ProductInserted, ProductID: p.Id.Hex()})
	return p, nil
}

func (m *Memory) UpdateProduct(_ context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if patch.Empty() {
		return models.Product{}, errx.BadRequest("no updates provided")
	}
	m.mu.Lock()
	p, ok := m.lookup(id)
	if !ok {
		m.mu.Unlock()
		return models.Product{}, errx.NotFound("product not found")
	}
	p = applyProductPatch(p, patch)
	m.products[p.Id] = p
	m.mu.Unlock()

	m.emitProduct(models.ProductEvent{Kind: models.ProductUpdated, ProductID: id})
	return p, nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) (models.Product, error) {
	m.mu.Lock()
	p, ok := m.lookup(id)
	if !ok {
		m.mu.Unlock()
		return models.Product{}, errx.NotFound("product not found")
	}
	delete(m.products, p.Id)
	m.mu.Unlock()

	m.emitProduct(models.ProductEvent{Kind: models.ProductDeleted, ProductID: id})
	return p, nil
}

func (m *Memory) GetSettings(_ context.Context) (models.StoreSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *Memory) UpsertSettings(_ context.Context, patch models.SettingsPatch) (models.StoreSettings, error) {
	patch.MapLat, patch.MapLng = nil, nil

	m.mu.Lock()
	m.settings = settings.Apply(m.settings, patch)
	m.settings.UpdatedAt = time.Now().UTC()
	s := m.settings
	subs := make([]func(models.SettingsPatch), 0, len(m.settingsSubs))
	for _, fn := range m.settingsSubs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(patch)
	}
	return s, nil
}

func (m *Memory) SubscribeSettings(_ context.Context, onChange func(models.SettingsPatch)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.settingsSubs[id] = onChange
	return func() {
		m.mu.Lock()
		delete(m.settingsSubs, id)
		m.mu.Unlock()
	}, nil
}

func (m *Memory) SubscribeProducts(_ context.Context, onChange func(models.ProductEvent)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.productSubs[id] = onChange
	return func() {
		m.mu.Lock()
		delete(m.productSubs, id)
		m.mu.Unlock()
	}, nil
}

func (m *Memory) emitProduct(ev models.ProductEvent) {
	m.mu.Lock()
	subs := make([]func(models.ProductEvent), 0, len(m.productSubs))
	for _, fn := range m.productSubs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func applyProductPatch(p models.Product, patch models.ProductPatch) models.Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Sizes != nil {
		p.Sizes = *patch.Sizes
	}
	if patch.Colors != nil {
		p.Colors = *patch.Colors
	}
	if patch.ImageUrls != nil {
		p.ImageUrls = append([]string(nil), (*patch.ImageUrls)...)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	return p
}

package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/princinho/boutique/database"
	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Mongo struct {
	products *mongo.Collection
	settings *mongo.Collection
}

func NewMongo(db *database.DB) *Mongo {
	return &Mongo{
		products: db.Collection(database.ProductsCollection),
		settings: db.Collection(database.SettingsCollection),
	}
}

func (m *Mongo) ListProducts(ctx context.Context) ([]models.Product, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.products.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, errx.WrapMongo(err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errx.WrapMongo(err)
	}
	return products, nil
}

func (m *Mongo) GetProduct(ctx context.Context, id string) (models.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, errx.NotFound("product not found")
	}
	var p models.Product
	if err := m.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return models.Product{}, errx.WrapMongo(err)
	}
	return p, nil
}

func (m *Mongo) InsertProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.ImageUrls == nil {
		p.ImageUrls = []string{}
	}
	res, err := m.products.InsertOne(ctx, p)
	if err != nil {
		return models.Product{}, errx.WrapMongo(err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		p.Id = oid
	}
	return p, nil
}

func (m *Mongo) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, errx.NotFound("product not found")
	}
	set := productSet(patch)
	if len(set) == 0 {
		return models.Product{}, errx.BadRequest("no updates provided")
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	err = m.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		return models.Product{}, errx.WrapMongo(err)
	}
	return p, nil
}

func (m *Mongo) DeleteProduct(ctx context.Context, id string) (models.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, errx.NotFound("product not found")
	}
	var p models.Product
	if err := m.products.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return models.Product{}, errx.WrapMongo(err)
	}
	return p, nil
}

func (m *Mongo) GetSettings(ctx context.Context) (models.StoreSettings, error) {
	var s models.StoreSettings
	err := m.settings.FindOne(ctx, bson.M{"_id": models.StoreSettingsID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StoreSettings{Id: models.StoreSettingsID}, nil
	}
	if err != nil {
		return models.StoreSettings{}, errx.WrapMongo(err)
	}
	return s, nil
}

func (m *Mongo) UpsertSettings(ctx context.Context, patch models.SettingsPatch) (models.StoreSettings, error) {
	set := settingsSet(patch)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var s models.StoreSettings
	err := m.settings.FindOneAndUpdate(ctx, bson.M{"_id": models.StoreSettingsID}, bson.M{"$set": set}, opts).Decode(&s)
	if err != nil {
		return models.StoreSettings{}, errx.WrapMongo(err)
	}
	return s, nil
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID bson.RawValue `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.Raw `bson:"fullDocument"`
}

func (m *Mongo) SubscribeSettings(ctx context.Context, onChange func(models.SettingsPatch)) (func(), error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"documentKey._id": models.StoreSettingsID,
			"operationType":   bson.M{"$in": bson.A{"insert", "update", "replace"}},
		}}},
	}
	return m.watch(ctx, m.settings, pipeline, func(ev changeEvent) {
		if ev.FullDocument == nil {
			return
		}
		var patch models.SettingsPatch
		if err := bson.Unmarshal(ev.FullDocument, &patch); err != nil {
			logx.Error().Err(err).Msg("decode settings change")
			return
		}
		onChange(patch)
	})
}

func (m *Mongo) SubscribeProducts(ctx context.Context, onChange func(models.ProductEvent)) (func(), error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
		}}},
	}
	return m.watch(ctx, m.products, pipeline, func(ev changeEvent) {
		pe := models.ProductEvent{Kind: productEventKind(ev.OperationType)}
		if oid, ok := ev.DocumentKey.ID.ObjectIDOK(); ok {
			pe.ProductID = oid.Hex()
		}
		onChange(pe)
	})
}

// watch runs a change stream until the returned cancel is called. A stream
// that fails after start is logged and ends; callers resubscribe on restart.
func (m *Mongo) watch(ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline, handle func(changeEvent)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := col.Watch(ctx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch %s: %w", col.Name(), err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			var ev changeEvent
			if err := stream.Decode(&ev); err != nil {
				logx.Error().Err(err).Str("collection", col.Name()).Msg("decode change event")
				continue
			}
			handle(ev)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logx.Error().Err(err).Str("collection", col.Name()).Msg("change stream stopped")
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}, nil
}

func productEventKind(op string) models.ProductEventKind {
	switch op {
	case "insert":
		return models.ProductInserted
	case "delete":
		return models.ProductDeleted
	default:
		return models.ProductUpdated
	}
}

func productSet(p models.ProductPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Slug != nil {
		set["slug"] = *p.Slug
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Sizes != nil {
		set["sizes"] = *p.Sizes
	}
	if p.Colors != nil {
		set["colors"] = *p.Colors
	}
	if p.ImageUrls != nil {
		set["imageUrls"] = *p.ImageUrls
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	return set
}

// settingsSet skips the local-only map coordinates.
func settingsSet(p models.SettingsPatch) bson.M {
	set := bson.M{}
	if p.IsOpen != nil {
		set["isOpen"] = *p.IsOpen
	}
	if p.NoticeText != nil {
		set["noticeText"] = *p.NoticeText
	}
	if p.NoticeVisible != nil {
		set["noticeVisible"] = *p.NoticeVisible
	}
	if p.OwnerName != nil {
		set["ownerName"] = *p.OwnerName
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Instagram != nil {
		set["instagram"] = *p.Instagram
	}
	if p.Facebook != nil {
		set["facebook"] = *p.Facebook
	}
	if p.TikTok != nil {
		set["tiktok"] = *p.TikTok
	}
	return set
}

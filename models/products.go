package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Category string

const (
	CategoryAll         Category = "All"
	CategoryMen         Category = "Men"
	CategoryWomen       Category = "Women"
	CategoryKids        Category = "Kids"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
)

var Categories = []Category{
	CategoryMen,
	CategoryWomen,
	CategoryKids,
	CategoryShoes,
	CategoryAccessories,
}

// Valid reports whether c is one of the sellable categories. "All" is a
// filter sentinel, not a product category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Slug        string        `bson:"slug" json:"slug"`
	Price       float64       `bson:"price" json:"price"`
	Quantity    int           `bson:"quantity" json:"quantity"`
	Category    Category      `bson:"category" json:"category"`
	Sizes       string        `bson:"sizes" json:"sizes"`
	Colors      string        `bson:"colors" json:"colors"`
	ImageUrls   []string      `bson:"imageUrls" json:"imageUrls"`
	Description string        `bson:"description" json:"description"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Slug        *string
	Price       *float64
	Quantity    *int
	Category    *Category
	Sizes       *string
	Colors      *string
	ImageUrls   *[]string
	Description *string
}

// Empty reports whether the patch sets nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.Price == nil && p.Quantity == nil &&
		p.Category == nil && p.Sizes == nil && p.Colors == nil && p.ImageUrls == nil &&
		p.Description == nil
}

type ProductEventKind string

const (
	ProductInserted ProductEventKind = "insert"
	ProductUpdated  ProductEventKind = "update"
	ProductDeleted  ProductEventKind = "delete"
)

// ProductEvent is a row change pushed by the realtime feed.
type ProductEvent struct {
	Kind      ProductEventKind `json:"kind"`
	ProductID string           `json:"productId"`
}

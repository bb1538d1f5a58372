package dto

import (
	"github.com/princinho/boutique/catalog"
	"github.com/princinho/boutique/models"
)

type AddCartItemDTO struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemDTO struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Delta     int    `json:"delta" binding:"required"`
}

type RemoveCartItemDTO struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type ToggleWishlistDTO struct {
	ProductID string `json:"productId" binding:"required"`
}

type LangDTO struct {
	Lang string `json:"lang" binding:"required"`
}

type StoreConfigDTO struct {
	Phone    string `json:"phone"`
	MapLat   Number `json:"mapLat"`
	MapLng   Number `json:"mapLng"`
	Currency string `json:"currency"`
}

func (d StoreConfigDTO) StoreConfig() models.StoreConfig {
	return models.StoreConfig{
		Phone:    d.Phone,
		MapLat:   d.MapLat.Float(),
		MapLng:   d.MapLng.Float(),
		Currency: d.Currency,
	}
}

func (d RemoveCartItemDTO) Key() models.CartKey {
	return models.CartKey{ProductID: d.ProductID, Size: catalog.Token(d.Size), Color: catalog.Token(d.Color)}
}

func (d UpdateCartItemDTO) Key() models.CartKey {
	return models.CartKey{ProductID: d.ProductID, Size: catalog.Token(d.Size), Color: catalog.Token(d.Color)}
}

package dto

import (
	"strings"

	"github.com/princinho/boutique/models"
)

type CreateProductDTO struct {
	Name        string `json:"name"`
	Price       Number `json:"price"`
	Quantity    Number `json:"quantity"`
	Category    string `json:"category"`
	Sizes       string `json:"sizes"`
	Colors      string `json:"colors"`
	Description string `json:"description"`
}

type UpdateProductDTO struct {
	Name              *string  `json:"name,omitempty"`
	Price             *Number  `json:"price,omitempty"`
	Quantity          *Number  `json:"quantity,omitempty"`
	Slug              *string  `json:"slug,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Sizes             *string  `json:"sizes,omitempty"`
	Colors            *string  `json:"colors,omitempty"`
	Description       *string  `json:"description,omitempty"`
	RemovedImagesUrls []string `json:"removedImagesUrls,omitempty"`
}

func (d CreateProductDTO) Product(slug string, imageUrls []string) models.Product {
	return models.Product{
		Name:        strings.TrimSpace(d.Name),
		Slug:        slug,
		Price:       d.Price.Float(),
		Quantity:    d.Quantity.Int(),
		Category:    models.Category(strings.TrimSpace(d.Category)),
		Sizes:       d.Sizes,
		Colors:      d.Colors,
		ImageUrls:   imageUrls,
		Description: d.Description,
	}
}

// Patch converts the DTO into a product patch; images are merged by the caller.
func (d UpdateProductDTO) Patch() models.ProductPatch {
	var p models.ProductPatch
	if d.Name != nil {
		name := strings.TrimSpace(*d.Name)
		p.Name = &name
	}
	if d.Price != nil {
		price := d.Price.Float()
		p.Price = &price
	}
	if d.Quantity != nil {
		qty := d.Quantity.Int()
		p.Quantity = &qty
	}
	if d.Slug != nil {
		p.Slug = d.Slug
	}
	if d.Category != nil {
		cat := models.Category(strings.TrimSpace(*d.Category))
		p.Category = &cat
	}
	p.Sizes = d.Sizes
	p.Colors = d.Colors
	p.Description = d.Description
	return p
}

package catalog

import (
	"testing"

	"github.com/princinho/boutique/models"
	"github.com/stretchr/testify/assert"
)

func TestDistinctSizesAndColors(t *testing.T) {
	ps := testProducts()

	assert.Equal(t, []string{"6Y", "8Y", "All", "L", "M", "S", "XL", "XS"}, DistinctSizes(ps))
	assert.Equal(t, []string{"All", "BLUE", "BROWN", "GREY", "RED", "WHITE"}, DistinctColors(ps))
}

func TestDistinctOfEmptyCatalogue(t *testing.T) {
	assert.Equal(t, []string{All}, DistinctSizes(nil))
}

func TestBuildFacets(t *testing.T) {
	ps := append(testProducts(), models.Product{Name: "Cap", Price: 90, Category: "Hats"})

	f := BuildFacets(ps)

	assert.Equal(t, []string{"All", "Men", "Women", "Kids", "Accessories", "Hats"}, f.Categories)
	assert.Equal(t, PriceRange{Min: 90, Max: 12000}, f.PriceRange)
}

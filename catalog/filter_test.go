package catalog

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/princinho/boutique/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []models.Product {
	return []models.Product{
		{Name: "Linen Shirt", Price: 350, Category: models.CategoryMen, Sizes: "s, m,L", Colors: "white,Blue"},
		{Name: "Summer Dress", Price: 520, Category: models.CategoryWomen, Sizes: "XS,S,M", Colors: "red, white"},
		{Name: "Kids Hoodie", Price: 180, Category: models.CategoryKids, Sizes: "6Y,8Y", Colors: "grey"},
		{Name: "Leather Belt", Price: 12000, Category: models.CategoryAccessories, Sizes: "", Colors: "Brown"},
		{Name: "Denim SHIRT", Price: 410, Category: models.CategoryMen, Sizes: "M,XL", Colors: "blue"},
	}
}

func names(ps []models.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterDefaultCriteria(t *testing.T) {
	in := testProducts()
	in[3].Price = 9000

	got := Filter(in, DefaultCriteria())

	assert.Equal(t, in, got)
}

func TestFilterCategory(t *testing.T) {
	c := DefaultCriteria()
	c.Category = string(models.CategoryMen)

	got := Filter(testProducts(), c)

	assert.Equal(t, []string{"Linen Shirt", "Denim SHIRT"}, names(got))
}

func TestFilterPriceCeiling(t *testing.T) {
	c := DefaultCriteria()
	c.MaxPrice = 350

	got := Filter(testProducts(), c)

	assert.Equal(t, []string{"Linen Shirt", "Kids Hoodie"}, names(got))

	t.Run("ClampedToMaximum", func(t *testing.T) {
		c := DefaultCriteria()
		c.MaxPrice = 50000
		got := Filter(testProducts(), c)
		assert.NotContains(t, names(got), "Leather Belt")
	})

	t.Run("NegativeClampedToZero", func(t *testing.T) {
		c := DefaultCriteria()
		c.MaxPrice = -1
		assert.Empty(t, Filter(testProducts(), c))
	})

	t.Run("NaNClampedToZero", func(t *testing.T) {
		c := DefaultCriteria()
		c.MaxPrice = math.NaN()
		assert.Zero(t, c.Normalize().MaxPrice)
		assert.Empty(t, Filter(testProducts(), c))
	})
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	for _, search := range []string{"shirt", "SHIRT", "Shi", "hirt"} {
		t.Run(search, func(t *testing.T) {
			c := DefaultCriteria()
			c.Search = search

			got := Filter(testProducts(), c)

			assert.Equal(t, []string{"Linen Shirt", "Denim SHIRT"}, names(got))
		})
	}

	c := DefaultCriteria()
	c.Search = "zzz"
	assert.Empty(t, Filter(testProducts(), c))
}

func TestFilterSearchKeepsWhitespace(t *testing.T) {
	c := DefaultCriteria()
	c.Search = "   "
	assert.Empty(t, Filter(testProducts(), c), "blank search is still a substring test")

	c.Search = " "
	assert.Len(t, Filter(testProducts(), c), 4)

	c.Search = " shirt"
	assert.Equal(t, []string{"Linen Shirt", "Denim SHIRT"}, names(Filter(testProducts(), c)))
}

func TestFilterSearchProperty(t *testing.T) {
	products := testProducts()
	for _, search := range []string{"e", "hoodie", "DRESS", "t", "x"} {
		c := DefaultCriteria()
		c.MaxPrice = MaxPrice
		c.Search = search
		for _, p := range Filter(products, c) {
			assert.Containsf(t, strings.ToLower(p.Name), strings.ToLower(search), "product %q", p.Name)
		}
	}
}

func TestFilterSizeAndColorTokens(t *testing.T) {
	c := DefaultCriteria()
	c.Size = "m"

	got := Filter(testProducts(), c)
	assert.Equal(t, []string{"Linen Shirt", "Summer Dress", "Denim SHIRT"}, names(got))

	c.Color = "WHITE"
	got = Filter(testProducts(), c)
	assert.Equal(t, []string{"Linen Shirt", "Summer Dress"}, names(got))

	t.Run("NoPartialTokenMatch", func(t *testing.T) {
		c := DefaultCriteria()
		c.Size = "X"
		assert.Empty(t, Filter(testProducts(), c))
	})
}

func TestFilterEmptyDimensionsMeanAll(t *testing.T) {
	got := Filter(testProducts(), Criteria{MaxPrice: MaxPrice})
	assert.Len(t, got, 4)
}

func TestParseTokens(t *testing.T) {
	assert.Equal(t, []string{"S", "M", "L"}, ParseTokens(" s, m ,l"))
	assert.Equal(t, []string{"XL"}, ParseTokens(",, xl ,"))
	assert.Empty(t, ParseTokens(""))
}

func TestSortByRecency(t *testing.T) {
	now := time.Now()
	ps := []models.Product{
		{Name: "old", CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "new", CreatedAt: now},
		{Name: "mid", CreatedAt: now.Add(-time.Hour)},
	}

	SortByRecency(ps)

	require.Len(t, ps, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, names(ps))
}

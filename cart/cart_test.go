package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memSaver struct {
	saved [][]models.CartLine
	err   error
}

func (m *memSaver) SaveCart(_ context.Context, lines []models.CartLine) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, lines)
	return nil
}

func product(price float64, stock int) models.Product {
	return models.Product{
		Id:        bson.NewObjectID(),
		Name:      "Linen Shirt",
		Price:     price,
		Quantity:  stock,
		ImageUrls: []string{"https://img.example/1.jpg", "https://img.example/2.jpg"},
	}
}

func newCart(saver *memSaver, toasts *Toasts) *Cart {
	return New(nil, Options{Saver: saver, Notifier: toasts, Lang: i18n.English})
}

func TestAddSameVariantTwice(t *testing.T) {
	ctx := context.Background()
	saver := &memSaver{}
	c := newCart(saver, &Toasts{})
	p := product(150, 5)

	_, err := c.Add(ctx, p, "M", "BLUE")
	require.NoError(t, err)
	_, err = c.Add(ctx, p, "M", "BLUE")
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 5, lines[0].StockLimit)
	assert.Equal(t, "https://img.example/1.jpg", lines[0].Image)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(300)))
	assert.Len(t, saver.saved, 2)
}

func TestAddDifferentVariantsAreDistinctLines(t *testing.T) {
	ctx := context.Background()
	c := newCart(&memSaver{}, &Toasts{})
	p := product(100, 5)

	_, _ = c.Add(ctx, p, "M", "BLUE")
	_, _ = c.Add(ctx, p, "L", "BLUE")
	_, _ = c.Add(ctx, p, "M", "RED")

	assert.Len(t, c.Lines(), 3)
	assert.Equal(t, 3, c.Count())
}

func TestAddBeyondStockScenario(t *testing.T) {
	ctx := context.Background()
	saver := &memSaver{}
	toasts := &Toasts{}
	c := newCart(saver, toasts)
	p := product(200, 2)

	out, err := c.Add(ctx, p, "", "")
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	out, err = c.Add(ctx, p, "", "")
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	out, err = c.Add(ctx, p, "", "")
	require.NoError(t, err)
	assert.False(t, out.OK)
	require.NotNil(t, out.Notification)
	assert.Equal(t, Error, out.Notification.Type)
	assert.Equal(t, "cart.max_stock", out.Notification.Key)
	assert.Equal(t, 2, c.Lines()[0].Quantity)
	assert.Len(t, saver.saved, 2, "a rejected add persists nothing")

	require.Len(t, *toasts, 3)
	assert.Equal(t, Success, (*toasts)[0].Type)
	assert.Equal(t, "Added to cart", (*toasts)[0].Message)
	assert.Equal(t, Error, (*toasts)[2].Type)
}

func TestAddUsesCapturedStockLimit(t *testing.T) {
	ctx := context.Background()
	c := newCart(&memSaver{}, &Toasts{})
	p := product(10, 1)

	_, _ = c.Add(ctx, p, "S", "RED")
	p.Quantity = 10
	out, err := c.Add(ctx, p, "S", "RED")

	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestAddCoercesNegativeStock(t *testing.T) {
	c := newCart(&memSaver{}, &Toasts{})
	_, err := c.Add(context.Background(), product(10, -3), "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Lines()[0].StockLimit)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	p := product(100, 3)
	key := models.CartKey{ProductID: p.Id.Hex(), Size: "M", Color: "BLUE"}

	t.Run("DecrementToZeroRemoves", func(t *testing.T) {
		c := newCart(&memSaver{}, &Toasts{})
		_, _ = c.Add(ctx, p, "M", "BLUE")

		out, err := c.UpdateQuantity(ctx, key, -1)

		require.NoError(t, err)
		assert.True(t, out.OK)
		assert.Empty(t, c.Lines())
	})

	t.Run("IncrementWithinLimit", func(t *testing.T) {
		c := newCart(&memSaver{}, &Toasts{})
		_, _ = c.Add(ctx, p, "M", "BLUE")

		out, err := c.UpdateQuantity(ctx, key, 2)

		require.NoError(t, err)
		assert.True(t, out.OK)
		assert.Equal(t, 3, c.Lines()[0].Quantity)
	})

	t.Run("IncrementPastLimitRejected", func(t *testing.T) {
		toasts := &Toasts{}
		c := newCart(&memSaver{}, toasts)
		_, _ = c.Add(ctx, p, "M", "BLUE")

		out, err := c.UpdateQuantity(ctx, key, 3)

		require.NoError(t, err)
		assert.False(t, out.OK)
		assert.Equal(t, "cart.max_stock_limit", out.Notification.Key)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})

	t.Run("LargeDecrementRemoves", func(t *testing.T) {
		c := newCart(&memSaver{}, &Toasts{})
		_, _ = c.Add(ctx, p, "M", "BLUE")
		_, _ = c.Add(ctx, p, "M", "BLUE")

		_, err := c.UpdateQuantity(ctx, key, -5)

		require.NoError(t, err)
		assert.Empty(t, c.Lines())
	})

	t.Run("UnknownLineIsNoop", func(t *testing.T) {
		saver := &memSaver{}
		c := newCart(saver, &Toasts{})

		out, err := c.UpdateQuantity(ctx, key, 1)

		require.NoError(t, err)
		assert.False(t, out.OK)
		assert.Empty(t, saver.saved)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	saver := &memSaver{}
	toasts := &Toasts{}
	c := newCart(saver, toasts)
	a, b := product(10, 5), product(20, 5)
	_, _ = c.Add(ctx, a, "M", "RED")
	_, _ = c.Add(ctx, b, "M", "RED")

	require.NoError(t, c.Remove(ctx, models.CartKey{ProductID: a.Id.Hex(), Size: "M", Color: "RED"}))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, b.Id.Hex(), lines[0].ProductID)
	assert.Equal(t, "cart.removed", (*toasts)[len(*toasts)-1].Key)
	assert.Len(t, saver.saved, 3)

	require.NoError(t, c.Remove(ctx, models.CartKey{ProductID: "missing"}))
	assert.Len(t, saver.saved, 3)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	saver := &memSaver{}
	c := newCart(saver, &Toasts{})
	_, _ = c.Add(ctx, product(10, 5), "M", "RED")

	require.NoError(t, c.Clear(ctx))

	assert.Empty(t, c.Lines())
	assert.Zero(t, c.Count())
	require.Len(t, saver.saved, 2)
	assert.Empty(t, saver.saved[1])
}

func TestTotals(t *testing.T) {
	assert.Equal(t, 5, Count([]models.CartLine{{Quantity: 2}, {Quantity: 3}}))

	total := Total([]models.CartLine{{Price: 100, Quantity: 2}, {Price: 50, Quantity: 1}})
	assert.True(t, total.Equal(decimal.NewFromInt(250)), "got %s", total)

	fractional := Total([]models.CartLine{{Price: 0.1, Quantity: 3}})
	assert.Equal(t, "0.3", fractional.String())
}

func TestSaveErrorIsReturned(t *testing.T) {
	c := newCart(&memSaver{err: errors.New("disk full")}, &Toasts{})

	_, err := c.Add(context.Background(), product(10, 5), "", "")

	assert.ErrorContains(t, err, "disk full")
}

func TestNewDropsEmptyLines(t *testing.T) {
	c := New([]models.CartLine{{ProductID: "a", Quantity: 0}, {ProductID: "b", Quantity: 1}}, Options{})
	assert.Len(t, c.Lines(), 1)
}

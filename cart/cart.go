// Package cart reconciles cart lines against the stock captured when each line
// was first added, and keeps the wishlist.
package cart

import (
	"context"
	"fmt"

	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/models"
	"github.com/shopspring/decimal"
)

// Saver flushes the whole cart after every committed mutation.
type Saver interface {
	SaveCart(ctx context.Context, lines []models.CartLine) error
}

type Options struct {
	Saver    Saver
	Notifier Notifier
	Lang     i18n.Lang
}

type Cart struct {
	lines    []models.CartLine
	saver    Saver
	notifier Notifier
	lang     i18n.Lang
}

func New(lines []models.CartLine, opts Options) *Cart {
	c := &Cart{
		lines:    make([]models.CartLine, 0, len(lines)),
		saver:    opts.Saver,
		notifier: opts.Notifier,
		lang:     opts.Lang,
	}
	for _, l := range lines {
		if l.Quantity > 0 {
			c.lines = append(c.lines, l)
		}
	}
	if c.notifier == nil {
		c.notifier = discard{}
	}
	if c.lang == "" {
		c.lang = i18n.English
	}
	return c
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) index(key models.CartKey) int {
	for i, l := range c.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

// stockOf coerces the product stock count; anything below zero counts as none.
func stockOf(p models.Product) int {
	if p.Quantity < 0 {
		return 0
	}
	return p.Quantity
}

func firstImage(p models.Product) string {
	if len(p.ImageUrls) == 0 {
		return ""
	}
	return p.ImageUrls[0]
}

// Add puts one unit of (product, size, color) in the cart. An existing line is
// incremented unless that would exceed its captured stock limit.
func (c *Cart) Add(ctx context.Context, p models.Product, size, color string) (Outcome, error) {
	key := models.CartKey{ProductID: p.Id.Hex(), Size: size, Color: color}

	if i := c.index(key); i >= 0 {
		if c.lines[i].Quantity+1 > c.lines[i].StockLimit {
			return c.reject("cart.max_stock"), nil
		}
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, models.CartLine{
			ProductID:  key.ProductID,
			Name:       p.Name,
			Price:      p.Price,
			Image:      firstImage(p),
			Size:       size,
			Color:      color,
			Quantity:   1,
			StockLimit: stockOf(p),
		})
	}

	if err := c.save(ctx); err != nil {
		return Outcome{}, err
	}
	return c.accept("cart.added"), nil
}

// UpdateQuantity applies delta to the line for key. Increments past the
// captured stock limit are rejected; a result of zero or less removes the line.
func (c *Cart) UpdateQuantity(ctx context.Context, key models.CartKey, delta int) (Outcome, error) {
	i := c.index(key)
	if i < 0 {
		return Outcome{}, nil
	}

	next := c.lines[i].Quantity + delta
	if delta > 0 && next > c.lines[i].StockLimit {
		return c.reject("cart.max_stock_limit"), nil
	}

	if next <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].Quantity = next
	}

	if err := c.save(ctx); err != nil {
		return Outcome{}, err
	}
	return Outcome{OK: true}, nil
}

// Remove deletes the line for key, if any.
func (c *Cart) Remove(ctx context.Context, key models.CartKey) error {
	i := c.index(key)
	if i < 0 {
		return nil
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	if err := c.save(ctx); err != nil {
		return err
	}
	c.notifier.Notify(notification(c.lang, Info, "cart.removed"))
	return nil
}

// Clear empties the cart and flushes the empty document.
func (c *Cart) Clear(ctx context.Context) error {
	c.lines = c.lines[:0]
	return c.save(ctx)
}

// Total is the sum of unit price times quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	return Total(c.lines)
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int {
	return Count(c.lines)
}

func Total(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total
}

func LineTotal(l models.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func Count(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) save(ctx context.Context) error {
	if c.saver == nil {
		return nil
	}
	if err := c.saver.SaveCart(ctx, c.Lines()); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (c *Cart) accept(key string) Outcome {
	n := notification(c.lang, Success, key)
	c.notifier.Notify(n)
	return Outcome{OK: true, Notification: &n}
}

func (c *Cart) reject(key string) Outcome {
	n := notification(c.lang, Error, key)
	c.notifier.Notify(n)
	return Outcome{OK: false, Notification: &n}
}

package cart

import (
	"context"
	"fmt"

	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/models"
)

type WishlistSaver interface {
	SaveWishlist(ctx context.Context, entries []models.WishlistEntry) error
}

type WishlistOptions struct {
	Saver    WishlistSaver
	Notifier Notifier
	Lang     i18n.Lang
}

type Wishlist struct {
	entries  []models.WishlistEntry
	saver    WishlistSaver
	notifier Notifier
	lang     i18n.Lang
}

func NewWishlist(entries []models.WishlistEntry, opts WishlistOptions) *Wishlist {
	w := &Wishlist{
		entries:  append([]models.WishlistEntry(nil), entries...),
		saver:    opts.Saver,
		notifier: opts.Notifier,
		lang:     opts.Lang,
	}
	if w.notifier == nil {
		w.notifier = discard{}
	}
	if w.lang == "" {
		w.lang = i18n.English
	}
	return w
}

func (w *Wishlist) Entries() []models.WishlistEntry {
	out := make([]models.WishlistEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w *Wishlist) Contains(productID string) bool {
	return w.index(productID) >= 0
}

func (w *Wishlist) index(productID string) int {
	for i, e := range w.entries {
		if e.Product.Id.Hex() == productID {
			return i
		}
	}
	return -1
}

// Toggle removes the product if present, otherwise appends it. It reports
// whether the product is in the wishlist afterwards.
func (w *Wishlist) Toggle(ctx context.Context, p models.Product) (bool, error) {
	var (
		added bool
		n     Notification
	)
	if i := w.index(p.Id.Hex()); i >= 0 {
		w.entries = append(w.entries[:i], w.entries[i+1:]...)
		n = notification(w.lang, Info, "wishlist.removed")
	} else {
		w.entries = append(w.entries, models.WishlistEntry{Product: p})
		added = true
		n = notification(w.lang, Success, "wishlist.added")
	}

	if w.saver != nil {
		if err := w.saver.SaveWishlist(ctx, w.Entries()); err != nil {
			return added, fmt.Errorf("save wishlist: %w", err)
		}
	}
	w.notifier.Notify(n)
	return added, nil
}

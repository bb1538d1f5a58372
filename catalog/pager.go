package catalog

import "github.com/princinho/boutique/models"

// PageSize is both the initial visible count and the load-more increment.
const PageSize = 24

// Pager is the visible-count cursor of the catalogue grid.
type Pager struct {
	visible int
	last    Criteria
	synced  bool
}

func NewPager() *Pager {
	return &Pager{visible: PageSize}
}

// PagerAt restores a cursor from a client-held visible count.
func PagerAt(visible int) *Pager {
	if visible < PageSize {
		visible = PageSize
	}
	return &Pager{visible: visible}
}

// Cursor is the stored form of a Pager, kept with the rest of a session's
// client state.
type Cursor struct {
	Visible  int      `json:"visible"`
	Criteria Criteria `json:"criteria"`
	Synced   bool     `json:"synced"`
}

// Resume rebuilds a Pager from its stored cursor.
func Resume(c Cursor) *Pager {
	p := PagerAt(c.Visible)
	if c.Synced {
		p.last = c.Criteria.Normalize()
		p.synced = true
	}
	return p
}

func (p *Pager) Cursor() Cursor {
	return Cursor{Visible: p.visible, Criteria: p.last, Synced: p.synced}
}

func (p *Pager) Visible() int {
	return p.visible
}

// More grows the visible count by one page.
func (p *Pager) More() {
	p.visible += PageSize
}

func (p *Pager) Reset() {
	p.visible = PageSize
}

// Sync resets the cursor when criteria differ from the last criteria seen.
func (p *Pager) Sync(criteria Criteria) {
	c := criteria.Normalize()
	if p.synced && c != p.last {
		p.Reset()
	}
	p.last = c
	p.synced = true
}

// Page returns the visible prefix of products and whether more remain.
func (p *Pager) Page(products []models.Product) ([]models.Product, bool) {
	if len(products) <= p.visible {
		return products, false
	}
	return products[:p.visible], true
}

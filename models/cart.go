package models

// CartLine is one (product, size, color) selection in a cart.
type CartLine struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	Size       string  `json:"size"`
	Color      string  `json:"color"`
	Quantity   int     `json:"quantity"`
	StockLimit int     `json:"stockLimit"`
}

type CartKey struct {
	ProductID string
	Size      string
	Color     string
}

func (l CartLine) Key() CartKey {
	return CartKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

// WishlistEntry is a product snapshot, unique by product id.
type WishlistEntry struct {
	Product Product `json:"product"`
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/cart"
	"github.com/princinho/boutique/catalog"
	"github.com/princinho/boutique/checkout"
	"github.com/princinho/boutique/clientstate"
	"github.com/princinho/boutique/dto"
	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/models"
)

func cartView(sess *clientstate.Session, lines []models.CartLine) gin.H {
	currency := currencyOf(sess)
	total := cart.Total(lines)
	return gin.H{
		"items":          lines,
		"count":          cart.Count(lines),
		"total":          total.InexactFloat64(),
		"totalFormatted": i18n.Money(sess.Lang, total, currency),
		"currency":       currency,
	}
}

// GET /cart
func (a *App) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartView(sess, sess.Cart))
	}
}

// POST /cart/items
func (a *App) AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		var body dto.AddCartItemDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, err := a.product(c, body.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		size, color := selection(p, body.Size, body.Color)

		var toasts cart.Toasts
		crt := a.cartOf(sess, &toasts)
		outcome, err := crt.Add(c.Request.Context(), p, size, color)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"outcome": outcome, "toasts": toasts, "cart": cartView(sess, crt.Lines())})
	}
}

// selection fills an empty size or color with the product's first option, so
// the line key matches what a storefront preselects.
func selection(p models.Product, size, color string) (string, string) {
	size, color = catalog.Token(size), catalog.Token(color)
	if size == "" {
		if sizes := catalog.ParseTokens(p.Sizes); len(sizes) > 0 {
			size = sizes[0]
		}
	}
	if color == "" {
		if colors := catalog.ParseTokens(p.Colors); len(colors) > 0 {
			color = colors[0]
		}
	}
	return size, color
}

// PATCH /cart/items
func (a *App) UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		var body dto.UpdateCartItemDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var toasts cart.Toasts
		crt := a.cartOf(sess, &toasts)
		outcome, err := crt.UpdateQuantity(c.Request.Context(), body.Key(), body.Delta)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"outcome": outcome, "toasts": toasts, "cart": cartView(sess, crt.Lines())})
	}
}

// DELETE /cart/items
func (a *App) RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		var body dto.RemoveCartItemDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var toasts cart.Toasts
		crt := a.cartOf(sess, &toasts)
		if err := crt.Remove(c.Request.Context(), body.Key()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"toasts": toasts, "cart": cartView(sess, crt.Lines())})
	}
}

// DELETE /cart
func (a *App) ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		crt := a.cartOf(sess, &cart.Toasts{})
		if err := crt.Clear(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cartView(sess, crt.Lines())})
	}
}

// GET /wishlist
func (a *App) GetWishlist() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": sess.Wishlist, "count": len(sess.Wishlist)})
	}
}

// POST /wishlist/toggle
func (a *App) ToggleWishlist() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		var body dto.ToggleWishlistDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, err := a.product(c, body.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		var toasts cart.Toasts
		wl := a.wishlistOf(sess, &toasts)
		added, err := wl.Toggle(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"inWishlist": added, "toasts": toasts, "items": wl.Entries()})
	}
}

// PUT /session/lang
func (a *App) SetLang() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		var body dto.LangDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lang := i18n.Lang(body.Lang)
		if !lang.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
			return
		}
		if err := sess.SetLang(c.Request.Context(), lang); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lang": sess.Lang})
	}
}

// PUT /session/store-config
func (a *App) SetStoreConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		var body dto.StoreConfigDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := sess.SetStoreConfig(c.Request.Context(), body.StoreConfig()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"storeConfig": sess.StoreConfig, "settings": a.sessionSettings(sess)})
	}
}

// GET /checkout/link
func (a *App) CheckoutLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		if len(sess.Cart) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T(sess.Lang, "cart.empty")})
			return
		}
		view := a.sessionSettings(sess)
		message := checkout.Summary(sess.Cart, sess.Lang, currencyOf(sess))
		// the handoff number is the one this client configured
		resp := gin.H{
			"message":   message,
			"link":      checkout.Link(sess.StoreConfig.Phone, message),
			"storeOpen": view.IsOpen,
		}
		if !view.IsOpen {
			resp["notice"] = i18n.T(sess.Lang, "store.closed")
		}
		c.JSON(http.StatusOK, resp)
	}
}

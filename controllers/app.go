package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/accounts"
	"github.com/princinho/boutique/cart"
	"github.com/princinho/boutique/catalog"
	"github.com/princinho/boutique/clientstate"
	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/gateway"
	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/middleware"
	"github.com/princinho/boutique/models"
	"github.com/princinho/boutique/realtime"
	"github.com/princinho/boutique/settings"
	"github.com/princinho/boutique/storage"
	"github.com/princinho/boutique/utils"
)

type AuthConfig struct {
	JWTSecret        string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	CookieSecure     bool
	CookieDomain     string
}

// App holds the collaborators shared by every handler.
type App struct {
	Gateway   gateway.Gateway
	Blobs     storage.BlobStore
	Catalog   *catalog.Cache
	Settings  *settings.State
	Hub       *realtime.Hub
	Accounts  accounts.Store
	Validator *utils.FileValidator
	Auth      AuthConfig

	MaxProductImages int
	// LiveFeed is set when gateway subscriptions deliver write notifications.
	// Without it handlers propagate their own writes.
	LiveFeed bool
}

// product resolves an id against the cached catalogue first, then the gateway.
func (a *App) product(c *gin.Context, id string) (models.Product, error) {
	if p, ok := a.Catalog.Find(id); ok {
		return p, nil
	}
	return a.Gateway.GetProduct(c.Request.Context(), id)
}

func (a *App) sessionSettings(sess *clientstate.Session) models.StoreSettings {
	return settings.View(a.Settings.Get(), sess.StoreConfig)
}

func currencyOf(sess *clientstate.Session) string {
	if sess.StoreConfig.Currency != "" {
		return sess.StoreConfig.Currency
	}
	return i18n.DefaultCurrency
}

func (a *App) cartOf(sess *clientstate.Session, toasts *cart.Toasts) *cart.Cart {
	return cart.New(sess.Cart, cart.Options{Saver: sess, Notifier: toasts, Lang: sess.Lang})
}

func (a *App) wishlistOf(sess *clientstate.Session, toasts *cart.Toasts) *cart.Wishlist {
	return cart.NewWishlist(sess.Wishlist, cart.WishlistOptions{Saver: sess, Notifier: toasts, Lang: sess.Lang})
}

func session(c *gin.Context) (*clientstate.Session, bool) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return nil, false
	}
	return sess, true
}

func respondError(c *gin.Context, err error) {
	status := errx.Status(err)
	if status >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	var appErr *errx.AppError
	if !errors.As(err, &appErr) {
		c.AbortWithStatusJSON(status, gin.H{"error": errx.SystemErrorMessage})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message})
}

func (a *App) productChanged(c *gin.Context, ev models.ProductEvent) {
	if a.LiveFeed {
		return
	}
	a.Catalog.Refresh(c.Request.Context(), ev)
	a.Hub.Publish(realtime.Event{Topic: realtime.TopicProducts, Product: &ev})
}

func (a *App) settingsChanged(s models.StoreSettings) {
	if a.LiveFeed {
		return
	}
	a.Hub.Publish(realtime.Event{Topic: realtime.TopicSettings, Settings: &s})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/middleware"
	"github.com/princinho/boutique/models"
)

type RouterOptions struct {
	AllowedOrigins map[string]bool
	Session        middleware.SessionOptions
	RequestLogging bool
}

func NewRouter(a *App, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return opts.AllowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if opts.RequestLogging {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/i18n/:lang", GetTranslations())

	auth := r.Group("/auth")
	{
		auth.POST("/login", a.Login())
		auth.POST("/refresh", a.Refresh())
		auth.POST("/logout", a.Logout())
	}

	store := r.Group("/")
	store.Use(middleware.Session(opts.Session))
	{
		store.GET("/products", a.GetProducts())
		store.GET("/products/:id", a.GetProduct())
		store.GET("/products/:id/share", a.ShareProduct())
		store.GET("/settings", a.GetSettings())
		store.GET("/settings/stream", a.StreamSettings())

		store.GET("/cart", a.GetCart())
		store.DELETE("/cart", a.ClearCart())
		store.POST("/cart/items", a.AddCartItem())
		store.PATCH("/cart/items", a.UpdateCartItem())
		store.DELETE("/cart/items", a.RemoveCartItem())
		store.GET("/wishlist", a.GetWishlist())
		store.POST("/wishlist/toggle", a.ToggleWishlist())
		store.PUT("/session/lang", a.SetLang())
		store.PUT("/session/store-config", a.SetStoreConfig())
		store.GET("/checkout/link", a.CheckoutLink())
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.Auth.JWTSecret), middleware.RequireRole(models.RoleShopkeeper))
	{
		admin.POST("/products", a.AddProduct())
		admin.PATCH("/products/:id", a.UpdateProduct())
		admin.DELETE("/products/:id", a.DeleteProduct())
		admin.PATCH("/settings", a.PatchSettings())
		admin.POST("/users/me/password", a.ChangeMyPassword())
	}
	return r
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/accounts"
	"github.com/princinho/boutique/catalog"
	"github.com/princinho/boutique/clientstate"
	"github.com/princinho/boutique/config"
	"github.com/princinho/boutique/controllers"
	"github.com/princinho/boutique/database"
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

func main() {
	sigCtx, closeApp := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer closeApp()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logx.Init(logx.Opts{Environment: cfg.Environment()})
	if cfg.Environment().IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := database.Connect(sigCtx, cfg.Mongo.URI)
	if err != nil {
		logx.Fatal().Err(err).Msg("mongo")
	}
	db := database.New(client, cfg.Mongo.Database)
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logx.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := db.EnsureIndexes(sigCtx); err != nil {
		logx.Fatal().Err(err).Msg("mongo indexes")
	}

	accountStore := accounts.NewMongo(db)
	if err := utils.SeedShopkeeper(sigCtx, accountStore, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logx.Fatal().Err(err).Msg("seed shopkeeper")
	}

	gw := gateway.NewMongo(db)

	blobs, closeBlobs, err := newBlobStore(sigCtx, cfg.Storage)
	if err != nil {
		logx.Fatal().Err(err).Msg("blob store")
	}
	defer closeBlobs()

	sessions, closeSessions, err := newSessionStore(sigCtx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("session store")
	}
	defer closeSessions()

	initial, err := utils.SeedStoreSettings(sigCtx, gw)
	if err != nil {
		logx.Error().Err(err).Msg("failed to load store settings")
		initial = models.StoreSettings{Id: models.StoreSettingsID}
	}
	state := settings.NewState(initial)
	cache := catalog.NewCache(gw)
	cache.Load(sigCtx)
	hub := realtime.NewHub()

	if cfg.Mongo.Realtime {
		stop, err := subscribe(sigCtx, gw, cache, state, hub)
		if err != nil {
			logx.Fatal().Err(err).Msg("realtime subscriptions")
		}
		defer stop()
	}

	app := &controllers.App{
		Gateway:          gw,
		Blobs:            blobs,
		Catalog:          cache,
		Settings:         state,
		Hub:              hub,
		Accounts:         accountStore,
		Validator:        utils.NewImageValidator(cfg.Storage.AllowedImageFormats, cfg.Storage.MaxUploadSizeMB),
		MaxProductImages: cfg.Storage.MaxProductImages,
		LiveFeed:         cfg.Mongo.Realtime,
		Auth: controllers.AuthConfig{
			JWTSecret:        cfg.Auth.JWTSecret,
			JWTRefreshSecret: cfg.Auth.JWTRefreshSecret,
			AccessTTL:        cfg.Auth.AccessTTL(),
			RefreshTTL:       cfg.Auth.RefreshTTL(),
			CookieSecure:     cfg.Auth.CookieSecure,
			CookieDomain:     cfg.Auth.CookieDomain,
		},
	}

	logx.Info().Interface("origins", cfg.Origins()).Msg("allowed origins")
	router := controllers.NewRouter(app, controllers.RouterOptions{
		AllowedOrigins: cfg.Origins(),
		RequestLogging: true,
		Session: middleware.SessionOptions{
			Store:        sessions,
			DefaultLang:  i18n.Parse(cfg.DefaultLang, i18n.French),
			MaxAge:       int(cfg.Session.TTL.Seconds()),
			CookieSecure: cfg.Auth.CookieSecure,
			CookieDomain: cfg.Auth.CookieDomain,
		},
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logx.Info().Str("addr", cfg.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error().Err(err).Msg("http server")
			closeApp()
		}
	}()

	<-sigCtx.Done()
	logx.Info().Msg("application is closing...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("failed to shutdown http server gracefully")
	}
}

// subscribe feeds gateway change streams into the catalogue cache, the
// settings state and the SSE hub.
func subscribe(ctx context.Context, gw gateway.Gateway, cache *catalog.Cache, state *settings.State, hub *realtime.Hub) (func(), error) {
	stopSettings, err := gw.SubscribeSettings(ctx, func(p models.SettingsPatch) {
		s := state.Dispatch(settings.RemotePatch{Patch: p})
		hub.Publish(realtime.Event{Topic: realtime.TopicSettings, Settings: &s})
	})
	if err != nil {
		return nil, err
	}
	stopProducts, err := gw.SubscribeProducts(ctx, func(ev models.ProductEvent) {
		cache.Refresh(ctx, ev)
		hub.Publish(realtime.Event{Topic: realtime.TopicProducts, Product: &ev})
	})
	if err != nil {
		stopSettings()
		return nil, err
	}
	return func() {
		stopProducts()
		stopSettings()
	}, nil
}

func newBlobStore(ctx context.Context, cfg config.Storage) (storage.BlobStore, func(), error) {
	switch cfg.Provider {
	case "gcs":
		g, err := storage.NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return g, func() { _ = g.Close() }, nil
	case "r2", "":
		r, err := storage.NewR2(ctx, storage.R2Config{
			Bucket:       cfg.R2Bucket,
			AccessKeyID:  cfg.R2AccessKeyID,
			SecretKey:    cfg.R2SecretKey,
			Endpoint:     cfg.R2Endpoint,
			PublicDomain: cfg.R2PublicDomain,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

func newSessionStore(ctx context.Context, cfg config.Config) (clientstate.Store, func(), error) {
	switch cfg.Session.Backend {
	case "redis":
		rdb, err := clientstate.NewRedisClient(ctx, clientstate.RedisConfig{
			URL:          cfg.Redis.URL,
			ReadTimeout:  time.Duration(cfg.Redis.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Redis.WriteTimeout) * time.Second,
			DialTimeout:  time.Duration(cfg.Redis.DialTimeout) * time.Second,
		})
		if err != nil {
			return nil, nil, err
		}
		return clientstate.NewRedisStore(rdb, cfg.Session.TTL), func() { closeQuietly(rdb) }, nil
	case "file", "":
		fs, err := clientstate.NewFileStore(cfg.Session.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		logx.Warn().Err(err).Msg("close")
	}
}

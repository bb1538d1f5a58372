package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/princinho/boutique/accounts"
	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/models"
)

// SeedShopkeeper creates the shopkeeper account once; an existing account
// keeps its password.
func SeedShopkeeper(ctx context.Context, store accounts.Store, email, pass string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pass == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	hash, err := HashPassword(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	created, err := store.EnsureUser(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleShopkeeper,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("seed shopkeeper upsert failed: %w", err)
	}

	if created {
		logx.Info().Str("email", email).Msg("shopkeeper user seeded")
	} else {
		logx.Info().Str("email", email).Msg("shopkeeper user already exists")
	}
	return nil
}

type settingsStore interface {
	GetSettings(ctx context.Context) (models.StoreSettings, error)
	UpsertSettings(ctx context.Context, patch models.SettingsPatch) (models.StoreSettings, error)
}

// SeedStoreSettings writes the settings row with the store open when the
// row has never been saved, and returns the current row.
func SeedStoreSettings(ctx context.Context, store settingsStore) (models.StoreSettings, error) {
	current, err := store.GetSettings(ctx)
	if err != nil {
		return models.StoreSettings{}, err
	}
	if !current.UpdatedAt.IsZero() {
		return current, nil
	}
	open := true
	seeded, err := store.UpsertSettings(ctx, models.SettingsPatch{IsOpen: &open})
	if err != nil {
		return models.StoreSettings{}, fmt.Errorf("seed store settings: %w", err)
	}
	logx.Info().Msg("store settings seeded")
	return seeded, nil
}

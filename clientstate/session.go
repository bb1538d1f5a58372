package clientstate

import (
	"context"
	"fmt"

	"github.com/princinho/boutique/catalog"
	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/models"
)

// Session is the rehydrated client state of one visitor. It implements
// cart.Saver and cart.WishlistSaver.
type Session struct {
	ID          string
	Cart        []models.CartLine
	Wishlist    []models.WishlistEntry
	Lang        i18n.Lang
	StoreConfig models.StoreConfig
	// Grid is the catalogue paging cursor.
	Grid catalog.Cursor

	store Store
}

// Open rehydrates every document of the session; missing documents start empty.
func Open(ctx context.Context, store Store, id string, defaultLang i18n.Lang) (*Session, error) {
	s := &Session{
		ID:       id,
		Cart:     []models.CartLine{},
		Wishlist: []models.WishlistEntry{},
		Lang:     defaultLang,
		store:    store,
	}

	if _, err := store.Get(ctx, id, KeyCart, &s.Cart); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if _, err := store.Get(ctx, id, KeyWishlist, &s.Wishlist); err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	var lang string
	found, err := store.Get(ctx, id, KeyLang, &lang)
	if err != nil {
		return nil, fmt.Errorf("load lang: %w", err)
	}
	if found && i18n.Lang(lang).Valid() {
		s.Lang = i18n.Lang(lang)
	}
	if _, err := store.Get(ctx, id, KeyStoreConfig, &s.StoreConfig); err != nil {
		return nil, fmt.Errorf("load store config: %w", err)
	}
	if _, err := store.Get(ctx, id, KeyGrid, &s.Grid); err != nil {
		return nil, fmt.Errorf("load catalog grid: %w", err)
	}
	if s.Cart == nil {
		s.Cart = []models.CartLine{}
	}
	if s.Wishlist == nil {
		s.Wishlist = []models.WishlistEntry{}
	}
	return s, nil
}

func (s *Session) SaveCart(ctx context.Context, lines []models.CartLine) error {
	if err := s.store.Put(ctx, s.ID, KeyCart, lines); err != nil {
		return err
	}
	s.Cart = lines
	return nil
}

func (s *Session) SaveWishlist(ctx context.Context, entries []models.WishlistEntry) error {
	if err := s.store.Put(ctx, s.ID, KeyWishlist, entries); err != nil {
		return err
	}
	s.Wishlist = entries
	return nil
}

func (s *Session) SetLang(ctx context.Context, lang i18n.Lang) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	if err := s.store.Put(ctx, s.ID, KeyLang, string(lang)); err != nil {
		return err
	}
	s.Lang = lang
	return nil
}

func (s *Session) SetStoreConfig(ctx context.Context, cfg models.StoreConfig) error {
	if err := s.store.Put(ctx, s.ID, KeyStoreConfig, cfg); err != nil {
		return err
	}
	s.StoreConfig = cfg
	return nil
}

func (s *Session) SaveGrid(ctx context.Context, cur catalog.Cursor) error {
	if err := s.store.Put(ctx, s.ID, KeyGrid, cur); err != nil {
		return err
	}
	s.Grid = cur
	return nil
}

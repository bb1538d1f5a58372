// Package clientstate persists the per-session documents a storefront client
// keeps: cart, wishlist, language, store-config and the catalogue grid
// cursor. Each key is an independent whole JSON document with no schema
// versioning.
package clientstate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

const (
	KeyCart        = "cart"
	KeyWishlist    = "wishlist"
	KeyLang        = "lang"
	KeyStoreConfig = "store-config"
	KeyGrid        = "catalog-grid"
)

type Store interface {
	// Get decodes the document into dst. found is false when nothing is stored.
	Get(ctx context.Context, sessionID, key string, dst any) (found bool, err error)
	Put(ctx context.Context, sessionID, key string, v any) error
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id could have come from NewSessionID.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, sessionID, key string, dst any) (bool, error) {
	m.mu.RLock()
	b, ok := m.docs[sessionID+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStore) Put(_ context.Context, sessionID, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.mu.Lock()
	m.docs[sessionID+"/"+key] = b
	m.mu.Unlock()
	return nil
}

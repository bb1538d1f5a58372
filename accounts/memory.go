package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory is an in-process Store for tests.
type Memory struct {
	mu     sync.Mutex
	users  []models.User
	tokens []models.RefreshToken
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, errx.NotFound("user not found")
}

func (m *Memory) FindUserByID(_ context.Context, id bson.ObjectID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, errx.NotFound("user not found")
}

func (m *Memory) EnsureUser(_ context.Context, u models.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return false, nil
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	m.users = append(m.users, u)
	return true, nil
}

func (m *Memory) UpdatePassword(_ context.Context, id bson.ObjectID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = hash
			m.users[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return errx.NotFound("user not found")
}

func (m *Memory) InsertRefreshToken(_ context.Context, rt models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rt.ID.IsZero() {
		rt.ID = bson.NewObjectID()
	}
	m.tokens = append(m.tokens, rt)
	return nil
}

func (m *Memory) FindActiveRefreshToken(_ context.Context, tokenHash string, now time.Time) (models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.tokens {
		if rt.TokenHash == tokenHash && rt.RevokedAt == nil && rt.ExpiresAt.After(now) {
			return rt, nil
		}
	}
	return models.RefreshToken{}, errx.NotFound("refresh token not found")
}

func (m *Memory) RevokeRefreshToken(_ context.Context, tokenHash string, replacedBy *string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tokens {
		if m.tokens[i].TokenHash == tokenHash && m.tokens[i].RevokedAt == nil {
			m.tokens[i].RevokedAt = &now
			m.tokens[i].ReplacedBy = replacedBy
		}
	}
	return nil
}

func (m *Memory) RevokeAllRefreshTokens(_ context.Context, userID bson.ObjectID, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tokens {
		if m.tokens[i].UserID == userID && m.tokens[i].RevokedAt == nil {
			m.tokens[i].RevokedAt = &now
		}
	}
	return nil
}

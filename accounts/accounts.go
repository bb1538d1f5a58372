// Package accounts stores shopkeeper users and their refresh tokens.
package accounts

import (
	"context"
	"time"

	"github.com/princinho/boutique/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Store interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error)
	// EnsureUser inserts u unless a user with the same email exists. It
	// reports whether a row was created.
	EnsureUser(ctx context.Context, u models.User) (bool, error)
	UpdatePassword(ctx context.Context, id bson.ObjectID, hash string) error

	InsertRefreshToken(ctx context.Context, rt models.RefreshToken) error
	// FindActiveRefreshToken returns a token that is neither revoked nor expired.
	FindActiveRefreshToken(ctx context.Context, tokenHash string, now time.Time) (models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string, replacedBy *string, now time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID bson.ObjectID, now time.Time) error
}

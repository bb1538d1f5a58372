package accounts

import (
	"context"
	"time"

	"github.com/princinho/boutique/database"
	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Mongo struct {
	users   *mongo.Collection
	refresh *mongo.Collection
}

func NewMongo(db *database.DB) *Mongo {
	return &Mongo{
		users:   db.Collection(database.UsersCollection),
		refresh: db.Collection(database.RefreshTokensCollection),
	}
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return models.User{}, errx.WrapMongo(err)
	}
	return user, nil
}

func (m *Mongo) FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error) {
	var user models.User
	if err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return models.User{}, errx.WrapMongo(err)
	}
	return user, nil
}

func (m *Mongo) EnsureUser(ctx context.Context, u models.User) (bool, error) {
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":        u.Email,
			"passwordHash": u.PasswordHash,
			"role":         u.Role,
			"isActive":     u.IsActive,
			"createdAt":    u.CreatedAt,
			"updatedAt":    u.UpdatedAt,
		},
	}
	opts := options.UpdateOne().SetUpsert(true)
	res, err := m.users.UpdateOne(ctx, bson.M{"email": u.Email}, update, opts)
	if err != nil {
		return false, errx.WrapMongo(err)
	}
	return res.UpsertedCount == 1, nil
}

func (m *Mongo) UpdatePassword(ctx context.Context, id bson.ObjectID, hash string) error {
	res, err := m.users.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"passwordHash": hash, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return errx.WrapMongo(err)
	}
	if res.MatchedCount == 0 {
		return errx.NotFound("user not found")
	}
	return nil
}

func (m *Mongo) InsertRefreshToken(ctx context.Context, rt models.RefreshToken) error {
	_, err := m.refresh.InsertOne(ctx, rt)
	return errx.WrapMongo(err)
}

func (m *Mongo) FindActiveRefreshToken(ctx context.Context, tokenHash string, now time.Time) (models.RefreshToken, error) {
	var rt models.RefreshToken
	err := m.refresh.FindOne(ctx, bson.M{
		"tokenHash": tokenHash,
		"revokedAt": bson.M{"$exists": false},
		"expiresAt": bson.M{"$gt": now},
	}).Decode(&rt)
	if err != nil {
		return models.RefreshToken{}, errx.WrapMongo(err)
	}
	return rt, nil
}

func (m *Mongo) RevokeRefreshToken(ctx context.Context, tokenHash string, replacedBy *string, now time.Time) error {
	set := bson.M{"revokedAt": now}
	if replacedBy != nil {
		set["replacedBy"] = *replacedBy
	}
	_, err := m.refresh.UpdateOne(ctx, bson.M{
		"tokenHash": tokenHash,
		"revokedAt": bson.M{"$exists": false},
	}, bson.M{"$set": set})
	return errx.WrapMongo(err)
}

func (m *Mongo) RevokeAllRefreshTokens(ctx context.Context, userID bson.ObjectID, now time.Time) error {
	_, err := m.refresh.UpdateMany(ctx, bson.M{
		"userId":    userID,
		"revokedAt": bson.M{"$exists": false},
	}, bson.M{"$set": bson.M{"revokedAt": now}})
	return errx.WrapMongo(err)
}

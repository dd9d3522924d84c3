// internal/app/store/usercache/usercachestore.go
package usercachestore

import (
	"context"
	"time"

	"github.com/ktguru/project-service/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_cache")}
}

// Upsert writes the display info for a user, inserting on first sight.
// Driven by the broker's user topic; the unique index on user_id makes
// concurrent upserts for the same user converge.
func (s *Store) Upsert(ctx context.Context, u models.UserCache) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": u.UserID},
		bson.M{"$set": bson.M{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"avatar":     u.Avatar,
			"email":      u.Email,
			"updated_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true))
	return err
}

// GetByUserID loads the cached display info for a user.
// Returns mongo.ErrNoDocuments when the user has never been seen.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserCache, error) {
	var u models.UserCache
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

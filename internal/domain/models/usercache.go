// internal/domain/models/usercache.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCache is a local read-only copy of user display info, kept current by
// the broker's user topic. It exists so invitation/decline mails can name
// people without a synchronous call to the identity service.
type UserCache struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	Email     string             `bson:"email" json:"email"`

	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName joins first and last name for mail templates.
func (u UserCache) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

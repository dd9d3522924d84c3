// internal/app/broker/handlers.go

package broker

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/store/projects"
	"github.com/ktguru/project-service/internal/app/store/usercache"
	"github.com/ktguru/project-service/internal/domain/models"
)

// envelope is the wire shape every inbound event shares.
type envelope struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

type userEvent struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email"`
}

type subscriptionEvent struct {
	CompanyID string `json:"companyId"`
	IsActive  bool   `json:"isActive"`
}

// BuildHandlers returns the topic dispatch table: the user topic keeps the
// local user cache current, and the subscription topic toggles a company's
// projects active when its plan lapses or renews.
func BuildHandlers(users *usercachestore.Store, projects *projectstore.Store, log *zap.Logger) map[string]Handler {
	return map[string]Handler{
		TopicUser:         userHandler(users, log),
		TopicSubscription: subscriptionHandler(projects, log),
	}
}

func userHandler(users *usercachestore.Store, log *zap.Logger) Handler {
	return func(ctx context.Context, value []byte) error {
		var env envelope
		if err := json.Unmarshal(value, &env); err != nil {
			return err
		}
		var ev userEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return err
		}
		uid, err := primitive.ObjectIDFromHex(ev.UserID)
		if err != nil {
			return err
		}
		err = users.Upsert(ctx, models.UserCache{
			UserID:    uid,
			FirstName: ev.FirstName,
			LastName:  ev.LastName,
			Avatar:    ev.Avatar,
			Email:     ev.Email,
		})
		if err == nil {
			log.Debug("user cache updated",
				zap.String("user_id", ev.UserID),
				zap.String("event", env.EventType))
		}
		return err
	}
}

func subscriptionHandler(projects *projectstore.Store, log *zap.Logger) Handler {
	return func(ctx context.Context, value []byte) error {
		var env envelope
		if err := json.Unmarshal(value, &env); err != nil {
			return err
		}
		var ev subscriptionEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return err
		}
		cid, err := primitive.ObjectIDFromHex(ev.CompanyID)
		if err != nil {
			return err
		}
		if err := projects.SetCompanyActive(ctx, cid, ev.IsActive); err != nil {
			return err
		}
		log.Info("company projects toggled",
			zap.String("company_id", ev.CompanyID),
			zap.Bool("is_active", ev.IsActive))
		return nil
	}
}

// internal/app/features/projects/handler.go
package projects

import (
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/clients/identity"
	"github.com/ktguru/project-service/internal/app/clients/subscription"
	"github.com/ktguru/project-service/internal/app/store/projects"
)

// Handler is the shared dependency container for the projects feature.
type Handler struct {
	Projects      *projectstore.Store
	Identity      *identity.Client
	Subscriptions *subscription.Client
	Log           *zap.Logger
}

// NewHandler constructs a projects Handler. Typically called from the
// bootstrap BuildHandler function.
func NewHandler(projects *projectstore.Store, id *identity.Client, subs *subscription.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Projects:      projects,
		Identity:      id,
		Subscriptions: subs,
		Log:           logger,
	}
}

// internal/app/features/resources/handler.go
package resources

import (
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/membership"
)

// Handler is the shared dependency container for the resources feature.
// All mutation goes through the membership engine; the handlers here only
// validate, translate ids, and render.
type Handler struct {
	Engine *membership.Engine
	Log    *zap.Logger
}

func NewHandler(engine *membership.Engine, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Log: logger}
}

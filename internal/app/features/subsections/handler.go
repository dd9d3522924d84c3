// internal/app/features/subsections/handler.go
package subsections

import (
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/store/projects"
	"github.com/ktguru/project-service/internal/app/store/subsections"
)

// Handler is the shared dependency container for the subsections feature.
type Handler struct {
	SubSections *subsectionstore.Store
	Projects    *projectstore.Store
	Log         *zap.Logger
}

func NewHandler(subs *subsectionstore.Store, projects *projectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		SubSections: subs,
		Projects:    projects,
		Log:         logger,
	}
}

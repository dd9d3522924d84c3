// internal/app/features/projects/list.go
package projects

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
	"github.com/ktguru/project-service/internal/domain/models"
)

// HandleList returns the projects where the caller is an approved member.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierror.Render(w, h.Log, apierror.New(apierror.KindForbidden, "not authenticated"))
		return
	}
	userID, err := httpjson.ID("sub", u.ID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	projects, err := h.Projects.ListForUser(ctx, userID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	httpjson.Respond(w, http.StatusOK, map[string]interface{}{"data": projects})
}

// HandleGet returns one project by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.IDParam(r, "id")
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if project == nil {
		apierror.Render(w, h.Log, apierror.New(apierror.KindNotFound, "Project does not exist."))
		return
	}
	httpjson.Respond(w, http.StatusOK, project)
}

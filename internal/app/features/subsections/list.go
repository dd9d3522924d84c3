// internal/app/features/subsections/list.go
package subsections

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
	"github.com/ktguru/project-service/internal/domain/models"
)

// HandleListForProject returns the subsections of a project where the
// caller holds an approved entry. The id parameter is the project id.
func (h *Handler) HandleListForProject(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierror.Render(w, h.Log, apierror.New(apierror.KindForbidden, "not authenticated"))
		return
	}
	projectID, err := httpjson.IDParam(r, "id")
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	userID, err := httpjson.ID("sub", u.ID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subs, err := h.SubSections.ListForUserApproved(ctx, projectID, userID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if subs == nil {
		subs = []models.SubSection{}
	}
	httpjson.Respond(w, http.StatusOK, map[string]interface{}{"data": subs})
}

// HandleGet returns one subsection by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.IDParam(r, "id")
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.SubSections.GetByID(ctx, id)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if sub == nil {
		apierror.Render(w, h.Log, apierror.New(apierror.KindNotFound, "Sub Section does not exist."))
		return
	}
	httpjson.Respond(w, http.StatusOK, sub)
}

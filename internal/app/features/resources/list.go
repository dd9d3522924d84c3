// internal/app/features/resources/list.go
package resources

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

// HandleList returns a project's raw resource entries to a managing member.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	projectID, err := httpjson.IDParam(r, "id")
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	requester, err := httpjson.ID("sub", u.ID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	entries, err := h.Engine.Resources(ctx, projectID, requester)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, entries)
}

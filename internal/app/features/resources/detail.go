// internal/app/features/resources/detail.go
package resources

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

type detailInput struct {
	ProjectID string `json:"projectId"`
	UserID    string `json:"userId"`
}

// HandleDetail returns the consolidated view of one user's standing on a
// project and its subsections. A user with no project entry renders null.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	var in detailInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	projectID, err := httpjson.ID("projectId", in.ProjectID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	userID, err := httpjson.ID("userId", in.UserID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	view, err := h.Engine.FormatResources(ctx, projectID, userID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, view)
}

type approvedForModelInput struct {
	ProjectID string `json:"projectId"`
	ModelType string `json:"model_type"`
}

// HandleApprovedForModel returns the approved roster of a project or a
// subsection, selected by model_type.
func (h *Handler) HandleApprovedForModel(w http.ResponseWriter, r *http.Request) {
	var in approvedForModelInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	id, err := httpjson.ID("projectId", in.ProjectID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	view, err := h.Engine.ApprovedResourcesForModel(ctx, id, in.ModelType)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, view)
}

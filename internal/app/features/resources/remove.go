// internal/app/features/resources/remove.go
package resources

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

// removeInput names its target explicitly: projectId for a project-wide
// removal, subSectionId for a single-subsection one. Exactly one is used,
// selected by removedFromAllProject.
type removeInput struct {
	ProjectID             string `json:"projectId"`
	SubSectionID          string `json:"subSectionId"`
	UserID                string `json:"userId"`
	RemovedFromAllProject bool   `json:"removedFromAllProject"`
}

// HandleRemove ends a user's membership on a project (with subsection
// fan-out) or clears their approval on a single subsection.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var in removeInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	userID, err := httpjson.ID("userId", in.UserID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	requester, err := httpjson.ID("sub", u.ID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if in.RemovedFromAllProject {
		projectID, err := httpjson.ID("projectId", in.ProjectID)
		if err != nil {
			apierror.Render(w, h.Log, err)
			return
		}
		project, err := h.Engine.RemoveFromProject(ctx, projectID, userID, requester)
		if err != nil {
			apierror.Render(w, h.Log, err)
			return
		}
		httpjson.Respond(w, http.StatusOK, map[string]interface{}{
			"message":        "The user remove from project",
			"userId":         in.UserID,
			"updatedProject": project,
		})
		return
	}

	subSectionID, err := httpjson.ID("subSectionId", in.SubSectionID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	view, err := h.Engine.RemoveFromSubSection(ctx, subSectionID, userID, requester)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]interface{}{
		"message": "User removed from project successfully",
		"data":    view,
	})
}

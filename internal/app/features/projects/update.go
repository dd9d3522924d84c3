// internal/app/features/projects/update.go
package projects

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

type updateProjectInput struct {
	ProjectName string `json:"projectName"`
	ProjectDesc string `json:"projectDesc"`
	Technology  string `json:"technology"`
}

// HandleUpdate changes a project's descriptive fields. Membership and
// activity flags are out of reach here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.IDParam(r, "id")
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	var in updateProjectInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if in.ProjectName == "" {
		apierror.Render(w, h.Log, apierror.Validation(map[string]string{"projectName": "required"}))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.Update(ctx, id, in.ProjectName, in.ProjectDesc, in.Technology)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if project == nil {
		apierror.Render(w, h.Log, apierror.New(apierror.KindNotFound, "Project not found"))
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]interface{}{
		"data":    project,
		"message": "Project updated successfully",
	})
}

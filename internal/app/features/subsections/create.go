// internal/app/features/subsections/create.go
package subsections

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/store/subsections"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
	"github.com/ktguru/project-service/internal/domain/models"
)

type createSubSectionInput struct {
	ProjectName string `json:"projectName"`
	ProjectDesc string `json:"projectDesc"`
	Technology  string `json:"technology"`
	ProjectID   string `json:"projectId"`
}

// HandleCreate creates a subsection under a project. The resource list is
// seeded from the parent's admin-tier entries so admins see new
// subsections without another invite round. Names are unique per project,
// case-insensitive, backed by the unique index.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierror.Render(w, h.Log, apierror.New(apierror.KindForbidden, "not authenticated"))
		return
	}

	var in createSubSectionInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if in.ProjectName == "" || in.ProjectID == "" {
		apierror.Render(w, h.Log, apierror.Validation(map[string]string{
			"projectName": "required", "projectId": "required",
		}))
		return
	}

	projectID, err := httpjson.ID("projectId", in.ProjectID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	creatorID, err := httpjson.ID("sub", u.ID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if project == nil {
		apierror.Render(w, h.Log, apierror.New(apierror.KindNotFound, "Project data not found"))
		return
	}

	sub, err := h.SubSections.Create(ctx, models.SubSection{
		ProjectName: in.ProjectName,
		ProjectDesc: in.ProjectDesc,
		Technology:  in.Technology,
		ProjectID:   projectID,
		CreatedBy:   creatorID,
		Resources:   seedFromProject(project),
	})
	if err == subsectionstore.ErrDuplicateName {
		apierror.Render(w, h.Log, apierror.New(apierror.KindAlreadyMember,
			"A subsection named "+in.ProjectName+" already exists. Please select a different name."))
		return
	}
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	h.Log.Info("subsection created",
		zap.String("subsection_id", sub.ID.Hex()),
		zap.String("project_id", in.ProjectID))

	httpjson.Respond(w, http.StatusCreated, map[string]interface{}{
		"data":    sub,
		"message": "Successfuly sub section created",
	})
}

// seedFromProject copies the parent's admin-tier entries into a fresh
// subsection roster.
func seedFromProject(project *models.Project) []models.ResourceEntry {
	var out []models.ResourceEntry
	for _, entry := range project.Resources {
		if entry.AdminTier() {
			out = append(out, entry)
		}
	}
	return out
}

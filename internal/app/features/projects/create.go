// internal/app/features/projects/create.go
package projects

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/membership"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
	"github.com/ktguru/project-service/internal/domain/models"
)

type createProjectInput struct {
	ProjectName string `json:"projectName"`
	ProjectDesc string `json:"projectDesc"`
	Technology  string `json:"technology"`
	CompanyID   string `json:"companyId"`
}

func (in createProjectInput) validate() map[string]string {
	fields := map[string]string{}
	if in.ProjectName == "" {
		fields["projectName"] = "required"
	}
	if in.CompanyID == "" {
		fields["companyId"] = "required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// HandleCreate creates a project for a company. The plan's project quota is
// checked first, then the resource list is seeded: the creator's entry in
// front, followed by the company roster from the identity service.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierror.Render(w, h.Log, apierror.New(apierror.KindForbidden, "not authenticated"))
		return
	}

	var in createProjectInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if fields := in.validate(); fields != nil {
		apierror.Render(w, h.Log, apierror.Validation(fields))
		return
	}

	companyID, err := httpjson.ID("companyId", in.CompanyID)
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

	sub, err := h.Subscriptions.ActiveSubscription(ctx, in.CompanyID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	count, err := h.Projects.CountByCompany(ctx, companyID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if err := membership.CheckProjectQuota(sub, count); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	roster, err := h.Identity.CompanyRoster(ctx, in.CompanyID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	project, err := h.Projects.Create(ctx, models.Project{
		ProjectName: in.ProjectName,
		ProjectDesc: in.ProjectDesc,
		Technology:  in.Technology,
		CompanyID:   companyID,
		CompanyName: roster.CompanyName,
		CreatedBy:   creatorID,
		Resources:   seedResources(creatorID, u.Role, roster.TeamsData),
	})
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", project.ID.Hex()),
		zap.String("company_id", in.CompanyID))

	httpjson.Respond(w, http.StatusCreated, map[string]interface{}{
		"data":    project,
		"message": "Successfuly project created",
	})
}

// seedResources builds the initial resource list: creator first, already
// approved, then the company roster minus any duplicate of the creator.
func seedResources(creatorID primitive.ObjectID, creatorRole string, roster []models.ResourceEntry) []models.ResourceEntry {
	out := []models.ResourceEntry{{
		UserID:     creatorID,
		UserRole:   creatorRole,
		IsApproved: true,
		Status:     models.StatusActive,
	}}
	for _, entry := range roster {
		if entry.UserID == creatorID {
			continue
		}
		if entry.Status == "" {
			if entry.IsApproved {
				entry.Status = models.StatusActive
			} else {
				entry.Status = models.StatusPending
			}
		}
		out = append(out, entry)
	}
	return out
}

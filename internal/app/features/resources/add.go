// internal/app/features/resources/add.go
package resources

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

type addResourceInput struct {
	Email         string   `json:"email"`
	Message       string   `json:"message"`
	ProjectID     string   `json:"projectId"`
	SubSectionIDs []string `json:"subSectionIds"`
	Role          string   `json:"role"`
}

func (in addResourceInput) validate() map[string]string {
	fields := map[string]string{}
	if in.Email == "" {
		fields["email"] = "required"
	}
	if in.ProjectID == "" {
		fields["projectId"] = "required"
	}
	switch in.Role {
	case models.RoleConsultant, models.RoleProjectAdmin:
	default:
		fields["role"] = "must be consultant or projectAdmin"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// HandleAdd invites an email to a project as pending.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var in addResourceInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if fields := in.validate(); fields != nil {
		apierror.Render(w, h.Log, apierror.Validation(fields))
		return
	}

	h.Log.Debug("new request to add resources",
		zap.String("email", in.Email),
		zap.String("project_id", in.ProjectID),
		zap.String("role", in.Role))

	projectID, err := httpjson.ID("projectId", in.ProjectID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	addedBy, err := httpjson.ID("sub", u.ID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	subSectionIDs := make([]primitive.ObjectID, 0, len(in.SubSectionIDs))
	for _, raw := range in.SubSectionIDs {
		id, err := httpjson.ID("subSectionIds", raw)
		if err != nil {
			apierror.Render(w, h.Log, err)
			return
		}
		subSectionIDs = append(subSectionIDs, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = h.Engine.AddResource(ctx, membership.AddResourceInput{
		ProjectID:     projectID,
		Email:         in.Email,
		Role:          in.Role,
		Message:       in.Message,
		SubSectionIDs: subSectionIDs,
		AddedBy:       addedBy,
	})
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]string{
		"message": "The recipient has been invited as per your request",
	})
}

// internal/app/features/resources/subsection.go
package resources

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
	"github.com/ktguru/project-service/internal/domain/models"
)

type addInSubSectionInput struct {
	SubSectionID string `json:"subSectionId"`
	UserID       string `json:"userId"`
	Role         string `json:"role"`
}

// HandleAddInSubSection pulls an approved project member into one
// subsection, active immediately.
func (h *Handler) HandleAddInSubSection(w http.ResponseWriter, r *http.Request) {
	var in addInSubSectionInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if in.Role == "" {
		in.Role = models.RoleConsultant
	}

	subSectionID, err := httpjson.ID("subSectionId", in.SubSectionID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	userID, err := httpjson.ID("userId", in.UserID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	view, err := h.Engine.AddToSubSection(ctx, subSectionID, userID, in.Role)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, map[string]interface{}{
		"message": "User added to project successfully",
		"data":    view,
	})
}

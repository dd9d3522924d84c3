// internal/app/features/subsections/update.go
package subsections

import (
	"context"
	"net/http"

	"github.com/ktguru/project-service/internal/app/store/subsections"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

type updateSubSectionInput struct {
	ProjectName string `json:"projectName"`
	ProjectDesc string `json:"projectDesc"`
	Technology  string `json:"technology"`
}

// HandleUpdate changes a subsection's descriptive fields. Renames re-check
// name uniqueness within the parent project.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.IDParam(r, "id")
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	var in updateSubSectionInput
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

	sub, err := h.SubSections.Update(ctx, id, in.ProjectName, in.ProjectDesc, in.Technology)
	if err == subsectionstore.ErrDuplicateName {
		apierror.Render(w, h.Log, apierror.New(apierror.KindAlreadyMember,
			"A subsection named "+in.ProjectName+" already exists. Please select a different name."))
		return
	}
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if sub == nil {
		apierror.Render(w, h.Log, apierror.New(apierror.KindNotFound, "Sub Section does not exist."))
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]interface{}{
		"data":    sub,
		"message": "Project updated successfully",
	})
}

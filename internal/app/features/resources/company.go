// internal/app/features/resources/company.go
package resources

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/membership"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

type addCompanyAdminInput struct {
	Email     string `json:"email"`
	CompanyID string `json:"companyId"`
	Message   string `json:"message"`
}

// HandleAddCompanyAdmin invites an email as companyAdmin across the whole
// company. Enterprise plans only.
func (h *Handler) HandleAddCompanyAdmin(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var in addCompanyAdminInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if in.Email == "" || in.CompanyID == "" {
		apierror.Render(w, h.Log, apierror.Validation(map[string]string{
			"email": "required", "companyId": "required",
		}))
		return
	}

	h.Log.Debug("new request to add company admin",
		zap.String("email", in.Email),
		zap.String("company_id", in.CompanyID))

	companyID, err := httpjson.ID("companyId", in.CompanyID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	addedBy, err := httpjson.ID("sub", u.ID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = h.Engine.AddCompanyAdmin(ctx, membership.AddCompanyAdminInput{
		CompanyID: companyID,
		Email:     in.Email,
		Message:   in.Message,
		AddedBy:   addedBy,
	})
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, map[string]string{
		"message": "The recipient has been invited as per your request",
	})
}

type removeFromCompanyInput struct {
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
}

// HandleRemoveFromCompany ends a user's membership everywhere in a company.
func (h *Handler) HandleRemoveFromCompany(w http.ResponseWriter, r *http.Request) {
	var in removeFromCompanyInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	companyID, err := httpjson.ID("companyId", in.CompanyID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	userID, err := httpjson.ID("userId", in.UserID)
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Engine.RemoveFromCompany(ctx, companyID, userID); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{
		"message": "The user remove from company",
	})
}

// internal/app/features/resources/tokens.go
package resources

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ktguru/project-service/internal/app/membership"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/app/system/httpjson"
	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

type signupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// HandleSignup completes onboarding for a fresh invitee: profile, account,
// then approval wherever the token grants.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var in signupInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	if in.FirstName == "" || in.Password == "" {
		apierror.Render(w, h.Log, apierror.Validation(map[string]string{
			"firstName": "required", "password": "required",
		}))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Engine.SignupViaToken(ctx, token, membership.SignupInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  in.Password,
	})
	if err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Done!",
	})
}

// HandleVerify accepts an invitation for an existing account.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Engine.VerifyViaToken(ctx, token); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Done!",
	})
}

// HandleDecline turns an invitation down and notifies the inviter.
func (h *Handler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Engine.DeclineViaToken(ctx, token); err != nil {
		apierror.Render(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Declined invitation",
	})
}

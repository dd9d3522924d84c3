// internal/app/features/resources/routes.go
package resources

import (
	"github.com/go-chi/chi/v5"

	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/domain/models"
)

func Routes(h *Handler, v *auth.Verifier) chi.Router {
	r := chi.NewRouter()

	manage := auth.RequireRole(h.Log,
		models.RoleCompany, models.RoleCompanyAdmin, models.RoleProjectAdmin)

	r.Group(func(pr chi.Router) {
		pr.Use(v.Authenticate)
		pr.Use(manage)

		// INVITE to a project (optionally into subsections)
		pr.Post("/", h.HandleAdd)

		// LIST a project's raw resource entries
		pr.Get("/{id}", h.HandleList)

		// CONSOLIDATED view of one user's standing on a project
		pr.Post("/detail", h.HandleDetail)

		// SUBSECTION membership for an already-approved member
		pr.Post("/add-in-subsection", h.HandleAddInSubSection)

		// REMOVE from a project or from one subsection
		pr.Post("/remove", h.HandleRemove)

		// COMPANY-WIDE admin membership
		pr.Post("/add-company-admin", h.HandleAddCompanyAdmin)
		pr.Post("/remove-company", h.HandleRemoveFromCompany)

		// APPROVED roster of a project or subsection
		pr.Post("/get-resource", h.HandleApprovedForModel)
	})

	// Token flows are reached from invitation mails, before the user has
	// a session.
	r.Post("/signup/{token}", h.HandleSignup)
	r.Get("/verify/{token}", h.HandleVerify)
	r.Get("/decline/{token}", h.HandleDecline)

	return r
}

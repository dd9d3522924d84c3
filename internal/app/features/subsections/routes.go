// internal/app/features/subsections/routes.go
package subsections

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

		pr.With(manage).Post("/", h.HandleCreate)
		pr.With(manage).Patch("/{id}", h.HandleUpdate)

		// LIST subsections of a project where the caller is approved
		pr.Get("/{id}", h.HandleListForProject)

		// VIEW one subsection
		pr.Get("/single/{id}", h.HandleGet)
	})

	return r
}

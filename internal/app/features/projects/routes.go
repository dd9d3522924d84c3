// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"

	"github.com/ktguru/project-service/internal/app/system/auth"
	"github.com/ktguru/project-service/internal/domain/models"
)

func Routes(h *Handler, v *auth.Verifier) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(v.Authenticate)

		// CREATE / UPDATE are tenant-owner operations
		pr.With(auth.RequireRole(h.Log, models.RoleCompany, models.RoleCompanyAdmin)).
			Post("/", h.HandleCreate)
		pr.With(auth.RequireRole(h.Log, models.RoleCompany, models.RoleCompanyAdmin)).
			Patch("/{id}", h.HandleUpdate)

		// LIST projects where the caller is an approved member
		pr.Get("/", h.HandleList)

		// VIEW
		pr.Get("/{id}", h.HandleGet)
	})

	return r
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/clients/identity"
	"github.com/ktguru/project-service/internal/app/clients/subscription"
	"github.com/ktguru/project-service/internal/app/events"
	healthfeature "github.com/ktguru/project-service/internal/app/features/health"
	projectsfeature "github.com/ktguru/project-service/internal/app/features/projects"
	resourcesfeature "github.com/ktguru/project-service/internal/app/features/resources"
	subsectionsfeature "github.com/ktguru/project-service/internal/app/features/subsections"
	"github.com/ktguru/project-service/internal/app/membership"
	projectstore "github.com/ktguru/project-service/internal/app/store/projects"
	subsectionstore "github.com/ktguru/project-service/internal/app/store/subsections"
	usercachestore "github.com/ktguru/project-service/internal/app/store/usercache"
	"github.com/ktguru/project-service/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Stores, sibling-service clients, the
// event emitter, and the membership engine are assembled here and handed to
// the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	projects := projectstore.New(deps.MongoDatabase)
	subsections := subsectionstore.New(deps.MongoDatabase)
	users := usercachestore.New(deps.MongoDatabase)

	identityClient := identity.New(appCfg.IdentityURL, appCfg.ClientTimeout)
	subscriptionClient := subscription.New(appCfg.SubscriptionURL, appCfg.ClientTimeout)

	emitter := events.New(deps.Publisher, users, logger)
	engine := membership.NewEngine(projects, subsections, users, identityClient, subscriptionClient, emitter, logger)

	verifier := auth.NewVerifier(appCfg.AuthSecret, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	projectsHandler := projectsfeature.NewHandler(projects, identityClient, subscriptionClient, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler, verifier))

	subsectionsHandler := subsectionsfeature.NewHandler(subsections, projects, logger)
	r.Mount("/sub-sections", subsectionsfeature.Routes(subsectionsHandler, verifier))

	resourcesHandler := resourcesfeature.NewHandler(engine, logger)
	r.Mount("/resources", resourcesfeature.Routes(resourcesHandler, verifier))

	return r, nil
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	activitiesfeature "github.com/mergington/activities/internal/app/features/activities"
	authapifeature "github.com/mergington/activities/internal/app/features/authapi"
	healthfeature "github.com/mergington/activities/internal/app/features/health"
	"github.com/mergington/activities/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The router mounts the activity catalog,
// the account endpoints, the health check, and the static frontend.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static frontend with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/static/index.html", http.StatusTemporaryRedirect)
	})

	// Activity catalog and rosters
	activitiesHandler := activitiesfeature.NewHandler(deps.Registry, logger)
	r.Mount("/activities", activitiesfeature.Routes(activitiesHandler))

	// Accounts: login, registration, password reset, session checks
	authHandler := authapifeature.NewHandler(deps.Registry, deps.ResetTokens, sessionMgr, appCfg.AllowedEmailDomain, logger)
	r.Mount("/auth", authapifeature.Routes(authHandler))

	return r, nil
}

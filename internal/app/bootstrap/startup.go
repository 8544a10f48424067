// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/mergington/activities/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. The
// collections are seeded with the initial activities, teacher accounts, and
// student accounts, but only if they are empty, so existing data is never
// overwritten.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	seedCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	return deps.Registry.SeedIfEmpty(seedCtx)
}

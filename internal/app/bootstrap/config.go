// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the activities service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: db_backend, mongo_uri, etc.
//   - Environment variables: MERGINGTON_DB_BACKEND, MERGINGTON_MONGO_URI, etc.
//   - Command-line flags: --db_backend, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "db_backend", Default: "memory", Desc: "Document store backend: 'memory' or 'mongo'"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (mongo backend only)"},
	{Name: "mongo_database", Default: "mergington_high", Desc: "MongoDB database name (mongo backend only)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "mergington-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "allowed_email_domain", Default: "mergington.edu", Desc: "Email domain required for student registration"},
	{Name: "reset_token_ttl", Default: "1h", Desc: "Password reset token lifetime (e.g., 30m, 1h)"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Base URL for links in reset flows"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MERGINGTON", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		Backend:       appValues.String("db_backend"),
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		AllowedEmailDomain: appValues.String("allowed_email_domain"),
		ResetTokenTTL:      appValues.Duration("reset_token_ttl", time.Hour),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is only validated when the mongo backend is selected;
// the memory backend needs no connection configuration at all.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.Backend {
	case "memory":
		// Nothing to validate; mongo settings are ignored.
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database must be set when db_backend is 'mongo'")
		}
	default:
		return fmt.Errorf("unknown db_backend %q (expected 'memory' or 'mongo')", appCfg.Backend)
	}

	if appCfg.AllowedEmailDomain == "" {
		return fmt.Errorf("allowed_email_domain must not be empty")
	}
	if appCfg.ResetTokenTTL <= 0 {
		return fmt.Errorf("reset_token_ttl must be positive")
	}

	return nil
}

// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level, CORS). AppConfig is everything specific to this application:
// which document backend to run against, how to reach MongoDB when that
// backend is selected, session cookie settings, and the registration and
// password-reset policy knobs.
type AppConfig struct {
	// Document store backend: "memory" (self-contained, seeded in process)
	// or "mongo" (persistent).
	Backend string

	// MongoDB connection configuration, used only when Backend is "mongo".
	MongoURI      string
	MongoDatabase string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Registration policy: student accounts must use an email under this
	// domain.
	AllowedEmailDomain string

	// Password reset token lifetime.
	ResetTokenTTL time.Duration

	// Base URL for links in reset flows (e.g., "http://localhost:8080").
	BaseURL string
}

// internal/app/system/auth/auth.go
package auth

// Cookie sessions for the API. A session is established on successful
// teacher or student login and cleared on logout. The session records who
// authenticated; the session-check endpoints stay parameter-driven for
// compatibility with the original frontend, so the cookie is a convenience
// layer, not the source of truth for those endpoints.

import (
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	userIDKey   = "user_id"
	userTypeKey = "user_type"
	userRoleKey = "user_role"
)

// SessionUser is the identity carried by an authenticated session.
type SessionUser struct {
	ID       string // teacher username or student email
	UserType string // "teacher" or "student"
	Role     string // teacher accounts only: "teacher" or "admin"
}

// SessionManager wraps the cookie store and the session naming/signing
// configuration.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a SessionManager with the given signing key.
// Secure cookies should be enabled in production mode.
func NewSessionManager(key, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if len(key) < 32 {
		return nil, errors.New("session key must be at least 32 characters")
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Establish records an authenticated user in the session cookie. A stale or
// undecodable cookie is replaced with a fresh session rather than failing
// the login.
func (m *SessionManager) Establish(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error during login, using fresh session", zap.Error(err))
		}
	}

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userTypeKey] = u.UserType
	sess.Values[userRoleKey] = u.Role

	return sess.Save(r, w)
}

// Clear drops the session.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}

// Current returns the authenticated user recorded in the request's session,
// if any.
func (m *SessionManager) Current(r *http.Request) (SessionUser, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return SessionUser{}, false
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return SessionUser{}, false
	}
	u := SessionUser{}
	u.ID, _ = sess.Values[userIDKey].(string)
	u.UserType, _ = sess.Values[userTypeKey].(string)
	u.Role, _ = sess.Values[userRoleKey].(string)
	return u, u.ID != ""
}

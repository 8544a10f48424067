// internal/app/features/authapi/handler.go

// Package authapi serves the account endpoints: teacher and student login,
// student registration, the password reset flow, and the session-check
// probes the frontend polls on page load.
package authapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mergington/activities/internal/app/store/docstore"
	"github.com/mergington/activities/internal/app/store/registry"
	"github.com/mergington/activities/internal/app/store/resettoken"
	"github.com/mergington/activities/internal/app/system/auth"
	"github.com/mergington/activities/internal/app/system/authutil"
	"github.com/mergington/activities/internal/app/system/htmlsanitize"
	"github.com/mergington/activities/internal/app/system/httpjson"
	"github.com/mergington/activities/internal/app/system/timeouts"
)

// Handler holds dependencies for the auth endpoints.
type Handler struct {
	Reg         *registry.Registry
	Tokens      *resettoken.Store
	Sessions    *auth.SessionManager
	EmailDomain string // required domain for student registration
	Log         *zap.Logger
}

// NewHandler constructs an authapi Handler.
func NewHandler(reg *registry.Registry, tokens *resettoken.Store, sessions *auth.SessionManager, emailDomain string, logger *zap.Logger) *Handler {
	return &Handler{
		Reg:         reg,
		Tokens:      tokens,
		Sessions:    sessions,
		EmailDomain: emailDomain,
		Log:         logger,
	}
}

type studentRegistration struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Grade     string `json:"grade"`
	Phone     string `json:"phone"`
}

type studentLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// HandleLogin handles POST /auth/login?username=&password=.
//
// Teacher accounts predate the Argon2id rollout; their stored records are
// deterministic legacy digests, so the comparison is digest equality. The
// same 401 is returned for an unknown username and a wrong password.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")

	teacher, err := h.Reg.Teachers.Get(ctx, username)
	if err != nil {
		h.Log.Error("teacher lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if teacher == nil || teacher.String("password") != authutil.LegacyHashPassword(password) {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := h.Sessions.Establish(w, r, auth.SessionUser{
		ID:       username,
		UserType: "teacher",
		Role:     teacher.String("role"),
	}); err != nil {
		h.Log.Warn("session save failed on teacher login", zap.Error(err))
	}

	h.Log.Info("teacher logged in", zap.String("username", username))
	httpjson.Write(w, http.StatusOK, map[string]string{
		"username":     username,
		"display_name": teacher.String("display_name"),
		"role":         teacher.String("role"),
		"user_type":    "teacher",
	})
}

// HandleStudentLogin handles POST /auth/student-login with a JSON body.
// Verification dispatches on the stored record's format, so student accounts
// migrated from the legacy scheme keep working until their next password
// change.
func (h *Handler) HandleStudentLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body studentLogin
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.Reg.Students.Get(ctx, body.Email)
	if err != nil {
		h.Log.Error("student lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if student == nil || !authutil.CheckPassword(body.Password, student.String("password")) {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := h.Sessions.Establish(w, r, auth.SessionUser{
		ID:       body.Email,
		UserType: "student",
	}); err != nil {
		h.Log.Warn("session save failed on student login", zap.Error(err))
	}

	h.Log.Info("student logged in", zap.String("email", body.Email))
	httpjson.Write(w, http.StatusOK, studentProfile(body.Email, student))
}

// HandleRegister handles POST /auth/register with a JSON body.
//
// Uniqueness is enforced here with a read-before-insert; the store itself
// treats insert with an existing key as replacement. Name, grade, and phone
// fields are stripped of markup before they are stored.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body studentRegistration
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	if !strings.HasSuffix(email, "@"+h.EmailDomain) {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("Email must be from %s domain", h.EmailDomain))
		return
	}

	existing, err := h.Reg.Students.Get(ctx, email)
	if err != nil {
		h.Log.Error("student lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		httpjson.Error(w, http.StatusBadRequest, "Student with this email already exists")
		return
	}

	if err := authutil.ValidatePassword(body.Password); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := authutil.HashPassword(body.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	firstName := htmlsanitize.StripTags(body.FirstName)
	lastName := htmlsanitize.StripTags(body.LastName)
	doc := docstore.Document{
		docstore.KeyField: email,
		"first_name":      firstName,
		"last_name":       lastName,
		"password":        hash,
		"grade":           htmlsanitize.StripTags(body.Grade),
		"phone":           htmlsanitize.StripTags(body.Phone),
	}
	if _, err := h.Reg.Students.InsertOne(ctx, doc); err != nil {
		h.Log.Error("student insert failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.Log.Info("student registered", zap.String("email", email))
	httpjson.Write(w, http.StatusOK, map[string]string{
		"message":    "Student registered successfully",
		"email":      email,
		"first_name": firstName,
		"last_name":  lastName,
	})
}

// HandleForgotPassword handles POST /auth/forgot-password.
//
// The response shape never reveals whether the email has an account. When it
// does, a token is issued; delivery would be by email in production, so for
// now the token rides in the response.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body passwordResetRequest
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.Reg.Students.Get(ctx, body.Email)
	if err != nil {
		h.Log.Error("student lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Reset request failed")
		return
	}
	if student == nil {
		httpjson.Write(w, http.StatusOK, map[string]string{
			"message": "If the email exists, a reset token will be sent",
		})
		return
	}

	token := h.Tokens.Issue(body.Email)
	h.Log.Info("password reset token issued", zap.String("email", body.Email))

	// TODO: deliver the token by email once an SMTP path exists; until then
	// the demo frontend reads it from the response.
	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "Password reset token generated",
		"token":   token,
		"note":    "In production, this token would be sent to your email",
	})
}

// HandleResetPassword handles POST /auth/reset-password.
//
// The token is consumed only after the new password has been stored, so a
// failed write leaves the token usable for a retry.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body passwordReset
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email, ok := h.Tokens.Resolve(body.Token)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	if err := authutil.ValidatePassword(body.NewPassword); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := authutil.HashPassword(body.NewPassword)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	modified, err := h.Reg.Students.UpdateOne(ctx, email, docstore.Set("password", hash))
	if err != nil {
		h.Log.Error("password update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}
	if modified == 0 {
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	h.Tokens.Consume(body.Token)
	h.Log.Info("password reset", zap.String("email", email))
	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "Password reset successfully",
	})
}

// HandleCheckSession handles GET /auth/check-session?username=.
func (h *Handler) HandleCheckSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	username := r.URL.Query().Get("username")
	teacher, err := h.Reg.Teachers.Get(ctx, username)
	if err != nil {
		h.Log.Error("teacher lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Session check failed")
		return
	}
	if teacher == nil {
		httpjson.Error(w, http.StatusNotFound, "Teacher not found")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"username":     username,
		"display_name": teacher.String("display_name"),
		"role":         teacher.String("role"),
		"user_type":    "teacher",
	})
}

// HandleCheckStudentSession handles GET /auth/check-student-session?email=.
func (h *Handler) HandleCheckStudentSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := r.URL.Query().Get("email")
	student, err := h.Reg.Students.Get(ctx, email)
	if err != nil {
		h.Log.Error("student lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Session check failed")
		return
	}
	if student == nil {
		httpjson.Error(w, http.StatusNotFound, "Student not found")
		return
	}

	httpjson.Write(w, http.StatusOK, studentProfile(email, student))
}

// studentProfile is the password-free projection returned by student login
// and session checks.
func studentProfile(email string, student docstore.Document) map[string]string {
	return map[string]string{
		"email":      email,
		"first_name": student.String("first_name"),
		"last_name":  student.String("last_name"),
		"grade":      student.String("grade"),
		"phone":      student.String("phone"),
		"user_type":  "student",
	}
}

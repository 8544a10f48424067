// internal/app/features/authapi/routes.go
package authapi

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the account endpoints; it is mounted
// under /auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLogin)
	r.Post("/student-login", h.HandleStudentLogin)
	r.Post("/register", h.HandleRegister)
	r.Post("/forgot-password", h.HandleForgotPassword)
	r.Post("/reset-password", h.HandleResetPassword)
	r.Get("/check-session", h.HandleCheckSession)
	r.Get("/check-student-session", h.HandleCheckStudentSession)
	return r
}

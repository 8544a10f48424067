// internal/app/features/activities/routes.go
package activities

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the activity endpoints; it is mounted
// under /activities.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/days", h.ServeDays)
	r.Post("/{name}/signup", h.HandleSignup)
	r.Post("/{name}/unregister", h.HandleUnregister)
	return r
}

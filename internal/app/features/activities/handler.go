// internal/app/features/activities/handler.go

// Package activities serves the extracurricular activity catalog: listing
// with schedule filters, the unique-days aggregation, and teacher-authorized
// signup and unregister.
package activities

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mergington/activities/internal/app/store/docstore"
	"github.com/mergington/activities/internal/app/store/registry"
	"github.com/mergington/activities/internal/app/system/httpjson"
	"github.com/mergington/activities/internal/app/system/timeouts"
)

// Handler holds dependencies for the activity endpoints.
type Handler struct {
	Reg *registry.Registry
	Log *zap.Logger
}

// NewHandler constructs an activities Handler.
func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{Reg: reg, Log: logger}
}

// ServeList handles GET /activities.
//
// The response is a JSON object keyed by activity name. Optional query
// parameters narrow the result: day must appear in the activity's scheduled
// days, start_time is a lower bound on the start, end_time an upper bound on
// the end (times are HH:MM, so lexicographic comparison is chronological).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var pred docstore.Predicate
	q := r.URL.Query()
	if day := q.Get("day"); day != "" {
		pred = append(pred, docstore.In("schedule_details.days", day))
	}
	if start := q.Get("start_time"); start != "" {
		pred = append(pred, docstore.Gte("schedule_details.start_time", start))
	}
	if end := q.Get("end_time"); end != "" {
		pred = append(pred, docstore.Lte("schedule_details.end_time", end))
	}

	docs, err := h.Reg.Activities.Find(ctx, pred)
	if err != nil {
		h.Log.Error("list activities failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load activities")
		return
	}

	result := make(map[string]docstore.Document, len(docs))
	for _, doc := range docs {
		name := doc.String(docstore.KeyField)
		delete(doc, docstore.KeyField)
		result[name] = doc
	}
	httpjson.Write(w, http.StatusOK, result)
}

// ServeDays handles GET /activities/days, returning the sorted unique day
// names across all activity schedules.
func (h *Handler) ServeDays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	days, err := h.Reg.Activities.DistinctValues(ctx, "schedule_details.days")
	if err != nil {
		h.Log.Error("aggregate activity days failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load days")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string][]string{"days": days})
}

// HandleSignup handles POST /activities/{name}/signup?email=&teacher_username=.
//
// Only a known teacher may add a student. Duplicate signups and signups past
// max_participants are rejected before any write.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")

	activity, ok := h.requireTeacherAndActivity(ctx, w, r, name)
	if !ok {
		return
	}

	participants := activity.StringSlice("participants")
	for _, p := range participants {
		if p == email {
			httpjson.Error(w, http.StatusBadRequest, "Student is already signed up")
			return
		}
	}
	if max, ok := activity.Int("max_participants"); ok && len(participants) >= max {
		httpjson.Error(w, http.StatusBadRequest, "Maximum number of participants reached")
		return
	}

	if _, err := h.Reg.Activities.UpdateOne(ctx, name, docstore.Push("participants", email)); err != nil {
		h.Log.Error("signup update failed", zap.String("activity", name), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to sign up student")
		return
	}

	h.Log.Info("student signed up",
		zap.String("activity", name),
		zap.String("email", email))
	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

// HandleUnregister handles POST /activities/{name}/unregister?email=&teacher_username=.
func (h *Handler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")

	activity, ok := h.requireTeacherAndActivity(ctx, w, r, name)
	if !ok {
		return
	}

	registered := false
	for _, p := range activity.StringSlice("participants") {
		if p == email {
			registered = true
			break
		}
	}
	if !registered {
		httpjson.Error(w, http.StatusBadRequest, "Student is not signed up for this activity")
		return
	}

	if _, err := h.Reg.Activities.UpdateOne(ctx, name, docstore.Pull("participants", email)); err != nil {
		h.Log.Error("unregister update failed", zap.String("activity", name), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to unregister student")
		return
	}

	h.Log.Info("student unregistered",
		zap.String("activity", name),
		zap.String("email", email))
	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

// requireTeacherAndActivity runs the shared signup/unregister preamble:
// the teacher_username query parameter must name an existing teacher (401
// otherwise) and the activity must exist (404 otherwise). On failure the
// response has already been written.
func (h *Handler) requireTeacherAndActivity(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) (docstore.Document, bool) {
	teacherUsername := r.URL.Query().Get("teacher_username")
	teacher, err := h.Reg.Teachers.Get(ctx, teacherUsername)
	if err != nil {
		h.Log.Error("teacher lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to verify teacher")
		return nil, false
	}
	if teacher == nil {
		httpjson.Error(w, http.StatusUnauthorized, "Teacher authentication required")
		return nil, false
	}

	activity, err := h.Reg.Activities.Get(ctx, name)
	if err != nil {
		h.Log.Error("activity lookup failed", zap.String("activity", name), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load activity")
		return nil, false
	}
	if activity == nil {
		httpjson.Error(w, http.StatusNotFound, "Activity not found")
		return nil, false
	}
	return activity, true
}

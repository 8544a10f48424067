// internal/testutil/fixtures.go

// Package testutil provides shared fixtures for handler and store tests:
// a seeded in-memory registry and chi request helpers. Nothing here touches
// MongoDB, so the full test suite runs without external services.
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mergington/activities/internal/app/store/registry"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handler methods directly instead of
// going through a router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewSeededRegistry returns an in-memory registry populated with the initial
// activities, teacher accounts, and student accounts.
func NewSeededRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.NewMemory(zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := reg.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("seed registry: %v", err)
	}
	return reg
}

// TestContext returns a context suitable for store calls in tests.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

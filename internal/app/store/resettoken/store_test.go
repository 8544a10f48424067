// internal/app/store/resettoken/store_test.go
package resettoken

import (
	"testing"
	"time"
)

// fixedClock returns a now func pinned to a mutable instant.
func fixedClock(at *time.Time) func() time.Time {
	return func() time.Time { return *at }
}

func TestIssue_ResolveRoundTrip(t *testing.T) {
	s := New(time.Hour)

	token := s.Issue("alex@mergington.edu")
	if token == "" {
		t.Fatalf("Issue returned empty token")
	}

	subject, ok := s.Resolve(token)
	if !ok || subject != "alex@mergington.edu" {
		t.Errorf("Resolve = %q, %v", subject, ok)
	}

	// Resolve is not consumption; the token stays valid.
	if _, ok := s.Resolve(token); !ok {
		t.Errorf("second Resolve failed; Resolve must not consume")
	}
}

func TestResolve_NeverIssuedToken(t *testing.T) {
	s := New(time.Hour)
	if _, ok := s.Resolve("never-issued"); ok {
		t.Errorf("Resolve of never-issued token reported valid")
	}
}

func TestResolve_ExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(time.Hour)
	s.now = fixedClock(&now)

	token := s.Issue("alex@mergington.edu")

	// One instant before expiry: still valid.
	now = now.Add(time.Hour - time.Nanosecond)
	if _, ok := s.Resolve(token); !ok {
		t.Errorf("token invalid just before expiry")
	}

	// At exactly expiry: invalid, and deleted as a side effect.
	now = now.Add(time.Nanosecond)
	if _, ok := s.Resolve(token); ok {
		t.Errorf("token valid at exact expiry instant")
	}

	// Rolling the clock back cannot revive it; the entry is gone.
	now = now.Add(-time.Hour)
	if _, ok := s.Resolve(token); ok {
		t.Errorf("expired token revived after clock rollback")
	}
}

func TestConsume_SingleUse(t *testing.T) {
	s := New(time.Hour)

	token := s.Issue("alex@mergington.edu")
	s.Consume(token)

	if _, ok := s.Resolve(token); ok {
		t.Errorf("consumed token still resolves")
	}

	// Consuming again, or consuming garbage, is a no-op.
	s.Consume(token)
	s.Consume("never-issued")
}

func TestIssue_MultipleOutstandingPerSubject(t *testing.T) {
	s := New(time.Hour)

	t1 := s.Issue("alex@mergington.edu")
	t2 := s.Issue("alex@mergington.edu")
	if t1 == t2 {
		t.Fatalf("two issued tokens are identical")
	}

	s.Consume(t1)

	subject, ok := s.Resolve(t2)
	if !ok || subject != "alex@mergington.edu" {
		t.Errorf("consuming one token invalidated the other: %q, %v", subject, ok)
	}
}

func TestNew_NonPositiveTTLUsesDefault(t *testing.T) {
	if got := New(0).TTL(); got != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", got, DefaultTTL)
	}
	if got := New(-time.Minute).TTL(); got != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", got, DefaultTTL)
	}
}

// internal/app/store/resettoken/store.go
package resettoken

// Lifecycle per token: absent → active (Issue) → consumed (Consume) or
// expired (time elapse, detected lazily on Resolve). There is no background
// sweep; an expired token is deleted by the Resolve that finds it.

import (
	"sync"
	"time"

	"github.com/mergington/activities/internal/app/system/authutil"
)

// DefaultTTL is how long a reset token stays valid after issuance.
const DefaultTTL = time.Hour

type entry struct {
	subject   string
	expiresAt time.Time
}

// Store maps opaque reset tokens to their subject and expiry. Multiple
// outstanding tokens per subject are permitted; issuing a new token never
// invalidates earlier ones.
type Store struct {
	mu     sync.Mutex
	tokens map[string]entry
	ttl    time.Duration
	now    func() time.Time // injectable for tests
}

// New creates a Store with the given time-to-live.
// If ttl is 0 or negative, DefaultTTL (1 hour) is used.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		tokens: make(map[string]entry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured token time-to-live.
func (s *Store) TTL() time.Duration { return s.ttl }

// Issue creates an active token for the subject and returns it.
func (s *Store) Issue(subject string) string {
	token := authutil.GenerateToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = entry{
		subject:   subject,
		expiresAt: s.now().Add(s.ttl),
	}
	return token
}

// Resolve returns the subject of an active, unexpired token. A token found
// expired is deleted as a side effect and reported absent. A token never
// issued, or already consumed, is absent.
func (s *Store) Resolve(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.tokens, token)
		return "", false
	}
	return e.subject, true
}

// Consume removes the token. Removing an absent token is not an error.
func (s *Store) Consume(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

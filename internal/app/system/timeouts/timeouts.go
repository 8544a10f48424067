// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts bound the context passed to store calls from HTTP handlers.
// The in-memory backend completes in microseconds; the values matter when the
// MongoDB backend is active.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and single-field updates
//   - Medium: filtered scans, aggregations, seeding
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
)

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple operations like single-document reads.
func Short() time.Duration { return short }

// Medium returns the timeout for moderate operations like filtered list
// queries and collection seeding.
func Medium() time.Duration { return medium }

// Package smoketest drives a running activities service through signup and
// unregister traffic and verifies the rosters it reports.
package smoketest

import "time"

// Config controls a smoke test run.
type Config struct {
	// BaseURL of the service under test, e.g. http://localhost:8000.
	BaseURL string

	// Students is the number of generated students to sign up.
	Students int

	// Workers is the number of concurrent submitters.
	Workers int

	// Timeout applies per HTTP request.
	Timeout time.Duration

	// Cleanup unregisters every generated student after verification.
	Cleanup bool

	// Verbose enables per-request logging.
	Verbose bool
}

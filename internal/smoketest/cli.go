package smoketest

import (
	"os"

	"github.com/mergington/activities/pkg/logger"
)

// SetupLogging initializes the logger for a CLI run.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return err
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Activities Smoke Test Tool
==========================

Signs generated students up against a running activities service and
verifies they appear on the rosters it reports.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -students int
        Number of generated students to sign up (default 50)
  -workers int
        Number of concurrent submitters (default 8)
  -timeout duration
        HTTP request timeout (default 10s)
  -cleanup
        Unregister every generated student after verification (default true)
  -verbose
        Enable verbose logging
  -help
        Show help
`)
}

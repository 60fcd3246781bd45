package smoketest

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
)

// assignment pairs a generated student with a target activity.
type assignment struct {
	Activity string
	Email    string
}

// Stats aggregates the outcome of a run.
type Stats struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Successful int64
	Conflicts  int64
	Failed     int64
	Verified   int
	Missing    int
}

// Run executes the complete smoke test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting activities smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.Students),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("cleanup", config.Cleanup))

	client := NewClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Discover activities and assign generated students round-robin
	activities, err := client.Activities(ctx)
	if err != nil {
		return fmt.Errorf("activity discovery failed: %w", err)
	}
	if len(activities) == 0 {
		return fmt.Errorf("service reports no activities")
	}
	assignments := generateAssignments(activities, config.Students)

	// Step 3: Submit signups concurrently
	submitSignups(ctx, client, config, assignments, stats)

	// Step 4: Verify rosters
	if err := verifyRosters(ctx, client, assignments, stats); err != nil {
		return fmt.Errorf("roster verification failed: %w", err)
	}

	// Step 5: Optional cleanup
	if config.Cleanup {
		cleanup(ctx, client, config, assignments, stats)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "smoke test completed",
		logger.Int("successful", int(stats.Successful)),
		logger.Int("conflicts", int(stats.Conflicts)),
		logger.Int("failed", int(stats.Failed)),
		logger.Int("verified", stats.Verified),
		logger.Int("missing", stats.Missing),
		logger.String("duration", stats.Duration.String()))

	if stats.Missing > 0 || stats.Failed > 0 {
		return fmt.Errorf("smoke test found problems: %d failed submissions, %d missing roster entries",
			stats.Failed, stats.Missing)
	}
	return nil
}

// generateAssignments spreads generated students across activities in a
// stable round-robin over sorted activity names.
func generateAssignments(activities map[string]model.Activity, students int) []assignment {
	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]assignment, 0, students)
	for i := 0; i < students; i++ {
		out = append(out, assignment{
			Activity: names[i%len(names)],
			Email:    fmt.Sprintf("smoke-%s@mergington.edu", uuid.NewString()[:8]),
		})
	}
	return out
}

// submitSignups fans assignments out over a worker pool.
func submitSignups(ctx context.Context, client *Client, config *Config, assignments []assignment, stats *Stats) {
	jobs := make(chan assignment)

	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range jobs {
				status, err := client.Signup(ctx, a.Activity, a.Email)
				switch {
				case err != nil:
					atomic.AddInt64(&stats.Failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "signup failed",
							logger.String("activity", a.Activity),
							logger.String("email", a.Email),
							logger.Error(err))
					}
				case status == http.StatusOK:
					atomic.AddInt64(&stats.Successful, 1)
				case status == http.StatusBadRequest:
					// Duplicate generated email; count separately.
					atomic.AddInt64(&stats.Conflicts, 1)
				default:
					atomic.AddInt64(&stats.Failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "unexpected signup status",
							logger.String("activity", a.Activity),
							logger.Int("status", status))
					}
				}
			}
		}()
	}

	for _, a := range assignments {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- a:
		}
	}
	close(jobs)
	wg.Wait()
}

// verifyRosters re-reads the registry and checks every successful signup landed.
func verifyRosters(ctx context.Context, client *Client, assignments []assignment, stats *Stats) error {
	activities, err := client.Activities(ctx)
	if err != nil {
		return err
	}

	for _, a := range assignments {
		if activities[a.Activity].HasParticipant(a.Email) {
			stats.Verified++
		} else {
			stats.Missing++
		}
	}
	return nil
}

// cleanup unregisters every generated student, leaving the registry as found.
func cleanup(ctx context.Context, client *Client, config *Config, assignments []assignment, stats *Stats) {
	for _, a := range assignments {
		status, err := client.Unregister(ctx, a.Activity, a.Email)
		if err != nil || status != http.StatusOK {
			logger.Get().Warn(ctx, "cleanup unregister failed",
				logger.String("activity", a.Activity),
				logger.String("email", a.Email),
				logger.Int("status", status))
		}
	}
}

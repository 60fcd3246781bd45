// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Service owns the activity registry and exposes the operations the HTTP
// API depends on.
type Service struct {
	mu sync.Mutex

	// Core components
	registry repository.Store

	// Configuration
	activities map[string]model.Activity

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivities seeds the registry with the given activity map instead of
// the built-in default set.
func WithActivities(activities map[string]model.Activity) Option {
	return func(s *Service) {
		if len(activities) > 0 {
			s.activities = activities
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger: nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the registry. Safe to call once per Service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activity registry service...")

	var regOpts []repository.Option
	if s.activities != nil {
		regOpts = append(regOpts, repository.WithActivities(s.activities))
	}
	s.registry = repository.NewRegistry(ctx, regOpts...)

	s.started = true
	s.publishGauges(ctx)
	s.logger.Info(ctx, "activity registry service started",
		logger.Int("activities", s.registry.Count(ctx)),
		logger.Int("participants", s.registry.ParticipantCount(ctx)),
	)

	return nil
}

// Stop shuts down the service. The registry is purely in-memory, so this
// only flips lifecycle state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "activity registry service stopped")
	s.started = false
}

// List returns the full registry keyed by activity name.
func (s *Service) List(ctx context.Context) map[string]model.Activity {
	return s.registry.List(ctx)
}

// Signup registers email for the named activity.
func (s *Service) Signup(ctx context.Context, name, email string) error {
	if err := s.registry.Signup(ctx, name, email); err != nil {
		s.logger.Debug(ctx, "signup rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return err
	}

	s.logger.Info(ctx, "signed up",
		logger.String("activity", name),
		logger.String("email", email),
	)
	s.publishGauges(ctx)
	return nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) error {
	if err := s.registry.Unregister(ctx, name, email); err != nil {
		s.logger.Debug(ctx, "unregister rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return err
	}

	s.logger.Info(ctx, "unregistered",
		logger.String("activity", name),
		logger.String("email", email),
	)
	s.publishGauges(ctx)
	return nil
}

// GetStats returns a snapshot of registry statistics for the /stats endpoint
// and the background metrics updater.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	if s.registry == nil {
		return map[string]interface{}{
			"totalActivities":   0,
			"totalParticipants": 0,
			"totalCapacity":     0,
			"fillRatio":         0.0,
		}
	}

	activities := s.registry.List(ctx)
	capacity := 0
	for _, a := range activities {
		capacity += a.MaxParticipants
	}
	participants := s.registry.ParticipantCount(ctx)

	ratio := 0.0
	if capacity > 0 {
		ratio = float64(participants) / float64(capacity)
	}

	return map[string]interface{}{
		"totalActivities":   s.registry.Count(ctx),
		"totalParticipants": participants,
		"totalCapacity":     capacity,
		"fillRatio":         ratio,
	}
}

// publishGauges pushes current registry sizes to the metrics package.
func (s *Service) publishGauges(ctx context.Context) {
	metrics.UpdateTotalActivities(s.registry.Count(ctx))
	metrics.UpdateTotalParticipants(s.registry.ParticipantCount(ctx))
}

// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
)

// registry implements Store with a mutex-guarded in-memory map.
// Activities are fixed after construction; only rosters mutate.
type registry struct {
	mu         sync.RWMutex
	activities map[string]*model.Activity
}

// Option applies a configuration option to the registry.
type Option func(*registry)

// WithActivities seeds the registry with the given activity map instead of
// the built-in default set. The map is deep-copied on construction.
func WithActivities(activities map[string]model.Activity) Option {
	return func(r *registry) {
		if len(activities) == 0 {
			return
		}
		r.activities = make(map[string]*model.Activity, len(activities))
		for name, a := range activities {
			c := a.Clone()
			r.activities[name] = &c
		}
	}
}

// NewRegistry creates an in-memory activity registry. Without options it is
// seeded with the default Mergington activity set.
func NewRegistry(_ context.Context, opts ...Option) Store {
	r := &registry{}

	for _, opt := range opts {
		opt(r)
	}

	if r.activities == nil {
		WithActivities(SeedActivities())(r)
	}

	return r
}

// List returns a deep copy of the registry.
func (r *registry) List(_ context.Context) map[string]model.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]model.Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.Clone()
	}
	return out
}

// Get returns a copy of a single activity.
func (r *registry) Get(_ context.Context, name string) (model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return model.Activity{}, fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	return a.Clone(), nil
}

// Signup appends email to the activity roster, preserving insertion order.
func (r *registry) Signup(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	if a.HasParticipant(email) {
		return fmt.Errorf("%w: %s", ErrAlreadySignedUp, email)
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Unregister removes email from the activity roster, preserving the order of
// the remaining participants.
func (r *registry) Unregister(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotSignedUp, email)
}

// Count returns the number of activities.
func (r *registry) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}

// ParticipantCount returns the total roster size across all activities.
func (r *registry) ParticipantCount(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, a := range r.activities {
		total += len(a.Participants)
	}
	return total
}

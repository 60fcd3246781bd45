// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns a deep copy of the whole registry keyed by activity name.
	List(ctx context.Context) map[string]model.Activity

	// Get returns a copy of a single activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the activity roster.
	// Returns ErrActivityNotFound for an unknown name and
	// ErrAlreadySignedUp when the email is already on the roster.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes email from the activity roster.
	// Returns ErrActivityNotFound for an unknown name and
	// ErrNotSignedUp when the email is not on the roster.
	Unregister(ctx context.Context, name, email string) error

	// Count returns the number of activities in the registry.
	Count(ctx context.Context) int

	// ParticipantCount returns the total roster size across all activities.
	ParticipantCount(ctx context.Context) int
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/pkg/metrics"
)

// Roster action path segments.
const (
	actionSignup     = "signup"
	actionUnregister = "unregister"
)

// RosterDependencies defines the interface for roster mutations.
type RosterDependencies interface {
	Signup(ctx context.Context, name, email string) error
	Unregister(ctx context.Context, name, email string) error
}

// RosterHandler handles signup and unregister requests under /activities/.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleRoster handles POST /activities/{name}/signup and
// DELETE /activities/{name}/unregister requests. The activity name is the
// URL-decoded path segment between the prefix and the action; names with
// spaces arrive percent-encoded and are decoded by the mux.
func (h *RosterHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/activities/")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		http.NotFound(w, r)
		return
	}
	name, action := path[:idx], path[idx+1:]

	email := strings.TrimSpace(r.URL.Query().Get("email"))

	switch {
	case action == actionSignup && r.Method == http.MethodPost:
		h.signup(w, r, name, email)
	case action == actionUnregister && r.Method == http.MethodDelete:
		h.unregister(w, r, name, email)
	default:
		http.NotFound(w, r)
	}
}

func (h *RosterHandler) signup(w http.ResponseWriter, r *http.Request, name, email string) {
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "Missing email query parameter")
		return
	}
	if err := h.deps.Signup(r.Context(), name, email); err != nil {
		h.writeRosterError(w, actionSignup, err)
		return
	}
	metrics.RecordSignup()
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (h *RosterHandler) unregister(w http.ResponseWriter, r *http.Request, name, email string) {
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "Missing email query parameter")
		return
	}
	if err := h.deps.Unregister(r.Context(), name, email); err != nil {
		h.writeRosterError(w, actionUnregister, err)
		return
	}
	metrics.RecordUnregister()
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

// writeRosterError translates registry sentinels into the wire contract:
// unknown activity -> 404, roster conflicts -> 400, everything else -> 500.
func (h *RosterHandler) writeRosterError(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		metrics.RecordRosterRejection(operation, "activity_not_found")
		writeDetail(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrAlreadySignedUp):
		metrics.RecordRosterRejection(operation, "already_signed_up")
		writeDetail(w, http.StatusBadRequest, "Student is already signed up")
	case errors.Is(err, repository.ErrNotSignedUp):
		metrics.RecordRosterRejection(operation, "not_signed_up")
		writeDetail(w, http.StatusBadRequest, "Student is not signed up for this activity")
	default:
		metrics.RecordRosterRejection(operation, "internal_error")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

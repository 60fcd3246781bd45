// Package model contains domain models passed between layers.
package model

// Activity represents an extracurricular offering and its roster.
// JSON tags mirror the wire shape of GET /activities; koanf tags allow
// seeding the registry from a YAML roster file.
type Activity struct {
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// HasParticipant reports whether email is already on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate shared roster state.
// Participants is never nil on the copy; an empty roster marshals as [].
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// Package uuid provides UUID v7 generation for invocation ids.
// UUID v7 is sortable by timestamp, so log lines order naturally by id.
package uuid

import "github.com/google/uuid"

// UUID is a RFC 9562 identifier.
type UUID = uuid.UUID

// NewV7 generates a new UUID v7. If the random source fails it falls back to
// a v4 UUID, which is still unique but not time-ordered.
func NewV7() UUID {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return u
}

// NewString returns NewV7 in canonical string form.
func NewString() string {
	return NewV7().String()
}

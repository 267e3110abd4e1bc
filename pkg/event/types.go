package event

import (
	"fmt"
)

// Event is a single Nostr-shaped event record.
// Events are treated as immutable once received; no perch operation modifies one in place.
type Event struct {
	ID        string `json:"id"`         // Hex event ID, owned by the transport layer
	PubKey    string `json:"pubkey"`     // Hex public key of the author
	CreatedAt *int64 `json:"created_at"` // Unix seconds; nil when the source omitted it
	Kind      int    `json:"kind"`       // Semantic type, opaque to perch
	Tags      []Tag  `json:"tags"`       // Ordered tag list
	Content   string `json:"content"`    // Free-form content
	Sig       string `json:"sig"`        // Signature, never verified here
}

// Tag is a single event tag, e.g. ["d", "my-article"] or ["t", "nostr"].
type Tag []string

// Key returns the tag name, or "" for an empty tag.
func (t Tag) Key() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Value returns the first tag value, or "" if the tag carries none.
func (t Tag) Value() string {
	if len(t) < 2 {
		return ""
	}
	return t[1]
}

// Timestamp returns created_at and whether the event carries one.
func (e *Event) Timestamp() (int64, bool) {
	if e == nil || e.CreatedAt == nil {
		return 0, false
	}
	return *e.CreatedAt, true
}

// TagValue returns the value of the first tag named key.
func (e *Event) TagValue(key string) (string, bool) {
	for _, tag := range e.Tags {
		if tag.Key() == key {
			return tag.Value(), true
		}
	}
	return "", false
}

// Validate checks the fields perch depends on.
// Only the kind is mandatory; a missing created_at is reported by PickNewer instead.
func (e *Event) Validate() error {
	if e.Kind < 0 {
		return fmt.Errorf("invalid kind: must be >= 0, got %d", e.Kind)
	}

	for i, tag := range e.Tags {
		if len(tag) == 0 {
			return fmt.Errorf("invalid tag at index %d: tag cannot be empty", i)
		}
	}

	return nil
}

// At returns a created_at value for building events in code and tests.
func At(seconds int64) *int64 {
	return &seconds
}

// EventKind returns the kind, or -1 for a nil event.
// It satisfies registry.Kinded.
func (e *Event) EventKind() int {
	if e == nil {
		return -1
	}
	return e.Kind
}

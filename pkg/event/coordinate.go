package event

import (
	"errors"
	"fmt"
)

// ErrNotReplaceable is returned by Coordinate for kinds that are never replaced.
var ErrNotReplaceable = errors.New("kind is not replaceable")

// Coordinate returns the identity under which versions of a replaceable event are grouped.
//
//	replaceable kinds: "<kind>:<pubkey>"
//	addressable kinds: "<kind>:<pubkey>:<d-tag>" (missing d tag means "")
func Coordinate(e *Event) (string, error) {
	if e == nil {
		return "", fmt.Errorf("event cannot be nil")
	}

	if e.PubKey == "" {
		return "", fmt.Errorf("event %s: pubkey is required for a coordinate", e.ID)
	}

	switch {
	case IsReplaceable(e.Kind):
		return fmt.Sprintf("%d:%s", e.Kind, e.PubKey), nil
	case IsAddressable(e.Kind):
		d, _ := e.TagValue("d")
		return fmt.Sprintf("%d:%s:%s", e.Kind, e.PubKey, d), nil
	default:
		return "", fmt.Errorf("kind %d: %w", e.Kind, ErrNotReplaceable)
	}
}

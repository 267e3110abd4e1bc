package event

import (
	"errors"
	"fmt"
)

// ErrMissingTimestamp is matched by every *MissingTimestampError.
var ErrMissingTimestamp = errors.New("missing created_at")

// MissingTimestampError reports which PickNewer argument had no usable created_at.
type MissingTimestampError struct {
	Position string // "first" or "second"
	EventID  string // ID of the offending event, empty if the event itself was nil
}

func (e *MissingTimestampError) Error() string {
	if e.EventID == "" {
		return fmt.Sprintf("%s event has no created_at", e.Position)
	}
	return fmt.Sprintf("%s event %s has no created_at", e.Position, e.EventID)
}

// Is lets errors.Is match against ErrMissingTimestamp.
func (e *MissingTimestampError) Is(target error) bool {
	return target == ErrMissingTimestamp
}

// PickNewer returns whichever of a and b should be kept as the authoritative
// copy of a replaceable event. The caller must already know both describe the
// same logical object.
//
// The event with the strictly greater created_at wins; on equal timestamps b
// wins. The result is always one of the two arguments, and neither is modified.
// A nil event or a nil created_at returns *MissingTimestampError.
func PickNewer(a, b *Event) (*Event, error) {
	aTime, ok := a.Timestamp()
	if !ok {
		return nil, missingTimestamp("first", a)
	}

	bTime, ok := b.Timestamp()
	if !ok {
		return nil, missingTimestamp("second", b)
	}

	if aTime > bTime {
		return a, nil
	}
	return b, nil
}

func missingTimestamp(position string, e *Event) error {
	err := &MissingTimestampError{Position: position}
	if e != nil {
		err.EventID = e.ID
	}
	return err
}

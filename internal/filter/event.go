package filter

import (
	"github.com/dyluth/perch/pkg/event"
)

// Criteria defines filtering criteria for events.
// All filters are ANDed together - an event must match ALL criteria to pass.
type Criteria struct {
	SinceSeconds *int64 // Unix seconds, nil = no filter
	UntilSeconds *int64 // Unix seconds, nil = no filter
	Kinds        []int  // Any of these kinds, empty = no filter
	PubKey       string // Exact author match, empty = no filter
}

// Matches returns true if the event matches all filter criteria.
// Events without created_at never match a time bound.
func (c *Criteria) Matches(ev *event.Event) bool {
	if ev == nil {
		return false
	}

	if c.SinceSeconds != nil || c.UntilSeconds != nil {
		ts, ok := ev.Timestamp()
		if !ok {
			return false
		}
		if c.SinceSeconds != nil && ts < *c.SinceSeconds {
			return false
		}
		if c.UntilSeconds != nil && ts > *c.UntilSeconds {
			return false
		}
	}

	if len(c.Kinds) > 0 {
		found := false
		for _, k := range c.Kinds {
			if ev.Kind == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.PubKey != "" && ev.PubKey != c.PubKey {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.SinceSeconds != nil ||
		c.UntilSeconds != nil ||
		len(c.Kinds) > 0 ||
		c.PubKey != ""
}

// Apply returns the events matching c, preserving order.
func (c *Criteria) Apply(events []*event.Event) []*event.Event {
	if !c.HasFilters() {
		return events
	}

	var out []*event.Event
	for _, ev := range events {
		if c.Matches(ev) {
			out = append(out, ev)
		}
	}
	return out
}

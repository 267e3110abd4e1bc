package registry

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Handler is an opaque reference to a renderer. The registry stores and returns
// it but never inspects or invokes it.
type Handler any

// Kinded is anything that carries an event kind. *event.Event satisfies it.
// A negative kind never matches a registration.
type Kinded interface {
	EventKind() int
}

// Registration is one candidate handler for a category.
type Registration struct {
	ID       string   `json:"id"`              // UUID assigned when registered
	Kinds    []int    `json:"kinds,omitempty"` // Kinds matched; nil for fallbacks
	Handler  Handler  `json:"handler"`         // Opaque handler reference
	Priority int      `json:"priority"`        // Higher wins
	Category Category `json:"category"`        // Rendering concern
	Fallback bool     `json:"fallback"`        // Matches any kind without a specific candidate
	Seq      uint64   `json:"seq"`             // Registration order, starts at 1
}

// Registrar is the write side of the registry handed to component setup functions.
type Registrar interface {
	RegisterKindHandler(kinds []int, h Handler, priority int, c Category) error
	RegisterFallback(h Handler, priority int, c Category) error
}

// SetupFunc registers one component's handlers. The host application runs setup
// functions explicitly and in order; nothing registers itself at import time.
type SetupFunc func(r Registrar) error

// table holds the ranked candidates of a single category.
// Every slice is ordered best first: highest priority, then most recent.
type table struct {
	byKind    map[int][]*Registration
	fallbacks []*Registration
}

// Registry maps (kind, category) to ranked candidate handlers.
//
// Registrations are append-only. The winner for a (kind, category) is the
// candidate with the highest priority; among equal priorities the most recent
// registration wins. Kinds without a specific candidate fall back to the
// category's best fallback.
//
// The registry is safe for concurrent use. Registration takes a write lock and
// resolution a read lock; candidates are ranked at insert time so a resolution
// is a map lookup.
type Registry struct {
	mu     sync.RWMutex
	tables map[Category]*table
	all    []*Registration
	seq    uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tables: make(map[Category]*table),
	}
}

// RegisterKindHandler adds h as a candidate for every kind in kinds under category c.
// kinds must be non-empty and non-negative; duplicates are collapsed. Returns
// *InvalidRegistrationError if the call is rejected, in which case nothing is recorded.
func (r *Registry) RegisterKindHandler(kinds []int, h Handler, priority int, c Category) error {
	if len(kinds) == 0 {
		return invalid("kinds", "kind set cannot be empty (use RegisterFallback for kind-wide handlers)")
	}

	if err := validateCommon(h, priority, c); err != nil {
		return err
	}

	unique := make([]int, 0, len(kinds))
	seen := make(map[int]bool, len(kinds))
	for _, kind := range kinds {
		if kind < 0 {
			return invalid("kinds", "kind must be >= 0, got %d", kind)
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		unique = append(unique, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg := r.newRegistration(h, priority, c)
	reg.Kinds = unique

	t := r.tableFor(c)
	for _, kind := range unique {
		t.byKind[kind] = insertRanked(t.byKind[kind], reg)
	}

	return nil
}

// RegisterFallback adds h as a kind-wide candidate under category c.
// Several fallbacks may coexist; they are ranked the same way as kind handlers.
func (r *Registry) RegisterFallback(h Handler, priority int, c Category) error {
	if err := validateCommon(h, priority, c); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg := r.newRegistration(h, priority, c)
	reg.Fallback = true

	t := r.tableFor(c)
	t.fallbacks = insertRanked(t.fallbacks, reg)

	return nil
}

// Resolve returns the handler that should render ev for category c.
// Returns (nil, false) when nothing matches; that is a normal outcome, not an error.
func (r *Registry) Resolve(ev Kinded, c Category) (Handler, bool) {
	if ev == nil {
		return nil, false
	}
	return r.ResolveKind(ev.EventKind(), c)
}

// ResolveKind is Resolve for a bare kind value.
func (r *Registry) ResolveKind(kind int, c Category) (Handler, bool) {
	if kind < 0 {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[c]
	if !ok {
		return nil, false
	}

	if candidates := t.byKind[kind]; len(candidates) > 0 {
		return candidates[0].Handler, true
	}

	if len(t.fallbacks) > 0 {
		return t.fallbacks[0].Handler, true
	}

	return nil, false
}

// ResolveAll resolves ev for every category independently.
// Categories without a handler are omitted from the result.
func (r *Registry) ResolveAll(ev Kinded) map[Category]Handler {
	resolved := make(map[Category]Handler)
	for _, c := range AllCategories() {
		if h, ok := r.Resolve(ev, c); ok {
			resolved[c] = h
		}
	}
	return resolved
}

// Candidates returns every registration that could render kind under c, in
// rank order: kind-specific candidates first, then fallbacks. The first entry
// is the one Resolve picks.
func (r *Registry) Candidates(kind int, c Category) []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[c]
	if !ok {
		return nil
	}

	var out []Registration
	if kind >= 0 {
		for _, reg := range t.byKind[kind] {
			out = append(out, reg.snapshot())
		}
	}
	for _, reg := range t.fallbacks {
		out = append(out, reg.snapshot())
	}
	return out
}

// Registrations returns a copy of every registration in registration order.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration, 0, len(r.all))
	for _, reg := range r.all {
		out = append(out, reg.snapshot())
	}
	return out
}

// Len returns the number of registrations recorded.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// newRegistration allocates the next registration. Caller holds the write lock.
func (r *Registry) newRegistration(h Handler, priority int, c Category) *Registration {
	r.seq++
	reg := &Registration{
		ID:       uuid.New().String(),
		Handler:  h,
		Priority: priority,
		Category: c,
		Seq:      r.seq,
	}
	r.all = append(r.all, reg)
	return reg
}

// tableFor returns the table for c, creating it if needed. Caller holds the write lock.
func (r *Registry) tableFor(c Category) *table {
	t, ok := r.tables[c]
	if !ok {
		t = &table{byKind: make(map[int][]*Registration)}
		r.tables[c] = t
	}
	return t
}

// insertRanked inserts reg into a best-first slice. reg is always the most
// recent registration, so it goes ahead of every candidate with equal or lower priority.
func insertRanked(ranked []*Registration, reg *Registration) []*Registration {
	i := sort.Search(len(ranked), func(i int) bool {
		return ranked[i].Priority <= reg.Priority
	})
	ranked = append(ranked, nil)
	copy(ranked[i+1:], ranked[i:])
	ranked[i] = reg
	return ranked
}

func validateCommon(h Handler, priority int, c Category) error {
	if h == nil {
		return invalid("handler", "handler cannot be nil")
	}
	if priority < 0 {
		return invalid("priority", "priority must be >= 0, got %d", priority)
	}
	if err := c.Validate(); err != nil {
		return invalid("category", "%v", err)
	}
	return nil
}

func (reg *Registration) snapshot() Registration {
	out := *reg
	if reg.Kinds != nil {
		out.Kinds = append([]int(nil), reg.Kinds...)
	}
	return out
}

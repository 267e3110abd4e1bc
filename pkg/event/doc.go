// Package event provides the event record shared by every perch component and
// the rule used to reconcile two copies of the same replaceable event.
//
// # Overview
//
// Events arrive from a relay or cache layer as Nostr-shaped JSON objects. The
// only fields perch itself reads are the kind, which drives handler dispatch in
// package registry, and created_at, which orders two versions of the same
// logical event. Everything else is carried through untouched.
//
// # Picking the newer copy
//
// Replaceable events (profiles, contact lists, long-form articles, handler
// descriptors) are re-published under the same coordinate. When two copies are
// observed, PickNewer decides which one to keep:
//
//	kept, err := event.PickNewer(stored, incoming)
//	if err != nil {
//		// one of the inputs has no created_at
//		return err
//	}
//
// The event with the strictly greater created_at wins. Equal timestamps return
// the second argument, so callers that pass (stored, incoming) let the most
// recently observed copy win ties.
//
// An event without created_at is rejected with a *MissingTimestampError rather
// than treated as older. Callers can match it with errors.Is(err,
// ErrMissingTimestamp).
//
// # Coordinates
//
// PickNewer trusts its caller to have checked that both events describe the
// same logical object. Coordinate derives that identity for the kind ranges the
// protocol treats as replaceable:
//
//	0, 3, 10000-19999  -> "<kind>:<pubkey>"
//	30000-39999        -> "<kind>:<pubkey>:<d-tag>"
//
// # Redis Schema
//
// EventToHash and HashToEvent convert events to and from the flat string maps
// stored by internal/cache. Tags are JSON-encoded into a single field and an
// absent created_at is stored as an empty string.
package event

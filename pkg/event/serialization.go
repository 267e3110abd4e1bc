package event

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Serialization helpers for converting between events and Redis hashes.
//
// Redis stores hashes as string-to-string maps. Tags are JSON-encoded into a
// single field; created_at is stored as a decimal string, or "" when absent.

// EventToHash converts an Event to a Redis hash.
func EventToHash(e *Event) (map[string]interface{}, error) {
	tags := e.Tags
	if tags == nil {
		tags = []Tag{}
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	createdAt := ""
	if ts, ok := e.Timestamp(); ok {
		createdAt = strconv.FormatInt(ts, 10)
	}

	hash := map[string]interface{}{
		"id":         e.ID,
		"pubkey":     e.PubKey,
		"created_at": createdAt,
		"kind":       e.Kind,
		"tags":       string(tagsJSON),
		"content":    e.Content,
		"sig":        e.Sig,
	}

	return hash, nil
}

// HashToEvent converts a Redis hash back to an Event.
func HashToEvent(hash map[string]string) (*Event, error) {
	kind, err := strconv.Atoi(hash["kind"])
	if err != nil {
		return nil, fmt.Errorf("invalid kind field: %w", err)
	}

	var createdAt *int64
	if raw := hash["created_at"]; raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at field: %w", err)
		}
		createdAt = &ts
	}

	var tags []Tag
	if tagsJSON := hash["tags"]; tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}

	if tags == nil {
		tags = []Tag{}
	}

	return &Event{
		ID:        hash["id"],
		PubKey:    hash["pubkey"],
		CreatedAt: createdAt,
		Kind:      kind,
		Tags:      tags,
		Content:   hash["content"],
		Sig:       hash["sig"],
	}, nil
}

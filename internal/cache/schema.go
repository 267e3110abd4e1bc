package cache

import "fmt"

// Redis key pattern helpers
//
// All keys and channels are namespaced so several perch deployments can share
// one Redis server.
//
// Key pattern: perch:{namespace}:replaceable:{coordinate}
// Channel pattern: perch:{namespace}:replaced_events

// ReplaceableKey returns the Redis key holding the retained copy of a coordinate.
// Pattern: perch:{namespace}:replaceable:{coordinate}
func ReplaceableKey(namespace, coordinate string) string {
	return fmt.Sprintf("perch:%s:replaceable:%s", namespace, coordinate)
}

// ReplaceablePattern returns the SCAN pattern matching every retained event in a namespace.
func ReplaceablePattern(namespace string) string {
	return fmt.Sprintf("perch:%s:replaceable:*", namespace)
}

// ReplacedEventsChannel returns the Pub/Sub channel carrying newly retained events.
// Pattern: perch:{namespace}:replaced_events
func ReplacedEventsChannel(namespace string) string {
	return fmt.Sprintf("perch:%s:replaced_events", namespace)
}

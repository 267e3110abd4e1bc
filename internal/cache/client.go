// Package cache keeps the newest copy of every replaceable event in Redis.
//
// It is the synchronisation layer that calls event.PickNewer: each incoming
// copy is compared against the stored one and only the winner is retained.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/dyluth/perch/pkg/event"
	"github.com/redis/go-redis/v9"
)

// maxPutAttempts bounds optimistic-lock retries when another writer touches the same coordinate.
const maxPutAttempts = 3

// listPageSize is the SCAN COUNT hint used by List.
const listPageSize = 100

// Client provides namespace-scoped Redis operations for the replaceable event cache.
// The client is safe for concurrent use.
type Client struct {
	rdb       *redis.Client
	namespace string
}

// NewClient creates a cache client for the given namespace.
// Returns an error if namespace is empty.
func NewClient(redisOpts *redis.Options, namespace string) (*Client, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}

	return &Client{
		rdb:       redis.NewClient(redisOpts),
		namespace: namespace,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Namespace returns the namespace this client writes to.
func (c *Client) Namespace() string {
	return c.namespace
}

// Put offers ev to the cache. The stored copy for ev's coordinate is compared
// with ev using event.PickNewer(stored, ev), so an equal created_at lets the
// incoming copy win. Re-offering the stored event itself is a no-op.
//
// Returns the event now retained and whether the stored copy changed. When it
// changed, the retained event is published on the replaced events channel.
func (c *Client) Put(ctx context.Context, ev *event.Event) (*event.Event, bool, error) {
	if ev == nil {
		return nil, false, fmt.Errorf("event cannot be nil")
	}

	if err := ev.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid event: %w", err)
	}

	if _, ok := ev.Timestamp(); !ok {
		return nil, false, fmt.Errorf("cannot cache event %s: %w", ev.ID, event.ErrMissingTimestamp)
	}

	coordinate, err := event.Coordinate(ev)
	if err != nil {
		return nil, false, fmt.Errorf("failed to derive coordinate: %w", err)
	}

	key := ReplaceableKey(c.namespace, coordinate)
	channel := ReplacedEventsChannel(c.namespace)

	hash, err := event.EventToHash(ev)
	if err != nil {
		return nil, false, fmt.Errorf("failed to serialize event: %w", err)
	}

	eventJSON, err := json.Marshal(ev)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal event for publish: %w", err)
	}

	var kept *event.Event
	var replaced bool

	txf := func(tx *redis.Tx) error {
		kept, replaced = ev, true

		hashData, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to read stored event: %w", err)
		}

		if len(hashData) > 0 {
			stored, err := event.HashToEvent(hashData)
			if err != nil {
				return fmt.Errorf("failed to deserialize stored event: %w", err)
			}

			if ev.ID != "" && stored.ID == ev.ID {
				kept, replaced = stored, false
				return nil
			}

			winner, err := event.PickNewer(stored, ev)
			if err != nil {
				return fmt.Errorf("failed to compare with stored event: %w", err)
			}
			if winner == stored {
				kept, replaced = stored, false
				return nil
			}
		}

		// The write and its notification commit together
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, hash)
			pipe.Publish(ctx, channel, eventJSON)
			return nil
		})
		return err
	}

	for attempt := 1; ; attempt++ {
		err := c.rdb.Watch(ctx, txf, key)
		if err == nil {
			break
		}
		if errors.Is(err, redis.TxFailedErr) && attempt < maxPutAttempts {
			log.Printf("[Cache] Concurrent write on %s, retrying (attempt %d/%d)", coordinate, attempt+1, maxPutAttempts)
			continue
		}
		return nil, false, fmt.Errorf("failed to write event to Redis: %w", err)
	}

	return kept, replaced, nil
}

// Get retrieves the retained event for a coordinate.
// Returns (nil, redis.Nil) if nothing is stored; use IsNotFound to check.
func (c *Client) Get(ctx context.Context, coordinate string) (*event.Event, error) {
	key := ReplaceableKey(c.namespace, coordinate)

	hashData, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read event from Redis: %w", err)
	}

	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	ev, err := event.HashToEvent(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize event: %w", err)
	}

	return ev, nil
}

// List returns every retained event in the namespace, oldest first.
// Uses SCAN so large namespaces don't block the server, reading each page of
// keys in one pipeline. Unreadable entries are skipped with a log line.
func (c *Client) List(ctx context.Context) ([]*event.Event, error) {
	pattern := ReplaceablePattern(c.namespace)

	var events []*event.Event
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, listPageSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan cache: %w", err)
		}

		page, err := c.readPage(ctx, keys)
		if err != nil {
			return nil, err
		}
		events = append(events, page...)

		cursor = next
		if cursor == 0 {
			break
		}
	}

	sort.Slice(events, func(i, j int) bool {
		ti, _ := events[i].Timestamp()
		tj, _ := events[j].Timestamp()
		if ti != tj {
			return ti < tj
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}

// readPage fetches the hashes for keys in a single round trip.
func (c *Client) readPage(ctx context.Context, keys []string) ([]*event.Event, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err := c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read events from Redis: %w", err)
	}

	events := make([]*event.Event, 0, len(keys))
	for i, cmd := range cmds {
		hashData := cmd.Val()
		if len(hashData) == 0 {
			// Removed between SCAN and read
			continue
		}

		ev, err := event.HashToEvent(hashData)
		if err != nil {
			log.Printf("[Cache] WARN: skipping unreadable entry key=%s: %v", keys[i], err)
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

// Subscription represents an active subscription to replaced events.
// Caller must call Close() when done.
type Subscription struct {
	events <-chan *event.Event
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of newly retained events.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *event.Event {
	return s.events
}

// Errors returns the channel of non-fatal subscription errors (malformed messages).
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe delivers every event retained by Put in this namespace.
// Returns once Redis has confirmed the subscription, so no later Put is missed.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once; a slow subscriber can miss events.
func (c *Client) Subscribe(ctx context.Context) (*Subscription, error) {
	channel := ReplacedEventsChannel(c.namespace)
	pubsub := c.rdb.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	eventsChan := make(chan *event.Event, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var ev event.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal replaced event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &ev:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

package analytics

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"vontara-backend/internal/models"
)

const (
	eventsKey        = "vontara:analytics:events"
	engagementPrefix = "vontara:engagement:"
	sessionPrefix    = "vontara:session:"

	// Only the most recent maxEvents events are retained; older ones are
	// trimmed from the front of the log.
	maxEvents = 1000
)

// EventStore is an append-only log of engagement events backed by a single
// Redis list. Analytics is best-effort telemetry: when Redis is unavailable,
// writes become no-ops and reads return empty results instead of errors.
type EventStore struct {
	rdb *redis.Client
}

func NewEventStore(rdb *redis.Client) *EventStore {
	return &EventStore{rdb: rdb}
}

// Append adds an event to the tail of the log and enforces the retention cap.
func (s *EventStore) Append(ctx context.Context, ev models.Event) {
	if s.rdb == nil {
		return
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		log.Printf("analytics: marshal event: %v", err)
		return
	}

	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, eventsKey, raw)
	pipe.LTrim(ctx, eventsKey, -maxEvents, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("analytics: append event: %v", err)
	}
}

// All returns every retained event, oldest first. Entries that fail to decode
// are skipped.
func (s *EventStore) All(ctx context.Context) []models.Event {
	events := []models.Event{}
	if s.rdb == nil {
		return events
	}

	raws, err := s.rdb.LRange(ctx, eventsKey, 0, -1).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("analytics: read events: %v", err)
		}
		return events
	}

	for _, raw := range raws {
		var ev models.Event
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events
}

// Recent returns the last n events, most recent first.
func (s *EventStore) Recent(ctx context.Context, n int) []models.Event {
	events := s.All(ctx)
	if len(events) > n {
		events = events[len(events)-n:]
	}

	// Reverse in place: newest first.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events
}

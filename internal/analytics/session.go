package analytics

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"vontara-backend/internal/models"
)

// SessionTracker measures wall-clock time between session start and end. One
// session exists per user at a time; starting a new one replaces any session
// still open, matching how an abandoned tab is superseded by a fresh visit.
type SessionTracker struct {
	rdb        *redis.Client
	engagement *EngagementStore
	now        func() time.Time
}

func NewSessionTracker(rdb *redis.Client, engagement *EngagementStore) *SessionTracker {
	return &SessionTracker{
		rdb:        rdb,
		engagement: engagement,
		now:        time.Now,
	}
}

// Start opens a session for the user and counts it immediately.
func (t *SessionTracker) Start(ctx context.Context, userID string) {
	if t.rdb == nil {
		return
	}

	sess := models.Session{UserID: userID, StartTime: t.now().UTC()}
	raw, err := json.Marshal(sess)
	if err != nil {
		log.Printf("analytics: marshal session for %s: %v", userID, err)
		return
	}
	if err := t.rdb.Set(ctx, sessionPrefix+userID, raw, 0).Err(); err != nil {
		log.Printf("analytics: start session for %s: %v", userID, err)
		return
	}

	t.engagement.IncrementSessions(ctx, userID)
}

// Heartbeat walks all active sessions and credits 5 minutes of engagement
// time for every multiple of 5 elapsed minutes not yet credited. Coarse by
// design: it does not reconcile with the precise end-of-session computation,
// so some double counting near session end is expected.
func (t *SessionTracker) Heartbeat(ctx context.Context) {
	if t.rdb == nil {
		return
	}

	iter := t.rdb.Scan(ctx, 0, sessionPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		t.tick(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("analytics: scan sessions: %v", err)
	}
}

func (t *SessionTracker) tick(ctx context.Context, key string) {
	raw, err := t.rdb.Get(ctx, key).Result()
	if err != nil {
		return
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// Corrupt session records are dropped rather than parsed forever.
		t.rdb.Del(ctx, key)
		return
	}

	elapsed := clampElapsed(t.now().Sub(sess.StartTime))
	credited := (int(elapsed.Minutes()) / 5) * 5
	if credited <= sess.CreditedMinutes {
		return
	}

	t.engagement.AddTimeSpent(ctx, sess.UserID, credited-sess.CreditedMinutes)

	sess.CreditedMinutes = credited
	if updated, err := json.Marshal(sess); err == nil {
		t.rdb.Set(ctx, key, updated, 0)
	}
}

// End closes the user's session, folds the elapsed minutes into their
// engagement record, and discards the session. No-op when no session is open.
func (t *SessionTracker) End(ctx context.Context, userID string) {
	if t.rdb == nil {
		return
	}

	key := sessionPrefix + userID
	raw, err := t.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("analytics: end session for %s: %v", userID, err)
		}
		return
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		t.rdb.Del(ctx, key)
		return
	}

	elapsed := clampElapsed(t.now().Sub(sess.StartTime))
	minutes := int(math.Round(elapsed.Minutes()))
	t.engagement.ApplySessionEnd(ctx, userID, minutes)

	t.rdb.Del(ctx, key)
}

// clampElapsed guards against the system clock moving backwards mid-session.
func clampElapsed(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

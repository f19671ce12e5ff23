package analytics

import (
	"context"
	"encoding/json"
	"log"
	"math"

	"github.com/redis/go-redis/v9"

	"vontara-backend/internal/models"
)

// EngagementStore keeps one rollup record per user, keyed by user ID. Records
// are whole-record replaced on every write; concurrent writers race with
// last-write-wins semantics, which is acceptable for telemetry.
type EngagementStore struct {
	rdb *redis.Client
}

func NewEngagementStore(rdb *redis.Client) *EngagementStore {
	return &EngagementStore{rdb: rdb}
}

// Get returns the stored record for a user, or a fresh zero record if none
// exists. Corrupt records are treated as absent.
func (s *EngagementStore) Get(ctx context.Context, userID string) models.Engagement {
	if s.rdb == nil {
		return models.NewEngagement(userID)
	}

	raw, err := s.rdb.Get(ctx, engagementPrefix+userID).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("analytics: read engagement for %s: %v", userID, err)
		}
		return models.NewEngagement(userID)
	}

	var rec models.Engagement
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return models.NewEngagement(userID)
	}
	if rec.CoursesStarted == nil {
		rec.CoursesStarted = []string{}
	}
	if rec.CoursesCompleted == nil {
		rec.CoursesCompleted = []string{}
	}
	if rec.ChaptersCompleted == nil {
		rec.ChaptersCompleted = []string{}
	}
	return rec
}

func (s *EngagementStore) save(ctx context.Context, rec models.Engagement) {
	if s.rdb == nil {
		return
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		log.Printf("analytics: marshal engagement for %s: %v", rec.UserID, err)
		return
	}
	if err := s.rdb.Set(ctx, engagementPrefix+rec.UserID, raw, 0).Err(); err != nil {
		log.Printf("analytics: save engagement for %s: %v", rec.UserID, err)
	}
}

// RecordEvent applies the kind-specific update rule for one event. Course and
// chapter IDs are tracked first-seen only, so repeated events are idempotent.
func (s *EngagementStore) RecordEvent(ctx context.Context, ev models.Event) {
	rec := s.Get(ctx, ev.UserID)

	switch ev.Kind {
	case models.EventCourseView:
		if ev.CourseID != nil && !contains(rec.CoursesStarted, *ev.CourseID) {
			rec.CoursesStarted = append(rec.CoursesStarted, *ev.CourseID)
		}
	case models.EventChapterComplete:
		if ev.ChapterID != nil && !contains(rec.ChaptersCompleted, *ev.ChapterID) {
			rec.ChaptersCompleted = append(rec.ChaptersCompleted, *ev.ChapterID)
		}
	case models.EventCourseComplete:
		if ev.CourseID != nil && !contains(rec.CoursesCompleted, *ev.CourseID) {
			rec.CoursesCompleted = append(rec.CoursesCompleted, *ev.CourseID)
		}
	}

	rec.LastActive = ev.Timestamp
	s.save(ctx, rec)
}

// AddTimeSpent credits minutes to a user's total. Used by heartbeat ticks so
// long sessions are not lost entirely on ungraceful termination.
func (s *EngagementStore) AddTimeSpent(ctx context.Context, userID string, minutes int) {
	rec := s.Get(ctx, userID)
	rec.TotalTimeSpent += minutes
	s.save(ctx, rec)
}

// IncrementSessions counts a session start. Optimistic: counted even if the
// session never cleanly ends.
func (s *EngagementStore) IncrementSessions(ctx context.Context, userID string) {
	rec := s.Get(ctx, userID)
	rec.SessionsCount++
	s.save(ctx, rec)
}

// ApplySessionEnd folds a finished session's minutes into the record and
// recomputes the average session time.
func (s *EngagementStore) ApplySessionEnd(ctx context.Context, userID string, minutes int) {
	rec := s.Get(ctx, userID)
	rec.TotalTimeSpent += minutes
	if rec.SessionsCount > 0 {
		rec.AverageSessionTime = int(math.Round(float64(rec.TotalTimeSpent) / float64(rec.SessionsCount)))
	}
	s.save(ctx, rec)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

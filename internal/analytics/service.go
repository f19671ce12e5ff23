package analytics

import (
	"context"

	"github.com/redis/go-redis/v9"

	"vontara-backend/internal/models"
)

// Service owns the event store, engagement store, and session tracker.
// Constructed once in main and passed by reference to consumers. Every
// operation is best-effort: analytics must never fail a user-facing flow,
// so nothing here returns an error to the caller.
type Service struct {
	events     *EventStore
	engagement *EngagementStore
	sessions   *SessionTracker
	dashboard  *Dashboard
}

func NewService(rdb *redis.Client) *Service {
	events := NewEventStore(rdb)
	engagement := NewEngagementStore(rdb)
	return &Service{
		events:     events,
		engagement: engagement,
		sessions:   NewSessionTracker(rdb, engagement),
		dashboard:  NewDashboard(events, engagement),
	}
}

// Track appends the event to the log and updates the owner's engagement
// record, returning the event as stored.
func (s *Service) Track(ctx context.Context, ev models.Event) models.Event {
	s.events.Append(ctx, ev)
	s.engagement.RecordEvent(ctx, ev)
	return ev
}

// StartSession opens a session for the user and records the synthetic
// page view marking it.
func (s *Service) StartSession(ctx context.Context, userID string) {
	s.sessions.Start(ctx, userID)
	s.Track(ctx, models.NewPageView(userID, "session_start", nil))
}

// EndSession closes the user's session, if one is open.
func (s *Service) EndSession(ctx context.Context, userID string) {
	s.sessions.End(ctx, userID)
}

// Heartbeat advances time accounting for all active sessions. Driven by the
// scheduler on a fixed cadence.
func (s *Service) Heartbeat(ctx context.Context) {
	s.sessions.Heartbeat(ctx)
}

// Engagement returns the rollup record for one user.
func (s *Service) Engagement(ctx context.Context, userID string) models.Engagement {
	return s.engagement.Get(ctx, userID)
}

// Dashboard computes a fresh aggregate snapshot.
func (s *Service) Dashboard(ctx context.Context) models.DashboardView {
	return s.dashboard.View(ctx)
}

// Events returns all retained events, oldest first.
func (s *Service) Events(ctx context.Context) []models.Event {
	return s.events.All(ctx)
}

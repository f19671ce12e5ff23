package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"vontara-backend/internal/analytics"
	"vontara-backend/internal/websocket"
)

const tickTimeout = 20 * time.Second

// Scheduler drives the two periodic analytics tasks: the session heartbeat
// and the dashboard refresh that feeds the admin live view. Both jobs run in
// singleton mode so a slow tick is skipped rather than overlapped.
type Scheduler struct {
	scheduler *gocron.Scheduler
	analytics *analytics.Service
	hub       *websocket.Hub

	heartbeatEvery time.Duration
	refreshEvery   time.Duration
}

func New(svc *analytics.Service, hub *websocket.Hub, heartbeatEvery, refreshEvery time.Duration) *Scheduler {
	return &Scheduler{
		scheduler:      gocron.NewScheduler(time.UTC),
		analytics:      svc,
		hub:            hub,
		heartbeatEvery: heartbeatEvery,
		refreshEvery:   refreshEvery,
	}
}

// Start begins running all scheduled tasks in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(s.heartbeatEvery).SingletonMode().Do(s.runHeartbeat)
	s.scheduler.Every(s.refreshEvery).SingletonMode().Do(s.refreshDashboard)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runHeartbeat() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	s.analytics.Heartbeat(ctx)
}

func (s *Scheduler) refreshDashboard() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	view := s.analytics.Dashboard(ctx)
	if s.hub != nil {
		s.hub.Broadcast(view)
	} else {
		log.Printf("scheduler: dashboard refresh with no hub attached")
	}
}

package analytics

import (
	"context"
	"math"
	"sort"

	"vontara-backend/internal/models"
)

const (
	topCoursesLimit     = 5
	recentActivityLimit = 10
)

// Dashboard computes read-only aggregate views over the full event log and
// all per-user engagement records. It performs no writes and tolerates an
// empty store.
type Dashboard struct {
	events     *EventStore
	engagement *EngagementStore
}

func NewDashboard(events *EventStore, engagement *EngagementStore) *Dashboard {
	return &Dashboard{events: events, engagement: engagement}
}

// View builds a fresh snapshot on every call.
func (d *Dashboard) View(ctx context.Context) models.DashboardView {
	events := d.events.All(ctx)

	// Distinct users and per-course tallies, both in first-encounter order.
	var users []string
	seenUsers := map[string]bool{}
	var courseOrder []string
	courseStats := map[string]*models.CourseStat{}

	for _, ev := range events {
		if !seenUsers[ev.UserID] {
			seenUsers[ev.UserID] = true
			users = append(users, ev.UserID)
		}

		if ev.CourseID == nil {
			continue
		}
		stat, ok := courseStats[*ev.CourseID]
		if !ok {
			stat = &models.CourseStat{CourseID: *ev.CourseID}
			courseStats[*ev.CourseID] = stat
			courseOrder = append(courseOrder, *ev.CourseID)
		}
		switch ev.Kind {
		case models.EventCourseView:
			stat.Views++
		case models.EventCourseComplete:
			stat.Completions++
		}
	}

	topCourses := make([]models.CourseStat, 0, len(courseOrder))
	for _, id := range courseOrder {
		topCourses = append(topCourses, *courseStats[id])
	}
	sort.SliceStable(topCourses, func(i, j int) bool {
		return topCourses[i].Views > topCourses[j].Views
	})
	if len(topCourses) > topCoursesLimit {
		topCourses = topCourses[:topCoursesLimit]
	}

	var totalTime, totalSessionTime, started, completed int
	for _, userID := range users {
		rec := d.engagement.Get(ctx, userID)
		totalTime += rec.TotalTimeSpent
		totalSessionTime += rec.AverageSessionTime
		started += len(rec.CoursesStarted)
		completed += len(rec.CoursesCompleted)
	}

	denom := len(users)
	if denom == 0 {
		denom = 1
	}

	completionRate := 0
	if started > 0 {
		completionRate = int(math.Round(float64(completed) / float64(started) * 100))
	}

	var recent []models.Event
	if len(events) > recentActivityLimit {
		recent = events[len(events)-recentActivityLimit:]
	} else {
		recent = events
	}
	recentActivity := make([]models.Event, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		recentActivity = append(recentActivity, recent[i])
	}

	return models.DashboardView{
		TotalUsers:  len(users),
		TotalEvents: len(events),
		TopCourses:  topCourses,
		EngagementMetrics: models.EngagementMetrics{
			AverageTimeSpent:   int(math.Round(float64(totalTime) / float64(denom))),
			AverageSessionTime: int(math.Round(float64(totalSessionTime) / float64(denom))),
			CompletionRate:     completionRate,
		},
		RecentActivity: recentActivity,
	}
}

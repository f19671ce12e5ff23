package models

import "time"

// Engagement is the per-user rollup of cumulative learning activity. Time is
// tracked in whole minutes.
type Engagement struct {
	UserID             string    `json:"user_id"`
	TotalTimeSpent     int       `json:"total_time_spent"`
	CoursesStarted     []string  `json:"courses_started"`
	CoursesCompleted   []string  `json:"courses_completed"`
	ChaptersCompleted  []string  `json:"chapters_completed"`
	LastActive         time.Time `json:"last_active"`
	SessionsCount      int       `json:"sessions_count"`
	AverageSessionTime int       `json:"average_session_time"`
}

// NewEngagement returns the zero record for a user. It is not persisted until
// the first mutating update.
func NewEngagement(userID string) Engagement {
	return Engagement{
		UserID:            userID,
		CoursesStarted:    []string{},
		CoursesCompleted:  []string{},
		ChaptersCompleted: []string{},
		LastActive:        time.Now().UTC(),
	}
}

// Session marks a user as currently active. At most one session exists per
// user; CreditedMinutes records how much heartbeat time has already been
// folded into the engagement record.
type Session struct {
	UserID          string    `json:"user_id"`
	StartTime       time.Time `json:"start_time"`
	CreditedMinutes int       `json:"credited_minutes"`
}

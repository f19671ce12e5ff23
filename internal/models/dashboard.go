package models

type CourseStat struct {
	CourseID    string `json:"course_id"`
	Views       int    `json:"views"`
	Completions int    `json:"completions"`
}

type EngagementMetrics struct {
	AverageTimeSpent   int `json:"average_time_spent"`
	AverageSessionTime int `json:"average_session_time"`
	CompletionRate     int `json:"completion_rate"`
}

// DashboardView is a read-only aggregate snapshot over all retained events
// and engagement records.
type DashboardView struct {
	TotalUsers        int               `json:"total_users"`
	TotalEvents       int               `json:"total_events"`
	TopCourses        []CourseStat      `json:"top_courses"`
	EngagementMetrics EngagementMetrics `json:"engagement_metrics"`
	RecentActivity    []Event           `json:"recent_activity"`
}

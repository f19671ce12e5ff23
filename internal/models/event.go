package models

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventCourseView      EventKind = "course_view"
	EventChapterStart    EventKind = "chapter_start"
	EventChapterComplete EventKind = "chapter_complete"
	EventCourseComplete  EventKind = "course_complete"
	EventPageView        EventKind = "page_view"
	EventButtonClick     EventKind = "button_click"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventCourseView, EventChapterStart, EventChapterComplete,
		EventCourseComplete, EventPageView, EventButtonClick:
		return true
	}
	return false
}

// Event is an immutable record of one tracked user action. CourseID and
// ChapterID are only set for kinds that reference a course or chapter; use
// the kind-specific constructors so required fields are explicit.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Kind      EventKind         `json:"kind"`
	UserID    string            `json:"user_id"`
	CourseID  *string           `json:"course_id,omitempty"`
	ChapterID *string           `json:"chapter_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func newEvent(kind EventKind, userID string) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      kind,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

func NewCourseView(userID, courseID string) Event {
	ev := newEvent(EventCourseView, userID)
	ev.CourseID = &courseID
	return ev
}

func NewChapterStart(userID, courseID, chapterID string) Event {
	ev := newEvent(EventChapterStart, userID)
	ev.CourseID = &courseID
	ev.ChapterID = &chapterID
	return ev
}

func NewChapterComplete(userID, courseID, chapterID string) Event {
	ev := newEvent(EventChapterComplete, userID)
	ev.CourseID = &courseID
	ev.ChapterID = &chapterID
	return ev
}

func NewCourseComplete(userID, courseID string) Event {
	ev := newEvent(EventCourseComplete, userID)
	ev.CourseID = &courseID
	return ev
}

func NewPageView(userID, page string, metadata map[string]string) Event {
	ev := newEvent(EventPageView, userID)
	ev.Metadata = map[string]string{"page": page}
	for k, v := range metadata {
		ev.Metadata[k] = v
	}
	return ev
}

func NewButtonClick(userID, buttonName string, metadata map[string]string) Event {
	ev := newEvent(EventButtonClick, userID)
	ev.Metadata = map[string]string{"button_name": buttonName}
	for k, v := range metadata {
		ev.Metadata[k] = v
	}
	return ev
}

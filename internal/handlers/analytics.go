package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vontara-backend/internal/analytics"
	"vontara-backend/internal/models"
)

type AnalyticsHandler struct {
	svc *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

type trackRequest struct {
	Kind      models.EventKind  `json:"kind"`
	UserID    string            `json:"user_id"`
	CourseID  string            `json:"course_id"`
	ChapterID string            `json:"chapter_id"`
	Page      string            `json:"page"`
	Button    string            `json:"button_name"`
	Metadata  map[string]string `json:"metadata"`
}

// Track ingests one engagement event. Input is validated, but the analytics
// pipeline itself never fails the caller: a degraded store still returns 202.
func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := make(map[string]string)
	if req.UserID == "" {
		fields["user_id"] = "User ID is required"
	}
	if !req.Kind.Valid() {
		fields["kind"] = "Unknown event kind"
	}

	switch req.Kind {
	case models.EventCourseView, models.EventCourseComplete:
		if req.CourseID == "" {
			fields["course_id"] = "Course ID is required for this kind"
		}
	case models.EventChapterStart, models.EventChapterComplete:
		if req.CourseID == "" {
			fields["course_id"] = "Course ID is required for this kind"
		}
		if req.ChapterID == "" {
			fields["chapter_id"] = "Chapter ID is required for this kind"
		}
	case models.EventPageView:
		if req.Page == "" {
			fields["page"] = "Page is required for page views"
		}
	case models.EventButtonClick:
		if req.Button == "" {
			fields["button_name"] = "Button name is required for button clicks"
		}
	}

	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	var ev models.Event
	switch req.Kind {
	case models.EventCourseView:
		ev = models.NewCourseView(req.UserID, req.CourseID)
	case models.EventChapterStart:
		ev = models.NewChapterStart(req.UserID, req.CourseID, req.ChapterID)
	case models.EventChapterComplete:
		ev = models.NewChapterComplete(req.UserID, req.CourseID, req.ChapterID)
	case models.EventCourseComplete:
		ev = models.NewCourseComplete(req.UserID, req.CourseID)
	case models.EventPageView:
		ev = models.NewPageView(req.UserID, req.Page, req.Metadata)
	case models.EventButtonClick:
		ev = models.NewButtonClick(req.UserID, req.Button, req.Metadata)
	}

	ev = h.svc.Track(r.Context(), ev)

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"event": ev,
	})
}

func (h *AnalyticsHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	h.svc.StartSession(r.Context(), userID)
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Session started"})
}

func (h *AnalyticsHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	h.svc.EndSession(r.Context(), userID)
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Session ended"})
}

func (h *AnalyticsHandler) sessionUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "user_id is required", r))
		return "", false
	}
	return req.UserID, true
}

func (h *AnalyticsHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "User ID is required", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"engagement": h.svc.Engagement(r.Context(), userID),
	})
}

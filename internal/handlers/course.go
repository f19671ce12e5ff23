package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vontara-backend/internal/models"
	"vontara-backend/internal/repository"
)

type CourseHandler struct {
	courseRepo  *repository.CourseRepo
	chapterRepo *repository.ChapterRepo
}

func NewCourseHandler(courseRepo *repository.CourseRepo, chapterRepo *repository.ChapterRepo) *CourseHandler {
	return &CourseHandler{courseRepo: courseRepo, chapterRepo: chapterRepo}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseRepo.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load courses", r))
		return
	}

	for i := range courses {
		chapters, err := h.chapterRepo.ListByCourse(r.Context(), courses[i].ID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load chapters", r))
			return
		}
		courses[i].Chapters = chapters
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"courses": courses,
	})
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	course, err := h.courseRepo.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, r, err, "Course not found")
		return
	}

	chapters, err := h.chapterRepo.ListByCourse(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load chapters", r))
		return
	}
	course.Chapters = chapters

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"course": course,
	})
}

type courseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Level       string `json:"level"`
	Duration    string `json:"duration"`
}

func (r *courseRequest) validate() map[string]string {
	fields := make(map[string]string)
	if r.Title == "" {
		fields["title"] = "Title is required"
	}
	if !models.ValidLevel(r.Level) {
		fields["level"] = "Level must be Beginner, Intermediate, or Advanced"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if fields := req.validate(); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Level:       req.Level,
		Duration:    req.Duration,
	}

	if err := h.courseRepo.Create(r.Context(), course); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create course", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"course": course,
	})
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if fields := req.validate(); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	course := &models.Course{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Level:       req.Level,
		Duration:    req.Duration,
	}

	if err := h.courseRepo.Update(r.Context(), course); err != nil {
		handleRepoError(w, r, err, "Course not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"course": course,
	})
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	if err := h.courseRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete course", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

// Enroll bumps the public student counter for a course.
func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	if err := h.courseRepo.IncrementStudents(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to enroll", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Enrolled"})
}

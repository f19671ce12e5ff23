package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vontara-backend/internal/models"
)

// chapterStore is the slice of repository.ChapterRepo the handler needs.
type chapterStore interface {
	Create(ctx context.Context, ch *models.Chapter) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error)
	Update(ctx context.Context, ch *models.Chapter) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error
}

type ChapterHandler struct {
	chapterRepo chapterStore
}

func NewChapterHandler(chapterRepo chapterStore) *ChapterHandler {
	return &ChapterHandler{chapterRepo: chapterRepo}
}

type chapterRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    string `json:"duration"`
}

func (h *ChapterHandler) Create(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	var req chapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"title": "Title is required"}, r))
		return
	}

	chapter := &models.Chapter{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Duration:    req.Duration,
	}

	if err := h.chapterRepo.Create(r.Context(), chapter); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create chapter", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"chapter": chapter,
	})
}

func (h *ChapterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chapter ID", r))
		return
	}

	var req chapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"title": "Title is required"}, r))
		return
	}

	chapter, err := h.chapterRepo.GetByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, r, err, "Chapter not found")
		return
	}

	chapter.Title = req.Title
	chapter.Description = req.Description
	chapter.VideoURL = req.VideoURL
	chapter.Duration = req.Duration

	if err := h.chapterRepo.Update(r.Context(), chapter); err != nil {
		handleRepoError(w, r, err, "Chapter not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"chapter": chapter,
	})
}

func (h *ChapterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chapter ID", r))
		return
	}

	if err := h.chapterRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete chapter", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Chapter deleted"})
}

// Reorder replaces the chapter ordering of a course with the given ID list.
func (h *ChapterHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	var req struct {
		ChapterIDs []string `json:"chapter_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if len(req.ChapterIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "chapter_ids is required", r))
		return
	}

	orderedIDs := make([]uuid.UUID, 0, len(req.ChapterIDs))
	for _, raw := range req.ChapterIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chapter ID in list", r))
			return
		}
		orderedIDs = append(orderedIDs, id)
	}

	if err := h.chapterRepo.Reorder(r.Context(), courseID, orderedIDs); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to reorder chapters", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Chapters reordered"})
}

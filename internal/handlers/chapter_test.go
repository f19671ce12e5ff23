package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"vontara-backend/internal/models"
)

// fakeChapterStore backs ChapterHandler tests with an in-memory map.
type fakeChapterStore struct {
	chapters map[uuid.UUID]*models.Chapter
}

func newFakeChapterStore() *fakeChapterStore {
	return &fakeChapterStore{chapters: make(map[uuid.UUID]*models.Chapter)}
}

func (s *fakeChapterStore) Create(ctx context.Context, ch *models.Chapter) error {
	ch.ID = uuid.New()
	ch.OrderNumber = len(s.chapters) + 1
	s.chapters[ch.ID] = ch
	return nil
}

func (s *fakeChapterStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	ch, ok := s.chapters[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ch
	return &copied, nil
}

func (s *fakeChapterStore) Update(ctx context.Context, ch *models.Chapter) error {
	if _, ok := s.chapters[ch.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.chapters[ch.ID] = ch
	return nil
}

func (s *fakeChapterStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.chapters, id)
	return nil
}

func (s *fakeChapterStore) Reorder(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error {
	return nil
}

func newChapterRouter(store *fakeChapterStore) *chi.Mux {
	h := NewChapterHandler(store)
	r := chi.NewRouter()
	r.Put("/chapters/{id}", h.Update)
	return r
}

func putJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestChapterUpdate_UnknownChapterReturns404(t *testing.T) {
	r := newChapterRouter(newFakeChapterStore())

	rr := putJSON(t, r, "/chapters/"+uuid.NewString(), map[string]string{"title": "Updated"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404 for unknown chapter, got %d", rr.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected error code NOT_FOUND, got %q", resp.Error.Code)
	}
}

func TestChapterUpdate_PreservesCourseAndOrdering(t *testing.T) {
	store := newFakeChapterStore()
	courseID := uuid.New()
	chapter := &models.Chapter{
		CourseID:    courseID,
		Title:       "Original",
		Description: "Original description",
		VideoURL:    "https://example.com/v1",
		Duration:    "10:00",
	}
	if err := store.Create(context.Background(), chapter); err != nil {
		t.Fatalf("Failed to seed chapter: %v", err)
	}

	r := newChapterRouter(store)
	rr := putJSON(t, r, "/chapters/"+chapter.ID.String(), map[string]string{
		"title":       "Updated",
		"description": "New description",
		"video_url":   "https://example.com/v2",
		"duration":    "12:00",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Chapter models.Chapter `json:"chapter"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Chapter.Title != "Updated" {
		t.Errorf("Expected title %q, got %q", "Updated", resp.Chapter.Title)
	}
	if resp.Chapter.CourseID != courseID {
		t.Errorf("Expected course ID %s preserved, got %s", courseID, resp.Chapter.CourseID)
	}
	if resp.Chapter.OrderNumber != chapter.OrderNumber {
		t.Errorf("Expected order number %d preserved, got %d", chapter.OrderNumber, resp.Chapter.OrderNumber)
	}
}

func TestChapterUpdate_MissingTitleRejected(t *testing.T) {
	store := newFakeChapterStore()
	chapter := &models.Chapter{CourseID: uuid.New(), Title: "Original"}
	if err := store.Create(context.Background(), chapter); err != nil {
		t.Fatalf("Failed to seed chapter: %v", err)
	}

	r := newChapterRouter(store)
	rr := putJSON(t, r, "/chapters/"+chapter.ID.String(), map[string]string{"title": ""})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 for missing title, got %d", rr.Code)
	}
	if got := store.chapters[chapter.ID].Title; got != "Original" {
		t.Errorf("Expected title unchanged on rejected update, got %q", got)
	}
}

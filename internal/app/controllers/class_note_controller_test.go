package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/app/services"
	"github.com/scribnotes/scribnotes/internal/middleware"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/helpers"
)

// stubNoteStore serves a fixed set of notes, enough to drive the read and
// search handlers.
type stubNoteStore struct {
	notes []*models.ClassNote
}

func (s *stubNoteStore) owned(userID int64) []*models.ClassNote {
	var owned []*models.ClassNote
	for _, n := range s.notes {
		if n.UserID == userID {
			owned = append(owned, n)
		}
	}
	return owned
}

func (s *stubNoteStore) CreateNote(_ context.Context, note *models.ClassNote) (int64, error) {
	note.ID = int64(len(s.notes) + 1)
	s.notes = append(s.notes, note)
	return note.ID, nil
}

func (s *stubNoteStore) GetNoteBySlug(_ context.Context, userID int64, slug string) (*models.ClassNote, error) {
	for _, n := range s.owned(userID) {
		if n.Slug == slug {
			return n, nil
		}
	}
	return nil, apperrors.ErrNoteNotFound
}

func (s *stubNoteStore) ListNotes(_ context.Context, userID int64, _ *int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	owned := s.owned(userID)
	return owned, helpers.NewPaginationInfo(int64(len(owned)), page), nil
}

func (s *stubNoteStore) ListLatestNotes(ctx context.Context, userID int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	return s.ListNotes(ctx, userID, nil, page)
}

func (s *stubNoteStore) ListAllNotes(_ context.Context, userID int64) ([]*models.ClassNote, error) {
	return s.owned(userID), nil
}

func (s *stubNoteStore) ListNotesBySlugs(_ context.Context, userID int64, slugs []string) ([]*models.ClassNote, error) {
	wanted := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		wanted[slug] = true
	}
	var matched []*models.ClassNote
	for _, n := range s.owned(userID) {
		if wanted[n.Slug] {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func (s *stubNoteStore) UpdateNote(_ context.Context, _ *models.ClassNote) error { return nil }

func (s *stubNoteStore) DeleteNote(_ context.Context, _ int64, _ string) error { return nil }

type stubCourseStore struct{}

func (stubCourseStore) CreateCourse(_ context.Context, _ *models.Course) (int64, error) {
	return 0, apperrors.ErrCourseNotFound
}

func (stubCourseStore) GetCourseBySlug(_ context.Context, _ int64, _ string) (*models.Course, error) {
	return nil, apperrors.ErrCourseNotFound
}

func (stubCourseStore) ListCourses(_ context.Context, _ int64, _ *int64, _ int) ([]*models.Course, dto.PaginationInfo, error) {
	return nil, dto.PaginationInfo{}, nil
}

func (stubCourseStore) UpdateCourse(_ context.Context, _ *models.Course) error {
	return apperrors.ErrCourseNotFound
}

func (stubCourseStore) DeleteCourse(_ context.Context, _ int64, _ string) error {
	return apperrors.ErrCourseNotFound
}

func note(userID int64, title, slug string) *models.ClassNote {
	return &models.ClassNote{UserID: userID, Title: title, Slug: slug}
}

// notesRouter wires the note routes the way the real router does, with an
// identity stub standing in for token validation. userID 0 means anonymous.
func notesRouter(store *stubNoteStore, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	if userID > 0 {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserIDKey, userID)
		})
	}

	controller := NewClassNoteController(services.NewClassNoteService(store, stubCourseStore{}))
	v1 := router.Group("/api/v1")
	v1.GET("/search", controller.SearchNotes)
	v1.GET("/notes", controller.ListNotes)
	v1.GET("/notes/latest", controller.ListLatestNotes)
	v1.GET("/notes/batch/:slugs", controller.GetNotesBatch)
	v1.GET("/notes/:noteSlug", controller.GetNote)

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", path, nil))
	return recorder
}

func seededStore() *stubNoteStore {
	return &stubNoteStore{notes: []*models.ClassNote{
		note(1, "Midterm Review", "midterm-review"),
		note(1, "Final Review", "final-review"),
		note(1, "Lab Notes", "lab-notes"),
		note(2, "Someone else's note", "someone-elses-note"),
	}}
}

func TestSearchRedirectsToSingleMatch(t *testing.T) {
	router := notesRouter(seededStore(), 1)

	recorder := get(router, "/api/v1/search?title=mid+term")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/api/v1/notes/midterm-review", recorder.Header().Get("Location"))
}

func TestSearchRedirectsToBatchForMultipleMatches(t *testing.T) {
	router := notesRouter(seededStore(), 1)

	recorder := get(router, "/api/v1/search?title=review")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/api/v1/notes/batch/midterm-review+final-review", recorder.Header().Get("Location"))
}

func TestSearchRedirectsToListingForNoMatch(t *testing.T) {
	router := notesRouter(seededStore(), 1)

	recorder := get(router, "/api/v1/search?title=quiz")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/api/v1/notes", recorder.Header().Get("Location"))
}

func TestSearchAnonymousRedirectsToListing(t *testing.T) {
	router := notesRouter(seededStore(), 0)

	recorder := get(router, "/api/v1/search?title=midterm")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/api/v1/notes", recorder.Header().Get("Location"))
}

func TestGetNoteAnonymousIsNotFound(t *testing.T) {
	router := notesRouter(seededStore(), 0)

	recorder := get(router, "/api/v1/notes/midterm-review")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetNoteOtherUsersSlugIsNotFound(t *testing.T) {
	router := notesRouter(seededStore(), 2)

	recorder := get(router, "/api/v1/notes/midterm-review")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func decodeNotePage(t *testing.T, recorder *httptest.ResponseRecorder) dto.NoteListResponse {
	t.Helper()
	var envelope struct {
		Data dto.NoteListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestListNotesAnonymousGetsEmptyPage(t *testing.T) {
	router := notesRouter(seededStore(), 0)

	recorder := get(router, "/api/v1/notes")
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeNotePage(t, recorder)
	assert.Empty(t, page.Notes)
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
}

func TestListNotesReturnsOwnedNotes(t *testing.T) {
	router := notesRouter(seededStore(), 1)

	recorder := get(router, "/api/v1/notes")
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeNotePage(t, recorder)
	assert.Len(t, page.Notes, 3)
}

func TestGetNotesBatchSplitsSlugs(t *testing.T) {
	router := notesRouter(seededStore(), 1)

	recorder := get(router, "/api/v1/notes/batch/midterm-review+final-review")
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeNotePage(t, recorder)
	require.Len(t, page.Notes, 2)
	assert.Equal(t, "midterm-review", page.Notes[0].Slug)
	assert.Equal(t, "final-review", page.Notes[1].Slug)
}

func TestGetNotesBatchAnonymousGetsEmptyList(t *testing.T) {
	router := notesRouter(seededStore(), 0)

	recorder := get(router, "/api/v1/notes/batch/midterm-review")
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeNotePage(t, recorder)
	assert.Empty(t, page.Notes)
}

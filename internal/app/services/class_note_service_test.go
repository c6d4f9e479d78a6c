package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
)

func newNoteService() (*ClassNoteService, *CourseService) {
	courseStore := &fakeCourseStore{}
	noteStore := &fakeNoteStore{}
	return NewClassNoteService(noteStore, courseStore), NewCourseService(courseStore, &fakeTermStore{})
}

func seedNotes(t *testing.T, svc *ClassNoteService, userID int64, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := svc.CreateNote(context.Background(), userID, &dto.CreateNoteRequest{Title: title})
		require.NoError(t, err)
	}
}

func TestCreateNoteDerivesSlugFromTitle(t *testing.T) {
	svc, _ := newNoteService()

	note, err := svc.CreateNote(context.Background(), 1, &dto.CreateNoteRequest{
		Title: "Midterm Review",
		Body:  "<p>Chapters 1-5</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "midterm-review", note.Slug)
	assert.Equal(t, "<p>Chapters 1-5</p>", note.Body)
	assert.Nil(t, note.CourseID)
}

func TestCreateNoteDuplicateTitleFails(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Midterm Review")

	_, err := svc.CreateNote(context.Background(), 1, &dto.CreateNoteRequest{Title: "Midterm Review"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// The same title is fine for a different user.
	_, err = svc.CreateNote(context.Background(), 2, &dto.CreateNoteRequest{Title: "Midterm Review"})
	assert.NoError(t, err)
}

func TestCreateNoteResolvesCourseWithinOwnerScope(t *testing.T) {
	svc, courses := newNoteService()

	course, err := courses.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:  "CSC108",
		Title: "Intro to Programming",
	})
	require.NoError(t, err)

	note, err := svc.CreateNote(context.Background(), 1, &dto.CreateNoteRequest{
		Title:      "Lecture 1",
		CourseSlug: strPtr("csc108"),
	})
	require.NoError(t, err)
	require.NotNil(t, note.CourseID)
	assert.Equal(t, course.ID, *note.CourseID)

	_, err = svc.CreateNote(context.Background(), 2, &dto.CreateNoteRequest{
		Title:      "Lecture 1",
		CourseSlug: strPtr("csc108"),
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateNoteKeepsSlug(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Midterm Review")

	updated, err := svc.UpdateNote(context.Background(), 1, "midterm-review", &dto.UpdateNoteRequest{
		Title: "Final Review",
		Body:  "<p>Everything</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "midterm-review", updated.Slug)
	assert.Equal(t, "Final Review", updated.Title)
	assert.Equal(t, "<p>Everything</p>", updated.Body)
}

func TestListNotesBySlugsSkipsUnknown(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Alpha", "Beta")

	notes, err := svc.ListNotesBySlugs(context.Background(), 1, []string{"alpha", "missing", "beta"})
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	empty, err := svc.ListNotesBySlugs(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNormalizeForSearch(t *testing.T) {
	assert.Equal(t, "midterm", normalizeForSearch("Mid Term"))
	assert.Equal(t, "midterm", normalizeForSearch("  MIDTERM  "))
	assert.Equal(t, "lecture1notes", normalizeForSearch("Lecture 1\tNotes"))
	assert.Equal(t, "", normalizeForSearch(" \n "))
}

func TestSearchByTitleNoMatch(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Midterm Review", "Final Review")

	result, err := svc.SearchByTitle(context.Background(), 1, "quiz")
	require.NoError(t, err)
	assert.Equal(t, SearchNoMatch, result.Outcome)
	assert.Nil(t, result.Note)
	assert.Empty(t, result.Slugs)
}

func TestSearchByTitleSingleMatch(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Midterm Review", "Final Review")

	// Whitespace and case differences are ignored.
	result, err := svc.SearchByTitle(context.Background(), 1, "mid term")
	require.NoError(t, err)
	require.Equal(t, SearchSingleMatch, result.Outcome)
	require.NotNil(t, result.Note)
	assert.Equal(t, "midterm-review", result.Note.Slug)
}

func TestSearchByTitleMultipleMatch(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Midterm Review", "Final Review", "Lab Notes")

	result, err := svc.SearchByTitle(context.Background(), 1, "review")
	require.NoError(t, err)
	assert.Equal(t, SearchMultipleMatch, result.Outcome)
	assert.Equal(t, []string{"midterm-review", "final-review"}, result.Slugs)
}

func TestSearchByTitleEmptyQueryMatchesEverything(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Midterm Review", "Final Review")

	result, err := svc.SearchByTitle(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, SearchMultipleMatch, result.Outcome)
	assert.Len(t, result.Slugs, 2)
}

func TestSearchByTitleScopedToOwner(t *testing.T) {
	svc, _ := newNoteService()
	seedNotes(t, svc, 1, "Midterm Review")

	result, err := svc.SearchByTitle(context.Background(), 2, "midterm")
	require.NoError(t, err)
	assert.Equal(t, SearchNoMatch, result.Outcome)
}

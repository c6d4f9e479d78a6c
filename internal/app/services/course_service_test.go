package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
)

func newCourseService() (*CourseService, *TermService) {
	termStore := &fakeTermStore{}
	courseStore := &fakeCourseStore{}
	return NewCourseService(courseStore, termStore), NewTermService(termStore)
}

func strPtr(s string) *string { return &s }

func TestCreateCourseDerivesSlugFromCode(t *testing.T) {
	svc, _ := newCourseService()

	course, err := svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:  "CSC 108",
		Title: "Intro to Programming",
	})

	require.NoError(t, err)
	assert.Equal(t, "csc-108", course.Slug)
	assert.Nil(t, course.TermID)
}

func TestCreateCourseResolvesTermWithinOwnerScope(t *testing.T) {
	svc, terms := newCourseService()

	term, err := terms.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "Fall",
	})
	require.NoError(t, err)

	course, err := svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:     "CSC108",
		Title:    "Intro to Programming",
		TermSlug: strPtr("fall"),
	})
	require.NoError(t, err)
	require.NotNil(t, course.TermID)
	assert.Equal(t, term.ID, *course.TermID)

	// Another user cannot attach a course to someone else's term.
	_, err = svc.CreateCourse(context.Background(), 2, &dto.CreateCourseRequest{
		Code:     "MAT137",
		Title:    "Calculus",
		TermSlug: strPtr("fall"),
	})
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}

func TestCreateCourseDuplicateCodeConflicts(t *testing.T) {
	svc, _ := newCourseService()

	_, err := svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:  "CSC108",
		Title: "Intro to Programming",
	})
	require.NoError(t, err)

	// Codes are unique across users, not per user.
	_, err = svc.CreateCourse(context.Background(), 2, &dto.CreateCourseRequest{
		Code:  "CSC108",
		Title: "Someone else's course",
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
}

func TestCreateCourseRejectsInvalidFields(t *testing.T) {
	svc, _ := newCourseService()

	_, err := svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:  "",
		Title: "Intro to Programming",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:  "---",
		Title: "Intro to Programming",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateCourseKeepsSlug(t *testing.T) {
	svc, _ := newCourseService()

	created, err := svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:  "CSC108",
		Title: "Intro to Programming",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCourse(context.Background(), 1, created.Slug, &dto.UpdateCourseRequest{
		Code:  "CSC148",
		Title: "Intro to Computer Science",
	})
	require.NoError(t, err)

	assert.Equal(t, "csc108", updated.Slug)
	assert.Equal(t, "CSC148", updated.Code)
}

func TestListCoursesFiltersByTerm(t *testing.T) {
	svc, terms := newCourseService()

	_, err := terms.CreateTerm(context.Background(), 1, &dto.CreateTermRequest{
		School:  "University of Toronto",
		Session: "Fall",
	})
	require.NoError(t, err)

	_, err = svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:     "CSC108",
		Title:    "Intro to Programming",
		TermSlug: strPtr("fall"),
	})
	require.NoError(t, err)
	_, err = svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		Code:  "MAT137",
		Title: "Calculus",
	})
	require.NoError(t, err)

	all, _, err := svc.ListCourses(context.Background(), 1, nil, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, pagination, err := svc.ListCourses(context.Background(), 1, strPtr("fall"), 1)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "CSC108", scoped[0].Code)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestListCoursesUnknownTerm(t *testing.T) {
	svc, _ := newCourseService()

	_, _, err := svc.ListCourses(context.Background(), 1, strPtr("missing"), 1)
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}

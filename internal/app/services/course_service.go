package services

import (
	"context"
	"strings"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/slug"
)

// CourseService handles course operations. Parent terms are always resolved
// within the owner's scope before a course references them.
type CourseService struct {
	courseStore CourseStore
	termStore   TermStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseStore CourseStore, termStore TermStore) *CourseService {
	return &CourseService{
		courseStore: courseStore,
		termStore:   termStore,
	}
}

func validateCourseFields(code string, title string) error {
	if strings.TrimSpace(code) == "" {
		return apperrors.NewValidationError("code", "code cannot be empty")
	}
	if len(code) > models.CourseCodeMaxLen {
		return apperrors.NewValidationError("code", "code is too long")
	}
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError("title", "title cannot be empty")
	}
	if len(title) > models.CourseTitleMaxLen {
		return apperrors.NewValidationError("title", "title is too long")
	}
	return nil
}

// resolveTermID maps an optional term slug onto the user's term, if any.
func (s *CourseService) resolveTermID(ctx context.Context, userID int64, termSlug *string) (*int64, error) {
	if termSlug == nil || *termSlug == "" {
		return nil, nil
	}
	term, err := s.termStore.GetTermBySlug(ctx, userID, *termSlug)
	if err != nil {
		return nil, err
	}
	return &term.ID, nil
}

// CreateCourse creates a course for the user, deriving its slug from the code.
func (s *CourseService) CreateCourse(ctx context.Context, userID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	if err := validateCourseFields(req.Code, req.Title); err != nil {
		return nil, err
	}

	courseSlug := slug.Make(req.Code)
	if courseSlug == "" {
		return nil, apperrors.NewValidationError("code", "code must contain at least one letter or digit")
	}

	termID, err := s.resolveTermID(ctx, userID, req.TermSlug)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		UserID: userID,
		TermID: termID,
		Code:   strings.TrimSpace(req.Code),
		Title:  strings.TrimSpace(req.Title),
		Slug:   courseSlug,
	}

	id, err := s.courseStore.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	course.TermSlug = req.TermSlug

	return course, nil
}

// GetCourseBySlug retrieves one of the user's courses.
func (s *CourseService) GetCourseBySlug(ctx context.Context, userID int64, courseSlug string) (*models.Course, error) {
	return s.courseStore.GetCourseBySlug(ctx, userID, courseSlug)
}

// ListCourses retrieves a page of the user's courses, optionally narrowed to
// the term named by termSlug.
func (s *CourseService) ListCourses(ctx context.Context, userID int64, termSlug *string, page int) ([]*models.Course, dto.PaginationInfo, error) {
	termID, err := s.resolveTermID(ctx, userID, termSlug)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.courseStore.ListCourses(ctx, userID, termID, page)
}

// UpdateCourse updates a course's fields. The slug stays as derived at
// creation time even when the code changes.
func (s *CourseService) UpdateCourse(ctx context.Context, userID int64, courseSlug string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := validateCourseFields(req.Code, req.Title); err != nil {
		return nil, err
	}

	course, err := s.courseStore.GetCourseBySlug(ctx, userID, courseSlug)
	if err != nil {
		return nil, err
	}

	termID, err := s.resolveTermID(ctx, userID, req.TermSlug)
	if err != nil {
		return nil, err
	}

	course.Code = strings.TrimSpace(req.Code)
	course.Title = strings.TrimSpace(req.Title)
	course.TermID = termID
	course.TermSlug = req.TermSlug

	if err := s.courseStore.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse deletes a course and, via cascade, its notes.
func (s *CourseService) DeleteCourse(ctx context.Context, userID int64, courseSlug string) error {
	return s.courseStore.DeleteCourse(ctx, userID, courseSlug)
}

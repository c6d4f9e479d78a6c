package services

import (
	"context"
	"strings"
	"unicode"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/slug"
)

// SearchOutcome classifies the result of a title search.
type SearchOutcome int

const (
	// SearchNoMatch means no note title contained the query.
	SearchNoMatch SearchOutcome = iota
	// SearchSingleMatch means exactly one note title contained the query.
	SearchSingleMatch
	// SearchMultipleMatch means several note titles contained the query.
	SearchMultipleMatch
)

// SearchResult carries the classified outcome of a title search. Note is set
// only for SearchSingleMatch; Slugs lists every match in canonical order and
// is set for SearchMultipleMatch.
type SearchResult struct {
	Outcome SearchOutcome
	Note    *models.ClassNote
	Slugs   []string
}

// ClassNoteService handles class note operations and the title search. Parent
// courses are always resolved within the owner's scope before a note
// references them.
type ClassNoteService struct {
	noteStore   ClassNoteStore
	courseStore CourseStore
}

// NewClassNoteService creates a new ClassNoteService.
func NewClassNoteService(noteStore ClassNoteStore, courseStore CourseStore) *ClassNoteService {
	return &ClassNoteService{
		noteStore:   noteStore,
		courseStore: courseStore,
	}
}

func validateNoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError("title", "title cannot be empty")
	}
	if len(title) > models.NoteTitleMaxLen {
		return apperrors.NewValidationError("title", "title is too long")
	}
	return nil
}

// resolveCourseID maps an optional course slug onto the user's course, if any.
func (s *ClassNoteService) resolveCourseID(ctx context.Context, userID int64, courseSlug *string) (*int64, error) {
	if courseSlug == nil || *courseSlug == "" {
		return nil, nil
	}
	course, err := s.courseStore.GetCourseBySlug(ctx, userID, *courseSlug)
	if err != nil {
		return nil, err
	}
	return &course.ID, nil
}

// CreateNote creates a class note for the user, deriving its slug from the
// title.
func (s *ClassNoteService) CreateNote(ctx context.Context, userID int64, req *dto.CreateNoteRequest) (*models.ClassNote, error) {
	if err := validateNoteTitle(req.Title); err != nil {
		return nil, err
	}

	noteSlug := slug.Make(req.Title)
	if noteSlug == "" {
		return nil, apperrors.NewValidationError("title", "title must contain at least one letter or digit")
	}

	courseID, err := s.resolveCourseID(ctx, userID, req.CourseSlug)
	if err != nil {
		return nil, err
	}

	note := &models.ClassNote{
		UserID:   userID,
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
		Body:     req.Body,
		Slug:     noteSlug,
	}

	id, err := s.noteStore.CreateNote(ctx, note)
	if err != nil {
		return nil, err
	}

	// Re-read so join-populated fields and timestamps are filled in.
	note.ID = id
	created, err := s.noteStore.GetNoteBySlug(ctx, userID, noteSlug)
	if err != nil {
		return note, nil
	}
	return created, nil
}

// GetNoteBySlug retrieves one of the user's notes.
func (s *ClassNoteService) GetNoteBySlug(ctx context.Context, userID int64, noteSlug string) (*models.ClassNote, error) {
	return s.noteStore.GetNoteBySlug(ctx, userID, noteSlug)
}

// ListNotes retrieves a page of the user's notes in canonical order,
// optionally narrowed to the course named by courseSlug.
func (s *ClassNoteService) ListNotes(ctx context.Context, userID int64, courseSlug *string, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	courseID, err := s.resolveCourseID(ctx, userID, courseSlug)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.noteStore.ListNotes(ctx, userID, courseID, page)
}

// ListLatestNotes retrieves a page of the user's notes, newest first.
func (s *ClassNoteService) ListLatestNotes(ctx context.Context, userID int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	return s.noteStore.ListLatestNotes(ctx, userID, page)
}

// ListNotesBySlugs retrieves the user's notes matching the given slugs, in
// canonical order. Unknown slugs are silently skipped.
func (s *ClassNoteService) ListNotesBySlugs(ctx context.Context, userID int64, slugs []string) ([]*models.ClassNote, error) {
	if len(slugs) == 0 {
		return []*models.ClassNote{}, nil
	}
	return s.noteStore.ListNotesBySlugs(ctx, userID, slugs)
}

// UpdateNote updates a note's fields. The slug stays as derived at creation
// time and the creation timestamp never changes.
func (s *ClassNoteService) UpdateNote(ctx context.Context, userID int64, noteSlug string, req *dto.UpdateNoteRequest) (*models.ClassNote, error) {
	if err := validateNoteTitle(req.Title); err != nil {
		return nil, err
	}

	note, err := s.noteStore.GetNoteBySlug(ctx, userID, noteSlug)
	if err != nil {
		return nil, err
	}

	courseID, err := s.resolveCourseID(ctx, userID, req.CourseSlug)
	if err != nil {
		return nil, err
	}

	note.Title = strings.TrimSpace(req.Title)
	note.Body = req.Body
	note.CourseID = courseID

	if err := s.noteStore.UpdateNote(ctx, note); err != nil {
		return nil, err
	}

	updated, err := s.noteStore.GetNoteBySlug(ctx, userID, noteSlug)
	if err != nil {
		return note, nil
	}
	return updated, nil
}

// DeleteNote deletes one of the user's notes.
func (s *ClassNoteService) DeleteNote(ctx context.Context, userID int64, noteSlug string) error {
	return s.noteStore.DeleteNote(ctx, userID, noteSlug)
}

// normalizeForSearch lowercases a string and removes every whitespace rune, so
// "Mid Term" and "midterm" compare equal.
func normalizeForSearch(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)
}

// SearchByTitle scans the user's notes for titles containing the query after
// normalization. An empty query matches every note.
func (s *ClassNoteService) SearchByTitle(ctx context.Context, userID int64, query string) (*SearchResult, error) {
	notes, err := s.noteStore.ListAllNotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	needle := normalizeForSearch(query)

	var matches []*models.ClassNote
	for _, note := range notes {
		if strings.Contains(normalizeForSearch(note.Title), needle) {
			matches = append(matches, note)
		}
	}

	switch len(matches) {
	case 0:
		return &SearchResult{Outcome: SearchNoMatch}, nil
	case 1:
		return &SearchResult{Outcome: SearchSingleMatch, Note: matches[0]}, nil
	default:
		slugs := make([]string, len(matches))
		for i, note := range matches {
			slugs[i] = note.Slug
		}
		return &SearchResult{Outcome: SearchMultipleMatch, Slugs: slugs}, nil
	}
}

package services

import (
	"context"
	"strings"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/slug"
)

// TermService handles term operations, including the current-term selection.
type TermService struct {
	termStore TermStore
}

// NewTermService creates a new TermService.
func NewTermService(termStore TermStore) *TermService {
	return &TermService{termStore: termStore}
}

func validateTermFields(school string, session string) error {
	if strings.TrimSpace(school) == "" {
		return apperrors.NewValidationError("school", "school cannot be empty")
	}
	if len(school) > models.TermSchoolMaxLen {
		return apperrors.NewValidationError("school", "school is too long")
	}
	if strings.TrimSpace(session) == "" {
		return apperrors.NewValidationError("session", "session cannot be empty")
	}
	if len(session) > models.TermSessionMaxLen {
		return apperrors.NewValidationError("session", "session is too long")
	}
	return nil
}

// CreateTerm creates a term for the user, deriving its slug from the session
// label.
func (s *TermService) CreateTerm(ctx context.Context, userID int64, req *dto.CreateTermRequest) (*models.Term, error) {
	if err := validateTermFields(req.School, req.Session); err != nil {
		return nil, err
	}

	termSlug := slug.Make(req.Session)
	if termSlug == "" {
		return nil, apperrors.NewValidationError("session", "session must contain at least one letter or digit")
	}

	term := &models.Term{
		UserID:  userID,
		School:  strings.TrimSpace(req.School),
		Year:    req.Year,
		Session: strings.TrimSpace(req.Session),
		Slug:    termSlug,
	}

	id, err := s.termStore.CreateTerm(ctx, term)
	if err != nil {
		return nil, err
	}
	term.ID = id

	return term, nil
}

// GetTermBySlug retrieves one of the user's terms.
func (s *TermService) GetTermBySlug(ctx context.Context, userID int64, termSlug string) (*models.Term, error) {
	return s.termStore.GetTermBySlug(ctx, userID, termSlug)
}

// ListTerms retrieves a page of the user's terms.
func (s *TermService) ListTerms(ctx context.Context, userID int64, page int) ([]*models.Term, dto.PaginationInfo, error) {
	return s.termStore.ListTerms(ctx, userID, page)
}

// UpdateTerm updates a term's fields. The slug stays as derived at creation
// time even when the session label changes.
func (s *TermService) UpdateTerm(ctx context.Context, userID int64, termSlug string, req *dto.UpdateTermRequest) (*models.Term, error) {
	if err := validateTermFields(req.School, req.Session); err != nil {
		return nil, err
	}

	term, err := s.termStore.GetTermBySlug(ctx, userID, termSlug)
	if err != nil {
		return nil, err
	}

	term.School = strings.TrimSpace(req.School)
	term.Year = req.Year
	term.Session = strings.TrimSpace(req.Session)

	if err := s.termStore.UpdateTerm(ctx, term); err != nil {
		return nil, err
	}
	return term, nil
}

// DeleteTerm deletes a term and, via cascade, its courses and their notes.
func (s *TermService) DeleteTerm(ctx context.Context, userID int64, termSlug string) error {
	return s.termStore.DeleteTerm(ctx, userID, termSlug)
}

// SetCurrentTerm marks the named term current and clears the flag on all of
// the user's other terms.
func (s *TermService) SetCurrentTerm(ctx context.Context, userID int64, termSlug string) (*models.Term, error) {
	term, err := s.termStore.GetTermBySlug(ctx, userID, termSlug)
	if err != nil {
		return nil, err
	}

	if err := s.termStore.SetCurrentTerm(ctx, userID, term.ID); err != nil {
		return nil, err
	}

	term.Current = true
	return term, nil
}

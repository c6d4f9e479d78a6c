package services

import (
	"context"
	"time"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
)

// Services defined in this package:
// - AuthService: Handles registration, login and token refresh
// - TermService: Handles terms and the current-term selection
// - CourseService: Handles courses and their term assignment
// - ClassNoteService: Handles class notes and the title search

// The store interfaces below describe what each service needs from the
// repositories package. The concrete repositories satisfy them; tests swap in
// in-memory fakes.

// UserStore is the persistence surface AuthService needs for users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore is the persistence surface AuthService needs for refresh tokens.
type TokenStore interface {
	SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetUserIDByRefreshToken(ctx context.Context, token string) (int64, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// TermStore is the persistence surface for terms.
type TermStore interface {
	CreateTerm(ctx context.Context, term *models.Term) (int64, error)
	GetTermBySlug(ctx context.Context, userID int64, slug string) (*models.Term, error)
	ListTerms(ctx context.Context, userID int64, page int) ([]*models.Term, dto.PaginationInfo, error)
	UpdateTerm(ctx context.Context, term *models.Term) error
	DeleteTerm(ctx context.Context, userID int64, slug string) error
	SetCurrentTerm(ctx context.Context, userID, termID int64) error
}

// CourseStore is the persistence surface for courses.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseBySlug(ctx context.Context, userID int64, slug string) (*models.Course, error)
	ListCourses(ctx context.Context, userID int64, termID *int64, page int) ([]*models.Course, dto.PaginationInfo, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, userID int64, slug string) error
}

// ClassNoteStore is the persistence surface for class notes.
type ClassNoteStore interface {
	CreateNote(ctx context.Context, note *models.ClassNote) (int64, error)
	GetNoteBySlug(ctx context.Context, userID int64, slug string) (*models.ClassNote, error)
	ListNotes(ctx context.Context, userID int64, courseID *int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error)
	ListLatestNotes(ctx context.Context, userID int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error)
	ListAllNotes(ctx context.Context, userID int64) ([]*models.ClassNote, error)
	ListNotesBySlugs(ctx context.Context, userID int64, slugs []string) ([]*models.ClassNote, error)
	UpdateNote(ctx context.Context, note *models.ClassNote) error
	DeleteNote(ctx context.Context, userID int64, slug string) error
}

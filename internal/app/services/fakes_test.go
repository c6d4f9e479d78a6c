package services

import (
	"context"
	"time"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/helpers"
)

// In-memory store fakes. They keep rows in insertion order; tests insert in
// the order the real queries would return.

type fakeUserStore struct {
	users  []*models.User
	nextID int64
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if u.Username == user.Username {
			return 0, apperrors.NewValidationError("username", "username already taken")
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.users = append(f.users, &stored)
	return stored.ID, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	for _, u := range f.users {
		if u.ID == userID {
			now := time.Now()
			u.LastLoginAt = &now
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type storedToken struct {
	userID    int64
	token     string
	expiresAt time.Time
}

type fakeTokenStore struct {
	tokens []storedToken
}

func (f *fakeTokenStore) SaveRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	f.tokens = append(f.tokens, storedToken{userID: userID, token: token, expiresAt: expiresAt})
	return nil
}

func (f *fakeTokenStore) GetUserIDByRefreshToken(_ context.Context, token string) (int64, error) {
	for _, t := range f.tokens {
		if t.token == token && t.expiresAt.After(time.Now()) {
			return t.userID, nil
		}
	}
	return 0, apperrors.ErrTokenNotFound
}

func (f *fakeTokenStore) DeleteRefreshToken(_ context.Context, token string) error {
	for i, t := range f.tokens {
		if t.token == token {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeTermStore struct {
	terms  []*models.Term
	nextID int64
}

func (f *fakeTermStore) CreateTerm(_ context.Context, term *models.Term) (int64, error) {
	for _, t := range f.terms {
		if t.UserID == term.UserID && t.Slug == term.Slug {
			return 0, apperrors.NewValidationError("session", "a term with this session label already exists")
		}
	}
	f.nextID++
	stored := *term
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.terms = append(f.terms, &stored)
	return stored.ID, nil
}

func (f *fakeTermStore) GetTermBySlug(_ context.Context, userID int64, slug string) (*models.Term, error) {
	for _, t := range f.terms {
		if t.UserID == userID && t.Slug == slug {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperrors.ErrTermNotFound
}

func (f *fakeTermStore) ListTerms(_ context.Context, userID int64, page int) ([]*models.Term, dto.PaginationInfo, error) {
	var owned []*models.Term
	for _, t := range f.terms {
		if t.UserID == userID {
			copied := *t
			owned = append(owned, &copied)
		}
	}
	return owned, helpers.NewPaginationInfo(int64(len(owned)), page), nil
}

func (f *fakeTermStore) UpdateTerm(_ context.Context, term *models.Term) error {
	for _, t := range f.terms {
		if t.ID == term.ID && t.UserID == term.UserID {
			t.School = term.School
			t.Year = term.Year
			t.Session = term.Session
			t.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.ErrTermNotFound
}

func (f *fakeTermStore) DeleteTerm(_ context.Context, userID int64, slug string) error {
	for i, t := range f.terms {
		if t.UserID == userID && t.Slug == slug {
			f.terms = append(f.terms[:i], f.terms[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrTermNotFound
}

func (f *fakeTermStore) SetCurrentTerm(_ context.Context, userID, termID int64) error {
	found := false
	for _, t := range f.terms {
		if t.UserID == userID {
			t.Current = t.ID == termID
			found = true
		}
	}
	if !found {
		return apperrors.ErrTermNotFound
	}
	return nil
}

type fakeCourseStore struct {
	courses []*models.Course
	nextID  int64
}

func (f *fakeCourseStore) CreateCourse(_ context.Context, course *models.Course) (int64, error) {
	for _, c := range f.courses {
		// Codes collide across users.
		if c.Code == course.Code || c.Slug == course.Slug {
			return 0, apperrors.ErrCourseCodeExists
		}
	}
	f.nextID++
	stored := *course
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.courses = append(f.courses, &stored)
	return stored.ID, nil
}

func (f *fakeCourseStore) GetCourseBySlug(_ context.Context, userID int64, slug string) (*models.Course, error) {
	for _, c := range f.courses {
		if c.UserID == userID && c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) ListCourses(_ context.Context, userID int64, termID *int64, page int) ([]*models.Course, dto.PaginationInfo, error) {
	var owned []*models.Course
	for _, c := range f.courses {
		if c.UserID != userID {
			continue
		}
		if termID != nil && (c.TermID == nil || *c.TermID != *termID) {
			continue
		}
		copied := *c
		owned = append(owned, &copied)
	}
	return owned, helpers.NewPaginationInfo(int64(len(owned)), page), nil
}

func (f *fakeCourseStore) UpdateCourse(_ context.Context, course *models.Course) error {
	for _, c := range f.courses {
		if c.ID == course.ID && c.UserID == course.UserID {
			c.Code = course.Code
			c.Title = course.Title
			c.TermID = course.TermID
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) DeleteCourse(_ context.Context, userID int64, slug string) error {
	for i, c := range f.courses {
		if c.UserID == userID && c.Slug == slug {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

type fakeNoteStore struct {
	notes  []*models.ClassNote
	nextID int64
}

func (f *fakeNoteStore) CreateNote(_ context.Context, note *models.ClassNote) (int64, error) {
	for _, n := range f.notes {
		if n.UserID == note.UserID && n.Slug == note.Slug {
			return 0, apperrors.NewValidationError("title", "a note with this title already exists")
		}
	}
	f.nextID++
	stored := *note
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.notes = append(f.notes, &stored)
	return stored.ID, nil
}

func (f *fakeNoteStore) GetNoteBySlug(_ context.Context, userID int64, slug string) (*models.ClassNote, error) {
	for _, n := range f.notes {
		if n.UserID == userID && n.Slug == slug {
			copied := *n
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) filter(userID int64, courseID *int64) []*models.ClassNote {
	var owned []*models.ClassNote
	for _, n := range f.notes {
		if n.UserID != userID {
			continue
		}
		if courseID != nil && (n.CourseID == nil || *n.CourseID != *courseID) {
			continue
		}
		copied := *n
		owned = append(owned, &copied)
	}
	return owned
}

func (f *fakeNoteStore) ListNotes(_ context.Context, userID int64, courseID *int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	owned := f.filter(userID, courseID)
	return owned, helpers.NewPaginationInfo(int64(len(owned)), page), nil
}

func (f *fakeNoteStore) ListLatestNotes(_ context.Context, userID int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	owned := f.filter(userID, nil)
	return owned, helpers.NewPaginationInfo(int64(len(owned)), page), nil
}

func (f *fakeNoteStore) ListAllNotes(_ context.Context, userID int64) ([]*models.ClassNote, error) {
	return f.filter(userID, nil), nil
}

func (f *fakeNoteStore) ListNotesBySlugs(_ context.Context, userID int64, slugs []string) ([]*models.ClassNote, error) {
	wanted := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		wanted[s] = true
	}
	var matched []*models.ClassNote
	for _, n := range f.filter(userID, nil) {
		if wanted[n.Slug] {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func (f *fakeNoteStore) UpdateNote(_ context.Context, note *models.ClassNote) error {
	for _, n := range f.notes {
		if n.ID == note.ID && n.UserID == note.UserID {
			n.Title = note.Title
			n.Body = note.Body
			n.CourseID = note.CourseID
			n.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) DeleteNote(_ context.Context, userID int64, slug string) error {
	for i, n := range f.notes {
		if n.UserID == userID && n.Slug == slug {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNoteNotFound
}

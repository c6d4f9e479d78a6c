package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	TokenRepository     *TokenRepository
	TermRepository      *TermRepository
	CourseRepository    *CourseRepository
	ClassNoteRepository *ClassNoteRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		TokenRepository:     NewTokenRepository(db),
		TermRepository:      NewTermRepository(db),
		CourseRepository:    NewCourseRepository(db),
		ClassNoteRepository: NewClassNoteRepository(db),
	}
}

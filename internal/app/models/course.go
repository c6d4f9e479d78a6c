package models

import "time"

const (
	CourseCodeMaxLen  = 40
	CourseTitleMaxLen = 40
)

// Course represents a course owned by a user, optionally assigned to one of
// the user's terms. Course codes are unique across all users, so the slug
// derived from the code is globally unique as well.
type Course struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	TermID    *int64    `json:"-" db:"term_id"` // Nullable, a course may be unassigned
	Code      string    `json:"code" db:"code"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// TermSlug is populated on reads that join the parent term.
	TermSlug *string `json:"termSlug,omitempty" db:"term_slug"`
}

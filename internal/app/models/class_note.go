package models

import "time"

const NoteTitleMaxLen = 47

// ClassNote represents one note taken by a user, optionally filed under a
// course. CreatedAt is set once on insert and never changes. The slug is
// derived from the title at creation time and is immutable afterwards.
type ClassNote struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	CourseID  *int64    `json:"-" db:"course_id"` // Nullable, a note may be unfiled
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"` // Rich-text HTML, stored verbatim
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Populated on reads that join the parent course and its term.
	CourseSlug *string `json:"courseSlug,omitempty" db:"course_slug"`
	CourseCode *string `json:"courseCode,omitempty" db:"course_code"`
	TermSlug   *string `json:"termSlug,omitempty" db:"term_slug"`
}

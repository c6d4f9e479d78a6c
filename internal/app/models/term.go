package models

import "time"

// Field length bounds enforced at create/update time.
const (
	TermSchoolMaxLen  = 40
	TermSessionMaxLen = 40
)

// Term represents one academic term owned by a user, e.g. "Fall" at
// "University of Toronto" in 2024. The slug is derived from the session label
// at creation time and is immutable afterwards. At most one term per user has
// Current set.
type Term struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	School    string    `json:"school" db:"school"`
	Year      *int      `json:"year,omitempty" db:"year"` // Nullable
	Session   string    `json:"session" db:"session"`
	Slug      string    `json:"slug" db:"slug"`
	Current   bool      `json:"current" db:"current"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

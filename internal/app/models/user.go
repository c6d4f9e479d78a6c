package models

import (
	"time"
)

// User defines the user model based on the 'users' table. Every term, course
// and note row carries a foreign key back to its owning user.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                     // Unique identifier for the user
	Username    string     `json:"username" db:"username" example:"jdoe"`      // Login name, unique
	Email       string     `json:"email" db:"email" example:"jdoe@mail.com"`   // User's email address, unique
	Password    string     `json:"-" db:"password"`                            // Hashed password (excluded from JSON)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`                  // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`                  // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`   // Timestamp of the last login (nullable)
}

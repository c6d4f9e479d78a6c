package dto

// --- Request DTOs ---

// CreateTermRequest represents the data needed to create a new term.
type CreateTermRequest struct {
	School  string `json:"school" binding:"required,max=40" example:"University of Toronto"` // School name
	Year    *int   `json:"year,omitempty" example:"2024"`                                    // Academic year, optional
	Session string `json:"session" binding:"required,max=40" example:"Fall"`                 // Session label, slug source
}

// UpdateTermRequest represents the data needed to update a term. The slug is
// not re-derived from the new session label.
type UpdateTermRequest struct {
	School  string `json:"school" binding:"required,max=40" example:"University of Toronto"`
	Year    *int   `json:"year,omitempty" example:"2024"`
	Session string `json:"session" binding:"required,max=40" example:"Fall"`
}

// SetCurrentTermRequest selects which of the user's terms is current.
type SetCurrentTermRequest struct {
	TermSlug string `json:"termSlug" binding:"required" example:"fall"`
}

// --- Response DTOs ---

// TermResponse represents the data returned for a single term.
type TermResponse struct {
	Slug    string `json:"slug" example:"fall"`
	School  string `json:"school" example:"University of Toronto"`
	Year    *int   `json:"year,omitempty" example:"2024"`
	Session string `json:"session" example:"Fall"`
	Current bool   `json:"current" example:"true"`
}

// TermListResponse represents a page of terms with pagination metadata.
type TermListResponse struct {
	Terms      []TermResponse `json:"terms"`
	Pagination PaginationInfo `json:"pagination"`
}

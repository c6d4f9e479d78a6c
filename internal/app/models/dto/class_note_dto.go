package dto

// --- Request DTOs ---

// CreateNoteRequest represents the data needed to create a new class note.
// CourseSlug is optional: a note may be taken outside any course, and it is
// ignored when the note is created through a course-scoped route.
type CreateNoteRequest struct {
	Title      string  `json:"title" binding:"required,max=47" example:"Midterm Review"` // Note title, slug source
	Body       string  `json:"body" example:"<p>Chapters 1-5...</p>"`                    // Rich-text body
	CourseSlug *string `json:"courseSlug,omitempty" example:"csc108"`                    // Parent course, optional
}

// UpdateNoteRequest represents the data needed to update a class note. The
// slug is not re-derived from the new title, and the creation timestamp never
// changes.
type UpdateNoteRequest struct {
	Title      string  `json:"title" binding:"required,max=47" example:"Midterm Review"`
	Body       string  `json:"body" example:"<p>Chapters 1-6...</p>"`
	CourseSlug *string `json:"courseSlug,omitempty" example:"csc108"`
}

// --- Response DTOs ---

// NoteResponse represents the data returned for a single class note.
type NoteResponse struct {
	Slug       string  `json:"slug" example:"midterm-review"`
	Title      string  `json:"title" example:"Midterm Review"`
	Body       string  `json:"body" example:"<p>Chapters 1-5...</p>"`
	CourseSlug *string `json:"courseSlug,omitempty" example:"csc108"`
	CourseCode *string `json:"courseCode,omitempty" example:"CSC108"`
	TermSlug   *string `json:"termSlug,omitempty" example:"fall"`
	CreatedAt  string  `json:"createdAt" example:"2024-01-15T10:00:00Z"`
	UpdatedAt  string  `json:"updatedAt" example:"2024-01-16T11:30:00Z"`
}

// NoteListResponse represents a page of class notes with pagination metadata.
type NoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	Pagination PaginationInfo `json:"pagination"`
}

// SearchRedirectResponse carries the location the client should follow after
// a title search, mirroring the 302 target.
type SearchRedirectResponse struct {
	Location string `json:"location" example:"/api/v1/notes/midterm-review"`
}

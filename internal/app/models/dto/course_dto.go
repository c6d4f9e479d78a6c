package dto

// --- Request DTOs ---

// CreateCourseRequest represents the data needed to create a new course.
// TermSlug is optional: a course may start out unassigned to any term, and it
// is ignored when the course is created through a term-scoped route.
type CreateCourseRequest struct {
	Code     string  `json:"code" binding:"required,max=40" example:"CSC108"`               // Course code, unique across all users, slug source
	Title    string  `json:"title" binding:"required,max=40" example:"Intro to Programming"` // Course title
	TermSlug *string `json:"termSlug,omitempty" example:"fall"`                             // Parent term, optional
}

// UpdateCourseRequest represents the data needed to update a course. The slug
// is not re-derived from the new code.
type UpdateCourseRequest struct {
	Code     string  `json:"code" binding:"required,max=40" example:"CSC108"`
	Title    string  `json:"title" binding:"required,max=40" example:"Intro to Programming"`
	TermSlug *string `json:"termSlug,omitempty" example:"fall"`
}

// --- Response DTOs ---

// CourseResponse represents the data returned for a single course.
type CourseResponse struct {
	Slug     string  `json:"slug" example:"csc108"`
	Code     string  `json:"code" example:"CSC108"`
	Title    string  `json:"title" example:"Intro to Programming"`
	TermSlug *string `json:"termSlug,omitempty" example:"fall"`
}

// CourseListResponse represents a page of courses with pagination metadata.
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/app/services"
	"github.com/scribnotes/scribnotes/internal/middleware"
	"github.com/scribnotes/scribnotes/internal/pkg/helpers"
	"github.com/scribnotes/scribnotes/internal/pkg/logger"
)

// CourseController handles course related operations, including the
// term-scoped listing and creation routes.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

func toCourseResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		Slug:     course.Slug,
		Code:     course.Code,
		Title:    course.Title,
		TermSlug: course.TermSlug,
	}
}

func (c *CourseController) emptyCoursePage(ctx *gin.Context, page int) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CourseListResponse{
			Courses:    []dto.CourseResponse{},
			Pagination: helpers.NewPaginationInfo(0, page),
		},
	})
}

func (c *CourseController) listCourses(ctx *gin.Context, termSlug *string) {
	page := helpers.ParsePageParam(ctx)

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		c.emptyCoursePage(ctx, page)
		return
	}

	courses, pagination, err := c.courseService.ListCourses(ctx.Request.Context(), userID, termSlug, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = toCourseResponse(course)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CourseListResponse{Courses: responses, Pagination: pagination},
	})
}

// ListCourses lists the user's courses
// @Summary List courses
// @Description Returns a page of the user's courses ordered by code. Anonymous requests get an empty page.
// @Tags courses
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	c.listCourses(ctx, nil)
}

// ListCoursesByTerm lists the user's courses under one term
// @Summary List courses in a term
// @Description Returns a page of the user's courses filed under the named term
// @Tags courses
// @Produce json
// @Param termSlug path string true "Term slug"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms/{termSlug}/courses [get]
func (c *CourseController) ListCoursesByTerm(ctx *gin.Context) {
	termSlug := ctx.Param("termSlug")
	c.listCourses(ctx, &termSlug)
}

func (c *CourseController) createCourse(ctx *gin.Context, termSlug *string) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	// The route-scoped term wins over whatever the body carries.
	if termSlug != nil {
		req.TermSlug = termSlug
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("userId", userID).Str("slug", course.Slug).Msg("Course created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: toCourseResponse(course)})
}

// CreateCourse creates a new course
// @Summary Create a course
// @Description Creates a course owned by the authenticated user. The slug is derived from the code, which is unique across all users.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	c.createCourse(ctx, nil)
}

// CreateCourseInTerm creates a new course under a term
// @Summary Create a course in a term
// @Description Creates a course filed under the named term
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param termSlug path string true "Term slug"
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms/{termSlug}/courses [post]
func (c *CourseController) CreateCourseInTerm(ctx *gin.Context) {
	termSlug := ctx.Param("termSlug")
	c.createCourse(ctx, &termSlug)
}

// UpdateCourse updates a course
// @Summary Update a course
// @Description Updates a course's fields. The slug never changes.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseSlug path string true "Course slug"
// @Param request body dto.UpdateCourseRequest true "Course data"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseSlug} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), userID, ctx.Param("courseSlug"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toCourseResponse(course)})
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Description Deletes a course together with its notes
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseSlug path string true "Course slug"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseSlug} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	courseSlug := ctx.Param("courseSlug")
	if err := c.courseService.DeleteCourse(ctx.Request.Context(), userID, courseSlug); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("userId", userID).Str("slug", courseSlug).Msg("Course deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Course deleted"}})
}

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

// TermController handles term related operations.
type TermController struct {
	termService *services.TermService
}

// NewTermController creates a new TermController.
func NewTermController(termService *services.TermService) *TermController {
	return &TermController{termService: termService}
}

func toTermResponse(term *models.Term) dto.TermResponse {
	return dto.TermResponse{
		Slug:    term.Slug,
		School:  term.School,
		Year:    term.Year,
		Session: term.Session,
		Current: term.Current,
	}
}

// ListTerms lists the user's terms
// @Summary List terms
// @Description Returns a page of the user's terms, most recent year first. Anonymous requests get an empty page.
// @Tags terms
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.APIResponse{data=dto.TermListResponse} "Terms"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms [get]
func (c *TermController) ListTerms(ctx *gin.Context) {
	page := helpers.ParsePageParam(ctx)

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data: dto.TermListResponse{
				Terms:      []dto.TermResponse{},
				Pagination: helpers.NewPaginationInfo(0, page),
			},
		})
		return
	}

	terms, pagination, err := c.termService.ListTerms(ctx.Request.Context(), userID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.TermResponse, len(terms))
	for i, term := range terms {
		responses[i] = toTermResponse(term)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.TermListResponse{Terms: responses, Pagination: pagination},
	})
}

// CreateTerm creates a new term
// @Summary Create a term
// @Description Creates a term owned by the authenticated user. The slug is derived from the session label.
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTermRequest true "Term data"
// @Success 201 {object} dto.APIResponse{data=dto.TermResponse} "Term created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms [post]
func (c *TermController) CreateTerm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateTermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	term, err := c.termService.CreateTerm(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("userId", userID).Str("slug", term.Slug).Msg("Term created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: toTermResponse(term)})
}

// UpdateTerm updates a term
// @Summary Update a term
// @Description Updates a term's fields. The slug never changes.
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param termSlug path string true "Term slug"
// @Param request body dto.UpdateTermRequest true "Term data"
// @Success 200 {object} dto.APIResponse{data=dto.TermResponse} "Term updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms/{termSlug} [put]
func (c *TermController) UpdateTerm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateTermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	term, err := c.termService.UpdateTerm(ctx.Request.Context(), userID, ctx.Param("termSlug"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toTermResponse(term)})
}

// DeleteTerm deletes a term
// @Summary Delete a term
// @Description Deletes a term together with its courses and their notes
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param termSlug path string true "Term slug"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Term deleted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms/{termSlug} [delete]
func (c *TermController) DeleteTerm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	termSlug := ctx.Param("termSlug")
	if err := c.termService.DeleteTerm(ctx.Request.Context(), userID, termSlug); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("userId", userID).Str("slug", termSlug).Msg("Term deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Term deleted"}})
}

// SetCurrentTerm marks a term as current
// @Summary Set the current term
// @Description Marks the named term current and clears the flag on every other term the user owns
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetCurrentTermRequest true "Term selection"
// @Success 200 {object} dto.APIResponse{data=dto.TermResponse} "Current term set"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms/current [put]
func (c *TermController) SetCurrentTerm(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.SetCurrentTermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	term, err := c.termService.SetCurrentTerm(ctx.Request.Context(), userID, req.TermSlug)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("userId", userID).Str("slug", term.Slug).Msg("Current term set")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toTermResponse(term)})
}

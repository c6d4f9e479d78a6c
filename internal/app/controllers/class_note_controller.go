package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/app/services"
	"github.com/scribnotes/scribnotes/internal/middleware"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/helpers"
	"github.com/scribnotes/scribnotes/internal/pkg/logger"
)

const apiNotesBase = "/api/v1/notes"

// ClassNoteController handles class note operations, the dashboard listing
// and the title search.
type ClassNoteController struct {
	noteService *services.ClassNoteService
}

// NewClassNoteController creates a new ClassNoteController.
func NewClassNoteController(noteService *services.ClassNoteService) *ClassNoteController {
	return &ClassNoteController{noteService: noteService}
}

func toNoteResponse(note *models.ClassNote) dto.NoteResponse {
	return dto.NoteResponse{
		Slug:       note.Slug,
		Title:      note.Title,
		Body:       note.Body,
		CourseSlug: note.CourseSlug,
		CourseCode: note.CourseCode,
		TermSlug:   note.TermSlug,
		CreatedAt:  note.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  note.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toNoteResponses(notes []*models.ClassNote) []dto.NoteResponse {
	responses := make([]dto.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = toNoteResponse(note)
	}
	return responses
}

func (c *ClassNoteController) emptyNotePage(ctx *gin.Context, page int) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.NoteListResponse{
			Notes:      []dto.NoteResponse{},
			Pagination: helpers.NewPaginationInfo(0, page),
		},
	})
}

func (c *ClassNoteController) listNotes(ctx *gin.Context, courseSlug *string) {
	page := helpers.ParsePageParam(ctx)

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		c.emptyNotePage(ctx, page)
		return
	}

	notes, pagination, err := c.noteService.ListNotes(ctx.Request.Context(), userID, courseSlug, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.NoteListResponse{Notes: toNoteResponses(notes), Pagination: pagination},
	})
}

// ListNotes lists the user's notes
// @Summary List notes
// @Description Returns a page of the user's notes grouped by course code, unfiled notes last. Anonymous requests get an empty page.
// @Tags notes
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse} "Notes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes [get]
func (c *ClassNoteController) ListNotes(ctx *gin.Context) {
	c.listNotes(ctx, nil)
}

// ListNotesByCourse lists the user's notes under one course
// @Summary List notes in a course
// @Description Returns a page of the user's notes filed under the named course
// @Tags notes
// @Produce json
// @Param courseSlug path string true "Course slug"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse} "Notes"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseSlug}/notes [get]
func (c *ClassNoteController) ListNotesByCourse(ctx *gin.Context) {
	courseSlug := ctx.Param("courseSlug")
	c.listNotes(ctx, &courseSlug)
}

// ListLatestNotes lists the user's notes newest first
// @Summary List latest notes
// @Description Returns a page of the user's notes ordered by creation time, newest first
// @Tags notes
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse} "Notes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/latest [get]
func (c *ClassNoteController) ListLatestNotes(ctx *gin.Context) {
	page := helpers.ParsePageParam(ctx)

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		c.emptyNotePage(ctx, page)
		return
	}

	notes, pagination, err := c.noteService.ListLatestNotes(ctx.Request.Context(), userID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.NoteListResponse{Notes: toNoteResponses(notes), Pagination: pagination},
	})
}

// GetNote retrieves a single note
// @Summary Get a note
// @Description Returns one of the user's notes by slug
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param noteSlug path string true "Note slug"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse} "Note"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{noteSlug} [get]
func (c *ClassNoteController) GetNote(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		// An anonymous reader learns nothing about which slugs exist.
		middleware.HandleAPIError(ctx, apperrors.ErrNoteNotFound)
		return
	}

	note, err := c.noteService.GetNoteBySlug(ctx.Request.Context(), userID, ctx.Param("noteSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toNoteResponse(note)})
}

// CreateNote creates a new note
// @Summary Create a note
// @Description Creates a class note owned by the authenticated user. The slug is derived from the title.
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoteRequest true "Note data"
// @Success 201 {object} dto.APIResponse{data=dto.NoteResponse} "Note created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes [post]
func (c *ClassNoteController) CreateNote(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	note, err := c.noteService.CreateNote(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("userId", userID).Str("slug", note.Slug).Msg("Note created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: toNoteResponse(note)})
}

// UpdateNote updates a note
// @Summary Update a note
// @Description Updates a note's fields. The slug and creation timestamp never change.
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param noteSlug path string true "Note slug"
// @Param request body dto.UpdateNoteRequest true "Note data"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse} "Note updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{noteSlug} [put]
func (c *ClassNoteController) UpdateNote(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	note, err := c.noteService.UpdateNote(ctx.Request.Context(), userID, ctx.Param("noteSlug"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toNoteResponse(note)})
}

// DeleteNote deletes a note
// @Summary Delete a note
// @Description Deletes one of the user's notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param noteSlug path string true "Note slug"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Note deleted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{noteSlug} [delete]
func (c *ClassNoteController) DeleteNote(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	noteSlug := ctx.Param("noteSlug")
	if err := c.noteService.DeleteNote(ctx.Request.Context(), userID, noteSlug); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logger.Info().Int64("userId", userID).Str("slug", noteSlug).Msg("Note deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Note deleted"}})
}

// SearchNotes searches notes by title
// @Summary Search notes by title
// @Description Matches the query against note titles after lowercasing and removing whitespace. Redirects to the single match, to a disambiguation listing for several matches, or to the full listing for none.
// @Tags notes
// @Produce json
// @Param title query string true "Title fragment"
// @Success 302 "Redirect to the matching note, the disambiguation listing, or the full listing"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /search [get]
func (c *ClassNoteController) SearchNotes(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, apiNotesBase)
		return
	}

	result, err := c.noteService.SearchByTitle(ctx.Request.Context(), userID, ctx.Query("title"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	switch result.Outcome {
	case services.SearchSingleMatch:
		ctx.Redirect(http.StatusFound, apiNotesBase+"/"+result.Note.Slug)
	case services.SearchMultipleMatch:
		ctx.Redirect(http.StatusFound, apiNotesBase+"/batch/"+strings.Join(result.Slugs, "+"))
	default:
		ctx.Redirect(http.StatusFound, apiNotesBase)
	}
}

// GetNotesBatch retrieves several notes by their slugs
// @Summary Get a batch of notes
// @Description Returns the notes named by a +-joined slug list, in the canonical listing order. Used as the search disambiguation target.
// @Tags notes
// @Produce json
// @Param slugs path string true "Note slugs joined with +"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse} "Notes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/batch/{slugs} [get]
func (c *ClassNoteController) GetNotesBatch(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data: dto.NoteListResponse{
				Notes:      []dto.NoteResponse{},
				Pagination: helpers.NewPaginationInfo(0, helpers.DefaultPage),
			},
		})
		return
	}

	var slugs []string
	for _, s := range strings.Split(ctx.Param("slugs"), "+") {
		if s != "" {
			slugs = append(slugs, s)
		}
	}

	notes, err := c.noteService.ListNotesBySlugs(ctx.Request.Context(), userID, slugs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.NoteListResponse{
			Notes:      toNoteResponses(notes),
			Pagination: helpers.NewPaginationInfo(int64(len(notes)), helpers.DefaultPage),
		},
	})
}

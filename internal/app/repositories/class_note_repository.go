package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scribnotes/scribnotes/internal/app/models"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/dberrors"
	"github.com/scribnotes/scribnotes/internal/pkg/helpers"
	"github.com/scribnotes/scribnotes/internal/pkg/logger"
)

// ClassNoteRepository handles database operations for ClassNote. Reads join
// the parent course and its term so responses can carry the full canonical
// path (term slug / course slug / note slug).
type ClassNoteRepository struct {
	DB *pgxpool.Pool
}

// NewClassNoteRepository creates a new instance of ClassNoteRepository.
func NewClassNoteRepository(db *pgxpool.Pool) *ClassNoteRepository {
	return &ClassNoteRepository{DB: db}
}

func (r *ClassNoteRepository) selectNoteQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"n.id", "n.user_id", "n.course_id", "n.title", "n.body", "n.slug",
		"n.created_at", "n.updated_at",
		"c.slug AS course_slug", "c.code AS course_code", "t.slug AS term_slug",
	).From("class_notes n").
		LeftJoin("courses c ON n.course_id = c.id").
		LeftJoin("terms t ON c.term_id = t.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanNote(row pgx.Row) (*models.ClassNote, error) {
	var note models.ClassNote
	err := row.Scan(
		&note.ID, &note.UserID, &note.CourseID, &note.Title, &note.Body,
		&note.Slug, &note.CreatedAt, &note.UpdatedAt,
		&note.CourseSlug, &note.CourseCode, &note.TermSlug,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning class note row")
		return nil, err
	}
	return &note, nil
}

// canonicalOrder groups notes by course code, unfiled notes last, newest
// first within each group.
var canonicalOrder = []string{"c.code ASC NULLS LAST", "n.created_at DESC"}

// CreateNote inserts a new class note and returns its ID.
func (r *ClassNoteRepository) CreateNote(ctx context.Context, note *models.ClassNote) (int64, error) {
	sql, args, err := squirrel.Insert("class_notes").
		Columns("user_id", "course_id", "title", "body", "slug").
		Values(note.UserID, note.CourseID, note.Title, note.Body, note.Slug).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create class note SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewValidationError("title", "a note with this title already exists")
		}
		logger.Error().Err(err).Msg("Error executing create class note query")
		return 0, err
	}
	return id, nil
}

// GetNoteBySlug retrieves one of the user's notes by slug.
func (r *ClassNoteRepository) GetNoteBySlug(ctx context.Context, userID int64, slug string) (*models.ClassNote, error) {
	sqlStr, args, err := r.selectNoteQuery().
		Where(squirrel.Eq{"n.user_id": userID, "n.slug": slug}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get class note by slug SQL")
		return nil, err
	}
	return scanNote(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListNotes retrieves a page of the user's notes in canonical order,
// optionally narrowed to one course.
func (r *ClassNoteRepository) ListNotes(ctx context.Context, userID int64, courseID *int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").
		From("class_notes n").
		Where(squirrel.Eq{"n.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := r.selectNoteQuery().Where(squirrel.Eq{"n.user_id": userID})

	if courseID != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"n.course_id": *courseID})
		listBuilder = listBuilder.Where(squirrel.Eq{"n.course_id": *courseID})
	}

	return r.listPage(ctx, countBuilder, listBuilder.OrderBy(canonicalOrder...), page)
}

// ListLatestNotes retrieves a page of the user's notes ordered newest first,
// regardless of course. Used for the dashboard listing.
func (r *ClassNoteRepository) ListLatestNotes(ctx context.Context, userID int64, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").
		From("class_notes n").
		Where(squirrel.Eq{"n.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := r.selectNoteQuery().
		Where(squirrel.Eq{"n.user_id": userID}).
		OrderBy("n.created_at DESC")

	return r.listPage(ctx, countBuilder, listBuilder, page)
}

func (r *ClassNoteRepository) listPage(ctx context.Context, countBuilder, listBuilder squirrel.SelectBuilder, page int) ([]*models.ClassNote, dto.PaginationInfo, error) {
	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count class notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count class notes query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page)
	if totalItems == 0 {
		return []*models.ClassNote{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page)
	sqlStr, args, err := listBuilder.Limit(uint64(limit)).Offset(offset).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list class notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list class notes query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	notes := make([]*models.ClassNote, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating class note rows")
		return nil, dto.PaginationInfo{}, err
	}

	return notes, pagination, nil
}

// ListAllNotes retrieves every note the user owns in canonical order. The
// title search scans this set linearly.
func (r *ClassNoteRepository) ListAllNotes(ctx context.Context, userID int64) ([]*models.ClassNote, error) {
	sqlStr, args, err := r.selectNoteQuery().
		Where(squirrel.Eq{"n.user_id": userID}).
		OrderBy(canonicalOrder...).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list all class notes SQL")
		return nil, err
	}
	return r.queryNotes(ctx, sqlStr, args)
}

// ListNotesBySlugs retrieves the user's notes matching any of the given
// slugs, in canonical order. Used for the search disambiguation listing.
func (r *ClassNoteRepository) ListNotesBySlugs(ctx context.Context, userID int64, slugs []string) ([]*models.ClassNote, error) {
	sqlStr, args, err := r.selectNoteQuery().
		Where(squirrel.Eq{"n.user_id": userID, "n.slug": slugs}).
		OrderBy(canonicalOrder...).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list class notes by slugs SQL")
		return nil, err
	}
	return r.queryNotes(ctx, sqlStr, args)
}

func (r *ClassNoteRepository) queryNotes(ctx context.Context, sqlStr string, args []interface{}) ([]*models.ClassNote, error) {
	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing class notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.ClassNote, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating class note rows")
		return nil, err
	}
	return notes, nil
}

// UpdateNote updates a note's mutable fields. The slug and creation
// timestamp stay as set at creation time.
func (r *ClassNoteRepository) UpdateNote(ctx context.Context, note *models.ClassNote) error {
	sql, args, err := squirrel.Update("class_notes").
		Set("title", note.Title).
		Set("body", note.Body).
		Set("course_id", note.CourseID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": note.ID, "user_id": note.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update class note SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update class note query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// DeleteNote deletes one of the user's notes.
func (r *ClassNoteRepository) DeleteNote(ctx context.Context, userID int64, slug string) error {
	sql, args, err := squirrel.Delete("class_notes").
		Where(squirrel.Eq{"user_id": userID, "slug": slug}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete class note SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete class note query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

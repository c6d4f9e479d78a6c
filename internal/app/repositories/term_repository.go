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

// TermRepository handles database operations for Term. Every query is scoped
// to the owning user: a slug belonging to another user behaves exactly like a
// slug that does not exist.
type TermRepository struct {
	DB *pgxpool.Pool
}

// NewTermRepository creates a new instance of TermRepository.
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{DB: db}
}

func (r *TermRepository) selectTermQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "school", "year", "session", "slug", "current",
		"created_at", "updated_at",
	).From("terms").PlaceholderFormat(squirrel.Dollar)
}

func scanTerm(row pgx.Row) (*models.Term, error) {
	var term models.Term
	err := row.Scan(
		&term.ID, &term.UserID, &term.School, &term.Year, &term.Session,
		&term.Slug, &term.Current, &term.CreatedAt, &term.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTermNotFound
		}
		logger.Error().Err(err).Msg("Error scanning term row")
		return nil, err
	}
	return &term, nil
}

// CreateTerm inserts a new term and returns its ID. The slug must already be
// derived by the caller.
func (r *TermRepository) CreateTerm(ctx context.Context, term *models.Term) (int64, error) {
	sql, args, err := squirrel.Insert("terms").
		Columns("user_id", "school", "year", "session", "slug", "current").
		Values(term.UserID, term.School, term.Year, term.Session, term.Slug, term.Current).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create term SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewValidationError("session", "a term with this session label already exists")
		}
		logger.Error().Err(err).Msg("Error executing create term query")
		return 0, err
	}
	return id, nil
}

// GetTermBySlug retrieves one of the user's terms by slug.
func (r *TermRepository) GetTermBySlug(ctx context.Context, userID int64, slug string) (*models.Term, error) {
	sqlStr, args, err := r.selectTermQuery().
		Where(squirrel.Eq{"user_id": userID, "slug": slug}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get term by slug SQL")
		return nil, err
	}
	return scanTerm(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListTerms retrieves a page of the user's terms ordered by year descending,
// most recent session first within the same year.
func (r *TermRepository) ListTerms(ctx context.Context, userID int64, page int) ([]*models.Term, dto.PaginationInfo, error) {
	countSql, countArgs, err := squirrel.Select("count(*)").
		From("terms").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count terms SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count terms query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page)
	if totalItems == 0 {
		return []*models.Term{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page)
	sqlStr, args, err := r.selectTermQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("year DESC NULLS LAST", "created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list terms SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list terms query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	terms := make([]*models.Term, 0)
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		terms = append(terms, term)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating term rows")
		return nil, dto.PaginationInfo{}, err
	}

	return terms, pagination, nil
}

// UpdateTerm updates a term's mutable fields. The slug stays as derived at
// creation time even when the session label changes.
func (r *TermRepository) UpdateTerm(ctx context.Context, term *models.Term) error {
	sql, args, err := squirrel.Update("terms").
		Set("school", term.School).
		Set("year", term.Year).
		Set("session", term.Session).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": term.ID, "user_id": term.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update term SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update term query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}
	return nil
}

// DeleteTerm deletes one of the user's terms. Courses under the term and
// their notes go with it via ON DELETE CASCADE.
func (r *TermRepository) DeleteTerm(ctx context.Context, userID int64, slug string) error {
	sql, args, err := squirrel.Delete("terms").
		Where(squirrel.Eq{"user_id": userID, "slug": slug}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete term SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete term query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}
	return nil
}

// SetCurrentTerm marks one term current and clears the flag on every other
// term the user owns, in a single statement so concurrent selections cannot
// leave zero or two current terms.
func (r *TermRepository) SetCurrentTerm(ctx context.Context, userID, termID int64) error {
	cmdTag, err := r.DB.Exec(ctx,
		`UPDATE terms SET current = (id = $1), updated_at = now() WHERE user_id = $2`,
		termID, userID,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing set current term query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}
	return nil
}

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

// CourseRepository handles database operations for Course. Reads join the
// parent term so responses can reference it by slug. Course codes are unique
// across all users, matching the original product behavior.
type CourseRepository struct {
	DB *pgxpool.Pool
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) selectCourseQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.user_id", "c.term_id", "c.code", "c.title", "c.slug",
		"c.created_at", "c.updated_at", "t.slug AS term_slug",
	).From("courses c").
		LeftJoin("terms t ON c.term_id = t.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.UserID, &course.TermID, &course.Code, &course.Title,
		&course.Slug, &course.CreatedAt, &course.UpdatedAt, &course.TermSlug,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, err
	}
	return &course, nil
}

// CreateCourse inserts a new course and returns its ID. A code collision with
// any user's course is reported as ErrCourseCodeExists.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := squirrel.Insert("courses").
		Columns("user_id", "term_id", "code", "title", "slug").
		Values(course.UserID, course.TermID, course.Code, course.Title, course.Slug).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, err
	}
	return id, nil
}

// GetCourseBySlug retrieves one of the user's courses by slug.
func (r *CourseRepository) GetCourseBySlug(ctx context.Context, userID int64, slug string) (*models.Course, error) {
	sqlStr, args, err := r.selectCourseQuery().
		Where(squirrel.Eq{"c.user_id": userID, "c.slug": slug}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by slug SQL")
		return nil, err
	}
	return scanCourse(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListCourses retrieves a page of the user's courses ordered by code,
// optionally narrowed to one term.
func (r *CourseRepository) ListCourses(ctx context.Context, userID int64, termID *int64, page int) ([]*models.Course, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").
		From("courses c").
		Where(squirrel.Eq{"c.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := r.selectCourseQuery().Where(squirrel.Eq{"c.user_id": userID})

	if termID != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"c.term_id": *termID})
		listBuilder = listBuilder.Where(squirrel.Eq{"c.term_id": *termID})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page)
	if totalItems == 0 {
		return []*models.Course{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page)
	sqlStr, args, err := listBuilder.
		OrderBy("c.code ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		courses = append(courses, course)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, dto.PaginationInfo{}, err
	}

	return courses, pagination, nil
}

// UpdateCourse updates a course's mutable fields. The slug stays as derived
// at creation time even when the code changes.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := squirrel.Update("courses").
		Set("code", course.Code).
		Set("title", course.Title).
		Set("term_id", course.TermID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": course.ID, "user_id": course.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Msg("Error executing update course query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse deletes one of the user's courses. Notes filed under the
// course go with it via ON DELETE CASCADE.
func (r *CourseRepository) DeleteCourse(ctx context.Context, userID int64, slug string) error {
	sql, args, err := squirrel.Delete("courses").
		Where(squirrel.Eq{"user_id": userID, "slug": slug}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete course query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scribnotes/scribnotes/internal/pkg/apperrors"
	"github.com/scribnotes/scribnotes/internal/pkg/logger"
)

// TokenRepository handles database operations for refresh tokens.
type TokenRepository struct {
	DB *pgxpool.Pool
}

// NewTokenRepository creates a new instance of TokenRepository.
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{DB: db}
}

// SaveRefreshToken stores a refresh token for a user.
func (r *TokenRepository) SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	sql, args, err := squirrel.Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(userID, token, expiresAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save refresh token SQL")
		return err
	}

	_, err = r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing save refresh token query")
		return err
	}
	return nil
}

// GetUserIDByRefreshToken resolves an unexpired refresh token to its owner.
func (r *TokenRepository) GetUserIDByRefreshToken(ctx context.Context, token string) (int64, error) {
	sqlStr, args, err := squirrel.Select("user_id").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Expr("expires_at > now()")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get refresh token SQL")
		return 0, err
	}

	var userID int64
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error executing get refresh token query")
		return 0, err
	}
	return userID, nil
}

// DeleteRefreshToken removes a refresh token after rotation.
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	sql, args, err := squirrel.Delete("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete refresh token SQL")
		return err
	}

	_, err = r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete refresh token query")
		return err
	}
	return nil
}

// DeleteExpiredTokens prunes refresh tokens past their expiry.
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	sql, args, err := squirrel.Delete("refresh_tokens").
		Where(squirrel.Expr("expires_at <= now()")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete expired tokens SQL")
		return err
	}

	_, err = r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete expired tokens query")
		return err
	}
	return nil
}

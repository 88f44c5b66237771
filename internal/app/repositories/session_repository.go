package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/dberrors"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// SessionRepository handles session token database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new session token
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns("token", "subject_id", "scope", "created_at", "expires_at").
		Values(session.Token, session.SubjectID, session.Scope, session.CreatedAt, session.ExpiresAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "sessions_token_key") {
			logger.Warn().Msg("Attempted to create duplicate session token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("subjectID", session.SubjectID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetByToken retrieves a session by its token value
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	sql, args, err := r.sb.Select("token", "subject_id", "scope", "created_at", "expires_at").
		From("sessions").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var session models.Session
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&session.Token,
		&session.SubjectID,
		&session.Scope,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Msg("Error scanning session row")
		return nil, fmt.Errorf("error getting session: %w", err)
	}

	return &session, nil
}

// Delete removes a session token. Deleting a missing token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	sql, args, err := r.sb.Delete("sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete session SQL")
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

// DeleteExpired purges all sessions past their expiry
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("sessions").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge sessions query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging expired sessions: %w", err)
	}

	return result.RowsAffected(), nil
}

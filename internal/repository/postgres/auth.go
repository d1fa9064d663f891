package postgres

import (
	"context"
	"database/sql"

	"github.com/billfold/billfold/internal/domain/auth"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/postgres"
	"github.com/cockroachdb/errors"
)

type authRepository struct {
	db     *postgres.Client
	logger *logger.Logger
}

func NewAuthRepository(db *postgres.Client, log *logger.Logger) auth.Repository {
	return &authRepository{db: db, logger: log}
}

func (r *authRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	query := `
		INSERT INTO auths (user_id, token, created_at, updated_at)
		VALUES (:user_id, :token, :created_at, :updated_at)`

	_, err := r.db.Querier(ctx).NamedExecContext(ctx, query, a)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("Credentials already exist for this user").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to store credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	var a auth.Auth
	query := `SELECT * FROM auths WHERE user_id = $1`
	err := r.db.Querier(ctx).GetContext(ctx, &a, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Credentials not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get credentials").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *authRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	query := `UPDATE auths SET token = :token, updated_at = :updated_at WHERE user_id = :user_id`
	res, err := r.db.Querier(ctx).NamedExecContext(ctx, query, a)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update credentials").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("credentials not found").
			WithHint("Credentials not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

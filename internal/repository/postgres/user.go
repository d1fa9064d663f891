package postgres

import (
	"context"
	"database/sql"

	"github.com/billfold/billfold/internal/domain/user"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/postgres"
	"github.com/billfold/billfold/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

type userRepository struct {
	db     *postgres.Client
	logger *logger.Logger
}

func NewUserRepository(db *postgres.Client, log *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: log}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :email, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	_, err := r.db.Querier(ctx).NamedExecContext(ctx, query, u)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	query := `SELECT * FROM users WHERE id = $1 AND status != $2`
	err := r.db.Querier(ctx).GetContext(ctx, &u, query, id, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	query := `SELECT * FROM users WHERE email = $1 AND status != $2`
	err := r.db.Querier(ctx).GetContext(ctx, &u, query, email, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a postgres unique constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

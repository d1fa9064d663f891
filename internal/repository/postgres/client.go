package postgres

import (
	"context"
	"database/sql"

	domain "github.com/billfold/billfold/internal/domain/client"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/postgres"
	"github.com/billfold/billfold/internal/types"
	"github.com/cockroachdb/errors"
)

type clientRepository struct {
	db     *postgres.Client
	logger *logger.Logger
}

func NewClientRepository(db *postgres.Client, log *logger.Logger) domain.Repository {
	return &clientRepository{db: db, logger: log}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `
		INSERT INTO clients (id, owner_id, name, email, phone, address, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :owner_id, :name, :email, :phone, :address, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	_, err := r.db.Querier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	query := `SELECT * FROM clients WHERE id = $1 AND tenant_id = $2 AND status != $3`
	err := r.db.Querier(ctx).GetContext(ctx, &c, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Client not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context, filter *types.ClientFilter) ([]*domain.Client, error) {
	query := `SELECT * FROM clients WHERE tenant_id = $1 AND status != $2 AND owner_id = $3`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted, types.GetUserID(ctx)}

	if filter != nil && filter.Email != "" {
		args = append(args, filter.Email)
		query += ` AND email = $` + itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`
	if filter != nil && !filter.IsUnlimited() {
		query += ` LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	clients := make([]*domain.Client, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list clients").
			Mark(ierr.ErrDatabase)
	}
	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, filter *types.ClientFilter) (int, error) {
	query := `SELECT COUNT(*) FROM clients WHERE tenant_id = $1 AND status != $2 AND owner_id = $3`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted, types.GetUserID(ctx)}

	if filter != nil && filter.Email != "" {
		args = append(args, filter.Email)
		query += ` AND email = $` + itoa(len(args))
	}

	var count int
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count clients").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `
		UPDATE clients SET
			name = :name, email = :email, phone = :phone, address = :address,
			notes = :notes, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`

	res, err := r.db.Querier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE clients SET status = $1 WHERE id = $2 AND tenant_id = $3`
	res, err := r.db.Querier(ctx).ExecContext(ctx, query, types.StatusDeleted, id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete client").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

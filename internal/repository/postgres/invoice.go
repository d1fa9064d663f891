package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	domain "github.com/billfold/billfold/internal/domain/invoice"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/postgres"
	"github.com/billfold/billfold/internal/types"
	"github.com/cockroachdb/errors"
)

type invoiceRepository struct {
	db     *postgres.Client
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.Client, log *logger.Logger) domain.Repository {
	return &invoiceRepository{db: db, logger: log}
}

// invoiceRow adds the jsonb line_items column to the domain model for scanning
type invoiceRow struct {
	domain.Invoice
	LineItemsJSON []byte `db:"line_items"`
}

func (r *invoiceRepository) toRow(inv *domain.Invoice) (*invoiceRow, error) {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode invoice line items").
			Mark(ierr.ErrDatabase)
	}
	return &invoiceRow{Invoice: *inv, LineItemsJSON: items}, nil
}

func (r *invoiceRepository) fromRow(row *invoiceRow) (*domain.Invoice, error) {
	inv := row.Invoice
	if len(row.LineItemsJSON) > 0 {
		if err := json.Unmarshal(row.LineItemsJSON, &inv.LineItems); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode invoice line items").
				Mark(ierr.ErrDatabase)
		}
	}
	return &inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	row, err := r.toRow(inv)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (id, owner_id, invoice_number, invoice_status, issue_date, due_date,
			client_name, client_email, client_address,
			company_name, company_street, company_address, company_phone, company_website,
			notes, tax_rate, total, line_items,
			tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :owner_id, :invoice_number, :invoice_status, :issue_date, :due_date,
			:client_name, :client_email, :client_address,
			:company_name, :company_street, :company_address, :company_phone, :company_website,
			:notes, :tax_rate, :total, :line_items,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	_, err = r.db.Querier(ctx).NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An invoice with this number already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	var row invoiceRow
	query := `SELECT * FROM invoices WHERE id = $1 AND tenant_id = $2 AND status != $3`
	err := r.db.Querier(ctx).GetContext(ctx, &row, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Invoice not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return r.fromRow(&row)
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*domain.Invoice, error) {
	query := `SELECT * FROM invoices WHERE tenant_id = $1 AND status != $2 AND owner_id = $3`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted, types.GetUserID(ctx)}

	if filter != nil && filter.InvoiceNumber != "" {
		args = append(args, filter.InvoiceNumber)
		query += ` AND invoice_number = $` + itoa(len(args))
	}
	if filter != nil && filter.ClientName != "" {
		args = append(args, filter.ClientName)
		query += ` AND client_name = $` + itoa(len(args))
	}
	query += ` ORDER BY issue_date DESC`
	if filter != nil && !filter.IsUnlimited() {
		query += ` LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	rows := make([]*invoiceRow, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := r.fromRow(row)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND status != $2 AND owner_id = $3`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted, types.GetUserID(ctx)}

	if filter != nil && filter.InvoiceNumber != "" {
		args = append(args, filter.InvoiceNumber)
		query += ` AND invoice_number = $` + itoa(len(args))
	}
	if filter != nil && filter.ClientName != "" {
		args = append(args, filter.ClientName)
		query += ` AND client_name = $` + itoa(len(args))
	}

	var count int
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	row, err := r.toRow(inv)
	if err != nil {
		return err
	}

	query := `
		UPDATE invoices SET
			invoice_number = :invoice_number, invoice_status = :invoice_status,
			issue_date = :issue_date, due_date = :due_date,
			client_name = :client_name, client_email = :client_email, client_address = :client_address,
			company_name = :company_name, company_street = :company_street,
			company_address = :company_address, company_phone = :company_phone,
			company_website = :company_website,
			notes = :notes, tax_rate = :tax_rate, total = :total, line_items = :line_items,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`

	res, err := r.db.Querier(ctx).NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE invoices SET status = $1 WHERE id = $2 AND tenant_id = $3`
	res, err := r.db.Querier(ctx).ExecContext(ctx, query, types.StatusDeleted, id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/finbooks/finbooks/internal/models"
	"github.com/finbooks/finbooks/internal/utils/mapping"
	"github.com/finbooks/finbooks/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, customer_name, issue_date, due_date, amount, amount_paid, status, entry_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	var entryID, notes sql.NullString
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.CustomerName,
		&m.IssueDate,
		&m.DueDate,
		&m.Amount,
		&m.AmountPaid,
		&m.Status,
		&entryID,
		&notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	m.EntryID = entryID.String
	m.Notes = notes.String
	return m, err
}

// SaveInvoice persists a new invoice. A duplicate invoice number maps to
// ErrDuplicate.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.CustomerName,
		m.IssueDate,
		m.DueDate,
		m.Amount,
		m.AmountPaid,
		m.Status,
		nullIfEmpty(m.EntryID),
		nullIfEmpty(m.Notes),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// ListInvoices retrieves a paginated list of invoices using token-based
// pagination over (issue_date, created_at) descending.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}

	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		parts, err := pagination.DecodeToken(*nextToken, 2)
		if err != nil {
			return nil, nil, err
		}
		lastIssueDate, err := time.Parse(time.RFC3339Nano, parts[0])
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		lastCreatedAt, err := time.Parse(time.RFC3339Nano, parts[1])
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastIssueDate, lastCreatedAt)
		query += ` AND (issue_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY issue_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var newToken *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		token := pagination.EncodeToken(
			last.IssueDate.Format(time.RFC3339Nano),
			last.CreatedAt.Format(time.RFC3339Nano),
		)
		newToken = &token
	}

	return mapping.ToDomainInvoiceSlice(invoices), newToken, nil
}

// ListOpenInvoices retrieves non-cancelled invoices with an outstanding
// balance, issued on or before asOf, ordered by due date.
func (r *PgxInvoiceRepository) ListOpenInvoices(ctx context.Context, asOf time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE status NOT IN ('CANCELLED', 'PAID')
		  AND amount_paid < amount
		  AND issue_date <= $1
		ORDER BY due_date, invoice_number;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open invoices", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return mapping.ToDomainInvoiceSlice(invoices), nil
}

// FindPaymentsByInvoiceID retrieves all payments applied to an invoice.
func (r *PgxInvoiceRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoicePayment, error) {
	query := `
		SELECT payment_id, invoice_id, payment_date, amount, entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_payments
		WHERE invoice_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for invoice "+invoiceID, err)
	}
	defer rows.Close()

	payments := []models.InvoicePayment{}
	for rows.Next() {
		var m models.InvoicePayment
		var entryID sql.NullString
		if err := rows.Scan(
			&m.PaymentID,
			&m.InvoiceID,
			&m.PaymentDate,
			&m.Amount,
			&entryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		m.EntryID = entryID.String
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return mapping.ToDomainInvoicePaymentSlice(payments), nil
}

// UpdateInvoice persists the mutable fields of an invoice.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET customer_name = $2, due_date = $3, amount_paid = $4, status = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.CustomerName,
		m.DueDate,
		m.AmountPaid,
		m.Status,
		nullIfEmpty(m.Notes),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordPayment persists a payment and the invoice's updated paid total
// and status within a DB transaction.
func (r *PgxInvoiceRepository) RecordPayment(ctx context.Context, payment domain.InvoicePayment, newAmountPaid decimal.Decimal, newStatus domain.InvoiceStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoicePayment(payment)
	paymentQuery := `
		INSERT INTO invoice_payments (payment_id, invoice_id, payment_date, amount, entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		m.PaymentID,
		m.InvoiceID,
		m.PaymentDate,
		m.Amount,
		nullIfEmpty(m.EntryID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	invoiceQuery := `
		UPDATE invoices
		SET amount_paid = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, invoiceQuery,
		m.InvoiceID,
		newAmountPaid,
		string(newStatus),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID+" for payment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

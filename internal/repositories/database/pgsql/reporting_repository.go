package pgsql

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
)

// ReportingRepository runs the aggregate queries behind balances and
// financial reports. All summing happens in the database.
type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for report data.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetAccountActivity retrieves one account's debit and credit sums up to
// asOf (inclusive).
func (r *ReportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.entry_date <= $2;
	`
	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum activity for account "+accountID, err)
	}
	return debits, credits, nil
}

const activityQuery = `
	SELECT a.account_id, a.code, a.name, a.account_type, a.report_role, a.is_active,
	       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
	FROM accounts a
	JOIN journal_lines l ON l.account_id = a.account_id
	JOIN journal_entries e ON l.entry_id = e.entry_id
`

func (r *ReportingRepository) queryActivity(ctx context.Context, query string, args ...any) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity", err)
	}
	defer rows.Close()

	activities := []domain.AccountActivity{}
	for rows.Next() {
		var act domain.AccountActivity
		if err := rows.Scan(&act.AccountID, &act.Code, &act.Name, &act.AccountType, &act.ReportRole, &act.IsActive, &act.TotalDebits, &act.TotalCredits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return activities, nil
}

// GetActivityByAccount retrieves per-account sums up to asOf for every
// account with activity, ordered by code.
func (r *ReportingRepository) GetActivityByAccount(ctx context.Context, asOf time.Time) ([]domain.AccountActivity, error) {
	query := activityQuery + `
		WHERE e.entry_date <= $1
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.report_role, a.is_active
		ORDER BY a.code;
	`
	return r.queryActivity(ctx, query, asOf)
}

// GetActivityByAccountInRange retrieves per-account sums within [from, to],
// optionally restricted to the given account types.
func (r *ReportingRepository) GetActivityByAccountInRange(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountActivity, error) {
	query := activityQuery + `
		WHERE e.entry_date >= $1 AND e.entry_date <= $2
	`
	args := []any{from, to}
	if len(types) > 0 {
		typeStrings := make([]string, len(types))
		for i, t := range types {
			typeStrings[i] = string(t)
		}
		args = append(args, typeStrings)
		query += ` AND a.account_type = ANY($3)`
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.report_role, a.is_active
		ORDER BY a.code;
	`
	return r.queryActivity(ctx, query, args...)
}

// GetLedgerPostings retrieves an account's postings within [from, to] in
// posting order, capped at limit rows.
func (r *ReportingRepository) GetLedgerPostings(ctx context.Context, accountID string, from, to time.Time, limit int) ([]domain.LedgerPosting, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	query := `
		SELECT e.entry_id, e.entry_date, e.description, e.reference, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.entry_date >= $2 AND e.entry_date <= $3
		ORDER BY e.entry_date, e.created_at, l.line_id
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger postings for account "+accountID, err)
	}
	defer rows.Close()

	postings := []domain.LedgerPosting{}
	for rows.Next() {
		var p domain.LedgerPosting
		var reference sql.NullString
		if err := rows.Scan(&p.EntryID, &p.EntryDate, &p.Description, &reference, &p.Debit, &p.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger posting row", err)
		}
		p.Reference = reference.String
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger posting rows", err)
	}
	return postings, nil
}

// GetCashFlowLines retrieves every line of every entry in [from, to]
// that touches at least one active cash-role account.
func (r *ReportingRepository) GetCashFlowLines(ctx context.Context, from, to time.Time) ([]domain.EntryLineRow, error) {
	query := `
		SELECT e.entry_id, e.entry_date, l.account_id, a.name, a.report_role, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.entry_date >= $1 AND e.entry_date <= $2
		  AND e.entry_id IN (
			SELECT l2.entry_id
			FROM journal_lines l2
			JOIN accounts a2 ON l2.account_id = a2.account_id
			WHERE a2.report_role = 'CASH' AND a2.is_active = TRUE
		  )
		ORDER BY e.entry_date, e.created_at, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cash flow lines", err)
	}
	defer rows.Close()

	result := []domain.EntryLineRow{}
	for rows.Next() {
		var row domain.EntryLineRow
		if err := rows.Scan(&row.EntryID, &row.EntryDate, &row.AccountID, &row.AccountName, &row.Role, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash flow line row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cash flow line rows", err)
	}
	return result, nil
}

// GetCashOpeningBalance retrieves the combined balance of the active
// cash-role accounts from activity strictly before the given date.
func (r *ReportingRepository) GetCashOpeningBalance(ctx context.Context, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit - l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE a.report_role = 'CASH' AND a.is_active = TRUE AND e.entry_date < $1;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, before).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum opening cash balance", err)
	}
	return balance, nil
}

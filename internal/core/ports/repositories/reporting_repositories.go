package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// ReportingRepository defines the aggregate queries behind balances and
// financial reports. All sums are computed in the database.
type ReportingRepository interface {
	// GetAccountActivity retrieves one account's lifetime debit and credit sums up to asOf (inclusive).
	GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error)

	// GetActivityByAccount retrieves per-account debit/credit sums up to asOf
	// for every account with activity, carrying the account's active flag.
	GetActivityByAccount(ctx context.Context, asOf time.Time) ([]domain.AccountActivity, error)

	// GetActivityByAccountInRange retrieves per-account sums within [from, to],
	// optionally restricted to the given account types.
	GetActivityByAccountInRange(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountActivity, error)

	// GetLedgerPostings retrieves an account's postings within [from, to] in
	// chronological order, ties broken by entry creation time, capped at limit rows.
	GetLedgerPostings(ctx context.Context, accountID string, from, to time.Time, limit int) ([]domain.LedgerPosting, error)

	// GetCashFlowLines retrieves every line of every entry that touches at
	// least one cash-role account within [from, to].
	GetCashFlowLines(ctx context.Context, from, to time.Time) ([]domain.EntryLineRow, error)

	// GetCashOpeningBalance retrieves the combined cash-role balance from
	// all activity strictly before the given date.
	GetCashOpeningBalance(ctx context.Context, before time.Time) (decimal.Decimal, error)
}

package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// BalanceService defines balance derivation over the journal. Balances
// are always computed from lines, never cached.
type BalanceService interface {
	// AccountBalance computes one account's normal-side balance as of a date (inclusive).
	AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// TrialBalance generates a trial balance of all accounts with activity as of a date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// VerifyTrialBalance checks that total debits equal total credits across the ledger.
	VerifyTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceCheck, error)

	// GeneralLedger produces an account's dated activity with a running
	// balance folded over the window, truncated to at most limit postings.
	GeneralLedger(ctx context.Context, accountID string, from, to time.Time, limit int) (*domain.GeneralLedger, error)
}

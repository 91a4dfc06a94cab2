package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart-of-accounts code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code. Inactive accounts
	// are included only when requested.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)

	// FindAccountByRole retrieves the first active account carrying the given report role.
	FindAccountByRole(ctx context.Context, role domain.ReportRole) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, accountID string, updatedBy string, updatedAt time.Time) error

	// CountAccountLines counts journal lines referencing the account.
	CountAccountLines(ctx context.Context, accountID string) (int, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

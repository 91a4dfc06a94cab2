package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// EntryFilter narrows ListEntries. Nil/empty fields are ignored.
type EntryFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	EntryType *domain.EntryType
	Locked    *bool
	AccountID string // Entries touching this account
	Reference string // Case-insensitive substring of the reference
	Search    string // Case-insensitive substring of description or reference
}

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier, without lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListEntries retrieves a filtered, paginated list of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// CountEntryReferences counts invoices, payments and expense records that point at the entry.
	CountEntryReferences(ctx context.Context, entryID string) (int, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveEntry persists an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntry rewrites an entry's header and replaces its lines wholesale, atomically.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteEntry removes an entry and its lines.
	DeleteEntry(ctx context.Context, entryID string) error

	// SetEntryLocked flips the lock flag on an entry.
	SetEntryLocked(ctx context.Context, entryID string, locked bool, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}

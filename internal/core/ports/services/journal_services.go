package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered, paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entry data
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new balanced entry with its lines.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry updates an unlocked entry; provided lines replace the
	// existing ones wholesale and are re-validated.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an unlocked, unreferenced entry.
	DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error

	// ReverseEntry creates a mirror-image reversing entry for an existing
	// entry. The request may override the reversal's date and description.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// LockEntry marks an entry immutable. Idempotent.
	LockEntry(ctx context.Context, entryID string, requestingUserID string) error

	// UnlockEntry clears the lock flag. Restricted to admins at the API boundary.
	UnlockEntry(ctx context.Context, entryID string, requestingUserID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

package models

import "time"

// EntryType classifies a journal entry for reporting and period close.
type EntryType string

const (
	Standard  EntryType = "STANDARD"
	Adjusting EntryType = "ADJUSTING"
	Closing   EntryType = "CLOSING"
	Reversing EntryType = "REVERSING"
)

// JournalEntry is the persistence shape of a balanced financial event
// composed of multiple lines.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	Reference   string    `db:"reference"` // Nullable
	EntryType   EntryType `db:"entry_type"`
	IsLocked    bool      `db:"is_locked"`
	AuditFields
}

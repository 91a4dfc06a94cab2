package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a journal entry for reporting and period-close
// workflows.
type EntryType string

const (
	EntryStandard  EntryType = "STANDARD"
	EntryAdjusting EntryType = "ADJUSTING"
	EntryClosing   EntryType = "CLOSING"
	EntryReversing EntryType = "REVERSING"
)

// JournalEntry represents a balanced accounting transaction. An entry is
// immutable once IsLocked is set; corrections after that point go through
// a reversing entry.
type JournalEntry struct {
	EntryID     string        `json:"entryID"` // UUID
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"` // External document number, optional
	EntryType   EntryType     `json:"entryType"`
	IsLocked    bool          `json:"isLocked"`
	Lines       []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine represents a single debit or credit within a journal entry.
// Exactly one of Debit and Credit is non-zero on a valid line.
// AccountCode, AccountName and AccountType are a display snapshot of the
// line's account, filled in whenever the line is hydrated.
type JournalLine struct {
	LineID      string          `json:"lineID"` // UUID
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	AccountType AccountType     `json:"accountType,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"` // Optional per-line note
	AuditFields
}

// TotalDebits sums the debit side of the entry's lines.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry's lines.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

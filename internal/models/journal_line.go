package models

import "github.com/shopspring/decimal"

// JournalLine is a single debit or credit row within a journal entry.
// Exactly one of Debit and Credit is non-zero. The account columns come
// from the accounts join on reads and are never written back.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"code"`
	AccountName string          `db:"name"`
	AccountType AccountType     `db:"account_type"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Memo        string          `db:"memo"` // Nullable
	AuditFields
}

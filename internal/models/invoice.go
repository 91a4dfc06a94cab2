package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks the lifecycle of a customer invoice.
type InvoiceStatus string

const (
	Draft     InvoiceStatus = "DRAFT"
	Sent      InvoiceStatus = "SENT"
	Partial   InvoiceStatus = "PARTIAL"
	Paid      InvoiceStatus = "PAID"
	Cancelled InvoiceStatus = "CANCELLED"
)

// Invoice is the persistence shape of a customer invoice.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	CustomerName  string          `db:"customer_name"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       time.Time       `db:"due_date"`
	Amount        decimal.Decimal `db:"amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	Status        InvoiceStatus   `db:"status"`
	EntryID       string          `db:"entry_id"` // Nullable FK to journal_entries
	Notes         string          `db:"notes"`    // Nullable
	AuditFields
}

// InvoicePayment is the persistence shape of a payment applied to an
// invoice.
type InvoicePayment struct {
	PaymentID   string          `db:"payment_id"`
	InvoiceID   string          `db:"invoice_id"`
	PaymentDate time.Time       `db:"payment_date"`
	Amount      decimal.Decimal `db:"amount"`
	EntryID     string          `db:"entry_id"` // Nullable FK to journal_entries
	AuditFields
}

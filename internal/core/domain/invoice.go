package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks the lifecycle of a customer invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePartial   InvoiceStatus = "PARTIAL"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice represents a customer invoice. Issuing an invoice posts a
// journal entry (debit receivables, credit income); payments post further
// entries and accumulate on AmountPaid.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // UUID
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Status        InvoiceStatus   `json:"status"`
	EntryID       string          `json:"entryID,omitempty"` // Journal entry posted at issue
	Notes         string          `json:"notes,omitempty"`
	AuditFields
}

// InvoicePayment records a single payment applied to an invoice.
type InvoicePayment struct {
	PaymentID   string          `json:"paymentID"` // UUID
	InvoiceID   string          `json:"invoiceID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	EntryID     string          `json:"entryID,omitempty"` // Journal entry posted for the payment
	AuditFields
}

// Outstanding returns the unpaid remainder of the invoice.
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Amount.Sub(i.AmountPaid)
}

package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices, optionally filtered by status.
	ListInvoices(ctx context.Context, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ListOpenInvoices retrieves non-cancelled invoices with an outstanding
	// balance, issued on or before asOf.
	ListOpenInvoices(ctx context.Context, asOf time.Time) ([]domain.Invoice, error)

	// FindPaymentsByInvoiceID retrieves all payments applied to an invoice.
	FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoicePayment, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice persists changes to an existing invoice.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// RecordPayment persists a payment and the invoice's updated paid total
	// and status atomically.
	RecordPayment(ctx context.Context, payment domain.InvoicePayment, newAmountPaid decimal.Decimal, newStatus domain.InvoiceStatus) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

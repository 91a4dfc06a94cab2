package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its payments.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, []domain.InvoicePayment, error)

	// ListInvoices retrieves a paginated list of invoices, optionally by status.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists an invoice and posts its issue entry
	// (debit receivables, credit income).
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// RecordPayment applies a payment, posts the payment entry
	// (debit cash, credit receivables) and advances the invoice status.
	RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.InvoicePayment, error)

	// CancelInvoice cancels an unpaid invoice and reverses its issue entry.
	CancelInvoice(ctx context.Context, invoiceID string, requestingUserID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

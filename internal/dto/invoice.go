package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// CreateInvoiceRequest defines the data needed to create an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	CustomerName  string          `json:"customerName" binding:"required"`
	IssueDate     time.Time       `json:"issueDate" binding:"required" time_format:"2006-01-02"`
	DueDate       time.Time       `json:"dueDate" binding:"required" time_format:"2006-01-02"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Notes         string          `json:"notes"`
	// Accounts to post the issue entry against. The receivable side is
	// defaulted from the RECEIVABLES report role when omitted.
	ReceivableAccountID string `json:"receivableAccountID"`
	IncomeAccountID     string `json:"incomeAccountID" binding:"required"`
}

// RecordPaymentRequest defines the data needed to apply a payment to an invoice.
type RecordPaymentRequest struct {
	PaymentDate time.Time       `json:"paymentDate" binding:"required" time_format:"2006-01-02"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	// Cash account to debit. Defaulted from the cash report role when omitted.
	CashAccountID string `json:"cashAccountID"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status    string `form:"status"` // DRAFT/SENT/PARTIAL/PAID/CANCELLED
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// InvoicePaymentResponse defines the data returned for an invoice payment.
type InvoicePaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	EntryID     string          `json:"entryID,omitempty"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                   `json:"invoiceID"`
	InvoiceNumber string                   `json:"invoiceNumber"`
	CustomerName  string                   `json:"customerName"`
	IssueDate     time.Time                `json:"issueDate"`
	DueDate       time.Time                `json:"dueDate"`
	Amount        decimal.Decimal          `json:"amount"`
	AmountPaid    decimal.Decimal          `json:"amountPaid"`
	Outstanding   decimal.Decimal          `json:"outstanding"`
	Status        domain.InvoiceStatus     `json:"status"`
	EntryID       string                   `json:"entryID,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	Payments      []InvoicePaymentResponse `json:"payments,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoicePaymentResponse converts a domain.InvoicePayment to its DTO.
func ToInvoicePaymentResponse(p *domain.InvoicePayment) InvoicePaymentResponse {
	return InvoicePaymentResponse{
		PaymentID:   p.PaymentID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		EntryID:     p.EntryID,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice, payments []domain.InvoicePayment) InvoiceResponse {
	var pr []InvoicePaymentResponse
	if len(payments) > 0 {
		pr = make([]InvoicePaymentResponse, len(payments))
		for i, p := range payments {
			pr[i] = ToInvoicePaymentResponse(&p)
		}
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Amount:        inv.Amount,
		AmountPaid:    inv.AmountPaid,
		Outstanding:   inv.Outstanding(),
		Status:        inv.Status,
		EntryID:       inv.EntryID,
		Notes:         inv.Notes,
		Payments:      pr,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToListInvoicesResponse converts a page of domain invoices to the list DTO.
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv, nil)
	}
	return ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}

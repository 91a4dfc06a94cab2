package mapping

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		CustomerName:  d.CustomerName,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		Amount:        d.Amount,
		AmountPaid:    d.AmountPaid,
		Status:        models.InvoiceStatus(d.Status),
		EntryID:       d.EntryID,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		CustomerName:  m.CustomerName,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		AmountPaid:    m.AmountPaid,
		Status:        domain.InvoiceStatus(m.Status),
		EntryID:       m.EntryID,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelInvoicePayment converts a domain InvoicePayment to a model InvoicePayment
func ToModelInvoicePayment(d domain.InvoicePayment) models.InvoicePayment {
	return models.InvoicePayment{
		PaymentID:   d.PaymentID,
		InvoiceID:   d.InvoiceID,
		PaymentDate: d.PaymentDate,
		Amount:      d.Amount,
		EntryID:     d.EntryID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoicePayment converts a model InvoicePayment to a domain InvoicePayment
func ToDomainInvoicePayment(m models.InvoicePayment) domain.InvoicePayment {
	return domain.InvoicePayment{
		PaymentID:   m.PaymentID,
		InvoiceID:   m.InvoiceID,
		PaymentDate: m.PaymentDate,
		Amount:      m.Amount,
		EntryID:     m.EntryID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoicePaymentSlice converts a slice of model InvoicePayments to a slice of domain InvoicePayments
func ToDomainInvoicePaymentSlice(ms []models.InvoicePayment) []domain.InvoicePayment {
	ds := make([]domain.InvoicePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoicePayment(m)
	}
	return ds
}

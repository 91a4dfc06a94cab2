package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
)

var (
	ErrInvoiceAmountInvalid  = fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation)
	ErrPaymentAmountInvalid  = fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	ErrPaymentExceedsBalance = fmt.Errorf("%w: payment exceeds the invoice's outstanding balance", apperrors.ErrValidation)
	ErrInvoiceCancelled      = fmt.Errorf("%w: invoice is cancelled", apperrors.ErrConflict)
	ErrInvoiceAlreadyPaid    = fmt.Errorf("%w: invoice is already fully paid", apperrors.ErrConflict)
	ErrInvoiceHasPayments    = fmt.Errorf("%w: invoice has recorded payments and cannot be cancelled", apperrors.ErrConflict)
	ErrNoReceivablesAccount  = fmt.Errorf("%w: no active account carries the RECEIVABLES role", apperrors.ErrValidation)
	ErrNoCashAccount         = fmt.Errorf("%w: no active account carries the CASH role", apperrors.ErrValidation)
)

// invoiceService manages customer invoices. Issuing, paying and
// cancelling an invoice each post through the journal service so the
// ledger and the invoice book can never drift apart.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	journalSvc  portssvc.JournalSvcFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, journalSvc portssvc.JournalSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) resolveAccount(ctx context.Context, explicitID string, role domain.ReportRole, missing error) (string, error) {
	if explicitID != "" {
		account, err := s.accountRepo.FindAccountByID(ctx, explicitID)
		if err != nil {
			return "", err
		}
		return account.AccountID, nil
	}
	account, err := s.accountRepo.FindAccountByRole(ctx, role)
	if err != nil {
		return "", missing
	}
	return account.AccountID, nil
}

// CreateInvoice persists an invoice and posts its issue entry: debit
// receivables, credit income.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvoiceAmountInvalid
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: due date cannot precede issue date", apperrors.ErrValidation)
	}
	if req.IncomeAccountID == "" {
		return nil, fmt.Errorf("%w: incomeAccountID is required", apperrors.ErrValidation)
	}

	receivableID, err := s.resolveAccount(ctx, req.ReceivableAccountID, domain.RoleReceivables, ErrNoReceivablesAccount)
	if err != nil {
		return nil, err
	}
	incomeAccount, err := s.accountRepo.FindAccountByID(ctx, req.IncomeAccountID)
	if err != nil {
		return nil, err
	}

	entryReq := dto.CreateJournalEntryRequest{
		EntryDate:   req.IssueDate,
		Description: fmt.Sprintf("Invoice %s - %s", req.InvoiceNumber, req.CustomerName),
		Reference:   req.InvoiceNumber,
		EntryType:   domain.EntryStandard,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: receivableID, Debit: req.Amount},
			{AccountID: incomeAccount.AccountID, Credit: req.Amount},
		},
	}
	entry, err := s.journalSvc.CreateEntry(ctx, entryReq, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to post invoice entry: %w", err)
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		CustomerName:  req.CustomerName,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Amount:        req.Amount,
		AmountPaid:    decimal.Zero,
		Status:        domain.InvoiceSent,
		EntryID:       entry.EntryID,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", req.InvoiceNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("entry_id", entry.EntryID))
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice with its payments.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, []domain.InvoicePayment, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.invoiceRepo.FindPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payments for invoice %s: %w", invoiceID, err)
	}
	return invoice, payments, nil
}

// ListInvoices retrieves a paginated list of invoices, optionally by status.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	var status *domain.InvoiceStatus
	if params.Status != "" {
		st := domain.InvoiceStatus(params.Status)
		switch st {
		case domain.InvoiceDraft, domain.InvoiceSent, domain.InvoicePartial, domain.InvoicePaid, domain.InvoiceCancelled:
			status = &st
		default:
			return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, params.Status)
		}
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	invoices, newToken, err := s.invoiceRepo.ListInvoices(ctx, status, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	resp := dto.ToListInvoicesResponse(invoices, newToken)
	return &resp, nil
}

// RecordPayment applies a payment to an invoice, posts the cash entry
// (debit cash, credit receivables) and advances the invoice status.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.InvoicePayment, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceCancelled {
		return nil, ErrInvoiceCancelled
	}
	if invoice.Status == domain.InvoicePaid {
		return nil, ErrInvoiceAlreadyPaid
	}
	if !req.Amount.IsPositive() {
		return nil, ErrPaymentAmountInvalid
	}
	if req.Amount.GreaterThan(invoice.Outstanding()) {
		return nil, fmt.Errorf("%w: outstanding is %s", ErrPaymentExceedsBalance, invoice.Outstanding().String())
	}

	cashID, err := s.resolveAccount(ctx, req.CashAccountID, domain.RoleCash, ErrNoCashAccount)
	if err != nil {
		return nil, err
	}
	receivableID, err := s.resolveAccount(ctx, "", domain.RoleReceivables, ErrNoReceivablesAccount)
	if err != nil {
		return nil, err
	}

	entryReq := dto.CreateJournalEntryRequest{
		EntryDate:   req.PaymentDate,
		Description: fmt.Sprintf("Payment for invoice %s - %s", invoice.InvoiceNumber, invoice.CustomerName),
		Reference:   invoice.InvoiceNumber,
		EntryType:   domain.EntryStandard,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: cashID, Debit: req.Amount},
			{AccountID: receivableID, Credit: req.Amount},
		},
	}
	entry, err := s.journalSvc.CreateEntry(ctx, entryReq, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to post payment entry: %w", err)
	}

	now := time.Now().UTC()
	payment := domain.InvoicePayment{
		PaymentID:   uuid.NewString(),
		InvoiceID:   invoiceID,
		PaymentDate: req.PaymentDate,
		Amount:      req.Amount,
		EntryID:     entry.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	newAmountPaid := invoice.AmountPaid.Add(req.Amount)
	newStatus := domain.InvoicePartial
	if newAmountPaid.GreaterThanOrEqual(invoice.Amount) {
		newStatus = domain.InvoicePaid
	}

	if err := s.invoiceRepo.RecordPayment(ctx, payment, newAmountPaid, newStatus); err != nil {
		s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("invoice_id", invoiceID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("status", string(newStatus)))
	return &payment, nil
}

// CancelInvoice cancels an unpaid invoice and reverses its issue entry.
func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status == domain.InvoiceCancelled {
		return nil
	}
	if invoice.Status == domain.InvoicePaid {
		return ErrInvoiceAlreadyPaid
	}
	if invoice.AmountPaid.IsPositive() {
		return ErrInvoiceHasPayments
	}

	if invoice.EntryID != "" {
		if _, err := s.journalSvc.ReverseEntry(ctx, invoice.EntryID, dto.ReverseJournalEntryRequest{}, requestingUserID); err != nil {
			return fmt.Errorf("failed to reverse invoice entry: %w", err)
		}
	}

	invoice.Status = domain.InvoiceCancelled
	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = requestingUserID
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to cancel invoice", slog.String("invoice_id", invoiceID))
		return err
	}

	s.LogInfo(ctx, "Invoice cancelled", slog.String("invoice_id", invoiceID))
	return nil
}

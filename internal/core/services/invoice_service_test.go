package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/core/services"
	"github.com/finbooks/finbooks/internal/dto"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

// Ensure MockInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) ListOpenInvoices(ctx context.Context, asOf time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoicePayment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoicePayment), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) RecordPayment(ctx context.Context, payment domain.InvoicePayment, newAmountPaid decimal.Decimal, newStatus domain.InvoiceStatus) error {
	args := m.Called(ctx, payment, newAmountPaid, newStatus)
	return args.Error(0)
}

// --- Mock JournalService (as used by InvoiceService) ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error {
	args := m.Called(ctx, entryID, requestingUserID)
	return args.Error(0)
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) LockEntry(ctx context.Context, entryID string, requestingUserID string) error {
	args := m.Called(ctx, entryID, requestingUserID)
	return args.Error(0)
}

func (m *MockJournalService) UnlockEntry(ctx context.Context, entryID string, requestingUserID string) error {
	args := m.Called(ctx, entryID, requestingUserID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo   *MockInvoiceRepository
	mockAccountRepo   *MockAccountRepository
	mockJournalSvc    *MockJournalService
	service           portssvc.InvoiceSvcFacade
	receivableAccount domain.Account
	incomeAccount     domain.Account
	cashAccount       domain.Account
	userID            string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockAccountRepo, suite.mockJournalSvc)

	suite.userID = uuid.NewString()

	suite.receivableAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1200",
		Name:        "Accounts Receivable",
		AccountType: domain.Asset,
		ReportRole:  domain.RoleReceivables,
		IsActive:    true,
	}
	suite.incomeAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Income,
		ReportRole:  domain.RoleNone,
		IsActive:    true,
	}
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1100",
		Name:        "Business Checking",
		AccountType: domain.Asset,
		ReportRole:  domain.RoleCash,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	issue := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		InvoiceNumber:   "INV-100",
		CustomerName:    "Acme Corp",
		IssueDate:       issue,
		DueDate:         issue.AddDate(0, 0, 30),
		Amount:          decimal.NewFromInt(1200),
		IncomeAccountID: suite.incomeAccount.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByRole", ctx, domain.RoleReceivables).Return(&suite.receivableAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.incomeAccount.AccountID).Return(&suite.incomeAccount, nil).Once()

	entry := &domain.JournalEntry{EntryID: uuid.NewString()}
	var entryReq dto.CreateJournalEntryRequest
	suite.mockJournalSvc.On("CreateEntry", ctx, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			entryReq = args.Get(1).(dto.CreateJournalEntryRequest)
		}).Return(entry, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.InvoiceSent, invoice.Status)
	suite.Equal(entry.EntryID, invoice.EntryID)
	suite.True(invoice.AmountPaid.IsZero())

	// Issue entry: debit receivables, credit income
	suite.Require().Len(entryReq.Lines, 2)
	suite.Equal(suite.receivableAccount.AccountID, entryReq.Lines[0].AccountID)
	suite.True(entryReq.Lines[0].Debit.Equal(req.Amount))
	suite.Equal(suite.incomeAccount.AccountID, entryReq.Lines[1].AccountID)
	suite.True(entryReq.Lines[1].Credit.Equal(req.Amount))
	suite.Equal(req.InvoiceNumber, entryReq.Reference)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		InvoiceNumber:   "INV-101",
		CustomerName:    "Acme Corp",
		IssueDate:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.Zero,
		IncomeAccountID: suite.incomeAccount.AccountID,
	}

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrInvoiceAmountInvalid)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DueBeforeIssue() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		InvoiceNumber:   "INV-102",
		CustomerName:    "Acme Corp",
		IssueDate:       time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		DueDate:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromInt(100),
		IncomeAccountID: suite.incomeAccount.AccountID,
	}

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoReceivablesAccount() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		InvoiceNumber:   "INV-103",
		CustomerName:    "Acme Corp",
		IssueDate:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromInt(100),
		IncomeAccountID: suite.incomeAccount.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByRole", ctx, domain.RoleReceivables).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrNoReceivablesAccount)
}

func (suite *InvoiceServiceTestSuite) paymentMocks(ctx context.Context) {
	suite.mockAccountRepo.On("FindAccountByRole", ctx, domain.RoleCash).Return(&suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByRole", ctx, domain.RoleReceivables).Return(&suite.receivableAccount, nil).Once()
	suite.mockJournalSvc.On("CreateEntry", ctx, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_Partial() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-200",
		CustomerName:  "Acme Corp",
		Amount:        decimal.NewFromInt(1000),
		AmountPaid:    decimal.Zero,
		Status:        domain.InvoiceSent,
	}
	req := dto.RecordPaymentRequest{
		PaymentDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(400),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.paymentMocks(ctx)
	suite.mockInvoiceRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.InvoicePayment"), decimal.NewFromInt(400), domain.InvoicePartial).
		Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.True(payment.Amount.Equal(decimal.NewFromInt(400)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_CompletesInvoice() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-201",
		CustomerName:  "Acme Corp",
		Amount:        decimal.NewFromInt(1000),
		AmountPaid:    decimal.NewFromInt(600),
		Status:        domain.InvoicePartial,
	}
	req := dto.RecordPaymentRequest{
		PaymentDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(400),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.paymentMocks(ctx)
	suite.mockInvoiceRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.InvoicePayment"), decimal.NewFromInt(1000), domain.InvoicePaid).
		Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_Overpayment() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:  uuid.NewString(),
		Amount:     decimal.NewFromInt(1000),
		AmountPaid: decimal.NewFromInt(900),
		Status:     domain.InvoicePartial,
	}
	req := dto.RecordPaymentRequest{
		PaymentDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(200),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, req, suite.userID)

	suite.ErrorIs(err, services.ErrPaymentExceedsBalance)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_CancelledInvoice() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Amount:    decimal.NewFromInt(1000),
		Status:    domain.InvoiceCancelled,
	}
	req := dto.RecordPaymentRequest{
		PaymentDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(100),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.RecordPayment(ctx, invoice.InvoiceID, req, suite.userID)

	suite.ErrorIs(err, services.ErrInvoiceCancelled)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_ReversesIssueEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  uuid.NewString(),
		Amount:     decimal.NewFromInt(500),
		AmountPaid: decimal.Zero,
		Status:     domain.InvoiceSent,
		EntryID:    entryID,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockJournalSvc.On("ReverseEntry", ctx, entryID, dto.ReverseJournalEntryRequest{}, suite.userID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), EntryType: domain.EntryReversing}, nil).Once()

	var updated domain.Invoice
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Invoice)
		}).Return(nil).Once()

	err := suite.service.CancelInvoice(ctx, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, updated.Status)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_AlreadyCancelledIsNoOp() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceCancelled,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	err := suite.service.CancelInvoice(ctx, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_HasPayments() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:  uuid.NewString(),
		Amount:     decimal.NewFromInt(500),
		AmountPaid: decimal.NewFromInt(100),
		Status:     domain.InvoicePartial,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	err := suite.service.CancelInvoice(ctx, invoice.InvoiceID, suite.userID)

	suite.ErrorIs(err, services.ErrInvoiceHasPayments)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

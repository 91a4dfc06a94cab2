package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

// Ensure MockReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetActivityByAccount(ctx context.Context, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetActivityByAccountInRange(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, from, to, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetLedgerPostings(ctx context.Context, accountID string, from, to time.Time, limit int) ([]domain.LedgerPosting, error) {
	args := m.Called(ctx, accountID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerPosting), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowLines(ctx context.Context, from, to time.Time) ([]domain.EntryLineRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLineRow), args.Error(1)
}

func (m *MockReportingRepository) GetCashOpeningBalance(ctx context.Context, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.BalanceService
	asOf              time.Time
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewBalanceService(suite.mockAccountRepo, suite.mockReportingRepo)
	suite.asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestAccountBalance_DebitNormal() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1100",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, account.AccountID, suite.asOf).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(200), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, account.AccountID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(300)), "asset balance is debits minus credits, got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestAccountBalance_CreditNormal() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "2100",
		AccountType: domain.Liability,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, account.AccountID, suite.asOf).
		Return(decimal.NewFromInt(100), decimal.NewFromInt(450), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, account.AccountID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(350)), "liability balance is credits minus debits, got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestTrialBalance_ColumnsAndTotals() {
	ctx := context.Background()
	activities := []domain.AccountActivity{
		// Asset with a positive normal balance: debit column
		{AccountID: "a1", Code: "1100", Name: "Checking", AccountType: domain.Asset, IsActive: true, TotalDebits: decimal.NewFromInt(800), TotalCredits: decimal.NewFromInt(300)},
		// Income with a positive normal balance: credit column
		{AccountID: "a2", Code: "4000", Name: "Sales", AccountType: domain.Income, IsActive: true, TotalDebits: decimal.Zero, TotalCredits: decimal.NewFromInt(600)},
		// Asset driven negative: flips to the credit column
		{AccountID: "a3", Code: "1150", Name: "Overdrawn", AccountType: domain.Asset, IsActive: true, TotalDebits: decimal.NewFromInt(50), TotalCredits: decimal.NewFromInt(150)},
		// Zero balance: dropped from the report
		{AccountID: "a4", Code: "5000", Name: "Unused", AccountType: domain.Expense, IsActive: true, TotalDebits: decimal.NewFromInt(75), TotalCredits: decimal.NewFromInt(75)},
		{AccountID: "a5", Code: "5100", Name: "Rent", AccountType: domain.Expense, IsActive: true, TotalDebits: decimal.NewFromInt(200), TotalCredits: decimal.Zero},
	}
	suite.mockReportingRepo.On("GetActivityByAccount", ctx, suite.asOf).Return(activities, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 4, "zero-balance account is skipped")

	suite.True(tb.Rows[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.True(tb.Rows[1].Credit.Equal(decimal.NewFromInt(600)))
	suite.True(tb.Rows[2].Credit.Equal(decimal.NewFromInt(100)), "negative asset lands in the credit column")
	suite.True(tb.Rows[2].Debit.IsZero())
	suite.True(tb.Rows[3].Debit.Equal(decimal.NewFromInt(200)))

	suite.True(tb.TotalDebits.Equal(decimal.NewFromInt(700)))
	suite.True(tb.TotalCredits.Equal(decimal.NewFromInt(700)))
}

func (suite *BalanceServiceTestSuite) TestVerifyTrialBalance_Unbalanced() {
	ctx := context.Background()
	activities := []domain.AccountActivity{
		{AccountID: "a1", Code: "1100", Name: "Checking", AccountType: domain.Asset, IsActive: true, TotalDebits: decimal.NewFromInt(500), TotalCredits: decimal.Zero},
		{AccountID: "a2", Code: "4000", Name: "Sales", AccountType: domain.Income, IsActive: true, TotalDebits: decimal.Zero, TotalCredits: decimal.NewFromInt(480)},
	}
	suite.mockReportingRepo.On("GetActivityByAccount", ctx, suite.asOf).Return(activities, nil).Once()

	check, err := suite.service.VerifyTrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.False(check.Balanced)
	suite.True(check.Difference.Equal(decimal.NewFromInt(20)))
}

func (suite *BalanceServiceTestSuite) TestTrialBalance_SkipsInactiveAccounts() {
	ctx := context.Background()
	activities := []domain.AccountActivity{
		{AccountID: "a1", Code: "1100", Name: "Checking", AccountType: domain.Asset, IsActive: true, TotalDebits: decimal.NewFromInt(500), TotalCredits: decimal.Zero},
		{AccountID: "a2", Code: "4000", Name: "Sales", AccountType: domain.Income, IsActive: true, TotalDebits: decimal.Zero, TotalCredits: decimal.NewFromInt(300)},
		// Deactivated account with history: off the report, still in the
		// ledger-wide verification totals.
		{AccountID: "a3", Code: "4900", Name: "Retired Income", AccountType: domain.Income, IsActive: false, TotalDebits: decimal.Zero, TotalCredits: decimal.NewFromInt(200)},
	}
	suite.mockReportingRepo.On("GetActivityByAccount", ctx, suite.asOf).Return(activities, nil).Twice()

	tb, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 2)
	for _, row := range tb.Rows {
		suite.NotEqual("4900", row.Code)
	}

	check, err := suite.service.VerifyTrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(check.Balanced, "verification sums every account, active or not")
	suite.True(check.TotalDebits.Equal(decimal.NewFromInt(500)))
	suite.True(check.TotalCredits.Equal(decimal.NewFromInt(500)))
}

func (suite *BalanceServiceTestSuite) TestGeneralLedger_RunningBalance() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1100",
		Name:        "Checking",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf

	postings := []domain.LedgerPosting{
		{EntryID: "e1", EntryDate: from, Description: "Opening deposit", Debit: decimal.NewFromInt(1000), Credit: decimal.Zero},
		{EntryID: "e2", EntryDate: from.AddDate(0, 0, 3), Description: "Rent", Debit: decimal.Zero, Credit: decimal.NewFromInt(400)},
		{EntryID: "e3", EntryDate: from.AddDate(0, 0, 10), Description: "Sale", Debit: decimal.NewFromInt(250), Credit: decimal.Zero},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetLedgerPostings", ctx, account.AccountID, from, to, 100).Return(postings, nil).Once()

	ledger, err := suite.service.GeneralLedger(ctx, account.AccountID, from, to, 100)

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Postings, 3)
	suite.True(ledger.Postings[0].Balance.Equal(decimal.NewFromInt(1000)))
	suite.True(ledger.Postings[1].Balance.Equal(decimal.NewFromInt(600)))
	suite.True(ledger.Postings[2].Balance.Equal(decimal.NewFromInt(850)))
	suite.True(ledger.EndBalance.Equal(decimal.NewFromInt(850)))
	suite.Equal(account.Code, ledger.Code)
}

func (suite *BalanceServiceTestSuite) TestGeneralLedger_LimitForwarded() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1100",
		Name:        "Checking",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetLedgerPostings", ctx, account.AccountID, from, to, 5).
		Return([]domain.LedgerPosting{}, nil).Once()

	_, err := suite.service.GeneralLedger(ctx, account.AccountID, from, to, 5)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

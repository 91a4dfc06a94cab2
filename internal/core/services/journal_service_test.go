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

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) CountEntryReferences(ctx context.Context, entryID string) (int, error) {
	args := m.Called(ctx, entryID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) SetEntryLocked(ctx context.Context, entryID string, locked bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, locked, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByRole(ctx context.Context, role domain.ReportRole) (*domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, accountID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) CountAccountLines(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	incomeAccount   domain.Account
	expenseAccount  domain.Account
	inactiveAccount domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1100",
		Name:        "Business Checking",
		AccountType: domain.Asset,
		ReportRole:  domain.RoleCash,
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
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5000",
		Name:        "Office Supplies",
		AccountType: domain.Expense,
		ReportRole:  domain.RoleNone,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5900",
		Name:        "Discontinued",
		AccountType: domain.Expense,
		ReportRole:  domain.RoleNone,
		IsActive:    false,
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(150)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(150)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.incomeAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.EntryStandard, entry.EntryType)
	suite.False(entry.IsLocked)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.True(entry.TotalDebits().Equal(decimal.NewFromInt(150)))
	suite.True(entry.TotalCredits().Equal(decimal.NewFromInt(150)))

	// Lines carry the account snapshot for display.
	suite.Equal("1100", entry.Lines[0].AccountCode)
	suite.Equal("Business Checking", entry.Lines[0].AccountName)
	suite.Equal(domain.Asset, entry.Lines[0].AccountType)
	suite.Equal("4000", entry.Lines[1].AccountCode)
	suite.Equal(domain.Income, entry.Lines[1].AccountType)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_WithinTolerance() {
	ctx := context.Background()
	// Off by 0.005: inside the 0.01 tolerance, so the entry posts.
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Rounded conversion",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.RequireFromString("100.005")},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(entry)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Broken entry",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(150)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_TooFewLines() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "One-sided",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(150)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrEntryMinLines)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Both sides",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrLineBothSides)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithNoSide() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Empty line",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrLineNoSide)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Negative",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(-50)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(-50)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrLineNegative)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Unknown account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: unknownID, Credit: decimal.NewFromInt(50)},
		},
	}

	// Repository only finds the cash account
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrAccountUnknown)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccountReportedBeforeLineShape() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	// The unknown account's line is also malformed; the account check
	// runs first, so the unknown account is what gets reported.
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Unknown account, broken line",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: unknownID, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrAccountUnknown)
	suite.NotErrorIs(err, services.ErrLineBothSides)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Inactive account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.inactiveAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.inactiveAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescription() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_LockedEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	locked := &domain.JournalEntry{
		EntryID:     entryID,
		Description: "Closed period entry",
		IsLocked:    true,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(locked, nil).Once()

	newDesc := "Attempted edit"
	_, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Referenced() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, Description: "Invoice issue entry"}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("CountEntryReferences", ctx, entryID).Return(1, nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryReferenced)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, Description: "Scratch entry"}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("CountEntryReferences", ctx, entryID).Return(0, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_SwapsSides() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "Rent payment",
		Reference:   "RENT-FEB",
		EntryType:   domain.EntryStandard,
		IsLocked:    true,
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(900), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(900)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.expenseAccount), nil).Once()

	var savedLines []domain.JournalLine
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, entryID, dto.ReverseJournalEntryRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.NotEqual(entryID, reversal.EntryID)
	suite.Equal(domain.EntryReversing, reversal.EntryType)
	suite.Equal("REV-RENT-FEB", reversal.Reference)
	suite.Contains(reversal.Description, "Reversal of: Rent payment")
	suite.False(reversal.IsLocked)

	suite.Require().Len(savedLines, 2)
	suite.True(savedLines[0].Credit.Equal(decimal.NewFromInt(900)), "expense line flips to credit")
	suite.True(savedLines[1].Debit.Equal(decimal.NewFromInt(900)), "cash line flips to debit")
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DateAndDescriptionOverrides() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "Rent payment",
		Reference:   "RENT-FEB",
		EntryType:   domain.EntryStandard,
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(900), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(900)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.expenseAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil).Once()

	overrideDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	overrideDesc := "Rent posted to wrong month"
	req := dto.ReverseJournalEntryRequest{EntryDate: &overrideDate, Description: &overrideDesc}

	reversal, err := suite.service.ReverseEntry(ctx, entryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(overrideDate, reversal.EntryDate)
	suite.Equal(overrideDesc, reversal.Description)
	suite.Equal("REV-RENT-FEB", reversal.Reference, "reference is derived regardless of overrides")
	suite.Equal(domain.EntryReversing, reversal.EntryType)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_HeaderOnlySkipsLineValidation() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Description: "Old supplies purchase",
	}
	// The posted lines touch an account that has since been deactivated.
	// A header-only update must still go through.
	existingLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.inactiveAccount.AccountID, Debit: decimal.NewFromInt(75), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(75)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(existingLines, nil).Once()
	suite.mockJournalRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), existingLines).Return(nil).Once()

	newDesc := "Supplies purchase, corrected wording"
	updated, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newDesc, updated.Description)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestLockAndUnlockEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("SetEntryLocked", ctx, entryID, true, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("SetEntryLocked", ctx, entryID, false, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.LockEntry(ctx, entryID, suite.userID))
	suite.Require().NoError(suite.service.UnlockEntry(ctx, entryID, suite.userID))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_InvalidEntryType() {
	ctx := context.Background()

	_, err := suite.service.ListEntries(ctx, dto.ListJournalEntriesParams{EntryType: "BOGUS"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestListEntries_AttachesLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entries := []domain.JournalEntry{{EntryID: entryID, Description: "Sale"}}
	lines := map[string][]domain.JournalLine{
		entryID: {{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10)}},
	}

	suite.mockJournalRepo.On("ListEntries", ctx, mock.AnythingOfType("repositories.EntryFilter"), 20, (*string)(nil)).
		Return(entries, nil, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entryID}).Return(lines, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListJournalEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Len(resp.Entries[0].Lines, 1)
	suite.Nil(resp.NextToken)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

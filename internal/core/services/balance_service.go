package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/utils/accounting"
)

// balanceService derives account balances and trial balances from the
// journal. Nothing here reads a cached balance column; every figure is
// recomputed from lines.
type balanceService struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, reportingRepo portsrepo.ReportingRepository) portssvc.BalanceService {
	return &balanceService{
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.BalanceService = (*balanceService)(nil)

// AccountBalance computes one account's normal-side balance as of a date.
func (s *balanceService) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	debits, credits, err := s.reportingRepo.GetAccountActivity(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load activity for account %s: %w", accountID, err)
	}
	return accounting.NormalBalance(account.AccountType, debits, credits), nil
}

// TrialBalance lists every active account with a non-zero balance as of
// a date. A positive normal balance lands in the account's normal
// column; a negative one flips to the opposite column. Deactivated
// accounts are skipped here but still counted by VerifyTrialBalance,
// which sums the whole ledger.
func (s *balanceService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	activities, err := s.reportingRepo.GetActivityByAccount(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial balance activity: %w", err)
	}

	tb := &domain.TrialBalance{
		AsOf:         asOf,
		Rows:         make([]domain.TrialBalanceRow, 0, len(activities)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, act := range activities {
		if !act.IsActive {
			continue
		}
		balance := accounting.NormalBalance(act.AccountType, act.TotalDebits, act.TotalCredits)
		if balance.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{
			AccountID:   act.AccountID,
			Code:        act.Code,
			Name:        act.Name,
			AccountType: act.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		debitColumn := act.AccountType.IsDebitNormal()
		if balance.IsNegative() {
			debitColumn = !debitColumn
			balance = balance.Abs()
		}
		if debitColumn {
			row.Debit = balance
		} else {
			row.Credit = balance
		}

		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}
	return tb, nil
}

// VerifyTrialBalance checks that the ledger's raw debit and credit sums
// agree within tolerance.
func (s *balanceService) VerifyTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceCheck, error) {
	activities, err := s.reportingRepo.GetActivityByAccount(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial balance activity: %w", err)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, act := range activities {
		debits = debits.Add(act.TotalDebits)
		credits = credits.Add(act.TotalCredits)
	}

	return &domain.TrialBalanceCheck{
		AsOf:         asOf,
		TotalDebits:  debits,
		TotalCredits: credits,
		Difference:   debits.Sub(credits),
		Balanced:     accounting.Balanced(debits, credits),
	}, nil
}

// GeneralLedger folds an account's postings within the window into a
// running balance, starting from zero at the window's opening. At most
// limit postings are returned.
func (s *balanceService) GeneralLedger(ctx context.Context, accountID string, from, to time.Time, limit int) (*domain.GeneralLedger, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	postings, err := s.reportingRepo.GetLedgerPostings(ctx, accountID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger postings for account %s: %w", accountID, err)
	}

	running := decimal.Zero
	for i := range postings {
		running = running.Add(accounting.SignedAmount(account.AccountType, postings[i].Debit, postings[i].Credit))
		postings[i].Balance = running
	}

	return &domain.GeneralLedger{
		AccountID:   account.AccountID,
		Code:        account.Code,
		Name:        account.Name,
		AccountType: account.AccountType,
		From:        from,
		To:          to,
		Postings:    postings,
		EndBalance:  running,
	}, nil
}

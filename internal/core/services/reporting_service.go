package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/utils/accounting"
)

// reportingService builds the financial statements on top of the
// aggregate queries. Reversing entries are included everywhere; a
// reversal and its original cancel out arithmetically rather than by
// exclusion.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	invoiceRepo   portsrepo.InvoiceReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, invoiceRepo portsrepo.InvoiceReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		invoiceRepo:   invoiceRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// ProfitAndLoss generates an income statement for [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitLossReport, error) {
	activities, err := s.reportingRepo.GetActivityByAccountInRange(ctx, from, to, []domain.AccountType{domain.Income, domain.Expense})
	if err != nil {
		return nil, fmt.Errorf("failed to load profit and loss activity: %w", err)
	}

	report := &domain.ProfitLossReport{
		From:          from,
		To:            to,
		Income:        []domain.ReportLine{},
		Expenses:      []domain.ReportLine{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, act := range activities {
		amount := accounting.NormalBalance(act.AccountType, act.TotalDebits, act.TotalCredits)
		if amount.IsZero() {
			continue
		}
		line := domain.ReportLine{
			AccountID: act.AccountID,
			Code:      act.Code,
			Label:     act.Name,
			Amount:    amount,
		}
		if act.AccountType == domain.Income {
			report.Income = append(report.Income, line)
			report.TotalIncome = report.TotalIncome.Add(amount)
		} else {
			report.Expenses = append(report.Expenses, line)
			report.TotalExpenses = report.TotalExpenses.Add(amount)
		}
	}

	// Largest amounts first
	sortLinesDesc(report.Income)
	sortLinesDesc(report.Expenses)

	report.NetProfit = report.TotalIncome.Sub(report.TotalExpenses)
	return report, nil
}

func sortLinesDesc(lines []domain.ReportLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Amount.GreaterThan(lines[j].Amount)
	})
}

// BalanceSheet generates the statement of financial position as of a
// date. Cumulative net income to date is appended to equity as retained
// earnings so the sheet balances without a formal period close.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	activities, err := s.reportingRepo.GetActivityByAccount(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance sheet activity: %w", err)
	}

	bs := &domain.BalanceSheet{
		AsOf:             asOf,
		Assets:           []domain.ReportLine{},
		Liabilities:      []domain.ReportLine{},
		Equity:           []domain.ReportLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		Cash:             decimal.Zero,
		Receivables:      decimal.Zero,
		Payables:         decimal.Zero,
		RetainedEarnings: decimal.Zero,
	}

	for _, act := range activities {
		balance := accounting.NormalBalance(act.AccountType, act.TotalDebits, act.TotalCredits)

		switch act.AccountType {
		case domain.Income:
			bs.RetainedEarnings = bs.RetainedEarnings.Add(balance)
			continue
		case domain.Expense:
			bs.RetainedEarnings = bs.RetainedEarnings.Sub(balance)
			continue
		}

		if balance.IsZero() {
			continue
		}
		line := domain.ReportLine{
			AccountID: act.AccountID,
			Code:      act.Code,
			Label:     act.Name,
			Amount:    balance,
		}

		switch act.AccountType {
		case domain.Asset:
			bs.Assets = append(bs.Assets, line)
			bs.TotalAssets = bs.TotalAssets.Add(balance)
			switch act.ReportRole {
			case domain.RoleCash:
				bs.Cash = bs.Cash.Add(balance)
			case domain.RoleReceivables:
				bs.Receivables = bs.Receivables.Add(balance)
			}
		case domain.Liability:
			bs.Liabilities = append(bs.Liabilities, line)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(balance)
			if act.ReportRole == domain.RolePayables {
				bs.Payables = bs.Payables.Add(balance)
			}
		case domain.Equity:
			bs.Equity = append(bs.Equity, line)
			bs.TotalEquity = bs.TotalEquity.Add(balance)
		}
	}

	bs.Equity = append(bs.Equity, domain.ReportLine{
		Label:  "Retained Earnings",
		Amount: bs.RetainedEarnings,
	})
	bs.TotalEquity = bs.TotalEquity.Add(bs.RetainedEarnings)
	bs.IsBalanced = accounting.Balanced(bs.TotalAssets, bs.TotalLiabilities.Add(bs.TotalEquity))
	return bs, nil
}

// CashFlow derives cash movements in [from, to] from entries touching
// cash-role accounts. Each entry's net cash movement is allocated across
// its non-cash lines in proportion to their size, labelled by counter
// account.
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	opening, err := s.reportingRepo.GetCashOpeningBalance(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to load opening cash balance: %w", err)
	}

	rows, err := s.reportingRepo.GetCashFlowLines(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash flow lines: %w", err)
	}

	// Group lines by entry
	entryRows := map[string][]domain.EntryLineRow{}
	order := []string{}
	for _, r := range rows {
		if _, seen := entryRows[r.EntryID]; !seen {
			order = append(order, r.EntryID)
		}
		entryRows[r.EntryID] = append(entryRows[r.EntryID], r)
	}

	inflows := map[string]decimal.Decimal{}
	outflows := map[string]decimal.Decimal{}

	for _, entryID := range order {
		lines := entryRows[entryID]

		cashNet := decimal.Zero
		var counters []domain.EntryLineRow
		counterTotal := decimal.Zero
		for _, l := range lines {
			if l.Role == domain.RoleCash {
				cashNet = cashNet.Add(l.Debit.Sub(l.Credit))
			} else {
				counters = append(counters, l)
				counterTotal = counterTotal.Add(l.Debit.Add(l.Credit))
			}
		}
		// Pure cash-to-cash transfers and zero-net entries don't move cash
		if cashNet.IsZero() || len(counters) == 0 || counterTotal.IsZero() {
			continue
		}

		// Split the movement across counter accounts by line size
		for _, l := range counters {
			share := cashNet.Mul(l.Debit.Add(l.Credit)).Div(counterTotal)
			if share.IsPositive() {
				inflows[l.AccountName] = inflows[l.AccountName].Add(share)
			} else if share.IsNegative() {
				outflows[l.AccountName] = outflows[l.AccountName].Add(share.Abs())
			}
		}
	}

	report := &domain.CashFlowReport{
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Inflows:        categoriesDesc(inflows),
		Outflows:       categoriesDesc(outflows),
		TotalInflows:   decimal.Zero,
		TotalOutflows:  decimal.Zero,
	}
	for _, c := range report.Inflows {
		report.TotalInflows = report.TotalInflows.Add(c.Amount)
	}
	for _, c := range report.Outflows {
		report.TotalOutflows = report.TotalOutflows.Add(c.Amount)
	}
	report.NetChange = report.TotalInflows.Sub(report.TotalOutflows)
	report.ClosingBalance = opening.Add(report.NetChange)
	return report, nil
}

func categoriesDesc(m map[string]decimal.Decimal) []domain.CashFlowCategory {
	cats := make([]domain.CashFlowCategory, 0, len(m))
	for label, amount := range m {
		cats = append(cats, domain.CashFlowCategory{Label: label, Amount: amount})
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Amount.Equal(cats[j].Amount) {
			return cats[i].Label < cats[j].Label
		}
		return cats[i].Amount.GreaterThan(cats[j].Amount)
	})
	return cats
}

// agingBucketLabels are the standard receivables aging ranges, in order.
var agingBucketLabels = []string{"Current", "1-30", "31-60", "61-90", "90+"}

// ReceivablesAging buckets outstanding invoices by days overdue as of a
// date. Invoices due on or after asOf count as current.
func (s *reportingService) ReceivablesAging(ctx context.Context, asOf time.Time) (*domain.ReceivablesAgingReport, error) {
	invoices, err := s.invoiceRepo.ListOpenInvoices(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load open invoices: %w", err)
	}

	buckets := make([]domain.AgingBucket, len(agingBucketLabels))
	for i, label := range agingBucketLabels {
		buckets[i] = domain.AgingBucket{Label: label, Items: []domain.AgingItem{}, Total: decimal.Zero}
	}

	total := decimal.Zero
	for _, inv := range invoices {
		outstanding := inv.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}

		daysOverdue := int(math.Floor(asOf.Sub(inv.DueDate).Hours() / 24))
		idx := 0
		switch {
		case daysOverdue <= 0:
			idx = 0
		case daysOverdue <= 30:
			idx = 1
		case daysOverdue <= 60:
			idx = 2
		case daysOverdue <= 90:
			idx = 3
		default:
			idx = 4
		}

		item := domain.AgingItem{
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			DueDate:       inv.DueDate,
			DaysOverdue:   daysOverdue,
			Outstanding:   outstanding,
		}
		buckets[idx].Items = append(buckets[idx].Items, item)
		buckets[idx].Total = buckets[idx].Total.Add(outstanding)
		total = total.Add(outstanding)
	}

	return &domain.ReceivablesAgingReport{
		AsOf:             asOf,
		Buckets:          buckets,
		TotalOutstanding: total,
	}, nil
}

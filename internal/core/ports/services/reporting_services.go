package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// ProfitAndLoss generates an income statement for a period.
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitLossReport, error)

	// BalanceSheet generates a statement of financial position as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// CashFlow derives cash movements over a period from entries touching
	// cash-role accounts.
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)

	// ReceivablesAging buckets outstanding invoices by days overdue.
	ReceivablesAging(ctx context.Context, asOf time.Time) (*domain.ReceivablesAgingReport, error)
}

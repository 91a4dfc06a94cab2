package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
)

var ledgerPostingColumns = []string{"entry_id", "entry_date", "description", "reference", "debit", "credit"}

func TestGetLedgerPostingsAppliesLimit(t *testing.T) {
	mockPool := newMockPool(t)
	repo := &ReportingRepository{BaseRepository: BaseRepository{Pool: mockPool}}

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery(`LIMIT \$4`).
		WithArgs("acct-1", from, to, 25).
		WillReturnRows(pgxmock.NewRows(ledgerPostingColumns))

	postings, err := repo.GetLedgerPostings(context.Background(), "acct-1", from, to, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 0 {
		t.Fatalf("expected no postings, got %d", len(postings))
	}

	assertExpectations(t, mockPool)
}

func TestGetLedgerPostingsNormalizesLimit(t *testing.T) {
	mockPool := newMockPool(t)
	repo := &ReportingRepository{BaseRepository: BaseRepository{Pool: mockPool}}

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	// Out-of-range limits fall back to the default page of 100.
	mockPool.ExpectQuery(`LIMIT \$4`).
		WithArgs("acct-1", from, to, 100).
		WillReturnRows(pgxmock.NewRows(ledgerPostingColumns))

	if _, err := repo.GetLedgerPostings(context.Background(), "acct-1", from, to, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestGetActivityByAccountCarriesActiveFlag(t *testing.T) {
	mockPool := newMockPool(t)
	repo := &ReportingRepository{BaseRepository: BaseRepository{Pool: mockPool}}

	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"account_id", "code", "name", "account_type", "report_role", "is_active", "debits", "credits"}).
		AddRow("acct-1", "1100", "Checking", domain.Asset, domain.RoleCash, true,
			decimal.NewFromInt(500), decimal.NewFromInt(100)).
		AddRow("acct-2", "4900", "Retired Income", domain.Income, domain.RoleNone, false,
			decimal.Zero, decimal.NewFromInt(400))

	mockPool.ExpectQuery(`a\.is_active`).
		WithArgs(asOf).
		WillReturnRows(rows)

	activities, err := repo.GetActivityByAccount(context.Background(), asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("expected 2 activity rows, got %d", len(activities))
	}
	if !activities[0].IsActive {
		t.Fatalf("expected acct-1 to be active: %+v", activities[0])
	}
	if activities[1].IsActive {
		t.Fatalf("expected acct-2 to be inactive: %+v", activities[1])
	}

	assertExpectations(t, mockPool)
}

func TestGetCashFlowLinesRequiresActiveCashAccount(t *testing.T) {
	mockPool := newMockPool(t)
	repo := &ReportingRepository{BaseRepository: BaseRepository{Pool: mockPool}}

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery(`a2\.report_role = 'CASH' AND a2\.is_active = TRUE`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"entry_id", "entry_date", "account_id", "name", "report_role", "debit", "credit"}))

	if _, err := repo.GetCashFlowLines(context.Background(), from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestGetCashOpeningBalanceActiveCashOnly(t *testing.T) {
	mockPool := newMockPool(t)
	repo := &ReportingRepository{BaseRepository: BaseRepository{Pool: mockPool}}

	before := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery(`a\.report_role = 'CASH' AND a\.is_active = TRUE AND e\.entry_date < \$1`).
		WithArgs(before).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.NewFromInt(1250)))

	balance, err := repo.GetCashOpeningBalance(context.Background(), before)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(1250)) {
		t.Fatalf("expected 1250, got %s", balance)
	}

	assertExpectations(t, mockPool)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is an account's aggregated debit/credit activity over
// some window, as produced by the reporting queries.
type AccountActivity struct {
	AccountID    string          `json:"accountID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	ReportRole   ReportRole      `json:"reportRole"`
	IsActive     bool            `json:"isActive"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}

// EntryLineRow is a journal line joined with its entry header and
// account metadata, used by the cash flow derivation.
type EntryLineRow struct {
	EntryID     string          `json:"entryID"`
	EntryDate   time.Time       `json:"entryDate"`
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Role        ReportRole      `json:"role"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceRow is one account's position in a trial balance. The
// balance appears in the column matching its sign after normal-balance
// adjustment: debit-normal accounts with positive balances land in the
// Debit column, and so on.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the full report: all accounts with non-zero balances as
// of a date, plus column totals.
type TrialBalance struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}

// TrialBalanceCheck is the result of verifying that total debits equal
// total credits across the ledger.
type TrialBalanceCheck struct {
	AsOf         time.Time       `json:"asOf"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"`
	Balanced     bool            `json:"balanced"`
}

// LedgerPosting is a single line of an account's general ledger view,
// carrying the running balance after the posting.
type LedgerPosting struct {
	EntryID     string          `json:"entryID"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// GeneralLedger is the dated activity of one account with a running
// balance folded over the window.
type GeneralLedger struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Postings    []LedgerPosting `json:"postings"`
	EndBalance  decimal.Decimal `json:"endBalance"`
}

// ReportLine is one labelled amount on a financial statement.
type ReportLine struct {
	AccountID string          `json:"accountID,omitempty"`
	Code      string          `json:"code,omitempty"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitLossReport summarizes income and expenses over a period.
type ProfitLossReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Income        []ReportLine    `json:"income"`
	Expenses      []ReportLine    `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// BalanceSheet is the statement of financial position as of a date.
// RetainedEarnings (cumulative net income to date) is folded into the
// equity section so the sheet balances without a formal close.
type BalanceSheet struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []ReportLine    `json:"assets"`
	Liabilities      []ReportLine    `json:"liabilities"`
	Equity           []ReportLine    `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Cash             decimal.Decimal `json:"cash"`
	Receivables      decimal.Decimal `json:"receivables"`
	Payables         decimal.Decimal `json:"payables"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	IsBalanced       bool            `json:"isBalanced"`
}

// CashFlowCategory groups cash movements by their counter account.
type CashFlowCategory struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowReport summarizes cash in and out over a period, derived from
// journal entries touching cash-role accounts.
type CashFlowReport struct {
	From           time.Time          `json:"from"`
	To             time.Time          `json:"to"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Inflows        []CashFlowCategory `json:"inflows"`
	Outflows       []CashFlowCategory `json:"outflows"`
	TotalInflows   decimal.Decimal    `json:"totalInflows"`
	TotalOutflows  decimal.Decimal    `json:"totalOutflows"`
	NetChange      decimal.Decimal    `json:"netChange"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
}

// AgingItem is one open invoice in the receivables aging report.
type AgingItem struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	DueDate       time.Time       `json:"dueDate"`
	DaysOverdue   int             `json:"daysOverdue"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// AgingBucket groups open invoices by how far past due they are.
type AgingBucket struct {
	Label string          `json:"label"`
	Items []AgingItem     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ReceivablesAgingReport buckets outstanding invoices into standard
// overdue ranges.
type ReceivablesAgingReport struct {
	AsOf             time.Time       `json:"asOf"`
	Buckets          []AgingBucket   `json:"buckets"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}

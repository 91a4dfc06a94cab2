package domain

import "strings"

// AccountType defines the fundamental accounting type of an account.
// The type fixes the account's normal balance side: debit for
// ASSET/EXPENSE, credit for LIABILITY/EQUITY/INCOME.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ReportRole tags an account for report categorization (cash flow,
// balance-sheet sub-splits, aging). It replaces the legacy convention of
// pattern-matching account code prefixes on every report.
type ReportRole string

const (
	RoleCash        ReportRole = "CASH"
	RoleReceivables ReportRole = "RECEIVABLES"
	RolePayables    ReportRole = "PAYABLES"
	RoleNone        ReportRole = "NONE"
)

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	Code        string      `json:"code"`      // Unique, sortable chart-of-accounts code
	Name        string      `json:"name"`      // User-defined name
	AccountType AccountType `json:"accountType"`
	ReportRole  ReportRole  `json:"reportRole"`
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft delete / status flag
	AuditFields             // Embed CreatedAt, CreatedBy, etc.
}

// IsDebitNormal reports whether balances on this account type grow on the
// debit side.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// DefaultRoleForCode maps the legacy account-code prefix convention
// (11 -> cash, 12 -> receivables, 21 -> payables) to a ReportRole. Used
// only when an account is created without an explicit role, so existing
// charts of accounts keep their report behavior.
func DefaultRoleForCode(code string) ReportRole {
	switch {
	case strings.HasPrefix(code, "11"):
		return RoleCash
	case strings.HasPrefix(code, "12"):
		return RoleReceivables
	case strings.HasPrefix(code, "21"):
		return RolePayables
	default:
		return RoleNone
	}
}

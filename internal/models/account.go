package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ReportRole tags an account for report categorization.
type ReportRole string

const (
	RoleCash        ReportRole = "CASH"
	RoleReceivables ReportRole = "RECEIVABLES"
	RolePayables    ReportRole = "PAYABLES"
	RoleNone        ReportRole = "NONE"
)

// Account is the persistence shape of a financial account.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	ReportRole  ReportRole  `db:"report_role"`
	Description string      `db:"description"` // Nullable
	IsActive    bool        `db:"is_active"`
	AuditFields             // Embed common audit fields
}

package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// Tolerance is the maximum absolute difference (in currency units) under
// which two monetary sums are considered equal. Covers rounding drift
// from fractional-cent inputs.
var Tolerance = decimal.NewFromFloat(0.01)

// Balanced reports whether total debits and total credits agree within
// Tolerance.
func Balanced(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThan(Tolerance)
}

// SignedAmount converts a line's debit/credit pair into a single signed
// movement for the given account type. Debits increase debit-normal
// accounts and decrease credit-normal accounts, and vice versa for
// credits.
func SignedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// NormalBalance reduces an account's lifetime debit and credit sums to
// its balance, positive when the account carries a balance on its normal
// side.
func NormalBalance(accountType domain.AccountType, totalDebits, totalCredits decimal.Decimal) decimal.Decimal {
	return SignedAmount(accountType, totalDebits, totalCredits)
}

package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
)

// Contribution determines which side of the period-close booking a running
// balance posts to, and with what (positive) amount.
//
// Income accounts are normally credit-balanced, expense accounts normally
// debit-balanced, so the booking entry posts the opposite side to drain the
// account toward zero:
//
//	INCOME  with positive balance -> DEBIT of the balance
//	INCOME  with negative balance -> CREDIT of the absolute value
//	EXPENSE with positive balance -> CREDIT of the balance
//	EXPENSE with negative balance -> DEBIT of the absolute value
//
// A zero balance contributes nothing; callers skip those lines.
func Contribution(accountType domain.GLAccountType, balance decimal.Decimal) (domain.EntrySide, decimal.Decimal, error) {
	switch accountType {
	case domain.Income:
		if balance.IsPositive() {
			return domain.Debit, balance, nil
		}
		return domain.Credit, balance.Abs(), nil
	case domain.Expense:
		if balance.IsPositive() {
			return domain.Credit, balance, nil
		}
		return domain.Debit, balance.Abs(), nil
	default:
		return "", decimal.Zero, fmt.Errorf("account type '%s' does not participate in income/expense booking", accountType)
	}
}

// CalculateSignedAmount applies the accounting sign convention to a posting:
// debits increase ASSET/EXPENSE balances and decrease the rest, credits do the
// opposite. Used by the journal entry writer when maintaining running balances.
func CalculateSignedAmount(side domain.EntrySide, amount decimal.Decimal, accountType domain.GLAccountType) (decimal.Decimal, error) {
	signedAmount := amount
	isDebit := side == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	return signedAmount, nil
}

package domain

// GLAccountType defines the fundamental accounting classification of a general
// ledger account.
type GLAccountType string

const (
	Asset     GLAccountType = "ASSET"
	Liability GLAccountType = "LIABILITY"
	Equity    GLAccountType = "EQUITY"
	Income    GLAccountType = "INCOME"
	Expense   GLAccountType = "EXPENSE"
)

// IsIncomeOrExpense reports whether the account type participates in the
// period-end income/expense booking.
func (t GLAccountType) IsIncomeOrExpense() bool {
	return t == Income || t == Expense
}

// GLAccount represents a single general ledger account.
type GLAccount struct {
	AccountID   string        `json:"accountID"` // Primary key (UUID)
	Name        string        `json:"name"`
	GLCode      string        `json:"glCode"` // Human-facing chart-of-accounts code
	AccountType GLAccountType `json:"accountType"`
	Disabled    bool          `json:"disabled"`
	AuditFields
}

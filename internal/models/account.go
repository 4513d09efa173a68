package models

// GLAccountType mirrors the account classification enum in the database.
type GLAccountType string

const (
	Asset     GLAccountType = "ASSET"
	Liability GLAccountType = "LIABILITY"
	Equity    GLAccountType = "EQUITY"
	Income    GLAccountType = "INCOME"
	Expense   GLAccountType = "EXPENSE"
)

// GLAccount maps a row of acc_gl_account.
type GLAccount struct {
	AccountID   string        `db:"account_id"`
	Name        string        `db:"name"`
	GLCode      string        `db:"gl_code"`
	AccountType GLAccountType `db:"account_type"`
	IsDisabled  bool          `db:"is_disabled"`
	AuditFields
}

// Office maps a row of offices.
type Office struct {
	OfficeID       string  `db:"office_id"`
	Name           string  `db:"name"`
	ParentOfficeID *string `db:"parent_office_id"`
	Hierarchy      string  `db:"hierarchy"`
	AuditFields
}

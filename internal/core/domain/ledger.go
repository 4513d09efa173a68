package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeExpenseLine is a read-only ledger projection: the most recent journal
// entry at or before a cut-off date for one income- or expense-classified
// account, together with its running balance.
type IncomeExpenseLine struct {
	EntryID                  int64           `json:"entryID"`
	EntryDate                time.Time       `json:"entryDate"`
	AccountID                string          `json:"accountID"`
	AccountName              string          `json:"accountName"`
	OfficeID                 string          `json:"officeID"`
	AccountType              GLAccountType   `json:"accountType"` // INCOME or EXPENSE
	Balance                  decimal.Decimal `json:"balance"`     // Signed running balance
	RunningBalanceCalculated bool            `json:"runningBalanceCalculated"`
}

// AccountBalance is the running balance of one GL account as of a cut-off
// date, regardless of classification. It feeds the closure balance snapshot.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

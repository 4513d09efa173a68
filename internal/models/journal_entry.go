package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide mirrors the journal entry type enum in the database.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// JournalEntry maps a row of acc_gl_journal_entry. All lines of one balanced
// entry share a transaction_id. Running balances are maintained per account
// at insert time; the calculated flag guards readers against rows whose
// balance backfill has not completed.
type JournalEntry struct {
	EntryID                  int64           `db:"entry_id"`
	TransactionID            string          `db:"transaction_id"`
	AccountID                string          `db:"account_id"`
	OfficeID                 string          `db:"office_id"`
	EntryDate                time.Time       `db:"entry_date"`
	Type                     EntrySide       `db:"type"`
	Amount                   decimal.Decimal `db:"amount"`
	CurrencyCode             string          `db:"currency_code"`
	Description              string          `db:"description"`
	RunningBalance           decimal.Decimal `db:"running_balance"`
	RunningBalanceCalculated bool            `db:"running_balance_calculated"`
	IsReversed               bool            `db:"is_reversed"`
	AuditFields
}

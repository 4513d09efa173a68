package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates which side of a journal entry a line posts to.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// JournalEntryLine is a single (account, amount) posting within a balanced
// journal entry. Amounts are always positive; the side carries the sign.
type JournalEntryLine struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// BalancedJournalEntry is the netting calculator's output: the journal entry
// request that drains every income/expense account toward zero against the
// designated equity account.
type BalancedJournalEntry struct {
	OfficeID     string             `json:"officeID"`
	CurrencyCode string             `json:"currencyCode"`
	EntryDate    time.Time          `json:"entryDate"`
	Comments     string             `json:"comments"`
	Debits       []JournalEntryLine `json:"debits"`
	Credits      []JournalEntryLine `json:"credits"`
}

// DebitTotal sums the debit lines.
func (e *BalancedJournalEntry) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Debits {
		total = total.Add(l.Amount)
	}
	return total
}

// CreditTotal sums the credit lines.
func (e *BalancedJournalEntry) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Credits {
		total = total.Add(l.Amount)
	}
	return total
}

// Balanced reports whether debits and credits cancel exactly. Every caller
// verifies this before handing the entry to the journal entry writer.
func (e *BalancedJournalEntry) Balanced() bool {
	return len(e.Debits) > 0 && len(e.Credits) > 0 && e.DebitTotal().Equal(e.CreditTotal())
}

// IncomeExpenseBooking links a closure to the journal transaction that zeroed
// out income and expense for the period. At most one per closure.
type IncomeExpenseBooking struct {
	BookingID     string `json:"bookingID"` // Primary key (UUID)
	ClosureID     string `json:"closureID"`
	TransactionID string `json:"transactionID"` // Journal entry transaction reference
	Reversed      bool   `json:"reversed"`
	AuditFields
}

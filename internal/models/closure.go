package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GLClosure maps a row of acc_gl_closure.
type GLClosure struct {
	ClosureID   string    `db:"closure_id"`
	OfficeID    string    `db:"office_id"`
	OfficeName  string    `db:"office_name"` // Joined from offices on reads
	ClosingDate time.Time `db:"closing_date"`
	Comments    string    `db:"comments"`
	IsDeleted   bool      `db:"is_deleted"`
	AuditFields
}

// IncomeExpenseBooking maps a row of acc_income_expense_booking.
type IncomeExpenseBooking struct {
	BookingID     string `db:"booking_id"`
	ClosureID     string `db:"closure_id"`
	TransactionID string `db:"transaction_id"`
	IsReversed    bool   `db:"is_reversed"`
	AuditFields
}

// AccountBalanceSnapshot maps a row of acc_gl_closure_balance_snapshot.
type AccountBalanceSnapshot struct {
	SnapshotID string          `db:"snapshot_id"`
	ClosureID  string          `db:"closure_id"`
	AccountID  string          `db:"account_id"`
	Balance    decimal.Decimal `db:"balance"`
	AuditFields
}

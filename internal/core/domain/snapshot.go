package domain

import "github.com/shopspring/decimal"

// AccountBalanceSnapshot is the running balance of one GL account captured at
// closure time. Snapshots form the point-in-time audit trail for reports and
// are destroyed only together with their owning closure.
type AccountBalanceSnapshot struct {
	SnapshotID string          `json:"snapshotID"` // Primary key (UUID)
	ClosureID  string          `json:"closureID"`
	AccountID  string          `json:"accountID"`
	Balance    decimal.Decimal `json:"balance"`
	AuditFields
}

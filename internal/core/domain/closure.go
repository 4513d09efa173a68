package domain

import "time"

// GLClosure marks accounting as closed for one office as of a date. Closures
// are soft-deleted only; an active closure freezes the ledger for the office
// up to and including ClosingDate.
type GLClosure struct {
	ClosureID   string    `json:"closureID"` // Primary key (UUID)
	OfficeID    string    `json:"officeID"`
	OfficeName  string    `json:"officeName,omitempty"` // Populated on reads
	ClosingDate time.Time `json:"closingDate"`          // Date-granular, tenant timezone
	Comments    string    `json:"comments"`
	Deleted     bool      `json:"deleted"`
	AuditFields
}

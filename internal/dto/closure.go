package dto

import (
	"time"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
)

// ClosingDateFormat is the wire format for closing dates. Closures are
// date-granular; the tenant timezone supplies the meaning of "day".
const ClosingDateFormat = "2006-01-02"

// CreateClosureRequest carries the payload for closing accounting for an
// office (and optionally its whole sub-branch tree) as of a date.
type CreateClosureRequest struct {
	OfficeID                string  `json:"officeID" binding:"required"`
	ClosingDate             string  `json:"closingDate" binding:"required,datetime=2006-01-02"`
	Comments                string  `json:"comments"`
	BookOffIncomeAndExpense bool    `json:"bookOffIncomeAndExpense"`
	EquityAccountID         *string `json:"equityAccountID" binding:"required_if=BookOffIncomeAndExpense true"`
	IncludeSubBranches      bool    `json:"includeSubBranches"`
	CurrencyCode            string  `json:"currencyCode" binding:"required,len=3"`
}

// ParsedClosingDate returns the closing date as a UTC midnight time.
// Binding has already guaranteed the format.
func (r *CreateClosureRequest) ParsedClosingDate() time.Time {
	t, _ := time.Parse(ClosingDateFormat, r.ClosingDate)
	return t
}

// UpdateClosureRequest carries the mutable closure metadata. Closing date and
// office are immutable after creation.
type UpdateClosureRequest struct {
	Comments *string `json:"comments"`
}

// ListClosuresParams holds query parameters for listing closures.
type ListClosuresParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ClosureResponse is the API representation of a closure.
type ClosureResponse struct {
	ClosureID   string    `json:"closureID"`
	OfficeID    string    `json:"officeID"`
	OfficeName  string    `json:"officeName,omitempty"`
	ClosingDate string    `json:"closingDate"`
	Comments    string    `json:"comments"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// BookingResponse summarizes the income/expense booking of a closure.
type BookingResponse struct {
	BookingID     string `json:"bookingID"`
	TransactionID string `json:"transactionID"`
	Reversed      bool   `json:"reversed"`
}

// ClosureDetailResponse is the closure detail view, including the booking
// when income/expense was booked off.
type ClosureDetailResponse struct {
	ClosureResponse
	Booking *BookingResponse `json:"booking,omitempty"`
}

// ListClosuresResponse is the paginated closure listing.
type ListClosuresResponse struct {
	Closures  []ClosureResponse `json:"closures"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToClosureResponse converts a domain closure to its API representation.
func ToClosureResponse(c *domain.GLClosure) ClosureResponse {
	return ClosureResponse{
		ClosureID:   c.ClosureID,
		OfficeID:    c.OfficeID,
		OfficeName:  c.OfficeName,
		ClosingDate: c.ClosingDate.Format(ClosingDateFormat),
		Comments:    c.Comments,
		Deleted:     c.Deleted,
		CreatedAt:   c.CreatedAt,
		CreatedBy:   c.CreatedBy,
	}
}

// ToClosureResponses converts a slice of domain closures.
func ToClosureResponses(cs []domain.GLClosure) []ClosureResponse {
	out := make([]ClosureResponse, len(cs))
	for i := range cs {
		out[i] = ToClosureResponse(&cs[i])
	}
	return out
}

package repositories

import (
	"context"
	"time"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
)

// ClosureReader defines read operations for closure data.
type ClosureReader interface {
	// FindClosureByID retrieves a closure by its unique identifier, deleted or not.
	FindClosureByID(ctx context.Context, closureID string) (*domain.GLClosure, error)

	// FindLatestClosure retrieves the active closure with the greatest closing
	// date for a single office. Returns apperrors.ErrNotFound when the office
	// has no active closure.
	FindLatestClosure(ctx context.Context, officeID string) (*domain.GLClosure, error)

	// FindLatestClosureForOffices retrieves the active closure with the
	// greatest closing date across any of the given offices. Returns
	// apperrors.ErrNotFound when none of them has an active closure.
	FindLatestClosureForOffices(ctx context.Context, officeIDs []string) (*domain.GLClosure, error)

	// ListClosuresByOffice retrieves a paginated list of active closures for an
	// office using token-based pagination, most recent first.
	ListClosuresByOffice(ctx context.Context, officeID string, limit int, nextToken *string) ([]domain.GLClosure, *string, error)
}

// ClosureWriter defines write operations for closure data.
type ClosureWriter interface {
	// SaveClosure persists a new closure row.
	SaveClosure(ctx context.Context, closure domain.GLClosure) error

	// UpdateClosureComments updates the mutable metadata of a closure.
	// Closing date and office are immutable after creation.
	UpdateClosureComments(ctx context.Context, closureID string, comments string, updatedBy string, updatedAt time.Time) error

	// MarkClosureDeleted soft-deletes a closure. The row is retained.
	MarkClosureDeleted(ctx context.Context, closureID string, updatedBy string, updatedAt time.Time) error
}

// BookingRepository defines operations for the closure-to-transaction link.
type BookingRepository interface {
	// SaveBooking persists the booking created for a closure.
	SaveBooking(ctx context.Context, booking domain.IncomeExpenseBooking) error

	// FindBookingByClosureID retrieves the booking owned by a closure.
	// Returns apperrors.ErrNotFound when the closure booked nothing.
	FindBookingByClosureID(ctx context.Context, closureID string) (*domain.IncomeExpenseBooking, error)

	// MarkBookingReversed flags a booking as reversed, in lockstep with the
	// reversal of its journal transaction.
	MarkBookingReversed(ctx context.Context, bookingID string, updatedBy string, updatedAt time.Time) error
}

// SnapshotRepository defines operations for closure balance snapshots.
type SnapshotRepository interface {
	// SaveSnapshots bulk-inserts the account balance snapshots of a closure.
	SaveSnapshots(ctx context.Context, snapshots []domain.AccountBalanceSnapshot) error

	// DeleteSnapshotsByClosureID removes all snapshots owned by a closure.
	DeleteSnapshotsByClosureID(ctx context.Context, closureID string) error
}

// ClosureRepositoryFacade combines all closure-related repository interfaces.
type ClosureRepositoryFacade interface {
	ClosureReader
	ClosureWriter
	BookingRepository
	SnapshotRepository
}

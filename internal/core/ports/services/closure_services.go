package services

import (
	"context"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	"github.com/Musoni/mifosx-sub001/internal/dto"
)

// ClosureReaderSvc defines read operations for closures.
type ClosureReaderSvc interface {
	// GetClosureByID retrieves a closure and, when present, its booking.
	GetClosureByID(ctx context.Context, closureID string) (*domain.GLClosure, *domain.IncomeExpenseBooking, error)

	// ListClosures retrieves a paginated list of active closures for an office.
	ListClosures(ctx context.Context, officeID string, params dto.ListClosuresParams) (*dto.ListClosuresResponse, error)
}

// ClosureWriterSvc defines the closure command surface.
type ClosureWriterSvc interface {
	// CreateClosure closes accounting for an office, optionally booking off
	// income and expense and optionally covering the whole sub-branch tree.
	// Returns every closure created; the target office's closure comes first.
	CreateClosure(ctx context.Context, req dto.CreateClosureRequest, creatorUserID string) ([]domain.GLClosure, error)

	// UpdateClosure updates mutable closure metadata and returns the changed
	// fields keyed by name.
	UpdateClosure(ctx context.Context, closureID string, req dto.UpdateClosureRequest, updaterUserID string) (map[string]interface{}, error)

	// DeleteClosure soft-deletes a closure, optionally reversing its booking.
	DeleteClosure(ctx context.Context, closureID string, reverseBooking bool, deleterUserID string) (*domain.GLClosure, error)
}

// ClosureSvcFacade combines all closure service interfaces.
type ClosureSvcFacade interface {
	ClosureReaderSvc
	ClosureWriterSvc
}

package repositories

import (
	"context"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
)

// OfficeReader resolves offices and their place in the organizational tree.
type OfficeReader interface {
	// FindOfficeByID retrieves an office by its unique identifier.
	FindOfficeByID(ctx context.Context, officeID string) (*domain.Office, error)

	// OfficesUnderHierarchy returns every descendant of the given office, any
	// depth, excluding the office itself. Empty slice for leaf offices.
	OfficesUnderHierarchy(ctx context.Context, officeID string) ([]domain.Office, error)
}

package repositories

import (
	"context"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
)

// GLAccountReader defines read operations for GL account data.
type GLAccountReader interface {
	// FindAccountByID retrieves a GL account by its unique identifier.
	// Returns apperrors.ErrNotFound when no such account exists.
	FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error)
}

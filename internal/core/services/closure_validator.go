package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
	portssvc "github.com/Musoni/mifosx-sub001/internal/core/ports/services"
	"github.com/Musoni/mifosx-sub001/internal/dto"
)

var (
	// ErrFutureClosingDate rejects closures dated after the tenant's today.
	ErrFutureClosingDate = errors.New("closing date cannot be in the future")

	// ErrAccountingAlreadyClosed rejects closures dated before an existing
	// active closure for the office or one of its descendants.
	ErrAccountingAlreadyClosed = errors.New("accounting is already closed")
)

// closureValidator enforces the temporal invariants on closure creation.
type closureValidator struct {
	closureRepo portsrepo.ClosureReader
	officeRepo  portsrepo.OfficeReader
	clock       portssvc.TenantClock
}

func newClosureValidator(closureRepo portsrepo.ClosureReader, officeRepo portsrepo.OfficeReader, clock portssvc.TenantClock) *closureValidator {
	return &closureValidator{
		closureRepo: closureRepo,
		officeRepo:  officeRepo,
		clock:       clock,
	}
}

// Validate checks that closing the office (and, when includeSubBranches, its
// whole subtree) at closingDate is chronologically consistent. All offices in
// scope are checked before the caller performs any write.
//
// A closing date equal to an existing closure's date is permitted; only a
// strictly later existing closure blocks the request.
func (v *closureValidator) Validate(ctx context.Context, officeID string, closingDate time.Time, includeSubBranches bool) error {
	today := v.clock.Today(ctx)
	if closingDate.After(today) {
		return fmt.Errorf("%w: %s is after %s", ErrFutureClosingDate,
			closingDate.Format(dto.ClosingDateFormat), today.Format(dto.ClosingDateFormat))
	}

	officeIDs := []string{officeID}
	if includeSubBranches {
		descendants, err := v.officeRepo.OfficesUnderHierarchy(ctx, officeID)
		if err != nil {
			return fmt.Errorf("failed to resolve office hierarchy under %s: %w", officeID, err)
		}
		for _, office := range descendants {
			officeIDs = append(officeIDs, office.OfficeID)
		}
	}

	latest, err := v.closureRepo.FindLatestClosureForOffices(ctx, officeIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No prior closure anywhere in scope.
			return nil
		}
		return fmt.Errorf("failed to look up latest closure for office %s: %w", officeID, err)
	}

	if latest.ClosingDate.After(closingDate) {
		return fmt.Errorf("%w: office %s has an active closure dated %s, after requested %s",
			ErrAccountingAlreadyClosed, latest.OfficeID,
			latest.ClosingDate.Format(dto.ClosingDateFormat), closingDate.Format(dto.ClosingDateFormat))
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
	portssvc "github.com/Musoni/mifosx-sub001/internal/core/ports/services"
	"github.com/Musoni/mifosx-sub001/internal/dto"
	"github.com/Musoni/mifosx-sub001/internal/middleware"
)

var (
	ErrOfficeNotFound        = errors.New("office not found")
	ErrEquityAccountNotFound = errors.New("equity account not found")
	ErrNotEquityAccount      = errors.New("account is not an equity account")
	ErrClosureInvalidDelete  = errors.New("a later closure exists for the office; closures must be deleted most-recent-first")
	ErrDuplicateClosure      = errors.New("an active closure already exists for the office and closing date")
)

// closureService orchestrates period closes: validation, income/expense
// netting, journal entry creation, closure persistence, balance snapshots and
// closure reversal. All writes of one request share a single database
// transaction.
type closureService struct {
	closureRepo   portsrepo.ClosureRepositoryFacade
	ledgerRepo    portsrepo.LedgerReader
	accountRepo   portsrepo.GLAccountReader
	officeRepo    portsrepo.OfficeReader
	journalWriter portsrepo.JournalEntryWriter
	txManager     portsrepo.TxManager
	validator     *closureValidator
}

// NewClosureService creates the closure service facade.
func NewClosureService(repos portsrepo.RepositoryProvider, clock portssvc.TenantClock) portssvc.ClosureSvcFacade {
	return &closureService{
		closureRepo:   repos.ClosureRepo,
		ledgerRepo:    repos.LedgerRepo,
		accountRepo:   repos.AccountRepo,
		officeRepo:    repos.OfficeRepo,
		journalWriter: repos.JournalEntryRepo,
		txManager:     repos.TxManager,
		validator:     newClosureValidator(repos.ClosureRepo, repos.OfficeRepo, clock),
	}
}

var _ portssvc.ClosureSvcFacade = (*closureService)(nil)

// CreateClosure closes accounting for the target office and, when requested,
// every office beneath it. Offices are processed sequentially; the first
// unrecoverable error aborts the whole request and rolls back every write.
func (s *closureService) CreateClosure(ctx context.Context, req dto.CreateClosureRequest, creatorUserID string) ([]domain.GLClosure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	closingDate := req.ParsedClosingDate()

	office, err := s.officeRepo.FindOfficeByID(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOfficeNotFound, req.OfficeID)
		}
		return nil, fmt.Errorf("failed to resolve office %s: %w", req.OfficeID, err)
	}

	// Target office first; callers surface its closure id as the primary result.
	offices := []domain.Office{*office}
	if req.IncludeSubBranches {
		descendants, err := s.officeRepo.OfficesUnderHierarchy(ctx, req.OfficeID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve office hierarchy under %s: %w", req.OfficeID, err)
		}
		offices = append(offices, descendants...)
	}

	var equityAccount *domain.GLAccount
	if req.BookOffIncomeAndExpense {
		equityAccount, err = s.resolveEquityAccount(ctx, req.EquityAccountID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	created := make([]domain.GLClosure, 0, len(offices))

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		// Every office in scope must validate before any write happens.
		if err := s.validator.Validate(ctx, req.OfficeID, closingDate, req.IncludeSubBranches); err != nil {
			return err
		}

		for _, office := range offices {
			closure, err := s.closeSingleOffice(ctx, office, closingDate, req, equityAccount, creatorUserID, now)
			if err != nil {
				return err
			}
			created = append(created, *closure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Accounting closed",
		slog.String("office_id", req.OfficeID),
		slog.String("closing_date", req.ClosingDate),
		slog.Int("closure_count", len(created)),
		slog.Bool("booked_off", req.BookOffIncomeAndExpense),
	)
	return created, nil
}

// closeSingleOffice runs the query -> net -> book -> persist -> snapshot
// pipeline for one office within the enclosing transaction.
func (s *closureService) closeSingleOffice(
	ctx context.Context,
	office domain.Office,
	closingDate time.Time,
	req dto.CreateClosureRequest,
	equityAccount *domain.GLAccount,
	creatorUserID string,
	now time.Time,
) (*domain.GLClosure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	closure := domain.GLClosure{
		ClosureID:   uuid.NewString(),
		OfficeID:    office.OfficeID,
		OfficeName:  office.Name,
		ClosingDate: closingDate,
		Comments:    req.Comments,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	var booking *domain.IncomeExpenseBooking
	if req.BookOffIncomeAndExpense {
		lines, err := s.ledgerRepo.RetrieveIncomeExpenseLines(ctx, office.OfficeID, closingDate)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve income/expense lines for office %s: %w", office.OfficeID, err)
		}

		entry, err := ComputeIncomeExpenseBooking(lines, equityAccount.AccountID, office.OfficeID, closingDate, req.Comments, req.CurrencyCode)
		if err != nil {
			return nil, err
		}

		if entry == nil {
			logger.Info("Income and expense already net to zero, no booking created",
				slog.String("office_id", office.OfficeID))
		} else {
			transactionID, err := s.journalWriter.CreateBalancedEntry(ctx, *entry, creatorUserID)
			if err != nil {
				return nil, fmt.Errorf("failed to book off income and expense for office %s: %w", office.OfficeID, err)
			}
			booking = &domain.IncomeExpenseBooking{
				BookingID:     uuid.NewString(),
				ClosureID:     closure.ClosureID,
				TransactionID: transactionID,
				AuditFields:   closure.AuditFields,
			}
		}
	}

	if err := s.closureRepo.SaveClosure(ctx, closure); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: office %s at %s", ErrDuplicateClosure,
				office.OfficeID, closingDate.Format(dto.ClosingDateFormat))
		}
		return nil, fmt.Errorf("failed to save closure for office %s: %w", office.OfficeID, err)
	}

	if booking != nil {
		if err := s.closureRepo.SaveBooking(ctx, *booking); err != nil {
			return nil, fmt.Errorf("failed to save income/expense booking for closure %s: %w", closure.ClosureID, err)
		}
	}

	if err := s.writeBalanceSnapshots(ctx, closure, creatorUserID, now); err != nil {
		return nil, err
	}

	return &closure, nil
}

// writeBalanceSnapshots records the running balance of every GL account with
// postings for the office as of the closing date. The snapshot set may be
// empty for an office with no ledger activity.
func (s *closureService) writeBalanceSnapshots(ctx context.Context, closure domain.GLClosure, creatorUserID string, now time.Time) error {
	balances, err := s.ledgerRepo.RetrieveAccountBalances(ctx, closure.OfficeID, closure.ClosingDate)
	if err != nil {
		return fmt.Errorf("failed to retrieve account balances for office %s: %w", closure.OfficeID, err)
	}
	if len(balances) == 0 {
		return nil
	}

	snapshots := make([]domain.AccountBalanceSnapshot, len(balances))
	for i, balance := range balances {
		snapshots[i] = domain.AccountBalanceSnapshot{
			SnapshotID: uuid.NewString(),
			ClosureID:  closure.ClosureID,
			AccountID:  balance.AccountID,
			Balance:    balance.Balance,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := s.closureRepo.SaveSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("failed to save balance snapshots for closure %s: %w", closure.ClosureID, err)
	}
	return nil
}

func (s *closureService) resolveEquityAccount(ctx context.Context, equityAccountID *string) (*domain.GLAccount, error) {
	if equityAccountID == nil || *equityAccountID == "" {
		return nil, fmt.Errorf("%w: equityAccountID is required when booking off income and expense", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, *equityAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEquityAccountNotFound, *equityAccountID)
		}
		return nil, fmt.Errorf("failed to resolve equity account %s: %w", *equityAccountID, err)
	}
	if account.AccountType != domain.Equity {
		return nil, fmt.Errorf("%w: account %s is %s", ErrNotEquityAccount, account.AccountID, account.AccountType)
	}
	if account.Disabled {
		return nil, fmt.Errorf("%w: equity account %s is disabled", apperrors.ErrValidation, account.AccountID)
	}
	return account, nil
}

// DeleteClosure soft-deletes a closure, reversing its booking when requested.
// Reversal and deletion succeed or fail together; snapshots are removed either
// way.
func (s *closureService) DeleteClosure(ctx context.Context, closureID string, reverseBooking bool, deleterUserID string) (*domain.GLClosure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	var deleted *domain.GLClosure
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		closure, err := s.closureRepo.FindClosureByID(ctx, closureID)
		if err != nil {
			return err
		}
		if closure.Deleted {
			return fmt.Errorf("%w: closure %s is already deleted", apperrors.ErrConflict, closureID)
		}

		// Closures are deleted most-recent-first per office.
		latest, err := s.closureRepo.FindLatestClosure(ctx, closure.OfficeID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to look up latest closure for office %s: %w", closure.OfficeID, err)
		}
		if latest != nil && latest.ClosingDate.After(closure.ClosingDate) {
			return fmt.Errorf("%w: office %s has closure %s dated %s", ErrClosureInvalidDelete,
				closure.OfficeID, latest.ClosureID, latest.ClosingDate.Format(dto.ClosingDateFormat))
		}

		if reverseBooking {
			if err := s.reverseBookingForClosure(ctx, closure, deleterUserID, now); err != nil {
				return err
			}
		}

		if err := s.closureRepo.MarkClosureDeleted(ctx, closureID, deleterUserID, now); err != nil {
			return fmt.Errorf("failed to delete closure %s: %w", closureID, err)
		}
		if err := s.closureRepo.DeleteSnapshotsByClosureID(ctx, closureID); err != nil {
			return fmt.Errorf("failed to delete balance snapshots for closure %s: %w", closureID, err)
		}

		closure.Deleted = true
		closure.LastUpdatedAt = now
		closure.LastUpdatedBy = deleterUserID
		deleted = closure
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Closure deleted",
		slog.String("closure_id", closureID),
		slog.String("office_id", deleted.OfficeID),
		slog.Bool("reverse_booking", reverseBooking),
	)
	return deleted, nil
}

func (s *closureService) reverseBookingForClosure(ctx context.Context, closure *domain.GLClosure, userID string, now time.Time) error {
	booking, err := s.closureRepo.FindBookingByClosureID(ctx, closure.ClosureID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Closure was created without a booking (degenerate netting or
			// booking never requested); nothing to reverse.
			return nil
		}
		return fmt.Errorf("failed to look up booking for closure %s: %w", closure.ClosureID, err)
	}
	if booking.Reversed {
		return nil
	}

	if err := s.journalWriter.ReverseEntry(ctx, booking.TransactionID, userID); err != nil {
		return fmt.Errorf("failed to reverse journal transaction %s for closure %s: %w",
			booking.TransactionID, closure.ClosureID, err)
	}
	if err := s.closureRepo.MarkBookingReversed(ctx, booking.BookingID, userID, now); err != nil {
		return fmt.Errorf("failed to mark booking %s reversed: %w", booking.BookingID, err)
	}
	return nil
}

// UpdateClosure updates the mutable metadata of a closure and reports the
// changed fields. Closing date and office are immutable after creation.
func (s *closureService) UpdateClosure(ctx context.Context, closureID string, req dto.UpdateClosureRequest, updaterUserID string) (map[string]interface{}, error) {
	closure, err := s.closureRepo.FindClosureByID(ctx, closureID)
	if err != nil {
		return nil, err
	}
	if closure.Deleted {
		return nil, fmt.Errorf("%w: closure %s is deleted", apperrors.ErrConflict, closureID)
	}

	changes := map[string]interface{}{}
	if req.Comments != nil && *req.Comments != closure.Comments {
		changes["comments"] = *req.Comments
	}
	if len(changes) == 0 {
		return changes, nil
	}

	now := time.Now().UTC()
	if err := s.closureRepo.UpdateClosureComments(ctx, closureID, *req.Comments, updaterUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update closure %s: %w", closureID, err)
	}
	return changes, nil
}

// GetClosureByID retrieves a closure and, when present, its booking.
func (s *closureService) GetClosureByID(ctx context.Context, closureID string) (*domain.GLClosure, *domain.IncomeExpenseBooking, error) {
	closure, err := s.closureRepo.FindClosureByID(ctx, closureID)
	if err != nil {
		return nil, nil, err
	}

	booking, err := s.closureRepo.FindBookingByClosureID(ctx, closureID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return closure, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to look up booking for closure %s: %w", closureID, err)
	}
	return closure, booking, nil
}

// ListClosures retrieves a paginated list of active closures for an office,
// most recent first.
func (s *closureService) ListClosures(ctx context.Context, officeID string, params dto.ListClosuresParams) (*dto.ListClosuresResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	closures, nextToken, err := s.closureRepo.ListClosuresByOffice(ctx, officeID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list closures for office %s: %w", officeID, err)
	}

	return &dto.ListClosuresResponse{
		Closures:  dto.ToClosureResponses(closures),
		NextToken: nextToken,
	}, nil
}

package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
	"github.com/Musoni/mifosx-sub001/internal/models"
	"github.com/Musoni/mifosx-sub001/internal/utils/mapping"
	"github.com/Musoni/mifosx-sub001/internal/utils/pagination"
)

// PgxClosureRepository persists closures, their bookings and their balance
// snapshots.
type PgxClosureRepository struct {
	BaseRepository
}

func newPgxClosureRepository(pool *pgxpool.Pool) portsrepo.ClosureRepositoryFacade {
	return &PgxClosureRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosureRepositoryFacade = (*PgxClosureRepository)(nil)

const closureColumns = `
	c.closure_id, c.office_id, o.name, c.closing_date, c.comments, c.is_deleted,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by`

func scanClosure(row pgx.Row) (models.GLClosure, error) {
	var m models.GLClosure
	err := row.Scan(
		&m.ClosureID,
		&m.OfficeID,
		&m.OfficeName,
		&m.ClosingDate,
		&m.Comments,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveClosure inserts a new closure row. A unique partial index on
// (office_id, closing_date) WHERE NOT is_deleted serializes concurrent
// closure attempts for the same office and date.
func (r *PgxClosureRepository) SaveClosure(ctx context.Context, closure domain.GLClosure) error {
	m := mapping.ToModelClosure(closure)
	query := `
		INSERT INTO acc_gl_closure (
			closure_id, office_id, closing_date, comments, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.querier(ctx).Exec(ctx, query,
		m.ClosureID,
		m.OfficeID,
		m.ClosingDate,
		m.Comments,
		m.IsDeleted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert closure "+m.ClosureID, err)
	}
	return nil
}

// FindClosureByID retrieves a closure by id, deleted or not.
func (r *PgxClosureRepository) FindClosureByID(ctx context.Context, closureID string) (*domain.GLClosure, error) {
	query := `
		SELECT ` + closureColumns + `
		FROM acc_gl_closure c
		JOIN offices o ON o.office_id = c.office_id
		WHERE c.closure_id = $1;
	`
	m, err := scanClosure(r.querier(ctx).QueryRow(ctx, query, closureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find closure by ID "+closureID, err)
	}
	d := mapping.ToDomainClosure(m)
	return &d, nil
}

// FindLatestClosure retrieves the active closure with the greatest closing
// date for one office.
func (r *PgxClosureRepository) FindLatestClosure(ctx context.Context, officeID string) (*domain.GLClosure, error) {
	return r.findLatest(ctx, []string{officeID})
}

// FindLatestClosureForOffices retrieves the active closure with the greatest
// closing date across the given offices.
func (r *PgxClosureRepository) FindLatestClosureForOffices(ctx context.Context, officeIDs []string) (*domain.GLClosure, error) {
	return r.findLatest(ctx, officeIDs)
}

func (r *PgxClosureRepository) findLatest(ctx context.Context, officeIDs []string) (*domain.GLClosure, error) {
	if len(officeIDs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	query := `
		SELECT ` + closureColumns + `
		FROM acc_gl_closure c
		JOIN offices o ON o.office_id = c.office_id
		WHERE c.office_id = ANY($1) AND NOT c.is_deleted
		ORDER BY c.closing_date DESC, c.created_at DESC
		LIMIT 1;
	`
	m, err := scanClosure(r.querier(ctx).QueryRow(ctx, query, officeIDs))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest closure", err)
	}
	d := mapping.ToDomainClosure(m)
	return &d, nil
}

// ListClosuresByOffice retrieves a page of active closures for an office,
// most recent first, using token-based pagination.
func (r *PgxClosureRepository) ListClosuresByOffice(ctx context.Context, officeID string, limit int, nextToken *string) ([]domain.GLClosure, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + closureColumns + `
		FROM acc_gl_closure c
		JOIN offices o ON o.office_id = c.office_id
		WHERE c.office_id = $1 AND NOT c.is_deleted
	`
	orderByClause := `ORDER BY c.closing_date DESC, c.created_at DESC`

	args := []interface{}{officeID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastClosingDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (c.closing_date, c.created_at) < ($2, $3)`
		args = append(args, lastClosingDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query closures for office "+officeID, err)
	}
	defer rows.Close()

	modelClosures := make([]models.GLClosure, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanClosure(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan closure row for office "+officeID, scanErr)
		}
		modelClosures = append(modelClosures, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating closure rows for office "+officeID, err)
	}

	var nextTokenVal *string
	results := modelClosures
	if len(modelClosures) > limit {
		last := modelClosures[limit-1]
		token := pagination.EncodeToken(last.ClosingDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelClosures[:limit]
	}

	return mapping.ToDomainClosureSlice(results), nextTokenVal, nil
}

// UpdateClosureComments updates the mutable metadata of a closure.
func (r *PgxClosureRepository) UpdateClosureComments(ctx context.Context, closureID string, comments string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE acc_gl_closure
		SET comments = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE closure_id = $1 AND NOT is_deleted;
	`
	cmdTag, err := r.querier(ctx).Exec(ctx, query, closureID, comments, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update closure "+closureID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("closure " + closureID + " not found for update")
	}
	return nil
}

// MarkClosureDeleted soft-deletes a closure; the row is retained.
func (r *PgxClosureRepository) MarkClosureDeleted(ctx context.Context, closureID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE acc_gl_closure
		SET is_deleted = true,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE closure_id = $1 AND NOT is_deleted;
	`
	cmdTag, err := r.querier(ctx).Exec(ctx, query, closureID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete closure "+closureID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("closure " + closureID + " not found for delete")
	}
	return nil
}

// SaveBooking persists the booking created for a closure.
func (r *PgxClosureRepository) SaveBooking(ctx context.Context, booking domain.IncomeExpenseBooking) error {
	query := `
		INSERT INTO acc_income_expense_booking (
			booking_id, closure_id, transaction_id, is_reversed,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.querier(ctx).Exec(ctx, query,
		booking.BookingID,
		booking.ClosureID,
		booking.TransactionID,
		booking.Reversed,
		booking.CreatedAt,
		booking.CreatedBy,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert booking for closure "+booking.ClosureID, err)
	}
	return nil
}

// FindBookingByClosureID retrieves the booking owned by a closure.
func (r *PgxClosureRepository) FindBookingByClosureID(ctx context.Context, closureID string) (*domain.IncomeExpenseBooking, error) {
	query := `
		SELECT booking_id, closure_id, transaction_id, is_reversed,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM acc_income_expense_booking
		WHERE closure_id = $1;
	`
	var m models.IncomeExpenseBooking
	err := r.querier(ctx).QueryRow(ctx, query, closureID).Scan(
		&m.BookingID,
		&m.ClosureID,
		&m.TransactionID,
		&m.IsReversed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find booking for closure "+closureID, err)
	}
	d := mapping.ToDomainBooking(m)
	return &d, nil
}

// MarkBookingReversed flags a booking as reversed.
func (r *PgxClosureRepository) MarkBookingReversed(ctx context.Context, bookingID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE acc_income_expense_booking
		SET is_reversed = true,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE booking_id = $1 AND NOT is_reversed;
	`
	cmdTag, err := r.querier(ctx).Exec(ctx, query, bookingID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark booking "+bookingID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("booking " + bookingID + " not found or already reversed")
	}
	return nil
}

// SaveSnapshots bulk-inserts the balance snapshots of a closure.
func (r *PgxClosureRepository) SaveSnapshots(ctx context.Context, snapshots []domain.AccountBalanceSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO acc_gl_closure_balance_snapshot (
			snapshot_id, closure_id, account_id, balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, s := range snapshots {
		batch.Queue(query,
			s.SnapshotID,
			s.ClosureID,
			s.AccountID,
			s.Balance,
			s.CreatedAt,
			s.CreatedBy,
			s.LastUpdatedAt,
			s.LastUpdatedBy,
		)
	}

	br := r.querier(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert balance snapshots for closure "+snapshots[0].ClosureID, err)
	}
	return nil
}

// DeleteSnapshotsByClosureID removes all snapshots owned by a closure.
func (r *PgxClosureRepository) DeleteSnapshotsByClosureID(ctx context.Context, closureID string) error {
	query := `DELETE FROM acc_gl_closure_balance_snapshot WHERE closure_id = $1;`
	_, err := r.querier(ctx).Exec(ctx, query, closureID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete balance snapshots for closure "+closureID, err)
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
	"github.com/Musoni/mifosx-sub001/internal/models"
	"github.com/Musoni/mifosx-sub001/internal/utils/mapping"
)

// PgxAccountRepository reads GL account data.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.GLAccountReader {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLAccountReader = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves a GL account by id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	query := `
		SELECT account_id, name, gl_code, account_type, is_disabled,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM acc_gl_account
		WHERE account_id = $1;
	`
	var m models.GLAccount
	err := r.querier(ctx).QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.Name,
		&m.GLCode,
		&m.AccountType,
		&m.IsDisabled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find GL account by ID "+accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

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

// PgxOfficeRepository resolves offices and the organizational tree. The
// hierarchy column holds the materialized path of an office including its own
// id (e.g. ".head.branch."), so descendant lookup is a prefix match.
type PgxOfficeRepository struct {
	BaseRepository
}

func newPgxOfficeRepository(pool *pgxpool.Pool) portsrepo.OfficeReader {
	return &PgxOfficeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OfficeReader = (*PgxOfficeRepository)(nil)

const officeColumns = `
	office_id, name, parent_office_id, hierarchy,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOffice(row pgx.Row) (models.Office, error) {
	var m models.Office
	err := row.Scan(
		&m.OfficeID,
		&m.Name,
		&m.ParentOfficeID,
		&m.Hierarchy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindOfficeByID retrieves an office by id.
func (r *PgxOfficeRepository) FindOfficeByID(ctx context.Context, officeID string) (*domain.Office, error) {
	query := `SELECT ` + officeColumns + ` FROM offices WHERE office_id = $1;`
	m, err := scanOffice(r.querier(ctx).QueryRow(ctx, query, officeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find office by ID "+officeID, err)
	}
	d := mapping.ToDomainOffice(m)
	return &d, nil
}

// OfficesUnderHierarchy returns every descendant of the office, any depth,
// excluding the office itself, ordered by hierarchy path.
func (r *PgxOfficeRepository) OfficesUnderHierarchy(ctx context.Context, officeID string) ([]domain.Office, error) {
	query := `
		SELECT ` + officeColumns + `
		FROM offices
		WHERE hierarchy LIKE (SELECT hierarchy || '%' FROM offices WHERE office_id = $1)
		  AND office_id <> $1
		ORDER BY hierarchy;
	`
	rows, err := r.querier(ctx).Query(ctx, query, officeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query offices under "+officeID, err)
	}
	defer rows.Close()

	offices := []domain.Office{}
	for rows.Next() {
		m, scanErr := scanOffice(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan office row under "+officeID, scanErr)
		}
		offices = append(offices, mapping.ToDomainOffice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating office rows under "+officeID, err)
	}
	return offices, nil
}

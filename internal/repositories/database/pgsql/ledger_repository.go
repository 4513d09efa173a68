package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
)

// PgxLedgerRepository answers read-only ledger projections for the closure
// engine.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// RetrieveIncomeExpenseLines returns, per income/expense account with postings
// for the office at or before the cut-off date, the entry with the greatest id
// at or before that date. DISTINCT ON picks the latest entry per account; the
// outer ORDER BY fixes deterministic processing order for the calculator.
func (r *PgxLedgerRepository) RetrieveIncomeExpenseLines(ctx context.Context, officeID string, cutoffDate time.Time) ([]domain.IncomeExpenseLine, error) {
	query := `
		SELECT latest.entry_id, latest.entry_date, latest.account_id, latest.name,
		       latest.office_id, latest.account_type, latest.running_balance,
		       latest.running_balance_calculated
		FROM (
			SELECT DISTINCT ON (je.account_id)
			       je.entry_id, je.entry_date, je.account_id, a.name, je.office_id,
			       a.account_type, je.running_balance, je.running_balance_calculated
			FROM acc_gl_journal_entry je
			JOIN acc_gl_account a ON a.account_id = je.account_id
			WHERE je.office_id = $1
			  AND je.entry_date <= $2
			  AND a.account_type IN ('INCOME', 'EXPENSE')
			ORDER BY je.account_id, je.entry_id DESC
		) latest
		ORDER BY latest.entry_date, latest.entry_id;
	`
	rows, err := r.querier(ctx).Query(ctx, query, officeID, cutoffDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query income/expense lines for office "+officeID, err)
	}
	defer rows.Close()

	lines := []domain.IncomeExpenseLine{}
	for rows.Next() {
		var l domain.IncomeExpenseLine
		if err := rows.Scan(
			&l.EntryID,
			&l.EntryDate,
			&l.AccountID,
			&l.AccountName,
			&l.OfficeID,
			&l.AccountType,
			&l.Balance,
			&l.RunningBalanceCalculated,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan income/expense line for office "+officeID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating income/expense lines for office "+officeID, err)
	}
	return lines, nil
}

// RetrieveAccountBalances returns the latest running balance per GL account
// with postings for the office as of the cut-off date, all classifications.
func (r *PgxLedgerRepository) RetrieveAccountBalances(ctx context.Context, officeID string, cutoffDate time.Time) ([]domain.AccountBalance, error) {
	query := `
		SELECT DISTINCT ON (je.account_id) je.account_id, je.running_balance
		FROM acc_gl_journal_entry je
		WHERE je.office_id = $1 AND je.entry_date <= $2
		ORDER BY je.account_id, je.entry_id DESC;
	`
	rows, err := r.querier(ctx).Query(ctx, query, officeID, cutoffDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account balances for office "+officeID, err)
	}
	defer rows.Close()

	balances := []domain.AccountBalance{}
	for rows.Next() {
		var b domain.AccountBalance
		if err := rows.Scan(&b.AccountID, &b.Balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account balance for office "+officeID, err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account balances for office "+officeID, err)
	}
	return balances, nil
}

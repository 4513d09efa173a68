package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
	"github.com/Musoni/mifosx-sub001/internal/models"
	"github.com/Musoni/mifosx-sub001/internal/utils/accounting"
)

// PgxJournalEntryRepository books balanced journal entries and maintains
// per-account running balances at insert time.
type PgxJournalEntryRepository struct {
	BaseRepository
}

func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryWriter {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryWriter = (*PgxJournalEntryRepository)(nil)

// CreateBalancedEntry posts the entry's debit and credit lines under one
// transaction id. Accounts are locked for the duration of the insert so the
// running balance chain per account stays consistent.
func (r *PgxJournalEntryRepository) CreateBalancedEntry(ctx context.Context, entry domain.BalancedJournalEntry, createdBy string) (string, error) {
	if !entry.Balanced() {
		return "", apperrors.NewAppError(500, "refusing to book unbalanced journal entry for office "+entry.OfficeID, nil)
	}

	transactionID := uuid.NewString()
	if err := r.insertLines(ctx, entry, transactionID, createdBy); err != nil {
		return "", err
	}
	return transactionID, nil
}

// ReverseEntry books the mirror image of a transaction's lines and flags the
// originals as reversed.
func (r *PgxJournalEntryRepository) ReverseEntry(ctx context.Context, transactionID string, reversedBy string) error {
	originals, err := r.findEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}
	if len(originals) == 0 {
		return apperrors.NewNotFoundError("journal transaction " + transactionID + " not found for reversal")
	}

	mirror := domain.BalancedJournalEntry{
		OfficeID:     originals[0].OfficeID,
		CurrencyCode: originals[0].CurrencyCode,
		EntryDate:    originals[0].EntryDate,
		Comments:     fmt.Sprintf("Reversal of transaction %s: %s", transactionID, originals[0].Description),
	}
	for _, line := range originals {
		entryLine := domain.JournalEntryLine{AccountID: line.AccountID, Amount: line.Amount}
		if line.Type == models.Debit {
			mirror.Credits = append(mirror.Credits, entryLine)
		} else {
			mirror.Debits = append(mirror.Debits, entryLine)
		}
	}

	reversingTransactionID := uuid.NewString()
	if err := r.insertLines(ctx, mirror, reversingTransactionID, reversedBy); err != nil {
		return err
	}

	query := `UPDATE acc_gl_journal_entry SET is_reversed = true WHERE transaction_id = $1;`
	if _, err := r.querier(ctx).Exec(ctx, query, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to flag transaction "+transactionID+" reversed", err)
	}
	return nil
}

// insertLines writes one row per line with its new running balance.
func (r *PgxJournalEntryRepository) insertLines(ctx context.Context, entry domain.BalancedJournalEntry, transactionID string, createdBy string) error {
	accountIDs := make([]string, 0, len(entry.Debits)+len(entry.Credits))
	for _, l := range entry.Debits {
		accountIDs = append(accountIDs, l.AccountID)
	}
	for _, l := range entry.Credits {
		accountIDs = append(accountIDs, l.AccountID)
	}

	accountTypes, err := r.lockAccounts(ctx, accountIDs)
	if err != nil {
		return err
	}
	runningBalances, err := r.currentRunningBalances(ctx, accountIDs, entry.OfficeID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	query := `
		INSERT INTO acc_gl_journal_entry (
			transaction_id, account_id, office_id, entry_date, type, amount,
			currency_code, description, running_balance, running_balance_calculated,
			is_reversed, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, false, $10, $11, $12, $13);
	`

	queueLine := func(side models.EntrySide, line domain.JournalEntryLine) error {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return apperrors.NewNotFoundError("GL account " + line.AccountID + " not found for journal entry")
		}
		signedAmount, err := accounting.CalculateSignedAmount(domain.EntrySide(side), line.Amount, domain.GLAccountType(accountType))
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for account "+line.AccountID, err)
		}
		newBalance := runningBalances[line.AccountID].Add(signedAmount)
		runningBalances[line.AccountID] = newBalance

		batch.Queue(query,
			transactionID,
			line.AccountID,
			entry.OfficeID,
			entry.EntryDate,
			side,
			line.Amount,
			entry.CurrencyCode,
			entry.Comments,
			newBalance,
			now,
			createdBy,
			now,
			createdBy,
		)
		return nil
	}

	for _, line := range entry.Debits {
		if err := queueLine(models.Debit, line); err != nil {
			return err
		}
	}
	for _, line := range entry.Credits {
		if err := queueLine(models.Credit, line); err != nil {
			return err
		}
	}

	br := r.querier(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute journal entry batch for transaction "+transactionID, err)
	}
	return nil
}

// lockAccounts takes row locks on the affected accounts and returns their
// types. Missing accounts surface as not found.
func (r *PgxJournalEntryRepository) lockAccounts(ctx context.Context, accountIDs []string) (map[string]models.GLAccountType, error) {
	query := `
		SELECT account_id, account_type
		FROM acc_gl_account
		WHERE account_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := r.querier(ctx).Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock GL accounts", err)
	}
	defer rows.Close()

	accountTypes := make(map[string]models.GLAccountType, len(accountIDs))
	for rows.Next() {
		var id string
		var accountType models.GLAccountType
		if err := rows.Scan(&id, &accountType); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked GL account", err)
		}
		accountTypes[id] = accountType
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked GL accounts", err)
	}
	return accountTypes, nil
}

// currentRunningBalances returns the latest running balance per account for
// the office; accounts without postings start from zero.
func (r *PgxJournalEntryRepository) currentRunningBalances(ctx context.Context, accountIDs []string, officeID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT DISTINCT ON (account_id) account_id, running_balance
		FROM acc_gl_journal_entry
		WHERE account_id = ANY($1) AND office_id = $2
		ORDER BY account_id, entry_id DESC;
	`
	rows, err := r.querier(ctx).Query(ctx, query, accountIDs, officeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query running balances for office "+officeID, err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal, len(accountIDs))
	for _, id := range accountIDs {
		balances[id] = decimal.Zero
	}
	for rows.Next() {
		var id string
		var balance decimal.Decimal
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan running balance", err)
		}
		balances[id] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating running balances", err)
	}
	return balances, nil
}

// findEntriesByTransactionID loads all lines of one transaction.
func (r *PgxJournalEntryRepository) findEntriesByTransactionID(ctx context.Context, transactionID string) ([]models.JournalEntry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, office_id, entry_date, type,
		       amount, currency_code, description
		FROM acc_gl_journal_entry
		WHERE transaction_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.querier(ctx).Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.OfficeID,
			&e.EntryDate,
			&e.Type,
			&e.Amount,
			&e.CurrencyCode,
			&e.Description,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry for transaction "+transactionID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entries for transaction "+transactionID, err)
	}
	return entries, nil
}

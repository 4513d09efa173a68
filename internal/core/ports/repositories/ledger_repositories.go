package repositories

import (
	"context"
	"time"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
)

// LedgerReader defines side-effect-free queries against the general ledger.
type LedgerReader interface {
	// RetrieveIncomeExpenseLines returns, for every income/expense GL account
	// with postings for the office at or before the cut-off date, the entry
	// with the greatest id at or before that date together with its running
	// balance. Ordered by entry date then id ascending for deterministic
	// downstream processing.
	RetrieveIncomeExpenseLines(ctx context.Context, officeID string, cutoffDate time.Time) ([]domain.IncomeExpenseLine, error)

	// RetrieveAccountBalances returns the running balance as of the cut-off
	// date for every GL account with postings for the office, regardless of
	// classification. Feeds the closure balance snapshot.
	RetrieveAccountBalances(ctx context.Context, officeID string, cutoffDate time.Time) ([]domain.AccountBalance, error)
}

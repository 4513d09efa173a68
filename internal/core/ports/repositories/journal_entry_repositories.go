package repositories

import (
	"context"

	"github.com/Musoni/mifosx-sub001/internal/core/domain"
)

// JournalEntryWriter books balanced journal entries into the ledger. It is
// the closure engine's gateway to journal-entry creation; the engine never
// writes ledger rows itself.
type JournalEntryWriter interface {
	// CreateBalancedEntry posts the entry and returns the transaction id
	// shared by all of its lines. The entry must satisfy Balanced().
	CreateBalancedEntry(ctx context.Context, entry domain.BalancedJournalEntry, createdBy string) (string, error)

	// ReverseEntry books the mirror image of a previously created transaction
	// and flags the original lines as reversed.
	ReverseEntry(ctx context.Context, transactionID string, reversedBy string) error
}

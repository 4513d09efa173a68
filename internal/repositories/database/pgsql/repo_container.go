package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql adapter onto the shared pool. All
// repositories join the ambient transaction started by the TxManager.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ClosureRepo:      newPgxClosureRepository(pool),
		LedgerRepo:       newPgxLedgerRepository(pool),
		AccountRepo:      newPgxAccountRepository(pool),
		OfficeRepo:       newPgxOfficeRepository(pool),
		JournalEntryRepo: newPgxJournalEntryRepository(pool),
		TxManager:        NewTxManager(pool),
	}
}

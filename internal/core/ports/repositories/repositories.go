package repositories

import "context"

// TxManager runs a function within one database transaction. The transaction
// is carried in the returned context; every repository call made with that
// context joins it. Commit happens iff fn returns nil.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	ClosureRepo      ClosureRepositoryFacade
	LedgerRepo       LedgerReader
	AccountRepo      GLAccountReader
	OfficeRepo       OfficeReader
	JournalEntryRepo JournalEntryWriter
	TxManager        TxManager
}

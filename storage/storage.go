// Package storage persists the ledger's two documents: the setup (banks and
// accounts with balances) and the transaction log.
//
// Both documents are always written whole. A Backend never merges; the last
// save wins.
package storage

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/maestro/config"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/telemetry"
)

// Backend reads and writes the setup and transaction documents.
type Backend interface {
	// LoadSetup returns the stored setup, or an empty one if none was saved yet.
	LoadSetup(ctx context.Context) (ledger.Setup, error)

	// SaveSetup replaces the stored setup.
	SaveSetup(ctx context.Context, setup ledger.Setup) error

	// LoadTransactions returns the stored log in order, or an empty log.
	LoadTransactions(ctx context.Context) ([]*ledger.Transaction, error)

	// SaveTransactions replaces the stored log.
	SaveTransactions(ctx context.Context, txns []*ledger.Transaction) error

	// Paths lists the files backing the documents, for watching.
	Paths() []string

	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return NewJSON(cfg.DataDir), nil
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.Path(SQLiteFile))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Load reads both documents and restores a ledger from them.
func Load(ctx context.Context, b Backend, opts ...ledger.Option) (*ledger.Ledger, error) {
	timer := telemetry.StartTimer(ctx, "storage.load")
	defer timer.End()

	setupTimer := timer.Child("setup")
	setup, err := b.LoadSetup(ctx)
	setupTimer.End()
	if err != nil {
		return nil, fmt.Errorf("loading setup: %w", err)
	}

	txnTimer := timer.Child("transactions")
	txns, err := b.LoadTransactions(ctx)
	txnTimer.End()
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	return ledger.Restore(setup, txns, opts...), nil
}

// Save writes both documents.
func Save(ctx context.Context, b Backend, l *ledger.Ledger) error {
	timer := telemetry.StartTimer(ctx, "storage.save")
	defer timer.End()

	setupTimer := timer.Child("setup")
	err := b.SaveSetup(ctx, l.Setup())
	setupTimer.End()
	if err != nil {
		return fmt.Errorf("saving setup: %w", err)
	}

	txnTimer := timer.Child("transactions")
	err = b.SaveTransactions(ctx, l.Transactions(ledger.Filter{}))
	txnTimer.End()
	if err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}
	return nil
}

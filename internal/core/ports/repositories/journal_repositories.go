package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry and its lines within scope.
	FindEntryByID(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.JournalEntry, error)

	// ListEntries lists entries of scope, newest first. Lines are not loaded.
	ListEntries(ctx context.Context, scope domain.LedgerScope, filter domain.EntryFilter) ([]domain.JournalEntry, error)

	// FindLinesByEntryIDs loads lines for several entries, grouped by entry id.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry and all of its lines in one transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus moves an entry from one status to another.
	// It fails with a not-found error when the entry is absent from scope and
	// with a state error when the entry is not in status from.
	UpdateEntryStatus(ctx context.Context, scope domain.LedgerScope, entryID string, from, to domain.JournalStatus, userID string, now time.Time) error

	// ReplaceTaggedEntry voids every posted entry of scope whose reference starts
	// with prefix and saves entry, all in one transaction. It returns the voided ids.
	ReplaceTaggedEntry(ctx context.Context, scope domain.LedgerScope, prefix string, entry domain.JournalEntry) ([]string, error)
}

// LedgerCalculator defines aggregate reads over posted lines.
type LedgerCalculator interface {
	// SumAccountActivity sums debits and credits of posted entries per account.
	// Accounts without activity are returned with zero sums.
	SumAccountActivity(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.AccountActivity, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerCalculator
}

package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Every method is scoped; personal scopes only see the owner's accounts.
type AccountReader interface {
	// FindAccountByID retrieves an account by id within scope.
	FindAccountByID(ctx context.Context, scope domain.LedgerScope, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within scope.
	FindAccountByCode(ctx context.Context, scope domain.LedgerScope, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts of scope among accountIDs, keyed by id.
	FindAccountsByIDs(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts lists all accounts of scope ordered by code.
	ListAccounts(ctx context.Context, scope domain.LedgerScope) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// GetOrCreateAccount atomically inserts the account if (tenant, owner, code) is absent
	// and returns the stored row either way.
	GetOrCreateAccount(ctx context.Context, scope domain.LedgerScope, spec domain.AccountSpec, userID string, now time.Time) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

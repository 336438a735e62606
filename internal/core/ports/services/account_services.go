package services

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// AccountReaderSvc defines read operations for accounts of a context.
type AccountReaderSvc interface {
	GetAccount(ctx context.Context, actx domain.AccountingContext, userID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, actx domain.AccountingContext, userID string) ([]domain.Account, error)
	// GetAccountBalance sums posted lines of the account, signed by its normal side.
	GetAccountBalance(ctx context.Context, actx domain.AccountingContext, userID, accountID string) (*domain.AccountBalance, error)
}

// AccountRegistrySvc resolves accounts by code, creating them lazily.
type AccountRegistrySvc interface {
	GetOrCreateAccount(ctx context.Context, actx domain.AccountingContext, userID string, spec domain.AccountSpec) (*domain.Account, error)
	// EnsurePersonalScaffold idempotently creates the personal cash and equity accounts of userID.
	EnsurePersonalScaffold(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountRegistrySvc
}

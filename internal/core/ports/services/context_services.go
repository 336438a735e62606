package services

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// ContextSvc turns a requested accounting context into a ledger scope.
type ContextSvc interface {
	// Resolve checks userID may use actx and returns the scope ledger calls run under.
	Resolve(ctx context.Context, userID string, actx domain.AccountingContext) (domain.LedgerScope, error)

	// Switch resolves actx and, for personal mode, provisions the personal scaffold first.
	Switch(ctx context.Context, userID string, actx domain.AccountingContext) (*domain.ContextSwitch, error)
}

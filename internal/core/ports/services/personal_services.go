package services

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/SscSPs/ledgerlite/internal/dto"
)

// BudgetSvc manages the single active personal budget of a user.
type BudgetSvc interface {
	// GetActiveBudget returns nil, nil when the user has no readable budget.
	GetActiveBudget(ctx context.Context, userID string) (*domain.ActiveBudget, error)

	// ReplaceActiveBudget voids every posted budget of the user and posts budget in one transaction.
	ReplaceActiveBudget(ctx context.Context, userID string, budget domain.Budget) (*domain.ActiveBudget, error)
}

// PersonalFinanceSvc records and summarizes personal income.
type PersonalFinanceSvc interface {
	RecordIncome(ctx context.Context, userID string, req dto.RecordIncomeRequest) (*domain.JournalEntry, error)
	ListIncome(ctx context.Context, userID string, limit int) ([]domain.IncomeRecord, error)
	Summary(ctx context.Context, userID string) (*domain.PersonalSummary, error)
}

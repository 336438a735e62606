package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/SscSPs/ledgerlite/internal/utils/budgetcodec"
	"github.com/shopspring/decimal"
)

// budgetService keeps each user's budget in the narration of a BUDGET- entry
// of their personal ledger.
type budgetService struct {
	BaseService
	accountRepo portsrepo.AccountWriter
	journalRepo portsrepo.JournalRepositoryFacade
}

func NewBudgetService(accountRepo portsrepo.AccountWriter, journalRepo portsrepo.JournalRepositoryFacade, options ...ServiceOption) portssvc.BudgetSvc {
	return &budgetService{
		BaseService: newBaseService(options),
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.BudgetSvc = (*budgetService)(nil)

func (s *budgetService) GetActiveBudget(ctx context.Context, userID string) (*domain.ActiveBudget, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}
	scope := domain.PersonalContext().ScopeFor(userID)

	entries, err := s.journalRepo.ListEntries(ctx, scope, domain.EntryFilter{
		Status:          domain.Posted,
		ReferencePrefix: domain.BudgetReferencePrefix,
		Limit:           1,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load budget entries", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	latest := entries[0]
	budget := budgetcodec.Decode(latest.Narration)
	if budget == nil {
		s.GetLogger(ctx).Warn("Budget entry narration is not a readable budget", slog.String("entry_id", latest.EntryID))
		return nil, nil
	}
	return &domain.ActiveBudget{
		EntryID:   latest.EntryID,
		Reference: latest.Reference,
		CreatedAt: latest.CreatedAt,
		Budget:    *budget,
	}, nil
}

func (s *budgetService) ReplaceActiveBudget(ctx context.Context, userID string, budget domain.Budget) (*domain.ActiveBudget, error) {
	logger := s.GetLogger(ctx)
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}

	narration, err := budgetcodec.Encode(budget)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	now := s.Now()
	scope := domain.PersonalContext().ScopeFor(userID)
	memo, err := ensureAccounts(ctx, s.accountRepo, scope,
		[]domain.AccountSpec{domain.BudgetAllocMemoAccount, domain.BudgetIncomeMemoAccount}, userID, now)
	if err != nil {
		logger.Error("Failed to provision budget memo accounts", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}

	entry, err := newEntry(scope, userID, domain.EntryDraft{
		EntryDate: now,
		Reference: domain.NewReference(domain.BudgetReferencePrefix, now),
		Narration: narration,
		Lines: []domain.LineDraft{
			{AccountID: memo[0].AccountID, Debit: budget.TotalIncome, Credit: decimal.Zero, Description: "budget allocations"},
			{AccountID: memo[1].AccountID, Debit: decimal.Zero, Credit: budget.TotalIncome, Description: "budgeted income"},
		},
	}, now)
	if err != nil {
		return nil, err
	}

	voided, err := s.journalRepo.ReplaceTaggedEntry(ctx, scope, domain.BudgetReferencePrefix, entry)
	if err != nil {
		logger.Error("Failed to replace budget", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to replace budget: %w", err)
	}

	logger.Info("Personal budget replaced", slog.String("entry_id", entry.EntryID), slog.Int("voided", len(voided)))
	s.Track(userID, utils.EventBudgetReplaced, map[string]any{"budget_type": string(budget.BudgetType), "period": string(budget.Period)})
	return &domain.ActiveBudget{
		EntryID:   entry.EntryID,
		Reference: entry.Reference,
		CreatedAt: entry.CreatedAt,
		Budget:    budget,
	}, nil
}

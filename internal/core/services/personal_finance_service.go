package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/SscSPs/ledgerlite/internal/utils/accounting"
	"github.com/SscSPs/ledgerlite/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type personalFinanceService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	budgetSvc   portssvc.BudgetSvc
}

func NewPersonalFinanceService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, budgetSvc portssvc.BudgetSvc, options ...ServiceOption) portssvc.PersonalFinanceSvc {
	return &personalFinanceService{
		BaseService: newBaseService(options),
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		budgetSvc:   budgetSvc,
	}
}

var _ portssvc.PersonalFinanceSvc = (*personalFinanceService)(nil)

// RecordIncome posts debit P-1001 / credit P-4<CODE>, creating both accounts on first use.
func (s *personalFinanceService) RecordIncome(ctx context.Context, userID string, req dto.RecordIncomeRequest) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}

	category, ok := domain.FindIncomeCategory(req.Category)
	if !ok {
		return nil, apperrors.NewValidationFailedError("unknown income category " + req.Category)
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}

	now := s.Now()
	scope := domain.PersonalContext().ScopeFor(userID)
	accounts, err := ensureAccounts(ctx, s.accountRepo, scope,
		[]domain.AccountSpec{domain.PersonalCashAccount, domain.IncomeAccountSpec(category)}, userID, now)
	if err != nil {
		return nil, err
	}
	cash, income := accounts[0], accounts[1]

	narration := strings.TrimSpace(req.Description)
	if narration == "" {
		narration = category.Label + " income"
	}
	draft := domain.EntryDraft{
		Reference: domain.NewReference(domain.PersonalIncomeReferencePrefix, now),
		Narration: narration,
		Lines: []domain.LineDraft{
			{AccountID: cash.AccountID, Debit: req.Amount, Credit: decimal.Zero, Description: category.ID},
			{AccountID: income.AccountID, Debit: decimal.Zero, Credit: req.Amount, Description: category.ID},
		},
	}
	if req.Date != nil {
		draft.EntryDate = *req.Date
	}

	entry, err := newEntry(scope, userID, draft, now)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save income entry", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to record income: %w", err)
	}

	logger.Info("Personal income recorded", slog.String("entry_id", entry.EntryID), slog.String("category", category.ID))
	s.Track(userID, utils.EventIncomeRecorded, map[string]any{"category": category.ID})
	return &entry, nil
}

func (s *personalFinanceService) ListIncome(ctx context.Context, userID string, limit int) ([]domain.IncomeRecord, error) {
	scope := domain.PersonalContext().ScopeFor(userID)

	entries, err := s.journalRepo.ListEntries(ctx, scope, domain.EntryFilter{
		ReferencePrefix: domain.PersonalIncomeReferencePrefix,
		Limit:           pagination.ClampPageSize(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	if len(entries) == 0 {
		return []domain.IncomeRecord{}, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	lines, err := s.journalRepo.FindLinesByEntryIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load income lines: %w", err)
	}
	categories, err := s.incomeAccountCategories(ctx, scope)
	if err != nil {
		return nil, err
	}

	records := make([]domain.IncomeRecord, 0, len(entries))
	for _, e := range entries {
		for _, l := range lines[e.EntryID] {
			categoryID, ok := categories[l.AccountID]
			if !ok || !l.Credit.IsPositive() {
				continue
			}
			records = append(records, domain.IncomeRecord{
				EntryID:     e.EntryID,
				Reference:   e.Reference,
				Category:    categoryID,
				Amount:      l.Credit,
				Description: e.Narration,
				Date:        e.EntryDate,
				Status:      e.Status,
			})
		}
	}
	return records, nil
}

// Summary totals posted activity of the personal ledger. Memo accounts are skipped.
func (s *personalFinanceService) Summary(ctx context.Context, userID string) (*domain.PersonalSummary, error) {
	scope := domain.PersonalContext().ScopeFor(userID)

	accounts, err := s.accountRepo.ListAccounts(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a.Category != domain.CategoryBudgetMemo {
			ids = append(ids, a.AccountID)
		}
	}
	activity, err := s.journalRepo.SumAccountActivity(ctx, scope, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to sum account activity: %w", err)
	}

	summary := &domain.PersonalSummary{
		CashBalance:      decimal.Zero,
		TotalIncome:      decimal.Zero,
		IncomeByCategory: map[string]decimal.Decimal{},
	}
	for _, a := range accounts {
		act, ok := activity[a.AccountID]
		if !ok {
			continue
		}
		balance, err := accounting.SignedBalance(a.Type, act.Debits, act.Credits)
		if err != nil {
			return nil, apperrors.NewAppError(500, "account has an invalid type", err)
		}
		switch {
		case a.Code == domain.PersonalCashCode:
			summary.CashBalance = balance
		case a.Category == domain.CategoryPersonalIncome:
			summary.IncomeByCategory[incomeCategoryID(a.Code)] = balance
			summary.TotalIncome = summary.TotalIncome.Add(balance)
		}
	}

	summary.ActiveBudget, err = s.budgetSvc.GetActiveBudget(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *personalFinanceService) incomeAccountCategories(ctx context.Context, scope domain.LedgerScope) (map[string]string, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	categories := make(map[string]string)
	for _, a := range accounts {
		if a.Category == domain.CategoryPersonalIncome {
			categories[a.AccountID] = incomeCategoryID(a.Code)
		}
	}
	return categories, nil
}

// incomeCategoryID maps "P-4SAL" back to "salary". Unknown codes map to themselves.
func incomeCategoryID(code string) string {
	suffix := strings.TrimPrefix(code, domain.PersonalIncomePrefix)
	for _, c := range domain.IncomeCategories {
		if c.Code == suffix {
			return c.ID
		}
	}
	return code
}

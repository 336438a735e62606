package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/utils/accounting"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerCalc  portsrepo.LedgerCalculator
	contextSvc  portssvc.ContextSvc
}

// NewAccountService creates the account registry.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerCalc portsrepo.LedgerCalculator, contextSvc portssvc.ContextSvc, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options),
		accountRepo: accountRepo,
		ledgerCalc:  ledgerCalc,
		contextSvc:  contextSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetOrCreateAccount(ctx context.Context, actx domain.AccountingContext, userID string, spec domain.AccountSpec) (*domain.Account, error) {
	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}
	return getOrCreateAccount(ctx, s.accountRepo, scope, spec, userID, s.Now())
}

func (s *accountService) EnsurePersonalScaffold(ctx context.Context, userID string) ([]domain.Account, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("user is required")
	}
	scope := domain.PersonalContext().ScopeFor(userID)
	accounts, err := ensureAccounts(ctx, s.accountRepo, scope, domain.PersonalScaffold, userID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to provision personal scaffold", slog.String("user_id", userID))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) GetAccount(ctx context.Context, actx domain.AccountingContext, userID, accountID string) (*domain.Account, error) {
	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, scope, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, actx domain.AccountingContext, userID string) ([]domain.Account, error) {
	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", scope.TenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) GetAccountBalance(ctx context.Context, actx domain.AccountingContext, userID, accountID string) (*domain.AccountBalance, error) {
	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, scope, accountID)
	if err != nil {
		return nil, err
	}

	activity, err := s.ledgerCalc.SumAccountActivity(ctx, scope, []string{account.AccountID})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to calculate balance: %w", err)
	}
	return balanceOf(*account, activity[account.AccountID])
}

func balanceOf(account domain.Account, activity domain.AccountActivity) (*domain.AccountBalance, error) {
	// Zero-valued decimals from a missing map entry are valid zeros.
	debits, credits := activity.Debits, activity.Credits
	balance, err := accounting.SignedBalance(account.Type, debits, credits)
	if err != nil {
		return nil, apperrors.NewAppError(500, "account has an invalid type", err)
	}
	return &domain.AccountBalance{
		Account: account,
		Debits:  debits,
		Credits: credits,
		Balance: balance,
	}, nil
}

// getOrCreateAccount validates spec and upserts it within scope.
func getOrCreateAccount(ctx context.Context, repo portsrepo.AccountWriter, scope domain.LedgerScope, spec domain.AccountSpec, userID string, now time.Time) (*domain.Account, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	account, err := repo.GetOrCreateAccount(ctx, scope, spec, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create account %s: %w", spec.Code, err)
	}
	if account.Type != spec.Type {
		return nil, fmt.Errorf("%w: account %s already exists with type %s", apperrors.ErrConflict, spec.Code, account.Type)
	}
	return account, nil
}

// ensureAccounts gets or creates every spec in order.
func ensureAccounts(ctx context.Context, repo portsrepo.AccountWriter, scope domain.LedgerScope, specs []domain.AccountSpec, userID string, now time.Time) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(specs))
	for _, spec := range specs {
		account, err := getOrCreateAccount(ctx, repo, scope, spec, userID, now)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

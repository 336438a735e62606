package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
)

type contextService struct {
	BaseService
	authorizer  portssvc.CompanyAuthorizerSvc
	accountRepo portsrepo.AccountWriter
}

// NewContextService creates the context resolver. Business contexts are
// authorized through authorizer before a scope is handed out.
func NewContextService(authorizer portssvc.CompanyAuthorizerSvc, accountRepo portsrepo.AccountWriter, options ...ServiceOption) portssvc.ContextSvc {
	return &contextService{
		BaseService: newBaseService(options),
		authorizer:  authorizer,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ContextSvc = (*contextService)(nil)

func (s *contextService) Resolve(ctx context.Context, userID string, actx domain.AccountingContext) (domain.LedgerScope, error) {
	if userID == "" {
		return domain.LedgerScope{}, apperrors.NewUnauthorizedError("user is required")
	}
	if err := actx.Validate(); err != nil {
		return domain.LedgerScope{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if !actx.IsPersonal() {
		if err := s.authorizer.AuthorizeAccess(ctx, userID, actx.CompanyID); err != nil {
			s.GetLogger(ctx).Warn("Context access denied",
				slog.String("user_id", userID),
				slog.String("company_id", actx.CompanyID),
				slog.String("error", err.Error()))
			return domain.LedgerScope{}, err
		}
	}
	return actx.ScopeFor(userID), nil
}

func (s *contextService) Switch(ctx context.Context, userID string, actx domain.AccountingContext) (*domain.ContextSwitch, error) {
	scope, err := s.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}

	result := &domain.ContextSwitch{Context: actx, TenantID: scope.TenantID}
	if actx.IsPersonal() {
		accounts, err := ensureAccounts(ctx, s.accountRepo, scope, domain.PersonalScaffold, userID, s.Now())
		if err != nil {
			s.LogError(ctx, err, "Failed to provision personal scaffold", slog.String("user_id", userID))
			return nil, err
		}
		result.Accounts = accounts
	}

	s.LogInfo(ctx, "Accounting context switched", slog.String("user_id", userID), slog.String("context", actx.String()))
	return result, nil
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/SscSPs/ledgerlite/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContextResolve(t *testing.T) {
	ctx := context.Background()
	companyID := "8f14e45f-ceea-467f-a8e3-2d4d7b6c1a20"

	tests := []struct {
		name      string
		userID    string
		actx      domain.AccountingContext
		authErr   error
		wantScope domain.LedgerScope
		wantErr   error
		wantAuth  bool
	}{
		{
			name:      "personal scope is owned by the caller",
			userID:    "u1",
			actx:      domain.PersonalContext(),
			wantScope: domain.LedgerScope{TenantID: domain.PersonalTenantID, OwnerID: "u1"},
		},
		{
			name:      "business member",
			userID:    "u1",
			actx:      domain.BusinessContext(companyID),
			wantScope: domain.LedgerScope{TenantID: companyID},
			wantAuth:  true,
		},
		{
			name:     "business non-member",
			userID:   "u1",
			actx:     domain.BusinessContext(companyID),
			authErr:  apperrors.NewForbiddenError("access to company denied"),
			wantErr:  apperrors.ErrForbidden,
			wantAuth: true,
		},
		{
			name:    "reserved company id",
			userID:  "u1",
			actx:    domain.BusinessContext(domain.PersonalTenantID),
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "anonymous caller",
			actx:    domain.PersonalContext(),
			wantErr: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := new(MockCompanyAuthorizer)
			if tt.wantAuth {
				authorizer.On("AuthorizeAccess", ctx, tt.userID, tt.actx.CompanyID).Return(tt.authErr).Once()
			}
			svc := services.NewContextService(authorizer, new(MockAccountRepository))

			scope, err := svc.Resolve(ctx, tt.userID, tt.actx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantScope, scope)
			}
			if !tt.wantAuth {
				authorizer.AssertNotCalled(t, "AuthorizeAccess", mock.Anything, mock.Anything, mock.Anything)
			}
			authorizer.AssertExpectations(t)
		})
	}
}

func TestContextSwitchProvisionsPersonalScaffold(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	scope := domain.LedgerScope{TenantID: domain.PersonalTenantID, OwnerID: "u1"}

	accountRepo := new(MockAccountRepository)
	for _, spec := range domain.PersonalScaffold {
		accountRepo.On("GetOrCreateAccount", ctx, scope, spec, "u1", now).
			Return(&domain.Account{AccountID: spec.Code + "-id", Code: spec.Code, Type: spec.Type}, nil).Once()
	}
	svc := services.NewContextService(new(MockCompanyAuthorizer), accountRepo, services.WithClock(func() time.Time { return now }))

	sw, err := svc.Switch(ctx, "u1", domain.PersonalContext())

	require.NoError(t, err)
	assert.Equal(t, domain.PersonalTenantID, sw.TenantID)
	require.Len(t, sw.Accounts, 2)
	assert.Equal(t, domain.PersonalCashCode, sw.Accounts[0].Code)
	assert.Equal(t, domain.PersonalEquityCode, sw.Accounts[1].Code)
	accountRepo.AssertExpectations(t)
}

package dto

import (
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines data for getting or creating an account by code.
type CreateAccountRequest struct {
	Code     string `json:"code" binding:"required,max=32"`
	Name     string `json:"name" binding:"required,max=255"`
	Type     string `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category string `json:"category" binding:"max=64"`
}

func (r CreateAccountRequest) ToSpec() domain.AccountSpec {
	return domain.AccountSpec{
		Code:     r.Code,
		Name:     r.Name,
		Type:     domain.AccountType(r.Type),
		Category: r.Category,
	}
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string    `json:"accountID"`
	TenantID  string    `json:"tenantID"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse is an account with its balance signed by normal side.
type AccountBalanceResponse struct {
	Account AccountResponse `json:"account"`
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
	Balance decimal.Decimal `json:"balance"`
}

func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		TenantID:  a.TenantID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		Category:  a.Category,
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
	}
}

func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}

func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		Account: ToAccountResponse(&b.Account),
		Debits:  b.Debits,
		Credits: b.Credits,
		Balance: b.Balance,
	}
}

package dto

import (
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// --- Company DTOs ---

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	CurrencyCode string `json:"currencyCode" binding:"required,iso4217"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID      string    `json:"companyID"`
	Name           string    `json:"name"`
	OwnerID        string    `json:"ownerID"`
	CurrencyCode   string    `json:"currencyCode"`
	CurrencySymbol string    `json:"currencySymbol"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// AddMemberRequest adds an existing user to a company.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

type MemberResponse struct {
	CompanyID string    `json:"companyID"`
	UserID    string    `json:"userID"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}

func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:      c.CompanyID,
		Name:           c.Name,
		OwnerID:        c.OwnerID,
		CurrencyCode:   c.CurrencyCode,
		CurrencySymbol: c.CurrencySymbol,
		CreatedAt:      c.CreatedAt,
	}
}

func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	resp := ListCompaniesResponse{Companies: make([]CompanyResponse, len(companies))}
	for i := range companies {
		resp.Companies[i] = ToCompanyResponse(&companies[i])
	}
	return resp
}

func ToMemberResponse(m *domain.CompanyMember) MemberResponse {
	return MemberResponse{CompanyID: m.CompanyID, UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt}
}

// --- Customer DTOs ---

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Phone string `json:"phone" binding:"omitempty,e164"`
	Email string `json:"email" binding:"omitempty,email"`
}

type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	CompanyID  string    `json:"companyID"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		CreatedAt:  c.CreatedAt,
	}
}

func ToListCustomersResponse(customers []domain.Customer) ListCustomersResponse {
	resp := ListCustomersResponse{Customers: make([]CustomerResponse, len(customers))}
	for i := range customers {
		resp.Customers[i] = ToCustomerResponse(&customers[i])
	}
	return resp
}

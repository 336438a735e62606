package services

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/SscSPs/ledgerlite/internal/dto"
)

// CompanyReaderSvc defines read operations for companies
type CompanyReaderSvc interface {
	GetCompany(ctx context.Context, companyID, userID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for companies
type CompanyWriterSvc interface {
	CreateCompany(ctx context.Context, userID string, req dto.CreateCompanyRequest) (*domain.Company, error)
	AddMember(ctx context.Context, companyID, actingUserID string, req dto.AddMemberRequest) (*domain.CompanyMember, error)
}

// CompanyAuthorizerSvc checks tenant access
type CompanyAuthorizerSvc interface {
	// AuthorizeAccess fails with an access-denied error unless userID owns or is a member of companyID.
	// Unknown companies are reported the same way.
	AuthorizeAccess(ctx context.Context, userID, companyID string) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyAuthorizerSvc
}

// CustomerSvc manages customers of a company the caller can access.
type CustomerSvc interface {
	CreateCustomer(ctx context.Context, companyID, userID string, req dto.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomer(ctx context.Context, companyID, userID, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, companyID, userID string) ([]domain.Customer, error)
}

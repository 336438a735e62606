package repositories

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a company. The personal tenant is never returned.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByUserID lists companies owned by or shared with userID.
	ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a company and its owner membership together.
	SaveCompany(ctx context.Context, company domain.Company, owner domain.CompanyMember) error
}

// CompanyMembershipManager defines operations for managing company memberships
type CompanyMembershipManager interface {
	// AddMember adds or updates a user's role in a company.
	AddMember(ctx context.Context, member domain.CompanyMember) error

	// FindMember retrieves the membership of userID in companyID.
	FindMember(ctx context.Context, companyID, userID string) (*domain.CompanyMember, error)
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
	CompanyMembershipManager
}

// CustomerRepositoryFacade persists customers per company.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, companyID string) ([]domain.Customer, error)
}

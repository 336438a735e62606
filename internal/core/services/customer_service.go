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
	"github.com/google/uuid"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	authorizer   portssvc.CompanyAuthorizerSvc
}

func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc, options ...ServiceOption) portssvc.CustomerSvc {
	return &customerService{
		BaseService:  newBaseService(options),
		customerRepo: customerRepo,
		authorizer:   authorizer,
	}
}

var _ portssvc.CustomerSvc = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, companyID, userID string, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	if err := s.authorizer.AuthorizeAccess(ctx, userID, companyID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("customer name is required")
	}

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		CompanyID:   companyID,
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	s.LogInfo(ctx, "Customer created", slog.String("company_id", companyID), slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, companyID, userID, customerID string) (*domain.Customer, error) {
	if err := s.authorizer.AuthorizeAccess(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, companyID, userID string) ([]domain.Customer, error) {
	if err := s.authorizer.AuthorizeAccess(ctx, userID, companyID); err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.ListCustomers(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

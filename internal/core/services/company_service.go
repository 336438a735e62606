package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/google/uuid"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.CompanySvcFacade {
	return &companyService{
		BaseService: newBaseService(options),
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, userID string, req dto.CreateCompanyRequest) (*domain.Company, error) {
	logger := s.GetLogger(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("company name is required")
	}
	currency, err := utils.LookupCurrency(req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	companyID := uuid.NewString()
	for companyID == domain.PersonalTenantID {
		companyID = uuid.NewString()
	}

	now := s.Now()
	company := domain.Company{
		CompanyID:      companyID,
		Name:           name,
		OwnerID:        userID,
		CurrencyCode:   currency.Code,
		CurrencySymbol: currency.Grapheme,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	owner := domain.CompanyMember{CompanyID: companyID, UserID: userID, Role: domain.RoleAdmin, JoinedAt: now}

	if err := s.companyRepo.SaveCompany(ctx, company, owner); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	logger.Info("Company created", slog.String("company_id", companyID), slog.String("owner_id", userID))
	s.Track(userID, utils.EventCompanyCreated, map[string]any{"company_id": companyID, "currency": currency.Code})
	return &company, nil
}

func (s *companyService) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list companies for user %s: %w", userID, err)
	}
	visible := make([]domain.Company, 0, len(companies))
	for _, c := range companies {
		if c.CompanyID != domain.PersonalTenantID {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID, userID string) (*domain.Company, error) {
	if err := s.AuthorizeAccess(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// AddMember lets the owner or an admin add an existing user.
func (s *companyService) AddMember(ctx context.Context, companyID, actingUserID string, req dto.AddMemberRequest) (*domain.CompanyMember, error) {
	logger := s.GetLogger(ctx)

	role := domain.CompanyRole(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("role must be ADMIN or MEMBER")
	}
	if err := s.authorizeAdmin(ctx, actingUserID, companyID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user " + req.UserID + " not found")
		}
		return nil, err
	}

	member := domain.CompanyMember{CompanyID: companyID, UserID: req.UserID, Role: role, JoinedAt: s.Now()}
	if err := s.companyRepo.AddMember(ctx, member); err != nil {
		logger.Error("Failed to add member", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to add user %s to company %s: %w", req.UserID, companyID, err)
	}

	logger.Info("Member added to company", slog.String("company_id", companyID), slog.String("target_user_id", req.UserID), slog.String("role", string(role)))
	return &member, nil
}

func (s *companyService) AuthorizeAccess(ctx context.Context, userID, companyID string) error {
	_, err := s.roleOf(ctx, userID, companyID)
	return err
}

func (s *companyService) authorizeAdmin(ctx context.Context, userID, companyID string) error {
	role, err := s.roleOf(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin {
		return apperrors.NewForbiddenError("only company admins can manage members")
	}
	return nil
}

// roleOf resolves the caller's role. Owners are admins. Unknown companies and
// non-members get the same access-denied error.
func (s *companyService) roleOf(ctx context.Context, userID, companyID string) (domain.CompanyRole, error) {
	denied := apperrors.NewForbiddenError("access to company denied")
	if userID == "" || companyID == "" || companyID == domain.PersonalTenantID {
		return "", denied
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", denied
		}
		return "", err
	}
	if company.OwnerID == userID {
		return domain.RoleAdmin, nil
	}

	member, err := s.companyRepo.FindMember(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", denied
		}
		return "", err
	}
	return member.Role, nil
}

package services

import (
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sender portssvc.OTPSender, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company first: every business context is authorized through it.
	container.Company = NewCompanyService(repos.CompanyRepo, repos.UserRepo, options...)
	container.Context = NewContextService(container.Company, repos.AccountRepo, options...)

	container.Account = NewAccountService(repos.AccountRepo, repos.JournalRepo, container.Context, options...)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, container.Context, options...)
	container.Budget = NewBudgetService(repos.AccountRepo, repos.JournalRepo, options...)
	container.Personal = NewPersonalFinanceService(repos.AccountRepo, repos.JournalRepo, container.Budget, options...)
	container.Customer = NewCustomerService(repos.CustomerRepo, container.Company, options...)
	container.Auth = NewAuthService(cfg, repos.UserRepo, repos.OTPRepo, sender, options...)
	container.Export = NewExportService(repos.AccountRepo, repos.JournalRepo, container.Context, options...)

	return container
}

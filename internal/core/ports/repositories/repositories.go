package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo  AccountRepositoryFacade
	JournalRepo  JournalRepositoryFacade
	CompanyRepo  CompanyRepositoryFacade
	CustomerRepo CustomerRepositoryFacade
	UserRepo     UserRepositoryFacade
	OTPRepo      OTPRepository
}

// HealthChecker is implemented by storage backends that can report liveness.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

package pgsql

import (
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		CustomerRepo: newPgxCustomerRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		OTPRepo:      newPgxOTPRepository(dbPool),
	}
}

// NewHealthChecker reports the liveness of dbPool.
func NewHealthChecker(dbPool *pgxpool.Pool) portsrepo.HealthChecker {
	return &BaseRepository{Pool: dbPool}
}

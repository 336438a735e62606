package sqlite

import (
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jmoiron/sqlx"
)

func NewRepositoryProvider(db *sqlx.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newSQLiteAccountRepository(db),
		JournalRepo:  newSQLiteJournalRepository(db),
		CompanyRepo:  newSQLiteCompanyRepository(db),
		CustomerRepo: newSQLiteCustomerRepository(db),
		UserRepo:     newSQLiteUserRepository(db),
		OTPRepo:      newSQLiteOTPRepository(db),
	}
}

// NewHealthChecker reports the liveness of db.
func NewHealthChecker(db *sqlx.DB) portsrepo.HealthChecker {
	return &BaseRepository{DB: db}
}

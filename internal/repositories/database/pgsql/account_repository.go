package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, tenant_id, owner_id, code, name, type, category,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	var accountType string
	err := row.Scan(
		&a.AccountID, &a.TenantID, &a.OwnerID, &a.Code, &a.Name, &accountType, &a.Category,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	a.Type = domain.AccountType(accountType)
	return a, err
}

func (r *PgxAccountRepository) findOne(ctx context.Context, scope domain.LedgerScope, where string, arg any) (*domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND owner_id = $2 AND ` + where
	a, err := scanAccount(r.Pool.QueryRow(ctx, query, scope.TenantID, scope.AccountOwner(), arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query account", err)
	}
	return &a, nil
}

// FindAccountByID retrieves an account by id within scope.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, scope domain.LedgerScope, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, scope, "account_id = $3", accountID)
}

// FindAccountByCode retrieves an account by code within scope.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, scope domain.LedgerScope, code string) (*domain.Account, error) {
	return r.findOne(ctx, scope, "code = $3", code)
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE tenant_id = $1 AND owner_id = $2 AND account_id = ANY($3)`
	rows, err := r.Pool.Query(ctx, query, scope.TenantID, scope.AccountOwner(), accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by ids", err)
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[a.AccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, scope domain.LedgerScope) ([]domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND owner_id = $2 ORDER BY code`
	rows, err := r.Pool.Query(ctx, query, scope.TenantID, scope.AccountOwner())
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// GetOrCreateAccount relies on the (tenant_id, owner_id, code) unique constraint:
// concurrent callers race on the insert and all read back the winning row.
func (r *PgxAccountRepository) GetOrCreateAccount(ctx context.Context, scope domain.LedgerScope, spec domain.AccountSpec, userID string, now time.Time) (*domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $8, $9)
		ON CONFLICT (tenant_id, owner_id, code) DO NOTHING`
	_, err := r.Pool.Exec(ctx, query,
		uuid.NewString(), scope.TenantID, scope.AccountOwner(), spec.Code, spec.Name, string(spec.Type), spec.Category,
		now, userID,
	)
	if err != nil {
		return nil, mapWriteError(err, "failed to insert account "+spec.Code)
	}
	return r.FindAccountByCode(ctx, scope, spec.Code)
}

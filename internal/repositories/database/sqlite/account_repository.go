package sqlite

import (
	"context"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SQLiteAccountRepository struct {
	BaseRepository
}

func newSQLiteAccountRepository(db *sqlx.DB) portsrepo.AccountRepositoryFacade {
	return &SQLiteAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AccountRepositoryFacade = (*SQLiteAccountRepository)(nil)

type accountRow struct {
	AccountID     string    `db:"account_id"`
	TenantID      string    `db:"tenant_id"`
	OwnerID       string    `db:"owner_id"`
	Code          string    `db:"code"`
	Name          string    `db:"name"`
	Type          string    `db:"type"`
	Category      string    `db:"category"`
	CreatedAt     timestamp `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt timestamp `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

func (a accountRow) toDomain() domain.Account {
	return domain.Account{
		AccountID: a.AccountID,
		TenantID:  a.TenantID,
		OwnerID:   a.OwnerID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      domain.AccountType(a.Type),
		Category:  a.Category,
		AuditFields: domain.AuditFields{
			CreatedAt:     a.CreatedAt.Time(),
			CreatedBy:     a.CreatedBy,
			LastUpdatedAt: a.LastUpdatedAt.Time(),
			LastUpdatedBy: a.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, tenant_id, owner_id, code, name, type, category,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *SQLiteAccountRepository) findOne(ctx context.Context, scope domain.LedgerScope, where string, arg any) (*domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	var row accountRow
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = ? AND owner_id = ? AND ` + where
	if err := r.DB.GetContext(ctx, &row, query, scope.TenantID, scope.AccountOwner(), arg); err != nil {
		return nil, notFoundOr(err, "account not found", "failed to query account")
	}
	a := row.toDomain()
	return &a, nil
}

func (r *SQLiteAccountRepository) FindAccountByID(ctx context.Context, scope domain.LedgerScope, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, scope, "account_id = ?", accountID)
}

func (r *SQLiteAccountRepository) FindAccountByCode(ctx context.Context, scope domain.LedgerScope, code string) (*domain.Account, error) {
	return r.findOne(ctx, scope, "code = ?", code)
}

func (r *SQLiteAccountRepository) FindAccountsByIDs(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`SELECT `+accountColumns+` FROM accounts
		WHERE tenant_id = ? AND owner_id = ? AND account_id IN (?)`, scope.TenantID, scope.AccountOwner(), accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build account query", err)
	}
	var rows []accountRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by ids", err)
	}
	for _, row := range rows {
		result[row.AccountID] = row.toDomain()
	}
	return result, nil
}

func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, scope domain.LedgerScope) ([]domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	var rows []accountRow
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = ? AND owner_id = ? ORDER BY code`,
		scope.TenantID, scope.AccountOwner())
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.toDomain())
	}
	return accounts, nil
}

func (r *SQLiteAccountRepository) GetOrCreateAccount(ctx context.Context, scope domain.LedgerScope, spec domain.AccountSpec, userID string, now time.Time) (*domain.Account, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	at := formatTime(now)
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant_id, owner_id, code) DO NOTHING`,
		uuid.NewString(), scope.TenantID, scope.AccountOwner(), spec.Code, spec.Name, string(spec.Type), spec.Category,
		at, userID, at, userID,
	)
	if err != nil {
		return nil, mapWriteError(err, "failed to insert account "+spec.Code)
	}
	return r.FindAccountByCode(ctx, scope, spec.Code)
}

package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `c.company_id, c.name, c.owner_id, c.currency_code, c.currency_symbol,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by`

const upsertMemberQuery = `
	INSERT INTO company_members (company_id, user_id, role, joined_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (company_id, user_id) DO UPDATE SET role = EXCLUDED.role`

func scanCompany(row pgx.Row) (domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.CompanyID, &c.Name, &c.OwnerID, &c.CurrencyCode, &c.CurrencySymbol,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	return c, err
}

// SaveCompany inserts the company and its owner membership in one transaction.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, owner domain.CompanyMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO companies (company_id, name, owner_id, currency_code, currency_symbol, is_personal,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7, $8, $9)`,
		company.CompanyID, company.Name, company.OwnerID, company.CurrencyCode, company.CurrencySymbol,
		company.CreatedAt, company.CreatedBy, company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert company")
	}
	if _, err := tx.Exec(ctx, upsertMemberQuery, owner.CompanyID, owner.UserID, string(owner.Role), owner.JoinedAt); err != nil {
		return mapWriteError(err, "failed to insert company owner membership")
	}
	return r.Commit(ctx, tx)
}

// FindCompanyByID never returns the shared personal tenant row.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	c, err := scanCompany(r.Pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies c WHERE c.company_id = $1 AND NOT c.is_personal`, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("company not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query company", err)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM companies c
		WHERE NOT c.is_personal
		  AND (c.owner_id = $1 OR EXISTS (
		      SELECT 1 FROM company_members m WHERE m.company_id = c.company_id AND m.user_id = $1))
		ORDER BY c.name, c.company_id`, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list companies", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) AddMember(ctx context.Context, member domain.CompanyMember) error {
	if _, err := r.Pool.Exec(ctx, upsertMemberQuery, member.CompanyID, member.UserID, string(member.Role), member.JoinedAt); err != nil {
		return mapWriteError(err, "failed to save company member")
	}
	return nil
}

func (r *PgxCompanyRepository) FindMember(ctx context.Context, companyID, userID string) (*domain.CompanyMember, error) {
	var m domain.CompanyMember
	var role string
	err := r.Pool.QueryRow(ctx, `
		SELECT company_id, user_id, role, joined_at
		FROM company_members WHERE company_id = $1 AND user_id = $2`, companyID, userID).Scan(
		&m.CompanyID, &m.UserID, &role, &m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("company member not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query company member", err)
	}
	m.Role = domain.CompanyRole(role)
	return &m, nil
}

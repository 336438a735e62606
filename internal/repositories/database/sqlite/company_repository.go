package sqlite

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jmoiron/sqlx"
)

type SQLiteCompanyRepository struct {
	BaseRepository
}

func newSQLiteCompanyRepository(db *sqlx.DB) portsrepo.CompanyRepositoryFacade {
	return &SQLiteCompanyRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.CompanyRepositoryFacade = (*SQLiteCompanyRepository)(nil)

type companyRow struct {
	CompanyID      string    `db:"company_id"`
	Name           string    `db:"name"`
	OwnerID        string    `db:"owner_id"`
	CurrencyCode   string    `db:"currency_code"`
	CurrencySymbol string    `db:"currency_symbol"`
	CreatedAt      timestamp `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
	LastUpdatedAt  timestamp `db:"last_updated_at"`
	LastUpdatedBy  string    `db:"last_updated_by"`
}

func (c companyRow) toDomain() domain.Company {
	return domain.Company{
		CompanyID:      c.CompanyID,
		Name:           c.Name,
		OwnerID:        c.OwnerID,
		CurrencyCode:   c.CurrencyCode,
		CurrencySymbol: c.CurrencySymbol,
		AuditFields: domain.AuditFields{
			CreatedAt:     c.CreatedAt.Time(),
			CreatedBy:     c.CreatedBy,
			LastUpdatedAt: c.LastUpdatedAt.Time(),
			LastUpdatedBy: c.LastUpdatedBy,
		},
	}
}

type memberRow struct {
	CompanyID string    `db:"company_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	JoinedAt  timestamp `db:"joined_at"`
}

const companyColumns = `c.company_id, c.name, c.owner_id, c.currency_code, c.currency_symbol,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by`

const upsertMemberQuery = `
	INSERT INTO company_members (company_id, user_id, role, joined_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (company_id, user_id) DO UPDATE SET role = excluded.role`

func (r *SQLiteCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, owner domain.CompanyMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO companies (company_id, name, owner_id, currency_code, currency_symbol, is_personal,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		company.CompanyID, company.Name, company.OwnerID, company.CurrencyCode, company.CurrencySymbol,
		formatTime(company.CreatedAt), company.CreatedBy, formatTime(company.LastUpdatedAt), company.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert company")
	}
	if _, err := tx.ExecContext(ctx, upsertMemberQuery,
		owner.CompanyID, owner.UserID, string(owner.Role), formatTime(owner.JoinedAt)); err != nil {
		return mapWriteError(err, "failed to insert company owner membership")
	}
	return r.Commit(tx)
}

func (r *SQLiteCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	var row companyRow
	err := r.DB.GetContext(ctx, &row,
		`SELECT `+companyColumns+` FROM companies c WHERE c.company_id = ? AND c.is_personal = 0`, companyID)
	if err != nil {
		return nil, notFoundOr(err, "company not found", "failed to query company")
	}
	c := row.toDomain()
	return &c, nil
}

func (r *SQLiteCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	var rows []companyRow
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT `+companyColumns+`
		FROM companies c
		WHERE c.is_personal = 0
		  AND (c.owner_id = ? OR EXISTS (
		      SELECT 1 FROM company_members m WHERE m.company_id = c.company_id AND m.user_id = ?))
		ORDER BY c.name, c.company_id`, userID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list companies", err)
	}
	companies := make([]domain.Company, 0, len(rows))
	for _, row := range rows {
		companies = append(companies, row.toDomain())
	}
	return companies, nil
}

func (r *SQLiteCompanyRepository) AddMember(ctx context.Context, member domain.CompanyMember) error {
	if _, err := r.DB.ExecContext(ctx, upsertMemberQuery,
		member.CompanyID, member.UserID, string(member.Role), formatTime(member.JoinedAt)); err != nil {
		return mapWriteError(err, "failed to save company member")
	}
	return nil
}

func (r *SQLiteCompanyRepository) FindMember(ctx context.Context, companyID, userID string) (*domain.CompanyMember, error) {
	var row memberRow
	err := r.DB.GetContext(ctx, &row, `
		SELECT company_id, user_id, role, joined_at
		FROM company_members WHERE company_id = ? AND user_id = ?`, companyID, userID)
	if err != nil {
		return nil, notFoundOr(err, "company member not found", "failed to query company member")
	}
	return &domain.CompanyMember{
		CompanyID: row.CompanyID,
		UserID:    row.UserID,
		Role:      domain.CompanyRole(row.Role),
		JoinedAt:  row.JoinedAt.Time(),
	}, nil
}

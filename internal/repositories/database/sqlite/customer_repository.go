package sqlite

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jmoiron/sqlx"
)

type SQLiteCustomerRepository struct {
	BaseRepository
}

func newSQLiteCustomerRepository(db *sqlx.DB) portsrepo.CustomerRepositoryFacade {
	return &SQLiteCustomerRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.CustomerRepositoryFacade = (*SQLiteCustomerRepository)(nil)

type customerRow struct {
	CustomerID    string    `db:"customer_id"`
	CompanyID     string    `db:"company_id"`
	Name          string    `db:"name"`
	Phone         string    `db:"phone"`
	Email         string    `db:"email"`
	CreatedAt     timestamp `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt timestamp `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

func (c customerRow) toDomain() domain.Customer {
	return domain.Customer{
		CustomerID: c.CustomerID,
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		AuditFields: domain.AuditFields{
			CreatedAt:     c.CreatedAt.Time(),
			CreatedBy:     c.CreatedBy,
			LastUpdatedAt: c.LastUpdatedAt.Time(),
			LastUpdatedBy: c.LastUpdatedBy,
		},
	}
}

const customerColumns = `customer_id, company_id, name, phone, email,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *SQLiteCustomerRepository) SaveCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO customers (`+customerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CustomerID, c.CompanyID, c.Name, c.Phone, c.Email,
		formatTime(c.CreatedAt), c.CreatedBy, formatTime(c.LastUpdatedAt), c.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert customer")
	}
	return nil
}

func (r *SQLiteCustomerRepository) FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error) {
	var row customerRow
	err := r.DB.GetContext(ctx, &row,
		`SELECT `+customerColumns+` FROM customers WHERE company_id = ? AND customer_id = ?`, companyID, customerID)
	if err != nil {
		return nil, notFoundOr(err, "customer not found", "failed to query customer")
	}
	c := row.toDomain()
	return &c, nil
}

func (r *SQLiteCustomerRepository) ListCustomers(ctx context.Context, companyID string) ([]domain.Customer, error) {
	var rows []customerRow
	if err := r.DB.SelectContext(ctx, &rows,
		`SELECT `+customerColumns+` FROM customers WHERE company_id = ? ORDER BY name, customer_id`, companyID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to list customers", err)
	}
	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.toDomain())
	}
	return customers, nil
}

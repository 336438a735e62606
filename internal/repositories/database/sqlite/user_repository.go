package sqlite

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jmoiron/sqlx"
)

type SQLiteUserRepository struct {
	BaseRepository
}

func newSQLiteUserRepository(db *sqlx.DB) portsrepo.UserRepositoryFacade {
	return &SQLiteUserRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.UserRepositoryFacade = (*SQLiteUserRepository)(nil)

type userRow struct {
	UserID        string    `db:"user_id"`
	Phone         string    `db:"phone"`
	Name          string    `db:"name"`
	CreatedAt     timestamp `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt timestamp `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

const userColumns = `user_id, phone, name, created_at, created_by, last_updated_at, last_updated_by`

func (r *SQLiteUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.DB.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE `+where, arg); err != nil {
		return nil, notFoundOr(err, "user not found", "failed to query user")
	}
	return &domain.User{
		UserID: row.UserID,
		Phone:  row.Phone,
		Name:   row.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt.Time(),
			CreatedBy:     row.CreatedBy,
			LastUpdatedAt: row.LastUpdatedAt.Time(),
			LastUpdatedBy: row.LastUpdatedBy,
		},
	}, nil
}

func (r *SQLiteUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *SQLiteUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *SQLiteUserRepository) SaveUser(ctx context.Context, u domain.User) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.UserID, u.Phone, u.Name, formatTime(u.CreatedAt), u.CreatedBy, formatTime(u.LastUpdatedAt), u.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert user")
	}
	return nil
}

type SQLiteOTPRepository struct {
	BaseRepository
}

func newSQLiteOTPRepository(db *sqlx.DB) portsrepo.OTPRepository {
	return &SQLiteOTPRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.OTPRepository = (*SQLiteOTPRepository)(nil)

type otpRow struct {
	Phone     string    `db:"phone"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt timestamp `db:"expires_at"`
	Attempts  int       `db:"attempts"`
	CreatedAt timestamp `db:"created_at"`
}

func (r *SQLiteOTPRepository) SaveChallenge(ctx context.Context, c domain.OTPChallenge) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO otp_challenges (phone, code_hash, expires_at, attempts, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (phone) DO UPDATE
		SET code_hash = excluded.code_hash, expires_at = excluded.expires_at,
		    attempts = excluded.attempts, created_at = excluded.created_at`,
		c.Phone, c.CodeHash, formatTime(c.ExpiresAt), c.Attempts, formatTime(c.CreatedAt),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save otp challenge", err)
	}
	return nil
}

func (r *SQLiteOTPRepository) FindChallenge(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	var row otpRow
	if err := r.DB.GetContext(ctx, &row,
		`SELECT phone, code_hash, expires_at, attempts, created_at FROM otp_challenges WHERE phone = ?`, phone); err != nil {
		return nil, notFoundOr(err, "no pending otp for phone", "failed to query otp challenge")
	}
	return &domain.OTPChallenge{
		Phone:     row.Phone,
		CodeHash:  row.CodeHash,
		ExpiresAt: row.ExpiresAt.Time(),
		Attempts:  row.Attempts,
		CreatedAt: row.CreatedAt.Time(),
	}, nil
}

func (r *SQLiteOTPRepository) ConsumeAttempt(ctx context.Context, phone string, maxAttempts int) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE otp_challenges SET attempts = attempts + 1 WHERE phone = ? AND attempts < ?`, phone, maxAttempts)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to count otp attempt", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to count otp attempt", err)
	}
	return n == 1, nil
}

func (r *SQLiteOTPRepository) DeleteChallenge(ctx context.Context, phone string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM otp_challenges WHERE phone = ?`, phone); err != nil {
		return apperrors.NewAppError(500, "failed to delete otp challenge", err)
	}
	return nil
}

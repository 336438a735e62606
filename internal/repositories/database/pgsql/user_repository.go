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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, phone, name, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&u.UserID, &u.Phone, &u.Name, &u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query user", err)
	}
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = $1", phone)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.UserID, user.Phone, user.Name, user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert user")
	}
	return nil
}

type PgxOTPRepository struct {
	BaseRepository
}

func newPgxOTPRepository(pool *pgxpool.Pool) portsrepo.OTPRepository {
	return &PgxOTPRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OTPRepository = (*PgxOTPRepository)(nil)

// SaveChallenge replaces any pending challenge for the phone and resets its attempt counter.
func (r *PgxOTPRepository) SaveChallenge(ctx context.Context, c domain.OTPChallenge) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO otp_challenges (phone, code_hash, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phone) DO UPDATE
		SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at,
		    attempts = EXCLUDED.attempts, created_at = EXCLUDED.created_at`,
		c.Phone, c.CodeHash, c.ExpiresAt, c.Attempts, c.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save otp challenge", err)
	}
	return nil
}

func (r *PgxOTPRepository) FindChallenge(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	var c domain.OTPChallenge
	err := r.Pool.QueryRow(ctx, `
		SELECT phone, code_hash, expires_at, attempts, created_at
		FROM otp_challenges WHERE phone = $1`, phone).Scan(
		&c.Phone, &c.CodeHash, &c.ExpiresAt, &c.Attempts, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no pending otp for phone")
		}
		return nil, apperrors.NewAppError(500, "failed to query otp challenge", err)
	}
	return &c, nil
}

func (r *PgxOTPRepository) ConsumeAttempt(ctx context.Context, phone string, maxAttempts int) (bool, error) {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE otp_challenges SET attempts = attempts + 1 WHERE phone = $1 AND attempts < $2`, phone, maxAttempts)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to count otp attempt", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxOTPRepository) DeleteChallenge(ctx context.Context, phone string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM otp_challenges WHERE phone = $1`, phone); err != nil {
		return apperrors.NewAppError(500, "failed to delete otp challenge", err)
	}
	return nil
}

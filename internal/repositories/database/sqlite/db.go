// Package sqlite is the embedded storage backend. Every repository shares one
// connection, so transactions are serialized by the pool itself.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/jmoiron/sqlx"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02 15:04:05.000000000"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		phone TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at TEXT NOT NULL,
		last_updated_by TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS otp_challenges (
		phone TEXT PRIMARY KEY,
		code_hash TEXT NOT NULL,
		expires_at TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		company_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		currency_code TEXT NOT NULL DEFAULT 'USD',
		currency_symbol TEXT NOT NULL DEFAULT '',
		is_personal INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at TEXT NOT NULL,
		last_updated_by TEXT NOT NULL
	)`,
	`INSERT OR IGNORE INTO companies (company_id, name, owner_id, currency_code, currency_symbol, is_personal,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ('` + domain.PersonalTenantID + `', 'Personal', 'system', 'USD', '$', 1,
		'1970-01-01 00:00:00.000000000', 'system', '1970-01-01 00:00:00.000000000', 'system')`,
	`CREATE TABLE IF NOT EXISTS company_members (
		company_id TEXT NOT NULL REFERENCES companies (company_id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
		role TEXT NOT NULL CHECK (role IN ('ADMIN', 'MEMBER')),
		joined_at TEXT NOT NULL,
		PRIMARY KEY (company_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies (company_id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at TEXT NOT NULL,
		last_updated_by TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		account_id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES companies (company_id),
		owner_id TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('ASSET', 'LIABILITY', 'EQUITY', 'REVENUE', 'EXPENSE')),
		category TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at TEXT NOT NULL,
		last_updated_by TEXT NOT NULL,
		UNIQUE (tenant_id, owner_id, code)
	)`,
	`CREATE TABLE IF NOT EXISTS journal_entries (
		entry_id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES companies (company_id),
		entry_date TEXT NOT NULL,
		reference TEXT NOT NULL DEFAULT '',
		narration TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL CHECK (status IN ('POSTED', 'VOID')),
		created_at TEXT NOT NULL,
		created_by TEXT NOT NULL,
		last_updated_at TEXT NOT NULL,
		last_updated_by TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_scope ON journal_entries (tenant_id, created_by, created_at)`,
	`DROP INDEX IF EXISTS uq_journal_entries_active_budget`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_journal_entries_personal_budget
		ON journal_entries (tenant_id, created_by)
		WHERE status = 'POSTED' AND substr(reference, 1, 7) = 'BUDGET-'
			AND tenant_id = '00000000-0000-0000-0000-000000000000'`,
	`CREATE TABLE IF NOT EXISTS journal_lines (
		line_id TEXT PRIMARY KEY,
		entry_id TEXT NOT NULL REFERENCES journal_entries (entry_id) ON DELETE CASCADE,
		line_no INTEGER NOT NULL,
		account_id TEXT NOT NULL REFERENCES accounts (account_id),
		debit TEXT NOT NULL DEFAULT '0',
		credit TEXT NOT NULL DEFAULT '0',
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_lines_entry ON journal_lines (entry_id)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_lines_account ON journal_lines (account_id)`,
}

// Open opens (creating if needed) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
		}
	}
	return db, nil
}

// timestamp reads and writes times in timeLayout, always in UTC.
type timestamp time.Time

func (t *timestamp) Scan(v any) error {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	case time.Time:
		*t = timestamp(x.UTC())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", v)
	}
	parsed, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return err
	}
	*t = timestamp(parsed)
	return nil
}

func (t timestamp) Value() (driver.Value, error) {
	return formatTime(time.Time(t)), nil
}

func (t timestamp) Time() time.Time {
	return time.Time(t)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *sqlx.DB
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(tx *sqlx.Tx) error {
	if err := tx.Commit(); err != nil {
		return mapWriteError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
func (r *BaseRepository) Rollback(tx *sqlx.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *BaseRepository) Ping(ctx context.Context) error {
	if err := r.DB.PingContext(ctx); err != nil {
		return apperrors.NewAppError(500, "database ping failed", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// mapWriteError turns unique violations into conflicts and everything else into storage errors.
func mapWriteError(err error, message string) error {
	if isUniqueViolation(err) {
		return apperrors.NewConflictError(message + ": duplicate key")
	}
	return apperrors.NewAppError(500, message, err)
}

func notFoundOr(err error, notFound, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(notFound)
	}
	return apperrors.NewAppError(500, message, err)
}

func checkScope(scope domain.LedgerScope) error {
	if err := scope.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return nil
}

// entryScope returns the WHERE fragment restricting journal_entries to scope.
// alias may be empty for unaliased statements.
func entryScope(alias string, scope domain.LedgerScope) (string, []any) {
	if alias != "" {
		alias += "."
	}
	if scope.IsPersonal() {
		return alias + "tenant_id = ? AND " + alias + "created_by = ?", []any{scope.TenantID, scope.OwnerID}
	}
	return alias + "tenant_id = ?", []any{scope.TenantID}
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `e.entry_id, e.tenant_id, e.entry_date, e.reference, e.narration, e.status,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	var status string
	err := row.Scan(
		&e.EntryID, &e.TenantID, &e.EntryDate, &e.Reference, &e.Narration, &status,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	e.Status = domain.JournalStatus(status)
	return e, err
}

// insertEntry writes the entry row and queues its lines in one batch on tx.
func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO journal_entries (
			entry_id, tenant_id, entry_date, reference, narration, status,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.EntryID, entry.TenantID, entry.EntryDate, entry.Reference, entry.Narration, string(entry.Status),
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert journal entry "+entry.EntryID)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, l := range entry.Lines {
		batch.Queue(lineQuery, l.LineID, entry.EntryID, i+1, l.AccountID, l.Debit, l.Credit, l.Description)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "failed to insert lines for journal entry "+entry.EntryID)
	}
	return nil
}

// SaveEntry persists the entry and its lines; a failure on any line rolls back the whole entry.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.JournalEntry, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	where, args := entryScope(scope)
	args = append(args, entryID)
	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE ` + where +
		` AND e.entry_id = $` + strconv.Itoa(len(args))

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query journal entry", err)
	}

	lines, err := r.FindLinesByEntryIDs(ctx, []string{entry.EntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.EntryID]
	return &entry, nil
}

func (r *PgxJournalRepository) ListEntries(ctx context.Context, scope domain.LedgerScope, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	where, args := entryScope(scope)
	clauses := []string{where}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.CreatorID != "" {
		clauses = append(clauses, "e.created_by = "+next(filter.CreatorID))
	}
	if filter.Status != "" {
		clauses = append(clauses, "e.status = "+next(string(filter.Status)))
	}
	if filter.ReferencePrefix != "" {
		p := next(filter.ReferencePrefix)
		clauses = append(clauses, fmt.Sprintf("left(e.reference, length(%s::text)) = %s", p, p))
	}
	if filter.After != nil {
		clauses = append(clauses, fmt.Sprintf("(e.created_at, e.entry_id) < (%s, %s)", next(filter.After.CreatedAt), next(filter.After.EntryID)))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY e.created_at DESC, e.entry_id DESC`
	if filter.Limit > 0 {
		query += " LIMIT " + next(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, entry_id, account_id, debit, credit, description
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no`, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		result[l.EntryID] = append(result[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return result, nil
}

// UpdateEntryStatus is a compare-and-set on status; of two concurrent voids only one succeeds.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, scope domain.LedgerScope, entryID string, from, to domain.JournalStatus, userID string, now time.Time) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	where, args := entryScope(scope)
	args = append(args, entryID, string(from), string(to), now, userID)
	n := len(args)
	query := fmt.Sprintf(`
		UPDATE journal_entries e
		SET status = $%d, last_updated_at = $%d, last_updated_by = $%d
		WHERE %s AND e.entry_id = $%d AND e.status = $%d`,
		n-2, n-1, n, where, n-4, n-3)

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry status", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return err
	}
	return apperrors.NewStateError(fmt.Sprintf("journal entry %s is %s, expected %s", entryID, current.Status, from))
}

// ReplaceTaggedEntry serializes replacements per scope and prefix with a transaction-level advisory lock.
func (r *PgxJournalRepository) ReplaceTaggedEntry(ctx context.Context, scope domain.LedgerScope, prefix string, entry domain.JournalEntry) ([]string, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockKey := scope.TenantID + "/" + scope.OwnerID + "/" + prefix
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire replacement lock", err)
	}

	where, args := entryScope(scope)
	args = append(args, prefix, string(domain.Void), string(domain.Posted), entry.CreatedAt, entry.CreatedBy)
	n := len(args)
	query := fmt.Sprintf(`
		UPDATE journal_entries e
		SET status = $%d, last_updated_at = $%d, last_updated_by = $%d
		WHERE %s AND e.status = $%d AND left(e.reference, length($%d::text)) = $%d
		RETURNING e.entry_id`,
		n-3, n-1, n, where, n-2, n-4, n-4)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to void tagged entries", err)
	}
	voided, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read voided entry ids", err)
	}

	if err := insertEntry(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return voided, nil
}

func (r *PgxJournalRepository) SumAccountActivity(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.AccountActivity, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	result := make(map[string]domain.AccountActivity, len(accountIDs))
	for _, id := range accountIDs {
		result[id] = domain.AccountActivity{AccountID: id, Debits: decimal.Zero, Credits: decimal.Zero}
	}
	if len(accountIDs) == 0 {
		return result, nil
	}

	where, args := entryScope(scope)
	args = append(args, string(domain.Posted), accountIDs)
	n := len(args)
	query := fmt.Sprintf(`
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE %s AND e.status = $%d AND l.account_id = ANY($%d)
		GROUP BY l.account_id`, where, n-1, n)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum account activity", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(&a.AccountID, &a.Debits, &a.Credits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		result[a.AccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return result, nil
}

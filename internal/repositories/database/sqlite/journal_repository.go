package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type SQLiteJournalRepository struct {
	BaseRepository
}

func newSQLiteJournalRepository(db *sqlx.DB) portsrepo.JournalRepositoryFacade {
	return &SQLiteJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.JournalRepositoryFacade = (*SQLiteJournalRepository)(nil)

type entryRow struct {
	EntryID       string    `db:"entry_id"`
	TenantID      string    `db:"tenant_id"`
	EntryDate     timestamp `db:"entry_date"`
	Reference     string    `db:"reference"`
	Narration     string    `db:"narration"`
	Status        string    `db:"status"`
	CreatedAt     timestamp `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt timestamp `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

func (e entryRow) toDomain() domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:   e.EntryID,
		TenantID:  e.TenantID,
		EntryDate: e.EntryDate.Time(),
		Reference: e.Reference,
		Narration: e.Narration,
		Status:    domain.JournalStatus(e.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     e.CreatedAt.Time(),
			CreatedBy:     e.CreatedBy,
			LastUpdatedAt: e.LastUpdatedAt.Time(),
			LastUpdatedBy: e.LastUpdatedBy,
		},
	}
}

type lineRow struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}

const entryColumns = `e.entry_id, e.tenant_id, e.entry_date, e.reference, e.narration, e.status,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

func insertEntry(ctx context.Context, tx *sqlx.Tx, entry domain.JournalEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO journal_entries (
			entry_id, tenant_id, entry_date, reference, narration, status,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.EntryID, entry.TenantID, formatTime(entry.EntryDate), entry.Reference, entry.Narration, string(entry.Status),
		formatTime(entry.CreatedAt), entry.CreatedBy, formatTime(entry.LastUpdatedAt), entry.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert journal entry "+entry.EntryID)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, debit, credit, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return apperrors.NewAppError(500, "failed to prepare journal line insert", err)
	}
	defer stmt.Close()

	for i, l := range entry.Lines {
		if _, err := stmt.ExecContext(ctx, l.LineID, entry.EntryID, i+1, l.AccountID,
			l.Debit.String(), l.Credit.String(), l.Description); err != nil {
			return mapWriteError(err, fmt.Sprintf("failed to insert line %d of journal entry %s", i+1, entry.EntryID))
		}
	}
	return nil
}

// SaveEntry persists the entry and its lines; a failure on any line rolls back the whole entry.
func (r *SQLiteJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	if err := insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

func (r *SQLiteJournalRepository) FindEntryByID(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.JournalEntry, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	where, args := entryScope("e", scope)
	var row entryRow
	err := r.DB.GetContext(ctx, &row,
		`SELECT `+entryColumns+` FROM journal_entries e WHERE `+where+` AND e.entry_id = ?`,
		append(args, entryID)...)
	if err != nil {
		return nil, notFoundOr(err, "journal entry not found", "failed to query journal entry")
	}

	entry := row.toDomain()
	lines, err := r.FindLinesByEntryIDs(ctx, []string{entry.EntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.EntryID]
	return &entry, nil
}

func (r *SQLiteJournalRepository) ListEntries(ctx context.Context, scope domain.LedgerScope, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	where, args := entryScope("e", scope)
	clauses := []string{where}
	if filter.CreatorID != "" {
		clauses = append(clauses, "e.created_by = ?")
		args = append(args, filter.CreatorID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "e.status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.ReferencePrefix != "" {
		clauses = append(clauses, "substr(e.reference, 1, length(?)) = ?")
		args = append(args, filter.ReferencePrefix, filter.ReferencePrefix)
	}
	if filter.After != nil {
		// Fixed-width timestamps compare correctly as text.
		at := formatTime(filter.After.CreatedAt)
		clauses = append(clauses, "(e.created_at < ? OR (e.created_at = ? AND e.entry_id < ?))")
		args = append(args, at, at, filter.After.EntryID)
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY e.created_at DESC, e.entry_id DESC`
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []entryRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	entries := make([]domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}
	return entries, nil
}

func (r *SQLiteJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`
		SELECT line_id, entry_id, account_id, debit, credit, description
		FROM journal_lines WHERE entry_id IN (?)
		ORDER BY entry_id, line_no`, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build journal line query", err)
	}
	var rows []lineRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	for _, l := range rows {
		result[l.EntryID] = append(result[l.EntryID], domain.JournalLine(l))
	}
	return result, nil
}

func (r *SQLiteJournalRepository) UpdateEntryStatus(ctx context.Context, scope domain.LedgerScope, entryID string, from, to domain.JournalStatus, userID string, now time.Time) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	where, scopeArgs := entryScope("", scope)
	args := append([]any{string(to), formatTime(now), userID}, scopeArgs...)
	args = append(args, entryID, string(from))
	res, err := r.DB.ExecContext(ctx, `
		UPDATE journal_entries SET status = ?, last_updated_at = ?, last_updated_by = ?
		WHERE `+where+` AND entry_id = ? AND status = ?`, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry status", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}

	current, err := r.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return err
	}
	return apperrors.NewStateError(fmt.Sprintf("journal entry %s is %s, expected %s", entryID, current.Status, from))
}

func (r *SQLiteJournalRepository) ReplaceTaggedEntry(ctx context.Context, scope domain.LedgerScope, prefix string, entry domain.JournalEntry) ([]string, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(tx)

	where, scopeArgs := entryScope("", scope)
	filter := where + ` AND status = ? AND substr(reference, 1, length(?)) = ?`
	filterArgs := append(scopeArgs, string(domain.Posted), prefix, prefix)

	var voided []string
	if err := tx.SelectContext(ctx, &voided, `SELECT entry_id FROM journal_entries WHERE `+filter, filterArgs...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to find tagged entries", err)
	}
	if len(voided) > 0 {
		args := append([]any{string(domain.Void), formatTime(entry.CreatedAt), entry.CreatedBy}, filterArgs...)
		if _, err := tx.ExecContext(ctx, `
			UPDATE journal_entries SET status = ?, last_updated_at = ?, last_updated_by = ?
			WHERE `+filter, args...); err != nil {
			return nil, apperrors.NewAppError(500, "failed to void tagged entries", err)
		}
	}

	if err := insertEntry(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := r.Commit(tx); err != nil {
		return nil, err
	}
	return voided, nil
}

// SumAccountActivity adds line amounts in Go; TEXT decimals cannot be summed exactly in SQL.
func (r *SQLiteJournalRepository) SumAccountActivity(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.AccountActivity, error) {
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

	where, args := entryScope("e", scope)
	args = append(args, string(domain.Posted), accountIDs)
	query, args, err := sqlx.In(`
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.description
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE `+where+` AND e.status = ? AND l.account_id IN (?)`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build activity query", err)
	}
	var rows []lineRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum account activity", err)
	}
	for _, l := range rows {
		a := result[l.AccountID]
		a.Debits = a.Debits.Add(l.Debit)
		a.Credits = a.Credits.Add(l.Credit)
		result[l.AccountID] = a
	}
	return result, nil
}

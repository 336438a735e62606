package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/utils/accounting"
	"github.com/xuri/excelize/v2"
)

const (
	sheetEntries  = "Entries"
	sheetLines    = "Lines"
	sheetBalances = "Balances"
	exportDate    = "2006-01-02"
)

// exportService writes the ledger of a context as an xlsx workbook.
type exportService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
	contextSvc  portssvc.ContextSvc
}

func NewExportService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalRepositoryFacade, contextSvc portssvc.ContextSvc, options ...ServiceOption) portssvc.ExportSvc {
	return &exportService{
		BaseService: newBaseService(options),
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		contextSvc:  contextSvc,
	}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) ExportLedger(ctx context.Context, actx domain.AccountingContext, userID string, w io.Writer) error {
	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, scope)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	entries, err := s.journalRepo.ListEntries(ctx, scope, domain.EntryFilter{})
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	lines, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return fmt.Errorf("failed to load lines: %w", err)
	}
	accountIDs := make([]string, len(accounts))
	for i, a := range accounts {
		accountIDs[i] = a.AccountID
	}
	activity, err := s.journalRepo.SumAccountActivity(ctx, scope, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to sum account activity: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetEntries); err != nil {
		return err
	}
	if err := writeRows(f, sheetEntries, entryRows(entries, lines)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetLines); err != nil {
		return err
	}
	lrows, err := lineRows(entries, lines, accounts)
	if err != nil {
		return err
	}
	if err := writeRows(f, sheetLines, lrows); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetBalances); err != nil {
		return err
	}
	rows, err := balanceRows(accounts, activity)
	if err != nil {
		return err
	}
	if err := writeRows(f, sheetBalances, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	f.SetColWidth(sheetEntries, "A", "A", 38)
	f.SetColWidth(sheetEntries, "C", "D", 30)
	f.SetColWidth(sheetLines, "A", "A", 38)
	f.SetColWidth(sheetLines, "D", "D", 30)
	f.SetColWidth(sheetBalances, "B", "B", 30)

	if err := f.Write(w); err != nil {
		s.LogError(ctx, err, "Failed to write workbook", slog.String("tenant_id", scope.TenantID))
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	s.LogInfo(ctx, "Ledger exported", slog.String("tenant_id", scope.TenantID), slog.Int("entries", len(entries)))
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func entryRows(entries []domain.JournalEntry, lines map[string][]domain.JournalLine) [][]any {
	rows := [][]any{{"Entry ID", "Date", "Reference", "Narration", "Status", "Created By", "Amount"}}
	for _, e := range entries {
		debits, _ := domain.Totals(lines[e.EntryID])
		rows = append(rows, []any{e.EntryID, e.EntryDate.Format(exportDate), e.Reference, e.Narration, string(e.Status), e.CreatedBy, debits.String()})
	}
	return rows
}

// lineRows lists every line with its signed effect on the account balance.
func lineRows(entries []domain.JournalEntry, lines map[string][]domain.JournalLine, accounts []domain.Account) ([][]any, error) {
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	rows := [][]any{{"Entry ID", "Account Code", "Account Name", "Description", "Debit", "Credit", "Effect"}}
	for _, e := range entries {
		for _, l := range lines[e.EntryID] {
			a, ok := byID[l.AccountID]
			if !ok {
				return nil, fmt.Errorf("account %s of entry %s is outside the exported ledger", l.AccountID, e.EntryID)
			}
			effect, err := accounting.SignedLineAmount(l, a.Type)
			if err != nil {
				return nil, err
			}
			rows = append(rows, []any{e.EntryID, a.Code, a.Name, l.Description, l.Debit.String(), l.Credit.String(), effect.String()})
		}
	}
	return rows, nil
}

func balanceRows(accounts []domain.Account, activity map[string]domain.AccountActivity) ([][]any, error) {
	rows := [][]any{{"Code", "Name", "Type", "Debits", "Credits", "Balance"}}
	for _, a := range accounts {
		b, err := balanceOf(a, activity[a.AccountID])
		if err != nil {
			return nil, err
		}
		rows = append(rows, []any{a.Code, a.Name, string(a.Type), b.Debits.String(), b.Credits.String(), b.Balance.String()})
	}
	return rows, nil
}

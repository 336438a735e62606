package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/SscSPs/ledgerlite/internal/utils/pagination"
)

const maxReferenceLen = 100

// journalService provides the journal engine: posting, voiding and reading entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	contextSvc  portssvc.ContextSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, contextSvc portssvc.ContextSvc, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(options),
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		contextSvc:  contextSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) PostEntry(ctx context.Context, actx domain.AccountingContext, userID string, draft domain.EntryDraft) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}

	if scope.IsPersonal() && domain.HasReferencePrefix(strings.TrimSpace(draft.Reference), domain.BudgetReferencePrefix) {
		return nil, apperrors.NewValidationFailedError("references starting with " + domain.BudgetReferencePrefix + " are reserved for budgets")
	}

	entry, err := newEntry(scope, userID, draft, s.Now())
	if err != nil {
		logger.Warn("Rejected journal entry", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.checkAccountsInScope(ctx, scope, entry.Lines); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID), slog.String("tenant_id", scope.TenantID), slog.Int("lines", len(entry.Lines)))
	s.Track(userID, utils.EventEntryPosted, map[string]any{"entry_id": entry.EntryID, "context": string(actx.Mode)})
	return &entry, nil
}

func (s *journalService) VoidEntry(ctx context.Context, actx domain.AccountingContext, userID, entryID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.UpdateEntryStatus(ctx, scope, entryID, domain.Posted, domain.Void, userID, s.Now()); err != nil {
		logger.Warn("Failed to void journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload voided entry: %w", err)
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID))
	s.Track(userID, utils.EventEntryVoided, map[string]any{"entry_id": entryID})
	return entry, nil
}

func (s *journalService) GetEntry(ctx context.Context, actx domain.AccountingContext, userID, entryID string) (*domain.JournalEntry, error) {
	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}
	return s.journalRepo.FindEntryByID(ctx, scope, entryID)
}

func (s *journalService) ListEntries(ctx context.Context, actx domain.AccountingContext, userID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	scope, err := s.contextSvc.Resolve(ctx, userID, actx)
	if err != nil {
		return nil, err
	}

	filter := params.ToFilter()
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationFailedError("status must be POSTED or VOID")
	}
	filter.Limit = pagination.ClampPageSize(filter.Limit)
	if params.NextToken != "" {
		cursor, err := pagination.DecodeEntryCursor(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		filter.After = &cursor
	}

	entries, err := s.journalRepo.ListEntries(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("tenant_id", scope.TenantID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// checkAccountsInScope rejects lines pointing at accounts of another tenant or owner.
func (s *journalService) checkAccountsInScope(ctx context.Context, scope domain.LedgerScope, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, scope, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			return apperrors.NewNotFoundError("account " + id + " not found in this ledger")
		}
	}
	return nil
}

// newEntry validates draft and builds a POSTED entry owned by userID.
// Nothing is persisted here.
func newEntry(scope domain.LedgerScope, userID string, draft domain.EntryDraft, now time.Time) (domain.JournalEntry, error) {
	if _, err := domain.ValidateLines(draft.Lines); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	reference := strings.TrimSpace(draft.Reference)
	if len(reference) > maxReferenceLen {
		return domain.JournalEntry{}, apperrors.NewValidationFailedError("reference is too long")
	}

	entryDate := draft.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}

	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    scope.TenantID,
		EntryDate:   entryDate.UTC(),
		Reference:   reference,
		Narration:   draft.Narration,
		Status:      domain.Posted,
		AuditFields: domain.NewAuditFields(userID, now),
		Lines:       make([]domain.JournalLine, len(draft.Lines)),
	}
	for i, l := range draft.Lines {
		entry.Lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return entry, nil
}


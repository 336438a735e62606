package services

import (
	"context"
	"io"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/SscSPs/ledgerlite/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, actx domain.AccountingContext, userID, entryID string) (*domain.JournalEntry, error)

	// ListEntries lists entries newest first. Personal listings only return userID's entries.
	ListEntries(ctx context.Context, actx domain.AccountingContext, userID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostEntry validates and persists a balanced entry in status POSTED.
	PostEntry(ctx context.Context, actx domain.AccountingContext, userID string, draft domain.EntryDraft) (*domain.JournalEntry, error)

	// VoidEntry moves a posted entry to VOID. Voiding a void entry is a state error.
	VoidEntry(ctx context.Context, actx domain.AccountingContext, userID, entryID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// ExportSvc writes ledger data as a spreadsheet.
type ExportSvc interface {
	ExportLedger(ctx context.Context, actx domain.AccountingContext, userID string, w io.Writer) error
}

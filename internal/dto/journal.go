package dto

import (
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one debit or credit line of a new entry.
type CreateLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description" binding:"max=255"`
}

// CreateEntryRequest defines data for posting a journal entry.
type CreateEntryRequest struct {
	EntryDate *time.Time          `json:"entryDate"` // defaults to now
	Reference string              `json:"reference" binding:"max=100"`
	Narration string              `json:"narration" binding:"max=4000"`
	Lines     []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDraft converts the request into an entry draft dated now when no date is given.
func (r CreateEntryRequest) ToDraft(now time.Time) domain.EntryDraft {
	draft := domain.EntryDraft{
		EntryDate: now,
		Reference: r.Reference,
		Narration: r.Narration,
		Lines:     make([]domain.LineDraft, 0, len(r.Lines)),
	}
	if r.EntryDate != nil {
		draft.EntryDate = *r.EntryDate
	}
	for _, l := range r.Lines {
		draft.Lines = append(draft.Lines, domain.LineDraft{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		})
	}
	return draft
}

// ListEntriesParams are the query parameters of the entry listing.
type ListEntriesParams struct {
	Status          string `form:"status" binding:"omitempty,oneof=POSTED VOID"`
	ReferencePrefix string `form:"referencePrefix" binding:"max=100"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken       string `form:"nextToken"`
}

func (p ListEntriesParams) ToFilter() domain.EntryFilter {
	return domain.EntryFilter{
		Status:          domain.JournalStatus(p.Status),
		ReferencePrefix: p.ReferencePrefix,
		Limit:           p.Limit,
	}
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID   string         `json:"entryID"`
	TenantID  string         `json:"tenantID"`
	EntryDate time.Time      `json:"entryDate"`
	Reference string         `json:"reference"`
	Narration string         `json:"narration"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	CreatedBy string         `json:"createdBy"`
	Lines     []LineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse wraps a listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken string          `json:"nextToken,omitempty"`
}

func ToLineResponses(lines []domain.JournalLine) []LineResponse {
	responses := make([]LineResponse, len(lines))
	for i, l := range lines {
		responses[i] = LineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:   e.EntryID,
		TenantID:  e.TenantID,
		EntryDate: e.EntryDate,
		Reference: e.Reference,
		Narration: e.Narration,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToLineResponses(e.Lines)
	}
	return resp
}

func ToListEntriesResponse(entries []domain.JournalEntry) ListEntriesResponse {
	resp := ListEntriesResponse{Entries: make([]EntryResponse, len(entries))}
	for i := range entries {
		resp.Entries[i] = ToEntryResponse(&entries[i])
	}
	return resp
}

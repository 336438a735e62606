package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

func (s JournalStatus) IsValid() bool {
	return s == Posted || s == Void
}

// CanTransitionTo reports whether a status change is legal. POSTED -> VOID is the only one.
func (s JournalStatus) CanTransitionTo(next JournalStatus) bool {
	return s == Posted && next == Void
}

// Reference prefixes of entries created by the personal finance features.
const (
	BudgetReferencePrefix         = "BUDGET-"
	PersonalIncomeReferencePrefix = "PI-"
)

// NewReference builds a "<prefix><epoch millis>" reference.
func NewReference(prefix string, at time.Time) string {
	return prefix + strconv.FormatInt(at.UnixMilli(), 10)
}

// HasReferencePrefix is a case-sensitive prefix check on an entry reference.
func HasReferencePrefix(reference, prefix string) bool {
	return strings.HasPrefix(reference, prefix)
}

// JournalEntry is a balanced financial event within one tenant.
type JournalEntry struct {
	EntryID   string        `json:"entryID"`
	TenantID  string        `json:"tenantID"`
	EntryDate time.Time     `json:"entryDate"`
	Reference string        `json:"reference"`
	Narration string        `json:"narration"`
	Status    JournalStatus `json:"status"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryDraft is the input of a posting, before ids and audit fields are assigned.
type EntryDraft struct {
	EntryDate time.Time
	Reference string
	Narration string
	Lines     []LineDraft
}

// LineDraft is one line of an EntryDraft.
type LineDraft struct {
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

var (
	ErrEntryUnbalanced  = errors.New("journal entry debits and credits do not balance")
	ErrEntryMinLines    = errors.New("journal entry must have at least two lines")
	ErrEntryMinAccounts = errors.New("journal entry must affect at least two different accounts")
	ErrLineSide         = errors.New("journal line must carry exactly one positive debit or credit")
)

// ValidateLines enforces the double-entry invariants on a set of lines:
// at least two lines over two accounts, one positive side per line,
// and exact decimal equality of total debits and total credits.
func ValidateLines(lines []LineDraft) (decimal.Decimal, error) {
	if len(lines) < 2 {
		return decimal.Zero, ErrEntryMinLines
	}

	accounts := make(map[string]struct{}, len(lines))
	debits := decimal.Zero
	credits := decimal.Zero
	for i, l := range lines {
		if strings.TrimSpace(l.AccountID) == "" {
			return decimal.Zero, fmt.Errorf("line %d: account is required", i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: line %d has a negative amount", ErrLineSide, i+1)
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: line %d", ErrLineSide, i+1)
		}
		accounts[l.AccountID] = struct{}{}
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}

	if len(accounts) < 2 {
		return decimal.Zero, ErrEntryMinAccounts
	}
	if !debits.Equal(credits) {
		return decimal.Zero, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrEntryUnbalanced, debits.String(), credits.String())
	}
	return debits, nil
}

// Totals returns the debit and credit sums of persisted lines.
func Totals(lines []JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// EntryFilter narrows entry listings. CreatorID is mandatory in the personal tenant.
type EntryFilter struct {
	CreatorID       string
	Status          JournalStatus
	ReferencePrefix string
	Limit           int
	// After skips entries up to and including the cursor position.
	After *EntryCursor
}

// EntryCursor is a position in the (created_at DESC, entry_id DESC) listing order.
type EntryCursor struct {
	CreatedAt time.Time
	EntryID   string
}

// AccountActivity is the sum of posted debits and credits on one account.
type AccountActivity struct {
	AccountID string
	Debits    decimal.Decimal
	Credits   decimal.Decimal
}

// AccountBalance is an account with its posted activity and signed balance.
type AccountBalance struct {
	Account Account         `json:"account"`
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
	Balance decimal.Decimal `json:"balance"`
}

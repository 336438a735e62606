package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeRecord is a personal income posting read back from the journal.
type IncomeRecord struct {
	EntryID     string          `json:"entryID"`
	Reference   string          `json:"reference"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Status      JournalStatus   `json:"status"`
}

// PersonalSummary aggregates a user's personal ledger. Budget memo accounts are excluded.
type PersonalSummary struct {
	CashBalance      decimal.Decimal            `json:"cashBalance"`
	TotalIncome      decimal.Decimal            `json:"totalIncome"`
	IncomeByCategory map[string]decimal.Decimal `json:"incomeByCategory"`
	ActiveBudget     *ActiveBudget              `json:"activeBudget"`
}

// ContextSwitch is the result of entering an accounting context.
type ContextSwitch struct {
	Context  AccountingContext `json:"context"`
	TenantID string            `json:"tenantID"`
	Accounts []Account         `json:"accounts,omitempty"`
}

// Session is an issued access token.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
	IsNewUser bool      `json:"isNewUser"`
}

package domain

import (
	"fmt"
	"strings"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether increases of this type are recorded as debits.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a chart-of-accounts entry within one tenant.
type Account struct {
	AccountID string      `json:"accountID"`
	TenantID  string      `json:"tenantID"`
	OwnerID   string      `json:"ownerID,omitempty"` // set for personal accounts only
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	Category  string      `json:"category"`
	AuditFields
}

// AccountSpec describes an account to look up by code or create if absent.
type AccountSpec struct {
	Code     string
	Name     string
	Type     AccountType
	Category string
}

func (s AccountSpec) Validate() error {
	if strings.TrimSpace(s.Code) == "" {
		return fmt.Errorf("account code is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("account name is required for code %s", s.Code)
	}
	if !s.Type.IsValid() {
		return fmt.Errorf("invalid account type %q for code %s", s.Type, s.Code)
	}
	return nil
}

// Personal chart of accounts.
const (
	PersonalCashCode         = "P-1001"
	PersonalEquityCode       = "P-3001"
	PersonalIncomePrefix     = "P-4"
	PersonalBudgetIncomeCode = "P-9101"
	PersonalBudgetAllocCode  = "P-9102"
	CategoryCash             = "cash"
	CategoryOwnerEquity      = "owner_equity"
	CategoryPersonalIncome   = "personal_income"
	CategoryBudgetMemo       = "budget_memo"
)

// PersonalCashAccount is the cash account every personal ledger needs.
var PersonalCashAccount = AccountSpec{Code: PersonalCashCode, Name: "Cash", Type: Asset, Category: CategoryCash}

// PersonalEquityAccount balances opening amounts in the personal ledger.
var PersonalEquityAccount = AccountSpec{Code: PersonalEquityCode, Name: "Personal Equity", Type: Equity, Category: CategoryOwnerEquity}

// PersonalScaffold is the minimum account set a personal ledger needs before posting.
var PersonalScaffold = []AccountSpec{PersonalCashAccount, PersonalEquityAccount}

// BudgetMemoAccounts carry the memo lines of budget entries.
var (
	BudgetIncomeMemoAccount = AccountSpec{Code: PersonalBudgetIncomeCode, Name: "Budgeted Income", Type: Equity, Category: CategoryBudgetMemo}
	BudgetAllocMemoAccount  = AccountSpec{Code: PersonalBudgetAllocCode, Name: "Budget Allocations", Type: Equity, Category: CategoryBudgetMemo}
)

// IncomeCategory is a personal income classification with its fixed 3-letter code.
type IncomeCategory struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

// IncomeCategories lists the supported personal income categories.
var IncomeCategories = []IncomeCategory{
	{ID: "salary", Code: "SAL", Label: "Salary"},
	{ID: "freelance", Code: "FRL", Label: "Freelance"},
	{ID: "business", Code: "BUS", Label: "Business"},
	{ID: "investment", Code: "INV", Label: "Investment"},
	{ID: "rental", Code: "RNT", Label: "Rental"},
	{ID: "gift", Code: "GFT", Label: "Gift"},
	{ID: "other", Code: "OTH", Label: "Other"},
}

// FindIncomeCategory looks up a category by id.
func FindIncomeCategory(id string) (IncomeCategory, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range IncomeCategories {
		if c.ID == id {
			return c, true
		}
	}
	return IncomeCategory{}, false
}

// IncomeAccountSpec returns the deterministic personal income account for a category.
func IncomeAccountSpec(c IncomeCategory) AccountSpec {
	return AccountSpec{
		Code:     PersonalIncomePrefix + c.Code,
		Name:     c.Label + " Income",
		Type:     Revenue,
		Category: CategoryPersonalIncome,
	}
}

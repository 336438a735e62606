package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetType string

const (
	BudgetCustom       BudgetType = "custom"
	BudgetConservative BudgetType = "conservative"
	BudgetModerate     BudgetType = "moderate"
	BudgetAggressive   BudgetType = "aggressive"
)

type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// BudgetAllocation is the share of income planned for one spending category.
type BudgetAllocation struct {
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Budget is a personal budget snapshot.
type Budget struct {
	TotalIncome decimal.Decimal    `json:"totalIncome"`
	BudgetType  BudgetType         `json:"budgetType"`
	Period      BudgetPeriod       `json:"period"`
	Budgets     []BudgetAllocation `json:"budgets"`
}

// ActiveBudget is a decoded budget together with the entry that carries it.
type ActiveBudget struct {
	EntryID   string    `json:"entryID"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
	Budget    Budget    `json:"budget"`
}

// Equal compares budgets by value; decimals are compared numerically.
func (b Budget) Equal(o Budget) bool {
	if !b.TotalIncome.Equal(o.TotalIncome) || b.BudgetType != o.BudgetType || b.Period != o.Period {
		return false
	}
	if len(b.Budgets) != len(o.Budgets) {
		return false
	}
	for i := range b.Budgets {
		x, y := b.Budgets[i], o.Budgets[i]
		if x.CategoryID != y.CategoryID || !x.Amount.Equal(y.Amount) || !x.Percentage.Equal(y.Percentage) {
			return false
		}
	}
	return true
}

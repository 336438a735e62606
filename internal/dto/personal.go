package dto

import (
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordIncomeRequest records a personal income amount for a category.
type RecordIncomeRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date"`
	Description string          `json:"description" binding:"max=255"`
}

type ListIncomeResponse struct {
	Income []domain.IncomeRecord `json:"income"`
}

// BudgetAllocationRequest is one category line of a budget.
type BudgetAllocationRequest struct {
	CategoryID string          `json:"categoryId" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SaveBudgetRequest replaces the active personal budget.
type SaveBudgetRequest struct {
	TotalIncome decimal.Decimal           `json:"totalIncome"`
	BudgetType  string                    `json:"budgetType" binding:"required,oneof=custom conservative moderate aggressive"`
	Period      string                    `json:"period" binding:"required,oneof=monthly yearly"`
	Budgets     []BudgetAllocationRequest `json:"budgets" binding:"dive"`
}

func (r SaveBudgetRequest) ToBudget() domain.Budget {
	b := domain.Budget{
		TotalIncome: r.TotalIncome,
		BudgetType:  domain.BudgetType(r.BudgetType),
		Period:      domain.BudgetPeriod(r.Period),
		Budgets:     make([]domain.BudgetAllocation, 0, len(r.Budgets)),
	}
	for _, a := range r.Budgets {
		b.Budgets = append(b.Budgets, domain.BudgetAllocation(a))
	}
	return b
}

// BudgetResponse carries the active budget, or null when there is none.
type BudgetResponse struct {
	Budget *domain.ActiveBudget `json:"budget"`
}

// ListIncomeParams are the query parameters of the income listing.
type ListIncomeParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

package budgetcodec

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBudget() domain.Budget {
	return domain.Budget{
		TotalIncome: decimal.RequireFromString("5000.50"),
		BudgetType:  domain.BudgetModerate,
		Period:      domain.PeriodMonthly,
		Budgets: []domain.BudgetAllocation{
			{CategoryID: "housing", Amount: decimal.RequireFromString("1500"), Percentage: decimal.RequireFromString("30")},
			{CategoryID: "food", Amount: decimal.RequireFromString("750.25"), Percentage: decimal.RequireFromString("15")},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	budgets := map[string]domain.Budget{
		"moderate monthly": sampleBudget(),
		"no allocations": {
			TotalIncome: decimal.NewFromInt(1),
			BudgetType:  domain.BudgetCustom,
			Period:      domain.PeriodYearly,
			Budgets:     []domain.BudgetAllocation{},
		},
	}
	for name, b := range budgets {
		t.Run(name, func(t *testing.T) {
			text, err := Encode(b)
			require.NoError(t, err)

			got := Decode(text)
			require.NotNil(t, got)
			assert.True(t, b.Equal(*got), "decoded %+v", *got)
		})
	}
}

func TestEncodeWritesVersion(t *testing.T) {
	text, err := Encode(sampleBudget())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &fields))
	assert.EqualValues(t, CurrentVersion, fields["version"])
	assert.Len(t, fields, 5)
}

func TestEncodeRejectsInvalid(t *testing.T) {
	tests := map[string]func(b *domain.Budget){
		"zero income":      func(b *domain.Budget) { b.TotalIncome = decimal.Zero },
		"unknown type":     func(b *domain.Budget) { b.BudgetType = "reckless" },
		"unknown period":   func(b *domain.Budget) { b.Period = "weekly" },
		"missing category": func(b *domain.Budget) { b.Budgets[0].CategoryID = "" },
		"negative amount":  func(b *domain.Budget) { b.Budgets[0].Amount = decimal.NewFromInt(-1) },
		"percentage > 100": func(b *domain.Budget) { b.Budgets[1].Percentage = decimal.NewFromInt(101) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			b := sampleBudget()
			mutate(&b)
			_, err := Encode(b)
			assert.Error(t, err)
		})
	}
}

func TestDecodeSoftFailures(t *testing.T) {
	inputs := map[string]string{
		"empty":          "",
		"plain text":     "Salary for March",
		"truncated json": `{"totalIncome":"100","budgetType":"custom"`,
		"future version": `{"version":2,"totalIncome":"100","budgetType":"custom","period":"monthly","budgets":[]}`,
		"bad enum":       `{"version":1,"totalIncome":"100","budgetType":"wild","period":"monthly","budgets":[]}`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, Decode(in))
		})
	}
}

func TestDecodeLegacyPayloadWithoutVersion(t *testing.T) {
	legacy := `{"totalIncome":5000,"budgetType":"conservative","period":"yearly","budgets":[{"categoryId":"savings","amount":1000,"percentage":20}]}`

	got := Decode(legacy)
	require.NotNil(t, got)
	assert.Equal(t, domain.BudgetConservative, got.BudgetType)
	assert.Equal(t, domain.PeriodYearly, got.Period)
	assert.True(t, got.TotalIncome.Equal(decimal.NewFromInt(5000)))
	require.Len(t, got.Budgets, 1)
	assert.Equal(t, "savings", got.Budgets[0].CategoryID)
}

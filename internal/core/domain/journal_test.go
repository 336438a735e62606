package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(account string, debit, credit string) LineDraft {
	return LineDraft{
		AccountID: account,
		Debit:     decimal.RequireFromString(debit),
		Credit:    decimal.RequireFromString(credit),
	}
}

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name      string
		lines     []LineDraft
		wantErr   error
		wantTotal string
	}{
		{
			name:      "balanced cash and income",
			lines:     []LineDraft{line("cash", "5000", "0"), line("income", "0", "5000")},
			wantTotal: "5000",
		},
		{
			name:      "balanced with fractions",
			lines:     []LineDraft{line("a", "0.1", "0"), line("b", "0.2", "0"), line("c", "0", "0.3")},
			wantTotal: "0.3",
		},
		{
			name:    "unbalanced",
			lines:   []LineDraft{line("cash", "100", "0"), line("income", "0", "90")},
			wantErr: ErrEntryUnbalanced,
		},
		{
			name:    "single line",
			lines:   []LineDraft{line("cash", "100", "0")},
			wantErr: ErrEntryMinLines,
		},
		{
			name:    "same account both sides",
			lines:   []LineDraft{line("cash", "100", "0"), line("cash", "0", "100")},
			wantErr: ErrEntryMinAccounts,
		},
		{
			name:    "line with both sides",
			lines:   []LineDraft{line("cash", "100", "100"), line("income", "0", "0")},
			wantErr: ErrLineSide,
		},
		{
			name:    "negative amount",
			lines:   []LineDraft{line("cash", "-100", "0"), line("income", "0", "-100")},
			wantErr: ErrLineSide,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ValidateLines(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, total.Equal(decimal.RequireFromString(tt.wantTotal)), "total was %s", total)
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, Posted.CanTransitionTo(Void))
	assert.False(t, Void.CanTransitionTo(Void))
	assert.False(t, Void.CanTransitionTo(Posted))
	assert.False(t, Posted.CanTransitionTo(Posted))
}

func TestNewReference(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	ref := NewReference(BudgetReferencePrefix, at)
	assert.Equal(t, "BUDGET-1700000000123", ref)
	assert.True(t, HasReferencePrefix(ref, BudgetReferencePrefix))
	assert.False(t, HasReferencePrefix("budget-1", BudgetReferencePrefix))
}

func TestIncomeAccountSpecIsDeterministic(t *testing.T) {
	salary, ok := FindIncomeCategory("Salary")
	require.True(t, ok)
	assert.Equal(t, "P-4SAL", IncomeAccountSpec(salary).Code)
	assert.Equal(t, IncomeAccountSpec(salary), IncomeAccountSpec(salary))

	_, ok = FindIncomeCategory("lottery")
	assert.False(t, ok)
}

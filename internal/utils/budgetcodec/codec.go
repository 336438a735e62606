// Package budgetcodec stores a personal budget snapshot in the narration of a
// BUDGET- tagged journal entry.
package budgetcodec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CurrentVersion is written by Encode. Payloads without a version are version 1.
const CurrentVersion = 1

var validate = validator.New(validator.WithRequiredStructEnabled())

var hundred = decimal.NewFromInt(100)

type allocationPayload struct {
	CategoryID string          `json:"categoryId" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type budgetPayload struct {
	Version     int                 `json:"version"`
	TotalIncome decimal.Decimal     `json:"totalIncome"`
	BudgetType  string              `json:"budgetType" validate:"required,oneof=custom conservative moderate aggressive"`
	Period      string              `json:"period" validate:"required,oneof=monthly yearly"`
	Budgets     []allocationPayload `json:"budgets" validate:"dive"`
}

// Validate checks a budget can be stored and read back.
func Validate(b domain.Budget) error {
	return toPayload(b).validate()
}

// Encode serializes b as a versioned JSON payload.
func Encode(b domain.Budget) (string, error) {
	p := toPayload(b)
	if err := p.validate(); err != nil {
		return "", err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode budget: %w", err)
	}
	return string(raw), nil
}

// Decode parses a narration produced by Encode. Malformed, invalid or
// newer-version payloads yield nil, meaning "no budget".
func Decode(text string) *domain.Budget {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var p budgetPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil
	}
	if p.Version == 0 {
		p.Version = 1
	}
	if p.Version > CurrentVersion {
		return nil
	}
	if p.validate() != nil {
		return nil
	}
	b := p.toDomain()
	return &b
}

func toPayload(b domain.Budget) budgetPayload {
	p := budgetPayload{
		Version:     CurrentVersion,
		TotalIncome: b.TotalIncome,
		BudgetType:  string(b.BudgetType),
		Period:      string(b.Period),
		Budgets:     make([]allocationPayload, 0, len(b.Budgets)),
	}
	for _, a := range b.Budgets {
		p.Budgets = append(p.Budgets, allocationPayload(a))
	}
	return p
}

func (p budgetPayload) toDomain() domain.Budget {
	b := domain.Budget{
		TotalIncome: p.TotalIncome,
		BudgetType:  domain.BudgetType(p.BudgetType),
		Period:      domain.BudgetPeriod(p.Period),
		Budgets:     make([]domain.BudgetAllocation, 0, len(p.Budgets)),
	}
	for _, a := range p.Budgets {
		b.Budgets = append(b.Budgets, domain.BudgetAllocation(a))
	}
	return b
}

func (p budgetPayload) validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid budget: %w", err)
	}
	if !p.TotalIncome.IsPositive() {
		return errors.New("invalid budget: totalIncome must be greater than zero")
	}
	for i, a := range p.Budgets {
		if a.Amount.IsNegative() {
			return fmt.Errorf("invalid budget: allocation %d has a negative amount", i+1)
		}
		if a.Percentage.IsNegative() || a.Percentage.GreaterThan(hundred) {
			return fmt.Errorf("invalid budget: allocation %d percentage must be between 0 and 100", i+1)
		}
	}
	return nil
}

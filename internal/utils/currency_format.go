package utils

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// LookupCurrency validates an ISO 4217 code and returns its go-money definition.
func LookupCurrency(code string) (*money.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c := money.GetCurrency(code)
	if c == nil {
		return nil, fmt.Errorf("unsupported currency code %q", code)
	}
	return c, nil
}

// FormatAmount renders amount in currency code, e.g. "$12.35" for USD.
// Unknown codes fall back to the plain decimal string.
func FormatAmount(amount decimal.Decimal, code string) string {
	c, err := LookupCurrency(code)
	if err != nil {
		return amount.String()
	}
	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display()
}

package accounting

import (
	"fmt"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance turns raw debit and credit totals into a balance signed by the
// account's normal side.
// DEBIT-normal (ASSET/EXPENSE): debits - credits
// CREDIT-normal (LIABILITY/EQUITY/REVENUE): credits - debits
func SignedBalance(accountType domain.AccountType, debits, credits decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debits.Sub(credits), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credits.Sub(debits), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// SignedLineAmount is the effect of one line on its account's balance.
func SignedLineAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	amount, err := SignedBalance(accountType, line.Debit, line.Credit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("line %s: %w", line.LineID, err)
	}
	return amount, nil
}

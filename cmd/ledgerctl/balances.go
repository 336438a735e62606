package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/google/subcommands"
)

type balancesCmd struct {
	user    string
	company string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "print account balances of a ledger" }
func (*balancesCmd) Usage() string {
	return `ledgerctl balances -user <id> [-company <id>]

  Prints every account of the user's personal ledger, or of the company
  ledger when -company is given, with posted debits, credits and the balance
  signed by the account's normal side. The user must have access to the company.
`
}

func (p *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.user, "user", "", "ID of the user the ledger is read as.")
	f.StringVar(&p.company, "company", "", "Company ID. Omit for the personal ledger.")
}

func (p *balancesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.user == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		return subcommands.ExitUsageError
	}

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	actx := domain.PersonalContext()
	currency := ""
	if p.company != "" {
		actx = domain.BusinessContext(p.company)
		company, err := e.services.Company.GetCompany(ctx, p.company, p.user)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		currency = company.CurrencyCode
	}

	accounts, err := e.services.Account.ListAccounts(ctx, actx, p.user)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	balances := make([]domain.AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		b, err := e.services.Account.GetAccountBalance(ctx, actx, p.user, a.AccountID)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		balances = append(balances, *b)
	}

	if err := writeBalances(os.Stdout, balances, currency); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeBalances prints one aligned row per account. Amounts use the currency symbol when currency is known.
func writeBalances(w io.Writer, balances []domain.AccountBalance, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tDEBITS\tCREDITS\tBALANCE\t")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			b.Account.Code, b.Account.Name, b.Account.Type,
			utils.FormatAmount(b.Debits, currency),
			utils.FormatAmount(b.Credits, currency),
			utils.FormatAmount(b.Balance, currency))
	}
	return tw.Flush()
}

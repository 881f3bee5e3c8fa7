package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"investment-ledger-go/internal/ledger"
	"investment-ledger-go/internal/models"
)

// draftFlags binds every draft field to a flag.
type draftFlags struct {
	d models.Draft
}

func (f *draftFlags) set(fs *flag.FlagSet) {
	fs.StringVar(&f.d.Date, "date", time.Now().Format("2006-01-02"), "Trade date (YYYY-MM-DD)")
	fs.StringVar(&f.d.CompanyName, "company", "", "Company name")
	fs.StringVar(&f.d.Asset, "asset", "", "Asset ticker")
	fs.StringVar(&f.d.Action, "action", "Buy", "Buy or Sell")
	fs.StringVar(&f.d.Quantity, "qty", "", "Number of shares")
	fs.StringVar(&f.d.PricePerShare, "price", "", "Price per share")
	fs.StringVar(&f.d.Currency, "currency", "KZT", "Currency code")
	fs.StringVar(&f.d.Exchange, "exchange", "", "Exchange")
	fs.StringVar(&f.d.Broker, "broker", "", "Broker")
	fs.StringVar(&f.d.SettlementDate, "settlement", "", "Settlement date")
	fs.StringVar(&f.d.DealNumber, "deal", "", "Deal number")
}

func report(err error) subcommands.ExitStatus {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		fmt.Fprintf(os.Stderr, "Check the numeric fields: %v\n", err)
		return subcommands.ExitUsageError
	case errors.Is(err, ledger.ErrNotFound):
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
}

type addCmd struct {
	draftFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `ledger add -asset <ticker> -action Buy|Sell -qty <n> -price <p> [flags]

  Records a new transaction. The total cost is quantity times price.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	tx, err := a.backend.Create(ctx, c.d)
	if err != nil {
		return report(err)
	}
	fmt.Fprintln(a.out, tx.ID)
	return subcommands.ExitSuccess
}

type editCmd struct {
	draftFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "replace an existing transaction" }
func (*editCmd) Usage() string {
	return `ledger edit [flags] <id>

  Replaces every field of the transaction <id> with the given flags.
  Fields that are not given are cleared, not kept.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "edit takes exactly one transaction id")
		return subcommands.ExitUsageError
	}
	a := appFrom(args)
	tx, err := a.backend.Update(ctx, f.Arg(0), c.d)
	if err != nil {
		return report(err)
	}
	fmt.Fprintln(a.out, tx.ID)
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete transactions" }
func (*rmCmd) Usage() string {
	return `ledger rm <id>...

  Deletes the given transactions. Unknown ids are ignored.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "rm needs at least one transaction id")
		return subcommands.ExitUsageError
	}
	a := appFrom(args)
	for _, id := range f.Args() {
		if err := a.backend.Delete(ctx, id); err != nil {
			return report(err)
		}
	}
	return subcommands.ExitSuccess
}

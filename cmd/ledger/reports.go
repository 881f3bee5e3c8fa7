package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"investment-ledger-go/internal/display"
	"investment-ledger-go/internal/ledger"
)

type listCmd struct {
	criteria ledger.Criteria
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions" }
func (*listCmd) Usage() string {
	return `ledger list [-asset <ticker>] [-action Buy|Sell] [-broker <name>]

  Lists the transactions matching every given filter.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.criteria.Asset, "asset", ledger.AllAssets, "Only this asset")
	f.StringVar(&c.criteria.Action, "action", ledger.AllActions, "Only Buy or Sell")
	f.StringVar(&c.criteria.Broker, "broker", ledger.AllBrokers, "Only this broker")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	transactions, err := a.backend.Query(ctx, c.criteria)
	if err != nil {
		return report(err)
	}
	if len(transactions) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tASSET\tACTION\tQTY\tPRICE\tTOTAL\tBROKER\tID")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			display.FormatDate(t.Date),
			t.Asset,
			t.Action,
			t.Quantity,
			display.FormatMoney(t.PricePerShare, t.Currency),
			display.FormatMoney(t.TotalCost, t.Currency),
			t.Broker,
			t.ID,
		)
	}
	if err := w.Flush(); err != nil {
		return report(err)
	}
	return subcommands.ExitSuccess
}

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show the net total and counts" }
func (*statsCmd) Usage() string {
	return `ledger stats

  Shows the net cash deployed (buys minus sells), the number of distinct
  assets and the number of transactions. Amounts of different currencies
  are summed as is.
`
}

func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (*statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	summary, err := a.backend.Summary(ctx)
	if err != nil {
		return report(err)
	}
	fmt.Fprintf(a.out, "Net total:     %s\n", display.FormatDecimal(summary.NetTotal))
	fmt.Fprintf(a.out, "Assets:        %d\n", summary.AssetCount)
	fmt.Fprintf(a.out, "Transactions:  %d\n", summary.TransactionCount)
	return subcommands.ExitSuccess
}

type allocationCmd struct{}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "show each asset's share of the net total" }
func (*allocationCmd) Usage() string {
	return `ledger allocation

  Shows the signed total of every asset and its percentage of the sum.
`
}

func (*allocationCmd) SetFlags(*flag.FlagSet) {}

func (*allocationCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	shares, err := a.backend.Allocation(ctx)
	if err != nil {
		return report(err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tTOTAL\tSHARE")
	for _, s := range shares {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Asset, display.FormatDecimal(s.Total), display.FormatPercent(s.Percentage))
	}
	if err := w.Flush(); err != nil {
		return report(err)
	}
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/lruedas/cartera"
	"github.com/lruedas/cartera/renderer"
	"github.com/shopspring/decimal"
)

// resolveRate returns the exchange rate to apply to an operation: the one the
// user gave, or the regime-matching one looked up for the operation date.
func resolveRate(ctx context.Context, day cartera.Date, given float64) (decimal.Decimal, error) {
	if given > 0 {
		return decimal.NewFromFloat(given), nil
	}
	resolver := &cartera.RateResolver{Source: cartera.NewBluelytics()}
	rate, regime := resolver.RateForDate(ctx, day)
	if rate == nil {
		return decimal.Zero, fmt.Errorf("no %s rate available for %s, pass -r explicitly", regime, day)
	}
	fmt.Printf("Using %s rate: %s ARS/USD\n", regime, rate.StringFixed(2))
	return *rate, nil
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	ticker   string
	name     string
	quantity float64
	price    float64
	rate     float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase to open or add to a position" }
func (*buyCmd) Usage() string {
	return `wp buy -d <date> -t <ticker> [-n <name>] -q <quantity> -p <price per unit> [-r <rate>]

  Records a purchase. The price is per unit, in ARS; the USD equivalent of the
  total is derived from the exchange rate, looked up for the date when -r is
  omitted.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cartera.Today().String(), "Operation date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Instrument ticker, e.g. GGAL.BA")
	f.StringVar(&c.name, "n", "", "Instrument display name")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.price, "p", 0, "Price paid per unit, in ARS")
	f.Float64Var(&c.rate, "r", 0, "ARS per USD rate, looked up when omitted")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := cartera.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := resolveRate(ctx, day, c.rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	buy, err := ledger.RecordBuy(day, c.ticker, c.name, cartera.Q(c.quantity), cartera.M(c.price, cartera.LocalCurrency), rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return AppendOperation(buy)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	ticker   string
	quantity float64
	price    float64
	rate     float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale to trim or close a position" }
func (*sellCmd) Usage() string {
	return `wp sell -d <date> -t <ticker> -q <quantity> -p <price per unit> [-r <rate>]

  Records a sale. The price is per unit, in ARS. The quantity must be covered
  by the position held; the realized profit is computed against the
  weighted-average cost and frozen on the operation.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cartera.Today().String(), "Operation date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Instrument ticker, e.g. GGAL.BA")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.price, "p", 0, "Price received per unit, in ARS")
	f.Float64Var(&c.rate, "r", 0, "ARS per USD rate, looked up when omitted")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := cartera.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := resolveRate(ctx, day, c.rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	sell, err := ledger.RecordSell(day, c.ticker, cartera.Q(c.quantity), cartera.M(c.price, cartera.LocalCurrency), rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Realized: %s (%s)\n", sell.RealizedLocal.SignedString(), sell.RealizedRef.SignedString())
	return AppendOperation(sell)
}

// --- Rm Command ---

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete an operation by id" }
func (*rmCmd) Usage() string {
	return `wp rm <operation-id>

  Deletes an operation and rewrites the operations file. There is no undo;
  holdings are recomputed as if the operation never existed.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	op, err := ledger.DeleteOperation(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := RewriteLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %s of %s on %s\n", op.What(), op.Ticker(), op.When())
	return subcommands.ExitSuccess
}

// --- Ops Command ---

type opsCmd struct {
	ticker string
	kind   string
}

func (*opsCmd) Name() string     { return "ops" }
func (*opsCmd) Synopsis() string { return "list the recorded operations" }
func (*opsCmd) Usage() string {
	return `wp ops [-t <ticker>] [-k buy|sell]

  Lists operations in chronological order, optionally filtered by ticker or kind.
`
}

func (c *opsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only operations for this ticker")
	f.StringVar(&c.kind, "k", "", "Only operations of this kind (buy or sell)")
}

func (c *opsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var ops []cartera.Operation
	for _, op := range ledger.Operations() {
		if c.ticker != "" && op.Ticker() != c.ticker {
			continue
		}
		if c.kind != "" && string(op.What()) != c.kind {
			continue
		}
		ops = append(ops, op)
	}
	printMarkdown(renderer.OperationsMarkdown(ops))
	return subcommands.ExitSuccess
}

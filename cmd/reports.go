package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/lruedas/cartera"
	"github.com/lruedas/cartera/renderer"
)

// --- Holding Command ---

type holdingCmd struct {
	offline bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the detail of one position" }
func (*holdingCmd) Usage() string {
	return `wp holding [-offline] <ticker>

  Displays the derived position for a ticker: quantity, cost basis, average
  cost, market value and the operations behind them.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch live quotes")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	h, ok, err := ledger.Position(ticker)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "No operations for %q\n", ticker)
		return subcommands.ExitFailure
	}

	price := cartera.Money{}
	if !c.offline {
		quotes := fetchQuotes(ctx, []string{ticker})
		price = quotes.Price(ticker)
	}
	printMarkdown(renderer.HoldingMarkdown(h, price))
	return subcommands.ExitSuccess
}

// --- Summary Command ---

type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio summary" }
func (*summaryCmd) Usage() string {
	return `wp summary [-offline]

  Displays the portfolio at current prices: total value in ARS and USD,
  invested amount, profit, and one row per open position. Positions without a
  live quote are valued at their average cost.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch live quotes or rates")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	quotes := cartera.NewQuoteBook(cartera.NewYahoo())
	rate := decimalZero()
	if !c.offline {
		quotes = fetchQuotes(ctx, ledger.Tickers())
		rate = currentUSDRate(ctx)
	}

	summary, err := cartera.NewSummary(ledger, quotes, rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(summary))
	return subcommands.ExitSuccess
}

// --- Chart Command ---

type chartCmd struct {
	offline bool
	kind    string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "display allocation and performance breakdowns" }
func (*chartCmd) Usage() string {
	return `wp chart [-offline] [-k allocation|performance]

  Displays the portfolio breakdowns: allocation (weight of each position) and
  performance (unrealized return of each position). Both by default.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch live quotes")
	f.StringVar(&c.kind, "k", "", "Only one breakdown (allocation or performance)")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	quotes := cartera.NewQuoteBook(cartera.NewYahoo())
	if !c.offline {
		quotes = fetchQuotes(ctx, ledger.Tickers())
	}

	if c.kind == "" || c.kind == "allocation" {
		report, err := cartera.NewAllocationReport(ledger, quotes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.AllocationMarkdown(report))
	}
	if c.kind == "" || c.kind == "performance" {
		report, err := cartera.NewPerformanceReport(ledger, quotes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.PerformanceMarkdown(report))
	}
	if c.kind != "" && c.kind != "allocation" && c.kind != "performance" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

// --- Calendar Command ---

type calendarCmd struct {
	year int
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "display the yearly activity heatmap" }
func (*calendarCmd) Usage() string {
	return `wp calendar [-y <year>]

  Displays one year of operation activity, each active day shaded by its
  share of the busiest day.
`
}

func (c *calendarCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", cartera.Today().Year(), "Year to display")
}

func (c *calendarCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CalendarMarkdown(cartera.NewCalendarReport(ledger, c.year)))
	return subcommands.ExitSuccess
}

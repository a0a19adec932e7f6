package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/lruedas/cartera"
	"github.com/lruedas/cartera/renderer"
	"github.com/shopspring/decimal"
)

// fetchQuotes refreshes quotes for the tickers, tolerating partial failure:
// a ticker whose fetch failed simply holds no quote.
func fetchQuotes(ctx context.Context, tickers []string) *cartera.QuoteBook {
	book := cartera.NewQuoteBook(cartera.NewYahoo())
	if len(tickers) == 0 {
		return book
	}
	if err := book.Refresh(ctx, tickers); err != nil {
		log.Printf("some quotes unavailable: %v", err)
	}
	return book
}

// currentUSDRate looks up today's ARS per USD rate under today's regime, zero
// when the source is unavailable.
func currentUSDRate(ctx context.Context) decimal.Decimal {
	resolver := &cartera.RateResolver{Source: cartera.NewBluelytics()}
	rate, _ := resolver.RateForDate(ctx, cartera.Today())
	if rate == nil {
		return decimal.Zero
	}
	return *rate
}

func decimalZero() decimal.Decimal { return decimal.Zero }

// --- Rate Command ---

type rateCmd struct {
	date string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show the exchange rate for a date" }
func (*rateCmd) Usage() string {
	return `wp rate [-d <date>]

  Shows the ARS per USD rate that applies to a date, and the regime it was
  selected under (parallel "blue" before the unification, official after).
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cartera.Today().String(), "Date to resolve (YYYY-MM-DD)")
}

func (c *rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := cartera.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	resolver := &cartera.RateResolver{Source: cartera.NewBluelytics()}
	rate, regime := resolver.RateForDate(ctx, day)
	if rate == nil {
		fmt.Fprintf(os.Stderr, "No %s rate available for %s\n", regime, day)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %s ARS/USD (%s)\n", day, rate.StringFixed(2), regime)
	return subcommands.ExitSuccess
}

// --- Update Command ---

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh market quotes and the USD rate" }
func (*updateCmd) Usage() string {
	return `wp update

  Fetches quotes for the watched market symbols and the portfolio's tickers,
  and today's USD rate, then prints the market strip.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// watched symbols plus whatever the ledger holds, deduplicated
	seen := make(map[string]bool)
	var tickers []string
	for _, t := range append(cfg.QuoteSymbols(), ledger.Tickers()...) {
		if !seen[t] {
			seen[t] = true
			tickers = append(tickers, t)
		}
	}

	quotes := fetchQuotes(ctx, tickers)
	printMarkdown(renderer.MarketMarkdown(cfg.QuoteSymbols(), quotes))

	if rate := currentUSDRate(ctx); rate.IsPositive() {
		fmt.Printf("USD: %s ARS (%s)\n", rate.StringFixed(2), cartera.ResolveRegime(cartera.Today()))
	} else {
		fmt.Println("USD rate unavailable")
	}
	return subcommands.ExitSuccess
}

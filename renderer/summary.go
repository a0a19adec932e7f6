// Package renderer formats ledger reports as markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/lruedas/cartera"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the portfolio summary: aggregate figures first,
// then one row per open position.
func SummaryMarkdown(s *cartera.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Summary")
	doc.PlainText(fmt.Sprintf("Total Value: %s (%s)", s.TotalValueLocal, s.TotalValueRef))
	doc.PlainText(fmt.Sprintf("Total Invested: %s", s.TotalInvestedLocal))
	doc.PlainText(fmt.Sprintf("Profit: %s (%s) %s", s.ProfitLocal.SignedString(), s.ProfitRef.SignedString(), s.ProfitPercent.SignedString()))
	if !s.RealizedLocal.IsZero() {
		doc.PlainText(fmt.Sprintf("Realized: %s (%s)", s.RealizedLocal.SignedString(), s.RealizedRef.SignedString()))
	}
	if s.USDRate.IsPositive() {
		doc.PlainText(fmt.Sprintf("USD Rate: %s ARS", s.USDRate.StringFixed(2)))
	}

	if len(s.Rows) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Header: []string{"Ticker", "Name", "Quantity", "Avg Cost", "Price", "Value", "P&L", "P&L %"},
		}
		for _, row := range s.Rows {
			price := row.UnitPrice.String()
			if row.Fallback {
				price += " *"
			}
			table.Rows = append(table.Rows, []string{
				cartera.BareTicker(row.Holding.Ticker),
				row.Holding.TickerName,
				row.Holding.Quantity.String(),
				row.Holding.AvgCostLocal().String(),
				price,
				row.Value.String(),
				row.PnLLocal.SignedString(),
				row.PnLPercent.SignedString(),
			})
		}
		doc.Table(table)
		for _, row := range s.Rows {
			if row.Fallback {
				doc.PlainText("(*) no live quote, valued at average cost")
				break
			}
		}
	}

	return doc.String()
}

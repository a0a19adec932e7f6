package renderer

import (
	"bytes"

	"github.com/lruedas/cartera"
	md "github.com/nao1215/markdown"
)

// MarketMarkdown renders the market strip: one row per watched symbol with
// its last price and daily change. Symbols without a quote show a dash.
func MarketMarkdown(symbols []string, quotes *cartera.QuoteBook) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Market")
	table := md.TableSet{Header: []string{"Symbol", "Price", "Change"}}
	for _, symbol := range symbols {
		q, ok := quotes.Lookup(symbol)
		if !ok || !q.Price.IsPositive() {
			table.Rows = append(table.Rows, []string{cartera.BareTicker(symbol), "-", "-"})
			continue
		}
		table.Rows = append(table.Rows, []string{
			cartera.BareTicker(symbol),
			q.Price.String(),
			q.ChangePercent.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

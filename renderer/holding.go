package renderer

import (
	"bytes"
	"fmt"

	"github.com/lruedas/cartera"
	md "github.com/nao1215/markdown"
)

// HoldingMarkdown renders the detail of one position: derived figures, then
// the purchases and sales that produced them.
func HoldingMarkdown(h *cartera.Holding, unitPrice cartera.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := h.Ticker
	if h.TickerName != "" {
		title = fmt.Sprintf("%s (%s)", h.TickerName, cartera.BareTicker(h.Ticker))
	}
	doc.H1(title)

	doc.PlainText(fmt.Sprintf("Quantity: %s", h.Quantity))
	doc.PlainText(fmt.Sprintf("Cost Basis: %s (%s)", h.TotalCostLocal, h.TotalCostRef))
	doc.PlainText(fmt.Sprintf("Avg Cost: %s / unit, blended rate %s ARS/USD", h.AvgCostLocal(), h.AvgExchangeRate().StringFixed(2)))
	if unitPrice.IsPositive() {
		doc.PlainText(fmt.Sprintf("Market Value: %s at %s / unit", h.MarketValue(unitPrice), unitPrice))
		doc.PlainText(fmt.Sprintf("Unrealized: %s %s", h.UnrealizedPnL(unitPrice).SignedString(), h.UnrealizedPercent(unitPrice).SignedString()))
	}
	if len(h.Sales) > 0 {
		doc.PlainText(fmt.Sprintf("Realized: %s (%s)", h.RealizedLocal().SignedString(), h.RealizedRef().SignedString()))
	}

	if len(h.Purchases) > 0 {
		doc.H2("Purchases")
		table := md.TableSet{Header: []string{"Date", "Quantity", "Amount", "Rate", "USD"}}
		for _, b := range h.Purchases {
			table.Rows = append(table.Rows, []string{
				b.When().String(),
				b.Quantity.String(),
				b.PriceLocal.String(),
				b.ExchangeRate.StringFixed(2),
				b.PriceRef.String(),
			})
		}
		doc.Table(table)
	}

	if len(h.Sales) > 0 {
		doc.H2("Sales")
		table := md.TableSet{Header: []string{"Date", "Quantity", "Amount", "Rate", "Realized", "Realized USD"}}
		for _, s := range h.Sales {
			table.Rows = append(table.Rows, []string{
				s.When().String(),
				s.Quantity.String(),
				s.PriceLocal.String(),
				s.ExchangeRate.StringFixed(2),
				s.RealizedLocal.SignedString(),
				s.RealizedRef.SignedString(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

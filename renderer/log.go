package renderer

import (
	"bytes"

	"github.com/lruedas/cartera"
	md "github.com/nao1215/markdown"
)

// OperationsMarkdown renders the operation log as one table, oldest first.
// Sales carry their frozen realized profit.
func OperationsMarkdown(ops []cartera.Operation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Operations")
	if len(ops) == 0 {
		doc.PlainText("No operations recorded.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Date", "Kind", "Ticker", "Quantity", "Amount", "Rate", "USD", "Realized", "Id"},
	}
	for _, op := range ops {
		row := []string{op.When().String(), string(op.What()), op.Ticker()}
		switch v := op.(type) {
		case cartera.Buy:
			row = append(row,
				v.Quantity.String(),
				v.PriceLocal.String(),
				v.ExchangeRate.StringFixed(2),
				v.PriceRef.String(),
				"-",
			)
		case cartera.Sell:
			row = append(row,
				v.Quantity.String(),
				v.PriceLocal.String(),
				v.ExchangeRate.StringFixed(2),
				v.PriceRef.String(),
				v.RealizedLocal.SignedString(),
			)
		default:
			row = append(row, "", "", "", "", "")
		}
		row = append(row, op.ID())
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}

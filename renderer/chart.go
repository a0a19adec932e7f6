package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lruedas/cartera"
	md "github.com/nao1215/markdown"
)

// barWidth is the length of a full text bar.
const barWidth = 25

// AllocationMarkdown renders the allocation breakdown with a text bar per
// position, biggest slice first.
func AllocationMarkdown(r *cartera.AllocationReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Allocation")
	if len(r.Rows) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("Total: %s", r.Total))

	table := md.TableSet{Header: []string{"Ticker", "Value", "Weight", ""}}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.Ticker,
			row.Value.String(),
			row.Weight.String(),
			bar(float64(row.Weight) / 100),
		})
	}
	doc.Table(table)

	return doc.String()
}

// PerformanceMarkdown renders per-position unrealized returns, best first.
func PerformanceMarkdown(r *cartera.PerformanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Performance")
	if len(r.Rows) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}

	// scale bars to the largest absolute return
	max := 0.0
	for _, row := range r.Rows {
		v := float64(row.Return)
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}

	table := md.TableSet{Header: []string{"Ticker", "Return", ""}}
	for _, row := range r.Rows {
		v := float64(row.Return)
		ratio := 0.0
		if max > 0 {
			ratio = v / max
		}
		cell := bar(ratio)
		if v < 0 {
			cell = bar(-ratio)
		}
		table.Rows = append(table.Rows, []string{row.Ticker, row.Return.SignedString(), cell})
	}
	doc.Table(table)

	return doc.String()
}

// bar draws a left-to-right text bar for a ratio in [0,1].
func bar(ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	n := int(ratio*barWidth + 0.5)
	return strings.Repeat("█", n)
}

package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/lruedas/cartera"
	md "github.com/nao1215/markdown"
)

var monthNames = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// glyph per intensity level, darker means a bigger share of the busiest day
func levelGlyph(level cartera.Intensity) string {
	switch level {
	case cartera.IntensityLow:
		return "░"
	case cartera.IntensityMedium:
		return "▒"
	case cartera.IntensityHigh:
		return "▓"
	default:
		return ""
	}
}

// CalendarMarkdown renders the activity heatmap of one year: a week grid per
// month with activity, then the detail of each active day.
func CalendarMarkdown(r *cartera.CalendarReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Activity %d", r.Year))
	if len(r.Days) == 0 {
		doc.PlainText("No operations this year.")
		return doc.String()
	}

	levels := make(map[cartera.Date]cartera.Intensity, len(r.Days))
	months := make(map[int]bool)
	for _, d := range r.Days {
		levels[d.Day] = d.Level
		months[int(d.Day.Month())] = true
	}

	for month := 1; month <= 12; month++ {
		if !months[month] {
			continue
		}
		doc.H2(fmt.Sprintf("%s %d", monthNames[month-1], r.Year))
		doc.Table(monthGrid(r.Year, month, levels))
	}

	doc.H2("Detail")
	table := md.TableSet{Header: []string{"Date", "Total", "Level", "Operations"}}
	for _, d := range r.Days {
		table.Rows = append(table.Rows, []string{
			d.Day.String(),
			d.Total.String(),
			d.Level.String(),
			fmt.Sprintf("%d", len(d.Operations)),
		})
	}
	doc.Table(table)
	doc.PlainText("Legend: ░ low, ▒ medium, ▓ high, relative to the busiest day.")

	return doc.String()
}

// monthGrid lays one month out as a Sunday-first week table.
func monthGrid(year, month int, levels map[cartera.Date]cartera.Intensity) md.TableSet {
	table := md.TableSet{Header: []string{"Do", "Lu", "Ma", "Mi", "Ju", "Vi", "Sa"}}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	week := make([]string, 7)
	col := int(first.Weekday())
	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%d", day)
		if level, ok := levels[cartera.NewDate(year, time.Month(month), day)]; ok {
			cell = fmt.Sprintf("%d %s", day, levelGlyph(level))
		}
		week[col] = cell
		col++
		if col == 7 {
			table.Rows = append(table.Rows, week)
			week = make([]string, 7)
			col = 0
		}
	}
	if col > 0 {
		table.Rows = append(table.Rows, week)
	}
	return table
}

package cartera

import (
	"sort"
)

// AllocationRow is one slice of the allocation breakdown.
type AllocationRow struct {
	Ticker string // bare form, without the market suffix
	Name   string
	Value  Money
	Weight Percent
}

// AllocationReport breaks the portfolio value down per position, at current
// prices with average-cost fallback.
type AllocationReport struct {
	Rows  []AllocationRow
	Total Money
}

// NewAllocationReport values every open position and computes its weight in
// the portfolio.
func NewAllocationReport(ledger *Ledger, quotes *QuoteBook) (*AllocationReport, error) {
	holdings, err := ledger.Holdings()
	if err != nil {
		return nil, err
	}
	r := &AllocationReport{Total: M(0, LocalCurrency)}
	for _, h := range holdings {
		if !h.Quantity.IsPositive() {
			continue
		}
		value := h.MarketValue(quotePrice(quotes, h.Ticker))
		r.Rows = append(r.Rows, AllocationRow{
			Ticker: BareTicker(h.Ticker),
			Name:   h.TickerName,
			Value:  value,
		})
		r.Total = r.Total.Add(value)
	}
	for i := range r.Rows {
		if r.Total.IsPositive() {
			ratio := r.Rows[i].Value.Decimal().Div(r.Total.Decimal())
			f, _ := ratio.Float64()
			r.Rows[i].Weight = Percent(f * 100)
		}
	}
	// biggest slice first
	sort.SliceStable(r.Rows, func(i, j int) bool {
		return r.Rows[j].Value.LessThan(r.Rows[i].Value)
	})
	return r, nil
}

// PerformanceRow is one bar of the performance breakdown.
type PerformanceRow struct {
	Ticker string
	Name   string
	Return Percent // unrealized return over the cost basis
}

// PerformanceReport lists the unrealized return of every open position, at
// current prices with average-cost fallback.
type PerformanceReport struct {
	Rows []PerformanceRow
}

// NewPerformanceReport computes the unrealized return of every open
// position.
func NewPerformanceReport(ledger *Ledger, quotes *QuoteBook) (*PerformanceReport, error) {
	holdings, err := ledger.Holdings()
	if err != nil {
		return nil, err
	}
	r := &PerformanceReport{}
	for _, h := range holdings {
		if !h.Quantity.IsPositive() {
			continue
		}
		r.Rows = append(r.Rows, PerformanceRow{
			Ticker: BareTicker(h.Ticker),
			Name:   h.TickerName,
			Return: h.UnrealizedPercent(quotePrice(quotes, h.Ticker)),
		})
	}
	// best performer first
	sort.SliceStable(r.Rows, func(i, j int) bool {
		return r.Rows[i].Return > r.Rows[j].Return
	})
	return r, nil
}

func quotePrice(quotes *QuoteBook, ticker string) Money {
	if quotes == nil {
		return Money{}
	}
	return quotes.Price(ticker)
}

// Intensity buckets a day's activity for the calendar heatmap.
type Intensity int

const (
	IntensityNone Intensity = iota
	IntensityLow
	IntensityMedium
	IntensityHigh
)

func (i Intensity) String() string {
	switch i {
	case IntensityLow:
		return "low"
	case IntensityMedium:
		return "medium"
	case IntensityHigh:
		return "high"
	default:
		return "none"
	}
}

// CalendarDay is one active day of the calendar heatmap.
type CalendarDay struct {
	Day        Date
	Total      Money // sum of the day's operation amounts, in ARS
	Level      Intensity
	Operations []Operation
}

// CalendarReport maps one year of operation activity. Days with no activity
// are omitted; the intensity of an active day is its total relative to the
// busiest day of the ledger, bucketed by thirds.
type CalendarReport struct {
	Year int
	Days []CalendarDay
}

// NewCalendarReport groups the ledger's operations by date and buckets each
// day of the given year by its share of the busiest day. The scale spans the
// whole ledger, not just the displayed year, so flipping years keeps colors
// comparable.
func NewCalendarReport(ledger *Ledger, year int) *CalendarReport {
	byDate := make(map[Date][]Operation)
	for _, op := range ledger.Operations() {
		byDate[op.When()] = append(byDate[op.When()], op)
	}

	max := M(0, LocalCurrency)
	totals := make(map[Date]Money, len(byDate))
	for day, ops := range byDate {
		total := M(0, LocalCurrency)
		for _, op := range ops {
			total = total.Add(operationAmount(op))
		}
		totals[day] = total
		if max.LessThan(total) {
			max = total
		}
	}

	r := &CalendarReport{Year: year}
	for day, ops := range byDate {
		if day.Year() != year {
			continue
		}
		total := totals[day]
		r.Days = append(r.Days, CalendarDay{
			Day:        day,
			Total:      total,
			Level:      intensity(total, max),
			Operations: ops,
		})
	}
	sort.Slice(r.Days, func(i, j int) bool { return r.Days[i].Day.Before(r.Days[j].Day) })
	return r
}

func operationAmount(op Operation) Money {
	switch v := op.(type) {
	case Buy:
		return v.PriceLocal
	case Sell:
		return v.PriceLocal
	default:
		return M(0, LocalCurrency)
	}
}

func intensity(total, max Money) Intensity {
	if !total.IsPositive() || !max.IsPositive() {
		return IntensityNone
	}
	ratio := total.Decimal().Div(max.Decimal())
	f, _ := ratio.Float64()
	switch {
	case f < 0.33:
		return IntensityLow
	case f < 0.66:
		return IntensityMedium
	default:
		return IntensityHigh
	}
}

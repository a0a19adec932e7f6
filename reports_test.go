package cartera

import (
	"context"
	"testing"
)

// loadedBook returns a book pre-filled by a refresh against canned prices.
func loadedBook(t *testing.T, prices map[string]float64) *QuoteBook {
	t.Helper()
	book := NewQuoteBook(&fakeQuoteSource{prices: prices})
	tickers := make([]string, 0, len(prices))
	for ticker := range prices {
		tickers = append(tickers, ticker)
	}
	if err := book.Refresh(context.Background(), tickers); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return book
}

func TestAllocationReport(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "Grupo Galicia", 100, 1000, 1100)
	mustBuy(t, l, "2025-01-11", "YPF.BA", "YPF S.A.", 10, 5000, 1100)

	// GGAL at 3000/unit: 300000; YPF without a quote: at avg cost 50000
	book := loadedBook(t, map[string]float64{"GGAL.BA": 3000})

	r, err := NewAllocationReport(l, book)
	if err != nil {
		t.Fatalf("NewAllocationReport: %v", err)
	}
	if !r.Total.Equal(ARS(350000)) {
		t.Errorf("total = %s, want 350000", r.Total.Decimal())
	}
	if len(r.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(r.Rows))
	}
	// sorted biggest first, bare tickers
	if r.Rows[0].Ticker != "GGAL" || r.Rows[1].Ticker != "YPF" {
		t.Errorf("row order = %s, %s; want GGAL, YPF", r.Rows[0].Ticker, r.Rows[1].Ticker)
	}
	var sum Percent
	for _, row := range r.Rows {
		sum += row.Weight
	}
	if !sum.Equal(100) {
		t.Errorf("weights sum to %s, want 100%%", sum)
	}
}

func TestPerformanceReport(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100) // avg 1000
	mustBuy(t, l, "2025-01-11", "YPF.BA", "", 10, 5000, 1100)   // avg 5000

	book := loadedBook(t, map[string]float64{"GGAL.BA": 1500, "YPF.BA": 4000})

	r, err := NewPerformanceReport(l, book)
	if err != nil {
		t.Fatalf("NewPerformanceReport: %v", err)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(r.Rows))
	}
	// best first: GGAL +50%, YPF -20%
	if r.Rows[0].Ticker != "GGAL" || !r.Rows[0].Return.Equal(50) {
		t.Errorf("best = %s %s, want GGAL +50%%", r.Rows[0].Ticker, r.Rows[0].Return)
	}
	if r.Rows[1].Ticker != "YPF" || !r.Rows[1].Return.Equal(-20) {
		t.Errorf("worst = %s %s, want YPF -20%%", r.Rows[1].Ticker, r.Rows[1].Return)
	}
}

func TestPerformanceReport_noQuoteReadsFlat(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

	r, err := NewPerformanceReport(l, NewQuoteBook(&fakeQuoteSource{}))
	if err != nil {
		t.Fatalf("NewPerformanceReport: %v", err)
	}
	if !r.Rows[0].Return.Equal(0) {
		t.Errorf("return with no quote = %s, want 0", r.Rows[0].Return)
	}
}

func TestCalendarReport(t *testing.T) {
	l := NewLedger()
	// busiest day 100000; the others at 20% and 50% of it
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)
	mustBuy(t, l, "2025-02-05", "GGAL.BA", "", 10, 2000, 1100)
	mustBuy(t, l, "2025-03-01", "YPF.BA", "", 10, 3000, 1100)
	mustBuy(t, l, "2025-03-01", "YPF.BA", "", 10, 2000, 1100) // same day, sums to 50000

	r := NewCalendarReport(l, 2025)
	if r.Year != 2025 {
		t.Fatalf("year = %d", r.Year)
	}
	if len(r.Days) != 3 {
		t.Fatalf("active days = %d, want 3", len(r.Days))
	}

	byDate := make(map[string]CalendarDay)
	for _, d := range r.Days {
		byDate[d.Day.String()] = d
	}

	if d := byDate["2025-01-10"]; d.Level != IntensityHigh {
		t.Errorf("busiest day level = %s, want high", d.Level)
	}
	if d := byDate["2025-02-05"]; d.Level != IntensityLow {
		t.Errorf("20%% day level = %s, want low", d.Level)
	}
	d := byDate["2025-03-01"]
	if d.Level != IntensityMedium {
		t.Errorf("50%% day level = %s, want medium", d.Level)
	}
	if !d.Total.Equal(ARS(50000)) {
		t.Errorf("same-day operations total = %s, want 50000", d.Total.Decimal())
	}
	if len(d.Operations) != 2 {
		t.Errorf("same-day operations = %d, want 2", len(d.Operations))
	}

	// days come out sorted
	if r.Days[0].Day.String() != "2025-01-10" || r.Days[2].Day.String() != "2025-03-01" {
		t.Errorf("days out of order: %s .. %s", r.Days[0].Day, r.Days[2].Day)
	}
}

func TestCalendarReport_scaleSpansLedger(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2024-06-01", "GGAL.BA", "", 100, 1000, 1100) // ledger max, other year
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 10, 2000, 1100)

	r := NewCalendarReport(l, 2025)
	if len(r.Days) != 1 {
		t.Fatalf("active days in 2025 = %d, want 1", len(r.Days))
	}
	// 20000 against the 2024 max of 100000 is low, not high
	if r.Days[0].Level != IntensityLow {
		t.Errorf("level = %s, want low against the whole-ledger max", r.Days[0].Level)
	}
}

func TestCalendarReport_emptyYear(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2024-06-01", "GGAL.BA", "", 100, 1000, 1100)

	r := NewCalendarReport(l, 2030)
	if len(r.Days) != 0 {
		t.Errorf("active days = %d, want none", len(r.Days))
	}
}

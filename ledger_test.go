package cartera

import (
	"errors"
	"testing"
)

// mustBuy records a buy at a per-unit price or fails the test.
func mustBuy(t *testing.T, l *Ledger, day, ticker, name string, qty, unit, fx float64) Buy {
	t.Helper()
	b, err := l.RecordBuy(MustParse(day), ticker, name, Q(qty), ARS(unit), fxrate(fx))
	if err != nil {
		t.Fatalf("RecordBuy(%s, %s): %v", day, ticker, err)
	}
	return b
}

// mustSell records a sell at a per-unit price or fails the test.
func mustSell(t *testing.T, l *Ledger, day, ticker string, qty, unit, fx float64) Sell {
	t.Helper()
	s, err := l.RecordSell(MustParse(day), ticker, Q(qty), ARS(unit), fxrate(fx))
	if err != nil {
		t.Fatalf("RecordSell(%s, %s): %v", day, ticker, err)
	}
	return s
}

// position fetches the holding for a ticker or fails the test.
func position(t *testing.T, l *Ledger, ticker string) *Holding {
	t.Helper()
	h, ok, err := l.Position(ticker)
	if err != nil {
		t.Fatalf("Position(%s): %v", ticker, err)
	}
	if !ok {
		t.Fatalf("Position(%s): no holding", ticker)
	}
	return h
}

func TestRecordBuy_accumulates(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2024-01-15", "GGAL.BA", "Grupo Galicia", 100, 1500, 850)
	mustBuy(t, l, "2024-02-20", "GGAL.BA", "", 50, 1800, 900)
	mustBuy(t, l, "2024-03-10", "YPF.BA", "YPF S.A.", 50, 4000, 900)

	h := position(t, l, "GGAL.BA")
	if !h.Quantity.Equal(Q(150)) {
		t.Errorf("quantity = %s, want 150", h.Quantity)
	}
	if !h.TotalCostLocal.Equal(ARS(240000)) {
		t.Errorf("totalCostLocal = %s, want 240000", h.TotalCostLocal.Decimal())
	}
	if h.TickerName != "Grupo Galicia" {
		t.Errorf("tickerName = %q, want the first buy's name", h.TickerName)
	}
	if got := position(t, l, "YPF.BA"); !got.TotalCostLocal.Equal(ARS(200000)) {
		t.Errorf("YPF totalCostLocal = %s, want 200000", got.TotalCostLocal.Decimal())
	}
}

func TestRecordBuy_rejectsBadInput(t *testing.T) {
	testCases := []struct {
		name     string
		ticker   string
		quantity float64
		price    float64
		rate     float64
	}{
		{"missing ticker", "", 10, 1000, 1100},
		{"zero quantity", "GGAL.BA", 0, 1000, 1100},
		{"negative quantity", "GGAL.BA", -10, 1000, 1100},
		{"zero price", "GGAL.BA", 10, 0, 1100},
		{"zero rate", "GGAL.BA", 10, 1000, 0},
		{"negative rate", "GGAL.BA", 10, 1000, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			_, err := l.RecordBuy(MustParse("2024-01-15"), tc.ticker, "", Q(tc.quantity), ARS(tc.price), fxrate(tc.rate))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if l.Len() != 0 {
				t.Errorf("ledger mutated on invalid input")
			}
		})
	}
}

func TestRecordSell_rejectsBadInput(t *testing.T) {
	testCases := []struct {
		name     string
		quantity float64
		price    float64
		rate     float64
	}{
		{"zero quantity", 0, 1500, 1200},
		{"zero price", 10, 0, 1200},
		{"zero rate", 10, 1500, 0},
		{"negative rate", 10, 1500, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

			_, err := l.RecordSell(MustParse("2025-02-01"), "GGAL.BA", Q(tc.quantity), ARS(tc.price), fxrate(tc.rate))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if l.Len() != 1 {
				t.Errorf("ledger mutated on invalid input")
			}
		})
	}
}

func TestBuyThenSell_scenario(t *testing.T) {
	// Buy 100 at 3500/unit, rate 1100; sell 30 at 4500/unit, rate 1350.
	l := NewLedger()
	b := mustBuy(t, l, "2025-01-10", "GGAL.BA", "Grupo Galicia", 100, 3500, 1100)

	if want := USD(318.18); !closeTo(b.PriceRef, want) {
		t.Errorf("buy priceRef = %s, want ~318.18", b.PriceRef.Decimal())
	}

	s := mustSell(t, l, "2025-02-01", "GGAL.BA", 30, 4500, 1350)
	if !s.RealizedLocal.Equal(ARS(30000)) {
		t.Errorf("realizedLocal = %s, want 30000", s.RealizedLocal.Decimal())
	}
	if want := USD(4.55); !closeTo(s.RealizedRef, want) {
		t.Errorf("realizedRef = %s, want ~4.55", s.RealizedRef.Decimal())
	}
	if s.TickerName() != "Grupo Galicia" {
		t.Errorf("sell tickerName = %q, want denormalized from the holding", s.TickerName())
	}

	h := position(t, l, "GGAL.BA")
	if !h.Quantity.Equal(Q(70)) {
		t.Errorf("quantity = %s, want 70", h.Quantity)
	}
	if !h.TotalCostLocal.Equal(ARS(245000)) {
		t.Errorf("totalCostLocal = %s, want 245000", h.TotalCostLocal.Decimal())
	}
}

func TestRecordSell_avgCostUnchanged(t *testing.T) {
	// 100 units at avg cost 1000/unit; selling 40 at 1500/unit must shrink
	// quantity and cost proportionally, leaving the average untouched.
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

	before := position(t, l, "GGAL.BA").AvgCostLocal()

	s := mustSell(t, l, "2025-02-01", "GGAL.BA", 40, 1500, 1200)
	if !s.RealizedLocal.Equal(ARS(20000)) {
		t.Errorf("realizedLocal = %s, want 20000", s.RealizedLocal.Decimal())
	}

	h := position(t, l, "GGAL.BA")
	if !h.Quantity.Equal(Q(60)) {
		t.Errorf("quantity = %s, want 60", h.Quantity)
	}
	if !h.TotalCostLocal.Equal(ARS(60000)) {
		t.Errorf("totalCostLocal = %s, want 60000", h.TotalCostLocal.Decimal())
	}
	if !h.AvgCostLocal().Equal(before) {
		t.Errorf("avgCost changed by sell: %s -> %s", before.Decimal(), h.AvgCostLocal().Decimal())
	}
}

func TestRecordSell_insufficient(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

	_, err := l.RecordSell(MustParse("2025-02-01"), "GGAL.BA", Q(101), ARS(1500), fxrate(1200))
	var ierr *InsufficientHoldingsError
	if !errors.As(err, &ierr) {
		t.Fatalf("err = %v, want InsufficientHoldingsError", err)
	}
	if !ierr.Held.Equal(Q(100)) || !ierr.Requested.Equal(Q(101)) {
		t.Errorf("error details = held %s requested %s", ierr.Held, ierr.Requested)
	}

	// ledger left unmodified
	if l.Len() != 1 {
		t.Fatalf("ledger has %d operations, want 1", l.Len())
	}
	h := position(t, l, "GGAL.BA")
	if !h.Quantity.Equal(Q(100)) || !h.TotalCostLocal.Equal(ARS(100000)) {
		t.Errorf("holding mutated by rejected sell")
	}
}

func TestRecordSell_neverBought(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

	_, err := l.RecordSell(MustParse("2025-02-01"), "YPF.BA", Q(10), ARS(100), fxrate(1200))
	var derr *DataIntegrityError
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want DataIntegrityError", err)
	}
	if l.Len() != 1 {
		t.Errorf("ledger mutated by rejected sell")
	}
}

func TestSellThenRebuy_roundTrip(t *testing.T) {
	// Selling then re-buying the same quantity at the same unit price must
	// leave the cost basis at its pre-sell value.
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)
	mustSell(t, l, "2025-02-01", "GGAL.BA", 40, 1000, 1100)
	mustBuy(t, l, "2025-03-01", "GGAL.BA", "", 40, 1000, 1100)

	h := position(t, l, "GGAL.BA")
	if !h.Quantity.Equal(Q(100)) {
		t.Errorf("quantity = %s, want 100", h.Quantity)
	}
	if !h.TotalCostLocal.Equal(ARS(100000)) {
		t.Errorf("totalCostLocal = %s, want 100000", h.TotalCostLocal.Decimal())
	}
}

func TestDeleteOperation(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)
	extra := mustBuy(t, l, "2025-01-20", "GGAL.BA", "", 50, 1200, 1100)

	// a reference ledger that never contained the extra buy
	ref := NewLedger()
	mustBuy(t, ref, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

	got, err := l.DeleteOperation(extra.ID())
	if err != nil {
		t.Fatalf("DeleteOperation: %v", err)
	}
	if !got.Equal(extra) {
		t.Errorf("deleted operation differs from the recorded one")
	}

	h, want := position(t, l, "GGAL.BA"), position(t, ref, "GGAL.BA")
	if !h.Quantity.Equal(want.Quantity) || !h.TotalCostLocal.Equal(want.TotalCostLocal) {
		t.Errorf("holdings after delete differ from a ledger that never contained the operation")
	}
}

func TestDeleteOperation_unknown(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

	if _, err := l.DeleteOperation("nope"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("err = %v, want ErrOperationNotFound", err)
	}
	if l.Len() != 1 {
		t.Errorf("ledger mutated by failed delete")
	}
}

func TestLedger_chronologicalOrder(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-03-01", "GGAL.BA", "", 10, 1000, 1100)
	mustBuy(t, l, "2025-01-01", "YPF.BA", "", 10, 1000, 1100)
	mustBuy(t, l, "2025-02-01", "AAPL.BA", "", 10, 1000, 1100)

	var dates []string
	for _, op := range l.Operations() {
		dates = append(dates, op.When().String())
	}
	want := []string{"2025-01-01", "2025-02-01", "2025-03-01"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("operations order = %v, want %v", dates, want)
		}
	}
	if got := l.OldestOperationDate().String(); got != "2025-01-01" {
		t.Errorf("oldest = %s", got)
	}
	if got := l.NewestOperationDate().String(); got != "2025-03-01" {
		t.Errorf("newest = %s", got)
	}
}

func TestLedger_Tickers(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "YPF.BA", "", 10, 1000, 1100)
	mustBuy(t, l, "2025-01-11", "GGAL.BA", "", 10, 1000, 1100)
	mustBuy(t, l, "2025-01-12", "GGAL.BA", "", 10, 1000, 1100)

	got := l.Tickers()
	want := []string{"GGAL.BA", "YPF.BA"}
	if len(got) != len(want) {
		t.Fatalf("tickers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tickers = %v, want %v", got, want)
		}
	}
}

package cartera

import (
	"testing"
)

func TestHolding_pureFunctionOfOperations(t *testing.T) {
	// Two ledgers holding the same operations must derive the same holdings.
	a := NewLedger()
	buy := mustBuy(t, a, "2025-01-10", "GGAL.BA", "Grupo Galicia", 100, 3500, 1100)
	sell := mustSell(t, a, "2025-02-01", "GGAL.BA", 30, 4500, 1350)

	b := NewLedger()
	if err := b.Append(buy, sell); err != nil {
		t.Fatalf("Append: %v", err)
	}

	ha, hb := position(t, a, "GGAL.BA"), position(t, b, "GGAL.BA")
	if !ha.Quantity.Equal(hb.Quantity) ||
		!ha.TotalCostLocal.Equal(hb.TotalCostLocal) ||
		!ha.TotalCostRef.Equal(hb.TotalCostRef) {
		t.Errorf("identical operation sets derived different holdings")
	}
	if len(hb.Purchases) != 1 || len(hb.Sales) != 1 {
		t.Errorf("purchases/sales = %d/%d, want 1/1", len(hb.Purchases), len(hb.Sales))
	}
}

func TestHolding_persistsAtZero(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)
	mustSell(t, l, "2025-02-01", "GGAL.BA", 100, 1500, 1100)

	h := position(t, l, "GGAL.BA")
	if !h.Quantity.IsZero() {
		t.Errorf("quantity = %s, want 0", h.Quantity)
	}
	// full disposal leaves an exactly zeroed basis
	if !h.TotalCostLocal.IsZero() || !h.TotalCostRef.IsZero() {
		t.Errorf("cost basis = %s / %s, want exactly zero", h.TotalCostLocal.Decimal(), h.TotalCostRef.Decimal())
	}
	if !h.AvgCostLocal().IsZero() {
		t.Errorf("avgCost on empty position = %s, want 0", h.AvgCostLocal().Decimal())
	}
	if !h.RealizedLocal().Equal(ARS(50000)) {
		t.Errorf("realized = %s, want 50000", h.RealizedLocal().Decimal())
	}
}

func TestHolding_avgExchangeRate(t *testing.T) {
	// one buy at 1000 ARS/USD, another equal-sized at 2000, blends to 1333.33
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 10, 10000, 1000)
	mustBuy(t, l, "2025-02-10", "GGAL.BA", "", 10, 10000, 2000)

	h := position(t, l, "GGAL.BA")
	got := h.AvgExchangeRate()
	if got.StringFixed(2) != "1333.33" {
		t.Errorf("avgExchangeRate = %s, want 1333.33", got)
	}
}

func TestHolding_unrealizedFallsBackToZero(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100)

	h := position(t, l, "GGAL.BA")
	// a zero unit price means no quote: valued at average cost
	if pnl := h.UnrealizedPnL(Money{}); !pnl.IsZero() {
		t.Errorf("unrealized with no quote = %s, want 0", pnl.Decimal())
	}
	if pct := h.UnrealizedPercent(Money{}); !pct.Equal(0) {
		t.Errorf("unrealized%% with no quote = %s, want 0", pct)
	}
}

func TestHolding_unrealizedWithQuote(t *testing.T) {
	l := NewLedger()
	mustBuy(t, l, "2025-01-10", "GGAL.BA", "", 100, 1000, 1100) // avg cost 1000

	h := position(t, l, "GGAL.BA")
	if got := h.MarketValue(ARS(1500)); !got.Equal(ARS(150000)) {
		t.Errorf("marketValue = %s, want 150000", got.Decimal())
	}
	if got := h.UnrealizedPnL(ARS(1500)); !got.Equal(ARS(50000)) {
		t.Errorf("unrealized = %s, want 50000", got.Decimal())
	}
	if got := h.UnrealizedPercent(ARS(1500)); !got.Equal(50) {
		t.Errorf("unrealized%% = %s, want 50%%", got)
	}
	if got := h.UnrealizedPnL(ARS(800)); !got.Equal(ARS(-20000)) {
		t.Errorf("unrealized at a loss = %s, want -20000", got.Decimal())
	}
}

func TestComputeHoldings_corruptedSale(t *testing.T) {
	// a sale with no matching purchase can only come from a corrupted file,
	// and must surface, not vanish
	sell := NewSell(MustParse("2025-02-01"), "GGAL.BA", "", Q(10), ARS(1000), fxrate(1100))
	if _, err := computeHoldings([]Operation{sell}); err == nil {
		t.Fatal("computeHoldings accepted a sale with no purchase")
	}

	buy := NewBuy(MustParse("2025-01-10"), "GGAL.BA", "", Q(5), ARS(5000), fxrate(1100))
	over := NewSell(MustParse("2025-02-01"), "GGAL.BA", "", Q(10), ARS(1000), fxrate(1100))
	if _, err := computeHoldings([]Operation{buy, over}); err == nil {
		t.Fatal("computeHoldings accepted a sale exceeding the position")
	}
}

func TestBareTicker(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"GGAL.BA", "GGAL"},
		{"GGAL", "GGAL"},
		{"MELI.BA", "MELI"},
		{".BA", ".BA"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := BareTicker(tc.in); got != tc.want {
			t.Errorf("BareTicker(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

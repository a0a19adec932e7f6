package cartera

import (
	"github.com/shopspring/decimal"
)

// HoldingView is one row of the portfolio summary: a position valued at the
// best price available.
type HoldingView struct {
	Holding    *Holding
	UnitPrice  Money // price used for valuation
	Fallback   bool  // true when no quote was available and the average cost was used
	Value      Money
	PnLLocal   Money
	PnLRef     Money
	PnLPercent Percent
}

// Summary aggregates the whole portfolio at current prices. Rows keep only
// open positions; zeroed holdings contribute nothing to value or cost.
type Summary struct {
	Rows               []HoldingView
	TotalValueLocal    Money
	TotalValueRef      Money
	TotalInvestedLocal Money
	ProfitLocal        Money
	ProfitRef          Money
	ProfitPercent      Percent
	RealizedLocal      Money           // profit frozen on sales, closed positions included
	RealizedRef        Money
	USDRate            decimal.Decimal // ARS per USD used for the reference column
}

// NewSummary values every open position with the quotes at hand and totals
// them. A position without a quote is valued at its average cost, which reads
// as zero unrealized profit rather than a total loss. usdRate converts the
// local totals to the reference currency; zero leaves the reference column
// empty.
func NewSummary(ledger *Ledger, quotes *QuoteBook, usdRate decimal.Decimal) (*Summary, error) {
	holdings, err := ledger.Holdings()
	if err != nil {
		return nil, err
	}

	s := &Summary{
		TotalValueLocal:    M(0, LocalCurrency),
		TotalValueRef:      M(0, ReferenceCurrency),
		TotalInvestedLocal: M(0, LocalCurrency),
		RealizedLocal:      M(0, LocalCurrency),
		RealizedRef:        M(0, ReferenceCurrency),
		USDRate:            usdRate,
	}
	for _, h := range holdings {
		s.RealizedLocal = s.RealizedLocal.Add(h.RealizedLocal())
		s.RealizedRef = s.RealizedRef.Add(h.RealizedRef())
		if !h.Quantity.IsPositive() {
			continue
		}
		price := Money{}
		fallback := true
		if quotes != nil {
			if q, ok := quotes.Lookup(h.Ticker); ok && q.Price.IsPositive() {
				price = q.Price
				fallback = false
			}
		}
		row := HoldingView{
			Holding:    h,
			UnitPrice:  price,
			Fallback:   fallback,
			Value:      h.MarketValue(price),
			PnLLocal:   h.UnrealizedPnL(price),
			PnLPercent: h.UnrealizedPercent(price),
		}
		if fallback {
			row.UnitPrice = h.AvgCostLocal()
		}
		row.PnLRef = M(0, ReferenceCurrency)
		if usdRate.IsPositive() {
			row.PnLRef = row.PnLLocal.ConvertAt(usdRate, ReferenceCurrency)
		}
		s.Rows = append(s.Rows, row)

		s.TotalValueLocal = s.TotalValueLocal.Add(row.Value)
		s.TotalInvestedLocal = s.TotalInvestedLocal.Add(h.TotalCostLocal)
	}

	s.ProfitLocal = s.TotalValueLocal.Sub(s.TotalInvestedLocal)
	s.ProfitRef = M(0, ReferenceCurrency)
	if usdRate.IsPositive() {
		s.TotalValueRef = s.TotalValueLocal.ConvertAt(usdRate, ReferenceCurrency)
		s.ProfitRef = s.ProfitLocal.ConvertAt(usdRate, ReferenceCurrency)
	}
	if s.TotalInvestedLocal.IsPositive() {
		ratio := s.ProfitLocal.Decimal().Div(s.TotalInvestedLocal.Decimal())
		f, _ := ratio.Float64()
		s.ProfitPercent = Percent(f * 100)
	}
	return s, nil
}

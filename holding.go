package cartera

import (
	"github.com/shopspring/decimal"
)

// Holding is the derived position for one ticker. It is a pure function of
// the operation list: two ledgers holding the same operations produce the
// same holdings. A holding is created by the first purchase of its ticker and
// persists, possibly at zero quantity, for as long as any operation
// references the ticker.
type Holding struct {
	Ticker         string
	TickerName     string
	Quantity       Quantity
	TotalCostLocal Money // cumulative ARS cost basis
	TotalCostRef   Money // cumulative USD cost basis
	Purchases      []Buy
	Sales          []Sell
}

// AvgCostLocal returns the weighted-average cost per unit in the local
// currency, or zero for an empty position.
func (h *Holding) AvgCostLocal() Money {
	if h.Quantity.IsZero() {
		return M(0, LocalCurrency)
	}
	return h.TotalCostLocal.Div(h.Quantity)
}

// AvgCostRef returns the weighted-average cost per unit in the reference
// currency, or zero for an empty position.
func (h *Holding) AvgCostRef() Money {
	if h.Quantity.IsZero() {
		return M(0, ReferenceCurrency)
	}
	return h.TotalCostRef.Div(h.Quantity)
}

// AvgExchangeRate returns the blended ARS per USD rate implied by the cost
// basis in both currencies.
func (h *Holding) AvgExchangeRate() decimal.Decimal {
	if h.TotalCostRef.IsZero() {
		return decimal.Zero
	}
	return h.TotalCostLocal.Decimal().Div(h.TotalCostRef.Decimal())
}

// RealizedLocal returns the sum of the profits frozen on this holding's
// sales, in the local currency.
func (h *Holding) RealizedLocal() Money {
	total := M(0, LocalCurrency)
	for _, s := range h.Sales {
		total = total.Add(s.RealizedLocal)
	}
	return total
}

// RealizedRef returns the sum of the profits frozen on this holding's sales,
// in the reference currency.
func (h *Holding) RealizedRef() Money {
	total := M(0, ReferenceCurrency)
	for _, s := range h.Sales {
		total = total.Add(s.RealizedRef)
	}
	return total
}

// MarketValue returns the position valued at the given unit price. A zero
// price means no quote is available; the position is then valued at its
// weighted-average cost, which makes the unrealized profit read as zero
// rather than as a total loss.
func (h *Holding) MarketValue(unitPrice Money) Money {
	if unitPrice.IsZero() {
		unitPrice = h.AvgCostLocal()
	}
	return unitPrice.Mul(h.Quantity)
}

// UnrealizedPnL returns the profit on the currently held units at the given
// unit price, against the local-currency cost basis.
func (h *Holding) UnrealizedPnL(unitPrice Money) Money {
	return h.MarketValue(unitPrice).Sub(h.TotalCostLocal)
}

// UnrealizedPercent returns the unrealized profit as a percentage of the cost
// basis, or zero for a costless position.
func (h *Holding) UnrealizedPercent(unitPrice Money) Percent {
	if h.TotalCostLocal.IsZero() {
		return 0
	}
	ratio := h.UnrealizedPnL(unitPrice).Decimal().Div(h.TotalCostLocal.Decimal())
	f, _ := ratio.Float64()
	return Percent(f * 100)
}

// computeHoldings replays the operation list into per-ticker positions.
// Purchases are applied first, then sales, each sale costed out at the
// weighted-average cost of the position it meets. A sale that references a
// ticker never bought, or exceeds the accumulated quantity, means the stored
// operation list is inconsistent and is reported as such.
func computeHoldings(ops []Operation) (map[string]*Holding, error) {
	holdings := make(map[string]*Holding)
	for _, op := range ops {
		buy, ok := op.(Buy)
		if !ok {
			continue
		}
		h := holdings[buy.Ticker()]
		if h == nil {
			h = &Holding{
				Ticker:         buy.Ticker(),
				TickerName:     buy.TickerName(),
				TotalCostLocal: M(0, LocalCurrency),
				TotalCostRef:   M(0, ReferenceCurrency),
			}
			holdings[buy.Ticker()] = h
		}
		if h.TickerName == "" {
			h.TickerName = buy.TickerName()
		}
		h.Quantity = h.Quantity.Add(buy.Quantity)
		h.TotalCostLocal = h.TotalCostLocal.Add(buy.PriceLocal)
		h.TotalCostRef = h.TotalCostRef.Add(buy.PriceRef)
		h.Purchases = append(h.Purchases, buy)
	}
	for _, op := range ops {
		sell, ok := op.(Sell)
		if !ok {
			continue
		}
		h := holdings[sell.Ticker()]
		if h == nil {
			return nil, &DataIntegrityError{
				Ticker:      sell.Ticker(),
				OperationID: sell.ID(),
				Reason:      "sale of a ticker that was never bought",
			}
		}
		if sell.Quantity.GreaterThan(h.Quantity) {
			return nil, &DataIntegrityError{
				Ticker:      sell.Ticker(),
				OperationID: sell.ID(),
				Reason:      "sale exceeds the accumulated position",
			}
		}
		if sell.Quantity.Equal(h.Quantity) {
			// full disposal, zero the basis exactly instead of leaving
			// division residue behind
			h.TotalCostLocal = M(0, LocalCurrency)
			h.TotalCostRef = M(0, ReferenceCurrency)
		} else {
			h.TotalCostLocal = h.TotalCostLocal.Sub(h.AvgCostLocal().Mul(sell.Quantity))
			h.TotalCostRef = h.TotalCostRef.Sub(h.AvgCostRef().Mul(sell.Quantity))
		}
		h.Quantity = h.Quantity.Sub(sell.Quantity)
		h.Sales = append(h.Sales, sell)
	}
	return holdings, nil
}

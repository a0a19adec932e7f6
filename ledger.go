package cartera

import (
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger represents the list of buy and sell operations of one portfolio.
//
// In a Ledger operations are always in chronological order. Operations on the
// same day keep their insertion order.
type Ledger struct {
	ops []Operation
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{ops: make([]Operation, 0)}
}

// Append validates and adds operations to the ledger, keeping it sorted.
// It is the low-level entry point used by the decoder; it trusts realized
// profit fields as stored and does not re-derive them.
func (l *Ledger) Append(ops ...Operation) error {
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return err
		}
	}
	l.ops = append(l.ops, ops...)
	l.stableSort()
	return nil
}

// RecordBuy creates, validates and appends a purchase. priceUnit is the price
// paid per unit in the local currency and rate the ARS per USD exchange rate
// applied; the operation carries the total, quantity times the unit price.
// Holdings derived afterwards reflect the new operation.
func (l *Ledger) RecordBuy(day Date, ticker, tickerName string, quantity Quantity, priceUnit Money, rate decimal.Decimal) (Buy, error) {
	b := NewBuy(day, ticker, tickerName, quantity, priceUnit.Mul(quantity), rate)
	if err := b.Validate(); err != nil {
		return Buy{}, err
	}
	l.ops = append(l.ops, b)
	l.stableSort()
	return b, nil
}

// RecordSell creates, validates and appends a sale. priceUnit is the price
// received per unit in the local currency; the operation carries the total
// proceeds. The quantity must be covered by the position currently held for
// the ticker; otherwise the ledger is left untouched. The realized profit is
// computed here, against the weighted-average cost of the position at this
// moment, and frozen onto the operation.
func (l *Ledger) RecordSell(day Date, ticker string, quantity Quantity, priceUnit Money, rate decimal.Decimal) (Sell, error) {
	s := NewSell(day, ticker, "", quantity, priceUnit.Mul(quantity), rate)
	if err := s.Validate(); err != nil {
		return Sell{}, err
	}
	holdings, err := computeHoldings(l.ops)
	if err != nil {
		return Sell{}, err
	}
	h, ok := holdings[ticker]
	if !ok {
		return Sell{}, &DataIntegrityError{
			Ticker:      ticker,
			OperationID: s.ID(),
			Reason:      "sale of a ticker that was never bought",
		}
	}
	if quantity.GreaterThan(h.Quantity) {
		return Sell{}, &InsufficientHoldingsError{Ticker: ticker, Requested: quantity, Held: h.Quantity}
	}
	s.tickerName = h.TickerName
	s.RealizedLocal = s.PriceLocal.Sub(h.AvgCostLocal().Mul(quantity))
	s.RealizedRef = s.PriceRef.Sub(h.AvgCostRef().Mul(quantity))
	l.ops = append(l.ops, s)
	l.stableSort()
	return s, nil
}

// DeleteOperation removes the operation with the given id and returns it.
// Holdings derived afterwards are exactly those of a ledger that never
// contained the operation. Returns ErrOperationNotFound for an unknown id.
func (l *Ledger) DeleteOperation(id string) (Operation, error) {
	for i, op := range l.ops {
		if op.ID() == id {
			l.ops = slices.Delete(l.ops, i, i+1)
			return op, nil
		}
	}
	return nil, ErrOperationNotFound
}

// Operation returns the operation with the given id, or nil if unknown.
func (l *Ledger) Operation(id string) Operation {
	for _, op := range l.ops {
		if op.ID() == id {
			return op
		}
	}
	return nil
}

// Operations returns an iterator that yields each operation in chronological
// order. Filters, if any, select the operations to yield; an operation is
// yielded when any filter accepts it.
func (l *Ledger) Operations(filters ...func(Operation) bool) iter.Seq2[int, Operation] {
	return func(yield func(int, Operation) bool) {
		for i, op := range l.ops {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(op) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, op) {
				return
			}
		}
	}
}

// Len returns the number of operations in the ledger.
func (l *Ledger) Len() int { return len(l.ops) }

// Holdings derives the per-ticker positions from the operation list and
// returns them sorted by ticker.
func (l *Ledger) Holdings() ([]*Holding, error) {
	holdings, err := computeHoldings(l.ops)
	if err != nil {
		return nil, err
	}
	list := make([]*Holding, 0, len(holdings))
	for _, h := range holdings {
		list = append(list, h)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Ticker < list[j].Ticker })
	return list, nil
}

// Position derives the holding for a single ticker. The bool reports whether
// any operation references the ticker.
func (l *Ledger) Position(ticker string) (*Holding, bool, error) {
	holdings, err := computeHoldings(l.ops)
	if err != nil {
		return nil, false, err
	}
	h, ok := holdings[ticker]
	return h, ok, nil
}

// Tickers returns the sorted set of tickers referenced by the ledger.
func (l *Ledger) Tickers() []string {
	seen := make(map[string]bool)
	for _, op := range l.ops {
		seen[op.Ticker()] = true
	}
	list := make([]string, 0, len(seen))
	for t := range seen {
		list = append(list, t)
	}
	sort.Strings(list)
	return list
}

// stableSort sorts the ledger by operation date. The sort is stable, meaning
// operations on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.ops, func(i, j int) bool {
		return l.ops[i].When().Before(l.ops[j].When())
	})
}

// OldestOperationDate returns the date of the earliest operation in the
// ledger, or the zero date for an empty ledger.
func (l *Ledger) OldestOperationDate() Date {
	if len(l.ops) == 0 {
		return Date{}
	}
	return l.ops[0].When()
}

// NewestOperationDate returns the date of the latest operation in the ledger,
// or the zero date for an empty ledger.
func (l *Ledger) NewestOperationDate() Date {
	if len(l.ops) == 0 {
		return Date{}
	}
	return l.ops[len(l.ops)-1].When()
}

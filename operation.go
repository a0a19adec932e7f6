package cartera

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationKind is a typed string for identifying operation variants.
type OperationKind string

// Operation kinds recorded in the ledger.
const (
	KindBuy  OperationKind = "buy"
	KindSell OperationKind = "sell"
)

// Operation defines the common interface for the buy and sell records of the
// ledger. Operations are immutable once recorded: the ledger only ever
// appends or removes them, never edits them in place.
type Operation interface {
	What() OperationKind // What returns the operation kind ("buy" or "sell").
	When() Date          // When returns the date the operation is attributed to.
	ID() string          // ID returns the caller-stable unique identifier.
	Ticker() string      // Ticker returns the instrument symbol, possibly with a market suffix.
	Equal(Operation) bool
	Validate() error
}

type baseOp struct {
	kind OperationKind
	id   string
	date Date
}

func (o baseOp) What() OperationKind { return o.kind }
func (o baseOp) When() Date          { return o.date }
func (o baseOp) ID() string          { return o.id }

// MarshalJSON implements the json.Marshaler interface for baseOp.
func (o baseOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", o.kind)
	w.Append("id", o.id)
	w.Append("date", o.date)
	return w.MarshalJSON()
}

// secOp is the component shared by instrument-based operations.
type secOp struct {
	baseOp
	ticker     string
	tickerName string
}

func (o secOp) Ticker() string { return o.ticker }

// TickerName returns the display name denormalized at entry time.
func (o secOp) TickerName() string { return o.tickerName }

// MarshalJSON implements the json.Marshaler interface for secOp.
func (o secOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(o.baseOp)
	w.Append("ticker", o.ticker)
	w.Optional("tickerName", o.tickerName)
	return w.MarshalJSON()
}

// Buy represents the purchase of a quantity of an instrument for a total
// amount in the local currency, at a user-supplied exchange rate.
type Buy struct {
	secOp
	Quantity     Quantity        // number of units bought
	PriceLocal   Money           // total cost in ARS (quantity times unit price)
	ExchangeRate decimal.Decimal // ARS per USD on the operation date
	PriceRef     Money           // PriceLocal converted at ExchangeRate, stored for display
}

// NewBuy creates a new Buy operation with a fresh id. The reference-currency
// amount is derived from the local amount and the exchange rate; a
// non-positive rate leaves it zero, for Validate to reject.
func NewBuy(day Date, ticker, tickerName string, quantity Quantity, priceLocal Money, rate decimal.Decimal) Buy {
	ref := M(0, ReferenceCurrency)
	if rate.IsPositive() {
		ref = priceLocal.ConvertAt(rate, ReferenceCurrency)
	}
	return Buy{
		secOp: secOp{
			baseOp:     baseOp{kind: KindBuy, id: uuid.NewString(), date: day},
			ticker:     ticker,
			tickerName: tickerName,
		},
		Quantity:     quantity,
		PriceLocal:   priceLocal,
		ExchangeRate: rate,
		PriceRef:     ref,
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secOp)
	w.Append("quantity", t.Quantity)
	w.Append("priceARS", t.PriceLocal.Decimal())
	w.Append("exchangeRate", t.ExchangeRate)
	w.Append("priceUSD", t.PriceRef.Decimal().Round(2))
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
// The wire format keeps the original field names of the data files
// (priceARS, priceUSD).
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp wireOp
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = temp.Buy()
	return nil
}

func (t Buy) Equal(other Operation) bool {
	o, ok := other.(Buy)
	return ok && t.secOp == o.secOp &&
		t.Quantity.Equal(o.Quantity) &&
		t.PriceLocal.Equal(o.PriceLocal) &&
		t.ExchangeRate.Equal(o.ExchangeRate)
}

// Validate checks the Buy operation's fields. Quantity, amount and exchange
// rate must all be strictly positive.
func (t Buy) Validate() error {
	if t.ticker == "" {
		return &ValidationError{Field: "ticker", Reason: "missing"}
	}
	if !t.Quantity.IsPositive() {
		return &ValidationError{Field: "quantity", Reason: "must be positive, got " + t.Quantity.String()}
	}
	if !t.PriceLocal.IsPositive() {
		return &ValidationError{Field: "price", Reason: "must be positive, got " + t.PriceLocal.Decimal().String()}
	}
	if !t.ExchangeRate.IsPositive() {
		return &ValidationError{Field: "exchange rate", Reason: "must be positive, got " + t.ExchangeRate.String()}
	}
	return nil
}

// Sell represents the disposal of a quantity of an instrument. The realized
// profit is computed against the weighted-average cost at the moment of the
// sell and frozen here permanently: it is never recomputed retroactively.
type Sell struct {
	secOp
	Quantity      Quantity        // number of units sold
	PriceLocal    Money           // total proceeds in ARS
	ExchangeRate  decimal.Decimal // ARS per USD on the operation date
	PriceRef      Money           // PriceLocal converted at ExchangeRate
	RealizedLocal Money           // proceeds minus cost removed, in ARS
	RealizedRef   Money           // proceeds minus cost removed, in USD
}

// NewSell creates a new Sell operation with a fresh id. The realized profit
// fields are set by the ledger at record time, once the cost basis at that
// moment is known. A non-positive rate leaves the reference-currency amount
// zero, for Validate to reject.
func NewSell(day Date, ticker, tickerName string, quantity Quantity, priceLocal Money, rate decimal.Decimal) Sell {
	ref := M(0, ReferenceCurrency)
	if rate.IsPositive() {
		ref = priceLocal.ConvertAt(rate, ReferenceCurrency)
	}
	return Sell{
		secOp: secOp{
			baseOp:     baseOp{kind: KindSell, id: uuid.NewString(), date: day},
			ticker:     ticker,
			tickerName: tickerName,
		},
		Quantity:     quantity,
		PriceLocal:   priceLocal,
		ExchangeRate: rate,
		PriceRef:     ref,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secOp)
	w.Append("quantity", t.Quantity)
	w.Append("priceARS", t.PriceLocal.Decimal())
	w.Append("exchangeRate", t.ExchangeRate)
	w.Append("priceUSD", t.PriceRef.Decimal().Round(2))
	w.Append("realizedProfitARS", t.RealizedLocal.Decimal().Round(2))
	w.Append("realizedProfitUSD", t.RealizedRef.Decimal().Round(2))
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp wireOp
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = temp.Sell()
	return nil
}

func (t Sell) Equal(other Operation) bool {
	o, ok := other.(Sell)
	return ok && t.secOp == o.secOp &&
		t.Quantity.Equal(o.Quantity) &&
		t.PriceLocal.Equal(o.PriceLocal) &&
		t.ExchangeRate.Equal(o.ExchangeRate) &&
		t.RealizedLocal.Equal(o.RealizedLocal) &&
		t.RealizedRef.Equal(o.RealizedRef)
}

// Validate checks the Sell operation's fields. Positivity only: whether the
// position covers the quantity is the ledger's call, not the operation's.
func (t Sell) Validate() error {
	if t.ticker == "" {
		return &ValidationError{Field: "ticker", Reason: "missing"}
	}
	if !t.Quantity.IsPositive() {
		return &ValidationError{Field: "quantity", Reason: "must be positive, got " + t.Quantity.String()}
	}
	if !t.PriceLocal.IsPositive() {
		return &ValidationError{Field: "price", Reason: "must be positive, got " + t.PriceLocal.Decimal().String()}
	}
	if !t.ExchangeRate.IsPositive() {
		return &ValidationError{Field: "exchange rate", Reason: "must be positive, got " + t.ExchangeRate.String()}
	}
	return nil
}

// BareTicker strips the local-market suffix from a ticker, e.g. "GGAL.BA"
// becomes "GGAL". The ledger itself is suffix-agnostic; this is a display and
// quote-lookup concern.
func BareTicker(ticker string) string {
	if n := len(ticker) - len(LocalSuffix); n > 0 && ticker[n:] == LocalSuffix {
		return ticker[:n]
	}
	return ticker
}

// LocalSuffix is the market annotation carried by instruments quoted on the
// local exchange.
const LocalSuffix = ".BA"

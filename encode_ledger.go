package cartera

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// wireOp is a specialized struct to read a ledger line with all possible
// fields. We could use json "inline" but it would not cover both kinds.
type wireOp struct {
	Kind         OperationKind   `json:"kind"`
	ID           string          `json:"id"`
	Ticker       string          `json:"ticker"`
	TickerName   string          `json:"tickerName"`
	Date         Date            `json:"date"`
	Quantity     Quantity        `json:"quantity"`
	PriceARS     decimal.Decimal `json:"priceARS"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	PriceUSD     decimal.Decimal `json:"priceUSD"`
	RealizedARS  decimal.Decimal `json:"realizedProfitARS"`
	RealizedUSD  decimal.Decimal `json:"realizedProfitUSD"`
}

func (t wireOp) sec(kind OperationKind) secOp {
	id := t.ID
	if id == "" {
		// files written before ids were introduced get a fresh one
		id = uuid.NewString()
	}
	return secOp{
		baseOp:     baseOp{kind: kind, id: id, date: t.Date},
		ticker:     t.Ticker,
		tickerName: t.TickerName,
	}
}

// Buy builds the purchase the line describes.
func (t wireOp) Buy() Buy {
	return Buy{
		secOp:        t.sec(KindBuy),
		Quantity:     t.Quantity,
		PriceLocal:   M(t.PriceARS, LocalCurrency),
		ExchangeRate: t.ExchangeRate,
		PriceRef:     M(t.PriceUSD, ReferenceCurrency),
	}
}

// Sell builds the sale the line describes. The realized profit is taken as
// stored, never re-derived: it was frozen at record time.
func (t wireOp) Sell() Sell {
	return Sell{
		secOp:         t.sec(KindSell),
		Quantity:      t.Quantity,
		PriceLocal:    M(t.PriceARS, LocalCurrency),
		ExchangeRate:  t.ExchangeRate,
		PriceRef:      M(t.PriceUSD, ReferenceCurrency),
		RealizedLocal: M(t.RealizedARS, LocalCurrency),
		RealizedRef:   M(t.RealizedUSD, ReferenceCurrency),
	}
}

// DecodeLedger decodes operations from a stream of JSONL data from an
// io.Reader, decodes each line into the appropriate operation struct, and
// returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var temp wireOp
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, fmt.Errorf("could not decode line %q: %w", string(lineBytes), err)
		}

		var decoded Operation
		switch temp.Kind {
		case KindBuy:
			decoded = temp.Buy()
		case KindSell:
			decoded = temp.Sell()
		default:
			return nil, fmt.Errorf("unknown operation kind: %q", temp.Kind)
		}

		if err := ledger.Append(decoded); err != nil {
			return nil, fmt.Errorf("invalid operation %q: %w", decoded.ID(), err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	// loading must fail loudly on a file whose sales cannot be replayed
	if _, err := computeHoldings(ledger.ops); err != nil {
		return nil, err
	}

	return ledger, nil
}

// EncodeOperation marshals a single operation to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeOperation(w io.Writer, op Operation) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write operation: %w", err)
	}
	return nil
}

// EncodeLedger reorders operations by date and persists them to an io.Writer
// in JSONL format. The sort is stable, meaning operations on the same day
// maintain their original relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	decimal.MarshalJSONWithoutQuotes = true

	ledger.stableSort()

	for _, op := range ledger.ops {
		if err := EncodeOperation(w, op); err != nil {
			return err
		}
	}

	return nil
}

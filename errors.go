package cartera

import (
	"errors"
	"fmt"
)

// ErrOperationNotFound is returned when an operation id does not exist in the
// ledger.
var ErrOperationNotFound = errors.New("operation not found")

// ValidationError reports a constraint violation on user input (non-positive
// quantity, price or exchange rate). The ledger is never mutated when one is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientHoldingsError reports a sell whose quantity exceeds the position
// held at the time of the sell. The ledger is left unmodified.
type InsufficientHoldingsError struct {
	Ticker    string
	Requested Quantity
	Held      Quantity
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("cannot sell %s of %s, position is only %s", e.Requested, e.Ticker, e.Held)
}

// DataIntegrityError reports an operation list that cannot be replayed into a
// consistent set of holdings, typically a sell referencing a ticker that was
// never bought. It indicates upstream store corruption and is surfaced rather
// than silently absorbed.
type DataIntegrityError struct {
	Ticker      string
	OperationID string
	Reason      string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("inconsistent ledger: %s (ticker %s, operation %s)", e.Reason, e.Ticker, e.OperationID)
}

// SourceUnavailableError reports that a quote or rate source could not supply
// a value. It is never propagated as a hard failure from the ledger: read
// paths degrade (fallback pricing, manual rate entry) and write paths are
// unaffected.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

package cartera

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
)

// Regime identifies which exchange-rate market applies to a date. Until the
// unification of the Argentine FX market the relevant retail rate was the
// parallel ("blue") one; from the unification on, the official rate.
type Regime string

const (
	RegimeParallel Regime = "blue"
	RegimeOfficial Regime = "oficial"
)

// RegimeCutover is the first date on which the official rate applies.
var RegimeCutover = NewDate(2025, 4, 14)

// ResolveRegime returns the regime in force on the given date. Dates strictly
// before the cutover resolve to the parallel regime, the cutover date and
// anything after to the official one. The zero date resolves to parallel.
func ResolveRegime(on Date) Regime {
	if on.IsZero() || on.Before(RegimeCutover) {
		return RegimeParallel
	}
	return RegimeOfficial
}

// RatePair holds both quotes of the ARS per USD rate for one date. A nil
// field means the source could not supply that leg.
type RatePair struct {
	Parallel *decimal.Decimal
	Official *decimal.Decimal
}

// Select returns the rate matching the regime, or nil when the source did not
// supply it.
func (p RatePair) Select(r Regime) *decimal.Decimal {
	if r == RegimeOfficial {
		return p.Official
	}
	return p.Parallel
}

// RateSource supplies ARS per USD exchange rates.
type RateSource interface {
	// CurrentRates returns today's pair.
	CurrentRates(ctx context.Context) (RatePair, error)
	// HistoricalRates returns the pair for a past date.
	HistoricalRates(ctx context.Context, on Date) (RatePair, error)
}

// RateResolver picks the exchange rate to suggest for an operation date,
// combining the regime rule with a rate source. Source failures never
// propagate: entering the rate by hand is always possible, so a lookup
// miss only degrades the suggestion.
type RateResolver struct {
	Source RateSource
}

// RateForDate returns the suggested ARS per USD rate for an operation dated
// on the given day, and the regime it was selected under. The rate is nil
// when the source has no value for that day under the regime; the other
// regime's rate is a materially different number and is never substituted.
func (r *RateResolver) RateForDate(ctx context.Context, on Date) (*decimal.Decimal, Regime) {
	regime := ResolveRegime(on)
	if r.Source == nil {
		return nil, regime
	}
	var pair RatePair
	var err error
	if on.IsZero() || on.IsToday() {
		pair, err = r.Source.CurrentRates(ctx)
	} else {
		pair, err = r.Source.HistoricalRates(ctx, on)
	}
	if err != nil {
		log.Printf("rate lookup for %s failed: %v", on, err)
		return nil, regime
	}
	return pair.Select(regime), regime
}

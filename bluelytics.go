package cartera

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// This file accesses the Bluelytics API, which publishes both legs of the ARS
// per USD rate: the official one and the parallel ("blue") one.

const bluelyticsBase = "https://api.bluelytics.com.ar/v2"

// Bluelytics implements RateSource against api.bluelytics.com.ar. Responses
// are cached on disk with daily expiry.
type Bluelytics struct {
	client *http.Client
	base   string
}

// NewBluelytics returns a source against the public Bluelytics endpoint.
func NewBluelytics() *Bluelytics {
	return &Bluelytics{client: daily(), base: bluelyticsBase}
}

// the selling rate is the one a buyer of USD pays, and the one the original
// data files were entered with.
type bluelyticsLeg struct {
	ValueSell decimal.Decimal `json:"value_sell"`
	ValueBuy  decimal.Decimal `json:"value_buy"`
}

// CurrentRates implements RateSource using the /latest endpoint.
func (b *Bluelytics) CurrentRates(ctx context.Context) (RatePair, error) {
	var content struct {
		Oficial *bluelyticsLeg `json:"oficial"`
		Blue    *bluelyticsLeg `json:"blue"`
	}
	if err := jwget(ctx, b.client, b.base+"/latest", &content); err != nil {
		return RatePair{}, &SourceUnavailableError{Source: "bluelytics", Err: err}
	}
	var pair RatePair
	if content.Blue != nil && content.Blue.ValueSell.IsPositive() {
		pair.Parallel = &content.Blue.ValueSell
	}
	if content.Oficial != nil && content.Oficial.ValueSell.IsPositive() {
		pair.Official = &content.Oficial.ValueSell
	}
	return pair, nil
}

// HistoricalRates implements RateSource using the /evolution.json endpoint,
// which returns one entry per source for the requested day.
func (b *Bluelytics) HistoricalRates(ctx context.Context, on Date) (RatePair, error) {
	var content []struct {
		Date      string          `json:"date"`
		Source    string          `json:"source"`
		ValueSell decimal.Decimal `json:"value_sell"`
	}
	addr := b.base + "/evolution.json?day=" + on.String()
	if err := jwget(ctx, b.client, addr, &content); err != nil {
		return RatePair{}, &SourceUnavailableError{Source: "bluelytics", Err: err}
	}
	var pair RatePair
	for i := range content {
		e := &content[i]
		if !e.ValueSell.IsPositive() {
			continue
		}
		switch e.Source {
		case "Blue":
			pair.Parallel = &e.ValueSell
		case "Oficial":
			pair.Official = &e.ValueSell
		}
	}
	return pair, nil
}

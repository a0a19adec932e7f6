package cartera

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// This file accesses the Yahoo Finance chart API for market quotes.

const yahooBase = "https://query1.finance.yahoo.com/v8/finance/chart/"

// Yahoo implements QuoteSource against the Yahoo Finance v8 chart endpoint.
// Responses are cached on disk with daily expiry.
type Yahoo struct {
	client *http.Client
	base   string
}

// NewYahoo returns a source against the public Yahoo Finance endpoint.
func NewYahoo() *Yahoo {
	return &Yahoo{client: daily(), base: yahooBase}
}

// Quote implements QuoteSource. Local-exchange tickers keep their ".BA"
// suffix on the wire, Yahoo knows them that way.
func (y *Yahoo) Quote(ctx context.Context, ticker string) (Quote, error) {
	addr := y.base + url.PathEscape(ticker) + "?interval=1d&range=1d"
	var jobj any
	if err := jwget(ctx, y.client, addr, &jobj); err != nil {
		return Quote{}, &SourceUnavailableError{Source: "yahoo", Err: err}
	}

	price, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return Quote{}, &SourceUnavailableError{Source: "yahoo", Err: fmt.Errorf("quote %q: %w", ticker, err)}
	}
	cur := LocalCurrency
	if c, err := jstring(jobj, "$.chart.result[0].meta.currency"); err == nil && c != "" {
		cur = c
	}
	q := Quote{Price: M(price, cur), Currency: cur}

	// previous close is informative only, a missing one is not an error
	if prev, err := jfloat(jobj, "$.chart.result[0].meta.chartPreviousClose"); err == nil && prev > 0 {
		q.PreviousClose = M(prev, cur)
		q.ChangePercent = Percent((price - prev) / prev * 100)
	}
	return q, nil
}

// jfloat extracts a float from a parsed JSON document by path.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a float %v", path, jval)
	}
	return val, nil
}

// jstring extracts a string from a parsed JSON document by path.
func jstring(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string %v", path, jval)
	}
	return val, nil
}

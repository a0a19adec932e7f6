package cartera

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"
)

// Quote is a live market quote for one instrument.
type Quote struct {
	Price         Money
	PreviousClose Money
	ChangePercent Percent
	Currency      string
}

// QuoteSource supplies live market quotes.
type QuoteSource interface {
	Quote(ctx context.Context, ticker string) (Quote, error)
}

// QuoteBook holds the quotes fetched during a session. Refreshes fan out one
// request per ticker and tolerate partial failure: a ticker whose fetch fails
// simply keeps no quote, and valuation falls back to the average cost.
type QuoteBook struct {
	source  QuoteSource
	limiter *rate.Limiter

	mu     sync.Mutex
	quotes map[string]Quote
	gen    int
}

// NewQuoteBook creates an empty book backed by the given source.
func NewQuoteBook(source QuoteSource) *QuoteBook {
	return &QuoteBook{
		source: source,
		// polite ceiling on outbound calls
		limiter: rate.NewLimiter(rate.Limit(4), 4),
		quotes:  make(map[string]Quote),
	}
}

// Refresh fetches quotes for all given tickers concurrently and stores the
// ones that succeed. A refresh started while another is in flight supersedes
// it: results from the older one are discarded on arrival. The returned error
// joins the individual fetch failures, if any; quotes that did arrive are
// kept regardless.
func (qb *QuoteBook) Refresh(ctx context.Context, tickers []string) error {
	qb.mu.Lock()
	qb.gen++
	gen := qb.gen
	qb.mu.Unlock()

	var wg sync.WaitGroup
	errs := make([]error, len(tickers))
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			if err := qb.limiter.Wait(ctx); err != nil {
				errs[i] = err
				return
			}
			q, err := qb.source.Quote(ctx, ticker)
			if err != nil {
				errs[i] = err
				return
			}
			qb.mu.Lock()
			defer qb.mu.Unlock()
			if qb.gen != gen {
				// superseded by a newer refresh
				return
			}
			// store under both the suffixed and the bare form, lookups
			// use whichever the caller has at hand
			qb.quotes[ticker] = q
			qb.quotes[BareTicker(ticker)] = q
		}(i, ticker)
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Lookup returns the quote for a ticker, trying the bare form when the
// suffixed one is unknown.
func (qb *QuoteBook) Lookup(ticker string) (Quote, bool) {
	qb.mu.Lock()
	defer qb.mu.Unlock()
	if q, ok := qb.quotes[ticker]; ok {
		return q, true
	}
	q, ok := qb.quotes[BareTicker(ticker)]
	return q, ok
}

// Price returns the current unit price for a ticker, or a zero Money when no
// quote is held. Callers treat the zero price as "value at average cost".
func (qb *QuoteBook) Price(ticker string) Money {
	q, ok := qb.Lookup(ticker)
	if !ok {
		return Money{}
	}
	return q.Price
}

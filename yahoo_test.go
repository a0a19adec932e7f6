package cartera

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const yahooChartBody = `{
	"chart": {
		"result": [{
			"meta": {
				"currency": "ARS",
				"symbol": "GGAL.BA",
				"regularMarketPrice": 6850.5,
				"chartPreviousClose": 6500.0
			},
			"timestamp": [1748890800],
			"indicators": {"quote": [{"close": [6850.5]}]}
		}],
		"error": null
	}
}`

func yahooServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/GGAL.BA") {
			w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
			return
		}
		w.Write([]byte(yahooChartBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestYahoo_Quote(t *testing.T) {
	srv := yahooServer(t)
	y := &Yahoo{client: srv.Client(), base: srv.URL + "/"}

	q, err := y.Quote(context.Background(), "GGAL.BA")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.Price.Equal(ARS(6850.5)) {
		t.Errorf("price = %s, want 6850.5", q.Price.Decimal())
	}
	if q.Currency != "ARS" {
		t.Errorf("currency = %q, want ARS", q.Currency)
	}
	if !q.PreviousClose.Equal(ARS(6500)) {
		t.Errorf("previousClose = %s, want 6500", q.PreviousClose.Decimal())
	}
	if !q.ChangePercent.Equal(5.3923) {
		t.Errorf("changePercent = %s, want ~5.39%%", q.ChangePercent)
	}
}

func TestYahoo_Quote_unknownTicker(t *testing.T) {
	srv := yahooServer(t)
	y := &Yahoo{client: srv.Client(), base: srv.URL + "/"}

	_, err := y.Quote(context.Background(), "NOPE.BA")
	var serr *SourceUnavailableError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want SourceUnavailableError", err)
	}
	if serr.Source != "yahoo" {
		t.Errorf("source = %q", serr.Source)
	}
}

func TestYahoo_Quote_missingPreviousClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [{"meta": {"currency": "ARS", "regularMarketPrice": 100.0}}]}}`))
	}))
	defer srv.Close()
	y := &Yahoo{client: srv.Client(), base: srv.URL + "/"}

	q, err := y.Quote(context.Background(), "GGAL.BA")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.PreviousClose.IsZero() || !q.ChangePercent.Equal(0) {
		t.Errorf("previousClose/change filled from a response without chartPreviousClose")
	}
}

func TestYahoo_Quote_defaultsCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [{"meta": {"regularMarketPrice": 100.0}}]}}`))
	}))
	defer srv.Close()
	y := &Yahoo{client: srv.Client(), base: srv.URL + "/"}

	q, err := y.Quote(context.Background(), "GGAL.BA")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Currency != LocalCurrency {
		t.Errorf("currency = %q, want the local default", q.Currency)
	}
}

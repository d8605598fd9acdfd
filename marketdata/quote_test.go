package marketdata

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestYahoo_LatestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [{"meta": {"currency": "USD", "symbol": "JPM", "regularMarketPrice": 132.08}}], "error": null}}`)
	}))
	defer srv.Close()

	source := &Yahoo{BaseURL: srv.URL, Client: srv.Client()}
	quote, err := source.LatestQuote("JPM")
	if err != nil {
		t.Fatalf("LatestQuote() error = %v", err)
	}
	if quote != 132.08 {
		t.Errorf("LatestQuote() = %v, want 132.08", quote)
	}
}

func TestYahoo_LatestQuote_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	}))
	defer srv.Close()

	source := &Yahoo{BaseURL: srv.URL, Client: srv.Client()}
	quote, err := source.LatestQuote("NOPE")
	if err == nil {
		t.Fatal("LatestQuote() without a result should fail")
	}
	if !math.IsNaN(quote) {
		t.Errorf("LatestQuote() = %v, want NaN on error", quote)
	}
}

func TestYahoo_LatestQuote_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [{"meta": {"currency": "USD", "symbol": "JPM", "regularMarketPrice": 0}}], "error": null}}`)
	}))
	defer srv.Close()

	source := &Yahoo{BaseURL: srv.URL, Client: srv.Client()}
	quote, err := source.LatestQuote("JPM")
	if err == nil {
		t.Fatal("LatestQuote() on a zero price should fail")
	}
	if !math.IsNaN(quote) {
		t.Errorf("LatestQuote() = %v, want NaN on error", quote)
	}
}

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCatalog("search", ResultOK)
	c.RecordCatalog("search", ResultOK)
	c.RecordCatalog("search", ResultError)
	c.RecordWatchlist("add", ResultOK)

	if got := testutil.ToFloat64(c.catalog.WithLabelValues("search", ResultOK)); got != 2 {
		t.Errorf("catalog search ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.catalog.WithLabelValues("search", ResultError)); got != 1 {
		t.Errorf("catalog search error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.watchlist.WithLabelValues("add", ResultOK)); got != 1 {
		t.Errorf("watchlist add ok = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordWatchlist("remove", ResultError)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `watchbox_watchlist_ops_total{op="remove",result="error"} 1`) {
		t.Errorf("metrics output missing counter:\n%s", body)
	}
}

func TestNop_ImplementsRecorder(t *testing.T) {
	var _ Recorder = Nop{}
	var _ Recorder = (*Collector)(nil)
}

package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ramcalc/internal/estimator"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

// TestMetricsMiddleware_EmitsRequestCounters verifies that wrapping a handler
// with MetricsMiddleware results in request metrics being exposed.
func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body := scrape(t); !bytes.Contains(body, []byte("ramcalc_http_requests_total")) {
		t.Fatalf("expected ramcalc_http_requests_total in metrics")
	}
}

// TestMetricsMiddleware_UsesRoutePattern ensures requests are labeled by the
// chi route pattern instead of the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := NewMux(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/models/some-unique-model-id", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body := scrape(t)
	if !bytes.Contains(body, []byte(`path="/v1/models/{id}"`)) {
		t.Fatalf("expected route pattern label in metrics")
	}
	if bytes.Contains(body, []byte("some-unique-model-id")) {
		t.Fatalf("raw path leaked into metric labels")
	}
}

func TestRecordEstimate(t *testing.T) {
	RecordEstimate("", estimator.Result{SystemRAMGB: 3, Warnings: []string{"a"}})
	body := scrape(t)
	for _, want := range []string{
		`ramcalc_estimates_total{surface="unspecified"}`,
		`ramcalc_estimate_warnings_total{surface="unspecified"}`,
		"ramcalc_estimate_system_ram_gb_bucket",
	} {
		if !bytes.Contains(body, []byte(want)) {
			t.Fatalf("missing %s in metrics", want)
		}
	}
}

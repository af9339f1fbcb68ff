package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerWithMetrics() (*Handler, *metrics.Metrics) {
	m := metrics.NewWith(prometheus.NewRegistry())
	h := newTestHandler()
	h.metrics = m
	return h, m
}

// TestWithMetrics_RoutePatternLabel mounts the middleware inside a chi
// router and checks the counter uses the route pattern, not the raw URL,
// as the path label.
func TestWithMetrics_RoutePatternLabel(t *testing.T) {
	h, m := newHandlerWithMetrics()

	router := chi.NewRouter()
	router.Use(h.withMetrics)
	router.Get("/api/v1/wallets/{serverID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/srv-42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/wallets/{serverID}", "200"))
	assert.Equal(t, float64(1), got)

	// The raw URL must not appear as a label value.
	raw := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/wallets/srv-42", "200"))
	assert.Zero(t, raw)
}

func TestWithMetrics_CountsPerStatus(t *testing.T) {
	h, m := newHandlerWithMetrics()

	router := chi.NewRouter()
	router.Use(h.withMetrics)
	router.Get("/ok", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/missing", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/ok", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/missing", "404")))
}

// TestWithMetrics_ImplicitStatusCountsAs200 covers handlers that write a
// body without an explicit WriteHeader.
func TestWithMetrics_ImplicitStatusCountsAs200(t *testing.T) {
	h, m := newHandlerWithMetrics()

	router := chi.NewRouter()
	router.Use(h.withMetrics)
	router.Get("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/implicit", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/implicit", "200")))
}

func TestWithMetrics_NilMetricsPassthrough(t *testing.T) {
	h := newTestHandler() // h.metrics == nil

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		h.withMetrics(next).ServeHTTP(rec, req)
	})
	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestWithMetrics_UnmatchedRoute verifies requests that never match a chi
// route are bucketed under one "unmatched" label instead of one label per
// probed URL.
func TestWithMetrics_UnmatchedRoute(t *testing.T) {
	h, m := newHandlerWithMetrics()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// No chi router: the request context carries no route pattern.
	req := httptest.NewRequest(http.MethodGet, "/probe/phpmyadmin", nil)
	rec := httptest.NewRecorder()

	h.withMetrics(next).ServeHTTP(rec, req)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

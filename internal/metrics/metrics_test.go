package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/metrics"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/accounts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/accounts/"+id, nil))
	}

	m.RateFallback()
	m.ImportRows(5, 2)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `finanzas_http_requests_total{method="GET",route="/api/accounts/{id}",status="404"} 3`)
	assert.Contains(t, text, "finanzas_exchange_rate_fallbacks_total 1")
	assert.Contains(t, text, `finanzas_import_rows_total{outcome="conflict"} 2`)
	assert.False(t, strings.Contains(text, `route="/api/accounts/1"`))
}

func TestRateFallback(t *testing.T) {
	m := metrics.New()
	m.RateFallback()
	m.RateFallback()

	expected := `
# HELP finanzas_exchange_rate_fallbacks_total Times the configured fallback rate was used instead of a fetched one.
# TYPE finanzas_exchange_rate_fallbacks_total counter
finanzas_exchange_rate_fallbacks_total 2
`

	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "finanzas_exchange_rate_fallbacks_total")
	assert.NoError(t, err)
}

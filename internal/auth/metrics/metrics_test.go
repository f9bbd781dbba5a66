package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := metrics.New()

	m.RecordLogin(metrics.OutcomeSuccess)
	m.RecordLogin(metrics.OutcomeSuccess)
	m.RecordLogin(metrics.OutcomeInvalidCredentials)
	m.RecordRefresh(metrics.OutcomeInvalidRefresh)
	m.RecordLogout()
	m.RecordSessionsSwept()
	m.RecordHTTPRequest(http.MethodPost, "POST /v1/auth/login", http.StatusOK, 10*time.Millisecond)

	require.InDelta(t, 2, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(metrics.OutcomeSuccess)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(metrics.OutcomeInvalidCredentials)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.RefreshesTotal.WithLabelValues(metrics.OutcomeInvalidRefresh)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.LogoutsTotal), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.HousekeepingRuns), 0)
	require.InDelta(t, 1, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "POST /v1/auth/login", "200")), 0)
}

func TestNewUsesIsolatedRegistry(t *testing.T) {
	// Two instances must not collide on registration.
	a, b := metrics.New(), metrics.New()
	a.RecordLogout()
	require.InDelta(t, 0, testutil.ToFloat64(b.LogoutsTotal), 0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := metrics.New()
	m.RecordLogin(metrics.OutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `auth_logins_total{outcome="success"} 1`)
	require.Contains(t, string(body), "go_goroutines")
}

func TestInstrument(t *testing.T) {
	m := metrics.New()

	h := metrics.Instrument(m, "GET /v1/auth/me", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.WriteHeader(http.StatusOK) // superfluous, ignored
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

	implicit := metrics.Instrument(m, "GET /livez", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	implicit.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /v1/auth/me", "401")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /livez", "200")), 0)
}

func TestNoop(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	require.Equal(t, metrics.Noop{}, metrics.OrNoop(nil))
	require.NotPanics(t, func() {
		metrics.Instrument(metrics.OrNoop(nil), "GET /livez", next).
			ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))
	})
}

package metrics

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
)

func newRouter(t *testing.T) (*Metrics, http.Handler) {
	t.Helper()

	m, err := New()
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/uploads/{key}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Post("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Handle("/metrics", m.Handler())
	return m, r
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m, h := newRouter(t)

	for _, key := range []string{"1_a", "2_b", "3_c"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/"+key, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/uploads/{key}", "200")))
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	m, h := newRouter(t)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/fail", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/fail", "400")))
}

func TestMiddleware_UnmatchedRoutesShareOneLabel(t *testing.T) {
	m, h := newRouter(t)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/2", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "unmatched", "404")))
}

func TestMiddleware_ExcludesMetricsEndpoint(t *testing.T) {
	m, h := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 0, testutil.CollectAndCount(m.requestCount))
}

func TestObserveUpload(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.ObserveUpload(true, 100, "image/png")
	m.ObserveUpload(true, 50, "image/png")
	m.ObserveUpload(false, 999, "")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.uploads.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.uploads.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, float64(150), testutil.ToFloat64(m.uploadBytes))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.detectedTypes.WithLabelValues("image/png")))
}

func TestHandler_ExposesUploadMetrics(t *testing.T) {
	m, h := newRouter(t)
	m.ObserveUpload(true, 10, "application/pdf")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `mimedemo_detected_mime_types_total{mime_type="application/pdf"} 1`))
}

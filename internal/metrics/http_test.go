package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/pets/:slug", 200, 15*time.Millisecond)
	m.Observe("GET", "/api/pets/:slug", 200, 25*time.Millisecond)
	m.Observe("GET", "/api/pets/:slug", 404, time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/pets/:slug", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/pets/:slug", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestHTTPMetrics_NilIsSafe(t *testing.T) {
	var m *HTTPMetrics
	assert.NotPanics(t, func() { m.Observe("GET", "/health", 200, time.Millisecond) })
	assert.Nil(t, NewHTTPMetrics(nil))
}

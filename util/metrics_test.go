package util

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpGet(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMetricsListener(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "testutil_lines_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Add(3)

	ml, err := LaunchMetricsListener("127.0.0.1:0", registry)
	require.NoError(t, err)
	defer ml.Shutdown(context.Background())
	base := "http://" + ml.Addr()

	status, body := httpGet(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "testutil_lines_total 3")

	status, body = httpGet(t, base+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "slog-syslog")

	status, _ = httpGet(t, base+"/debug/pprof/")
	assert.Equal(t, http.StatusOK, status)

	status, _ = httpGet(t, base+"/missing")
	assert.Equal(t, http.StatusNotFound, status)

	_, err = LaunchMetricsListener(ml.Addr(), registry)
	assert.Error(t, err)
}

func TestSumMetricValues(t *testing.T) {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "testutil_sum_total", Help: "test"}, []string{"path"})
	vec.WithLabelValues("a").Add(2)
	vec.WithLabelValues("b").Add(5)
	assert.Equal(t, 7.0, SumMetricValues(vec))
	assert.Equal(t, 0.0, SumMetricValues(prometheus.NewCounter(prometheus.CounterOpts{Name: "testutil_zero_total", Help: "test"})))
}

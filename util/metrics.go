package util

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-syslog/defs"
)

const metricsIndexPage = `<html>
	<head>
		<title>slog-syslog metrics listener</title>
	</head>
	<body>
		<h1>Metrics listener for slog-syslog</h1>
		<ul>
			<li><a href='/debug/pprof/'>/debug/pprof/</a></li>
			<li><a href='/metrics'>/metrics</a></li>
		</ul>
	</body>
</html>`

// MetricsListener is a HTTP server exposing Prometheus metrics and pprof endpoints
type MetricsListener struct {
	logger   logger.Logger
	server   *http.Server
	listener net.Listener
}

// LaunchMetricsListener binds the address and starts serving metrics from the gatherer in background
//
// Binding errors are returned immediately. Use ":0" to pick a free port, see Addr.
func LaunchMetricsListener(address string, gatherer prometheus.Gatherer) (*MetricsListener, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s for metrics: %w", address, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		fmt.Fprint(w, metricsIndexPage)
	})

	ml := &MetricsListener{
		logger:   logger.WithField(defs.LabelComponent, "MetricsListener"),
		server:   &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		listener: listener,
	}
	go ml.serve()
	return ml, nil
}

// Addr returns the bound address
func (ml *MetricsListener) Addr() string {
	return ml.listener.Addr().String()
}

// Shutdown stops the server gracefully
func (ml *MetricsListener) Shutdown(ctx context.Context) error {
	return ml.server.Shutdown(ctx)
}

func (ml *MetricsListener) serve() {
	ml.logger.Infof("listening on %s for metrics...", ml.Addr())
	if err := ml.server.Serve(ml.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		ml.logger.Errorf("metrics listener error: %s", err.Error())
	}
}

// SumMetricValues sums all the values of a given Prometheus Collector (Counter or CounterVec)
func SumMetricValues(c prometheus.Collector) float64 {
	// modified from github.com/prometheus/client_golang/prometheus/testutil.ToFloat64
	var (
		mList = make([]prometheus.Metric, 0, 16)
		mChan = make(chan prometheus.Metric)
		done  = make(chan struct{})
	)
	go func() {
		for m := range mChan {
			mList = append(mList, m)
		}
		close(done)
	}()
	c.Collect(mChan)
	close(mChan)
	<-done

	sum := 0.0
	for _, m := range mList {
		pb := &dto.Metric{}
		if err := m.Write(pb); err != nil {
			logger.Errorf("failed to read metric '%s': %s", m.Desc(), err.Error())
			continue
		}
		if pb.Counter != nil {
			sum += pb.Counter.GetValue()
		}
		if pb.Gauge != nil {
			sum += pb.Gauge.GetValue()
		}
	}
	return sum
}

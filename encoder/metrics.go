package encoder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/slog-syslog/classify"
	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/metrics"
	"github.com/relex/slog-syslog/util"
)

// Metrics counts encoded records per path, structured data validation failures and output bytes
type Metrics struct {
	recordsVec         *prometheus.CounterVec
	encodedRecords     []prometheus.Counter // indexed by classify.Classification
	sdValidationErrors prometheus.Counter
	encodedBytes       prometheus.Counter
}

// NewMetrics creates encoder metrics in the given factory
func NewMetrics(factory *metrics.MetricFactory) *Metrics {
	recordsVec := factory.AddOrGetCounterVec("encoded_records_total", "Numbers of records encoded by path", []string{defs.LabelPath}, nil)
	m := &Metrics{
		recordsVec:         recordsVec,
		encodedRecords:     make([]prometheus.Counter, len(classify.AllClassifications)),
		sdValidationErrors: factory.AddOrGetCounter("sd_validation_errors_total", "Numbers of records with invalid well-known structured data", nil, nil),
		encodedBytes:       factory.AddOrGetCounter("encoded_bytes_total", "Total length in bytes of encoded lines", nil, nil),
	}
	for _, c := range classify.AllClassifications {
		m.encodedRecords[c] = recordsVec.WithLabelValues(c.String())
	}
	return m
}

func (m *Metrics) onEncoded(path classify.Classification, length int, sdValidationFailed bool) {
	m.encodedRecords[path].Inc()
	m.encodedBytes.Add(float64(length))
	if sdValidationFailed {
		m.sdValidationErrors.Inc()
	}
}

// TotalRecords returns the numbers of records encoded by all paths
func (m *Metrics) TotalRecords() float64 {
	return util.SumMetricValues(m.recordsVec)
}

// TotalBytes returns the total length of encoded lines
func (m *Metrics) TotalBytes() float64 {
	return util.SumMetricValues(m.encodedBytes)
}

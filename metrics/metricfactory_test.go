package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricFactory(t *testing.T) {
	mfactory := NewMetricFactoryWithRegisterer(prometheus.NewRegistry(), "testmetricfactory_", []string{"test"}, []string{"TestMetricFactory"})
	mfactory.AddOrGetCounter("mycounter", "Help mycounter", []string{"name"}, []string{"foo"}).Add(3)
	mfactory.AddOrGetCounter("mycounter", "Help mycounter", []string{"name"}, []string{"foo"}).Add(4)
	mfactory.AddOrGetCounterVec("mycountervec", "Help mycountervec", []string{"category"}, nil).WithLabelValues("book").Add(5)
	subfactory := mfactory.NewSubFactory("child1_", []string{"type"}, []string{"encoder"})
	subfactory.AddOrGetCounterVec("childvec", "Help childvec", []string{"class"}, nil).WithLabelValues("X").Add(14)
	subfactory.AddOrGetCounterVec("childvec", "Help childvec", []string{"class"}, nil).WithLabelValues("X").Add(1)
	subfactory.AddOrGetCounterVec("childvec", "Help childvec", []string{"class"}, nil).WithLabelValues("Y").Add(16)
	subfactory.AddOrGetCounter("idle", "Help idle", nil, nil)
	metrics, merr := mfactory.DumpMetrics(false)
	assert.Nil(t, merr)
	assert.Equal(t, `testmetricfactory_child1_childvec{class="X",test="TestMetricFactory",type="encoder"} 15
testmetricfactory_child1_childvec{class="Y",test="TestMetricFactory",type="encoder"} 16
testmetricfactory_mycounter{name="foo",test="TestMetricFactory"} 7
testmetricfactory_mycountervec{category="book",test="TestMetricFactory"} 5
`, metrics)
	assert.Equal(t, "testmetricfactory_child1_", subfactory.Prefix())
}

func TestMetricFactoryDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetricFactoryWithRegisterer(registry, "testdup_", nil, nil).AddOrGetCounter("count", "Help count", nil, nil)
	assert.Panics(t, func() {
		NewMetricFactoryWithRegisterer(registry, "testdup_", nil, nil).AddOrGetCounter("count", "Help count", nil, nil)
	})
}

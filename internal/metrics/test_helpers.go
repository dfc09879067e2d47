package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// getMetricValue retrieves the current float64 value of a Prometheus GaugeVec metric
// for the given set of labels. Returns an error if the metric cannot be parsed.
func getMetricValue(metric *prometheus.GaugeVec, labels map[string]string) (float64, error) {
	c := make(chan prometheus.Metric, 1)
	metric.With(labels).Collect(c)
	m := <-c

	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		return 0, err
	}
	return pb.GetGauge().GetValue(), nil
}

// getCounterValue retrieves the current value of a CounterVec metric.
func getCounterValue(t *testing.T, metric *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()

	pb := &dto.Metric{}
	if err := metric.WithLabelValues(labels...).Write(pb); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	return pb.GetCounter().GetValue()
}

// getHistogramCount retrieves the number of observations of a HistogramVec metric.
func getHistogramCount(t *testing.T, metric *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()

	c := make(chan prometheus.Metric, 1)
	metric.WithLabelValues(labels...).(prometheus.Histogram).Collect(c)
	m := <-c

	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		t.Fatalf("Failed to read histogram: %v", err)
	}
	return pb.GetHistogram().GetSampleCount()
}

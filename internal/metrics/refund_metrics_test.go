package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRefundMetrics_Collectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newRefundMetricsWithRegisterer(registry)

	if metrics.settled == nil {
		t.Error("settled counter should not be nil")
	}
	if metrics.escalated == nil {
		t.Error("escalated counter should not be nil")
	}
	if metrics.alreadyReturned == nil {
		t.Error("alreadyReturned counter should not be nil")
	}
	if metrics.resolutions == nil {
		t.Error("resolutions counter vec should not be nil")
	}
	if metrics.requestDuration == nil {
		t.Error("requestDuration histogram should not be nil")
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRefundMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newRefundMetricsWithRegisterer(registry)

	metrics.RecordSettled()
	metrics.RecordSettled()
	metrics.RecordEscalated()
	metrics.RecordAlreadyReturned()
	metrics.RecordResolution("approve")
	metrics.RecordRequestDuration(25 * time.Millisecond)

	if got := counterValue(t, metrics.settled); got != 2 {
		t.Errorf("settled = %v, want 2", got)
	}
	if got := counterValue(t, metrics.escalated); got != 1 {
		t.Errorf("escalated = %v, want 1", got)
	}
	if got := counterValue(t, metrics.alreadyReturned); got != 1 {
		t.Errorf("alreadyReturned = %v, want 1", got)
	}
	if got := counterValue(t, metrics.resolutions.WithLabelValues("approve")); got != 1 {
		t.Errorf("resolutions{approve} = %v, want 1", got)
	}
}

func TestRefundMetrics_DoubleRegister(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newRefundMetricsWithRegisterer(registry)
	second := newRefundMetricsWithRegisterer(registry)

	// Повторная регистрация переиспользует уже существующие коллекторы.
	first.RecordSettled()
	second.RecordSettled()

	if got := counterValue(t, second.settled); got != 2 {
		t.Errorf("settled = %v, want 2", got)
	}
}

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RefundMetrics содержит метрики workflow возвратов.
type RefundMetrics struct {
	// Счётчики исходов RequestRefund
	settled         prometheus.Counter
	escalated       prometheus.Counter
	alreadyReturned prometheus.Counter

	// Решения администратора по заявкам
	resolutions *prometheus.CounterVec

	// Гистограмма времени обработки запроса на возврат
	requestDuration prometheus.Histogram
}

// NewRefundMetrics создаёт и регистрирует метрики в default registerer.
func NewRefundMetrics() *RefundMetrics {
	return newRefundMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newRefundMetricsWithRegisterer(registerer prometheus.Registerer) *RefundMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &RefundMetrics{
		settled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "support_refund_settled_total",
			Help: "Total number of refunds settled automatically",
		}),
		escalated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "support_refund_escalated_total",
			Help: "Total number of refunds escalated to a pending ticket",
		}),
		alreadyReturned: registerCounter(registerer, prometheus.CounterOpts{
			Name: "support_refund_already_returned_total",
			Help: "Total number of refund requests against already returned orders",
		}),
		resolutions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "support_refund_resolutions_total",
			Help: "Total number of admin decisions applied to refund tickets",
		}, []string{"decision"}),
		requestDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "support_refund_request_duration_seconds",
			Help:    "Duration of refund request processing in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordSettled увеличивает счётчик автоматических возвратов.
func (m *RefundMetrics) RecordSettled() {
	m.settled.Inc()
}

// RecordEscalated увеличивает счётчик эскалаций.
func (m *RefundMetrics) RecordEscalated() {
	m.escalated.Inc()
}

// RecordAlreadyReturned увеличивает счётчик повторных запросов по возвращённым заказам.
func (m *RefundMetrics) RecordAlreadyReturned() {
	m.alreadyReturned.Inc()
}

// RecordResolution увеличивает счётчик решений администратора.
func (m *RefundMetrics) RecordResolution(decision string) {
	m.resolutions.WithLabelValues(decision).Inc()
}

// RecordRequestDuration записывает длительность обработки запроса на возврат.
func (m *RefundMetrics) RecordRequestDuration(duration time.Duration) {
	m.requestDuration.Observe(duration.Seconds())
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

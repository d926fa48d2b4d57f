package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	certifyTotal      *prometheus.CounterVec
	certifyDuration   *prometheus.HistogramVec
	certifyInFlight   prometheus.Gauge
	verdictTotal      *prometheus.CounterVec
	inconclusiveTotal *prometheus.CounterVec
	queueLag          *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	certifyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docucert",
			Subsystem: "worker",
			Name:      "certify_total",
			Help:      "Total certification runs by status.",
		},
		[]string{"service", "status"},
	)
	certifyDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docucert",
			Subsystem: "worker",
			Name:      "certify_duration_seconds",
			Help:      "Certification pipeline duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	certifyInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docucert",
			Subsystem: "worker",
			Name:      "certify_in_flight",
			Help:      "Number of in-flight certification runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	verdictTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docucert",
			Subsystem: "detection",
			Name:      "verdict_total",
			Help:      "Total detection verdicts by interpretation band and document type.",
		},
		[]string{"service", "verdict", "document_type"},
	)
	inconclusiveTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docucert",
			Subsystem: "detection",
			Name:      "inconclusive_total",
			Help:      "Total analyses abandoned because the detectors disagreed.",
		},
		[]string{"service"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docucert",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document upload and certification start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(certifyTotal, certifyDuration, certifyInFlight, verdictTotal, inconclusiveTotal, queueLag)

	return &WorkerMetrics{
		registry:          registry,
		certifyTotal:      certifyTotal,
		certifyDuration:   certifyDuration,
		certifyInFlight:   certifyInFlight,
		verdictTotal:      verdictTotal,
		inconclusiveTotal: inconclusiveTotal,
		queueLag:          queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartCertification() {
	m.certifyInFlight.Inc()
}

func (m *WorkerMetrics) FinishCertification(service string, duration time.Duration, err error) {
	m.certifyInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.certifyTotal.WithLabelValues(service, status).Inc()
	m.certifyDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) RecordVerdict(service, verdict, documentType string, inconclusive bool) {
	if verdict == "" {
		verdict = "unknown"
	}
	if documentType == "" {
		documentType = "unknown"
	}
	m.verdictTotal.WithLabelValues(service, verdict, documentType).Inc()
	if inconclusive {
		m.inconclusiveTotal.WithLabelValues(service).Inc()
	}
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

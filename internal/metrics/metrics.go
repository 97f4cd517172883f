package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CoverageSyncs   *prometheus.CounterVec
	CoverageZips    prometheus.Gauge
	Validations     *prometheus.CounterVec
	ChecksProcessed *prometheus.CounterVec
	APIErrors       prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
	ActiveWorkers   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CoverageSyncs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "coverage_syncs_total",
			Help: "Total number of coverage list synchronisations by outcome.",
		}, []string{"status"}),
		CoverageZips: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "coverage_zip_codes",
			Help: "Number of distinct ZIP codes in the current coverage snapshot.",
		}),
		Validations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "coverage_validations_total",
			Help: "Total number of coverage validations by verdict.",
		}, []string{"status"}),
		ChecksProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "coverage_address_checks_processed_total",
			Help: "Total number of processed queued address checks.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "coverage_geocoding_api_errors_total",
			Help: "Total number of errors received from the reverse geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coverage_geocoding_request_duration_seconds",
			Help:    "Duration of requests to the reverse geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "coverage_active_workers",
			Help: "Current number of active workers processing address checks.",
		}),
	}
}

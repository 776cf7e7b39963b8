package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TaskProcessed    *prometheus.CounterVec
	InvalidLocations prometheus.Counter
	TaskDistance     *prometheus.HistogramVec
	ActiveWorkers    prometheus.Gauge
	OriginGeocode    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TaskProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "proximity_tasks_processed_total",
			Help: "Total number of tasks processed by the proximity worker.",
		}, []string{"status"}),
		InvalidLocations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "proximity_invalid_locations_total",
			Help: "Total number of tasks rejected because of invalid coordinates or non-finite results.",
		}),
		TaskDistance: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "proximity_task_distance",
			Help:    "Great-circle distance between the dispatch origin and processed tasks.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"unit"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "proximity_active_workers",
			Help: "Current number of active workers processing tasks.",
		}),
		OriginGeocode: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "proximity_origin_geocode_duration_seconds",
			Help:    "Duration of the dispatch origin lookup through the geocoding provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}

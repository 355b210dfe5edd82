package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SchedulerMetrics captures subscription check job health signals.
type SchedulerMetrics struct {
	jobRuns           *prometheus.CounterVec
	jobDuration       *prometheus.HistogramVec
	jobErrors         *prometheus.CounterVec
	storesChecked     prometheus.Counter
	storesDeactivated prometheus.Counter
	warningsSent      prometheus.Counter
}

func NewSchedulerMetrics(cfg Config) *SchedulerMetrics {
	constLabels := cfg.constLabels()

	m := &SchedulerMetrics{
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "matjarly_scheduler_job_runs_total",
			Help:        "Scheduler job runs by name.",
			ConstLabels: constLabels,
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "matjarly_scheduler_job_duration_seconds",
			Help:        "Scheduler job latency.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
			ConstLabels: constLabels,
		}, []string{"job"}),
		jobErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "matjarly_scheduler_job_errors_total",
			Help:        "Scheduler job errors by name.",
			ConstLabels: constLabels,
		}, []string{"job"}),
		storesChecked: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "matjarly_subscription_stores_checked_total",
			Help:        "Stores examined by the subscription check job.",
			ConstLabels: constLabels,
		}),
		storesDeactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "matjarly_subscription_stores_deactivated_total",
			Help:        "Stores deactivated after subscription or trial expiry.",
			ConstLabels: constLabels,
		}),
		warningsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "matjarly_subscription_warnings_sent_total",
			Help:        "Expiry warning emails sent by the subscription check job.",
			ConstLabels: constLabels,
		}),
	}

	for _, collector := range []prometheus.Collector{
		m.jobRuns, m.jobDuration, m.jobErrors,
		m.storesChecked, m.storesDeactivated, m.warningsSent,
	} {
		if err := prometheus.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
		}
	}

	return m
}

func (m *SchedulerMetrics) IncJobRun(job string) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job).Inc()
}

func (m *SchedulerMetrics) ObserveJobDuration(job string, d time.Duration) {
	if m == nil {
		return
	}
	m.jobDuration.WithLabelValues(job).Observe(d.Seconds())
}

func (m *SchedulerMetrics) IncJobError(job string) {
	if m == nil {
		return
	}
	m.jobErrors.WithLabelValues(job).Inc()
}

func (m *SchedulerMetrics) AddStoresChecked(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.storesChecked.Add(float64(n))
}

func (m *SchedulerMetrics) AddStoresDeactivated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.storesDeactivated.Add(float64(n))
}

func (m *SchedulerMetrics) AddWarningsSent(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.warningsSent.Add(float64(n))
}

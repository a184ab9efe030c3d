package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes recorded by ObserveSubmission.
const (
	OutcomeSubmitted     = "submitted"
	OutcomeForwardFailed = "forward_failed"
	OutcomeIncomplete    = "incomplete"
	OutcomeInFlight      = "in_flight"
	OutcomeDuplicate     = "duplicate"
	OutcomeNotFound      = "not_found"
)

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	submissionsTotal *prometheus.CounterVec
	forwardLatency   *prometheus.HistogramVec
	viewsTotal       prometheus.Counter
	notifyTotal      *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paramount",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		forwardLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paramount",
			Subsystem: "booking",
			Name:      "forward_latency_seconds",
			Help:      "Latency of the external submission POST",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		viewsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paramount",
			Subsystem: "site",
			Name:      "page_views_total",
			Help:      "Page views created",
		}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paramount",
			Subsystem: "booking",
			Name:      "notifications_total",
			Help:      "Owner notification emails by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.forwardLatency, m.viewsTotal, m.notifyTotal)
	return m
}

func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveForwardLatency(ok bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.forwardLatency.WithLabelValues(status).Observe(seconds)
}

func (m *BookingMetrics) ObserveView() {
	if m == nil {
		return
	}
	m.viewsTotal.Inc()
}

func (m *BookingMetrics) ObserveNotification(ok bool) {
	if m == nil {
		return
	}
	status := "sent"
	if !ok {
		status = "failed"
	}
	m.notifyTotal.WithLabelValues(status).Inc()
}

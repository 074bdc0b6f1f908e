package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллекторы Prometheus сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReviewWritesTotal         *prometheus.CounterVec
	ReviewSubmissionsTotal    *prometheus.CounterVec
	BookingConfirmationsTotal *prometheus.CounterVec
}

// New создает и регистрирует коллекторы
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ReviewWritesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "review_writes_total",
			Help:        "Review record writes to the salon API by target type and outcome",
			ConstLabels: constLabels,
		}, []string{"target_type", "outcome"}),

		ReviewSubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "review_submissions_total",
			Help:        "Review submit invocations by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		BookingConfirmationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_confirmations_total",
			Help:        "Slot confirmations handed off to the booking API by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReviewWritesTotal,
		m.ReviewSubmissionsTotal,
		m.BookingConfirmationsTotal,
	)

	return m
}

// ObserveHTTPRequest учитывает один HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ObserveReviewWrite учитывает запись одного отзыва
func (m *Metrics) ObserveReviewWrite(targetType string, ok bool) {
	m.ReviewWritesTotal.WithLabelValues(targetType, outcome(ok)).Inc()
}

// ObserveReviewSubmission учитывает вызов submit целиком
func (m *Metrics) ObserveReviewSubmission(ok bool) {
	m.ReviewSubmissionsTotal.WithLabelValues(outcome(ok)).Inc()
}

// ObserveBookingConfirmation учитывает подтверждение слота
func (m *Metrics) ObserveBookingConfirmation(ok bool) {
	m.BookingConfirmationsTotal.WithLabelValues(outcome(ok)).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// Noop используется, когда метрики выключены
type Noop struct{}

func (Noop) ObserveReviewWrite(string, bool)                 {}
func (Noop) ObserveReviewSubmission(bool)                    {}
func (Noop) ObserveBookingConfirmation(bool)                 {}
func (Noop) ObserveHTTPRequest(string, string, int, float64) {}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("salon-client", prometheus.NewRegistry())

	m.ObserveReviewWrite("Store", true)
	m.ObserveReviewWrite("Store", true)
	m.ObserveReviewWrite("Employee", false)
	m.ObserveReviewSubmission(false)
	m.ObserveBookingConfirmation(true)
	m.ObserveHTTPRequest("POST", "/api/v1/review-drafts", 201, 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReviewWritesTotal.WithLabelValues("Store", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewWritesTotal.WithLabelValues("Employee", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewSubmissionsTotal.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConfirmationsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/review-drafts", "201")))
}

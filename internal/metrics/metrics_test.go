package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument(t *testing.T) {
	m := New()
	h := m.Instrument("GET /products/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/99", nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "GET /products/{id}", "404"))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.OrderSubmitted(true)
	m.OrderSubmitted(false)
	m.OrderSubmitted(true)
	m.ReviewSubmitted()
	m.SubscriberAdded()
	m.SubscriberAdded()
	m.SubscriberRemoved()
	m.EventDropped("reviews:4")
	m.EventDropped("reviews:9")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ordersSubmitted.WithLabelValues(ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ordersSubmitted.WithLabelValues(ResultFailure)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.reviewsSubmitted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.realtimeSubscribers))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.realtimeDropped.WithLabelValues("reviews")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ReviewSubmitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "rz_reviews_submitted_total 1"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 2*time.Millisecond)
}

func TestTopicLabel(t *testing.T) {
	assert.Equal(t, "orders", topicLabel("orders"))
	assert.Equal(t, "reviews", topicLabel("reviews:12"))
}

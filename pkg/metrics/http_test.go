package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCountsByStatusClass(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/inventory/requests", 200, 25*time.Millisecond)
	m.Observe("POST", "/inventory/requests", 201, 10*time.Millisecond)
	m.Observe("POST", "/inventory/requests", 422, time.Millisecond)

	ok := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/inventory/requests", "2xx"))
	if ok != 2 {
		t.Fatalf("expected two 2xx observations, got %v", ok)
	}
	clientErr := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/inventory/requests", "4xx"))
	if clientErr != 1 {
		t.Fatalf("expected one 4xx observation, got %v", clientErr)
	}
}

func TestObserveNilReceiverIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/vc/counts", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "", 200, time.Millisecond)
}

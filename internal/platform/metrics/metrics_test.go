package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLikeMetrics_CountsByLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLikeMetrics(reg)

	m.Observe("anonymous", "like", "created")
	m.Observe("anonymous", "like", "created")
	m.Observe("user", "like", "duplicate")

	if got := testutil.ToFloat64(m.ops.WithLabelValues("anonymous", "like", "created")); got != 2 {
		t.Fatalf("expected 2 anonymous likes, got %v", got)
	}
	if got := testutil.ToFloat64(m.ops.WithLabelValues("user", "like", "duplicate")); got != 1 {
		t.Fatalf("expected 1 duplicate, got %v", got)
	}
}

func TestLikeMetrics_EmptyLabelsBecomeUnknown(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLikeMetrics(reg)

	m.Observe("", "unlike", "")
	if got := testutil.ToFloat64(m.ops.WithLabelValues("unknown", "unlike", "unknown")); got != 1 {
		t.Fatalf("expected unknown labels, got %v", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var lm *LikeMetrics
	lm.Observe("user", "like", "created")

	NewLikeMetrics(nil).Observe("user", "like", "created")

	var hm *HTTPMetrics
	hm.ObserveRequest("/api/pets", "GET", 200, time.Millisecond)
}

func TestHTTPMetrics_ObservesRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("/api/pets/{petID}", "GET", 200, 15*time.Millisecond)

	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Fatalf("expected 1 series, got %d", n)
	}
}

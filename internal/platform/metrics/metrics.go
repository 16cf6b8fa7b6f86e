package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "petshub"

// LikeMetrics cuenta operaciones like/unlike por tipo de identidad y resultado.
// Un *LikeMetrics nil es válido y no registra nada.
type LikeMetrics struct {
	ops *prometheus.CounterVec
}

func NewLikeMetrics(reg prometheus.Registerer) *LikeMetrics {
	if reg == nil {
		return &LikeMetrics{}
	}
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "like_operations_total",
		Help:      "Like and unlike operations by identity kind and outcome.",
	}, []string{"kind", "op", "outcome"})
	reg.MustRegister(ops)
	return &LikeMetrics{ops: ops}
}

func (m *LikeMetrics) Observe(kind, op, outcome string) {
	if m == nil || m.ops == nil {
		return
	}
	m.ops.WithLabelValues(label(kind), label(op), label(outcome)).Inc()
}

// HTTPMetrics mide latencia por ruta (patrón chi, no path crudo) y status.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
	reg.MustRegister(duration)
	return &HTTPMetrics{duration: duration}
}

func (m *HTTPMetrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(label(route), method, strconv.Itoa(status)).Observe(d.Seconds())
}

func label(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

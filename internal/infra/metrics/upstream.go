package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(upstreamSeconds) }

var upstreamSeconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_request_seconds",
		Help:    "Latency of upstream lookups per service.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	},
	[]string{"upstream", "success"},
)

func ObserveUpstream(upstream string, d time.Duration, success bool) {
	upstreamSeconds.WithLabelValues(norm(upstream), strconv.FormatBool(success)).
		Observe(d.Seconds())
}

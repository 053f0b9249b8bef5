package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution outcomes.
const (
	OutcomeCache    = "cache"
	OutcomeRemote   = "remote"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	registerOnce sync.Once

	resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lyricsolid",
		Name:      "resolutions_total",
		Help:      "Total number of lyrics resolutions by outcome",
	}, []string{"outcome"})
	providerCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lyricsolid",
		Name:      "provider_calls_total",
		Help:      "Total number of remote provider calls by call and result",
	}, []string{"call", "result"})
	resolutionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lyricsolid",
		Name:      "resolution_duration_seconds",
		Help:      "Histogram of lyrics resolution durations in seconds by outcome",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 12), // 1ms up to ~20s
	}, []string{"outcome"})
	cacheWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lyricsolid",
		Name:      "cache_writes_total",
		Help:      "Total number of lyrics files written to the cache",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(resolutions, providerCalls, resolutionDuration, cacheWrites)
	})
}

func ObserveResolution(outcome string, d time.Duration) {
	resolutions.WithLabelValues(outcome).Inc()
	resolutionDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func IncProviderCall(call, result string) { providerCalls.WithLabelValues(call, result).Inc() }
func IncCacheWrites()                     { cacheWrites.Inc() }

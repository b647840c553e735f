// Package metrics holds the prometheus collectors of the sync engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the namespace every collector is defined under.
	Namespace = "chatsync"
	subsystem = "updates"
)

// SyncMetrics groups the engine collectors. A nil *SyncMetrics is valid and
// records nothing.
type SyncMetrics struct {
	UpdatesApplied     *prometheus.CounterVec
	Duplicates         *prometheus.CounterVec
	Gaps               *prometheus.CounterVec
	DifferenceRequests *prometheus.CounterVec
	DifferenceFailures *prometheus.CounterVec
	Unresolved         prometheus.Counter
	ReorderBuffered    prometheus.Gauge
	ChannelsTracked    prometheus.Gauge
	BackoffDelay       prometheus.Histogram
}

// NewSyncMetrics creates the collectors and registers them on reg.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	f := promauto.With(reg)
	return &SyncMetrics{
		UpdatesApplied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "applied_total",
			Help: "Updates applied to the local cache",
		}, []string{"scope"}),
		Duplicates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "duplicates_total",
			Help: "Updates ignored because their position was already applied",
		}, []string{"scope"}),
		Gaps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "gaps_total",
			Help: "Updates that arrived past a gap",
		}, []string{"scope"}),
		DifferenceRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "difference_requests_total",
			Help: "Difference fetches started, by scope and reason",
		}, []string{"scope", "reason"}),
		DifferenceFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "difference_failures_total",
			Help: "Difference fetches that failed",
		}, []string{"scope"}),
		Unresolved: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "unresolved_total",
			Help: "Envelopes referencing users or chats missing from the cache",
		}),
		ReorderBuffered: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "reorder_buffered",
			Help: "Envelopes waiting in the reorder buffer",
		}),
		ChannelsTracked: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name: "channels_tracked",
			Help: "Channels with an open update log",
		}),
		BackoffDelay: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace, Subsystem: subsystem,
			Name:    "backoff_delay_seconds",
			Help:    "Delay before retrying a failed fetch",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 9),
		}),
	}
}

func (m *SyncMetrics) Applied(scope string) {
	if m == nil {
		return
	}
	m.UpdatesApplied.WithLabelValues(scope).Inc()
}

func (m *SyncMetrics) Duplicate(scope string) {
	if m == nil {
		return
	}
	m.Duplicates.WithLabelValues(scope).Inc()
}

func (m *SyncMetrics) Gap(scope string) {
	if m == nil {
		return
	}
	m.Gaps.WithLabelValues(scope).Inc()
}

func (m *SyncMetrics) DifferenceRequested(scope, reason string) {
	if m == nil {
		return
	}
	m.DifferenceRequests.WithLabelValues(scope, reason).Inc()
}

// DifferenceFailed records a failed fetch and the delay chosen for its retry.
func (m *SyncMetrics) DifferenceFailed(scope string, delay time.Duration) {
	if m == nil {
		return
	}
	m.DifferenceFailures.WithLabelValues(scope).Inc()
	m.BackoffDelay.Observe(delay.Seconds())
}

func (m *SyncMetrics) UnresolvedEnvelope() {
	if m == nil {
		return
	}
	m.Unresolved.Inc()
}

// Observe updates the gauges from the engine's current sizes.
func (m *SyncMetrics) Observe(buffered, channels int) {
	if m == nil {
		return
	}
	m.ReorderBuffered.Set(float64(buffered))
	m.ChannelsTracked.Set(float64(channels))
}

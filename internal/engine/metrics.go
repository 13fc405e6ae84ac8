package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	passesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptopulse",
		Subsystem: "engine",
		Name:      "passes_total",
		Help:      "The total number of completed scheduler passes",
	})
	quoteFetches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptopulse",
		Subsystem: "engine",
		Name:      "quote_fetches_total",
		Help:      "The total number of quote fetches issued, one per due pair",
	})
	notificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptopulse",
		Subsystem: "engine",
		Name:      "notifications_sent_total",
		Help:      "The total number of subscription updates dispatched",
	})
	alertsTriggered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptopulse",
		Subsystem: "engine",
		Name:      "alerts_triggered_total",
		Help:      "The total number of alerts fired",
	})
	skippedPairs = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptopulse",
		Subsystem: "engine",
		Name:      "skipped_pairs_total",
		Help:      "The total number of pair buckets skipped for missing quotes",
	})
)

func init() {
	prometheus.MustRegister(passesTotal, quoteFetches, notificationsSent, alertsTriggered, skippedPairs)
}

// PersistentCounters exposes the engine counters persisted across restarts,
// keyed by their storage name.
func PersistentCounters() map[string]prometheus.Counter {
	return map[string]prometheus.Counter{
		"engine_passes_total":             passesTotal,
		"engine_quote_fetches_total":      quoteFetches,
		"engine_notifications_sent_total": notificationsSent,
		"engine_alerts_triggered_total":   alertsTriggered,
		"engine_skipped_pairs_total":      skippedPairs,
	}
}

package engine

import (
	"github.com/hatem4830/cryptopulse/internal/types"
)

// Pair is the batching key for quote fetches: one fetch per pass serves every
// record sharing the pair.
type Pair struct {
	CoinID   string
	Currency string
}

// DueSubscriptions partitions subscriptions into pair buckets, keeping only
// those whose interval has elapsed at now. Non-positive intervals fall back
// to defaultInterval. Pure selection over the snapshot: nothing is mutated.
func DueSubscriptions(subs []types.Subscription, now, defaultInterval int64) map[Pair][]types.Subscription {
	buckets := make(map[Pair][]types.Subscription)
	for _, s := range subs {
		interval := s.IntervalSeconds
		if interval <= 0 {
			interval = defaultInterval
		}
		if now-s.LastSent < interval {
			continue
		}
		p := Pair{CoinID: s.CoinID, Currency: s.Currency}
		buckets[p] = append(buckets[p], s)
	}
	return buckets
}

// GroupAlerts buckets enabled alerts by pair. Alerts carry no per-record
// interval: every pass is a candidate evaluation, gated later by the cooldown
// in ShouldTrigger.
func GroupAlerts(alerts []types.Alert) map[Pair][]types.Alert {
	buckets := make(map[Pair][]types.Alert)
	for _, a := range alerts {
		p := Pair{CoinID: a.CoinID, Currency: a.Currency}
		buckets[p] = append(buckets[p], a)
	}
	return buckets
}

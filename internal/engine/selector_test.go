package engine

import (
	"testing"

	"github.com/hatem4830/cryptopulse/internal/types"
)

func TestDueSubscriptions(t *testing.T) {
	t.Run("due when interval elapsed", func(t *testing.T) {
		subs := []types.Subscription{
			{ID: 1, CoinID: "btc-bitcoin", Currency: "usd", IntervalSeconds: 300, LastSent: 0},
		}
		buckets := DueSubscriptions(subs, 1000, 300)
		if len(buckets) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(buckets))
		}
		got := buckets[Pair{CoinID: "btc-bitcoin", Currency: "usd"}]
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("expected subscription 1 in bucket, got %v", got)
		}
	})

	t.Run("not due when interval has not elapsed", func(t *testing.T) {
		subs := []types.Subscription{
			{ID: 1, CoinID: "btc-bitcoin", Currency: "usd", IntervalSeconds: 300, LastSent: 900},
		}
		if buckets := DueSubscriptions(subs, 1000, 300); len(buckets) != 0 {
			t.Errorf("expected no buckets, got %v", buckets)
		}
	})

	t.Run("due exactly at the interval boundary", func(t *testing.T) {
		subs := []types.Subscription{
			{ID: 1, CoinID: "btc-bitcoin", Currency: "usd", IntervalSeconds: 300, LastSent: 700},
		}
		if buckets := DueSubscriptions(subs, 1000, 300); len(buckets) != 1 {
			t.Errorf("expected subscription due at exactly interval, got %v", buckets)
		}
	})

	t.Run("zero and negative intervals fall back to default", func(t *testing.T) {
		subs := []types.Subscription{
			{ID: 1, CoinID: "btc-bitcoin", Currency: "usd", IntervalSeconds: 0, LastSent: 800},
			{ID: 2, CoinID: "btc-bitcoin", Currency: "usd", IntervalSeconds: -5, LastSent: 800},
		}
		// 200s elapsed < default 300s: neither is due.
		if buckets := DueSubscriptions(subs, 1000, 300); len(buckets) != 0 {
			t.Errorf("expected default interval to gate both records, got %v", buckets)
		}
		// 400s elapsed: both are due.
		buckets := DueSubscriptions(subs, 1200, 300)
		if got := buckets[Pair{CoinID: "btc-bitcoin", Currency: "usd"}]; len(got) != 2 {
			t.Errorf("expected both records due after default interval, got %v", got)
		}
	})

	t.Run("records sharing a pair land in one bucket", func(t *testing.T) {
		subs := []types.Subscription{
			{ID: 1, CoinID: "sol-solana", Currency: "usd", IntervalSeconds: 60, LastSent: 0},
			{ID: 2, CoinID: "sol-solana", Currency: "usd", IntervalSeconds: 120, LastSent: 0},
			{ID: 3, CoinID: "sol-solana", Currency: "eur", IntervalSeconds: 60, LastSent: 0},
		}
		buckets := DueSubscriptions(subs, 1000, 300)
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		if got := buckets[Pair{CoinID: "sol-solana", Currency: "usd"}]; len(got) != 2 {
			t.Errorf("expected 2 usd members, got %d", len(got))
		}
	})

	t.Run("empty input yields empty buckets", func(t *testing.T) {
		if buckets := DueSubscriptions(nil, 1000, 300); len(buckets) != 0 {
			t.Errorf("expected no buckets, got %v", buckets)
		}
	})
}

func TestGroupAlerts(t *testing.T) {
	t.Run("every alert is a candidate regardless of last trigger", func(t *testing.T) {
		alerts := []types.Alert{
			{ID: 1, CoinID: "eth-ethereum", Currency: "usd", LastTriggeredAt: 999},
			{ID: 2, CoinID: "eth-ethereum", Currency: "usd", LastTriggeredAt: 0},
		}
		buckets := GroupAlerts(alerts)
		if got := buckets[Pair{CoinID: "eth-ethereum", Currency: "usd"}]; len(got) != 2 {
			t.Errorf("expected both alerts bucketed, got %v", got)
		}
	})

	t.Run("empty input yields empty buckets", func(t *testing.T) {
		if buckets := GroupAlerts(nil); len(buckets) != 0 {
			t.Errorf("expected no buckets, got %v", buckets)
		}
	})
}

package database

import (
	"path/filepath"
	"testing"

	"github.com/hatem4830/cryptopulse/internal/types"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSubscriptions(t *testing.T) {
	t.Run("upsert keeps one row per triple", func(t *testing.T) {
		db := openTestDB(t)

		if err := db.UpsertSubscription(42, "btc-bitcoin", "usd", 300); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := db.UpsertSubscription(42, "btc-bitcoin", "usd", 600); err != nil {
			t.Fatalf("update: %v", err)
		}

		subs, err := db.ListSubscriptions()
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(subs) != 1 {
			t.Fatalf("expected 1 subscription, got %d", len(subs))
		}
		if subs[0].IntervalSeconds != 600 {
			t.Errorf("expected interval updated to 600, got %d", subs[0].IntervalSeconds)
		}
		if subs[0].LastSent != 0 {
			t.Errorf("expected last_sent 0 for a fresh subscription, got %d", subs[0].LastSent)
		}
	})

	t.Run("different currencies are distinct subscriptions", func(t *testing.T) {
		db := openTestDB(t)

		db.UpsertSubscription(42, "btc-bitcoin", "usd", 300)
		db.UpsertSubscription(42, "btc-bitcoin", "eur", 300)

		subs, _ := db.ListSubscriptions()
		if len(subs) != 2 {
			t.Errorf("expected 2 subscriptions, got %d", len(subs))
		}
	})

	t.Run("mark sent advances only the target row", func(t *testing.T) {
		db := openTestDB(t)

		db.UpsertSubscription(1, "btc-bitcoin", "usd", 300)
		db.UpsertSubscription(2, "btc-bitcoin", "usd", 300)

		subs, _ := db.ListSubscriptions()
		if err := db.MarkSubscriptionSent(subs[0].ID, 1000); err != nil {
			t.Fatalf("mark sent: %v", err)
		}

		subs, _ = db.ListSubscriptions()
		var marked, untouched int64
		for _, s := range subs {
			if s.ChatID == 1 {
				marked = s.LastSent
			} else {
				untouched = s.LastSent
			}
		}
		if marked != 1000 || untouched != 0 {
			t.Errorf("expected last_sent 1000/0, got %d/%d", marked, untouched)
		}
	})

	t.Run("delete removes all of a chat's rows for the coin", func(t *testing.T) {
		db := openTestDB(t)

		db.UpsertSubscription(42, "btc-bitcoin", "usd", 300)
		db.UpsertSubscription(42, "btc-bitcoin", "eur", 300)
		db.UpsertSubscription(43, "btc-bitcoin", "usd", 300)

		n, err := db.DeleteSubscriptions(42, "btc-bitcoin")
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 deletions, got %d", n)
		}

		remaining, _ := db.SubscriptionsByChat(43)
		if len(remaining) != 1 {
			t.Errorf("expected other chat untouched, got %d rows", len(remaining))
		}
	})
}

func TestAlerts(t *testing.T) {
	t.Run("insert defaults to enabled with zero last trigger", func(t *testing.T) {
		db := openTestDB(t)

		id, err := db.InsertAlert(42, "eth-ethereum", types.DirectionBelow, 2000, "usd")
		if err != nil {
			t.Fatalf("insert: %v", err)
		}

		alerts, err := db.ListEnabledAlerts()
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(alerts) != 1 || alerts[0].ID != id {
			t.Fatalf("expected the inserted alert, got %v", alerts)
		}
		a := alerts[0]
		if !a.Enabled || a.LastTriggeredAt != 0 {
			t.Errorf("expected enabled with last_triggered_at 0, got %+v", a)
		}
		if a.Direction != types.DirectionBelow || a.TargetPrice != 2000 {
			t.Errorf("unexpected alert fields: %+v", a)
		}
	})

	t.Run("disabled alerts are invisible to the scheduler", func(t *testing.T) {
		db := openTestDB(t)

		id, _ := db.InsertAlert(42, "eth-ethereum", types.DirectionBelow, 2000, "usd")
		db.InsertAlert(42, "btc-bitcoin", types.DirectionAbove, 70000, "usd")

		if _, err := db.conn.Exec(`UPDATE alerts SET enabled = 0 WHERE id = ?`, id); err != nil {
			t.Fatalf("disable: %v", err)
		}

		enabled, _ := db.ListEnabledAlerts()
		if len(enabled) != 1 || enabled[0].CoinID != "btc-bitcoin" {
			t.Errorf("expected only the enabled alert, got %v", enabled)
		}

		all, _ := db.AlertsByChat(42)
		if len(all) != 2 {
			t.Errorf("expected the chat to still see both alerts, got %d", len(all))
		}
	})

	t.Run("mark triggered persists the timestamp", func(t *testing.T) {
		db := openTestDB(t)

		id, _ := db.InsertAlert(42, "eth-ethereum", types.DirectionBelow, 2000, "usd")
		if err := db.MarkAlertTriggered(id, 500); err != nil {
			t.Fatalf("mark triggered: %v", err)
		}

		alerts, _ := db.ListEnabledAlerts()
		if alerts[0].LastTriggeredAt != 500 {
			t.Errorf("expected last_triggered_at 500, got %d", alerts[0].LastTriggeredAt)
		}
	})

	t.Run("delete enforces chat ownership", func(t *testing.T) {
		db := openTestDB(t)

		id, _ := db.InsertAlert(42, "eth-ethereum", types.DirectionBelow, 2000, "usd")

		if deleted, _ := db.DeleteAlert(id, 99); deleted {
			t.Error("expected foreign chat deletion to be refused")
		}
		if deleted, _ := db.DeleteAlert(id, 42); !deleted {
			t.Error("expected owner deletion to succeed")
		}
	})
}

func TestMetrics(t *testing.T) {
	t.Run("missing metric defaults to zero", func(t *testing.T) {
		db := openTestDB(t)

		value, err := db.GetMetric("engine_passes_total")
		if err != nil || value != 0 {
			t.Errorf("expected 0 with no error, got %f, %v", value, err)
		}
	})

	t.Run("save then load roundtrip with replacement", func(t *testing.T) {
		db := openTestDB(t)

		db.SaveMetric("engine_passes_total", 12)
		db.SaveMetric("engine_passes_total", 17)

		value, err := db.GetMetric("engine_passes_total")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if value != 17 {
			t.Errorf("expected 17, got %f", value)
		}
	})
}

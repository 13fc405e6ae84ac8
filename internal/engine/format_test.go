package engine

import (
	"strings"
	"testing"

	"github.com/hatem4830/cryptopulse/internal/market"
)

func TestSubscriptionMessage(t *testing.T) {
	pair := Pair{CoinID: "btc-bitcoin", Currency: "usd"}

	t.Run("with full market context", func(t *testing.T) {
		change := 2.41
		mcap := 987654321.0
		text := SubscriptionMessage(pair, 50000, &market.Info{
			Price:            50000,
			PercentChange24h: &change,
			MarketCap:        &mcap,
		})

		for _, want := range []string{"Scheduled update:", "btc\\-bitcoin", "50,000", "USD", "2\\.41%", "987,654,321"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected %q in message, got %q", want, text)
			}
		}
	})

	t.Run("missing metadata renders N/A", func(t *testing.T) {
		text := SubscriptionMessage(pair, 50000, &market.Info{Price: 50000})
		if !strings.Contains(text, "24h: N/A") || !strings.Contains(text, "Mkt cap: N/A") {
			t.Errorf("expected N/A placeholders, got %q", text)
		}
	})

	t.Run("no market context keeps the price line only", func(t *testing.T) {
		text := SubscriptionMessage(pair, 50000, nil)
		if strings.Contains(text, "24h:") {
			t.Errorf("expected bare price line, got %q", text)
		}
		if !strings.Contains(text, "50,000") {
			t.Errorf("expected price, got %q", text)
		}
	})
}

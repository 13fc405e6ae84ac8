package engine

import (
	"fmt"
	"strings"

	"github.com/hatem4830/cryptopulse/internal/market"
	"github.com/hatem4830/cryptopulse/internal/types"
	"github.com/hatem4830/cryptopulse/lib/helpers"
)

// SubscriptionMessage formats a scheduled price update in MarkdownV2.
func SubscriptionMessage(p Pair, price float64, info *market.Info) string {
	return "Scheduled update:\n" + priceLine(p.CoinID, p.Currency, price, info)
}

// AlertMessage formats a triggered alert in MarkdownV2.
func AlertMessage(a types.Alert, price float64, info *market.Info) string {
	return fmt.Sprintf(
		"🚨 *Alert triggered for %s* \\(%s\\)\nCondition: %s %s\nCurrent: %s\n\n%s",
		helpers.EscapeMarkdownV2(a.CoinID),
		strings.ToUpper(a.Currency),
		a.Direction,
		helpers.FormatPrice(a.TargetPrice, true),
		helpers.FormatPrice(price, true),
		priceLine(a.CoinID, a.Currency, price, info),
	)
}

// priceLine renders the shared market context line: price, then 24h change
// and market cap when the provider has them.
func priceLine(coinID, currency string, price float64, info *market.Info) string {
	line := fmt.Sprintf("*%s*: %s %s",
		helpers.EscapeMarkdownV2(coinID),
		helpers.FormatPrice(price, true),
		strings.ToUpper(currency),
	)

	if info == nil {
		return line
	}

	change := "N/A"
	if info.PercentChange24h != nil {
		change = helpers.EscapeMarkdownV2(helpers.FormatPercent(*info.PercentChange24h))
	}
	mcap := "N/A"
	if info.MarketCap != nil {
		mcap = "$" + helpers.EscapeMarkdownV2(helpers.FormatMarketCap(*info.MarketCap))
	}

	return fmt.Sprintf("%s\n24h: %s / Mkt cap: %s", line, change, mcap)
}

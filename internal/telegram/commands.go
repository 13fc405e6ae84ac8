package telegram

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hatem4830/cryptopulse/internal/types"
	"github.com/hatem4830/cryptopulse/lib/helpers"
	"github.com/hatem4830/cryptopulse/lib/translation"
)

// minUpdateInterval is the smallest per-subscription interval a chat may set.
const minUpdateInterval = 10

func helpText() string {
	return helpers.EscapeMarkdownV2(translation.Translate(
		"Welcome! I track crypto prices for you.\n\n" +
			"Commands:\n" +
			"/price <coin> [currency] - Current price (e.g. /price btc usd)\n" +
			"/coins [n] - Top N coins by market cap\n" +
			"/chart <coin> - 7 day price chart\n" +
			"/subscribe <coin> [interval_seconds] [currency] - Periodic updates\n" +
			"/unsubscribe <coin> - Stop updates\n" +
			"/list - Your subscriptions\n" +
			"/alert <coin> <above|below> <price> [currency] - Price alert\n" +
			"/alerts - Your alerts\n" +
			"/delalert <alert_id> - Delete an alert\n"))
}

// handleSubscribe creates or updates a periodic update for the chat. The coin
// must resolve and have a quote in the requested currency before anything is
// stored.
func (b *Bot) handleSubscribe(chatID int64, args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate(
			"Usage: /subscribe <coin> [interval_seconds] [currency]"))
	}

	interval := b.Config.DefaultUpdateInterval
	if len(fields) > 1 {
		if parsed, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			interval = parsed
		}
		if interval < minUpdateInterval {
			interval = minUpdateInterval
		}
	}
	currency := "usd"
	if len(fields) > 2 {
		currency = strings.ToLower(fields[2])
	}

	coin, err := b.market.Resolve(strings.ToLower(fields[0]))
	if err != nil {
		log.Debugf("subscribe: %v", err)
		return translation.Translate("Coin not found")
	}

	price, ok := b.market.Price(*coin.ID, currency)
	if !ok {
		return helpers.EscapeMarkdownV2(fmt.Sprintf(
			translation.Translate("Could not find a %s quote for %s."),
			strings.ToUpper(currency), *coin.Name))
	}

	if err := b.db.UpsertSubscription(chatID, *coin.ID, currency, interval); err != nil {
		log.Errorf("could not save subscription: %v", err)
		return translation.Translate("Failed to save subscription")
	}

	return fmt.Sprintf(
		"Subscribed to *%s* updates every %ds \\(%s\\)\\. Current: %s %s",
		helpers.EscapeMarkdownV2(*coin.Name),
		interval,
		strings.ToUpper(currency),
		helpers.FormatPrice(price, true),
		strings.ToUpper(currency),
	)
}

func (b *Bot) handleUnsubscribe(chatID int64, args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /unsubscribe <coin>"))
	}

	coinID := strings.ToLower(fields[0])
	if coin, err := b.market.Resolve(coinID); err == nil {
		coinID = *coin.ID
	}

	deleted, err := b.db.DeleteSubscriptions(chatID, coinID)
	if err != nil {
		log.Errorf("could not delete subscriptions: %v", err)
		return translation.Translate("Failed to delete subscription")
	}
	if deleted == 0 {
		return helpers.EscapeMarkdownV2(fmt.Sprintf(
			translation.Translate("You were not subscribed to %s."), coinID))
	}
	return helpers.EscapeMarkdownV2(fmt.Sprintf(
		translation.Translate("Unsubscribed from %s."), coinID))
}

func (b *Bot) handleList(chatID int64) string {
	subs, err := b.db.SubscriptionsByChat(chatID)
	if err != nil {
		log.Errorf("could not list subscriptions: %v", err)
		return translation.Translate("Failed to fetch subscriptions")
	}
	if len(subs) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("No subscriptions."))
	}

	var list strings.Builder
	list.WriteString(helpers.EscapeMarkdownV2(translation.Translate("Subscriptions:")) + "\n")
	for _, s := range subs {
		list.WriteString(fmt.Sprintf("▫️ %s every %ds \\(%s\\)\n",
			helpers.EscapeMarkdownV2(s.CoinID), s.IntervalSeconds, strings.ToUpper(s.Currency)))
	}
	return list.String()
}

// handleAlert creates a standing threshold alert after validating direction,
// target and that the coin actually quotes in the currency.
func (b *Bot) handleAlert(chatID int64, args string) string {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return helpers.EscapeMarkdownV2(translation.Translate(
			"Usage: /alert <coin> <above|below> <price> [currency]"))
	}

	direction := strings.ToLower(fields[1])
	if direction != types.DirectionAbove && direction != types.DirectionBelow {
		return helpers.EscapeMarkdownV2(translation.Translate("Direction must be 'above' or 'below'"))
	}

	target, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || math.IsNaN(target) || math.IsInf(target, 0) {
		return helpers.EscapeMarkdownV2(translation.Translate("Invalid price value"))
	}

	currency := "usd"
	if len(fields) > 3 {
		currency = strings.ToLower(fields[3])
	}

	coin, err := b.market.Resolve(strings.ToLower(fields[0]))
	if err != nil {
		log.Debugf("alert: %v", err)
		return translation.Translate("Coin not found")
	}
	if _, ok := b.market.Price(*coin.ID, currency); !ok {
		return helpers.EscapeMarkdownV2(fmt.Sprintf(
			translation.Translate("Could not find a %s quote for %s."),
			strings.ToUpper(currency), *coin.Name))
	}

	id, err := b.db.InsertAlert(chatID, *coin.ID, direction, target, currency)
	if err != nil {
		log.Errorf("could not save alert: %v", err)
		return translation.Translate("Failed to save alert")
	}

	return fmt.Sprintf(
		"Alert \\#%d created: *%s* %s %s %s",
		id,
		helpers.EscapeMarkdownV2(*coin.Name),
		direction,
		helpers.FormatPrice(target, true),
		strings.ToUpper(currency),
	)
}

func (b *Bot) handleAlerts(chatID int64) string {
	alerts, err := b.db.AlertsByChat(chatID)
	if err != nil {
		log.Errorf("could not list alerts: %v", err)
		return translation.Translate("Failed to fetch alerts")
	}
	if len(alerts) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("No alerts."))
	}

	var list strings.Builder
	list.WriteString(helpers.EscapeMarkdownV2(translation.Translate("Your alerts:")) + "\n")
	for _, a := range alerts {
		status := "enabled"
		if !a.Enabled {
			status = "disabled"
		}
		list.WriteString(fmt.Sprintf("\\#%d %s %s %s %s \\(%s\\)\n",
			a.ID,
			helpers.EscapeMarkdownV2(a.CoinID),
			a.Direction,
			helpers.FormatPrice(a.TargetPrice, true),
			strings.ToUpper(a.Currency),
			status))
	}
	return list.String()
}

func (b *Bot) handleDelAlert(chatID int64, args string) string {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /delalert <alert_id>"))
	}

	deleted, err := b.db.DeleteAlert(id, chatID)
	if err != nil {
		log.Errorf("could not delete alert: %v", err)
		return translation.Translate("Failed to delete alert")
	}
	if !deleted {
		return fmt.Sprintf(translation.Translate("Alert \\#%d not found\\."), id)
	}
	return fmt.Sprintf(translation.Translate("Alert \\#%d deleted\\."), id)
}

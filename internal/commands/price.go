package commands

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hatem4830/cryptopulse/internal/market"
	"github.com/hatem4830/cryptopulse/lib/helpers"
)

// Price handles /price <coin> [currency].
func Price(m *market.Client, argument string) (string, error) {
	log.Debugf("processing command /price with argument: %s", argument)

	query, currency := splitQuery(argument)
	if query == "" {
		return "", errors.New("command /price: missing coin argument")
	}

	coin, err := m.Resolve(query)
	if err != nil {
		return "", errors.Wrap(err, "command /price")
	}

	info, ok := m.Market(*coin.ID, currency)
	if !ok {
		return fmt.Sprintf(
			"No current price for [%s](https://coinpaprika.com/coin/%s) in %s\\.",
			helpers.EscapeMarkdownV2(*coin.Name), *coin.ID, strings.ToUpper(currency)), nil
	}

	text := fmt.Sprintf(
		"*%s price:*\n\n▫️`%s` *%s*",
		helpers.EscapeMarkdownV2(fmt.Sprintf("%s (%s)", *coin.Name, *coin.Symbol)),
		helpers.FormatPrice(info.Price, false),
		strings.ToUpper(currency),
	)
	if info.PercentChange24h != nil {
		text += fmt.Sprintf("\n24h: *%s*", helpers.EscapeMarkdownV2(helpers.FormatPercent(*info.PercentChange24h)))
	}
	if info.MarketCap != nil {
		text += fmt.Sprintf("\nMkt cap: *$%s*", helpers.EscapeMarkdownV2(helpers.FormatMarketCap(*info.MarketCap)))
	}
	text += fmt.Sprintf("\n\n[See %s on CoinPaprika 🌶](https://coinpaprika.com/coin/%s)",
		helpers.EscapeMarkdownV2(*coin.Name), *coin.ID)

	return text, nil
}

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hatem4830/cryptopulse/internal/market"
	"github.com/hatem4830/cryptopulse/lib/helpers"
)

// TopCoins handles /coins [n]: the top-N coins by rank with USD prices.
func TopCoins(m *market.Client, argument string) (string, error) {
	n := 10
	if arg := strings.TrimSpace(argument); arg != "" {
		if parsed, err := strconv.Atoi(arg); err == nil {
			n = parsed
		}
	}
	if n < 1 {
		n = 1
	}
	if n > 50 {
		n = 50
	}

	log.Debugf("processing command /coins with n=%d", n)

	tickers, err := m.TopTickers(n, "usd")
	if err != nil {
		return "", errors.Wrap(err, "command /coins")
	}
	if len(tickers) == 0 {
		return "", errors.New("command /coins: empty ticker list")
	}

	var b strings.Builder
	b.WriteString("*Top coins by market cap:*\n")
	for i, t := range tickers {
		if t.Name == nil || t.Symbol == nil || t.Quotes == nil {
			continue
		}
		quote, ok := t.Quotes["USD"]
		if !ok || quote.Price == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("%d\\. %s: `$%s`\n",
			i+1,
			helpers.EscapeMarkdownV2(fmt.Sprintf("%s (%s)", *t.Name, *t.Symbol)),
			helpers.FormatPrice(*quote.Price, false),
		))
	}

	return b.String(), nil
}

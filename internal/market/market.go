// Package market wraps the CoinPaprika API behind the small quote surface the
// rest of the bot needs. Absence of data — unknown coin, unsupported currency,
// request failure — is reported as a plain false, never as an error: quote
// gaps are a normal outcome for callers.
package market

import (
	"strings"
	"time"

	"github.com/coinpaprika/coinpaprika-api-go-client/v2/coinpaprika"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Info is the market context attached to notifications.
type Info struct {
	Price            float64
	PercentChange24h *float64
	MarketCap        *float64
}

// Client is a CoinPaprika-backed quote source.
type Client struct {
	paprika *coinpaprika.Client
}

// New creates a quote client. An empty apiProKey uses the free API tier.
func New(apiProKey string) *Client {
	if apiProKey != "" {
		return &Client{paprika: coinpaprika.NewClient(nil, coinpaprika.WithAPIKey(apiProKey))}
	}
	return &Client{paprika: coinpaprika.NewClient(nil)}
}

// Price returns the current price of a coin in the given currency. The second
// return is false when no quote is available.
func (c *Client) Price(coinID, currency string) (float64, bool) {
	quote, ok := c.quote(coinID, currency)
	if !ok || quote.Price == nil {
		return 0, false
	}
	return *quote.Price, true
}

// Market returns price plus 24h change and market cap when the provider has
// them. The second return is false when no quote is available at all.
func (c *Client) Market(coinID, currency string) (*Info, bool) {
	quote, ok := c.quote(coinID, currency)
	if !ok || quote.Price == nil {
		return nil, false
	}

	return &Info{
		Price:            *quote.Price,
		PercentChange24h: quote.PercentChange24h,
		MarketCap:        quote.MarketCap,
	}, true
}

func (c *Client) quote(coinID, currency string) (*coinpaprika.Quote, bool) {
	cur := strings.ToUpper(currency)

	ticker, err := c.paprika.Tickers.GetByID(coinID, &coinpaprika.TickersOptions{Quotes: cur})
	if err != nil {
		log.Debugf("quote fetch failed for %s/%s: %v", coinID, cur, err)
		return nil, false
	}
	if ticker == nil || ticker.Quotes == nil {
		return nil, false
	}

	quote, ok := ticker.Quotes[cur]
	if !ok {
		return nil, false
	}
	return &quote, true
}

// Resolve finds the best coin match for a user query (symbol first, then
// name), so commands can validate a coin before storing records against it.
func (c *Client) Resolve(query string) (*coinpaprika.Coin, error) {
	searchOpts := &coinpaprika.SearchOptions{
		Query:      query,
		Categories: "currencies",
		Modifier:   "symbol_search",
	}
	result, err := c.paprika.Search.Search(searchOpts)
	if err != nil || len(result.Currencies) == 0 {
		log.Debugf("no symbol match for %q, trying name search", query)
		searchOpts = &coinpaprika.SearchOptions{Query: query, Categories: "currencies"}
		result, err = c.paprika.Search.Search(searchOpts)
		if err != nil || len(result.Currencies) == 0 {
			return nil, errors.Errorf("invalid coin name, ticker, or symbol: %s", query)
		}
	}

	return result.Currencies[0], nil
}

// TopTickers lists the n highest-ranked coins with quotes in the currency.
func (c *Client) TopTickers(n int, currency string) ([]*coinpaprika.Ticker, error) {
	tickers, err := c.paprika.Tickers.List(&coinpaprika.TickersOptions{Quotes: strings.ToUpper(currency)})
	if err != nil {
		return nil, errors.Wrap(err, "could not list tickers")
	}
	if len(tickers) > n {
		tickers = tickers[:n]
	}
	return tickers, nil
}

// Historical returns up to a week of hourly USD prices for charting.
func (c *Client) Historical(coinID string) ([]*coinpaprika.TickerHistorical, error) {
	opts := &coinpaprika.TickersHistoricalOptions{
		Quote:    "USD",
		Limit:    168,
		Interval: "1h",
		Start:    time.Now().AddDate(0, 0, -7),
	}
	tickers, err := c.paprika.Tickers.GetHistoricalTickersByID(coinID, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch historical tickers for %s", coinID)
	}
	return tickers, nil
}

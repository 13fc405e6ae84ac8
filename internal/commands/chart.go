package commands

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/hatem4830/cryptopulse/internal/market"
	"github.com/hatem4830/cryptopulse/lib/helpers"
)

// Chart handles /chart <coin>: a 7-day USD price chart as PNG plus a caption.
// A nil chart with a non-empty caption means the coin has no tradable data.
func Chart(m *market.Client, argument string) ([]byte, string, error) {
	log.Debugf("processing command /chart with argument: %s", argument)

	if item, found := cacheGet(argument); found {
		log.Debugf("returning cached chart for %s", argument)
		return item.ChartData, item.Caption, nil
	}

	coin, err := m.Resolve(argument)
	if err != nil {
		return nil, "", errors.Wrap(err, "command /chart")
	}

	ticks, err := m.Historical(*coin.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "command /chart")
	}
	if len(ticks) == 0 {
		return nil, fmt.Sprintf(
			"[%s](https://coinpaprika.com/coin/%s) is not actively traded and has no price history\\.",
			helpers.EscapeMarkdownV2(*coin.Name), *coin.ID), nil
	}

	var times []time.Time
	var prices []float64
	for _, t := range ticks {
		if t.Timestamp == nil || t.Price == nil {
			continue
		}
		times = append(times, *t.Timestamp)
		prices = append(prices, *t.Price)
	}
	if len(prices) == 0 {
		return nil, fmt.Sprintf(
			"[%s](https://coinpaprika.com/coin/%s) is not actively traded and has no price history\\.",
			helpers.EscapeMarkdownV2(*coin.Name), *coin.ID), nil
	}

	data, err := renderChart(*coin.Name, *coin.Symbol, times, prices)
	if err != nil {
		return nil, "", errors.Wrap(err, "command /chart")
	}

	caption := fmt.Sprintf(
		"%s 7 day price chart / [%s on CoinPaprika 🌶](https://coinpaprika.com/coin/%s)",
		helpers.EscapeMarkdownV2(*coin.Symbol),
		helpers.EscapeMarkdownV2(*coin.Name),
		*coin.ID,
	)

	cacheSet(argument, data, caption, 5*time.Minute)

	return data, caption, nil
}

func renderChart(name, symbol string, times []time.Time, prices []float64) ([]byte, error) {
	lineColor := drawing.Color{R: 0, G: 122, B: 255, A: 255}

	graph := chart.Chart{
		Width:  1200,
		Height: 400,
		Title:  fmt.Sprintf("%s (%s) 7 days - CoinPaprika", name, symbol),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02-Jan"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return helpers.FormatPrice(f, false)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: symbol,
				Style: chart.Style{
					StrokeColor: lineColor,
					FillColor:   lineColor.WithAlpha(25),
				},
				XValues: times,
				YValues: prices,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "could not render chart")
	}
	return buf.Bytes(), nil
}

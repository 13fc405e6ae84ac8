package commands

import (
	"time"
)

// Rendered charts are cached briefly so repeated requests in busy chats do
// not re-hit the historical tickers endpoint.
type cacheItem struct {
	ChartData  []byte
	Caption    string
	Expiration time.Time
}

var chartCache = make(map[string]*cacheItem)

func cacheGet(key string) (*cacheItem, bool) {
	if item, found := chartCache[key]; found && time.Now().Before(item.Expiration) {
		return item, true
	}
	return nil, false
}

func cacheSet(key string, chartData []byte, caption string, duration time.Duration) {
	chartCache[key] = &cacheItem{
		ChartData:  chartData,
		Caption:    caption,
		Expiration: time.Now().Add(duration),
	}
}

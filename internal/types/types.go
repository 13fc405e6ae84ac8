package types

// Alert directions. Stored as-is in the alerts table.
const (
	DirectionAbove = "above"
	DirectionBelow = "below"
)

// Subscription is a standing request for periodic price updates on one
// (chat, coin, currency) triple. LastSent is epoch seconds, 0 = never sent.
type Subscription struct {
	ID              int64  `db:"id" json:"id"`
	ChatID          int64  `db:"chat_id" json:"chat_id"`
	CoinID          string `db:"coin_id" json:"coin_id"`
	Currency        string `db:"currency" json:"currency"`
	IntervalSeconds int64  `db:"interval_seconds" json:"interval_seconds"`
	LastSent        int64  `db:"last_sent" json:"last_sent"`
}

// Alert is a standing threshold condition on a (coin, currency) pair.
// LastTriggeredAt is epoch seconds, 0 = never fired.
type Alert struct {
	ID              int64   `db:"id" json:"id"`
	ChatID          int64   `db:"chat_id" json:"chat_id"`
	CoinID          string  `db:"coin_id" json:"coin_id"`
	Direction       string  `db:"direction" json:"direction"`
	TargetPrice     float64 `db:"target_price" json:"target_price"`
	Currency        string  `db:"currency" json:"currency"`
	Enabled         bool    `db:"enabled" json:"enabled"`
	CreatedAt       string  `db:"created_at" json:"created_at"`
	LastTriggeredAt int64   `db:"last_triggered_at" json:"last_triggered_at"`
}

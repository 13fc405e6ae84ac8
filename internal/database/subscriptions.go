package database

import (
	"github.com/pkg/errors"

	"github.com/hatem4830/cryptopulse/internal/types"
)

// UpsertSubscription creates a subscription for the (chat, coin, currency)
// triple or updates the interval of an existing one. There is deliberately no
// UNIQUE constraint; the upsert keeps at most one live row per triple.
func (d *DB) UpsertSubscription(chatID int64, coinID, currency string, intervalSeconds int64) error {
	res, err := d.conn.Exec(
		`UPDATE subscriptions SET interval_seconds = ? WHERE chat_id = ? AND coin_id = ? AND currency = ?`,
		intervalSeconds, chatID, coinID, currency,
	)
	if err != nil {
		return errors.Wrap(err, "could not update subscription")
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = d.conn.Exec(
		`INSERT INTO subscriptions (chat_id, coin_id, currency, interval_seconds) VALUES (?, ?, ?, ?)`,
		chatID, coinID, currency, intervalSeconds,
	)
	return errors.Wrap(err, "could not insert subscription")
}

// ListSubscriptions returns every subscription, for the scheduler's due check.
func (d *DB) ListSubscriptions() ([]types.Subscription, error) {
	var subs []types.Subscription
	err := d.conn.Select(&subs,
		`SELECT id, chat_id, coin_id, currency, interval_seconds, last_sent FROM subscriptions`)
	return subs, errors.Wrap(err, "could not list subscriptions")
}

// SubscriptionsByChat returns all subscriptions owned by one chat.
func (d *DB) SubscriptionsByChat(chatID int64) ([]types.Subscription, error) {
	var subs []types.Subscription
	err := d.conn.Select(&subs,
		`SELECT id, chat_id, coin_id, currency, interval_seconds, last_sent FROM subscriptions WHERE chat_id = ?`,
		chatID)
	return subs, errors.Wrapf(err, "could not list subscriptions for chat %d", chatID)
}

// DeleteSubscriptions removes every subscription a chat holds on a coin and
// reports how many rows went away.
func (d *DB) DeleteSubscriptions(chatID int64, coinID string) (int64, error) {
	res, err := d.conn.Exec(`DELETE FROM subscriptions WHERE chat_id = ? AND coin_id = ?`, chatID, coinID)
	if err != nil {
		return 0, errors.Wrap(err, "could not delete subscriptions")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// MarkSubscriptionSent advances last_sent after a dispatch. Idempotent.
func (d *DB) MarkSubscriptionSent(id int64, sentAt int64) error {
	_, err := d.conn.Exec(`UPDATE subscriptions SET last_sent = ? WHERE id = ?`, sentAt, id)
	return errors.Wrapf(err, "could not mark subscription %d sent", id)
}

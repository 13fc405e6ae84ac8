package database

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hatem4830/cryptopulse/internal/types"
)

// InsertAlert saves a new enabled alert and returns its id.
func (d *DB) InsertAlert(chatID int64, coinID, direction string, targetPrice float64, currency string) (int64, error) {
	res, err := d.conn.Exec(
		`INSERT INTO alerts (chat_id, coin_id, direction, target_price, currency) VALUES (?, ?, ?, ?, ?)`,
		chatID, coinID, direction, targetPrice, currency,
	)
	if err != nil {
		return 0, errors.Wrap(err, "could not insert alert")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "could not read alert id")
	}

	log.Debugf("alert %d saved: chat=%d %s %s %g %s", id, chatID, coinID, direction, targetPrice, currency)
	return id, nil
}

// ListEnabledAlerts returns every enabled alert, for the scheduler. Disabled
// alerts never reach the evaluator.
func (d *DB) ListEnabledAlerts() ([]types.Alert, error) {
	var alerts []types.Alert
	err := d.conn.Select(&alerts,
		`SELECT id, chat_id, coin_id, direction, target_price, currency, enabled, created_at, last_triggered_at
		 FROM alerts WHERE enabled = 1`)
	return alerts, errors.Wrap(err, "could not list enabled alerts")
}

// AlertsByChat returns all alerts owned by one chat, enabled or not.
func (d *DB) AlertsByChat(chatID int64) ([]types.Alert, error) {
	var alerts []types.Alert
	err := d.conn.Select(&alerts,
		`SELECT id, chat_id, coin_id, direction, target_price, currency, enabled, created_at, last_triggered_at
		 FROM alerts WHERE chat_id = ?`, chatID)
	return alerts, errors.Wrapf(err, "could not list alerts for chat %d", chatID)
}

// DeleteAlert removes an alert if it belongs to the chat.
func (d *DB) DeleteAlert(id, chatID int64) (bool, error) {
	res, err := d.conn.Exec(`DELETE FROM alerts WHERE id = ? AND chat_id = ?`, id, chatID)
	if err != nil {
		return false, errors.Wrapf(err, "could not delete alert %d", id)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// MarkAlertTriggered records when the alert last fired. Idempotent.
func (d *DB) MarkAlertTriggered(id int64, triggeredAt int64) error {
	_, err := d.conn.Exec(`UPDATE alerts SET last_triggered_at = ? WHERE id = ?`, triggeredAt, id)
	return errors.Wrapf(err, "could not mark alert %d triggered", id)
}

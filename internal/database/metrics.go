package database

import (
	"database/sql"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SaveMetric persists a counter value so prometheus metrics survive restarts.
func (d *DB) SaveMetric(name string, value float64) error {
	_, err := d.conn.Exec(
		`INSERT OR REPLACE INTO metrics (metric_name, metric_value) VALUES (?, ?)`,
		name, value,
	)
	return errors.Wrapf(err, "could not save metric %s", name)
}

// GetMetric loads a persisted counter value, defaulting to 0 when absent.
func (d *DB) GetMetric(name string) (float64, error) {
	var value float64
	err := d.conn.Get(&value, `SELECT metric_value FROM metrics WHERE metric_name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debugf("metric %s not found, defaulting to 0", name)
		return 0, nil
	}
	return value, errors.Wrapf(err, "could not get metric %s", name)
}

package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

// DB is the record store. It owns all persisted subscription, alert and
// metric state; callers never touch the schema directly.
type DB struct {
	conn *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS subscriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chat_id INTEGER NOT NULL,
	coin_id TEXT NOT NULL,
	currency TEXT NOT NULL DEFAULT 'usd',
	interval_seconds INTEGER NOT NULL DEFAULT 300,
	last_sent INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS alerts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chat_id INTEGER NOT NULL,
	coin_id TEXT NOT NULL,
	direction TEXT NOT NULL,
	target_price REAL NOT NULL,
	currency TEXT NOT NULL DEFAULT 'usd',
	enabled INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	last_triggered_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS metrics (
	metric_name TEXT NOT NULL PRIMARY KEY,
	metric_value REAL NOT NULL
);`

// Open connects to the sqlite database at path and creates the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "could not create schema")
	}

	log.Debugf("database initialized at %s", path)
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

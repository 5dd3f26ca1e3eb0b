// Package events provides the append-only log of reminder outcomes. It
// owns the notification table and never touches any other table.
package events

import (
	"context"
	"database/sql"
	"time"

	"github.com/Nirav-vruttitech/taskreminder/pkg/storage"
	"github.com/rs/zerolog/log"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS notification (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	response_status INTEGER NOT NULL CHECK(response_status IN (0, 1)),
	notification_time TEXT NOT NULL
);`

// Response statuses recorded for a fired reminder.
const (
	StatusDeclined = 0
	StatusAccepted = 1
)

// ReminderEvent is one recorded response to a fired reminder.
// NotificationTime is when the response was recorded, not the original
// fire time.
type ReminderEvent struct {
	ID               int64
	ResponseStatus   int
	NotificationTime time.Time
}

// Log appends and lists reminder outcome rows. Rows are immutable once
// written; Clear is the only removal and there is no update path.
type Log struct {
	engine *storage.Engine
}

// NewLog creates a Log on the given engine.
func NewLog(engine *storage.Engine) *Log {
	return &Log{engine: engine}
}

// CreateSchema ensures the notification table exists. Safe to call
// repeatedly.
func (l *Log) CreateSchema(ctx context.Context) {
	l.engine.EnsureSchema(ctx, createTableSQL)
}

// ListAll returns every recorded response in natural row order. A failed
// query is downgraded to an empty list.
func (l *Log) ListAll(ctx context.Context) []ReminderEvent {
	entries := []ReminderEvent{}

	err := l.engine.Query(
		ctx,
		`SELECT id, response_status, notification_time FROM notification;`,
		func(rows *sql.Rows) error {
			var entry ReminderEvent

			var recorded string

			if err := rows.Scan(&entry.ID, &entry.ResponseStatus, &recorded); err != nil {
				return err
			}

			at, err := time.Parse(time.RFC3339, recorded)
			if err != nil {
				log.Warn().Str("notification_time", recorded).Msg("unparseable notification time")
			}

			entry.NotificationTime = at
			entries = append(entries, entry)

			return nil
		},
	)
	if err != nil {
		log.Error().Err(err).Msg("error fetching reminder events")

		return []ReminderEvent{}
	}

	return entries
}

// Record appends one response row. A status outside {0,1} never reaches
// storage; the table's check constraint backs the same rule.
func (l *Log) Record(ctx context.Context, status int, at time.Time) {
	if status != StatusDeclined && status != StatusAccepted {
		log.Error().Int("status", status).Msg("response status must be 0 or 1")

		return
	}

	_, err := l.engine.Execute(
		ctx,
		`INSERT INTO notification (response_status, notification_time) VALUES (?, ?);`,
		status, at.Format(time.RFC3339),
	)
	if err != nil {
		log.Error().Err(err).Int("status", status).Msg("error recording reminder response")
	}
}

// Clear deletes the single row matching id, letting the user dismiss a
// logged entry. A no-op if the row does not exist.
func (l *Log) Clear(ctx context.Context, id int64) {
	affected, err := l.engine.Execute(ctx, `DELETE FROM notification WHERE id = ?;`, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("error clearing reminder event")

		return
	}

	if affected == 0 {
		log.Debug().Int64("id", id).Msg("no reminder event found to clear")
	}
}

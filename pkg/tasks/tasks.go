// Package tasks provides the repository for to-do task records. It owns
// the Tasks table and never touches any other table.
package tasks

import (
	"context"
	"database/sql"

	"github.com/Nirav-vruttitech/taskreminder/pkg/storage"
	"github.com/rs/zerolog/log"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS Tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT,
	description TEXT,
	completed INTEGER DEFAULT 0
);`

// Task is a single to-do item. Completed is stored as 0 or 1.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   int
}

// Repository runs all task operations against the storage engine.
// Statement failures are logged and downgraded here: reads come back
// empty and writes become no-ops, so a caller cannot distinguish "no
// matching data" from "an error occurred".
type Repository struct {
	engine *storage.Engine
}

// NewRepository creates a Repository on the given engine.
func NewRepository(engine *storage.Engine) *Repository {
	return &Repository{engine: engine}
}

// CreateSchema ensures the Tasks table exists. Safe to call repeatedly.
func (r *Repository) CreateSchema(ctx context.Context) {
	r.engine.EnsureSchema(ctx, createTableSQL)
}

// ListAll returns every task in the store's natural row order, which
// follows insertion absent schema changes. Callers must not depend on
// anything beyond the order being consistent between calls.
func (r *Repository) ListAll(ctx context.Context) []Task {
	tasks := []Task{}

	err := r.engine.Query(ctx, `SELECT id, title, description, completed FROM Tasks;`, func(rows *sql.Rows) error {
		var task Task

		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Completed); err != nil {
			return err
		}

		tasks = append(tasks, task)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("error fetching tasks")

		return []Task{}
	}

	return tasks
}

// Add inserts a new task with completed=0. Title emptiness is enforced
// by the caller-facing layer; the repository stores whatever it is given.
func (r *Repository) Add(ctx context.Context, title, description string) {
	_, err := r.engine.Execute(ctx, `INSERT INTO Tasks (title, description) VALUES (?, ?);`, title, description)
	if err != nil {
		log.Error().Err(err).Str("title", title).Msg("error adding task")
	}
}

// Update overwrites the title and description of the task matching id.
// A missing id affects zero rows and is not an error.
func (r *Repository) Update(ctx context.Context, id int64, title, description string) {
	affected, err := r.engine.Execute(
		ctx,
		`UPDATE Tasks SET title = ?, description = ? WHERE id = ?;`,
		title, description, id,
	)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("error updating task")

		return
	}

	if affected == 0 {
		log.Debug().Int64("id", id).Msg("no task found to update")
	}
}

// Delete removes the task matching id; a no-op if it does not exist.
func (r *Repository) Delete(ctx context.Context, id int64) {
	affected, err := r.engine.Execute(ctx, `DELETE FROM Tasks WHERE id = ?;`, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("error deleting task")

		return
	}

	if affected == 0 {
		log.Debug().Int64("id", id).Msg("no task found to delete")
	}
}

// ToggleCompletion flips the stored completed flag to the logical
// negation of currentlyCompleted. The caller passes the task's current
// state and the store writes the opposite; the checkbox press sends the
// pre-toggle value. Keep this direction: passing the desired new state
// inverts every toggle.
func (r *Repository) ToggleCompletion(ctx context.Context, id int64, currentlyCompleted bool) {
	next := 1
	if currentlyCompleted {
		next = 0
	}

	affected, err := r.engine.Execute(ctx, `UPDATE Tasks SET completed = ? WHERE id = ?;`, next, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("error toggling task completion")

		return
	}

	if affected == 0 {
		log.Error().Int64("id", id).Msg("no task found with the given id")
	}
}

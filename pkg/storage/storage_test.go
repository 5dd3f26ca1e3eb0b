package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/Nirav-vruttitech/taskreminder/pkg/storage"
	"github.com/stretchr/testify/assert"
)

const testDDL = `CREATE TABLE IF NOT EXISTS things (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT
);`

func getEngine(t *testing.T, assert *assert.Assertions) *storage.Engine {
	t.Helper()

	tempFile, err := os.CreateTemp("", "storage_test_*.sqlite")
	assert.Nil(err)

	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	engine, err := storage.Open(context.Background(), tempFile.Name())
	assert.NotNil(engine)
	assert.Nil(err)

	t.Cleanup(func() { engine.Close() })

	return engine
}

func TestOpenBadPath(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// a path whose parent is a regular file can never be created
	tempFile, err := os.CreateTemp("", "storage_test_notadir")
	assert.Nil(err)

	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	engine, err := storage.Open(context.Background(), tempFile.Name()+"/test.sqlite")
	assert.Nil(engine)
	assert.NotNil(err)
	assert.True(errors.Is(err, storage.ErrUnavailable))
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	engine := getEngine(t, assert)

	engine.EnsureSchema(ctx, testDDL)
	engine.EnsureSchema(ctx, testDDL)

	affected, err := engine.Execute(ctx, `INSERT INTO things (name) VALUES (?);`, "widget")
	assert.Nil(err)
	assert.Equal(int64(1), affected)
}

func TestEnsureSchemaSwallowsBadDDL(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	engine := getEngine(t, assert)

	// a broken DDL statement must not panic or prevent later calls
	engine.EnsureSchema(ctx, `CREATE BOGUS`)

	// the table never came into existence, so reads against it fail
	err := engine.Query(ctx, `SELECT id FROM things;`, func(rows *sql.Rows) error {
		return nil
	})
	assert.NotNil(err)
}

func TestExecuteAffectedRows(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	engine := getEngine(t, assert)
	engine.EnsureSchema(ctx, testDDL)

	affected, err := engine.Execute(ctx, `INSERT INTO things (name) VALUES (?);`, "widget")
	assert.Nil(err)
	assert.Equal(int64(1), affected)

	affected, err = engine.Execute(ctx, `UPDATE things SET name = ? WHERE name = ?;`, "gadget", "widget")
	assert.Nil(err)
	assert.Equal(int64(1), affected)

	affected, err = engine.Execute(ctx, `UPDATE things SET name = ? WHERE name = ?;`, "gizmo", "no-such-thing")
	assert.Nil(err)
	assert.Equal(int64(0), affected)

	affected, err = engine.Execute(ctx, `DELETE FROM things WHERE name = ?;`, "no-such-thing")
	assert.Nil(err)
	assert.Equal(int64(0), affected)
}

func TestQueryDrainsAllRows(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	engine := getEngine(t, assert)
	engine.EnsureSchema(ctx, testDDL)

	for _, name := range []string{"one", "two", "three"} {
		_, err := engine.Execute(ctx, `INSERT INTO things (name) VALUES (?);`, name)
		assert.Nil(err)
	}

	names := []string{}

	err := engine.Query(ctx, `SELECT name FROM things;`, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}

		names = append(names, name)

		return nil
	})
	assert.Nil(err)
	assert.Equal([]string{"one", "two", "three"}, names)
}

func TestQueryPositionalParams(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	engine := getEngine(t, assert)
	engine.EnsureSchema(ctx, testDDL)

	for _, name := range []string{"keep", "drop"} {
		_, err := engine.Execute(ctx, `INSERT INTO things (name) VALUES (?);`, name)
		assert.Nil(err)
	}

	count := 0

	err := engine.Query(ctx, `SELECT name FROM things WHERE name = ?;`, func(rows *sql.Rows) error {
		count++

		return nil
	}, "keep")
	assert.Nil(err)
	assert.Equal(1, count)
}

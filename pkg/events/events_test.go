package events_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Nirav-vruttitech/taskreminder/pkg/events"
	"github.com/Nirav-vruttitech/taskreminder/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func getLog(t *testing.T, assert *assert.Assertions) *events.Log {
	t.Helper()

	tempFile, err := os.CreateTemp("", "events_test_*.sqlite")
	assert.Nil(err)

	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	engine, err := storage.Open(context.Background(), tempFile.Name())
	assert.NotNil(engine)
	assert.Nil(err)

	t.Cleanup(func() { engine.Close() })

	eventLog := events.NewLog(engine)
	eventLog.CreateSchema(context.Background())

	return eventLog
}

func TestRecordAndListAll(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	eventLog := getLog(t, assert)

	accepted := time.Now().Truncate(time.Second)
	declined := accepted.Add(time.Minute)

	eventLog.Record(ctx, events.StatusAccepted, accepted)
	eventLog.Record(ctx, events.StatusDeclined, declined)

	list := eventLog.ListAll(ctx)
	assert.Len(list, 2)

	assert.Equal(events.StatusAccepted, list[0].ResponseStatus)
	assert.Equal(accepted.Unix(), list[0].NotificationTime.Unix())

	assert.Equal(events.StatusDeclined, list[1].ResponseStatus)
	assert.Equal(declined.Unix(), list[1].NotificationTime.Unix())
}

func TestRecordRejectsInvalidStatus(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	eventLog := getLog(t, assert)

	eventLog.Record(ctx, 2, time.Now())
	eventLog.Record(ctx, -1, time.Now())

	assert.Empty(eventLog.ListAll(ctx))
}

func TestClear(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	eventLog := getLog(t, assert)

	eventLog.Record(ctx, events.StatusAccepted, time.Now())
	eventLog.Record(ctx, events.StatusDeclined, time.Now())

	list := eventLog.ListAll(ctx)
	assert.Len(list, 2)

	eventLog.Clear(ctx, list[0].ID)

	// only the cleared row is gone
	remaining := eventLog.ListAll(ctx)
	assert.Len(remaining, 1)
	assert.Equal(list[1].ID, remaining[0].ID)
	assert.Equal(events.StatusDeclined, remaining[0].ResponseStatus)
}

func TestClearMissingID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	eventLog := getLog(t, assert)

	eventLog.Record(ctx, events.StatusAccepted, time.Now())
	eventLog.Clear(ctx, 9999)

	assert.Len(eventLog.ListAll(ctx), 1)
}

package tasks_test

import (
	"context"
	"os"
	"testing"

	"github.com/Nirav-vruttitech/taskreminder/pkg/storage"
	"github.com/Nirav-vruttitech/taskreminder/pkg/tasks"
	"github.com/stretchr/testify/assert"
)

func getRepo(t *testing.T, assert *assert.Assertions) *tasks.Repository {
	t.Helper()

	tempFile, err := os.CreateTemp("", "tasks_test_*.sqlite")
	assert.Nil(err)

	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	engine, err := storage.Open(context.Background(), tempFile.Name())
	assert.NotNil(engine)
	assert.Nil(err)

	t.Cleanup(func() { engine.Close() })

	repo := tasks.NewRepository(engine)
	repo.CreateSchema(context.Background())

	return repo
}

func TestAddAndListAll(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)

	title := "do some work"
	description := "here are some details of what the work is or where to find out more"

	repo.Add(ctx, title, description)

	list := repo.ListAll(ctx)
	assert.Len(list, 1)
	assert.Equal(title, list[0].Title)
	assert.Equal(description, list[0].Description)
	assert.Equal(0, list[0].Completed)
}

func TestListAllInsertionOrder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		repo.Add(ctx, title, "")
	}

	list := repo.ListAll(ctx)
	assert.Len(list, 3)

	for i, title := range titles {
		assert.Equal(title, list[i].Title)
	}
}

func TestToggleCompletionRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)
	repo.Add(ctx, "do some work", "")

	id := repo.ListAll(ctx)[0].ID

	// the caller passes the current state and the store writes its complement
	repo.ToggleCompletion(ctx, id, false)
	assert.Equal(1, repo.ListAll(ctx)[0].Completed)

	repo.ToggleCompletion(ctx, id, true)
	assert.Equal(0, repo.ListAll(ctx)[0].Completed)
}

func TestToggleCompletionUsesCallerState(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)
	repo.Add(ctx, "do some work", "")

	id := repo.ListAll(ctx)[0].ID

	// passing stale "current" state writes its complement regardless of
	// what is actually stored: the operation is not a blind flip
	repo.ToggleCompletion(ctx, id, false)
	repo.ToggleCompletion(ctx, id, false)
	assert.Equal(1, repo.ListAll(ctx)[0].Completed)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)
	repo.Add(ctx, "old title", "old description")

	id := repo.ListAll(ctx)[0].ID

	repo.Update(ctx, id, "new title", "new description")

	list := repo.ListAll(ctx)
	assert.Len(list, 1)
	assert.Equal("new title", list[0].Title)
	assert.Equal("new description", list[0].Description)
}

func TestUpdateMissingID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)
	repo.Add(ctx, "only task", "")

	repo.Update(ctx, 9999, "new title", "new description")

	// nothing was updated and no row was created
	list := repo.ListAll(ctx)
	assert.Len(list, 1)
	assert.Equal("only task", list[0].Title)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)
	repo.Add(ctx, "doomed", "")
	repo.Add(ctx, "survivor", "")

	id := repo.ListAll(ctx)[0].ID

	repo.Delete(ctx, id)

	list := repo.ListAll(ctx)
	assert.Len(list, 1)
	assert.Equal("survivor", list[0].Title)

	for _, task := range list {
		assert.NotEqual(id, task.ID)
	}
}

func TestDeleteMissingID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	repo := getRepo(t, assert)
	repo.Add(ctx, "only task", "")

	repo.Delete(ctx, 9999)

	assert.Len(repo.ListAll(ctx), 1)
}

func TestListAllMissingTable(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	tempFile, err := os.CreateTemp("", "tasks_test_*.sqlite")
	assert.Nil(err)

	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	engine, err := storage.Open(ctx, tempFile.Name())
	assert.Nil(err)

	t.Cleanup(func() { engine.Close() })

	// no CreateSchema: the failed query is downgraded to an empty list
	repo := tasks.NewRepository(engine)
	assert.Empty(repo.ListAll(ctx))
}

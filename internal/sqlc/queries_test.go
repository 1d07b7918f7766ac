package sqlc

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"eventfinder/cmd/setup"
	"eventfinder/internal/events"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB creates a migrated sqlite database in a temp dir.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")

	require.NoError(t, setup.RunMigrations("", setup.ConnString(path)))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertEvents_GetEvent(t *testing.T) {
	q := New(openTestDB(t))
	ctx := context.Background()

	n, err := q.UpsertEvents(ctx, []events.Event{
		{ID: "a", Title: "First", EventType: "Music", Price: "$10", TicketURL: "https://tm/a"},
		{ID: "b", Title: "Second", EventType: "Sports"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := q.GetEvent(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "$10", got.Price)
	assert.Equal(t, "https://tm/a", got.TicketURL)
	assert.Empty(t, got.ImageURL)

	_, err = q.UpsertEvents(ctx, []events.Event{{ID: "a", Title: "First (moved)", EventType: "Music"}})
	require.NoError(t, err)

	got, err = q.GetEvent(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "First (moved)", got.Title)
	assert.Empty(t, got.Price)

	total, err := q.CountEvents(ctx, CountEventsParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	music := "Music"
	total, err = q.CountEvents(ctx, CountEventsParams{EventType: &music})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUpsertEvents_Empty(t *testing.T) {
	q := New(openTestDB(t))

	n, err := q.UpsertEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetEvent_NotFound(t *testing.T) {
	q := New(openTestDB(t))

	_, err := q.GetEvent(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceClassifications(t *testing.T) {
	db := openTestDB(t)
	q := New(db)
	ctx := context.Background()

	names, err := q.ListClassifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, q.WithTx(tx).ReplaceClassifications(ctx, []string{"Film", "Music", "Film"}))
	require.NoError(t, tx.Commit())

	names, err = q.ListClassifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Film", "Music"}, names)

	require.NoError(t, q.ReplaceClassifications(ctx, []string{"Sports"}))
	names, err = q.ListClassifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports"}, names)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	require.NoError(t, setup.RunMigrations("", setup.ConnString(path)))
	require.NoError(t, setup.RunMigrations("", setup.ConnString(path)))
}

func TestStore_SaveClassificationsAndArchive(t *testing.T) {
	store := NewStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.SaveClassifications(ctx, []string{"Music", "Film"}))
	names, err := store.ListClassifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Film"}, names)

	require.NoError(t, store.ArchiveEvents(ctx, []events.Event{{ID: "z", Title: "Zed"}}))
	got, err := store.GetEvent(ctx, "z")
	require.NoError(t, err)
	assert.Equal(t, "Zed", got.Title)
}

package portriver

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"eventfinder/cmd/setup"
	"eventfinder/internal/events"
	"eventfinder/internal/sqlc"

	_ "github.com/mattn/go-sqlite3"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.db")
	require.NoError(t, setup.RunMigrations("", setup.ConnString(path)))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestArchiveEventsWorker(t *testing.T) {
	db := openTestDB(t)
	queries := sqlc.New(db)
	worker := NewArchiveEventsWorker(queries, db)

	err := worker.Work(context.Background(), &river.Job[ArchiveEventsArgs]{
		JobRow: &rivertype.JobRow{ID: 1},
		Args: ArchiveEventsArgs{Events: []events.Event{
			{ID: "a", Title: "A"},
			{ID: "b", Title: "B"},
		}},
	})
	require.NoError(t, err)

	n, err := queries.CountEvents(context.Background(), sqlc.CountEventsParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestArchiveEventsWorker_Empty(t *testing.T) {
	worker := NewArchiveEventsWorker(nil, nil)

	err := worker.Work(context.Background(), &river.Job[ArchiveEventsArgs]{
		JobRow: &rivertype.JobRow{ID: 2},
	})
	assert.NoError(t, err)
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshClassifications(ctx context.Context) ([]string, error) {
	f.calls++
	return []string{"Music"}, f.err
}

func TestRefreshClassificationsWorker(t *testing.T) {
	refresher := &fakeRefresher{}
	worker := NewRefreshClassificationsWorker(refresher)

	job := &river.Job[RefreshClassificationsArgs]{JobRow: &rivertype.JobRow{ID: 3}}
	require.NoError(t, worker.Work(context.Background(), job))
	assert.Equal(t, 1, refresher.calls)

	refresher.err = errors.New("upstream down")
	assert.Error(t, worker.Work(context.Background(), job))
}

func TestPeriodicJobs(t *testing.T) {
	assert.Len(t, PeriodicJobs(time.Hour), 1)
	assert.Empty(t, PeriodicJobs(0))
}

func TestArgsKinds(t *testing.T) {
	assert.Equal(t, "events.archive", ArchiveEventsArgs{}.Kind())
	assert.Equal(t, "classifications.refresh", RefreshClassificationsArgs{}.Kind())
}

func TestRiverArchiver_Unattached(t *testing.T) {
	archiver := NewRiverArchiver()

	assert.NoError(t, archiver.ArchiveEvents(context.Background(), nil))
	assert.ErrorIs(t, archiver.ArchiveEvents(context.Background(), []events.Event{{ID: "a"}}), ErrNoClient)
}

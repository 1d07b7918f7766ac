package portriver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventfinder/internal/events"
	"eventfinder/internal/sqlc"

	"github.com/riverqueue/river"
)

type ArchiveEventsArgs struct {
	Events []events.Event `json:"events"`
}

func (ArchiveEventsArgs) Kind() string { return "events.archive" }

type ArchiveEventsWorker struct {
	river.WorkerDefaults[ArchiveEventsArgs]

	queries *sqlc.Queries
	db      *sql.DB
}

func NewArchiveEventsWorker(queries *sqlc.Queries, db *sql.DB) river.Worker[ArchiveEventsArgs] {
	return &ArchiveEventsWorker{
		queries: queries,
		db:      db,
	}
}

func (w *ArchiveEventsWorker) Work(ctx context.Context, job *river.Job[ArchiveEventsArgs]) error {
	if len(job.Args.Events) == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for job %d: %w", job.ID, err)
	}
	defer tx.Rollback()

	if _, err := w.queries.WithTx(tx).UpsertEvents(ctx, job.Args.Events); err != nil {
		return fmt.Errorf("failed to upsert %d events: %w", len(job.Args.Events), err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for job %d: %w", job.ID, err)
	}
	return nil
}

// ErrNoClient is returned when archiving before the river client is set.
var ErrNoClient = errors.New("river client not attached")

// RiverArchiver hands fetched events to ArchiveEventsWorker. The client is
// attached after construction because the workers it runs need the service
// that archives through it.
type RiverArchiver struct {
	client *river.Client[*sql.Tx]
}

func NewRiverArchiver() *RiverArchiver {
	return &RiverArchiver{}
}

func (a *RiverArchiver) Attach(client *river.Client[*sql.Tx]) {
	a.client = client
}

func (a *RiverArchiver) ArchiveEvents(ctx context.Context, items []events.Event) error {
	if len(items) == 0 {
		return nil
	}
	if a.client == nil {
		return ErrNoClient
	}
	if _, err := a.client.Insert(ctx, ArchiveEventsArgs{Events: items}, nil); err != nil {
		return fmt.Errorf("failed to enqueue archive job: %w", err)
	}
	return nil
}

package portriver

import (
	"context"
	"log/slog"
	"time"

	"github.com/riverqueue/river"
)

type RefreshClassificationsArgs struct{}

func (RefreshClassificationsArgs) Kind() string { return "classifications.refresh" }

// InsertOpts keeps at most one pending refresh.
func (RefreshClassificationsArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{ByPeriod: time.Minute},
	}
}

type ClassificationsRefresher interface {
	RefreshClassifications(ctx context.Context) ([]string, error)
}

type RefreshClassificationsWorker struct {
	river.WorkerDefaults[RefreshClassificationsArgs]

	refresher ClassificationsRefresher
}

func NewRefreshClassificationsWorker(refresher ClassificationsRefresher) river.Worker[RefreshClassificationsArgs] {
	return &RefreshClassificationsWorker{refresher: refresher}
}

func (w *RefreshClassificationsWorker) Work(ctx context.Context, job *river.Job[RefreshClassificationsArgs]) error {
	names, err := w.refresher.RefreshClassifications(ctx)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "classifications refreshed", "count", len(names))
	return nil
}

func (w *RefreshClassificationsWorker) Timeout(*river.Job[RefreshClassificationsArgs]) time.Duration {
	return 30 * time.Second
}

// PeriodicJobs schedules the classification refresh every interval,
// starting as soon as the client starts.
func PeriodicJobs(interval time.Duration) []*river.PeriodicJob {
	if interval <= 0 {
		return nil
	}
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(interval),
			func() (river.JobArgs, *river.InsertOpts) {
				return RefreshClassificationsArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

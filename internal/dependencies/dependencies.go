package dependencies

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"eventfinder/internal/config"
	"eventfinder/internal/portriver"
	"eventfinder/internal/service"
	"eventfinder/internal/sqlc"
	"eventfinder/pkg/ticketmaster"

	_ "github.com/mattn/go-sqlite3"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riversqlite"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

type Dependencies struct {
	DB            *sql.DB
	Store         *sqlc.Store
	RiverDB       *sql.DB
	RiverDriver   *riversqlite.Driver
	RiverWorkers  *river.Workers
	RiverClient   *river.Client[*sql.Tx]
	Ticketmaster  ticketmaster.ClientInterface
	EventsService service.EventsService
}

func (d *Dependencies) Close() {
	if d == nil {
		return
	}
	if d.DB != nil {
		d.DB.Close()
	}
	if d.RiverDB != nil {
		d.RiverDB.Close()
	}
}

func NewDependencies(ctx context.Context, opts ...Option) (deps *Dependencies, err error) {
	deps = &Dependencies{}
	defer func() {
		if err != nil {
			deps.Close()
		}
	}()

	for _, opt := range opts {
		if err := opt(ctx, deps); err != nil {
			return nil, err
		}
	}

	return deps, nil
}

type Option func(context.Context, *Dependencies) error

func WithDB(conf *config.Config) Option {
	return func(ctx context.Context, d *Dependencies) error {
		// WAL with NORMAL sync, see https://turriate.com/articles/making-sqlite-faster-in-go
		dsn := conf.SQLite3Path + "?cache=shared&mode=rwc&_journal_mode=WAL&_synchronous=NORMAL&_cache_size=-16000&_foreign_keys=1"

		db, err := otelsql.Open("sqlite3", dsn,
			otelsql.WithAttributes(semconv.DBSystemSqlite),
			otelsql.WithDBName(conf.SQLite3Path),
		)
		if err != nil {
			return err
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return err
		}

		if _, err := db.ExecContext(ctx, "PRAGMA temp_store = MEMORY"); err != nil {
			slog.Warn("failed to set pragma", "pragma", "temp_store", "error", err)
		}

		d.DB = db
		d.Store = sqlc.NewStore(db)
		return nil
	}
}

func WithRiverQueue(conf *config.Config) Option {
	return func(ctx context.Context, d *Dependencies) error {
		riverPath := conf.River.SQLite3Path
		riverDSN := riverPath + "?cache=shared&mode=rwc&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=1"

		// Kept apart from the archive so job churn does not contend with reads.
		riverDB, err := sql.Open("sqlite3", riverDSN)
		if err != nil {
			return err
		}

		riverDB.SetMaxOpenConns(5)
		riverDB.SetMaxIdleConns(2)

		if err := riverDB.PingContext(ctx); err != nil {
			riverDB.Close()
			return err
		}

		d.RiverDB = riverDB

		driver := riversqlite.New(riverDB)

		migrator, err := rivermigrate.New(driver, &rivermigrate.Config{})
		if err != nil {
			return err
		}

		slog.Info("running River migrations")
		migrationResult, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
		if err != nil {
			return err
		}

		slog.Info("River migrations completed", "versions_run", len(migrationResult.Versions))

		d.RiverDriver = driver
		d.RiverWorkers = river.NewWorkers()

		return nil
	}
}

// InitRiverClient builds the client once all workers are registered.
func (d *Dependencies) InitRiverClient(maxWorkers int, periodicJobs []*river.PeriodicJob) error {
	riverClient, err := river.NewClient(d.RiverDriver, &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers:      d.RiverWorkers,
		PeriodicJobs: periodicJobs,
	})
	if err != nil {
		return err
	}

	d.RiverClient = riverClient
	return nil
}

func WithTicketmaster(conf *config.Config) Option {
	return func(ctx context.Context, d *Dependencies) error {
		client, err := ticketmaster.NewClient(
			conf.Ticketmaster.BaseURL,
			conf.Ticketmaster.APIKey,
			ticketmaster.WithHTTPClient(&http.Client{Timeout: conf.Ticketmaster.Timeout}),
		)
		if err != nil {
			return err
		}
		d.Ticketmaster = client
		return nil
	}
}

// WithEventsService wires the service to archive through archiver. Pass nil
// to archive synchronously through the store.
func WithEventsService(conf *config.Config, archiver service.Archiver) Option {
	return func(ctx context.Context, d *Dependencies) error {
		if archiver == nil {
			archiver = d.Store
		}
		d.EventsService = service.NewEventsService(
			d.Ticketmaster,
			d.Store,
			archiver,
			conf.Ticketmaster.APIKey,
		)
		return nil
	}
}

// RegisterWorkers adds the background workers. The events service must
// already be built.
func (d *Dependencies) RegisterWorkers() {
	river.AddWorker(d.RiverWorkers, portriver.NewArchiveEventsWorker(d.Store.Queries, d.DB))
	river.AddWorker(d.RiverWorkers, portriver.NewRefreshClassificationsWorker(d.EventsService))
}

package main

import (
	"context"
	"log/slog"
	"time"

	"eventfinder/cmd/setup"
	"eventfinder/internal/config"
	"eventfinder/internal/dependencies"
	"eventfinder/internal/sqlc"
)

func main() {
	ctx := context.Background()

	conf, err := config.GetConfig(ctx)
	if err != nil {
		slog.Error("unable to get config", "error", err)
		return
	}

	slog.SetDefault(conf.NewLogger())

	args := config.ParseArgs()

	if err := setup.Setup(ctx, conf, args); err != nil {
		slog.Error("unable to setup", "error", err)
		return
	}

	deps, err := dependencies.NewDependencies(
		ctx,
		dependencies.WithDB(conf),
		dependencies.WithTicketmaster(conf),
		dependencies.WithEventsService(conf, nil),
	)
	if err != nil {
		slog.Error("unable to get dependencies", "error", err)
		return
	}
	defer deps.Close()

	start := time.Now()

	archived, err := deps.EventsService.Preload(ctx, args.Pages)
	if err != nil {
		slog.Error("unable to preload", "error", err, "archived", archived)
		return
	}

	total, err := deps.Store.CountEvents(ctx, sqlc.CountEventsParams{})
	if err != nil {
		slog.Warn("unable to count archived events", "error", err)
	}

	slog.Info("preload completed", "archived", archived, "archive_size", total, "pages", args.Pages, "took", time.Since(start))
}

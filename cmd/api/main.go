package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventfinder/cmd/setup"
	"eventfinder/internal/config"
	"eventfinder/internal/dependencies"
	"eventfinder/internal/middleware"
	"eventfinder/internal/portriver"
	"eventfinder/internal/ports"
	"eventfinder/pkg/telemetry"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx := context.Background()

	conf, err := config.GetConfig(ctx)
	if err != nil {
		slog.Error("unable to get config", "error", err)
		return
	}

	slog.SetDefault(conf.NewLogger())

	_, shutdownTelemetry, err := telemetry.New(ctx, &telemetry.Config{
		Service:           conf.Otel.ServiceName,
		Namespace:         "eventfinder",
		Environment:       conf.Environment,
		OtelCollectorAddr: conf.Otel.CollectorAddr,
	})
	if err != nil {
		slog.Error("unable to init telemetry", "error", err)
		return
	}
	defer shutdownTelemetry(context.Background())

	args := config.ParseArgs()

	if err := setup.Setup(ctx, conf, args); err != nil {
		slog.Error("unable to setup", "error", err)
		return
	}

	refreshInterval := conf.ClassificationsRefreshInterval
	if conf.Ticketmaster.APIKey == "" {
		slog.Warn("TICKETMASTER_API_KEY is not set, listings will be empty")
		refreshInterval = 0
	}

	archiver := portriver.NewRiverArchiver()

	deps, err := dependencies.NewDependencies(
		ctx,
		dependencies.WithDB(conf),
		dependencies.WithRiverQueue(conf),
		dependencies.WithTicketmaster(conf),
		dependencies.WithEventsService(conf, archiver),
	)
	if err != nil {
		slog.Error("unable to get dependencies", "error", err)
		return
	}
	defer deps.Close()

	deps.RegisterWorkers()

	if err := deps.InitRiverClient(conf.River.MaxWorkers, portriver.PeriodicJobs(refreshInterval)); err != nil {
		slog.Error("unable to init river client", "error", err)
		return
	}

	archiver.Attach(deps.RiverClient)

	server, err := ports.NewHttpServer(deps.EventsService)
	if err != nil {
		slog.Error("unable to parse templates", "error", err)
		return
	}

	router := mux.NewRouter()
	router.Use(otelmux.Middleware(conf.Otel.ServiceName))

	ports.HandlerWithOptions(server, ports.GorillaServerOptions{
		BaseRouter: router,
		Middlewares: []ports.MiddlewareFunc{
			middleware.Compress(),
			middleware.Recovery(),
			middleware.RequestMiddleware(),
		},
	})

	httpServer := &http.Server{
		Handler:           router,
		Addr:              fmt.Sprintf("%s:%s", conf.API.Addr, conf.API.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	mainCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		slog.Info("starting HTTP server", "address", httpServer.Addr)

		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}

		slog.Info("HTTP server stopped accepting connections")
		return nil
	})

	g.Go(func() error {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(c)

		select {
		case sig := <-c:
			slog.Info("received shutdown signal", "signal", sig)
			return fmt.Errorf("received signal: %s", sig)
		case <-gCtx.Done():
			return gCtx.Err()
		}
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 20*time.Second)
		defer shutdownRelease()

		slog.Info("shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}

		return nil
	})

	// Archive writes and the periodic classifications refresh.
	g.Go(func() error {
		slog.Info("starting riverqueue")
		if err := deps.RiverClient.Start(gCtx); err != nil {
			return err
		}

		<-gCtx.Done()

		slog.Info("shutting down riverqueue")
		if err := deps.RiverClient.Stop(context.Background()); err != nil {
			return err
		}

		slog.Info("riverqueue stopped")

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("application terminated", "error", err)
	}
}

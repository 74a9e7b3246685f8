// Package main is the entry point for the countdown server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/pearlworks/countdown/internal/engine"
	"github.com/pearlworks/countdown/internal/events"
	"github.com/pearlworks/countdown/internal/infra/storage"
	"github.com/pearlworks/countdown/internal/network"
	"github.com/pearlworks/countdown/internal/platform/config"
	"github.com/pearlworks/countdown/internal/platform/logger"
	"github.com/pearlworks/countdown/internal/platform/metrics"
	httptransport "github.com/pearlworks/countdown/internal/transport/http"
)

const (
	persistTimeout  = 2 * time.Second
	shutdownTimeout = 10 * time.Second
	eventRetention  = 10000
)

var flags = []cli.Flag{
	cli.StringFlag{
		Name:  "addr, a",
		Usage: "listen address (overrides COUNTDOWN_ADDR)",
	},
	cli.IntFlag{
		Name:  "timeout, t",
		Usage: "countdown length in seconds (overrides COUNTDOWN_SUICIDE_TIMEOUT)",
	},
	cli.StringFlag{
		Name:  "driver, d",
		Usage: "event storage driver, sqlite or postgres (overrides COUNTDOWN_STORAGE_DRIVER)",
	},
	cli.StringFlag{
		Name:  "db-path",
		Usage: "sqlite database file (overrides COUNTDOWN_DB_PATH)",
	},
	cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error (overrides COUNTDOWN_LOG_LEVEL)",
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "countdown-server"
	app.Usage = "authoritative server for the suicide countdown"
	app.Flags = flags
	app.Action = serve
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "run the server (default)",
			Flags:  flags,
			Action: serve,
		},
		{
			Name:      "history",
			Usage:     "print a player's countdown history from the event store",
			ArgsUsage: "<player-uuid>",
			Flags:     flags,
			Action:    history,
		},
		{
			Name:   "players",
			Usage:  "print the saved player snapshots",
			Flags:  flags,
			Action: players,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "countdown-server:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("timeout") {
		cfg.SuicideTimeoutSeconds = c.Int("timeout")
	}
	if c.IsSet("driver") {
		cfg.StorageDriver = c.String("driver")
	}
	if c.IsSet("db-path") {
		cfg.DBPath = c.String("db-path")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

// stores holds the opened databases. Player snapshots always live in SQLite;
// events go to the configured driver.
type stores struct {
	events    storage.EventRepository
	snapshots *storage.SQLiteSnapshotRepository
	close     func()
}

func openStores(ctx context.Context, cfg config.Config, appLogger *logger.Logger) (*stores, error) {
	appLogger.Info("Initializing SQLite database", "path", cfg.DBPath)
	sqliteDB, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	s := &stores{
		events:    storage.NewSQLiteEventRepository(sqliteDB),
		snapshots: storage.NewSQLiteSnapshotRepository(sqliteDB),
		close:     func() { sqliteDB.Close() },
	}

	if cfg.StorageDriver == config.DriverPostgres {
		appLogger.Info("Initializing Postgres event store")
		pg, err := storage.InitPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			sqliteDB.Close()
			return nil, err
		}
		s.events = storage.NewPostgresEventRepository(pg)
		s.close = func() {
			pg.Close()
			sqliteDB.Close()
		}
	}
	return s, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})
	appLogger.Info("Initializing countdown server...", "addr", cfg.Addr, "driver", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer st.close()

	appMetrics := metrics.New()

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(storage.NewEventPersister(st.events, persistTimeout))
	eventLog.SetRetention(eventRetention)
	eventLog.OnPersistError(func(err error) {
		appLogger.Error("Failed to persist event", "error", err)
	})

	appLogger.Info("Bootstrapping Engine...")
	eng, err := engine.NewEngine(eventLog, appLogger,
		engine.WithMetrics(appMetrics),
		engine.WithSuicideTimeout(cfg.SuicideTimeoutSeconds),
		engine.WithPlayerStore(storage.NewPlayerStore(st.snapshots)),
	)
	if err != nil {
		return err
	}

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(eng, appLogger,
		network.WithMetrics(appMetrics),
		network.WithSendBuffer(cfg.ClientSendBuffer),
	)
	eng.Roster().SetMessenger(hub)
	hub.Follow(eventLog)

	api := httptransport.NewHandler(eng, storage.NewReconstructor(st.events), appLogger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httptransport.NewRouter(api, appMetrics.Handler(), hub.ServeWS, appLogger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		eng.RunSnapshots(gctx, cfg.SnapshotInterval)
		return nil
	})
	g.Go(func() error {
		appLogger.Info("HTTP API & WS Server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down...")
		eng.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func history(c *cli.Context) error {
	id, err := uuid.Parse(c.Args().First())
	if err != nil {
		return cli.NewExitError("history needs a player UUID", 2)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	appLogger := logger.New(logger.Options{Level: "warn", Format: cfg.LogFormat, Output: os.Stderr})

	ctx := context.Background()
	st, err := openStores(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer st.close()

	h, err := storage.NewReconstructor(st.events).RebuildHistory(ctx, id.String())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}

func players(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	appLogger := logger.New(logger.Options{Level: "warn", Format: cfg.LogFormat, Output: os.Stderr})

	ctx := context.Background()
	st, err := openStores(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer st.close()

	snapshots, err := st.snapshots.List(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshots)
}

// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/startpage/internal/api"
	"github.com/starford/startpage/internal/calendar"
	"github.com/starford/startpage/internal/clock"
	"github.com/starford/startpage/internal/ident"
	"github.com/starford/startpage/internal/links"
	"github.com/starford/startpage/internal/mcpserver"
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/render"
	"github.com/starford/startpage/internal/sse"
	"github.com/starford/startpage/internal/startpage"
	"github.com/starford/startpage/internal/storage"
)

// backend is an opened storage driver.
type backend struct {
	provider storage.Provider
	fs       *storage.FS // non-nil for the file driver
	close    func() error
}

func openBackend(cfg StorageConfig) (*backend, error) {
	switch cfg.Driver {
	case DriverSQLite:
		db, err := storage.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &backend{provider: db, close: db.Close}, nil
	case DriverMemory:
		return &backend{provider: storage.NewMemory(), close: func() error { return nil }}, nil
	default:
		fs, err := storage.NewFS(cfg.Path, storage.WithExtension(".json"))
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		return &backend{provider: fs, fs: fs, close: func() error { return nil }}, nil
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// defaultLinks returns the configured shelf seed with schemes filled in.
func defaultLinks(cfg LinksConfig) []models.QuickLink {
	if len(cfg.Defaults) == 0 {
		return links.Defaults
	}
	out := make([]models.QuickLink, len(cfg.Defaults))
	for i, l := range cfg.Defaults {
		l = models.NewQuickLink(l.Title, l.URL)
		l.URL = links.NormalizeURL(l.URL)
		out[i] = l
	}
	return out
}

func newService(cfg *Config, b *backend, logger *slog.Logger, extra ...startpage.Option) (*startpage.Service, error) {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, fmt.Errorf("calendar timezone: %w", err)
	}
	opts := []startpage.Option{
		startpage.WithLogger(logger),
		startpage.WithLocation(loc),
		startpage.WithDefaultLinks(defaultLinks(cfg.Links)),
	}
	if cfg.Notes.Untitled != "" {
		opts = append(opts, startpage.WithUntitledTitle(cfg.Notes.Untitled))
	}
	gw := storage.NewGateway(b.provider, logger)
	return startpage.New(gw, clock.System{}, ident.UUIDv7{}, append(opts, extra...)...), nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("storage_path", cfg.Storage.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	b, err := openBackend(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = b.close() }()

	broker := sse.NewBroker(cfg.Calendar.UpdateThrottle)
	defer broker.Close()

	svc, err := newService(cfg, b, logger, startpage.WithPublisher(broker))
	if err != nil {
		return err
	}

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, cfg.Search.URL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload collections edited outside the process.
	if b.fs != nil && cfg.Storage.Watch {
		g.Go(func() error {
			return storage.Watch(gCtx, b.fs, logger, func(key string) {
				svc.Reload(gCtx, key)
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Open SSE streams only end when the broker closes.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// ServeMCP serves the MCP tools on stdin/stdout. Logs go to stderr so that
// they never mix with protocol messages.
func ServeMCP(_ context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)

	b, err := openBackend(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = b.close() }()

	svc, err := newService(cfg, b, logger)
	if err != nil {
		return err
	}

	logger.Info("MCP server starting", slog.String("storage_driver", cfg.Storage.Driver))
	return mcpserver.New(svc, app.version).ServeStdio()
}

// PrintCalendar writes the grid of a month to the configured output. A zero
// year or month selects the current one.
func PrintCalendar(ctx context.Context, year int, month time.Month, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)
	b, err := openBackend(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = b.close() }()

	svc, err := newService(cfg, b, logger)
	if err != nil {
		return err
	}

	m := svc.Month(ctx)
	if year != 0 || month != 0 {
		if year == 0 {
			year = m.Year
		}
		if month == 0 {
			month = m.Month
		}
		if month < time.January || month > time.December {
			return fmt.Errorf("month must be 1-12, got %d", month)
		}
		m = svc.Grid(ctx, calendar.View{Year: year, Month: month})
	}

	_, err = io.WriteString(app.output, render.NewCalendar(app.output).RenderMonth(m.View, m.Cells))
	return err
}

// Export writes every note as Markdown under dir.
func Export(ctx context.Context, dir string, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)
	b, err := openBackend(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = b.close() }()

	svc, err := newService(cfg, b, logger)
	if err != nil {
		return err
	}

	sum, err := svc.Export(ctx, dir)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, err = fmt.Fprintf(app.output, "exported %d notes and %d date notes to %s\n", sum.Notes, sum.DateNotes, sum.Dir)
	return err
}

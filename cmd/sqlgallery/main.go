// @title			SQL Gallery API
// @version		1.0
// @description	Browse SQL script cards by category and fetch their raw text.
// @BasePath		/api/v1

package main

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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/sqlgallery/internal/catalog"
	"github.com/mtlprog/sqlgallery/internal/clipboard"
	"github.com/mtlprog/sqlgallery/internal/config"
	"github.com/mtlprog/sqlgallery/internal/copier"
	"github.com/mtlprog/sqlgallery/internal/database"
	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/handler"
	"github.com/mtlprog/sqlgallery/internal/logger"
	"github.com/mtlprog/sqlgallery/internal/middleware"
	"github.com/mtlprog/sqlgallery/internal/reporting"
	"github.com/mtlprog/sqlgallery/internal/repository"
	"github.com/mtlprog/sqlgallery/internal/service"
	"github.com/mtlprog/sqlgallery/internal/tui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	app := &cli.App{
		Name:    "sqlgallery",
		Usage:   "Gallery of ready-made SQL scripts",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL for copy events (in-memory when empty)",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "YAML catalog file (embedded catalog when empty)",
				EnvVars: []string{"CATALOG_FILE"},
			},
			&cli.DurationFlag{
				Name:    "fetch-timeout",
				Value:   config.DefaultFetchTimeout,
				Usage:   "Timeout for raw content retrieval (0 disables)",
				EnvVars: []string{"FETCH_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "sentry-dsn",
				Usage:   "Sentry DSN for error reporting",
				EnvVars: []string{"SENTRY_DSN"},
			},
			&cli.StringFlag{
				Name:    "sentry-environment",
				Value:   config.DefaultSentryEnvironment,
				Usage:   "Sentry environment tag",
				EnvVars: []string{"SENTRY_ENVIRONMENT"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		After: func(c *cli.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.DurationFlag{
						Name:    "transition",
						Value:   config.DefaultTransition,
						Usage:   "Tab show/hide transition",
						EnvVars: []string{"TRANSITION"},
					},
					&cli.Float64Flag{
						Name:    "rate-limit-rps",
						Value:   config.DefaultRateLimitRPS,
						Usage:   "API requests per second per client (0 disables)",
						EnvVars: []string{"RATE_LIMIT_RPS"},
					},
					&cli.IntFlag{
						Name:    "rate-limit-burst",
						Value:   config.DefaultRateLimitBurst,
						Usage:   "API burst size per client",
						EnvVars: []string{"RATE_LIMIT_BURST"},
					},
					&cli.StringFlag{
						Name:    "trusted-proxies",
						Value:   config.DefaultTrustedProxies,
						Usage:   "Comma-separated proxy CIDRs whose X-Forwarded-For is honoured",
						EnvVars: []string{"TRUSTED_PROXIES"},
					},
				},
				Action: runServe,
			},
			{
				Name:  "browse",
				Usage: "Browse the gallery in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "log-file",
						Value:   config.DefaultLogFile,
						Usage:   "Log file while the terminal UI is running",
						EnvVars: []string{"LOG_FILE"},
					},
				},
				Action: runBrowse,
			},
			{
				Name:      "copy",
				Usage:     "Copy a card's SQL to the system clipboard",
				ArgsUsage: "<card-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "print",
						Usage: "Write the SQL to stdout instead of the clipboard",
					},
				},
				Action: runCopy,
			},
			{
				Name:   "list",
				Usage:  "List categories and card IDs",
				Action: runList,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// components bundles what every command shares.
type components struct {
	catalog *domain.Catalog
	service *service.CopyService
	close   func()
}

func setup(c *cli.Context) (*components, error) {
	ctx := c.Context

	cat, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	store, closeStore, err := openStore(ctx, c.String("database-url"))
	if err != nil {
		return nil, err
	}

	cp := copier.New(
		copier.WithTimeout(c.Duration("fetch-timeout")),
		copier.WithReporter(reporting.New(initSentry(c))),
	)

	return &components{
		catalog: cat,
		service: service.NewCopyService(cat, cp, store),
		close:   closeStore,
	}, nil
}

func initSentry(c *cli.Context) bool {
	dsn := c.String("sentry-dsn")
	if dsn == "" {
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      c.String("sentry-environment"),
		Release:          c.App.Name + "@" + c.App.Version,
		TracesSampleRate: 1.0,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Warn("sentry initialization failed", "error", err)
		return false
	}
	slog.Info("sentry initialized", "environment", c.String("sentry-environment"))
	return true
}

func openStore(ctx context.Context, databaseURL string) (service.EventStore, func(), error) {
	if databaseURL == "" {
		slog.Info("using in-memory copy event store")
		return repository.NewMemoryCopyEventRepository(), func() {}, nil
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repository.NewCopyEventRepository(db.Pool()), db.Close, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	proxies, err := middleware.ParseTrustedProxies(c.String("trusted-proxies"))
	if err != nil {
		return err
	}

	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.close()

	h, err := handler.New(a.catalog, a.service, handler.Options{
		Transition: c.Duration("transition"),
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: c.Float64("rate-limit-rps"),
			Burst:             c.Int("rate-limit-burst"),
			TrustedProxies:    proxies,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           h.Routes(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runBrowse(c *cli.Context) error {
	logFile, err := logger.SetupFile(c.String("log-file"), logger.ParseLevel(c.String("log-level")))
	if err != nil {
		return err
	}
	defer logFile.Close()

	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.close()

	cb := clipboard.System{}
	if !cb.Available() {
		slog.Warn("system clipboard unavailable, copies will fail")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := tui.New(ctx, a.catalog, a.service, cb)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

// writerClipboard sends copied text to an io.Writer.
type writerClipboard struct {
	w io.Writer
}

func (wc writerClipboard) WriteText(_ context.Context, text string) error {
	_, err := io.WriteString(wc.w, text)
	return err
}

func runCopy(c *cli.Context) error {
	cardID := c.Args().First()
	if cardID == "" {
		return cli.Exit("usage: sqlgallery copy <card-id>", 2)
	}

	// Keep stdout clean for --print.
	logger.SetupWriter(os.Stderr, logger.ParseLevel(c.String("log-level")))

	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.close()

	var cb copier.Clipboard = clipboard.System{}
	if c.Bool("print") {
		cb = writerClipboard{w: c.App.Writer}
	}

	event, err := a.service.CopyCard(c.Context, cardID, service.SourceCLI, cb)
	if err != nil {
		return fmt.Errorf("copy %s: %w", cardID, err)
	}

	if !c.Bool("print") {
		fmt.Fprintf(c.App.ErrWriter, "copied %d bytes from %s\n", event.Bytes, cardID)
	}
	return nil
}

func runList(c *cli.Context) error {
	cat, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	w := c.App.Writer
	for _, name := range cat.Names() {
		if name == cat.Aggregate() {
			continue
		}
		cards, err := cat.Cards(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (%d)\n", name, len(cards))
		for _, card := range cards {
			marker := " "
			if card.HasRawContent() {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %-32s %s\n", marker, card.ID, card.Title)
		}
	}
	return nil
}

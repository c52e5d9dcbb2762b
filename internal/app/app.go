package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/five82/todo/internal/config"
	"github.com/five82/todo/internal/prefs"
	"github.com/five82/todo/internal/todoapi"
	"github.com/five82/todo/internal/ui"
)

// Options configure the todo application. Non-empty overrides win over the
// config file and the environment.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/todo/prefs.toml
	APIURL     string
	LogLevel   string
}

// Run boots the todo TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()

	tp, shutdownTracing, err := setupTracing(cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("shutdown tracing", "err", err)
		}
	}()

	client, err := newClient(cfg, logger, tp)
	if err != nil {
		return fmt.Errorf("init todo client: %w", err)
	}

	logger.Info("starting", "api", client.BaseURL(), "timeout", cfg.RequestTimeout)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return ui.Run(ui.Options{
		Context:   ctx,
		Service:   client,
		Logger:    logger,
		BaseURL:   client.BaseURL(),
		LogFile:   cfg.LogFile,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
	})
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg, nil
}

func newClient(cfg config.Config, logger *log.Logger, tp trace.TracerProvider) (*todoapi.Client, error) {
	options := []todoapi.Option{
		todoapi.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		todoapi.WithLogger(logger),
	}
	if tp != nil {
		options = append(options, todoapi.WithTracerProvider(tp))
	}
	return todoapi.NewClient(cfg.APIURL, options...)
}

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todocal/internal/config"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/logging"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
	"github.com/sandeepkv93/todocal/internal/seed"
	"github.com/sandeepkv93/todocal/internal/storage"
	"github.com/sandeepkv93/todocal/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app holds the wired collaborators shared by the TUI and the printers.
type app struct {
	cfg    config.Config
	logger *log.Logger
	now    func() time.Time
	store  *store.Store
	coord  *coordinator.Coordinator

	logCloser io.Closer
}

// openApp builds config, logger, repository, store and coordinator in that
// order. interactive routes logs away from the terminal.
func openApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	now, err := clockFor(flagToday)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, now: now, logCloser: io.NopCloser(nil)}
	if interactive || cfg.LogFile != "" {
		a.logger, a.logCloser, err = logging.Open(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	} else {
		a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, false)
	}

	repo, err := openRepository(cfg.Backend)
	if err != nil {
		_ = a.logCloser.Close()
		return nil, err
	}
	a.store, err = store.New(repo, store.Options{Now: now, CreatedAtLayout: cfg.CreatedAtLayout})
	if err != nil {
		_ = repo.Close()
		_ = a.logCloser.Close()
		return nil, err
	}

	start := cfg.Cursor()
	if start.IsZero() {
		start = model.MonthOf(model.Today(now()))
	}
	if cfg.Seed {
		samples := seed.Generate(start, cfg.SeedValue)
		if err := seed.Apply(cmd.Context(), a.store, samples); err != nil {
			a.close()
			return nil, err
		}
		a.logger.Debug("seeded", "todos", len(samples), "month", start.String())
	}

	view, _ := coordinator.ParseView(cfg.DefaultView)
	tab, _ := coordinator.ParseTab(cfg.DefaultTab)
	a.coord, err = coordinator.New(a.store, coordinator.Options{
		Now:    now,
		Logger: a.logger,
		Filter: query.ParseFilter(cfg.DefaultFilter),
		View:   view,
		Tab:    tab,
		Cursor: start,
	})
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// loadConfig reads the config file and environment, then applies the
// persistent flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	return applyFlags(cfg, cmd.Flags()), nil
}

// applyFlags copies explicitly set persistent flags over cfg.
func applyFlags(cfg config.Config, flags *pflag.FlagSet) config.Config {
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetBool("seed")
	}
	if flags.Changed("seed-value") {
		cfg.SeedValue, _ = flags.GetInt64("seed-value")
	}
	return cfg
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("close store", "err", err)
	}
	_ = a.logCloser.Close()
}

func (a *app) snapshot(ctx context.Context) (coordinator.Snapshot, error) {
	return a.coord.Snapshot(ctx)
}

func openRepository(backend string) (storage.Repository, error) {
	switch backend {
	case config.BackendSQLite:
		repo, err := storage.OpenMemorySQLite()
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return repo, nil
	default:
		return storage.NewMemoryRepository(), nil
	}
}

// clockFor pins the clock to raw at 09:00 local time, or returns time.Now
// when raw is empty.
func clockFor(raw string) (func() time.Time, error) {
	if raw == "" {
		return time.Now, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("--today: %w", err)
	}
	fixed := time.Date(d.Year, d.Month, d.Day, 9, 0, 0, 0, time.Local)
	return func() time.Time { return fixed }, nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/logging"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/state"
	"github.com/five82/pokedex/internal/ui"
)

// Options configure the Pokédex application.
type Options struct {
	ConfigPath string
	PrefsPath  string         // empty uses default ~/.config/pokedex/prefs.toml
	Flags      *pflag.FlagSet // flags that override config keys; may be nil
	Version    string
}

// Runtime is the wired set of components one process uses.
type Runtime struct {
	Config  config.Config
	Prefs   prefs.Prefs
	Logger  *logrus.Logger
	Client  *pokeapi.Client
	Catalog *catalog.Orchestrator

	prefsPath    string
	limitFlagSet bool
	closers      []io.Closer
}

// Build loads configuration and preferences, opens the log file and
// constructs the API client and orchestrator.
func Build(opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.Flags)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	rt := &Runtime{
		Config:    cfg,
		Prefs:     prefs.Load(opts.PrefsPath),
		Logger:    logger,
		prefsPath: opts.PrefsPath,
		closers:   []io.Closer{logCloser},
	}
	if opts.Flags != nil {
		rt.limitFlagSet = opts.Flags.Changed("limit")
	}

	client, err := pokeapi.NewClient(pokeapi.Options{
		BaseURL:           cfg.API.BaseURL,
		UserAgent:         userAgent(cfg.API.UserAgent, opts.Version),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	rt.Client = client
	rt.closers = append(rt.closers, client)

	rt.Catalog = catalog.New(client, catalog.Options{
		Policy:          cfg.Catalog.Policy,
		CollectionLimit: cfg.Catalog.CollectionLimit,
		DetailWorkers:   cfg.Catalog.DetailWorkers,
		Store:           &state.Store{},
		Logger:          logger,
	})

	logger.WithFields(logrus.Fields{
		"base_url": client.BaseURL(),
		"policy":   string(cfg.Catalog.Policy),
		"workers":  cfg.Catalog.DetailWorkers,
	}).Info("pokedex started")

	return rt, nil
}

// PageSize is the starting page size. An explicit --limit wins, then the
// saved preference, then the config file.
func (r *Runtime) PageSize() int {
	if !r.limitFlagSet && r.Prefs.PageSize > 0 {
		return r.Prefs.PageSize
	}
	return r.Config.Catalog.PageSize
}

// Close releases the API client and the log file.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// Run boots the Pokédex TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Build(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	err = ui.Run(ctx, ui.Options{
		Context:      ctx,
		Orchestrator: rt.Catalog,
		PageSize:     rt.PageSize(),
		ThemeName:    rt.Prefs.Theme,
		PrefsPath:    rt.prefsPath,
		LogPath:      rt.Config.Logging.File,
		Logger:       rt.Logger,
	})
	if err != nil {
		rt.Logger.WithError(err).Error("ui exited")
	}
	return err
}

func userAgent(configured, version string) string {
	if configured != "" {
		return configured
	}
	if version == "" {
		return ""
	}
	return "pokedex/" + version
}

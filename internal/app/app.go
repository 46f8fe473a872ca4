package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/engine"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
)

// App holds the composed registry and rule sets.
type App struct {
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	ruleSets []*rules.RuleSet
}

// NewApp composes an App. logW receives the logs. When no modules are given
// the core modules are used. A returned error is a composition error and is
// fatal.
func NewApp(logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}

	model, err := LoadLayouts(ctx, modules, cfg.LayoutsPath)
	if err != nil {
		return nil, err
	}

	reg, ruleSets, err := Compose(ctx, model, modules)
	if err != nil {
		return nil, err
	}
	logger.Debug("Application composed.", "modules", len(modules), "variations", len(ruleSets))

	return &App{
		logger:   logger,
		config:   cfg,
		registry: reg,
		ruleSets: ruleSets,
	}, nil
}

// Context returns a background context carrying the app logger.
func (a *App) Context() context.Context {
	return ctxlog.WithLogger(context.Background(), a.logger)
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Config returns the app configuration.
func (a *App) Config() *Config { return a.config }

// Registry returns the sealed registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Variations returns every rule set in load order.
func (a *App) Variations() []*rules.RuleSet {
	return append([]*rules.RuleSet(nil), a.ruleSets...)
}

// RuleSet returns the named rule set. An empty name selects the configured
// default variation, or the first one loaded.
func (a *App) RuleSet(name string) (*rules.RuleSet, error) {
	if name == "" {
		name = a.config.DefaultVariation
	}
	if name == "" && len(a.ruleSets) > 0 {
		return a.ruleSets[0], nil
	}
	for _, rs := range a.ruleSets {
		if rs.Name == name {
			return rs, nil
		}
	}
	return nil, fmt.Errorf("unknown variation '%s'", name)
}

// NewSession deals a new game of the named variation.
func (a *App) NewSession(ctx context.Context, variation string, seed int64) (*engine.Session, error) {
	rs, err := a.RuleSet(variation)
	if err != nil {
		return nil, err
	}
	return engine.NewSession(ctx, rs, engine.Options{Seed: seed, AutoMoveLimit: a.config.AutoMoveLimit})
}

// Package testutil holds helpers shared by the tests of several packages:
// composing rule sets from modules, arranging decks, and layout-only modules.
package testutil

import (
	"context"
	"io/fs"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/solitaire/internal/app"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/engine"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
	"github.com/stretchr/testify/require"
)

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Context returns a context whose logger writes debug output to t.Log.
func Context(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctxlog.WithLogger(ctx, logger)
}

// Module is a registry.Module assembled from a layout and a register func.
type Module struct {
	ModuleName string
	Files      fs.FS
	Fn         func(r *registry.Registry) error
}

// Name returns the module name.
func (m *Module) Name() string { return m.ModuleName }

// Layouts returns the module's layout files.
func (m *Module) Layouts() fs.FS { return m.Files }

// Register calls Fn.
func (m *Module) Register(r *registry.Registry) error {
	if m.Fn == nil {
		return nil
	}
	return m.Fn(r)
}

// Layouts builds an in-memory file system from file name to contents.
func Layouts(files map[string]string) fs.FS {
	fsys := fstest.MapFS{}
	for name, src := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(src)}
	}
	return fsys
}

// Compose loads the layouts of modules and composes them. The core modules
// are used when none are given.
func Compose(t *testing.T, modules ...registry.Module) (*registry.Registry, []*rules.RuleSet, error) {
	t.Helper()
	if len(modules) == 0 {
		modules = app.CoreModules()
	}
	ctx := Context(t)
	model, err := app.LoadLayouts(ctx, modules, "")
	require.NoError(t, err)
	return app.Compose(ctx, model, modules)
}

// RuleSet composes modules and returns the named rule set.
func RuleSet(t *testing.T, name string, modules ...registry.Module) *rules.RuleSet {
	t.Helper()
	_, ruleSets, err := Compose(t, modules...)
	require.NoError(t, err)
	for _, rs := range ruleSets {
		if rs.Name == name {
			return rs
		}
	}
	t.Fatalf("variation %q not composed", name)
	return nil
}

// NewSession starts a session of rs. A nil deck deals the shuffle of seed 1.
func NewSession(t *testing.T, rs *rules.RuleSet, opts engine.Options) *engine.Session {
	t.Helper()
	if opts.Deck == nil && opts.Seed == 0 {
		opts.Seed = 1
	}
	s, err := engine.NewSession(Context(t), rs, opts)
	require.NoError(t, err)
	return s
}

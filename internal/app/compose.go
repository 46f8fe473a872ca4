package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/hcl"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
	"github.com/specialistvlad/solitaire/internal/yamlconf"
)

// loaders are tried on every layout source.
func loaders() []config.Loader {
	return []config.Loader{hcl.NewLoader(), yamlconf.NewLoader()}
}

// LoadLayouts loads the layouts shipped with modules and, when extraPath is
// set, the layouts found there.
func LoadLayouts(ctx context.Context, modules []registry.Module, extraPath string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()

	load := func(name string, fsys fs.FS) error {
		for _, l := range loaders() {
			m, err := l.Load(ctx, fsys)
			if err != nil {
				return fmt.Errorf("loading layouts of %s: %w", name, err)
			}
			if err := model.Merge(m); err != nil {
				return fmt.Errorf("loading layouts of %s: %w", name, err)
			}
		}
		return nil
	}

	for _, mod := range modules {
		fsys := mod.Layouts()
		if fsys == nil {
			continue
		}
		if err := load("module "+mod.Name(), fsys); err != nil {
			return nil, err
		}
	}

	if extraPath != "" {
		info, err := os.Stat(extraPath)
		if err != nil {
			return nil, fmt.Errorf("layouts path: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("layouts path %s is not a directory", extraPath)
		}
		if err := load(extraPath, os.DirFS(extraPath)); err != nil {
			return nil, err
		}
	}

	logger.Debug("Layouts loaded.", "variations", len(model.Order))
	return model, nil
}

// Compose declares every variant and operation, lets the modules register
// their implementations, validates the operation matrix, seals the registry
// and builds one rule set per variation.
func Compose(ctx context.Context, model *config.Model, modules []registry.Module) (*registry.Registry, []*rules.RuleSet, error) {
	logger := ctxlog.FromContext(ctx)
	reg := registry.New()

	if err := rules.DeclareOperations(reg); err != nil {
		return nil, nil, err
	}

	var errs []error
	for _, def := range model.Definitions() {
		if err := def.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := rules.DeclareVariants(reg, def); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	logger.Debug("Variants declared.", "rulesets", len(reg.Variants(registry.FamilyRuleSet)), "containers", len(reg.Variants(registry.FamilyContainer)))

	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			return nil, nil, fmt.Errorf("module '%s': %w", mod.Name(), err)
		}
		logger.Debug("Module registered.", "module", mod.Name())
	}

	if err := reg.Validate(ctx); err != nil {
		return nil, nil, err
	}
	reg.Seal()
	logger.Debug("Registry validation passed.")

	ruleSets := make([]*rules.RuleSet, 0, len(model.Order))
	for _, def := range model.Definitions() {
		rs, err := rules.Build(ctx, reg, def)
		if err != nil {
			return nil, nil, err
		}
		ruleSets = append(ruleSets, rs)
	}
	return reg, ruleSets, nil
}

package hcl

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/fsutil"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL layout loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file in fsys and translates its variation blocks.
func (l *Loader) Load(ctx context.Context, fsys fs.FS) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.")

	files, err := fsutil.FindFilesByExtension(fsys, ".", ".hcl")
	if err != nil {
		return nil, fmt.Errorf("searching HCL layouts: %w", err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		hclFile, diags := parser.ParseHCL(src, file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, v := range root.Variations {
			def, err := l.translateVariation(ctx, v, file)
			if err != nil {
				return nil, err
			}
			if err := model.Add(def); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("HCL loading complete.", "variations", len(model.Order))
	return model, nil
}

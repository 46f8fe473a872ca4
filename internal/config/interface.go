package config

import (
	"context"
	"io/fs"
)

// Loader is the interface for a format-specific layout loader.
type Loader interface {
	// Load reads every layout file of the loader's format found in fsys and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, fsys fs.FS) (*Model, error)
}

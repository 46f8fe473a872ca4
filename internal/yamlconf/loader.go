// Package yamlconf loads variation layouts written in YAML.
package yamlconf

import (
	"context"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// LayoutFile represents the top-level YAML structure.
type LayoutFile struct {
	Variations []VariationEntry `yaml:"variations"`
}

// VariationEntry is a single variation in a YAML layout file.
type VariationEntry struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Decks       int              `yaml:"decks"`
	AutoMoves   *bool            `yaml:"automoves"`
	Containers  []ContainerEntry `yaml:"containers"`
	Deal        []DealEntry      `yaml:"deal"`
}

// ContainerEntry declares containers of one type.
type ContainerEntry struct {
	Type      string `yaml:"type"`
	Kind      string `yaml:"kind"`
	Count     int    `yaml:"count"`
	Capacity  int    `yaml:"capacity"`
	FaceDown  bool   `yaml:"face_down"`
	RevealTop bool   `yaml:"reveal_top"`
}

// DealEntry is one deal step.
type DealEntry struct {
	Container string `yaml:"container"`
	Counts    []int  `yaml:"counts"`
	FaceUp    FaceUp `yaml:"face_up"`
	Rest      bool   `yaml:"rest"`
}

// FaceUp accepts either a card count or the word "all".
type FaceUp int

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FaceUp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: face_up must be a number or \"all\"", node.Line)
	}
	if node.Value == "all" {
		*f = FaceUp(config.AllFaceUp)
		return nil
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil || n < 0 {
		return fmt.Errorf("line %d: face_up must be a number or \"all\", got %q", node.Line, node.Value)
	}
	*f = FaceUp(n)
	return nil
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML layout loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yaml and .yml file in fsys.
func (l *Loader) Load(ctx context.Context, fsys fs.FS) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()

	files, err := fsutil.FindFilesByExtension(fsys, ".", ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("searching YAML layouts: %w", err)
	}
	logger.Debug("Discovered YAML layout files.", "count", len(files))

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		var lf LayoutFile
		if err := yaml.Unmarshal(data, &lf); err != nil {
			return nil, fmt.Errorf("parse layout YAML %s: %w", file, err)
		}
		for _, entry := range lf.Variations {
			if err := model.Add(translate(entry, file)); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("YAML loading complete.", "variations", len(model.Order))
	return model, nil
}

func translate(v VariationEntry, source string) *config.VariationDefinition {
	def := &config.VariationDefinition{
		Name:        v.Name,
		Description: v.Description,
		Decks:       v.Decks,
		AutoMoves:   v.AutoMoves == nil || *v.AutoMoves,
		Source:      source,
	}
	if def.Decks == 0 {
		def.Decks = 1
	}
	for _, c := range v.Containers {
		count := c.Count
		if count == 0 {
			count = 1
		}
		def.Containers = append(def.Containers, &config.ContainerDefinition{
			Type:      c.Type,
			Kind:      c.Kind,
			Count:     count,
			Capacity:  c.Capacity,
			FaceDown:  c.FaceDown,
			RevealTop: c.RevealTop,
		})
	}
	for _, d := range v.Deal {
		def.Deal = append(def.Deal, &config.DealStep{
			Container: d.Container,
			Counts:    d.Counts,
			FaceUp:    int(d.FaceUp),
			Rest:      d.Rest,
		})
	}
	return def
}

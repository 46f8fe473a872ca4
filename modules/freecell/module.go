// Package freecell registers the operations of the FreeCell variation.
package freecell

import (
	"embed"
	"io/fs"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
)

// Name is the variation name used in the layout.
const Name = "freecell"

//go:embed freecell.yaml
var layouts embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Name returns the module name.
func (m *Module) Name() string { return Name }

// Layouts returns the embedded layout.
func (m *Module) Layouts() fs.FS { return layouts }

// Register registers the FreeCell operations.
func (m *Module) Register(r *registry.Registry) error {
	v := registry.RuleSetVariant(Name)
	if err := registry.Register(r, v, rules.OpLegal, rules.LegalFunc(legal)); err != nil {
		return err
	}
	if err := registry.Register(r, v, rules.OpWon, rules.WonFunc(rules.FoundationsComplete)); err != nil {
		return err
	}
	if err := registry.Register(r, v, rules.OpAutoMove, rules.AutoMoveFunc(rules.SafeToFoundation)); err != nil {
		return err
	}
	if err := registry.Register(r, v, rules.OpDeal, rules.DealFunc(rules.LayoutDeal)); err != nil {
		return err
	}
	if err := registry.Register(r, v, rules.OpClick, rules.ClickFunc(click)); err != nil {
		return err
	}

	ops := map[string]struct {
		accept pile.AcceptFunc
		expose pile.ExposeFunc
	}{
		"freecell":   {accept: acceptCell, expose: rules.ExposeTop},
		"foundation": {accept: rules.AcceptFoundation, expose: rules.ExposeTop},
		"tableau":    {accept: rules.AcceptTableau(false), expose: rules.ExposeOrderedRun},
	}
	for typeName, o := range ops {
		cv := registry.ContainerVariant(Name, typeName)
		if err := registry.Register(r, cv, rules.OpAccept, o.accept); err != nil {
			return err
		}
		if err := registry.Register(r, cv, rules.OpExpose, o.expose); err != nil {
			return err
		}
	}
	return nil
}

func acceptCell(dest *pile.Container, run []card.Card) bool {
	return len(run) == 1 && dest.Empty()
}

// MaxRun is the longest run that can move onto dest using free cells and
// empty columns as temporary space.
func MaxRun(t *pile.Table, dest *pile.Container) int {
	cells := 0
	for _, c := range t.OfKind(pile.KindFreeCell) {
		if c.Empty() {
			cells++
		}
	}
	n := cells + 1
	for _, c := range t.OfKind(pile.KindTableau) {
		if c.Empty() && c != dest {
			n *= 2
		}
	}
	return n
}

func legal(t *pile.Table, m pile.Move) bool {
	src, ok := t.Container(m.Source)
	if !ok {
		return false
	}
	dst, ok := t.Container(m.Destination)
	if !ok {
		return false
	}
	if dst.Kind() != pile.KindTableau {
		return true
	}
	return src.Len()-m.Offset <= MaxRun(t, dst)
}

// click sends a top card to a foundation, or else parks it in the first
// empty free cell.
func click(t *pile.Table, source string, offset int) (pile.Move, bool) {
	if m, ok := rules.ClickToFoundation(t, source, offset); ok {
		return m, true
	}
	src, ok := t.Container(source)
	if !ok || src.Kind() != pile.KindTableau || offset != src.Len()-1 {
		return pile.Move{}, false
	}
	for _, c := range t.OfKind(pile.KindFreeCell) {
		if c.Empty() {
			return pile.Move{Source: source, Offset: offset, Destination: c.Name()}, true
		}
	}
	return pile.Move{}, false
}

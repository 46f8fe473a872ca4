// Package klondike registers the operations of the Klondike variation. The
// layout lives next to the code in klondike.hcl.
package klondike

import (
	"embed"
	"io/fs"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
)

// Name is the variation name used in the layout.
const Name = "klondike"

//go:embed klondike.hcl
var layouts embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Name returns the module name.
func (m *Module) Name() string { return Name }

// Layouts returns the embedded layout.
func (m *Module) Layouts() fs.FS { return layouts }

type containerOps struct {
	accept pile.AcceptFunc
	expose pile.ExposeFunc
}

var containers = map[string]containerOps{
	"stock":      {accept: acceptStock, expose: rules.ExposeTop},
	"waste":      {accept: acceptWaste, expose: exposeWaste},
	"foundation": {accept: rules.AcceptFoundation, expose: rules.ExposeTop},
	"tableau":    {accept: rules.AcceptTableau(true), expose: rules.ExposeFaceUp},
}

// Register registers the Klondike operations.
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

	for typeName, ops := range containers {
		cv := registry.ContainerVariant(Name, typeName)
		if err := registry.Register(r, cv, rules.OpAccept, ops.accept); err != nil {
			return err
		}
		if err := registry.Register(r, cv, rules.OpExpose, ops.expose); err != nil {
			return err
		}
	}
	return nil
}

// acceptStock only takes cards back when the stock is empty.
func acceptStock(dest *pile.Container, run []card.Card) bool {
	return dest.Empty()
}

func acceptWaste(_ *pile.Container, run []card.Card) bool {
	return len(run) == 1
}

// exposeWaste exposes the top card and, for the recycle, the bottom one.
// legal keeps the whole-waste run away from everything but an empty stock.
func exposeWaste(c *pile.Container, offset int) bool {
	return offset == c.Len()-1 || offset == 0
}

// legal restricts moves involving the stock and waste: the stock only deals
// single cards to the waste, and the whole waste returns to an empty stock.
func legal(t *pile.Table, m pile.Move) bool {
	src, ok := t.Container(m.Source)
	if !ok {
		return false
	}
	dst, ok := t.Container(m.Destination)
	if !ok {
		return false
	}

	switch {
	case src.Kind() == pile.KindStock:
		return dst.Kind() == pile.KindWaste && m.Offset == src.Len()-1
	case dst.Kind() == pile.KindStock:
		return src.Kind() == pile.KindWaste && dst.Empty() && m.Offset == 0
	case dst.Kind() == pile.KindWaste:
		return false
	case src.Kind() == pile.KindWaste:
		return m.Offset == src.Len()-1
	}
	return true
}

// click turns a stock card, redeals an empty stock, or sends a top card to a
// foundation.
func click(t *pile.Table, source string, offset int) (pile.Move, bool) {
	src, ok := t.Container(source)
	if !ok {
		return pile.Move{}, false
	}
	if src.Kind() != pile.KindStock {
		return rules.ClickToFoundation(t, source, offset)
	}

	wastes := t.OfKind(pile.KindWaste)
	if len(wastes) == 0 {
		return pile.Move{}, false
	}
	waste := wastes[0]
	if !src.Empty() {
		return pile.Move{Source: source, Offset: src.Len() - 1, Destination: waste.Name()}, true
	}
	if waste.Empty() {
		return pile.Move{}, false
	}
	return pile.Move{Source: waste.Name(), Offset: 0, Destination: source}, true
}

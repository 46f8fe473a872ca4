// Package textview adds the describe operation to every container type of
// every loaded variation. It ships no layouts of its own.
package textview

import (
	"fmt"
	"io/fs"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
)

// DescribeFunc summarizes a container in one short line.
type DescribeFunc func(c *pile.Container) string

// OpDescribe is the operation tag this module declares.
var OpDescribe = registry.NewOperation[DescribeFunc](registry.FamilyContainer, "describe")

// Module implements the registry.Module interface for this package.
type Module struct{}

// Name returns the module name.
func (m *Module) Name() string { return "textview" }

// Layouts returns nil; the module only contributes an operation.
func (m *Module) Layouts() fs.FS { return nil }

// Register declares describe and implements it for every container variant
// already declared.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.DeclareOperation(OpDescribe); err != nil {
		return err
	}
	for _, v := range r.Variants(registry.FamilyContainer) {
		if err := registry.Register(r, v, OpDescribe, DescribeFunc(describe)); err != nil {
			return err
		}
	}
	return nil
}

func describe(c *pile.Container) string {
	switch c.Kind() {
	case pile.KindTableau:
		down := c.FaceUpFrom()
		return fmt.Sprintf("%s %d↓ %d↑", c.Name(), down, c.Len()-down)
	case pile.KindFoundation:
		cards := c.Cards()
		if len(cards) == 0 {
			return c.Name() + " empty"
		}
		return fmt.Sprintf("%s %s..%s", c.Name(), symbol(cards[0]), symbol(cards[len(cards)-1]))
	case pile.KindFreeCell, pile.KindReserve:
		top, ok := c.Top()
		if !ok {
			return c.Name() + " empty"
		}
		return fmt.Sprintf("%s %s", c.Name(), symbol(top))
	default:
		return fmt.Sprintf("%s %d", c.Name(), c.Len())
	}
}

func symbol(c card.Card) string {
	return c.Rank.String() + c.Suit.Symbol()
}

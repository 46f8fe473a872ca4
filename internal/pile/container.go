// Package pile implements containers of cards and the session-scoped table
// that owns them. A container does not know any rules itself: acceptance and
// exposure are operations resolved from the registry and attached to its
// ContainerType when a rule set is built.
package pile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/registry"
)

var (
	// ErrInsufficientCards is returned when more cards are requested than a
	// container holds.
	ErrInsufficientCards = errors.New("insufficient cards")
	// ErrOverflow is returned when a push would exceed a container's capacity.
	ErrOverflow = errors.New("container capacity exceeded")
)

// AcceptFunc decides whether dest accepts run on top of its current cards.
type AcceptFunc func(dest *Container, run []card.Card) bool

// ExposeFunc decides whether the run starting at offset may be picked up.
// Offsets count from the bottom card (0) to the top card (Len()-1).
type ExposeFunc func(c *Container, offset int) bool

// ContainerType is the shared behavior of every container of one type within
// a variation.
type ContainerType struct {
	Name    string
	Variant registry.Variant
	Kind    Kind
	// Capacity bounds the number of cards; 0 means unbounded.
	Capacity int
	// FaceDown turns pushed runs over: reversed and face down.
	FaceDown bool
	// RevealTop turns a face-down top card up after cards are removed.
	RevealTop bool

	Accept AcceptFunc
	Expose ExposeFunc
	// Logger receives warnings from the operations above; nil means
	// slog.Default().
	Logger *slog.Logger
}

// Container is an ordered, bottom-to-top stack of cards.
type Container struct {
	name  string
	index int
	typ   *ContainerType
	cards []card.Card
}

// NewContainer creates an empty container.
func NewContainer(name string, index int, typ *ContainerType) *Container {
	return &Container{name: name, index: index, typ: typ}
}

// Name returns the container's session-unique name.
func (c *Container) Name() string { return c.name }

// Index returns the declaration position of the container on its table.
func (c *Container) Index() int { return c.index }

// Type returns the container type.
func (c *Container) Type() *ContainerType { return c.typ }

// Kind is shorthand for Type().Kind.
func (c *Container) Kind() Kind { return c.typ.Kind }

// Len returns the number of cards.
func (c *Container) Len() int { return len(c.cards) }

// Empty reports whether the container holds no cards.
func (c *Container) Empty() bool { return len(c.cards) == 0 }

// Cards returns a copy of the cards, bottom first.
func (c *Container) Cards() []card.Card {
	out := make([]card.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Card returns the card at offset.
func (c *Container) Card(offset int) (card.Card, bool) {
	if offset < 0 || offset >= len(c.cards) {
		return card.Card{}, false
	}
	return c.cards[offset], true
}

// Top returns the top card.
func (c *Container) Top() (card.Card, bool) {
	return c.Card(len(c.cards) - 1)
}

// TopRun returns a copy of the top n cards.
func (c *Container) TopRun(n int) ([]card.Card, error) {
	if n < 0 || n > len(c.cards) {
		return nil, fmt.Errorf("%w: '%s' holds %d, asked for %d", ErrInsufficientCards, c.name, len(c.cards), n)
	}
	out := make([]card.Card, n)
	copy(out, c.cards[len(c.cards)-n:])
	return out, nil
}

// RunFrom returns a copy of the cards from offset to the top.
func (c *Container) RunFrom(offset int) ([]card.Card, error) {
	if offset < 0 || offset >= len(c.cards) {
		return nil, fmt.Errorf("%w: '%s' has no card at offset %d", ErrInsufficientCards, c.name, offset)
	}
	return c.TopRun(len(c.cards) - offset)
}

// Exposed reports whether the run starting at offset can be picked up.
// Out-of-range offsets are never exposed.
func (c *Container) Exposed(offset int) bool {
	if offset < 0 || offset >= len(c.cards) || c.typ.Expose == nil {
		return false
	}
	return c.guard("expose", func() bool { return c.typ.Expose(c, offset) })
}

// CanAccept reports whether run may be placed on the container. It never
// panics: a missing acceptance operation, or one that panics, rejects.
func (c *Container) CanAccept(run []card.Card) bool {
	if len(run) == 0 || c.typ.Accept == nil {
		return false
	}
	if c.typ.Capacity > 0 && len(c.cards)+len(run) > c.typ.Capacity {
		return false
	}
	return c.guard("accept", func() bool { return c.typ.Accept(c, run) })
}

func (c *Container) guard(op string, fn func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger := c.typ.Logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Warn("Container operation panicked.", "container", c.name, "operation", op, "panic", r)
			ok = false
		}
	}()
	return fn()
}

// Push places run on top, bottom card first.
func (c *Container) Push(run ...card.Card) error {
	if c.typ.Capacity > 0 && len(c.cards)+len(run) > c.typ.Capacity {
		return fmt.Errorf("%w: '%s' holds at most %d", ErrOverflow, c.name, c.typ.Capacity)
	}
	c.cards = append(c.cards, run...)
	return nil
}

// PopRun removes and returns the top n cards.
func (c *Container) PopRun(n int) ([]card.Card, error) {
	run, err := c.TopRun(n)
	if err != nil {
		return nil, err
	}
	c.cards = c.cards[:len(c.cards)-n]
	return run, nil
}

// Turn sets the face of the card at offset.
func (c *Container) Turn(offset int, f card.Face) {
	if offset >= 0 && offset < len(c.cards) {
		c.cards[offset] = c.cards[offset].Turned(f)
	}
}

// FaceUpFrom returns the offset of the lowest face-up card of the face-up
// run on top, or Len() when the top card is face down or the container is
// empty.
func (c *Container) FaceUpFrom() int {
	i := len(c.cards)
	for i > 0 && c.cards[i-1].FaceUp() {
		i--
	}
	return i
}

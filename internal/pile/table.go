package pile

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/specialistvlad/solitaire/internal/card"
)

// ErrUnknownContainer is returned when a move names a container the table
// does not have.
var ErrUnknownContainer = errors.New("unknown container")

// Move is a request to take the run starting at Offset in Source and place it
// on Destination.
type Move struct {
	Source      string
	Offset      int
	Destination string
}

func (m Move) String() string {
	return fmt.Sprintf("%s[%d] -> %s", m.Source, m.Offset, m.Destination)
}

// Placement declares count containers of one type.
type Placement struct {
	Type  *ContainerType
	Count int
}

// Table is the set of containers of one game session.
type Table struct {
	order  []*Container
	byName map[string]*Container
}

// NewTable creates the containers for placements, in order. A placement with
// count 1 yields a container named after its type; a larger count yields
// type1..typeN.
func NewTable(placements []Placement) (*Table, error) {
	t := &Table{byName: make(map[string]*Container)}
	for _, p := range placements {
		if p.Type == nil {
			return nil, errors.New("placement without container type")
		}
		if p.Count < 1 {
			return nil, fmt.Errorf("container type '%s' has count %d", p.Type.Name, p.Count)
		}
		for i := 1; i <= p.Count; i++ {
			name := p.Type.Name
			if p.Count > 1 {
				name += strconv.Itoa(i)
			}
			if _, exists := t.byName[name]; exists {
				return nil, fmt.Errorf("duplicate container name '%s'", name)
			}
			c := NewContainer(name, len(t.order), p.Type)
			t.order = append(t.order, c)
			t.byName[name] = c
		}
	}
	return t, nil
}

// Container returns the named container.
func (t *Table) Container(name string) (*Container, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Containers returns every container in declaration order.
func (t *Table) Containers() []*Container {
	return slices.Clone(t.order)
}

// OfType returns the containers of the named type in declaration order.
func (t *Table) OfType(typeName string) []*Container {
	var out []*Container
	for _, c := range t.order {
		if c.typ.Name == typeName {
			out = append(out, c)
		}
	}
	return out
}

// OfKind returns the containers of kind k in declaration order.
func (t *Table) OfKind(k Kind) []*Container {
	var out []*Container
	for _, c := range t.order {
		if c.typ.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the total number of cards on the table.
func (t *Table) Count() int {
	n := 0
	for _, c := range t.order {
		n += len(c.cards)
	}
	return n
}

// Transfer moves the run described by m. It either completes or leaves both
// containers exactly as they were.
func (t *Table) Transfer(m Move) error {
	src, ok := t.byName[m.Source]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownContainer, m.Source)
	}
	dst, ok := t.byName[m.Destination]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownContainer, m.Destination)
	}
	if src == dst {
		return fmt.Errorf("cannot move '%s' onto itself", src.name)
	}
	if m.Offset < 0 || m.Offset >= src.Len() {
		return fmt.Errorf("%w: '%s' has no card at offset %d", ErrInsufficientCards, src.name, m.Offset)
	}

	run, err := src.PopRun(src.Len() - m.Offset)
	if err != nil {
		return err
	}
	if err := dst.Push(orient(run, dst.typ.FaceDown)...); err != nil {
		// Restore the exact popped cards; capacity cannot reject what just left.
		src.cards = append(src.cards, run...)
		return fmt.Errorf("transfer %s: %w", m, err)
	}

	if src.typ.RevealTop {
		if top, ok := src.Top(); ok && !top.FaceUp() {
			src.Turn(src.Len()-1, card.FaceUp)
		}
	}
	return nil
}

// orient returns the run as it lands on a destination. Face-down containers
// receive the packet turned over.
func orient(run []card.Card, faceDown bool) []card.Card {
	out := make([]card.Card, len(run))
	for i, c := range run {
		if faceDown {
			out[len(run)-1-i] = c.Turned(card.FaceDown)
		} else {
			out[i] = c.Turned(card.FaceUp)
		}
	}
	return out
}

// PileView is the read-only state of one container.
type PileView struct {
	Name  string
	Type  string
	Kind  Kind
	Cards []card.Card
}

// Snapshot is the ordered state of a table, safe to hand to a renderer.
type Snapshot []PileView

// Snapshot copies the state of every container.
func (t *Table) Snapshot() Snapshot {
	s := make(Snapshot, 0, len(t.order))
	for _, c := range t.order {
		s = append(s, PileView{Name: c.name, Type: c.typ.Name, Kind: c.typ.Kind, Cards: c.Cards()})
	}
	return s
}

// Pile returns the view of the named container.
func (s Snapshot) Pile(name string) (PileView, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return PileView{}, false
}

// Cards returns all cards in the snapshot, container by container.
func (s Snapshot) Cards() []card.Card {
	var out []card.Card
	for _, p := range s {
		out = append(out, p.Cards...)
	}
	return out
}

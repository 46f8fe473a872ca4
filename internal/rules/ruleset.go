package rules

import (
	"context"
	"fmt"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
)

// RuleSet is a fully resolved variation. It is immutable and shared by every
// session of the variation.
type RuleSet struct {
	Name        string
	Description string
	Decks       int
	AutoMoves   bool
	Variant     registry.Variant

	placements []pile.Placement
	plan       []*config.DealStep

	legal    LegalFunc
	won      WonFunc
	autoMove AutoMoveFunc
	deal     DealFunc
	click    ClickFunc
}

// Build validates def and resolves its operations from r. Containers of the
// rule set log through the logger carried by ctx.
func Build(ctx context.Context, r *registry.Registry, def *config.VariationDefinition) (*RuleSet, error) {
	logger := ctxlog.FromContext(ctx)
	if err := def.Validate(); err != nil {
		return nil, err
	}

	v := registry.RuleSetVariant(def.Name)
	rs := &RuleSet{
		Name:        def.Name,
		Description: def.Description,
		Decks:       def.Decks,
		AutoMoves:   def.AutoMoves,
		Variant:     v,
		plan:        def.Deal,
	}

	var err error
	if rs.legal, err = registry.Resolve(r, v, OpLegal); err != nil {
		return nil, err
	}
	if rs.won, err = registry.Resolve(r, v, OpWon); err != nil {
		return nil, err
	}
	if rs.autoMove, err = registry.Resolve(r, v, OpAutoMove); err != nil {
		return nil, err
	}
	if rs.deal, err = registry.Resolve(r, v, OpDeal); err != nil {
		return nil, err
	}
	if rs.click, err = registry.Resolve(r, v, OpClick); err != nil {
		return nil, err
	}

	for _, cd := range def.Containers {
		kind, err := pile.ParseKind(cd.Kind)
		if err != nil {
			return nil, fmt.Errorf("variation '%s', container '%s': %w", def.Name, cd.Type, err)
		}
		cv := registry.ContainerVariant(def.Name, cd.Type)
		accept, err := registry.Resolve(r, cv, OpAccept)
		if err != nil {
			return nil, err
		}
		expose, err := registry.Resolve(r, cv, OpExpose)
		if err != nil {
			return nil, err
		}
		rs.placements = append(rs.placements, pile.Placement{
			Type: &pile.ContainerType{
				Name:      cd.Type,
				Variant:   cv,
				Kind:      kind,
				Capacity:  cd.Capacity,
				FaceDown:  cd.FaceDown,
				RevealTop: cd.RevealTop,
				Accept:    accept,
				Expose:    expose,
				Logger:    logger,
			},
			Count: cd.Count,
		})
	}

	logger.Debug("Built rule set.", "variation", rs.Name, "container_types", len(rs.placements))
	return rs, nil
}

// DeckSize is the number of cards a game of this variation uses.
func (rs *RuleSet) DeckSize() int {
	return 52 * rs.Decks
}

// NewDeck returns the shuffled deck for seed.
func (rs *RuleSet) NewDeck(seed int64) []card.Card {
	return card.Shuffle(card.NewDeck(rs.Decks), seed)
}

// NewTable creates an empty table with this variation's containers.
func (rs *RuleSet) NewTable() (*pile.Table, error) {
	return pile.NewTable(rs.placements)
}

// ContainerCount is the number of containers on a table of this variation.
func (rs *RuleSet) ContainerCount() int {
	n := 0
	for _, p := range rs.placements {
		n += p.Count
	}
	return n
}

// ContainerTypes returns the container types in declaration order.
func (rs *RuleSet) ContainerTypes() []*pile.ContainerType {
	out := make([]*pile.ContainerType, 0, len(rs.placements))
	for _, p := range rs.placements {
		out = append(out, p.Type)
	}
	return out
}

// Deal places deck onto the empty table t. Every card must be placed.
func (rs *RuleSet) Deal(deck []card.Card, t *pile.Table) error {
	if len(deck) != rs.DeckSize() {
		return fmt.Errorf("variation '%s' deals %d cards, got %d", rs.Name, rs.DeckSize(), len(deck))
	}
	if err := rs.deal(rs.plan, deck, t); err != nil {
		return fmt.Errorf("dealing '%s': %w", rs.Name, err)
	}
	if t.Count() != len(deck) {
		return fmt.Errorf("dealing '%s' placed %d of %d cards", rs.Name, t.Count(), len(deck))
	}
	return nil
}

// Legal reports whether the variation allows m.
func (rs *RuleSet) Legal(t *pile.Table, m pile.Move) bool {
	return rs.legal(t, m)
}

// Won reports whether t is a won position.
func (rs *RuleSet) Won(t *pile.Table) bool {
	return rs.won(t)
}

// AutoMoveTarget asks the variation for an automatic destination.
func (rs *RuleSet) AutoMoveTarget(t *pile.Table, source *pile.Container, offset int) (string, bool) {
	return rs.autoMove(t, source, offset)
}

// ClickTarget returns the move a click on (source, offset) stands for.
func (rs *RuleSet) ClickTarget(t *pile.Table, source string, offset int) (pile.Move, bool) {
	return rs.click(t, source, offset)
}

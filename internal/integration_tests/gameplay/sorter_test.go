package gameplay

import (
	"testing"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/engine"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
	"github.com/specialistvlad/solitaire/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sorterLayout = `
variation "sorter" {
  description = "Turn the stock onto the foundations."
  decks       = 1

  container "stock" {
    kind      = "stock"
    face_down = true
  }

  container "foundation" {
    kind     = "foundation"
    count    = 4
    capacity = 13
  }

  deal "stock" {
    rest = true
  }
}
`

// stockToFoundation moves the stock top to the first foundation taking it.
func stockToFoundation(t *pile.Table, source *pile.Container, offset int) (string, bool) {
	if source.Kind() != pile.KindStock || offset != source.Len()-1 {
		return "", false
	}
	top, _ := source.Top()
	dest, ok := rules.FoundationFor(t, top)
	if !ok {
		return "", false
	}
	return dest.Name(), true
}

func sorterModule() *testutil.Module {
	return &testutil.Module{
		ModuleName: "sorter",
		Files:      testutil.Layouts(map[string]string{"sorter.hcl": sorterLayout}),
		Fn: func(r *registry.Registry) error {
			v := registry.RuleSetVariant("sorter")
			if err := registry.Register(r, v, rules.OpLegal, rules.LegalFunc(func(*pile.Table, pile.Move) bool { return true })); err != nil {
				return err
			}
			if err := registry.Register(r, v, rules.OpWon, rules.WonFunc(rules.FoundationsComplete)); err != nil {
				return err
			}
			if err := registry.Register(r, v, rules.OpAutoMove, rules.AutoMoveFunc(stockToFoundation)); err != nil {
				return err
			}
			if err := registry.Register(r, v, rules.OpDeal, rules.DealFunc(rules.LayoutDeal)); err != nil {
				return err
			}
			if err := registry.Register(r, v, rules.OpClick, rules.ClickFunc(rules.ClickToFoundation)); err != nil {
				return err
			}
			for typ, accept := range map[string]pile.AcceptFunc{
				"stock":      rules.AcceptNothing,
				"foundation": rules.AcceptFoundation,
			} {
				cv := registry.ContainerVariant("sorter", typ)
				if err := registry.Register(r, cv, rules.OpAccept, accept); err != nil {
					return err
				}
				if err := registry.Register(r, cv, rules.OpExpose, pile.ExposeFunc(rules.ExposeTop)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// sortedStock puts AC on top of the stock, then 2C, and so on by suit.
func sortedStock() []card.Card {
	deck := card.NewDeck(1)
	out := make([]card.Card, len(deck))
	for i, c := range deck {
		out[len(deck)-1-i] = c
	}
	return out
}

func TestSorter_OneMoveWinsThroughAutoMoves(t *testing.T) {
	// --- Arrange ---
	rs := testutil.RuleSet(t, "sorter", sorterModule())
	s := testutil.NewSession(t, rs, engine.Options{Deck: sortedStock()})
	assert.False(t, s.Won())

	// --- Act ---
	res, err := s.AttemptMove(testutil.Context(t), "stock", 51, "foundation1")

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Len(t, res.AutoMoves, 51)

	snap := s.Snapshot()
	for i, suit := range card.Suits {
		f := snap[1+i]
		require.Len(t, f.Cards, 13, f.Name)
		assert.Equal(t, suit, f.Cards[0].Suit)
		assert.Equal(t, card.King, f.Cards[12].Rank)
		assert.True(t, f.Cards[12].FaceUp())
	}
}

func TestSorter_AutoMoveLimitFaults(t *testing.T) {
	// --- Arrange ---
	rs := testutil.RuleSet(t, "sorter", sorterModule())
	s := testutil.NewSession(t, rs, engine.Options{Deck: sortedStock(), AutoMoveLimit: 10})

	// --- Act ---
	res, err := s.AttemptMove(testutil.Context(t), "stock", 51, "foundation1")

	// --- Assert ---
	require.ErrorIs(t, err, engine.ErrAutoMoveDivergence)
	require.NotNil(t, res)
	assert.Len(t, res.AutoMoves, 10)
	assert.False(t, res.Won)

	f1, _ := s.Snapshot().Pile("foundation1")
	assert.Len(t, f1.Cards, 11, "moves applied before the fault are kept")
}

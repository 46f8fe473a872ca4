package composition

import (
	"testing"

	"github.com/specialistvlad/solitaire/internal/engine"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/specialistvlad/solitaire/internal/rules"
	"github.com/specialistvlad/solitaire/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registerGolf registers everything golf needs except the pairs in skip.
func registerGolf(skip map[string]bool) func(r *registry.Registry) error {
	return func(r *registry.Registry) error {
		v := registry.RuleSetVariant("golf")
		regs := []struct {
			op string
			fn func() error
		}{
			{"legal", func() error {
				return registry.Register(r, v, rules.OpLegal, rules.LegalFunc(func(*pile.Table, pile.Move) bool { return true }))
			}},
			{"won", func() error { return registry.Register(r, v, rules.OpWon, rules.WonFunc(rules.FoundationsComplete)) }},
			{"automove", func() error { return registry.Register(r, v, rules.OpAutoMove, rules.AutoMoveFunc(rules.NoAutoMoves)) }},
			{"deal", func() error { return registry.Register(r, v, rules.OpDeal, rules.DealFunc(rules.LayoutDeal)) }},
			{"click", func() error { return registry.Register(r, v, rules.OpClick, rules.ClickFunc(rules.ClickToFoundation)) }},
		}
		for _, reg := range regs {
			if skip[reg.op] {
				continue
			}
			if err := reg.fn(); err != nil {
				return err
			}
		}

		for _, typ := range []string{"stock", "waste", "tableau"} {
			cv := registry.ContainerVariant("golf", typ)
			if !skip[typ+".accept"] {
				if err := registry.Register(r, cv, rules.OpAccept, pile.AcceptFunc(rules.AcceptNothing)); err != nil {
					return err
				}
			}
			if !skip[typ+".expose"] {
				if err := registry.Register(r, cv, rules.OpExpose, pile.ExposeFunc(rules.ExposeTop)); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func TestComposition_CompleteModule(t *testing.T) {
	// --- Act ---
	_, ruleSets, err := testutil.Compose(t, withCore(golfModule(registerGolf(nil)))...)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, ruleSets, 3)
	assert.Equal(t, "golf", ruleSets[2].Name)

	s := testutil.NewSession(t, ruleSets[2], engine.Options{Seed: 2})
	snap := s.Snapshot()
	tab, ok := snap.Pile("tableau7")
	require.True(t, ok)
	assert.Len(t, tab.Cards, 5)
	stock, _ := snap.Pile("stock")
	assert.Len(t, stock.Cards, 52-35)
}

func TestComposition_SingleMissingPair(t *testing.T) {
	tests := []struct {
		name string
		skip string
		want string
	}{
		{name: "ruleset operation", skip: "won", want: "ruleset:golf × won"},
		{name: "container operation", skip: "waste.expose", want: "container:golf.waste × expose"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			_, _, err := testutil.Compose(t, withCore(golfModule(registerGolf(map[string]bool{tc.skip: true})))...)

			// --- Assert ---
			require.ErrorIs(t, err, registry.ErrIncompleteMatrix)
			assert.Equal(t, "incomplete operation matrix:\n- "+tc.want, err.Error())
		})
	}
}

func TestComposition_DuplicateRegistration(t *testing.T) {
	// --- Arrange ---
	again := &testutil.Module{
		ModuleName: "klondike-again",
		Fn: func(r *registry.Registry) error {
			return registry.Register(r, registry.RuleSetVariant("klondike"), rules.OpWon, rules.WonFunc(rules.FoundationsComplete))
		},
	}

	// --- Act ---
	_, _, err := testutil.Compose(t, withCore(again)...)

	// --- Assert ---
	require.ErrorIs(t, err, registry.ErrDuplicateRegistration)
	assert.ErrorContains(t, err, "module 'klondike-again'")
}

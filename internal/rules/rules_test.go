package rules

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func miniDefinition() *config.VariationDefinition {
	return &config.VariationDefinition{
		Name:      "mini",
		Decks:     1,
		AutoMoves: true,
		Containers: []*config.ContainerDefinition{
			{Type: "stock", Kind: "stock", Count: 1, FaceDown: true},
			{Type: "foundation", Kind: "foundation", Count: 4, Capacity: 13},
			{Type: "tableau", Kind: "tableau", Count: 3, RevealTop: true},
		},
		Deal: []*config.DealStep{
			{Container: "tableau", Counts: []int{1, 2, 3}, FaceUp: 1},
			{Container: "stock", Rest: true},
		},
	}
}

func registerMini(t *testing.T, r *registry.Registry, def *config.VariationDefinition) {
	t.Helper()
	v := registry.RuleSetVariant(def.Name)
	require.NoError(t, registry.Register(r, v, OpLegal, LegalFunc(func(*pile.Table, pile.Move) bool { return true })))
	require.NoError(t, registry.Register(r, v, OpWon, WonFunc(FoundationsComplete)))
	require.NoError(t, registry.Register(r, v, OpAutoMove, AutoMoveFunc(SafeToFoundation)))
	require.NoError(t, registry.Register(r, v, OpDeal, DealFunc(LayoutDeal)))
	require.NoError(t, registry.Register(r, v, OpClick, ClickFunc(ClickToFoundation)))

	accept := map[string]pile.AcceptFunc{
		"stock":      AcceptNothing,
		"foundation": AcceptFoundation,
		"tableau":    AcceptTableau(true),
	}
	for _, c := range def.Containers {
		cv := registry.ContainerVariant(def.Name, c.Type)
		require.NoError(t, registry.Register(r, cv, OpAccept, accept[c.Type]))
		require.NoError(t, registry.Register(r, cv, OpExpose, pile.ExposeFunc(ExposeFaceUp)))
	}
}

func buildMini(t *testing.T) *RuleSet {
	t.Helper()
	def := miniDefinition()
	r := registry.New()
	require.NoError(t, DeclareOperations(r))
	require.NoError(t, DeclareVariants(r, def))
	registerMini(t, r, def)
	require.NoError(t, r.Validate(testContext(t)))

	rs, err := Build(testContext(t), r, def)
	require.NoError(t, err)
	return rs
}

func TestBuild_ResolvesEverything(t *testing.T) {
	rs := buildMini(t)
	assert.Equal(t, "mini", rs.Name)
	assert.Equal(t, 52, rs.DeckSize())
	assert.Equal(t, 8, rs.ContainerCount())

	types := rs.ContainerTypes()
	require.Len(t, types, 3)
	assert.Equal(t, pile.KindFoundation, types[1].Kind)
	assert.Equal(t, registry.ContainerVariant("mini", "tableau"), types[2].Variant)
	assert.NotNil(t, types[2].Accept)
}

func TestBuild_ContainersLogThroughContextLogger(t *testing.T) {
	def := miniDefinition()
	r := registry.New()
	require.NoError(t, DeclareOperations(r))
	require.NoError(t, DeclareVariants(r, def))
	registerMini(t, r, def)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rs, err := Build(ctxlog.WithLogger(testContext(t), logger), r, def)
	require.NoError(t, err)

	for _, typ := range rs.ContainerTypes() {
		assert.Same(t, logger, typ.Logger, typ.Name)
	}
	assert.Contains(t, buf.String(), "Built rule set.")
}

func TestBuild_MissingOperation(t *testing.T) {
	def := miniDefinition()
	r := registry.New()
	require.NoError(t, DeclareOperations(r))
	require.NoError(t, DeclareVariants(r, def))

	_, err := Build(testContext(t), r, def)
	assert.ErrorIs(t, err, registry.ErrMissingImplementation)
}

func TestBuild_UnknownKind(t *testing.T) {
	def := miniDefinition()
	def.Containers[0].Kind = "graveyard"
	r := registry.New()
	require.NoError(t, DeclareOperations(r))
	require.NoError(t, DeclareVariants(r, def))
	registerMini(t, r, def)

	_, err := Build(testContext(t), r, def)
	assert.ErrorContains(t, err, "graveyard")
}

func TestDeal_LayoutAndFaces(t *testing.T) {
	rs := buildMini(t)
	tbl, err := rs.NewTable()
	require.NoError(t, err)

	deck := rs.NewDeck(7)
	require.NoError(t, rs.Deal(deck, tbl))

	assert.Equal(t, 52, tbl.Count())
	for i, c := range tbl.OfType("tableau") {
		require.Equal(t, i+1, c.Len())
		for off, cc := range c.Cards() {
			assert.Equal(t, off == c.Len()-1, cc.FaceUp(), "%s[%d]", c.Name(), off)
		}
	}

	stock, _ := tbl.Container("stock")
	assert.Equal(t, 46, stock.Len())
	top, _ := stock.Top()
	assert.False(t, top.FaceUp())

	// deck[0] is dealt first, onto the bottom of tableau1.
	first, _ := tbl.OfType("tableau")[0].Card(0)
	assert.Equal(t, deck[0].ID(), first.ID())
	assert.Equal(t, card.Multiset(deck), card.Multiset(tbl.Snapshot().Cards()))
}

func TestDeal_WrongDeckSize(t *testing.T) {
	rs := buildMini(t)
	tbl, err := rs.NewTable()
	require.NoError(t, err)
	assert.Error(t, rs.Deal(card.NewDeck(1)[:51], tbl))
}

func TestLayoutDeal_ShortDeck(t *testing.T) {
	rs := buildMini(t)
	tbl, err := rs.NewTable()
	require.NoError(t, err)
	err = LayoutDeal(miniDefinition().Deal[:1], card.NewDeck(1)[:3], tbl)
	assert.ErrorContains(t, err, "more cards")
}

func TestAlternatingDescending(t *testing.T) {
	run := func(ns ...string) []card.Card {
		out := make([]card.Card, 0, len(ns))
		for _, n := range ns {
			out = append(out, card.MustParse(n))
		}
		return out
	}
	assert.True(t, AlternatingDescending(run("KS", "QH", "JC")))
	assert.False(t, AlternatingDescending(run("KS", "QS")))
	assert.False(t, AlternatingDescending(run("KS", "JH")))
	assert.False(t, AlternatingDescending([]card.Card{card.New(card.King, card.Spades)}))
}

func TestSafeToFoundation(t *testing.T) {
	rs := buildMini(t)
	tbl, err := rs.NewTable()
	require.NoError(t, err)

	tab, _ := tbl.Container("tableau1")
	f1, _ := tbl.Container("foundation1")

	require.NoError(t, tab.Push(card.MustParse("AH")))
	dest, ok := SafeToFoundation(tbl, tab, 0)
	require.True(t, ok)
	assert.Equal(t, "foundation1", dest)

	// 3H waits until both black suits reach Two.
	require.NoError(t, f1.Push(card.MustParse("AH"), card.MustParse("2H")))
	_, err = tab.PopRun(1)
	require.NoError(t, err)
	require.NoError(t, tab.Push(card.MustParse("3H")))
	_, ok = SafeToFoundation(tbl, tab, 0)
	assert.False(t, ok)

	f2, _ := tbl.Container("foundation2")
	f3, _ := tbl.Container("foundation3")
	require.NoError(t, f2.Push(card.MustParse("AS"), card.MustParse("2S")))
	require.NoError(t, f3.Push(card.MustParse("AC"), card.MustParse("2C")))
	dest, ok = SafeToFoundation(tbl, tab, 0)
	require.True(t, ok)
	assert.Equal(t, "foundation1", dest)
}

func TestClickToFoundation(t *testing.T) {
	rs := buildMini(t)
	tbl, err := rs.NewTable()
	require.NoError(t, err)
	tab, _ := tbl.Container("tableau2")
	require.NoError(t, tab.Push(card.MustParse("KD"), card.MustParse("AC")))

	m, ok := rs.ClickTarget(tbl, "tableau2", 1)
	require.True(t, ok)
	assert.Equal(t, pile.Move{Source: "tableau2", Offset: 1, Destination: "foundation1"}, m)

	_, ok = rs.ClickTarget(tbl, "tableau2", 0)
	assert.False(t, ok)
}

func TestFoundationsComplete(t *testing.T) {
	rs := buildMini(t)
	tbl, err := rs.NewTable()
	require.NoError(t, err)
	assert.False(t, rs.Won(tbl))

	for i, s := range card.Suits {
		f := tbl.OfType("foundation")[i]
		for r := card.Ace; r <= card.King; r++ {
			require.NoError(t, f.Push(card.New(r, s).Turned(card.FaceUp)))
		}
	}
	assert.True(t, rs.Won(tbl))
}

// testContext stands in for testing.T.Context (Go 1.24): a context that is
// canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

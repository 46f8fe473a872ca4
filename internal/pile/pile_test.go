package pile

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptAll(*Container, []card.Card) bool { return true }
func topOnly(c *Container, offset int) bool { return offset == c.Len()-1 }

func faceUpRun(c *Container, offset int) bool {
	cc, _ := c.Card(offset)
	return cc.FaceUp()
}

func cards(t *testing.T, notation ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, 0, len(notation))
	for _, n := range notation {
		c, err := card.Parse(n)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func newTestTable(t *testing.T) *Table {
	t.Helper()
	stock := &ContainerType{Name: "stock", Kind: KindStock, FaceDown: true, Accept: acceptAll, Expose: topOnly}
	tableau := &ContainerType{Name: "tableau", Kind: KindTableau, RevealTop: true, Accept: acceptAll, Expose: faceUpRun}
	cell := &ContainerType{Name: "cell", Kind: KindFreeCell, Capacity: 1, Accept: acceptAll, Expose: topOnly}

	tbl, err := NewTable([]Placement{{Type: stock, Count: 1}, {Type: tableau, Count: 2}, {Type: cell, Count: 1}})
	require.NoError(t, err)
	return tbl
}

func TestNewTable_Naming(t *testing.T) {
	tbl := newTestTable(t)

	var names []string
	for _, c := range tbl.Containers() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"stock", "tableau1", "tableau2", "cell"}, names)
	assert.Len(t, tbl.OfType("tableau"), 2)
	assert.Len(t, tbl.OfKind(KindFreeCell), 1)

	c, ok := tbl.Container("tableau2")
	require.True(t, ok)
	assert.Equal(t, 2, c.Index())
}

func TestNewTable_RejectsZeroCount(t *testing.T) {
	_, err := NewTable([]Placement{{Type: &ContainerType{Name: "x"}, Count: 0}})
	assert.Error(t, err)
}

func TestContainer_TopRunAndPop(t *testing.T) {
	tbl := newTestTable(t)
	c, _ := tbl.Container("tableau1")
	require.NoError(t, c.Push(cards(t, "KS", "QH", "JC")...))

	run, err := c.TopRun(2)
	require.NoError(t, err)
	assert.Equal(t, cards(t, "QH", "JC"), run)
	assert.Equal(t, 3, c.Len(), "TopRun must not mutate")

	_, err = c.TopRun(4)
	assert.ErrorIs(t, err, ErrInsufficientCards)

	popped, err := c.PopRun(1)
	require.NoError(t, err)
	assert.Equal(t, cards(t, "JC"), popped)
	assert.Equal(t, 2, c.Len())
}

func TestContainer_CapacityOverflow(t *testing.T) {
	tbl := newTestTable(t)
	c, _ := tbl.Container("cell")
	require.NoError(t, c.Push(cards(t, "AS")...))

	assert.ErrorIs(t, c.Push(cards(t, "2S")...), ErrOverflow)
	assert.False(t, c.CanAccept(cards(t, "2S")))
	assert.Equal(t, 1, c.Len())
}

func TestContainer_CanAcceptNeverPanics(t *testing.T) {
	typ := &ContainerType{Name: "bad", Kind: KindReserve, Accept: func(*Container, []card.Card) bool {
		panic("boom")
	}}
	c := NewContainer("bad", 0, typ)
	assert.False(t, c.CanAccept(cards(t, "AS")))

	c = NewContainer("nil", 0, &ContainerType{Name: "nil"})
	assert.False(t, c.CanAccept(cards(t, "AS")))
	assert.False(t, c.Exposed(0))
}

func TestContainer_PanicWarningUsesTypeLogger(t *testing.T) {
	var buf bytes.Buffer
	typ := &ContainerType{
		Name:   "bad",
		Kind:   KindReserve,
		Accept: acceptAll,
		Expose: func(*Container, int) bool { panic("boom") },
		Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
	}
	c := NewContainer("bad1", 0, typ)
	require.NoError(t, c.Push(cards(t, "AS")...))

	assert.False(t, c.Exposed(0))
	assert.Contains(t, buf.String(), `"msg":"Container operation panicked."`)
	assert.Contains(t, buf.String(), `"container":"bad1"`)
	assert.Contains(t, buf.String(), `"operation":"expose"`)
}

func TestContainer_ExposedOutOfRange(t *testing.T) {
	tbl := newTestTable(t)
	c, _ := tbl.Container("tableau1")
	require.NoError(t, c.Push(cards(t, "KS")...))
	assert.True(t, c.Exposed(0))
	assert.False(t, c.Exposed(1))
	assert.False(t, c.Exposed(-1))
}

func TestTransfer_RevealsSourceTop(t *testing.T) {
	tbl := newTestTable(t)
	src, _ := tbl.Container("tableau1")
	dst, _ := tbl.Container("tableau2")
	require.NoError(t, src.Push(card.MustParse("9D").Turned(card.FaceDown), card.MustParse("8C")))

	require.NoError(t, tbl.Transfer(Move{Source: "tableau1", Offset: 1, Destination: "tableau2"}))

	top, ok := src.Top()
	require.True(t, ok)
	assert.True(t, top.FaceUp())
	assert.Equal(t, cards(t, "8C"), dst.Cards())
}

func TestTransfer_FaceDownDestinationTurnsPacketOver(t *testing.T) {
	tbl := newTestTable(t)
	src, _ := tbl.Container("tableau1")
	stock, _ := tbl.Container("stock")
	require.NoError(t, src.Push(cards(t, "3H", "2H", "AH")...))

	require.NoError(t, tbl.Transfer(Move{Source: "tableau1", Offset: 0, Destination: "stock"}))

	want := []card.Card{
		card.MustParse("AH").Turned(card.FaceDown),
		card.MustParse("2H").Turned(card.FaceDown),
		card.MustParse("3H").Turned(card.FaceDown),
	}
	if diff := cmp.Diff(want, stock.Cards()); diff != "" {
		t.Errorf("stock mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, src.Len())
}

func TestTransfer_RollsBackOnOverflow(t *testing.T) {
	tbl := newTestTable(t)
	src, _ := tbl.Container("tableau1")
	require.NoError(t, src.Push(card.MustParse("KS").Turned(card.FaceDown), card.MustParse("5H"), card.MustParse("4C")))
	before := tbl.Snapshot()

	err := tbl.Transfer(Move{Source: "tableau1", Offset: 1, Destination: "cell"})
	require.ErrorIs(t, err, ErrOverflow)

	if diff := cmp.Diff(before, tbl.Snapshot()); diff != "" {
		t.Errorf("table changed after failed transfer (-before +after):\n%s", diff)
	}
}

func TestTransfer_Invalid(t *testing.T) {
	tbl := newTestTable(t)
	src, _ := tbl.Container("tableau1")
	require.NoError(t, src.Push(cards(t, "KS")...))

	assert.ErrorIs(t, tbl.Transfer(Move{Source: "nope", Destination: "tableau2"}), ErrUnknownContainer)
	assert.ErrorIs(t, tbl.Transfer(Move{Source: "tableau1", Offset: 3, Destination: "tableau2"}), ErrInsufficientCards)
	assert.Error(t, tbl.Transfer(Move{Source: "tableau1", Destination: "tableau1"}))
	assert.Equal(t, 1, tbl.Count())
}

func TestSnapshot_IsACopy(t *testing.T) {
	tbl := newTestTable(t)
	src, _ := tbl.Container("tableau1")
	require.NoError(t, src.Push(cards(t, "KS")...))

	snap := tbl.Snapshot()
	snap[1].Cards[0] = card.MustParse("AH")

	top, _ := src.Top()
	assert.Equal(t, "KS", top.String())

	view, ok := tbl.Snapshot().Pile("tableau1")
	require.True(t, ok)
	assert.Equal(t, KindTableau, view.Kind)
	assert.Len(t, tbl.Snapshot().Cards(), 1)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindStock, KindWaste, KindFoundation, KindTableau, KindFreeCell, KindReserve} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("graveyard")
	assert.Error(t, err)
}

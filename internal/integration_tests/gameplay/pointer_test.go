package gameplay

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/solitaire/internal/engine"
	"github.com/specialistvlad/solitaire/internal/input"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/render"
	"github.com/specialistvlad/solitaire/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Klondike grid columns as rendered.
const (
	colStock    = 0
	colWaste    = 1
	colTableau1 = 6
)

func TestPointer_KlondikeThroughTheRenderer(t *testing.T) {
	// --- Arrange ---
	// AS sits at the bottom of the stock, KD on tableau1 and QS on tableau2.
	// The other Aces and Twos are buried face down.
	ctx := testutil.Context(t)
	reg, ruleSets, err := testutil.Compose(t)
	require.NoError(t, err)
	rs := ruleSets[0]
	require.Equal(t, "klondike", rs.Name)

	deck := testutil.ArrangedDeck(t, 1, map[int]string{
		0: "KD", 2: "QS", 28: "AS",
		3: "AH", 6: "AD", 7: "AC", 10: "2S", 11: "2H", 15: "2D", 16: "2C",
	})
	s := testutil.NewSession(t, rs, engine.Options{Deck: deck})

	var out bytes.Buffer
	r, err := render.New(&out, render.ColorNever, reg, rs)
	require.NoError(t, err)
	require.NoError(t, r.Render(s.Snapshot()))
	m := input.NewMapper(r, s)

	event := func(p input.Primitive, x, y int) input.Outcome {
		t.Helper()
		o := m.Handle(ctx, input.Event{Primitive: p, At: input.Point{X: x, Y: y}})
		require.NoError(t, r.Render(s.Snapshot()))
		return o
	}

	// --- Act & Assert ---
	// A plain click on the stock is Press, Release, Click: only the click moves.
	assert.Nil(t, event(input.Press, colStock, 23).Intent)
	assert.Nil(t, event(input.Release, colStock, 23).Intent, "release over the source is not a drag")
	o := event(input.Click, colStock, 23)
	require.NotNil(t, o.Intent)
	require.NoError(t, o.Err)
	assert.Equal(t, pile.Move{Source: "stock", Offset: 23, Destination: "waste"}, *o.Intent)

	// Drag QS from tableau2 onto KD.
	event(input.Press, colTableau1+1, 1)
	o = event(input.Release, colTableau1, 0)
	require.NotNil(t, o.Intent)
	require.NoError(t, o.Err)
	t1, _ := s.Snapshot().Pile("tableau1")
	require.Len(t, t1.Cards, 2)
	assert.Equal(t, "QS", t1.Cards[1].String())

	// Dragging the waste card onto the stock is illegal while the stock has cards.
	event(input.Press, colWaste, 0)
	o = event(input.Release, colStock, 0)
	require.NotNil(t, o.Intent)
	assert.ErrorIs(t, o.Err, engine.ErrIllegalMove)

	// Turn the stock until AS is on the waste; it goes home on its own.
	var autoMoves []pile.Move
	for i := 0; i < 23; i++ {
		snap := s.Snapshot()
		stock, _ := snap.Pile("stock")
		o = event(input.Click, colStock, len(stock.Cards)-1)
		require.NoError(t, o.Err)
		autoMoves = append(autoMoves, o.Result.AutoMoves...)
	}
	assert.Contains(t, autoMoves, pile.Move{Source: "waste", Offset: 23, Destination: "foundation1"})
	f1, _ := s.Snapshot().Pile("foundation1")
	require.Len(t, f1.Cards, 1)
	assert.Equal(t, "AS", f1.Cards[0].String())
}

package testutil

import (
	"sort"
	"testing"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/stretchr/testify/require"
)

// ArrangedDeck returns a deck of decks*52 face-down cards where position i
// holds placements[i]. Every other position is filled with the remaining
// cards, highest rank first.
func ArrangedDeck(t *testing.T, decks int, placements map[int]string) []card.Card {
	t.Helper()
	size := 52 * decks

	remaining := card.Multiset(card.NewDeck(decks))
	deck := make([]card.Card, size)
	placed := make([]bool, size)
	for pos, notation := range placements {
		require.Truef(t, pos >= 0 && pos < size, "position %d outside the deck", pos)
		c, err := card.Parse(notation)
		require.NoError(t, err)
		require.Positivef(t, remaining[c.ID()], "card %s placed too often", notation)
		remaining[c.ID()]--
		deck[pos] = c.Turned(card.FaceDown)
		placed[pos] = true
	}

	var filler []card.Card
	for _, c := range card.NewDeck(decks) {
		if remaining[c.ID()] > 0 {
			remaining[c.ID()]--
			filler = append(filler, c)
		}
	}
	sort.SliceStable(filler, func(i, j int) bool { return filler[i].Rank > filler[j].Rank })

	next := 0
	for i := range deck {
		if !placed[i] {
			deck[i] = filler[next]
			next++
		}
	}
	return deck
}

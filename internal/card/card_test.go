package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck(1)
	require.Len(t, deck, 52)

	seen := Multiset(deck)
	assert.Len(t, seen, 52, "a single deck has no repeated identities")
	for _, c := range deck {
		assert.False(t, c.FaceUp())
	}

	double := NewDeck(2)
	require.Len(t, double, 104)
	for id, n := range Multiset(double) {
		assert.Equal(t, 2, n, "identity %v should appear twice", id)
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	deck := NewDeck(1)

	a := Shuffle(deck, 42)
	b := Shuffle(deck, 42)
	c := Shuffle(deck, 7)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, Multiset(deck), Multiset(a), "shuffle must not lose or duplicate cards")
	assert.Equal(t, NewDeck(1), deck, "shuffle must not reorder its input")
}

func TestParseAndString(t *testing.T) {
	testCases := []struct {
		in   string
		want Card
		str  string
	}{
		{in: "AS", want: Card{Rank: Ace, Suit: Spades, Face: FaceUp}, str: "AS"},
		{in: "10h", want: Card{Rank: 10, Suit: Hearts, Face: FaceUp}, str: "10H"},
		{in: " qd ", want: Card{Rank: Queen, Suit: Diamonds, Face: FaceUp}, str: "QD"},
		{in: "2C", want: Card{Rank: 2, Suit: Clubs, Face: FaceUp}, str: "2C"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.str, got.String())
		})
	}

	for _, bad := range []string{"", "A", "1S", "11S", "KX", "ZS"} {
		_, err := Parse(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestIdentityIgnoresFace(t *testing.T) {
	up := MustParse("7D")
	down := up.Turned(FaceDown)

	assert.Equal(t, up.ID(), down.ID())
	assert.NotEqual(t, up, down)
	assert.True(t, up.Red())
	assert.False(t, MustParse("7S").Red())
}

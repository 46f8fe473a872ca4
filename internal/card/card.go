// Package card defines the immutable playing-card value used by every
// variation, along with deck construction and a seeded shuffle.
package card

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Suit is one of the four French suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists the suits in deck-construction order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Symbol returns the Unicode suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Red reports whether the suit is a red suit.
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

// Rank is the card ordinal, Ace (1) through King (13).
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r > Ace && r < Jack {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Face is the orientation of a card.
type Face int

const (
	FaceDown Face = iota
	FaceUp
)

func (f Face) String() string {
	if f == FaceUp {
		return "face-up"
	}
	return "face-down"
}

// Card is an immutable playing card. Two cards with the same rank and suit
// share an identity regardless of face; double-deck variations simply hold
// two such values.
type Card struct {
	Rank Rank
	Suit Suit
	Face Face
}

// New returns a face-down card.
func New(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit, Face: FaceDown}
}

// ID is the identity of the card: rank and suit, face excluded.
type ID struct {
	Rank Rank
	Suit Suit
}

// ID returns the identity of c.
func (c Card) ID() ID {
	return ID{Rank: c.Rank, Suit: c.Suit}
}

// FaceUp reports whether the card is face up.
func (c Card) FaceUp() bool {
	return c.Face == FaceUp
}

// Red reports whether the card is a red card.
func (c Card) Red() bool {
	return c.Suit.Red()
}

// Turned returns a copy of c with the given face.
func (c Card) Turned(f Face) Card {
	c.Face = f
	return c
}

// String renders the card in compact notation, e.g. "10H" or "KS".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Parse reads compact notation ("AS", "10h", "QD") into a face-up card.
func Parse(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var suit Suit
	switch suitPart {
	case "C":
		suit = Clubs
	case "D":
		suit = Diamonds
	case "H":
		suit = Hearts
	case "S":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil || n < 2 || n > 10 {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(n)
	}
	return Card{Rank: rank, Suit: suit, Face: FaceUp}, nil
}

// MustParse is Parse for fixtures; it panics on malformed input.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NewDeck returns decks copies of the 52-card deck, face down, in suit then
// rank order.
func NewDeck(decks int) []Card {
	deck := make([]Card, 0, 52*decks)
	for d := 0; d < decks; d++ {
		for _, s := range Suits {
			for r := Ace; r <= King; r++ {
				deck = append(deck, New(r, s))
			}
		}
	}
	return deck
}

// Shuffle returns a shuffled copy of deck. The same seed always yields the
// same order.
func Shuffle(deck []Card, seed int64) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Multiset counts card identities; it is how conservation is checked.
func Multiset(cards []Card) map[ID]int {
	m := make(map[ID]int, len(cards))
	for _, c := range cards {
		m[c.ID()]++
	}
	return m
}

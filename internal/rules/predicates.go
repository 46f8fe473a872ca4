package rules

import (
	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/pile"
)

// Building blocks shared by the built-in variations.

// AlternatingDescending reports whether run is face up, alternates colors and
// descends by one rank at each step.
func AlternatingDescending(run []card.Card) bool {
	for i, c := range run {
		if !c.FaceUp() {
			return false
		}
		if i == 0 {
			continue
		}
		prev := run[i-1]
		if c.Red() == prev.Red() || c.Rank != prev.Rank-1 {
			return false
		}
	}
	return true
}

// AcceptFoundation builds a suit from Ace to King, one card at a time.
func AcceptFoundation(dest *pile.Container, run []card.Card) bool {
	if len(run) != 1 {
		return false
	}
	c := run[0]
	top, ok := dest.Top()
	if !ok {
		return c.Rank == card.Ace
	}
	return top.Suit == c.Suit && c.Rank == top.Rank+1
}

// AcceptTableau builds down in alternating colors. An empty container takes
// a King-led run when kingOnEmpty is set, any run otherwise.
func AcceptTableau(kingOnEmpty bool) pile.AcceptFunc {
	return func(dest *pile.Container, run []card.Card) bool {
		if !AlternatingDescending(run) {
			return false
		}
		top, ok := dest.Top()
		if !ok {
			return !kingOnEmpty || run[0].Rank == card.King
		}
		return top.FaceUp() && top.Red() != run[0].Red() && run[0].Rank == top.Rank-1
	}
}

// AcceptNothing rejects every run.
func AcceptNothing(*pile.Container, []card.Card) bool { return false }

// ExposeTop exposes only the top card, whatever its face.
func ExposeTop(c *pile.Container, offset int) bool {
	return offset == c.Len()-1
}

// ExposeFaceUp exposes any face-up card together with the cards above it.
func ExposeFaceUp(c *pile.Container, offset int) bool {
	cc, ok := c.Card(offset)
	return ok && cc.FaceUp()
}

// ExposeOrderedRun exposes a card when it and everything above it form an
// alternating descending run.
func ExposeOrderedRun(c *pile.Container, offset int) bool {
	run, err := c.RunFrom(offset)
	return err == nil && AlternatingDescending(run)
}

// FoundationsComplete reports a win when the foundations hold every card on
// the table.
func FoundationsComplete(t *pile.Table) bool {
	n := 0
	for _, c := range t.OfKind(pile.KindFoundation) {
		n += c.Len()
	}
	return n > 0 && n == t.Count()
}

// FoundationHeight is the highest rank of suit s on any foundation, or 0.
func FoundationHeight(t *pile.Table, s card.Suit) card.Rank {
	var height card.Rank
	for _, c := range t.OfKind(pile.KindFoundation) {
		if top, ok := c.Top(); ok && top.Suit == s && top.Rank > height {
			height = top.Rank
		}
	}
	return height
}

// FoundationFor returns the first foundation accepting the single card c.
func FoundationFor(t *pile.Table, c card.Card) (*pile.Container, bool) {
	for _, f := range t.OfKind(pile.KindFoundation) {
		if f.CanAccept([]card.Card{c}) {
			return f, true
		}
	}
	return nil, false
}

// SafeToFoundation sends a top card to a foundation when no tableau could
// still need it: Aces and Twos always, other cards once both suits of the
// opposite color reach one rank below.
func SafeToFoundation(t *pile.Table, source *pile.Container, offset int) (string, bool) {
	if source.Kind() == pile.KindFoundation || source.Kind() == pile.KindStock || offset != source.Len()-1 {
		return "", false
	}
	c, ok := source.Top()
	if !ok || !c.FaceUp() {
		return "", false
	}
	dest, ok := FoundationFor(t, c)
	if !ok {
		return "", false
	}
	if c.Rank > 2 {
		for _, s := range card.Suits {
			if s.Red() != c.Red() && FoundationHeight(t, s) < c.Rank-1 {
				return "", false
			}
		}
	}
	return dest.Name(), true
}

// NoAutoMoves never proposes a move.
func NoAutoMoves(*pile.Table, *pile.Container, int) (string, bool) { return "", false }

// ClickToFoundation maps a click on a top card to the first foundation that
// takes it.
func ClickToFoundation(t *pile.Table, source string, offset int) (pile.Move, bool) {
	src, ok := t.Container(source)
	if !ok || src.Kind() == pile.KindFoundation || offset != src.Len()-1 {
		return pile.Move{}, false
	}
	c, _ := src.Top()
	if !c.FaceUp() {
		return pile.Move{}, false
	}
	dest, ok := FoundationFor(t, c)
	if !ok {
		return pile.Move{}, false
	}
	return pile.Move{Source: source, Offset: offset, Destination: dest.Name()}, true
}

package rules

import (
	"fmt"

	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/pile"
)

// LayoutDeal interprets the deal steps of a layout. Each container receives
// its cards bottom first, so deck[0] ends at the bottom of the first
// container dealt to.
func LayoutDeal(plan []*config.DealStep, deck []card.Card, t *pile.Table) error {
	next := 0
	for _, step := range plan {
		containers := t.OfType(step.Container)
		if len(containers) == 0 {
			return fmt.Errorf("no containers of type '%s'", step.Container)
		}

		counts := step.Counts
		if step.Rest {
			counts = []int{len(deck) - next}
		}
		if len(counts) != len(containers) {
			return fmt.Errorf("deal to '%s' has %d counts for %d containers", step.Container, len(counts), len(containers))
		}

		for i, c := range containers {
			n := counts[i]
			if next+n > len(deck) {
				return fmt.Errorf("deal to '%s' needs %d more cards, %d left", c.Name(), n, len(deck)-next)
			}
			if err := c.Push(faced(deck[next:next+n], step.FaceUp)...); err != nil {
				return err
			}
			next += n
		}
	}
	if next != len(deck) {
		return fmt.Errorf("deal placed %d of %d cards", next, len(deck))
	}
	return nil
}

// faced returns a copy of run with the top faceUp cards face up and the rest
// face down.
func faced(run []card.Card, faceUp int) []card.Card {
	out := make([]card.Card, len(run))
	firstUp := len(run) - faceUp
	if faceUp == config.AllFaceUp || firstUp < 0 {
		firstUp = 0
	}
	for i, c := range run {
		if i >= firstUp {
			out[i] = c.Turned(card.FaceUp)
		} else {
			out[i] = c.Turned(card.FaceDown)
		}
	}
	return out
}

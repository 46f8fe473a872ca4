// Package rules turns a loaded variation layout into an immutable RuleSet by
// resolving every operation it needs from the registry.
package rules

import (
	"github.com/specialistvlad/solitaire/internal/card"
	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/pile"
	"github.com/specialistvlad/solitaire/internal/registry"
)

// LegalFunc decides whether m is allowed by the variation, independent of
// whether the destination would accept the cards.
type LegalFunc func(t *pile.Table, m pile.Move) bool

// WonFunc reports whether the game is won.
type WonFunc func(t *pile.Table) bool

// AutoMoveFunc proposes a destination for the run starting at offset in
// source, when the variation wants it moved without the player asking.
type AutoMoveFunc func(t *pile.Table, source *pile.Container, offset int) (destination string, ok bool)

// DealFunc places deck onto the empty table. deck[0] is dealt first.
type DealFunc func(plan []*config.DealStep, deck []card.Card, t *pile.Table) error

// ClickFunc returns the move a single click on (source, offset) stands for.
type ClickFunc func(t *pile.Table, source string, offset int) (pile.Move, bool)

// Operation tags every variation must implement.
var (
	OpLegal    = registry.NewOperation[LegalFunc](registry.FamilyRuleSet, "legal")
	OpWon      = registry.NewOperation[WonFunc](registry.FamilyRuleSet, "won")
	OpAutoMove = registry.NewOperation[AutoMoveFunc](registry.FamilyRuleSet, "automove")
	OpDeal     = registry.NewOperation[DealFunc](registry.FamilyRuleSet, "deal")
	OpClick    = registry.NewOperation[ClickFunc](registry.FamilyRuleSet, "click")

	OpAccept = registry.NewOperation[pile.AcceptFunc](registry.FamilyContainer, "accept")
	OpExpose = registry.NewOperation[pile.ExposeFunc](registry.FamilyContainer, "expose")
)

// Operations lists the core operation tags in declaration order.
func Operations() []registry.OperationTag {
	return []registry.OperationTag{OpLegal, OpWon, OpAutoMove, OpDeal, OpClick, OpAccept, OpExpose}
}

// DeclareOperations declares the core operations on r.
func DeclareOperations(r *registry.Registry) error {
	for _, op := range Operations() {
		if err := r.DeclareOperation(op); err != nil {
			return err
		}
	}
	return nil
}

// DeclareVariants declares the rule-set variant of def and one container
// variant per container type.
func DeclareVariants(r *registry.Registry, def *config.VariationDefinition) error {
	if err := r.DeclareVariant(registry.RuleSetVariant(def.Name)); err != nil {
		return err
	}
	for _, c := range def.Containers {
		if err := r.DeclareVariant(registry.ContainerVariant(def.Name, c.Type)); err != nil {
			return err
		}
	}
	return nil
}

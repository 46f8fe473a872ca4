package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/solitaire/internal/config"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateVariation converts a variation block into the agnostic model,
// evaluating its deal expressions.
func (l *Loader) translateVariation(ctx context.Context, v *variationBlock, source string) (*config.VariationDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("variation", v.Name, "file", source)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL variation to internal config model.")

	def := &config.VariationDefinition{
		Name:        v.Name,
		Description: v.Description,
		Decks:       v.Decks,
		AutoMoves:   v.AutoMoves == nil || *v.AutoMoves,
		Source:      source,
	}
	if def.Decks == 0 {
		def.Decks = 1
	}

	for _, c := range v.Containers {
		count := c.Count
		if count == 0 {
			count = 1
		}
		def.Containers = append(def.Containers, &config.ContainerDefinition{
			Type:      c.Type,
			Kind:      c.Kind,
			Count:     count,
			Capacity:  c.Capacity,
			FaceDown:  c.FaceDown,
			RevealTop: c.RevealTop,
		})
	}

	evalCtx := newEvalContext(def.Decks)
	for _, d := range v.Deals {
		step, err := translateDeal(ctx, d, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("in %s, variation '%s', deal '%s': %w", source, v.Name, d.Container, err)
		}
		def.Deal = append(def.Deal, step)
	}
	return def, nil
}

func translateDeal(ctx context.Context, d *dealBlock, evalCtx *hcl.EvalContext) (*config.DealStep, error) {
	step := &config.DealStep{Container: d.Container, Rest: d.Rest}

	if isExprDefined(ctx, d.Counts, "counts") {
		if diags := gohcl.DecodeExpression(d.Counts, evalCtx, &step.Counts); diags.HasErrors() {
			return nil, diags
		}
	}

	if isExprDefined(ctx, d.FaceUp, "face_up") {
		faceUp, err := decodeFaceUp(d.FaceUp, evalCtx)
		if err != nil {
			return nil, err
		}
		step.FaceUp = faceUp
	}
	return step, nil
}

// decodeFaceUp accepts a number or the string "all".
func decodeFaceUp(expr hcl.Expression, evalCtx *hcl.EvalContext) (int, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	if val.Type() == cty.String {
		if val.AsString() == "all" {
			return config.AllFaceUp, nil
		}
		return 0, fmt.Errorf("face_up must be a number or \"all\", got %q", val.AsString())
	}

	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, fmt.Errorf("face_up: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("face_up must not be negative, got %d", n)
	}
	return n, nil
}

package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/solitaire/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder fills omitted optional attributes with zero-width
// expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// newEvalContext returns the context deal expressions are evaluated in.
func newEvalContext(decks int) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"decks":     cty.NumberIntVal(int64(decks)),
			"deck_size": cty.NumberIntVal(int64(52 * decks)),
		},
		Functions: map[string]function.Function{
			"range":  stdlib.RangeFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
			"length": stdlib.LengthFunc,
		},
	}
}

package registry

import (
	"context"
	"errors"
	"sort"

	"github.com/specialistvlad/solitaire/internal/ctxlog"
)

// ValidateComplete checks that every variant in variants has an
// implementation of every operation in ops. Every missing pair is reported,
// not just the first.
func (r *Registry) ValidateComplete(variants []Variant, ops []OperationTag) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []Pair
	for _, v := range variants {
		for _, op := range ops {
			if _, ok := r.impls[pair{variant: v, operation: op.Name()}]; !ok {
				missing = append(missing, Pair{Variant: v, Operation: op.Name()})
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Variant.Family != missing[j].Variant.Family {
			return missing[i].Variant.Family < missing[j].Variant.Family
		}
		if missing[i].Variant.Name != missing[j].Variant.Name {
			return missing[i].Variant.Name < missing[j].Variant.Name
		}
		return missing[i].Operation < missing[j].Operation
	})
	return &CompositionError{Kind: ErrIncompleteMatrix, Missing: missing}
}

// Validate runs ValidateComplete for each family over all declared variants
// and operations of that family. The missing pairs of both families are
// merged into a single error.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var missing []Pair
	for _, f := range []Family{FamilyRuleSet, FamilyContainer} {
		variants := r.Variants(f)
		ops := r.Operations(f)
		logger.Debug("Validating operation matrix.", "family", f.String(), "variants", len(variants), "operations", len(ops))

		err := r.ValidateComplete(variants, ops)
		var compErr *CompositionError
		if errors.As(err, &compErr) {
			missing = append(missing, compErr.Missing...)
		} else if err != nil {
			return err
		}
	}

	if len(missing) > 0 {
		return &CompositionError{Kind: ErrIncompleteMatrix, Missing: missing}
	}
	logger.Debug("Operation matrix is complete.")
	return nil
}

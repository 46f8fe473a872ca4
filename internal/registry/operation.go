package registry

import (
	"fmt"
	"log/slog"
)

// OperationTag is the untyped view of an operation, used where operations
// are listed rather than invoked.
type OperationTag interface {
	Name() string
	Family() Family
}

// Operation is a typed operation tag. F is the implementation signature; it
// ties Register and Resolve together at compile time.
type Operation[F any] struct {
	name   string
	family Family
}

// NewOperation creates an operation tag for variants of family.
func NewOperation[F any](family Family, name string) Operation[F] {
	return Operation[F]{name: name, family: family}
}

// Name returns the operation name.
func (o Operation[F]) Name() string { return o.name }

// Family returns the family the operation applies to.
func (o Operation[F]) Family() Family { return o.family }

// Register maps (v, op) to impl.
func Register[F any](r *Registry, v Variant, op Operation[F], impl F) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}
	if _, ok := r.variants[v]; !ok {
		return &CompositionError{
			Kind:      ErrUnknownVariant,
			Variant:   v,
			Operation: op.name,
			Detail:    fmt.Sprintf("variant '%s' was never declared", v),
		}
	}
	declared, ok := r.operations[op.name]
	if !ok {
		return &CompositionError{
			Kind:      ErrUnknownOperation,
			Variant:   v,
			Operation: op.name,
			Detail:    fmt.Sprintf("operation '%s' was never declared", op.name),
		}
	}
	if declared.Family() != v.Family {
		return &CompositionError{
			Kind:      ErrUnknownOperation,
			Variant:   v,
			Operation: op.name,
			Detail:    fmt.Sprintf("operation '%s' applies to %s variants, not '%s'", op.name, declared.Family(), v),
		}
	}
	if _, ok := declared.(Operation[F]); !ok {
		return &CompositionError{
			Kind:      ErrUnknownOperation,
			Variant:   v,
			Operation: op.name,
			Detail:    fmt.Sprintf("operation '%s' was declared with a different signature", op.name),
		}
	}

	key := pair{variant: v, operation: op.name}
	if _, exists := r.impls[key]; exists {
		return &CompositionError{
			Kind:      ErrDuplicateRegistration,
			Variant:   v,
			Operation: op.name,
			Detail:    fmt.Sprintf("operation '%s' already registered for '%s'", op.name, v),
		}
	}
	slog.Debug("Registering implementation.", "variant", v.String(), "operation", op.name)
	r.impls[key] = impl
	return nil
}

// Resolve returns the implementation registered for (v, op).
func Resolve[F any](r *Registry, v Variant, op Operation[F]) (F, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero F
	impl, ok := r.impls[pair{variant: v, operation: op.name}]
	if !ok {
		return zero, &CompositionError{
			Kind:      ErrMissingImplementation,
			Variant:   v,
			Operation: op.name,
			Detail:    fmt.Sprintf("no '%s' implementation for '%s'", op.name, v),
		}
	}
	fn, ok := impl.(F)
	if !ok {
		return zero, &CompositionError{
			Kind:      ErrUnknownOperation,
			Variant:   v,
			Operation: op.name,
			Detail:    fmt.Sprintf("operation '%s' resolved with a different signature", op.name),
		}
	}
	return fn, nil
}

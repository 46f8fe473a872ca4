package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateRegistration indicates a pair, variant or operation registered twice.
	ErrDuplicateRegistration = errors.New("duplicate registration")
	// ErrUnknownVariant indicates a registration against an undeclared variant.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrUnknownOperation indicates a registration against an undeclared operation.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrIncompleteMatrix indicates missing (variant, operation) pairs.
	ErrIncompleteMatrix = errors.New("incomplete operation matrix")
	// ErrMissingImplementation indicates Resolve found nothing for a pair.
	ErrMissingImplementation = errors.New("missing implementation")
	// ErrSealed indicates a mutation after the registry was validated.
	ErrSealed = errors.New("registry is sealed")
)

// Pair names one (variant, operation) cell of the matrix.
type Pair struct {
	Variant   Variant
	Operation string
}

func (p Pair) String() string {
	return fmt.Sprintf("%s × %s", p.Variant, p.Operation)
}

// CompositionError is a startup failure of the registry. Kind is one of the
// sentinel errors above and is what errors.Is matches against.
type CompositionError struct {
	Kind      error
	Variant   Variant
	Operation string
	Detail    string
	Missing   []Pair
}

// Error implements the error interface.
func (e *CompositionError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	lines := make([]string, 0, len(e.Missing))
	for _, p := range e.Missing {
		lines = append(lines, p.String())
	}
	return fmt.Sprintf("%v:\n- %s", e.Kind, strings.Join(lines, "\n- "))
}

// Unwrap exposes Kind to errors.Is.
func (e *CompositionError) Unwrap() error {
	return e.Kind
}

package registry

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"sync"
)

// Module is the interface that every variation or operation package must
// implement to be registered.
type Module interface {
	// Name identifies the module in logs and errors.
	Name() string
	// Layouts returns the declarative layout files shipped with the module,
	// or nil if the module only contributes operations.
	Layouts() fs.FS
	// Register declares operations and registers implementations.
	Register(r *Registry) error
}

// Family partitions variants and operations. An operation only applies to
// variants of its own family.
type Family int

const (
	// FamilyRuleSet variants are whole variations ("klondike").
	FamilyRuleSet Family = iota
	// FamilyContainer variants are container types within a variation
	// ("klondike.tableau").
	FamilyContainer
)

func (f Family) String() string {
	switch f {
	case FamilyRuleSet:
		return "ruleset"
	case FamilyContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Variant is an entity-variant tag.
type Variant struct {
	Family Family
	Name   string
}

func (v Variant) String() string {
	return v.Family.String() + ":" + v.Name
}

// RuleSetVariant returns the variant tag of a variation.
func RuleSetVariant(variation string) Variant {
	return Variant{Family: FamilyRuleSet, Name: variation}
}

// ContainerVariant returns the variant tag of a container type within a
// variation.
func ContainerVariant(variation, containerType string) Variant {
	return Variant{Family: FamilyContainer, Name: variation + "." + containerType}
}

type pair struct {
	variant   Variant
	operation string
}

// Registry holds declared variants, declared operations, and the
// implementations registered for each pair.
type Registry struct {
	mu sync.RWMutex

	variants     map[Variant]struct{}
	variantOrder []Variant

	operations     map[string]OperationTag
	operationOrder []string

	impls  map[pair]any
	sealed bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		variants:   make(map[Variant]struct{}),
		operations: make(map[string]OperationTag),
		impls:      make(map[pair]any),
	}
}

// DeclareVariant adds v to the closed set of variants.
func (r *Registry) DeclareVariant(v Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	if _, exists := r.variants[v]; exists {
		return &CompositionError{
			Kind:    ErrDuplicateRegistration,
			Variant: v,
			Detail:  fmt.Sprintf("variant '%s' already declared", v),
		}
	}
	slog.Debug("Declaring variant.", "variant", v.String())
	r.variants[v] = struct{}{}
	r.variantOrder = append(r.variantOrder, v)
	return nil
}

// DeclareOperation adds op to the closed set of operations.
func (r *Registry) DeclareOperation(op OperationTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrSealed
	}
	if _, exists := r.operations[op.Name()]; exists {
		return &CompositionError{
			Kind:      ErrDuplicateRegistration,
			Operation: op.Name(),
			Detail:    fmt.Sprintf("operation '%s' already declared", op.Name()),
		}
	}
	slog.Debug("Declaring operation.", "operation", op.Name(), "family", op.Family().String())
	r.operations[op.Name()] = op
	r.operationOrder = append(r.operationOrder, op.Name())
	return nil
}

// Variants returns the declared variants of family f in declaration order.
func (r *Registry) Variants(f Family) []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Variant
	for _, v := range r.variantOrder {
		if v.Family == f {
			out = append(out, v)
		}
	}
	return out
}

// Operations returns the declared operations of family f in declaration order.
func (r *Registry) Operations(f Family) []OperationTag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []OperationTag
	for _, name := range r.operationOrder {
		if op := r.operations[name]; op.Family() == f {
			out = append(out, op)
		}
	}
	return out
}

// Seal freezes the registry. Declarations and registrations after Seal fail
// with ErrSealed; resolution keeps working.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Implemented returns, sorted, the operation names registered for v.
func (r *Registry) Implemented(v Variant) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for p := range r.impls {
		if p.variant == v {
			names = append(names, p.operation)
		}
	}
	sort.Strings(names)
	return names
}

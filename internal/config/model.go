package config

import (
	"errors"
	"fmt"
)

// AllFaceUp in DealStep.FaceUp deals every card of a container face up.
const AllFaceUp = -1

// Model is the unified representation of all loaded variation layouts.
type Model struct {
	Variations map[string]*VariationDefinition
	// Order lists variation names in load order.
	Order []string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Variations: make(map[string]*VariationDefinition)}
}

// Add inserts def. Defining the same variation twice is an error.
func (m *Model) Add(def *VariationDefinition) error {
	if existing, ok := m.Variations[def.Name]; ok {
		return fmt.Errorf("variation '%s' defined twice (%s and %s)", def.Name, existing.Source, def.Source)
	}
	m.Variations[def.Name] = def
	m.Order = append(m.Order, def.Name)
	return nil
}

// Merge adds every variation of other to m.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, name := range other.Order {
		if err := m.Add(other.Variations[name]); err != nil {
			return err
		}
	}
	return nil
}

// Definitions returns the variations in load order.
func (m *Model) Definitions() []*VariationDefinition {
	out := make([]*VariationDefinition, 0, len(m.Order))
	for _, name := range m.Order {
		out = append(out, m.Variations[name])
	}
	return out
}

// VariationDefinition is the layout of one variation.
type VariationDefinition struct {
	Name        string
	Description string
	Decks       int
	AutoMoves   bool
	Containers  []*ContainerDefinition
	Deal        []*DealStep
	// Source is the file the definition was read from.
	Source string
}

// ContainerDefinition declares Count containers of one type.
type ContainerDefinition struct {
	Type      string
	Kind      string
	Count     int
	Capacity  int
	FaceDown  bool
	RevealTop bool
}

// DealStep deals cards onto the containers of one type. Either Counts gives
// one count per container, or Rest sends every remaining card to the single
// container of the type.
type DealStep struct {
	Container string
	Counts    []int
	// FaceUp is how many top cards of each container end face up. AllFaceUp
	// turns them all.
	FaceUp int
	Rest   bool
}

// Container returns the container definition of the named type.
func (d *VariationDefinition) Container(typeName string) (*ContainerDefinition, bool) {
	for _, c := range d.Containers {
		if c.Type == typeName {
			return c, true
		}
	}
	return nil, false
}

// Validate checks the definition for structural errors. All problems are
// reported together.
func (d *VariationDefinition) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("variation without a name"))
	}
	if d.Decks < 1 {
		errs = append(errs, fmt.Errorf("decks must be at least 1, got %d", d.Decks))
	}
	if len(d.Containers) == 0 {
		errs = append(errs, errors.New("no containers declared"))
	}

	seen := make(map[string]bool)
	for _, c := range d.Containers {
		if seen[c.Type] {
			errs = append(errs, fmt.Errorf("container type '%s' declared twice", c.Type))
		}
		seen[c.Type] = true
		if c.Count < 1 {
			errs = append(errs, fmt.Errorf("container '%s': count must be at least 1, got %d", c.Type, c.Count))
		}
		if c.Capacity < 0 {
			errs = append(errs, fmt.Errorf("container '%s': negative capacity", c.Type))
		}
	}

	rest := 0
	for _, step := range d.Deal {
		c, ok := d.Container(step.Container)
		if !ok {
			errs = append(errs, fmt.Errorf("deal targets undeclared container '%s'", step.Container))
			continue
		}
		switch {
		case step.Rest:
			rest++
			if c.Count != 1 {
				errs = append(errs, fmt.Errorf("deal rest to '%s' needs a single container, it has %d", c.Type, c.Count))
			}
			if len(step.Counts) > 0 {
				errs = append(errs, fmt.Errorf("deal to '%s' sets both counts and rest", c.Type))
			}
		case len(step.Counts) != c.Count:
			errs = append(errs, fmt.Errorf("deal to '%s' has %d counts for %d containers", c.Type, len(step.Counts), c.Count))
		}
		for _, n := range step.Counts {
			if n < 0 {
				errs = append(errs, fmt.Errorf("deal to '%s' has negative count %d", c.Type, n))
			}
		}
	}
	if rest > 1 {
		errs = append(errs, errors.New("more than one deal step takes the rest"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("variation '%s' (%s): %w", d.Name, d.Source, errors.Join(errs...))
	}
	return nil
}

// Package ontology defines the closed set of diagnostic traits the engine
// recognizes. Every trait carries an ordered domain of legal values; any
// trait or value outside the ontology is rejected at the boundary so a typo
// ("positve") can never silently corrupt a score.
package ontology

import "fmt"

// Trait identifies a single standardized diagnostic test or characteristic,
// e.g. "gram_stain" or "oxidase".
type Trait string

// TraitDefinition describes one trait: its identifier, display name, and the
// ordered domain of values an observation may take.
type TraitDefinition struct {
	ID   Trait  `yaml:"id"`
	Name string `yaml:"name"`

	// Domain is the ordered set of legal observed values.
	Domain []string `yaml:"domain"`

	// PlausibilityOverride marks traits that participate in forced-negative
	// overrides: reference profiles may carry Negative (Not Plausible) for
	// this trait when the biologically true reaction cannot be observed
	// under standard test conditions.
	PlausibilityOverride bool `yaml:"plausibility_override,omitempty"`
}

// UnknownTraitError reports a trait identifier that is not registered in the
// ontology. Callers can use errors.As to detect it.
type UnknownTraitError struct {
	Trait Trait
}

func (e *UnknownTraitError) Error() string {
	return fmt.Sprintf("unknown trait %q", string(e.Trait))
}

// InvalidValueError reports an observed value outside a trait's legal domain.
type InvalidValueError struct {
	Trait Trait
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("value %q is not in the domain of trait %q", e.Value, string(e.Trait))
}

// Ontology is the immutable registry of trait definitions. It is built once
// at load time and only read afterwards, so it is safe for concurrent use.
type Ontology struct {
	defs  map[Trait]TraitDefinition
	order []Trait
}

// New builds an Ontology from definitions, preserving their order. It rejects
// duplicate identifiers and empty domains.
func New(defs []TraitDefinition) (*Ontology, error) {
	o := &Ontology{
		defs:  make(map[Trait]TraitDefinition, len(defs)),
		order: make([]Trait, 0, len(defs)),
	}
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("trait definition missing identifier (name=%q)", def.Name)
		}
		if _, dup := o.defs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate trait definition %q", string(def.ID))
		}
		if len(def.Domain) == 0 {
			return nil, fmt.Errorf("trait %q has an empty value domain", string(def.ID))
		}
		seen := make(map[string]bool, len(def.Domain))
		for _, v := range def.Domain {
			if seen[v] {
				return nil, fmt.Errorf("trait %q repeats domain value %q", string(def.ID), v)
			}
			seen[v] = true
		}
		o.defs[def.ID] = def
		o.order = append(o.order, def.ID)
	}
	if len(o.order) == 0 {
		return nil, fmt.Errorf("ontology has no trait definitions")
	}
	return o, nil
}

// Traits returns the trait identifiers in definition order.
func (o *Ontology) Traits() []Trait {
	out := make([]Trait, len(o.order))
	copy(out, o.order)
	return out
}

// Len returns the number of registered traits.
func (o *Ontology) Len() int { return len(o.order) }

// Definition returns the definition for a trait.
func (o *Ontology) Definition(t Trait) (TraitDefinition, bool) {
	def, ok := o.defs[t]
	return def, ok
}

// DomainOf returns the ordered legal values for a trait, or an
// UnknownTraitError if the trait is not registered.
func (o *Ontology) DomainOf(t Trait) ([]string, error) {
	def, ok := o.defs[t]
	if !ok {
		return nil, &UnknownTraitError{Trait: t}
	}
	out := make([]string, len(def.Domain))
	copy(out, def.Domain)
	return out, nil
}

// IsLegal reports whether value is in the trait's domain. The trait itself
// must be registered; an unknown trait is an UnknownTraitError, never a
// silent false.
func (o *Ontology) IsLegal(t Trait, value string) (bool, error) {
	def, ok := o.defs[t]
	if !ok {
		return false, &UnknownTraitError{Trait: t}
	}
	for _, v := range def.Domain {
		if v == value {
			return true, nil
		}
	}
	return false, nil
}

// Validate checks a trait/value pair at the observation boundary. It returns
// an UnknownTraitError or InvalidValueError, or nil if the pair is legal.
func (o *Ontology) Validate(t Trait, value string) error {
	ok, err := o.IsLegal(t, value)
	if err != nil {
		return err
	}
	if !ok {
		return &InvalidValueError{Trait: t, Value: value}
	}
	return nil
}

// Canonicalize maps value onto the trait's domain ignoring case and
// surrounding whitespace, returning the canonical spelling. Loaders use it to
// normalize spreadsheet cells before they reach the core.
func (o *Ontology) Canonicalize(t Trait, value string) (string, error) {
	def, ok := o.defs[t]
	if !ok {
		return "", &UnknownTraitError{Trait: t}
	}
	folded := foldValue(value)
	for _, v := range def.Domain {
		if foldValue(v) == folded {
			return v, nil
		}
	}
	return "", &InvalidValueError{Trait: t, Value: value}
}

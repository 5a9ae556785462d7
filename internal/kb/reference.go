// Package kb holds the reference knowledge base: one profile of expected
// trait values per genus, loaded once and read-only for the process lifetime.
package kb

import (
	"fmt"

	"phenokey/internal/ontology"
)

// RefKind distinguishes the four states a reference cell can be in.
type RefKind int

const (
	// RefConcrete is a single expected domain value.
	RefConcrete RefKind = iota

	// RefVariable means the organism exhibits both outcomes across strains.
	// Variable is permissive: it is compatible with any observed value.
	RefVariable

	// RefUnknown means no reliable data exists for this trait. Unknown is
	// data in its own right and must never penalize a genus.
	RefUnknown

	// RefNegativeNotPlausible is a forced-negative override: the biologically
	// true reaction is implausible to observe under standard test conditions
	// (e.g. obligate intracellular organisms on standard media). It compares
	// like a concrete Negative but is flagged separately in explanations.
	RefNegativeNotPlausible
)

// String returns the spreadsheet spelling of the kind.
func (k RefKind) String() string {
	switch k {
	case RefConcrete:
		return "Concrete"
	case RefVariable:
		return "Variable"
	case RefUnknown:
		return "Unknown"
	case RefNegativeNotPlausible:
		return "Negative (Not Plausible)"
	default:
		return fmt.Sprintf("RefKind(%d)", int(k))
	}
}

// ReferenceValue is one cell of a genus profile.
type ReferenceValue struct {
	Kind RefKind

	// Value is the expected domain value. Set for RefConcrete; for
	// RefNegativeNotPlausible it is the domain's Negative, the value the
	// override compares against.
	Value string
}

// Concrete returns a reference holding one expected domain value.
func Concrete(value string) ReferenceValue {
	return ReferenceValue{Kind: RefConcrete, Value: value}
}

// Variable returns the strain-variable reference.
func Variable() ReferenceValue { return ReferenceValue{Kind: RefVariable} }

// Unknown returns the no-reliable-data reference.
func Unknown() ReferenceValue { return ReferenceValue{Kind: RefUnknown} }

// NegativeNotPlausible returns the forced-negative override. It compares as
// Negative.
func NegativeNotPlausible() ReferenceValue {
	return ReferenceValue{Kind: RefNegativeNotPlausible, Value: ontology.ValueNegative}
}

// Display renders the cell the way a curator would write it.
func (rv ReferenceValue) Display() string {
	if rv.Kind == RefConcrete {
		return rv.Value
	}
	return rv.Kind.String()
}

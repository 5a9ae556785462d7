package ontology

import "strings"

// Reaction values shared by most biochemical traits.
const (
	ValuePositive = "Positive"
	ValueNegative = "Negative"
)

func reactionDomain() []string {
	return []string{ValuePositive, ValueNegative}
}

// Default returns the stock microbiology ontology: the standard bench tests
// an identification table is usually keyed on. KB files that ship their own
// trait sheet override it entirely.
func Default() *Ontology {
	defs := []TraitDefinition{
		{ID: "gram_stain", Name: "Gram Stain", Domain: reactionDomain()},
		{ID: "shape", Name: "Shape", Domain: []string{"Cocci", "Bacilli", "Spirilla", "Vibrio", "Coccobacilli"}},
		{ID: "catalase", Name: "Catalase", Domain: reactionDomain()},
		{ID: "oxidase", Name: "Oxidase", Domain: reactionDomain()},
		{ID: "spore_formation", Name: "Spore Formation", Domain: reactionDomain()},
		{ID: "motility", Name: "Motility", Domain: reactionDomain()},
		{ID: "indole", Name: "Indole", Domain: reactionDomain()},
		{ID: "urease", Name: "Urease", Domain: reactionDomain()},
		{ID: "citrate", Name: "Citrate Utilization", Domain: reactionDomain()},
		{ID: "lactose_fermentation", Name: "Lactose Fermentation", Domain: reactionDomain()},
		{ID: "glucose_fermentation", Name: "Glucose Fermentation", Domain: reactionDomain()},
		{ID: "h2s_production", Name: "H2S Production", Domain: reactionDomain()},
		{ID: "coagulase", Name: "Coagulase", Domain: reactionDomain()},
		{ID: "hemolysis", Name: "Hemolysis", Domain: []string{"Alpha", "Beta", "Gamma"}},
		{ID: "oxygen_requirement", Name: "Oxygen Requirement", Domain: []string{"Aerobic", "Anaerobic", "Facultative", "Microaerophilic"}},
		{ID: "growth_on_macconkey", Name: "Growth on MacConkey", Domain: reactionDomain(), PlausibilityOverride: true},
		{ID: "growth_on_blood_agar", Name: "Growth on Blood Agar", Domain: reactionDomain(), PlausibilityOverride: true},
	}
	o, err := New(defs)
	if err != nil {
		// The stock table is fixed at compile time; a failure here is a bug.
		panic(err)
	}
	return o
}

// foldValue normalizes a value for case/whitespace-insensitive comparison.
func foldValue(v string) string {
	return strings.ToLower(strings.Join(strings.Fields(v), " "))
}

// TraitByName resolves a trait by its display name or identifier, ignoring
// case. Spreadsheet headers use display names; the API uses identifiers.
func (o *Ontology) TraitByName(name string) (Trait, bool) {
	folded := foldValue(name)
	for _, id := range o.order {
		def := o.defs[id]
		if foldValue(string(def.ID)) == folded || foldValue(def.Name) == folded {
			return id, true
		}
	}
	return "", false
}

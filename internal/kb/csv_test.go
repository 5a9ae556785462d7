package kb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Genus,Gram Stain,Oxidase,Shape,Extra Notes
Staphylococcus,positive,NEGATIVE,Cocci,clusters on smear
Pseudomonas,Negative,Positive,Bacilli,
Chlamydia,Unknown,Negative (Not Plausible),Variable,obligate intracellular
`

func TestLoadCSV(t *testing.T) {
	ont := testOntology(t)
	base, err := LoadCSV(strings.NewReader(sampleCSV), ont)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chlamydia", "Pseudomonas", "Staphylococcus"}, base.Genera())

	// Cells normalize case and spreadsheet spellings.
	rv, _ := base.Reference("Staphylococcus", "gram_stain")
	assert.Equal(t, Concrete("Positive"), rv)
	rv, _ = base.Reference("Staphylococcus", "oxidase")
	assert.Equal(t, Concrete("Negative"), rv)

	rv, _ = base.Reference("Chlamydia", "gram_stain")
	assert.Equal(t, Unknown(), rv)
	rv, _ = base.Reference("Chlamydia", "oxidase")
	assert.Equal(t, NegativeNotPlausible(), rv)
	rv, _ = base.Reference("Chlamydia", "shape")
	assert.Equal(t, Variable(), rv)

	rec, _ := base.Record("Chlamydia")
	assert.Equal(t, "obligate intracellular", rec.Notes)
	rec, _ = base.Record("Pseudomonas")
	assert.Empty(t, rec.Notes)
}

func TestLoadCSV_Malformed(t *testing.T) {
	ont := testOntology(t)

	cases := []struct {
		name string
		csv  string
	}{
		{"no_genus_column", "Gram Stain,Oxidase,Shape\nPositive,Negative,Cocci\n"},
		{"unknown_column", "Genus,Gram Stain,Oxidase,Shape,Spore Stain\nA,Positive,Negative,Cocci,Positive\n"},
		{"missing_trait_column", "Genus,Gram Stain,Oxidase\nA,Positive,Negative\n"},
		{"duplicate_trait_column", "Genus,Gram Stain,Gram Stain,Oxidase,Shape\nA,Positive,Positive,Negative,Cocci\n"},
		{"empty_cell", "Genus,Gram Stain,Oxidase,Shape\nA,,Negative,Cocci\n"},
		{"value_outside_domain", "Genus,Gram Stain,Oxidase,Shape\nA,Weak,Negative,Cocci\n"},
		{"empty_genus", "Genus,Gram Stain,Oxidase,Shape\n ,Positive,Negative,Cocci\n"},
		{"no_rows", "Genus,Gram Stain,Oxidase,Shape\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tc.csv), ont)
			var malformed *MalformedKBError
			require.ErrorAs(t, err, &malformed, "expected MalformedKBError, got %v", err)
		})
	}
}

func TestLoadCSV_HeaderMatchesByIdentifierToo(t *testing.T) {
	ont := testOntology(t)
	csv := "Genus,gram_stain,oxidase,shape\nA,Positive,Negative,Cocci\n"
	base, err := LoadCSV(strings.NewReader(csv), ont)
	require.NoError(t, err)
	rv, _ := base.Reference("A", "gram_stain")
	assert.Equal(t, Concrete("Positive"), rv)
}

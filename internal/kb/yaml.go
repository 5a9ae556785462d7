package kb

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"phenokey/internal/ontology"
)

// yamlKB is the on-disk shape of a self-contained KB file: the trait sheet
// and the genus table in one document.
type yamlKB struct {
	Traits []ontology.TraitDefinition `yaml:"traits"`
	Genera []yamlGenus                `yaml:"genera"`
}

type yamlGenus struct {
	Genus  string            `yaml:"genus"`
	Traits map[string]string `yaml:"traits"`
	Notes  string            `yaml:"notes,omitempty"`
}

// LoadYAML reads a self-contained KB (ontology plus genus table) from r.
// Cell values use the same spellings as the CSV loader: a domain value,
// Variable, Unknown, or Negative (Not Plausible).
func LoadYAML(r io.Reader) (*KB, error) {
	var f yamlKB
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &MalformedKBError{Reason: fmt.Sprintf("decoding KB file: %v", err)}
	}

	ont, err := ontology.New(f.Traits)
	if err != nil {
		return nil, &MalformedKBError{Reason: err.Error()}
	}

	records := make([]GenusRecord, 0, len(f.Genera))
	for _, g := range f.Genera {
		rec := GenusRecord{
			Genus:  g.Genus,
			Traits: make(map[ontology.Trait]ReferenceValue, len(g.Traits)),
			Notes:  g.Notes,
		}
		for name, cell := range g.Traits {
			t, ok := ont.TraitByName(name)
			if !ok {
				return nil, &MalformedKBError{Genus: g.Genus, Trait: ontology.Trait(name),
					Reason: "trait not in ontology"}
			}
			rv, err := parseCell(ont, t, cell)
			if err != nil {
				return nil, &MalformedKBError{Genus: g.Genus, Trait: t, Reason: err.Error()}
			}
			rec.Traits[t] = rv
		}
		records = append(records, rec)
	}

	return New(ont, records)
}

// LoadYAMLFile reads a self-contained KB from disk.
func LoadYAMLFile(path string) (*KB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening KB: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

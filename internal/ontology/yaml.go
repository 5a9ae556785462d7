package ontology

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk shape of a trait sheet.
type yamlFile struct {
	Traits []TraitDefinition `yaml:"traits"`
}

// LoadYAML reads a trait sheet from r.
func LoadYAML(r io.Reader) (*Ontology, error) {
	var f yamlFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding trait sheet: %w", err)
	}
	return New(f.Traits)
}

// LoadYAMLFile reads a trait sheet from disk.
func LoadYAMLFile(path string) (*Ontology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trait sheet: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

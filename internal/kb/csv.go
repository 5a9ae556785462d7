package kb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"phenokey/internal/ontology"
)

// Spreadsheet spellings the loader normalizes before values reach the core.
// Empty cells are not accepted: a curator must write Unknown explicitly.
const (
	cellVariable       = "variable"
	cellUnknown        = "unknown"
	cellForcedNegative = "negative (not plausible)"
	headerGenus        = "genus"
	headerNotes        = "extra notes"
)

// LoadCSV reads a genus table from r and validates it against ont. The first
// row is a header: a Genus column, one column per ontology trait (matched by
// identifier or display name, case-insensitive), and an optional Extra Notes
// column. Every ontology trait must have a column and every cell must be
// filled; the loader rejects incomplete tables instead of papering over them.
func LoadCSV(r io.Reader, ont *ontology.Ontology) (*KB, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &MalformedKBError{Reason: fmt.Sprintf("reading header: %v", err)}
	}

	genusCol := -1
	notesCol := -1
	traitCols := make(map[int]ontology.Trait, len(header))
	seen := make(map[ontology.Trait]bool, len(header))
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case headerGenus:
			genusCol = i
			continue
		case headerNotes:
			notesCol = i
			continue
		}
		t, ok := ont.TraitByName(h)
		if !ok {
			return nil, &MalformedKBError{Reason: fmt.Sprintf("column %q is not an ontology trait", h)}
		}
		if seen[t] {
			return nil, &MalformedKBError{Trait: t, Reason: "duplicate trait column"}
		}
		seen[t] = true
		traitCols[i] = t
	}
	if genusCol < 0 {
		return nil, &MalformedKBError{Reason: "no Genus column"}
	}
	for _, t := range ont.Traits() {
		if !seen[t] {
			return nil, &MalformedKBError{Trait: t, Reason: "trait has no column"}
		}
	}

	var records []GenusRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedKBError{Reason: fmt.Sprintf("line %d: %v", line, err)}
		}

		genus := strings.TrimSpace(row[genusCol])
		if genus == "" {
			return nil, &MalformedKBError{Reason: fmt.Sprintf("line %d: empty genus name", line)}
		}

		rec := GenusRecord{
			Genus:  genus,
			Traits: make(map[ontology.Trait]ReferenceValue, len(traitCols)),
		}
		if notesCol >= 0 {
			rec.Notes = strings.TrimSpace(row[notesCol])
		}
		for col, t := range traitCols {
			rv, err := parseCell(ont, t, row[col])
			if err != nil {
				return nil, &MalformedKBError{Genus: genus, Trait: t, Reason: err.Error()}
			}
			rec.Traits[t] = rv
		}
		records = append(records, rec)
	}

	return New(ont, records)
}

// LoadCSVFile reads a genus table from disk.
func LoadCSVFile(path string, ont *ontology.Ontology) (*KB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening KB: %w", err)
	}
	defer f.Close()
	return LoadCSV(f, ont)
}

// parseCell normalizes one spreadsheet cell into a ReferenceValue.
func parseCell(ont *ontology.Ontology, t ontology.Trait, cell string) (ReferenceValue, error) {
	folded := strings.ToLower(strings.Join(strings.Fields(cell), " "))
	switch folded {
	case "":
		return ReferenceValue{}, fmt.Errorf("empty cell (write Unknown explicitly)")
	case cellUnknown:
		return Unknown(), nil
	case cellVariable:
		return Variable(), nil
	case cellForcedNegative:
		return NegativeNotPlausible(), nil
	}
	canonical, err := ont.Canonicalize(t, cell)
	if err != nil {
		return ReferenceValue{}, fmt.Errorf("value %q outside trait domain", strings.TrimSpace(cell))
	}
	return Concrete(canonical), nil
}

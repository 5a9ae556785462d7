package kb

import (
	"fmt"
	"sort"

	"phenokey/internal/ontology"
)

// GenusRecord is the reference profile of one taxonomic genus. Every trait
// in the ontology has an entry; absence of data is recorded explicitly as
// Unknown, never as a missing key.
type GenusRecord struct {
	Genus  string
	Traits map[ontology.Trait]ReferenceValue

	// Notes is curator free text carried through to explanations.
	Notes string
}

// Reference returns the record's cell for a trait.
func (g GenusRecord) Reference(t ontology.Trait) (ReferenceValue, bool) {
	rv, ok := g.Traits[t]
	return rv, ok
}

// MalformedKBError reports a knowledge base that fails load-time validation.
// The engine refuses to operate on an incomplete KB rather than silently
// treating missing cells as Unknown.
type MalformedKBError struct {
	Genus  string
	Trait  ontology.Trait
	Reason string
}

func (e *MalformedKBError) Error() string {
	switch {
	case e.Genus != "" && e.Trait != "":
		return fmt.Sprintf("malformed KB: genus %q, trait %q: %s", e.Genus, string(e.Trait), e.Reason)
	case e.Genus != "":
		return fmt.Sprintf("malformed KB: genus %q: %s", e.Genus, e.Reason)
	default:
		return fmt.Sprintf("malformed KB: %s", e.Reason)
	}
}

// KB is the immutable in-memory reference table. It is constructed once,
// validated against its ontology, and only read afterwards, so any number of
// sessions may share it without locking.
type KB struct {
	ont     *ontology.Ontology
	records []GenusRecord
	index   map[string]int
}

// New validates records against ont and builds a KB. Records are held sorted
// by genus name so iteration order is deterministic.
func New(ont *ontology.Ontology, records []GenusRecord) (*KB, error) {
	if ont == nil {
		return nil, &MalformedKBError{Reason: "no ontology"}
	}
	if len(records) == 0 {
		return nil, &MalformedKBError{Reason: "no genus records"}
	}

	sorted := make([]GenusRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Genus < sorted[j].Genus })

	k := &KB{
		ont:     ont,
		records: sorted,
		index:   make(map[string]int, len(sorted)),
	}
	for i, rec := range sorted {
		if rec.Genus == "" {
			return nil, &MalformedKBError{Reason: "genus record without a name"}
		}
		if _, dup := k.index[rec.Genus]; dup {
			return nil, &MalformedKBError{Genus: rec.Genus, Reason: "duplicate genus"}
		}
		k.index[rec.Genus] = i

		if err := validateRecord(ont, rec); err != nil {
			return nil, err
		}
	}
	return k, nil
}

func validateRecord(ont *ontology.Ontology, rec GenusRecord) error {
	for _, t := range ont.Traits() {
		rv, ok := rec.Traits[t]
		if !ok {
			return &MalformedKBError{Genus: rec.Genus, Trait: t, Reason: "missing cell"}
		}
		switch rv.Kind {
		case RefConcrete:
			legal, err := ont.IsLegal(t, rv.Value)
			if err != nil {
				return err
			}
			if !legal {
				return &MalformedKBError{Genus: rec.Genus, Trait: t,
					Reason: fmt.Sprintf("value %q outside trait domain", rv.Value)}
			}
		case RefNegativeNotPlausible:
			legal, err := ont.IsLegal(t, ontology.ValueNegative)
			if err != nil {
				return err
			}
			if !legal {
				return &MalformedKBError{Genus: rec.Genus, Trait: t,
					Reason: "forced negative on a trait with no Negative in its domain"}
			}
		case RefVariable, RefUnknown:
			// Always legal.
		default:
			return &MalformedKBError{Genus: rec.Genus, Trait: t,
				Reason: fmt.Sprintf("unrecognized reference kind %d", int(rv.Kind))}
		}
	}
	for t := range rec.Traits {
		if _, ok := ont.Definition(t); !ok {
			return &MalformedKBError{Genus: rec.Genus, Trait: t, Reason: "trait not in ontology"}
		}
	}
	return nil
}

// Ontology returns the trait ontology the KB was validated against.
func (k *KB) Ontology() *ontology.Ontology { return k.ont }

// Len returns the number of genus records.
func (k *KB) Len() int { return len(k.records) }

// Genera returns genus names in alphabetical order.
func (k *KB) Genera() []string {
	out := make([]string, len(k.records))
	for i, rec := range k.records {
		out[i] = rec.Genus
	}
	return out
}

// Records returns the genus records in alphabetical order. Callers treat the
// result as read-only.
func (k *KB) Records() []GenusRecord { return k.records }

// Record looks up a genus profile by name.
func (k *KB) Record(genus string) (GenusRecord, bool) {
	i, ok := k.index[genus]
	if !ok {
		return GenusRecord{}, false
	}
	return k.records[i], true
}

// Reference returns one cell of the table.
func (k *KB) Reference(genus string, t ontology.Trait) (ReferenceValue, bool) {
	rec, ok := k.Record(genus)
	if !ok {
		return ReferenceValue{}, false
	}
	return rec.Reference(t)
}

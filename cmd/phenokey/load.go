package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"phenokey/internal/kb"
	"phenokey/internal/logging"
	"phenokey/internal/ontology"
)

// loadKB materializes the knowledge base named by the --kb flag. CSV tables
// need a trait sheet (--ontology) or fall back to the stock ontology; YAML
// KB files carry their own.
func loadKB() (*kb.KB, error) {
	if kbPath == "" {
		return nil, fmt.Errorf("no knowledge base: pass --kb <file.csv|file.yaml>")
	}

	switch strings.ToLower(filepath.Ext(kbPath)) {
	case ".yaml", ".yml":
		base, err := kb.LoadYAMLFile(kbPath)
		if err != nil {
			return nil, err
		}
		logging.Boot("loaded KB %s: %d genera, %d traits", kbPath, base.Len(), base.Ontology().Len())
		return base, nil
	case ".csv":
		ont := ontology.Default()
		if ontologyPath != "" {
			var err error
			ont, err = ontology.LoadYAMLFile(ontologyPath)
			if err != nil {
				return nil, err
			}
		}
		base, err := kb.LoadCSVFile(kbPath, ont)
		if err != nil {
			return nil, err
		}
		logging.Boot("loaded KB %s: %d genera, %d traits", kbPath, base.Len(), base.Ontology().Len())
		return base, nil
	default:
		return nil, fmt.Errorf("unrecognized KB format %q (want .csv or .yaml)", filepath.Ext(kbPath))
	}
}

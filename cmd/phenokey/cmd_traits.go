package main

import (
	"strings"

	"github.com/spf13/cobra"

	"phenokey/internal/ontology"
)

// traitsCmd lists the ontology
var traitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "List the recognized traits and their legal values",
	RunE:  runTraits,
}

func runTraits(cmd *cobra.Command, args []string) error {
	ont := ontology.Default()
	if kbPath != "" {
		base, err := loadKB()
		if err != nil {
			return err
		}
		ont = base.Ontology()
	} else if ontologyPath != "" {
		var err error
		ont, err = ontology.LoadYAMLFile(ontologyPath)
		if err != nil {
			return err
		}
	}

	for _, t := range ont.Traits() {
		def, _ := ont.Definition(t)
		override := ""
		if def.PlausibilityOverride {
			override = "  (plausibility override)"
		}
		cmd.Printf("%-24s %-28s %s%s\n", string(def.ID), def.Name, strings.Join(def.Domain, " | "), override)
	}
	return nil
}

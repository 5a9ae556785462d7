package main

import (
	"errors"

	"github.com/spf13/cobra"

	"phenokey/internal/kb"
)

// kbCmd groups knowledge base utilities
var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Knowledge base utilities",
}

// kbValidateCmd loads the KB and reports what it found
var kbValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the knowledge base and report validation results",
	Long: `Loads and fully validates the knowledge base: every genus row must
carry a value for every ontology trait, and every cell must normalize to a
domain value, Variable, Unknown, or Negative (Not Plausible).`,
	RunE: runKBValidate,
}

func init() {
	kbCmd.AddCommand(kbValidateCmd)
}

func runKBValidate(cmd *cobra.Command, args []string) error {
	base, err := loadKB()
	if err != nil {
		var malformed *kb.MalformedKBError
		if errors.As(err, &malformed) {
			cmd.PrintErrf("KB is malformed: %v\n", malformed)
		}
		return err
	}

	cmd.Printf("KB OK: %d genera over %d traits\n", base.Len(), base.Ontology().Len())

	// Unknown-density summary helps curators spot thin columns.
	for _, t := range base.Ontology().Traits() {
		unknown := 0
		for _, rec := range base.Records() {
			if rv, ok := rec.Reference(t); ok && rv.Kind == kb.RefUnknown {
				unknown++
			}
		}
		if unknown > 0 {
			cmd.Printf("    %-24s %d/%d genera unknown\n", string(t), unknown, base.Len())
		}
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phenokey/internal/ontology"
	"phenokey/internal/session"
)

var (
	observationFlags []string
	explainTop       int
)

// identifyCmd runs one diagnostic session from the command line
var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Rank candidate genera against observed test results",
	Long: `Records the given observations in a fresh session, then prints the
candidate ranking, explanations for the top candidates, and the recommended
next test.

Observations are trait=value pairs using ontology trait identifiers:

  phenokey identify --kb bacteria.csv \
      --obs gram_stain=Positive --obs oxidase=Negative`,
	RunE: runIdentify,
}

func init() {
	identifyCmd.Flags().StringArrayVar(&observationFlags, "obs", nil, "observation as trait=value (repeatable)")
	identifyCmd.Flags().IntVar(&explainTop, "explain-top", 0, "explain this many top candidates (default from config)")
}

func runIdentify(cmd *cobra.Command, args []string) error {
	base, err := loadKB()
	if err != nil {
		return err
	}

	mgr := session.NewManager(base, session.Options{
		PenaltyWeight:  cfg.Scoring.PenaltyWeight,
		SurvivorPolicy: cfg.Recommender,
	})
	sess := mgr.Create()
	defer mgr.Close(sess.ID())
	logger.Info("session opened", zap.String("session", string(sess.ID())))

	for _, raw := range observationFlags {
		trait, value, err := parseObservation(raw)
		if err != nil {
			return err
		}
		if err := sess.Record(trait, value); err != nil {
			return fmt.Errorf("recording %s: %w", raw, err)
		}
	}

	printRanking(cmd, sess)
	printExplanations(cmd, sess)
	printRecommendation(cmd, sess)
	return nil
}

// parseObservation splits "trait=value". Validation happens in Record.
func parseObservation(raw string) (ontology.Trait, string, error) {
	trait, value, ok := strings.Cut(raw, "=")
	trait = strings.TrimSpace(trait)
	value = strings.TrimSpace(value)
	if !ok || trait == "" || value == "" {
		return "", "", fmt.Errorf("malformed observation %q (want trait=value)", raw)
	}
	return ontology.Trait(trait), value, nil
}

func printRanking(cmd *cobra.Command, sess *session.Session) {
	ranked := sess.Ranking()
	cmd.Printf("Candidates (%d genera, %d observations):\n", len(ranked), len(sess.Observations()))
	limit := cfg.Explain.TopN
	if limit > len(ranked) {
		limit = len(ranked)
	}
	for i, cand := range ranked[:limit] {
		cmd.Printf("%3d. %-20s score=%6.2f  support=%d conflict=%d neutral=%d\n",
			i+1, cand.Genus, cand.Score, cand.Support, cand.Conflict, cand.Neutral)
	}
	cmd.Println()
}

func printExplanations(cmd *cobra.Command, sess *session.Session) {
	topN := explainTop
	if topN <= 0 {
		topN = cfg.Explain.TopN
	}
	ranked := sess.Ranking()
	if topN > len(ranked) {
		topN = len(ranked)
	}
	for _, cand := range ranked[:topN] {
		report, err := sess.Report(cand.Genus)
		if err != nil {
			continue
		}
		cmd.Printf("%s — %s (%d%%)\n", report.Genus, report.ConfidenceLevel, report.ConfidencePercent)
		for _, tv := range report.Verdicts {
			tag := ""
			if tv.ForcedNegative {
				tag = "  [forced negative]"
			}
			cmd.Printf("    %-24s observed=%-12s reference=%-24s %s%s\n",
				string(tv.Trait), tv.Observed, tv.Reference.Display(), tv.Verdict, tag)
		}
		cmd.Printf("    %s\n", report.Summary)
		if report.Notes != "" {
			cmd.Printf("    Notes: %s\n", report.Notes)
		}
		cmd.Println()
	}
}

func printRecommendation(cmd *cobra.Command, sess *session.Session) {
	if trait, ok := sess.Recommendation(); ok {
		name := string(trait)
		if def, found := sess.Ontology().Definition(trait); found {
			name = def.Name
		}
		cmd.Printf("Recommended next test: %s (%s)\n", name, string(trait))
		return
	}
	cmd.Println("No further test would narrow the candidates.")
}

// phenokey is the CLI host for the phenotypic identification engine. It
// wraps the library boundary: load a knowledge base, feed observations into
// a session, and print the ranking, explanations, and the recommended next
// test.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"phenokey/internal/config"
	"phenokey/internal/logging"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	kbPath       string
	ontologyPath string

	cfg config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phenokey",
	Short: "phenokey - phenotypic genus identification assistant",
	Long: `phenokey ranks candidate bacterial/fungal genera against observed
biochemical, morphological, and physiological test results, explains which
observations support or contradict each candidate, and recommends the next
test that best narrows the differential.

The reference knowledge base is loaded once per invocation from a CSV genus
table (with a YAML trait sheet) or a self-contained YAML KB file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			cfg.Logging.Level = "debug"
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return logging.Initialize(logging.Config{
			Level:      cfg.Logging.Level,
			JSONFormat: cfg.Logging.JSONFormat,
			Categories: cfg.Logging.Categories,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to phenokey config YAML")
	rootCmd.PersistentFlags().StringVar(&kbPath, "kb", "", "path to the knowledge base (.csv or .yaml)")
	rootCmd.PersistentFlags().StringVar(&ontologyPath, "ontology", "", "path to a trait sheet YAML (CSV KBs only; defaults to the stock ontology)")

	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(traitsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/tablekit-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config on initialize)
	cfgFile       string
	flagDelimiter string
	flagSample    int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tablekit",
	Short: "TableKit CLI: compare, aggregate, and analyze tabular datasets",
	Long: `TableKit is a tabular analysis toolbox: a two-dataset comparator,
group aggregation and statistics for chart input, and smart tables with
sandboxed calculated columns.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tablekit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "input delimiter: ','|';'|'tab' (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagSample, "sample", 0, "max rows fetched for aggregation/statistics (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: defaults still let most commands run.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{DefaultDelimiter: ",", ExportDelimiter: ",", ExportDir: "exports", PageSize: 50, SampleLimit: 1000, MaxForecast: 24}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("delimiter") && flagDelimiter != "" {
		cfg.DefaultDelimiter = flagDelimiter
	}
	if f.Changed("sample") && flagSample > 0 {
		cfg.SampleLimit = flagSample
	}
}

// inputDelimiter resolves the configured input delimiter.
func inputDelimiter() (rune, error) {
	if cfg == nil {
		return ',', nil
	}
	return cfgpkg.Delimiter(cfg.DefaultDelimiter)
}

// exportDelimiter resolves the configured export delimiter.
func exportDelimiter() (rune, error) {
	if cfg == nil {
		return ',', nil
	}
	return cfgpkg.Delimiter(cfg.ExportDelimiter)
}

// sampleLimit returns the caller-side cap on rows handed to the analysis core.
func sampleLimit() int {
	if cfg == nil || cfg.SampleLimit <= 0 {
		return 1000
	}
	return cfg.SampleLimit
}

// Command prettyplots renders publication-quality figures from YAML
// recipe files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prettyplots/internal/config"
	"prettyplots/internal/logging"
)

// version is stamped by release builds via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

var (
	cfgPath   string
	workspace string
	verbose   bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "prettyplots",
	Short: "prettyplots - publication-quality figures from YAML recipes",
	Long: `prettyplots renders line plots, heat maps, and histograms with an
opinionated house style: inward ticks on every frame edge, twin
y-scales, side colorbars, and sensible fonts out of the box.

Figures are described by YAML recipe files; see "prettyplots template"
for ready-to-edit starters.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			cfgPath = config.DefaultPath(workspace)
		}
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", cfgPath, err)
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default <workspace>/.prettyplots/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", ".", "workspace root")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

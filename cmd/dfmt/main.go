package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"gopkg.in/dfmt.v0/internal/config"
	"gopkg.in/dfmt.v0/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	configPath string
	verbose    bool
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dfmt",
	Short: "Render and scan text with C-style format templates",
	Long: `dfmt renders typed arguments under printf-style templates and reads
typed values back out of text under scanf-style templates.

Decimal (L) arguments are exact: they are rounded once, at the requested
precision, with the configured rounding mode.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded",
			zap.String("path", configPath),
			zap.String("rounding", cfg.Render.Rounding),
			zap.Int("workers", cfg.Batch.Workers))
		cmd.Flags().Visit(func(f *pflag.Flag) {
			logger.Debug("flag set", zap.String("flag", f.Name), zap.String("value", f.Value.String()))
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dfmt version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "dfmt", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	renderCmd.Flags().StringVar(&rounding, "rounding", "", "Rounding mode for L arguments (overrides config)")
	renderCmd.Flags().BoolVarP(&noNewline, "no-newline", "n", false, "Do not print the trailing newline")
	renderCmd.Flags().IntVar(&maxField, "max-field", 0, "Largest accepted width or precision (overrides config)")

	batchCmd.Flags().IntVarP(&workers, "workers", "j", 0, "Number of concurrent jobs (overrides config)")
	batchCmd.Flags().StringVarP(&output, "output", "o", "", "Result encoding: json or cbor (overrides config)")
	batchCmd.Flags().StringVar(&outPath, "out", "", "Write results to this file instead of standard output (.zst compresses)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

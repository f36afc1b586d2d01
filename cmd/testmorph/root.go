// testmorph converts test-management exports (Zephyr, JIRA/Xray, TestLink,
// TestRail, generic JSON) into a canonical model, detecting the source
// format from the document itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"testmorph/internal/config"
	"testmorph/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "testmorph",
	Short: "Detect and convert test-management export formats",
	Long: "Testmorph classifies JSON exports from test-management tools by\n" +
		"scoring per-format field evidence, then maps them onto one canonical model.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg = config.Default()
	if flagConfig != "" {
		loaded, err := config.LoadFromPath(flagConfig)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Logging.Format = flagLogFormat
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.Logging.Format)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/patcanon/internal/config"
)

var (
	flagDB       string
	flagFormat   string
	flagLogLevel string
)

// errorHandled is set when the command already reported its failure.
var errorHandled bool

// errProblems makes the process exit 1 after diagnostics were printed.
var errProblems = errors.New("problems found")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled && !errors.Is(err, errProblems) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "patcanon",
	Short:         "Canonicalize surface patterns and report binding problems",
	Long:          "patcanon resolves the names in surface patterns to symbols, checks them against their syntactic context, and reports shadowing and other problems.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "report database path (default: $"+config.DBPathEnv+")")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", config.FormatText, "output format: text|yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (default: $"+config.LogLevelEnv+" or warn)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}

// newLogger writes structured logs to stderr. The flag wins over the environment.
func newLogger() *slog.Logger {
	level := config.LogLevelFromEnv("warn")
	if flagLogLevel != "" {
		level = config.ParseLogLevel(flagLogLevel)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveDBPath returns the --db flag, then $PATCANON_DB. Empty means no store.
func resolveDBPath() string {
	if flagDB != "" {
		return flagDB
	}
	return os.Getenv(config.DBPathEnv)
}

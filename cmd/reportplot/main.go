// Package main provides the CLI entry point for reportplot.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reportplot/pkg/reportplot"
)

var (
	configPath  string
	gnuplotPath string
	terminal    string
	tempDir     string
	options     []string
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reportplot [script.lua]",
		Short: "Run a Lua report script against gnuplot",
		Long: `reportplot runs a Lua report script and renders the charts it
describes through an external gnuplot process.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (YAML)")
	rootCmd.Flags().StringVar(&gnuplotPath, "gnuplot", "", "Gnuplot binary (default: gnuplot on PATH)")
	rootCmd.Flags().StringVar(&terminal, "terminal", "", "Standard terminal override (default: auto-detected)")
	rootCmd.Flags().StringVar(&tempDir, "temp-dir", "", "Directory for staged data files")
	rootCmd.Flags().StringArrayVarP(&options, "option", "O", nil, "Script option as key=value (repeatable)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log engine commands")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := reportplot.Config{}
	if configPath != "" {
		var err error
		cfg, err = reportplot.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if gnuplotPath != "" {
		cfg.GnuplotPath = gnuplotPath
	}
	if terminal != "" {
		cfg.Terminal = terminal
	}
	if tempDir != "" {
		cfg.TempDir = tempDir
	}

	scriptOptions, err := parseOptions(options)
	if err != nil {
		return err
	}

	opts := reportplot.Options{
		GnuplotPath:   cfg.GnuplotPath,
		Terminal:      cfg.Terminal,
		TempDir:       cfg.TempDir,
		ScriptOptions: scriptOptions,
	}
	return reportplot.Run(args[0], opts)
}

// parseOptions splits repeated --option flags into a key/value map. A
// value-less option is recorded as present with an empty value.
func parseOptions(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid option %q (expected key=value)", pair)
		}
		out[key] = value
	}
	return out, nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lexandro/docscan/config"
	"github.com/lexandro/docscan/ignore"
	"github.com/lexandro/docscan/report"
	"github.com/lexandro/docscan/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the docscan command tree. The root command prints the
// documentation report; serve runs the MCP server over the same root.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docscan",
		Short: "Report on the README and docs files of every project under a directory",
		Long: `docscan finds <root>/<project>/README.md and <root>/<project>/docs/*.md,
prints how many of each it found and previews the first three.`,
		Version:       server.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}

			matcher := ignore.NewMatcher(ignore.MatcherOptions{
				RootDir:        cfg.Root,
				CustomPatterns: cfg.Exclude,
				UseGitignore:   cfg.Gitignore,
			})

			logger.Debug("running report", "root", cfg.Root, "config", cfg.ConfigFile)
			return report.Run(report.Options{
				Root:   cfg.Root,
				Filter: matcher,
				Color:  !color.NoColor,
				Logger: logger,
			}, cmd.OutOrStdout())
		},
	}

	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newServeCommand())
	return rootCmd
}

// loadRuntime resolves configuration, makes the root absolute and builds the logger.
func loadRuntime(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	rootDir, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving root %s: %w", cfg.Root, err)
	}
	cfg.Root = rootDir

	return cfg, setupLogger(cfg.LogLevel, cfg.LogFile), nil
}

// setupLogger creates an slog.Logger writing to stderr or a file.
// stdout carries the report or the MCP stdio stream, never logs.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

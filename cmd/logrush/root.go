package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/logrush/analyzer"
)

type cursorFlags struct {
	line   int
	column int
}

func (c *cursorFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&c.line, "line", 1, "cursor line (1-based)")
	cmd.Flags().IntVar(&c.column, "column", 1, "cursor column (1-based)")
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "logrush",
		Short:         "Resolve lexical context and log insertion points in JS/TS sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log analyzer decisions to stderr")
	newAnalyzer := func() (*analyzer.Analyzer, error) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return analyzer.New(analyzer.WithLogger(logger))
	}
	cmd.AddCommand(
		newContextCmd(newAnalyzer),
		newInsertCmd(newAnalyzer),
		newLogCmd(newAnalyzer),
		newWatchCmd(newAnalyzer),
	)
	return cmd
}

type analyzerFactory func() (*analyzer.Analyzer, error)

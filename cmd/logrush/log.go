package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/logrush/document"
	"github.com/viant/logrush/logstmt"
)

func newLogCmd(newAnalyzer analyzerFactory) *cobra.Command {
	var cursor cursorFlags
	var variable string
	var configURL string
	var method string
	var write bool
	cmd := &cobra.Command{
		Use:   "log <file>",
		Short: "Plan or apply a log statement for a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if variable == "" {
				return fmt.Errorf("--var is required")
			}
			level := logstmt.Method(method)
			if level != "" && !level.IsValid() {
				return fmt.Errorf("unsupported method %q, expected one of %v", method, logstmt.Methods())
			}
			position, err := cursor.position()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			cfg, err := logstmt.LoadConfig(ctx, configURL)
			if err != nil {
				return err
			}
			a, err := newAnalyzer()
			if err != nil {
				return err
			}
			fs := afs.New()
			doc, err := loadDocument(ctx, fs, args[0])
			if err != nil {
				return err
			}
			selection := document.Cursor(position)
			edit := logstmt.Plan(doc, selection, variable, a, cfg, level)
			if !write {
				return emitYAML(cmd.OutOrStdout(), edit)
			}
			logstmt.Apply(doc, edit)
			if err = saveDocument(ctx, fs, doc); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated %s:%d\n", doc.FileName(), edit.Cursor.Line+1)
			return err
		},
	}
	cursor.register(cmd)
	cmd.Flags().StringVar(&variable, "var", "", "variable name")
	cmd.Flags().StringVar(&configURL, "config", "", "yaml config URL")
	cmd.Flags().StringVar(&method, "method", "", "console method (log, info, warn, error, ...); defaults to the configured logMethod")
	cmd.Flags().BoolVar(&write, "write", false, "apply the edit to the file")
	return cmd
}

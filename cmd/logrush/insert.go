package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/logrush/document"
)

func newInsertCmd(newAnalyzer analyzerFactory) *cobra.Command {
	var cursor cursorFlags
	var variable string
	cmd := &cobra.Command{
		Use:   "insert <file>",
		Short: "Print where a statement using a variable can be inserted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if variable == "" {
				return fmt.Errorf("--var is required")
			}
			position, err := cursor.position()
			if err != nil {
				return err
			}
			a, err := newAnalyzer()
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd.Context(), afs.New(), args[0])
			if err != nil {
				return err
			}
			point := a.ResolveInsertionPoint(doc, document.Cursor(position), variable)
			// report 1-based like the input flags
			point.Line++
			point.Character++
			return emitYAML(cmd.OutOrStdout(), point)
		},
	}
	cursor.register(cmd)
	cmd.Flags().StringVar(&variable, "var", "", "variable name")
	return cmd
}

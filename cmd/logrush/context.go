package main

import (
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

func newContextCmd(newAnalyzer analyzerFactory) *cobra.Command {
	var cursor cursorFlags
	cmd := &cobra.Command{
		Use:   "context <file>",
		Short: "Print the function and owner enclosing a cursor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			info := a.ResolveContext(doc, position)
			return emitYAML(cmd.OutOrStdout(), newContextView(doc, info))
		},
	}
	cursor.register(cmd)
	return cmd
}

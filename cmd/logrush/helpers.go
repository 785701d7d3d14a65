package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/logrush/analyzer"
	"github.com/viant/logrush/document"
	"gopkg.in/yaml.v3"
)

func loadDocument(ctx context.Context, fs afs.Service, URL string) (*document.TextDocument, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	return document.NewTextDocument(URL, string(data)), nil
}

func saveDocument(ctx context.Context, fs afs.Service, doc *document.TextDocument) error {
	if err := fs.Upload(ctx, doc.FileName(), 0o644, strings.NewReader(doc.Text())); err != nil {
		return fmt.Errorf("failed to write %s: %w", doc.FileName(), err)
	}
	return nil
}

// position converts 1-based flags into a document position
func (c *cursorFlags) position() (document.Position, error) {
	if c.line < 1 || c.column < 1 {
		return document.Position{}, fmt.Errorf("line and column are 1-based, got %d:%d", c.line, c.column)
	}
	return document.Position{Line: c.line - 1, Character: c.column - 1}, nil
}

func emitYAML(w io.Writer, value interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}

// contextView is the printable form of a resolved context
type contextView struct {
	File         string         `yaml:"file"`
	FunctionName string         `yaml:"functionName,omitempty"`
	ObjectName   string         `yaml:"objectName,omitempty"`
	Path         []string       `yaml:"path,omitempty"`
	Kind         string         `yaml:"kind,omitempty"`
	Scope        *analyzer.Span `yaml:"scope,omitempty"`
}

func newContextView(doc document.Document, info analyzer.ContextInfo) *contextView {
	ret := &contextView{
		File:         doc.FileName(),
		FunctionName: info.FunctionName,
		ObjectName:   info.ObjectName,
		Path:         info.Path,
	}
	if info.Kind != analyzer.KindNone {
		ret.Kind = info.Kind.String()
	}
	if s := info.VariableScope; s != nil {
		end := s.End
		if end > len(doc.Text()) {
			end = len(doc.Text())
		}
		ret.Scope = &analyzer.Span{Kind: s.Kind, Start: s.Start, End: end}
	}
	return ret
}

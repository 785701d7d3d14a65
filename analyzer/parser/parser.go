package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Mode identifies the grammar flavour selected for a file
type Mode string

const (
	// ModeScript is used for markup flavoured files (.tsx, .jsx)
	ModeScript Mode = "script"
	// ModeModule is used for every other file
	ModeModule Mode = "module"
)

var (
	// ErrSyntax reports source that could not be parsed
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupported reports a missing grammar
	ErrUnsupported = errors.New("unsupported grammar")
)

// ParseError carries the underlying parse failure for a file
type ParseError struct {
	FileName string
	Message  string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.FileName, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Tree is an immutable parsed source file
type Tree struct {
	FileName string
	Mode     Mode
	Source   []byte
	tree     *sitter.Tree
}

// Root returns the program node
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Text returns the source text covered by the node
func (t *Tree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.Source)
}

// ModeFor selects the grammar mode from the file name
func ModeFor(fileName string) Mode {
	lower := strings.ToLower(fileName)
	if strings.HasSuffix(lower, ".tsx") || strings.HasSuffix(lower, ".jsx") {
		return ModeScript
	}
	return ModeModule
}

// Parse turns source text into a syntax tree. Type annotations, JSX, decorators and
// class fields are accepted in both modes.
func Parse(text string, fileName string) (*Tree, error) {
	src := []byte(text)
	mode := ModeFor(fileName)
	languages := []*sitter.Language{tsx.GetLanguage()}
	if mode == ModeModule {
		// plain typescript accepts <T>expr assertions which clash with JSX
		languages = append(languages, typescript.GetLanguage())
	}
	var lastErr error
	for _, language := range languages {
		tree, err := parseWith(language, src)
		if err != nil {
			lastErr = err
			continue
		}
		return &Tree{FileName: fileName, Mode: mode, Source: src, tree: tree}, nil
	}
	return nil, &ParseError{FileName: fileName, Message: describe(lastErr), Err: lastErr}
}

func parseWith(language *sitter.Language, src []byte) (*sitter.Tree, error) {
	if language == nil {
		return nil, ErrUnsupported
	}
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()
	if root == nil {
		return nil, ErrSyntax
	}
	if root.HasError() {
		return nil, &syntaxError{offset: firstErrorOffset(root)}
	}
	return tree, nil
}

type syntaxError struct {
	offset int
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("unexpected token at offset %d", e.offset)
}

func (e *syntaxError) Unwrap() error {
	return ErrSyntax
}

func describe(err error) string {
	if err == nil {
		return "unknown failure"
	}
	return err.Error()
}

// firstErrorOffset returns the start of the first ERROR or MISSING node in document order
func firstErrorOffset(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartByte())
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		return firstErrorOffset(child)
	}
	return int(n.StartByte())
}

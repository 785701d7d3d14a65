package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/logrush/analyzer/parser"
	"github.com/viant/logrush/analyzer/scope"
	"github.com/viant/logrush/document"
)

// Tier identifies the heuristic that produced an insertion point
type Tier string

const (
	TierScope     Tier = "scope"
	TierObject    Tier = "objectMethod"
	TierStatement Tier = "statement"
	TierLineEnd   Tier = "lineEnd"
)

// Span bounds the scope an insertion decision was made in
type Span struct {
	Kind  scope.Kind `yaml:"kind"`
	Start int        `yaml:"start"`
	End   int        `yaml:"end"`
}

// InsertionPosition is where a new statement can be placed
type InsertionPosition struct {
	Line             int   `yaml:"line"`
	Character        int   `yaml:"character"`
	IsEndOfStatement bool  `yaml:"isEndOfStatement"`
	Scope            *Span `yaml:"scope,omitempty"`
	Tier             Tier  `yaml:"tier"`
}

// Position returns the editor position
func (p InsertionPosition) Position() document.Position {
	return document.Position{Line: p.Line, Character: p.Character}
}

func spanOf(s *scope.Scope, size int) *Span {
	if s == nil {
		return nil
	}
	end := s.End
	if end > size {
		end = size
	}
	return &Span{Kind: s.Kind, Start: s.Start, End: end}
}

type insertion struct {
	offset int
	scope  *scope.Scope
	tier   Tier
}

// resolveInsertion runs the scope, object method and statement tiers in order
func resolveInsertion(tree *parser.Tree, global *scope.Scope, offset int, name string) (*insertion, bool) {
	if ret, ok := fromScope(global, offset, name); ok {
		return ret, true
	}
	innermost := global.Innermost(offset)
	if end, ok := fromObjectMethod(tree, offset, name); ok {
		return &insertion{offset: end, scope: innermost, tier: TierObject}, true
	}
	if end, ok := fromStatements(tree, offset); ok {
		return &insertion{offset: end, scope: innermost, tier: TierStatement}, true
	}
	return nil, false
}

func fromScope(global *scope.Scope, offset int, name string) (*insertion, bool) {
	current := global.Innermost(offset)
	if current == nil {
		return nil, false
	}
	v, owner := current.Lookup(name)
	if v == nil || v.InsertAfter < 0 {
		return nil, false
	}
	return &insertion{offset: v.InsertionOffset(), scope: owner, tier: TierScope}, true
}

// fromObjectMethod scans object literal method bodies containing offset for a top level declaration of name
func fromObjectMethod(tree *parser.Tree, offset int, name string) (int, bool) {
	src := tree.Source
	end, found := 0, false
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil || !contains(n, offset) {
			return
		}
		if classify(n) == KindObjectMethod {
			if body := n.ChildByFieldName("body"); body != nil {
				for i := 0; i < int(body.NamedChildCount()); i++ {
					statement := body.NamedChild(i)
					if declares(statement, name, src) {
						end, found = int(statement.EndByte()), true
						break
					}
				}
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(tree.Root())
	return end, found
}

func declares(statement *sitter.Node, name string, src []byte) bool {
	if !isDeclaration(statement) {
		return false
	}
	for i := 0; i < int(statement.NamedChildCount()); i++ {
		child := statement.NamedChild(i)
		if child.Type() == "variable_declarator" && declaredName(child, src) == name {
			return true
		}
	}
	return false
}

// fromStatements returns the end of the innermost declaration or expression statement touching offset.
// Inside a block with no touching statement, the last such statement before offset is used, or the
// position after the opening brace of a function body.
func fromStatements(tree *parser.Tree, offset int) (int, bool) {
	end, found := 0, false
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil || n.IsMissing() || !contains(n, offset) {
			return
		}
		switch {
		case n.Type() == "variable_declarator":
			if decl := declarationOf(n); decl != nil {
				end, found = int(decl.EndByte()), true
			}
		case isDeclaration(n), n.Type() == "expression_statement":
			end, found = int(n.EndByte()), true
		case n.Type() == "statement_block", n.Type() == "program":
			if last, ok := precedingStatementEnd(n, offset); ok {
				end, found = last, true
			} else if owner := n.Parent(); owner != nil && classify(owner) != KindNone {
				end, found = int(n.StartByte())+1, true
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(tree.Root())
	return end, found
}

func precedingStatementEnd(block *sitter.Node, offset int) (int, bool) {
	end, found := 0, false
	for i := 0; i < int(block.NamedChildCount()); i++ {
		statement := block.NamedChild(i)
		if int(statement.EndByte()) > offset {
			break
		}
		if isDeclaration(statement) || statement.Type() == "expression_statement" {
			end, found = int(statement.EndByte()), true
		}
	}
	return end, found
}

// lineEnd is the unconditional fallback at the end of the selection's last line
func lineEnd(doc document.Document, selection document.Selection) InsertionPosition {
	p := document.LineEnd(doc, selection.End.Line)
	return InsertionPosition{Line: p.Line, Character: p.Character, Tier: TierLineEnd}
}

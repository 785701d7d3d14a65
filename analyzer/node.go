package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// NodeKind classifies function-like syntax nodes
type NodeKind int

const (
	KindNone NodeKind = iota
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunction
	KindObjectMethod
	KindClassMethod
)

func (k NodeKind) String() string {
	switch k {
	case KindFunctionDeclaration:
		return "functionDeclaration"
	case KindFunctionExpression:
		return "functionExpression"
	case KindArrowFunction:
		return "arrowFunction"
	case KindObjectMethod:
		return "objectMethod"
	case KindClassMethod:
		return "classMethod"
	}
	return "none"
}

// classify returns the function-like kind of n, or KindNone
func classify(n *sitter.Node) NodeKind {
	if n == nil {
		return KindNone
	}
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		return KindFunctionDeclaration
	case "function", "function_expression", "generator_function":
		return KindFunctionExpression
	case "arrow_function":
		return KindArrowFunction
	case "method_definition":
		if parent := n.Parent(); parent != nil && parent.Type() == "class_body" {
			return KindClassMethod
		}
		return KindObjectMethod
	}
	return KindNone
}

func isClass(n *sitter.Node) bool {
	switch n.Type() {
	case "class_declaration", "abstract_class_declaration", "class":
		return true
	}
	return false
}

func isDeclaration(n *sitter.Node) bool {
	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		return true
	}
	return false
}

// isWrapper reports expression nodes that only decorate the value they hold
func isWrapper(n *sitter.Node) bool {
	switch n.Type() {
	case "parenthesized_expression", "as_expression", "satisfies_expression", "type_assertion", "non_null_expression":
		return true
	}
	return false
}

// container returns the first ancestor of n that is not a wrapper expression
func container(n *sitter.Node) *sitter.Node {
	parent := n.Parent()
	for parent != nil && isWrapper(parent) {
		parent = parent.Parent()
	}
	return parent
}

func contains(n *sitter.Node, offset int) bool {
	return int(n.StartByte()) <= offset && offset <= int(n.EndByte())
}

func span(n *sitter.Node) int {
	return int(n.EndByte()) - int(n.StartByte())
}

// keyName returns the display text of a property key
func keyName(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	text := n.Content(src)
	switch n.Type() {
	case "string":
		return strings.Trim(text, "'\"`")
	case "private_property_identifier":
		return strings.TrimPrefix(text, "#")
	}
	return text
}

// declaredName returns the identifier text of a declarator name, ignoring patterns
func declaredName(declarator *sitter.Node, src []byte) string {
	name := declarator.ChildByFieldName("name")
	if name == nil || name.Type() != "identifier" {
		return ""
	}
	return name.Content(src)
}

// declarationOf returns the statement holding a declarator, widened through export
func declarationOf(declarator *sitter.Node) *sitter.Node {
	decl := declarator.Parent()
	if decl == nil || !isDeclaration(decl) {
		return nil
	}
	if parent := decl.Parent(); parent != nil && parent.Type() == "export_statement" {
		return parent
	}
	return decl
}

package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/logrush/analyzer/parser"
	"github.com/viant/logrush/analyzer/scope"
)

// Anonymous names a function with no identifier of its own or of its holder
const Anonymous = "anonymous"

// ContextInfo describes the lexical context enclosing a position
type ContextInfo struct {
	FunctionName  string       `yaml:"functionName,omitempty"`
	ObjectName    string       `yaml:"objectName,omitempty"`
	Path          []string     `yaml:"path,omitempty"`
	Kind          NodeKind     `yaml:"-"`
	VariableScope *scope.Scope `yaml:"-"`
}

// IsEmpty reports whether no function context was found
func (c ContextInfo) IsEmpty() bool {
	return c.FunctionName == "" && c.ObjectName == "" && len(c.Path) == 0
}

// innermostFunction returns the smallest function-like node containing offset
func innermostFunction(root *sitter.Node, offset int) *sitter.Node {
	var best *sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil || n.IsMissing() || !contains(n, offset) {
			return
		}
		if classify(n) != KindNone && (best == nil || span(n) < span(best)) {
			best = n
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(root)
	return best
}

// describe derives the context naming for a function-like node
func describe(tree *parser.Tree, fn *sitter.Node) ContextInfo {
	src := tree.Source
	kind := classify(fn)
	info := ContextInfo{Kind: kind}
	switch kind {
	case KindFunctionDeclaration:
		info.FunctionName = keyName(fn.ChildByFieldName("name"), src)
		info.Path = []string{info.FunctionName}
	case KindObjectMethod:
		info.FunctionName = keyName(fn.ChildByFieldName("name"), src)
		info.Path = objectPath(fn, info.FunctionName, src)
	case KindClassMethod:
		info.FunctionName = keyName(fn.ChildByFieldName("name"), src)
		info.Path = classPath(fn, info.FunctionName, src)
	case KindFunctionExpression, KindArrowFunction:
		info.FunctionName, info.Path = describeValue(fn, src)
	}
	if info.FunctionName == "" {
		info.FunctionName = Anonymous
		info.Path = []string{Anonymous}
	}
	if len(info.Path) > 1 {
		info.ObjectName = strings.Join(info.Path[:len(info.Path)-1], ".")
	}
	return info
}

// describeValue names a function used as a value by the slot that holds it
func describeValue(fn *sitter.Node, src []byte) (string, []string) {
	owner := container(fn)
	if owner != nil {
		switch owner.Type() {
		case "variable_declarator":
			if name := declaredName(owner, src); name != "" {
				return name, []string{name}
			}
		case "pair":
			name := keyName(owner.ChildByFieldName("key"), src)
			if name != "" {
				return name, objectPath(owner, name, src)
			}
		case "public_field_definition", "field_definition":
			name := keyName(owner.ChildByFieldName("name"), src)
			if name == "" {
				name = keyName(owner.ChildByFieldName("property"), src)
			}
			if name != "" {
				return name, classPath(owner, name, src)
			}
		}
	}
	if name := fn.ChildByFieldName("name"); name != nil {
		text := name.Content(src)
		return text, []string{text}
	}
	return "", nil
}

func resolveContext(tree *parser.Tree, global *scope.Scope, offset int) ContextInfo {
	var info ContextInfo
	if fn := innermostFunction(tree.Root(), offset); fn != nil {
		info = describe(tree, fn)
	}
	info.VariableScope = global.Innermost(offset)
	return info
}

package scope

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/logrush/analyzer/parser"
)

type nodeKey struct {
	start uint32
	end   uint32
	kind  string
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), kind: n.Type()}
}

type builder struct {
	src      []byte
	stack    []*Scope
	visited  map[nodeKey]bool
	declared map[nodeKey]bool // identifiers that bind rather than read a name
}

// Build walks the tree once and returns the global scope
func Build(tree *parser.Tree) *Scope {
	global := New(Global, 0, Unbounded, nil)
	if tree == nil {
		return global
	}
	b := &builder{
		src:      tree.Source,
		stack:    []*Scope{global},
		visited:  map[nodeKey]bool{},
		declared: map[nodeKey]bool{},
	}
	b.walk(tree.Root())
	return global
}

func (b *builder) current() *Scope {
	return b.stack[len(b.stack)-1]
}

func (b *builder) walk(n *sitter.Node) {
	if n == nil || n.IsMissing() || n.EndByte() < n.StartByte() {
		return
	}
	key := keyOf(n)
	if b.visited[key] {
		return
	}
	b.visited[key] = true

	pushed := b.enter(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.walk(n.NamedChild(i))
	}
	if pushed {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// enter handles a node before its children and reports whether it opened a scope
func (b *builder) enter(n *sitter.Node) bool {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration",
		"function", "function_expression", "generator_function", "arrow_function":
		b.markName(n)
		b.push(Function, n)
		b.declareParameters(n)
		return true
	case "method_definition":
		b.push(Method, n)
		b.declareParameters(n)
		return true
	case "statement_block", "for_statement":
		b.push(Block, n)
		return true
	case "for_in_statement":
		b.push(Block, n)
		if isDeclarativeLoop(n) {
			b.bindHead(n.ChildByFieldName("body"), n.ChildByFieldName("left"))
		}
		return true
	case "catch_clause":
		b.push(Block, n)
		b.bindHead(n.ChildByFieldName("body"), n.ChildByFieldName("parameter"))
		return true
	case "class_declaration", "abstract_class_declaration", "class":
		b.markName(n)
	case "lexical_declaration", "variable_declaration":
		b.declareVariables(n)
	case "identifier", "shorthand_property_identifier":
		b.reference(n)
	}
	return false
}

func (b *builder) push(kind Kind, n *sitter.Node) *Scope {
	s := New(kind, int(n.StartByte()), int(n.EndByte()), b.current())
	b.stack = append(b.stack, s)
	return s
}

func (b *builder) markName(n *sitter.Node) {
	if name := n.ChildByFieldName("name"); name != nil {
		b.declared[keyOf(name)] = true
	}
}

// bodyOffset returns the offset just inside the opening brace of a block body, or -1
func bodyOffset(body *sitter.Node) int {
	if body == nil || body.Type() != "statement_block" {
		return -1
	}
	return int(body.StartByte()) + 1
}

func (b *builder) declareParameters(fn *sitter.Node) {
	insertAfter := bodyOffset(fn.ChildByFieldName("body"))
	scope := b.current()
	if single := fn.ChildByFieldName("parameter"); single != nil {
		for _, id := range bindingIdentifiers(single) {
			scope.Declare(b.bind(id, id, insertAfter, true))
		}
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		for _, id := range bindingIdentifiers(param) {
			scope.Declare(b.bind(id, id, insertAfter, true))
		}
	}
}

func (b *builder) declareVariables(decl *sitter.Node) {
	parent := decl.Parent()
	insertAfter := int(decl.EndByte())
	if parent != nil {
		switch parent.Type() {
		case "export_statement":
			insertAfter = int(parent.EndByte())
		case "for_statement":
			insertAfter = bodyOffset(parent.ChildByFieldName("body"))
		}
	}
	scope := b.current()
	for _, declarator := range declarators(decl) {
		for _, id := range bindingIdentifiers(declarator.ChildByFieldName("name")) {
			scope.Declare(b.bind(id, declarator, insertAfter, false))
		}
	}
}

// bindHead declares loop or catch head bindings in the current head scope
func (b *builder) bindHead(body, pattern *sitter.Node) {
	if pattern == nil {
		return
	}
	scope := b.current()
	insertAfter := bodyOffset(body)
	for _, id := range bindingIdentifiers(pattern) {
		scope.Declare(b.bind(id, pattern, insertAfter, false))
	}
}

func (b *builder) bind(id, bounds *sitter.Node, insertAfter int, isParameter bool) *Variable {
	b.declared[keyOf(id)] = true
	return &Variable{
		Name:             id.Content(b.src),
		DeclarationStart: int(bounds.StartByte()),
		DeclarationEnd:   int(bounds.EndByte()),
		InsertAfter:      insertAfter,
		IsParameter:      isParameter,
	}
}

func (b *builder) reference(n *sitter.Node) {
	if b.declared[keyOf(n)] {
		return
	}
	name := n.Content(b.src)
	if v, _ := b.current().Lookup(name); v != nil {
		v.References = append(v.References, int(n.StartByte()))
	}
}

func declarators(decl *sitter.Node) []*sitter.Node {
	var ret []*sitter.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if child := decl.NamedChild(i); child.Type() == "variable_declarator" {
			ret = append(ret, child)
		}
	}
	return ret
}

func isDeclarativeLoop(loop *sitter.Node) bool {
	if loop.ChildByFieldName("kind") != nil {
		return true
	}
	for i := 0; i < int(loop.ChildCount()); i++ {
		switch loop.Child(i).Type() {
		case "var", "let", "const":
			return true
		}
	}
	return false
}

// bindingIdentifiers returns the identifiers bound by a declaration or parameter pattern
func bindingIdentifiers(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []*sitter.Node{n}
	case "required_parameter", "optional_parameter":
		return bindingIdentifiers(n.ChildByFieldName("pattern"))
	case "assignment_pattern", "object_assignment_pattern":
		return bindingIdentifiers(n.ChildByFieldName("left"))
	case "pair_pattern":
		return bindingIdentifiers(n.ChildByFieldName("value"))
	case "rest_pattern", "object_pattern", "array_pattern":
		var ret []*sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			ret = append(ret, bindingIdentifiers(n.NamedChild(i))...)
		}
		return ret
	}
	return nil
}

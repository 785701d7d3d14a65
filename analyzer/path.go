package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// maxPathDepth caps upward hops through nested object literals
const maxPathDepth = 10

type nodeKey struct {
	start, end uint32
	kind       string
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), kind: n.Type()}
}

// objectPath returns the ownership path of a member of an object literal, outermost first.
// member is the method_definition or pair whose parent is the object.
func objectPath(member *sitter.Node, name string, src []byte) []string {
	path := []string{name}
	visited := map[nodeKey]bool{}
	object := member.Parent()
	for hops := 0; object != nil && hops < maxPathDepth; hops++ {
		key := keyOf(object)
		if visited[key] {
			break
		}
		visited[key] = true
		owner := container(object)
		if owner == nil {
			break
		}
		switch owner.Type() {
		case "variable_declarator":
			if declared := declaredName(owner, src); declared != "" {
				path = append(path, declared)
			}
			return reverse(path)
		case "pair":
			path = append(path, keyName(owner.ChildByFieldName("key"), src))
			object = owner.Parent()
			continue
		case "assignment_expression":
			if left := owner.ChildByFieldName("left"); left != nil {
				path = append(path, left.Content(src))
			}
			return reverse(path)
		}
		break
	}
	return reverse(path)
}

// classPath returns [className, name] for a class member or [name] when the class is anonymous
func classPath(member *sitter.Node, name string, src []byte) []string {
	if class := enclosingClass(member); class != nil {
		if className := classNameOf(class, src); className != "" {
			return []string{className, name}
		}
	}
	return []string{name}
}

func enclosingClass(n *sitter.Node) *sitter.Node {
	for parent, hops := n.Parent(), 0; parent != nil && hops < maxPathDepth; parent, hops = parent.Parent(), hops+1 {
		if isClass(parent) {
			return parent
		}
	}
	return nil
}

func classNameOf(class *sitter.Node, src []byte) string {
	if name := class.ChildByFieldName("name"); name != nil {
		return name.Content(src)
	}
	if owner := container(class); owner != nil && owner.Type() == "variable_declarator" {
		return declaredName(owner, src)
	}
	return ""
}

func reverse(path []string) []string {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

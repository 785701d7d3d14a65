package scope

import "math"

// Kind identifies what opened a lexical region
type Kind string

const (
	Global   Kind = "global"
	Function Kind = "function"
	Block    Kind = "block"
	Method   Kind = "method"
)

// Unbounded is the end offset of the global scope
const Unbounded = math.MaxInt

// Variable represents a single declared binding
type Variable struct {
	Name             string `yaml:"name"`
	DeclarationStart int    `yaml:"declarationStart"` // declarator (or parameter) start offset
	DeclarationEnd   int    `yaml:"declarationEnd"`   // declarator (or parameter) end offset
	InsertAfter      int    `yaml:"insertAfter"`      // offset a new statement can follow, -1 if none
	References       []int  `yaml:"references,omitempty"`
	IsParameter      bool   `yaml:"isParameter,omitempty"`
}

// InsertionOffset returns the offset after which a statement can be appended,
// preferring the full declaring statement over the declarator
func (v *Variable) InsertionOffset() int {
	if v.InsertAfter >= 0 {
		return v.InsertAfter
	}
	return v.DeclarationEnd
}

// Scope represents a lexical region with its own bindings
type Scope struct {
	Kind      Kind        `yaml:"kind"`
	Start     int         `yaml:"start"`
	End       int         `yaml:"end"`
	Variables []*Variable `yaml:"variables,omitempty"`
	Children  []*Scope    `yaml:"children,omitempty"`
	Parent    *Scope      `yaml:"-"`
	index     map[string]*Variable
}

// New creates a scope and links it under parent
func New(kind Kind, start, end int, parent *Scope) *Scope {
	ret := &Scope{Kind: kind, Start: start, End: end, Parent: parent, index: map[string]*Variable{}}
	if parent != nil {
		parent.Children = append(parent.Children, ret)
	}
	return ret
}

// Declare adds a variable; a later declaration of the same name replaces the index entry
func (s *Scope) Declare(v *Variable) {
	s.Variables = append(s.Variables, v)
	s.index[v.Name] = v
}

// Variable returns the most recent declaration of name in this scope only
func (s *Scope) Variable(name string) *Variable {
	return s.index[name]
}

// Lookup walks the scope chain outward and returns the variable with its owning scope
func (s *Scope) Lookup(name string) (*Variable, *Scope) {
	for current := s; current != nil; current = current.Parent {
		if v := current.index[name]; v != nil {
			return v, current
		}
	}
	return nil, nil
}

// Contains reports whether the offset falls within the scope bounds (inclusive)
func (s *Scope) Contains(offset int) bool {
	return s.Start <= offset && offset <= s.End
}

// Innermost returns the deepest scope containing offset or nil when s does not contain it
func (s *Scope) Innermost(offset int) *Scope {
	if !s.Contains(offset) {
		return nil
	}
	current := s
	for {
		var next *Scope
		for _, child := range current.Children {
			if child.Contains(offset) {
				next = child
				break
			}
		}
		if next == nil {
			return current
		}
		current = next
	}
}

// Walk visits s and its descendants depth first until fn returns false
func (s *Scope) Walk(fn func(*Scope) bool) bool {
	if !fn(s) {
		return false
	}
	for _, child := range s.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Depth returns the number of parent links up to the global scope
func (s *Scope) Depth() int {
	depth := 0
	for current := s.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}

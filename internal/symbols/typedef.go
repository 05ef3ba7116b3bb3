package symbols

import (
	"github.com/ouro-lang/ouro/internal/typesystem"
)

// TypeDefinition is the semantic record of a class, struct, enum, interface
// or primitive. The analyzer links SuperType and Interfaces after all stubs
// are registered, so lookups tolerate partially wired chains.
type TypeDefinition struct {
	Name           string
	TypeParameters []string
	// Constraints is aligned with TypeParameters; entries are
	// typesystem.Constrained values, nil for unbounded parameters.
	Constraints []typesystem.Type
	IsInterface bool
	IsStruct    bool
	IsEnum      bool
	IsAbstract  bool
	IsSealed    bool
	IsPrimitive bool
	SuperType   *TypeDefinition
	Interfaces  []*TypeDefinition
	Methods     []*MethodSymbol
	Properties  []*VariableSymbol
	Line        int
	Column      int
}

// ErrorSentinelName marks the placeholder definition used after a failed
// lookup so downstream checks stay quiet.
const ErrorSentinelName = "<error>"

// NewErrorSentinel builds the placeholder definition for an unresolvable
// type reference.
func NewErrorSentinel() *TypeDefinition {
	return &TypeDefinition{Name: ErrorSentinelName}
}

// IsErrorSentinel reports whether t is the failed-lookup placeholder.
func (t *TypeDefinition) IsErrorSentinel() bool {
	return t != nil && t.Name == ErrorSentinelName
}

// IsSubtypeOf walks the superclass chain and interface graph. A visited set
// keeps malformed cyclic hierarchies from looping; cycle reporting itself is
// the analyzer's job.
func (t *TypeDefinition) IsSubtypeOf(other *TypeDefinition) bool {
	if t == nil || other == nil {
		return false
	}
	return t.isSubtypeOf(other, map[*TypeDefinition]bool{})
}

func (t *TypeDefinition) isSubtypeOf(other *TypeDefinition, visited map[*TypeDefinition]bool) bool {
	if t == other || t.Name == other.Name {
		return true
	}
	if visited[t] {
		return false
	}
	visited[t] = true

	if t.SuperType != nil && t.SuperType.isSubtypeOf(other, visited) {
		return true
	}
	for _, iface := range t.Interfaces {
		if iface.isSubtypeOf(other, visited) {
			return true
		}
	}
	return false
}

// FindMethod looks up a method by name on t, its superclass chain, then its
// interfaces, depth first.
func (t *TypeDefinition) FindMethod(name string) *MethodSymbol {
	return t.findMethod(name, map[*TypeDefinition]bool{})
}

func (t *TypeDefinition) findMethod(name string, visited map[*TypeDefinition]bool) *MethodSymbol {
	if t == nil || visited[t] {
		return nil
	}
	visited[t] = true

	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	if t.SuperType != nil {
		if m := t.SuperType.findMethod(name, visited); m != nil {
			return m
		}
	}
	for _, iface := range t.Interfaces {
		if m := iface.findMethod(name, visited); m != nil {
			return m
		}
	}
	return nil
}

// FindProperty looks up a property by name with the same walk order as
// FindMethod.
func (t *TypeDefinition) FindProperty(name string) *VariableSymbol {
	return t.findProperty(name, map[*TypeDefinition]bool{})
}

func (t *TypeDefinition) findProperty(name string, visited map[*TypeDefinition]bool) *VariableSymbol {
	if t == nil || visited[t] {
		return nil
	}
	visited[t] = true

	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}
	if t.SuperType != nil {
		if p := t.SuperType.findProperty(name, visited); p != nil {
			return p
		}
	}
	for _, iface := range t.Interfaces {
		if p := iface.findProperty(name, visited); p != nil {
			return p
		}
	}
	return nil
}

// HasCycle reports whether the inheritance graph, superclass chain and
// interface edges alike, reaches back to t.
func (t *TypeDefinition) HasCycle() bool {
	if t == nil {
		return false
	}
	return t.reaches(t, map[*TypeDefinition]bool{})
}

func (t *TypeDefinition) reaches(target *TypeDefinition, visited map[*TypeDefinition]bool) bool {
	if visited[t] {
		return false
	}
	visited[t] = true

	if t.SuperType != nil {
		if t.SuperType == target || t.SuperType.reaches(target, visited) {
			return true
		}
	}
	for _, iface := range t.Interfaces {
		if iface == target || iface.reaches(target, visited) {
			return true
		}
	}
	return false
}

package symbols

import (
	"fmt"

	"github.com/ouro-lang/ouro/internal/typesystem"
)

// Scope is one frame of the lexical scope tree.
type Scope struct {
	parent        *Scope
	children      []*Scope
	symbols       map[string]Symbol
	enclosingType *TypeDefinition
}

func newScope(parent *Scope, enclosing *TypeDefinition) *Scope {
	return &Scope{
		parent:        parent,
		symbols:       make(map[string]Symbol),
		enclosingType: enclosing,
	}
}

// Define binds a symbol in this scope. Redefinition within the same scope is
// an error; shadowing an outer scope is allowed.
func (s *Scope) Define(sym Symbol) error {
	name := sym.SymbolName()
	if _, exists := s.symbols[name]; exists {
		return fmt.Errorf("'%s' is already defined in this scope", name)
	}
	s.symbols[name] = sym
	return nil
}

// Resolve walks outward from this scope and returns the first match.
func (s *Scope) Resolve(name string) Symbol {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// EnclosingType walks outward for the nearest class/struct/enum scope.
func (s *Scope) EnclosingType() *TypeDefinition {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.enclosingType != nil {
			return scope.enclosingType
		}
	}
	return nil
}

// SymbolTable owns the scope tree for one compilation unit. The global scope
// is pre-seeded with a TypeSymbol per primitive type.
type SymbolTable struct {
	global  *Scope
	current *Scope
}

func NewSymbolTable() *SymbolTable {
	global := newScope(nil, nil)
	st := &SymbolTable{global: global, current: global}
	for _, name := range []string{
		"Int", "Int8", "Int16", "Int32", "Int64",
		"UInt8", "UInt16", "UInt32", "UInt64",
		"Float", "Float16", "Float32", "Float64", "Float128",
		"Half", "Double", "Bool", "String", "Char", "Void",
	} {
		global.symbols[name] = &TypeSymbol{Definition: &TypeDefinition{Name: name, IsPrimitive: true}}
	}
	return st
}

// EnterScope pushes a child scope. A non-nil enclosing marks the frame as a
// type body for this/super resolution.
func (st *SymbolTable) EnterScope(enclosing *TypeDefinition) {
	child := newScope(st.current, enclosing)
	st.current.children = append(st.current.children, child)
	st.current = child
}

// ExitScope pops back to the parent. Popping the global scope is a
// programming error in the analyzer, so it panics.
func (st *SymbolTable) ExitScope() {
	if st.current.parent == nil {
		panic("symbols: cannot exit the global scope")
	}
	st.current = st.current.parent
}

func (st *SymbolTable) CurrentScope() *Scope { return st.current }
func (st *SymbolTable) GlobalScope() *Scope  { return st.global }

// Define binds a symbol in the current scope.
func (st *SymbolTable) Define(sym Symbol) error {
	return st.current.Define(sym)
}

// DefineType binds a type definition in the global scope. Types are never
// scoped to a block.
func (st *SymbolTable) DefineType(def *TypeDefinition) error {
	return st.global.Define(&TypeSymbol{Definition: def})
}

// Resolve returns the first symbol with the given name, innermost scope
// first.
func (st *SymbolTable) Resolve(name string) Symbol {
	return st.current.Resolve(name)
}

// ResolveVariable narrows Resolve to variables and parameters. Parameters
// surface as a VariableSymbol view so callers handle one shape.
func (st *SymbolTable) ResolveVariable(name string) *VariableSymbol {
	switch sym := st.current.Resolve(name).(type) {
	case *VariableSymbol:
		return sym
	case *ParameterSymbol:
		return &VariableSymbol{Name: sym.Name, Type: sym.Type, Line: sym.Line, Column: sym.Column}
	default:
		return nil
	}
}

// ResolveMethod narrows Resolve to methods.
func (st *SymbolTable) ResolveMethod(name string) *MethodSymbol {
	if sym, ok := st.current.Resolve(name).(*MethodSymbol); ok {
		return sym
	}
	return nil
}

// ResolveType narrows Resolve to type definitions.
func (st *SymbolTable) ResolveType(name string) *TypeDefinition {
	if sym, ok := st.current.Resolve(name).(*TypeSymbol); ok {
		return sym.Definition
	}
	return nil
}

// EnclosingType returns the type whose body the current scope sits in, or
// nil at top level.
func (st *SymbolTable) EnclosingType() *TypeDefinition {
	return st.current.EnclosingType()
}

// PrimitiveFor maps a primitive TypeDefinition back to its model type.
func PrimitiveFor(def *TypeDefinition) (typesystem.Type, bool) {
	if def == nil || !def.IsPrimitive {
		return nil, false
	}
	p, ok := typesystem.PrimitiveByName(def.Name)
	if !ok {
		return nil, false
	}
	return p, true
}

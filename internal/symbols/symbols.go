// Package symbols implements the scope tree and symbol kinds used during
// semantic analysis.
package symbols

import (
	"github.com/ouro-lang/ouro/internal/typesystem"
)

// Symbol is anything a name can resolve to.
type Symbol interface {
	SymbolName() string
	symbolKind()
}

// VariableSymbol is a var/let binding or a declared property.
type VariableSymbol struct {
	Name       string
	Type       typesystem.Type
	IsConstant bool
	IsStatic   bool
	Line       int
	Column     int
}

func (s *VariableSymbol) SymbolName() string { return s.Name }
func (s *VariableSymbol) symbolKind()        {}

// ParameterSymbol is a function or lambda parameter.
type ParameterSymbol struct {
	Name   string
	Type   typesystem.Type
	Line   int
	Column int
}

func (s *ParameterSymbol) SymbolName() string { return s.Name }
func (s *ParameterSymbol) symbolKind()        {}

// MethodSymbol is a free function, a method or a constructor.
type MethodSymbol struct {
	Name           string
	TypeParameters []string
	// Constraints is aligned with TypeParameters; entries are
	// typesystem.Constrained values, nil for unbounded parameters.
	Constraints   []typesystem.Type
	Parameters    []*ParameterSymbol
	ReturnType    typesystem.Type // nil means void
	IsStatic      bool
	IsAbstract    bool
	IsOverride    bool
	IsConstructor bool
	IsAsync       bool
	Line          int
	Column        int
}

func (s *MethodSymbol) SymbolName() string { return s.Name }
func (s *MethodSymbol) symbolKind()        {}

// FunctionType returns the method's signature as a model type.
func (s *MethodSymbol) FunctionType() typesystem.Function {
	params := make([]typesystem.Type, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.Type
	}
	ret := s.ReturnType
	if ret == nil {
		ret = typesystem.Primitive{Kind: typesystem.KindVoid}
	}
	return typesystem.Function{Params: params, Return: ret}
}

// SignatureMatches reports whether other has the same name, arity, parameter
// types and return type. Used for override and conformance checks.
func (s *MethodSymbol) SignatureMatches(other *MethodSymbol) bool {
	if s.Name != other.Name || len(s.Parameters) != len(other.Parameters) {
		return false
	}
	for i := range s.Parameters {
		if !typesystem.Equals(s.Parameters[i].Type, other.Parameters[i].Type) {
			return false
		}
	}
	if s.ReturnType == nil || other.ReturnType == nil {
		return s.ReturnType == nil && other.ReturnType == nil
	}
	return typesystem.Equals(s.ReturnType, other.ReturnType)
}

// TypeSymbol binds a type name to its definition inside a scope.
type TypeSymbol struct {
	Definition *TypeDefinition
}

func (s *TypeSymbol) SymbolName() string { return s.Definition.Name }
func (s *TypeSymbol) symbolKind()        {}

package ast

import (
	"strconv"
	"strings"

	"github.com/ouro-lang/ouro/internal/token"
)

// NamedType is a bare type name: Int, String, Animal, or a generic parameter
// in scope.
type NamedType struct {
	Token token.Token
	Name  string
}

func (t *NamedType) Accept(v TypeVisitor)  { v.VisitNamedType(t) }
func (t *NamedType) typeNode()             {}
func (t *NamedType) TokenLiteral() string  { return t.Token.Lexeme }
func (t *NamedType) TypeString() string    { return t.Name }
func (t *NamedType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// ArrayType is the suffix form Elem[].
type ArrayType struct {
	Token token.Token
	Elem  TypeNode
}

func (t *ArrayType) Accept(v TypeVisitor)  { v.VisitArrayType(t) }
func (t *ArrayType) typeNode()             {}
func (t *ArrayType) TokenLiteral() string  { return t.Token.Lexeme }
func (t *ArrayType) TypeString() string    { return t.Elem.TypeString() + "[]" }
func (t *ArrayType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// OptionalType is the suffix form Elem?.
type OptionalType struct {
	Token token.Token
	Elem  TypeNode
}

func (t *OptionalType) Accept(v TypeVisitor)  { v.VisitOptionalType(t) }
func (t *OptionalType) typeNode()             {}
func (t *OptionalType) TokenLiteral() string  { return t.Token.Lexeme }
func (t *OptionalType) TypeString() string    { return t.Elem.TypeString() + "?" }
func (t *OptionalType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// FunctionType is (A, B) -> R.
type FunctionType struct {
	Token  token.Token
	Params []TypeNode
	Return TypeNode
}

func (t *FunctionType) Accept(v TypeVisitor) { v.VisitFunctionType(t) }
func (t *FunctionType) typeNode()            {}
func (t *FunctionType) TokenLiteral() string { return t.Token.Lexeme }
func (t *FunctionType) TypeString() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.TypeString()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.TypeString()
}
func (t *FunctionType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// TupleType is (A, B, C) with at least two elements.
type TupleType struct {
	Token token.Token
	Elems []TypeNode
}

func (t *TupleType) Accept(v TypeVisitor) { v.VisitTupleType(t) }
func (t *TupleType) typeNode()            {}
func (t *TupleType) TokenLiteral() string { return t.Token.Lexeme }
func (t *TupleType) TypeString() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.TypeString()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// GenericType is Name<Arg, ...>: Map<K, V>, Set<T>, user generics.
type GenericType struct {
	Token token.Token
	Name  string
	Args  []TypeNode
}

func (t *GenericType) Accept(v TypeVisitor) { v.VisitGenericType(t) }
func (t *GenericType) typeNode()            {}
func (t *GenericType) TokenLiteral() string { return t.Token.Lexeme }
func (t *GenericType) TypeString() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.TypeString()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}
func (t *GenericType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// UnionType is A | B | C.
type UnionType struct {
	Token   token.Token
	Members []TypeNode
}

func (t *UnionType) Accept(v TypeVisitor) { v.VisitUnionType(t) }
func (t *UnionType) typeNode()            {}
func (t *UnionType) TokenLiteral() string { return t.Token.Lexeme }
func (t *UnionType) TypeString() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.TypeString()
	}
	return strings.Join(parts, " | ")
}
func (t *UnionType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// IntersectionType is A & B.
type IntersectionType struct {
	Token   token.Token
	Members []TypeNode
}

func (t *IntersectionType) Accept(v TypeVisitor) { v.VisitIntersectionType(t) }
func (t *IntersectionType) typeNode()            {}
func (t *IntersectionType) TokenLiteral() string { return t.Token.Lexeme }
func (t *IntersectionType) TypeString() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.TypeString()
	}
	return strings.Join(parts, " & ")
}
func (t *IntersectionType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// TensorType is Tensor<2x3xFloat> or Vector<4xFloat>. A dimension of -1 is
// dynamic ('?' in the source spelling).
type TensorType struct {
	Token    token.Token
	IsVector bool
	Shape    []int64
	Elem     TypeNode
}

func (t *TensorType) Accept(v TypeVisitor) { v.VisitTensorType(t) }
func (t *TensorType) typeNode()            {}
func (t *TensorType) TokenLiteral() string { return t.Token.Lexeme }
func (t *TensorType) TypeString() string {
	name := "Tensor"
	if t.IsVector {
		name = "Vector"
	}
	parts := make([]string, 0, len(t.Shape)+1)
	for _, d := range t.Shape {
		if d < 0 {
			parts = append(parts, "?")
		} else {
			parts = append(parts, strconv.FormatInt(d, 10))
		}
	}
	parts = append(parts, t.Elem.TypeString())
	return name + "<" + strings.Join(parts, "x") + ">"
}
func (t *TensorType) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

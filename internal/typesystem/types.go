// Package typesystem holds the Ouro type model and the operations over it:
// parsing textual type spellings, lowering to IR type spellings, subtyping,
// common-supertype inference, unification, and named-type resolution.
//
// Types are pure values with structural equality. None of the operations
// mutate their inputs, so results are freely cacheable.
package typesystem

import (
	"reflect"
	"strconv"
	"strings"
)

// Type is the interface implemented by every type variant.
type Type interface {
	String() string
	MLIR() string
	typeVariant()
}

// PrimitiveKind names a built-in scalar type.
type PrimitiveKind string

const (
	KindInt      PrimitiveKind = "Int"
	KindInt8     PrimitiveKind = "Int8"
	KindInt16    PrimitiveKind = "Int16"
	KindInt32    PrimitiveKind = "Int32"
	KindInt64    PrimitiveKind = "Int64"
	KindUInt8    PrimitiveKind = "UInt8"
	KindUInt16   PrimitiveKind = "UInt16"
	KindUInt32   PrimitiveKind = "UInt32"
	KindUInt64   PrimitiveKind = "UInt64"
	KindFloat16  PrimitiveKind = "Float16"
	KindFloat    PrimitiveKind = "Float"
	KindDouble   PrimitiveKind = "Double"
	KindFloat128 PrimitiveKind = "Float128"
	KindBool     PrimitiveKind = "Bool"
	KindString   PrimitiveKind = "String"
	KindChar     PrimitiveKind = "Char"
	KindVoid     PrimitiveKind = "Void"
)

// Primitive is a built-in scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

func (t Primitive) typeVariant()   {}
func (t Primitive) String() string { return string(t.Kind) }

// Array is T[].
type Array struct {
	Elem Type
}

func (t Array) typeVariant()   {}
func (t Array) String() string { return t.Elem.String() + "[]" }

// Optional is T?.
type Optional struct {
	Elem Type
}

func (t Optional) typeVariant()   {}
func (t Optional) String() string { return t.Elem.String() + "?" }

// DynamicDim marks a tensor/vector dimension of unknown extent.
const DynamicDim int64 = -1

// TensorShape is an ordered sequence of dimensions; DynamicDim entries match
// any extent.
type TensorShape []int64

// Compatible reports dimension-wise compatibility: equal rank and every
// dimension pair equal or dynamic on at least one side.
func (s TensorShape) Compatible(other TensorShape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] && s[i] != DynamicDim && other[i] != DynamicDim {
			return false
		}
	}
	return true
}

func (s TensorShape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		if d == DynamicDim {
			parts[i] = "?"
		} else {
			parts[i] = strconv.FormatInt(d, 10)
		}
	}
	return strings.Join(parts, "x")
}

// Tensor is Tensor<dims x elem>.
type Tensor struct {
	Shape TensorShape
	Elem  Type
}

func (t Tensor) typeVariant() {}
func (t Tensor) String() string {
	if len(t.Shape) == 0 {
		return "Tensor<" + t.Elem.String() + ">"
	}
	return "Tensor<" + t.Shape.String() + "x" + t.Elem.String() + ">"
}

// Vector is Vector<dims x elem>.
type Vector struct {
	Shape TensorShape
	Elem  Type
}

func (t Vector) typeVariant() {}
func (t Vector) String() string {
	if len(t.Shape) == 0 {
		return "Vector<" + t.Elem.String() + ">"
	}
	return "Vector<" + t.Shape.String() + "x" + t.Elem.String() + ">"
}

// Function is (params) -> ret.
type Function struct {
	Params []Type
	Return Type
}

func (t Function) typeVariant() {}
func (t Function) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}

// Dictionary is Map<K, V>.
type Dictionary struct {
	Key   Type
	Value Type
}

func (t Dictionary) typeVariant()   {}
func (t Dictionary) String() string { return "Map<" + t.Key.String() + ", " + t.Value.String() + ">" }

// Set is Set<T>.
type Set struct {
	Elem Type
}

func (t Set) typeVariant()   {}
func (t Set) String() string { return "Set<" + t.Elem.String() + ">" }

// Tuple is (A, B, ...).
type Tuple struct {
	Elems []Type
}

func (t Tuple) typeVariant() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Union is A | B. Members are kept flattened, deduplicated and sorted.
type Union struct {
	Members []Type
}

func (t Union) typeVariant() {}
func (t Union) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// Intersection is A & B.
type Intersection struct {
	Members []Type
}

func (t Intersection) typeVariant() {}
func (t Intersection) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}

// GenericParam is an unbound generic parameter (T, U, ...).
type GenericParam struct {
	Name string
}

func (t GenericParam) typeVariant()   {}
func (t GenericParam) String() string { return t.Name }

/// Constrained is a generic parameter with constraints (T: Comparable).
type Constrained struct {
	Base        Type
	Constraints []Type
}

func (t Constrained) typeVariant() {}
func (t Constrained) String() string {
	parts := make([]string, len(t.Constraints))
	for i, c := range t.Constraints {
		parts[i] = c.String()
	}
	return t.Base.String() + ": " + strings.Join(parts, ", ")
}

// Never is the bottom type: a subtype of everything, no values.
type Never struct{}

func (t Never) typeVariant()   {}
func (t Never) String() string { return "Never" }

// Custom is a nominal (user-declared or unrecognized) named type.
type Custom struct {
	Name string
}

func (t Custom) typeVariant()   {}
func (t Custom) String() string { return t.Name }

// AnyTypeName is the top type when it appears as a plain named type.
const AnyTypeName = "Any"

// Equals reports structural equality of two types.
func Equals(a, b Type) bool {
	return reflect.DeepEqual(a, b)
}

// NormalizeUnion flattens nested unions, deduplicates members by spelling and
// sorts them. A single remaining member is returned unwrapped.
func NormalizeUnion(members []Type) Type {
	flat := []Type{}
	for _, m := range members {
		if u, ok := m.(Union); ok {
			flat = append(flat, u.Members...)
		} else {
			flat = append(flat, m)
		}
	}

	seen := make(map[string]bool)
	unique := []Type{}
	for _, m := range flat {
		s := m.String()
		if !seen[s] {
			seen[s] = true
			unique = append(unique, m)
		}
	}

	if len(unique) == 1 {
		return unique[0]
	}

	for i := 1; i < len(unique); i++ {
		for j := i; j > 0 && unique[j-1].String() > unique[j].String(); j-- {
			unique[j-1], unique[j] = unique[j], unique[j-1]
		}
	}

	return Union{Members: unique}
}

// numericRank is the fixed total order used for promotion. Integer kinds rank
// below every float kind.
var numericRank = map[PrimitiveKind]int{
	KindInt8:     1,
	KindUInt8:    1,
	KindInt16:    2,
	KindUInt16:   2,
	KindInt32:    3,
	KindUInt32:   3,
	KindInt:      3,
	KindInt64:    4,
	KindUInt64:   4,
	KindFloat16:  5,
	KindFloat:    6,
	KindDouble:   7,
	KindFloat128: 8,
}

// IsNumeric reports whether t is a numeric primitive.
func IsNumeric(t Type) bool {
	p, ok := t.(Primitive)
	if !ok {
		return false
	}
	_, ok = numericRank[p.Kind]
	return ok
}

// IsInteger reports whether t is an integer primitive.
func IsInteger(t Type) bool {
	p, ok := t.(Primitive)
	if !ok {
		return false
	}
	r, ok := numericRank[p.Kind]
	return ok && r < 5
}

// IsFloat reports whether t is a floating-point primitive.
func IsFloat(t Type) bool {
	p, ok := t.(Primitive)
	if !ok {
		return false
	}
	r, ok := numericRank[p.Kind]
	return ok && r >= 5
}

package typesystem

import "strings"

// primitiveMLIR is the scalar lowering table. Unsigned kinds share the
// signless integer spellings.
var primitiveMLIR = map[PrimitiveKind]string{
	KindInt:      "i32",
	KindInt8:     "i8",
	KindInt16:    "i16",
	KindInt32:    "i32",
	KindInt64:    "i64",
	KindUInt8:    "i8",
	KindUInt16:   "i16",
	KindUInt32:   "i32",
	KindUInt64:   "i64",
	KindFloat16:  "f16",
	KindFloat:    "f32",
	KindDouble:   "f64",
	KindFloat128: "f128",
	KindBool:     "i1",
	KindString:   "!llvm.ptr<i8>",
	KindChar:     "i32",
	KindVoid:     "none",
}

// primitiveDescription is the human-readable form used by diagnostics and the
// types inspection command.
var primitiveDescription = map[PrimitiveKind]string{
	KindInt:      "32-bit signed integer",
	KindInt8:     "8-bit signed integer",
	KindInt16:    "16-bit signed integer",
	KindInt32:    "32-bit signed integer",
	KindInt64:    "64-bit signed integer",
	KindUInt8:    "8-bit unsigned integer",
	KindUInt16:   "16-bit unsigned integer",
	KindUInt32:   "32-bit unsigned integer",
	KindUInt64:   "64-bit unsigned integer",
	KindFloat16:  "16-bit float",
	KindFloat:    "32-bit float",
	KindDouble:   "64-bit float",
	KindFloat128: "128-bit float",
	KindBool:     "boolean",
	KindString:   "string",
	KindChar:     "unicode scalar",
	KindVoid:     "void",
}

func (t Primitive) MLIR() string {
	if s, ok := primitiveMLIR[t.Kind]; ok {
		return s
	}
	return "none"
}

func (t Array) MLIR() string { return "memref<?x" + t.Elem.MLIR() + ">" }

func (t Optional) MLIR() string { return "!ouro.optional<" + t.Elem.MLIR() + ">" }

func (t Tensor) MLIR() string {
	if len(t.Shape) == 0 {
		return "tensor<*x" + t.Elem.MLIR() + ">"
	}
	return "tensor<" + t.Shape.String() + "x" + t.Elem.MLIR() + ">"
}

func (t Vector) MLIR() string {
	return "vector<" + t.Shape.String() + "x" + t.Elem.MLIR() + ">"
}

func (t Function) MLIR() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.MLIR()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.MLIR()
}

func (t Dictionary) MLIR() string {
	return "!ouro.map<" + t.Key.MLIR() + ", " + t.Value.MLIR() + ">"
}

func (t Set) MLIR() string { return "!ouro.set<" + t.Elem.MLIR() + ">" }

func (t Tuple) MLIR() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.MLIR()
	}
	return "tuple<" + strings.Join(parts, ", ") + ">"
}

func (t Union) MLIR() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.MLIR()
	}
	return "!ouro.union<" + strings.Join(parts, ", ") + ">"
}

func (t Intersection) MLIR() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.MLIR()
	}
	return "!ouro.all<" + strings.Join(parts, ", ") + ">"
}

func (t GenericParam) MLIR() string { return `!ouro.typevar<"` + t.Name + `">` }

func (t Constrained) MLIR() string { return t.Base.MLIR() }

func (t Never) MLIR() string { return "!ouro.never" }

// MLIR spells nominal types deterministically from the escaped name, so equal
// names always lower identically.
func (t Custom) MLIR() string {
	escaped := strings.NewReplacer(`"`, `\"`, `\`, `\\`).Replace(t.Name)
	return `!ouro.custom<"` + escaped + `">`
}

// Describe returns the human-readable description of t.
func Describe(t Type) string {
	switch v := t.(type) {
	case Primitive:
		if d, ok := primitiveDescription[v.Kind]; ok {
			return d
		}
		return string(v.Kind)
	case Array:
		return "array of " + Describe(v.Elem)
	case Optional:
		return "optional " + Describe(v.Elem)
	case Tensor:
		return "tensor " + v.Shape.String() + " of " + Describe(v.Elem)
	case Vector:
		return "vector " + v.Shape.String() + " of " + Describe(v.Elem)
	case Function:
		return "function " + v.String()
	case Dictionary:
		return "dictionary from " + Describe(v.Key) + " to " + Describe(v.Value)
	case Set:
		return "set of " + Describe(v.Elem)
	case Tuple:
		return "tuple " + v.String()
	case Union:
		return "union " + v.String()
	case Intersection:
		return "intersection " + v.String()
	case GenericParam:
		return "generic parameter " + v.Name
	case Constrained:
		return "constrained " + Describe(v.Base)
	case Never:
		return "never"
	case Custom:
		return "named type " + v.Name
	default:
		return t.String()
	}
}

package typesystem

import (
	"strconv"
	"strings"
)

// primitiveNames maps every accepted spelling, aliases included, to its kind.
var primitiveNames = map[string]PrimitiveKind{
	"Int":      KindInt,
	"Int8":     KindInt8,
	"Int16":    KindInt16,
	"Int32":    KindInt32,
	"Int64":    KindInt64,
	"UInt8":    KindUInt8,
	"UInt16":   KindUInt16,
	"UInt32":   KindUInt32,
	"UInt64":   KindUInt64,
	"Float16":  KindFloat16,
	"Half":     KindFloat16,
	"Float":    KindFloat,
	"Float32":  KindFloat,
	"Double":   KindDouble,
	"Float64":  KindDouble,
	"Float128": KindFloat128,
	"Bool":     KindBool,
	"String":   KindString,
	"Char":     KindChar,
	"Void":     KindVoid,
	"byte":     KindInt8,
	"double":   KindDouble,
}

// PrimitiveByName looks up a primitive type by spelling or alias.
func PrimitiveByName(name string) (Primitive, bool) {
	kind, ok := primitiveNames[name]
	return Primitive{Kind: kind}, ok
}

// Parse turns a textual type spelling into a Type. Unrecognized names fall
// back to Custom, so Parse never fails; malformed compound spellings also
// degrade to Custom rather than guessing at structure.
func Parse(text string) Type {
	s := strings.TrimSpace(text)
	if s == "" {
		return Custom{Name: ""}
	}

	if members := splitTopLevel(s, '|'); len(members) > 1 {
		parsed := make([]Type, len(members))
		for i, m := range members {
			parsed[i] = Parse(m)
		}
		return NormalizeUnion(parsed)
	}

	if members := splitTopLevel(s, '&'); len(members) > 1 {
		parsed := make([]Type, len(members))
		for i, m := range members {
			parsed[i] = Parse(m)
		}
		return Intersection{Members: parsed}
	}

	if left, right, ok := splitArrow(s); ok {
		params := []Type{}
		inner := strings.TrimSpace(left)
		if strings.HasPrefix(inner, "(") && strings.HasSuffix(inner, ")") && balanced(inner[1:len(inner)-1]) {
			for _, p := range splitTopLevel(inner[1:len(inner)-1], ',') {
				if strings.TrimSpace(p) != "" {
					params = append(params, Parse(p))
				}
			}
		} else {
			params = append(params, Parse(inner))
		}
		return Function{Params: params, Return: Parse(right)}
	}

	if strings.HasSuffix(s, "?") && balanced(s[:len(s)-1]) {
		return Optional{Elem: Parse(s[:len(s)-1])}
	}

	if strings.HasSuffix(s, "[]") && balanced(s[:len(s)-2]) {
		return Array{Elem: Parse(s[:len(s)-2])}
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && balanced(s[1:len(s)-1]) {
		parts := splitTopLevel(s[1:len(s)-1], ',')
		if len(parts) == 1 {
			return Parse(parts[0])
		}
		elems := make([]Type, len(parts))
		for i, p := range parts {
			elems[i] = Parse(p)
		}
		return Tuple{Elems: elems}
	}

	if name, inner, ok := splitGeneric(s); ok {
		switch name {
		case "Tensor", "Vector":
			shape, elemText, err := SplitTensorSpec(inner)
			if err != nil {
				return Custom{Name: s}
			}
			if name == "Vector" {
				return Vector{Shape: shape, Elem: Parse(elemText)}
			}
			return Tensor{Shape: shape, Elem: Parse(elemText)}
		case "Map", "Dictionary":
			args := splitTopLevel(inner, ',')
			if len(args) != 2 {
				return Custom{Name: s}
			}
			return Dictionary{Key: Parse(args[0]), Value: Parse(args[1])}
		case "Set":
			args := splitTopLevel(inner, ',')
			if len(args) != 1 {
				return Custom{Name: s}
			}
			return Set{Elem: Parse(args[0])}
		default:
			return Custom{Name: s}
		}
	}

	if s == "Never" {
		return Never{}
	}
	if p, ok := PrimitiveByName(s); ok {
		return p
	}
	return Custom{Name: s}
}

// SplitTensorSpec splits the inside of Tensor<...>/Vector<...> into leading
// dimensions and the element spelling: "2x3xFloat" yields [2 3] and "Float".
// A '?' dimension is dynamic. At least one dimension and an element are
// required.
func SplitTensorSpec(inner string) (TensorShape, string, error) {
	segments := splitDims(strings.TrimSpace(inner))
	shape := TensorShape{}
	i := 0
	for ; i < len(segments); i++ {
		seg := strings.TrimSpace(segments[i])
		if seg == "?" {
			shape = append(shape, DynamicDim)
			continue
		}
		if n, err := strconv.ParseInt(seg, 10, 64); err == nil && n >= 0 {
			shape = append(shape, n)
			continue
		}
		break
	}
	if len(shape) == 0 || i >= len(segments) {
		return nil, "", &ResolutionError{Kind: InvalidConversion, Message: "malformed tensor spelling '" + inner + "'"}
	}
	return shape, strings.Join(segments[i:], "x"), nil
}

// splitDims splits on 'x' outside any bracket nesting.
func splitDims(s string) []string {
	parts := []string{}
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case 'x':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// splitTopLevel splits s on sep occurrences outside <>, () and [] nesting.
// Returns the single-element slice {s} when sep never appears at top level.
func splitTopLevel(s string, sep rune) []string {
	parts := []string{}
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			// Skip the '>' of '->' so arrows do not unbalance the scan.
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// splitArrow finds the first top-level "->" and splits around it.
func splitArrow(s string) (string, string, bool) {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
		case '-':
			if depth == 0 && s[i+1] == '>' {
				return s[:i], s[i+2:], true
			}
		}
	}
	return "", "", false
}

// splitGeneric recognizes Name<inner> with a matching final '>'.
func splitGeneric(s string) (string, string, bool) {
	open := strings.IndexByte(s, '<')
	if open <= 0 || !strings.HasSuffix(s, ">") {
		return "", "", false
	}
	name := s[:open]
	for _, r := range name {
		if !isIdentRune(r) {
			return "", "", false
		}
	}
	if !balanced(s[open+1 : len(s)-1]) {
		return "", "", false
	}
	return name, s[open+1 : len(s)-1], true
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// balanced reports whether every bracket in s closes inside s.
func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

package typesystem

// SubtypeChecker answers source <: target queries. Results are memoized per
// checker, so one checker should live for the duration of a compilation unit.
type SubtypeChecker struct {
	memo map[string]bool
}

func NewSubtypeChecker() *SubtypeChecker {
	return &SubtypeChecker{memo: make(map[string]bool)}
}

// IsSubtype reports whether source can be used where target is expected.
// Rules are tried in a fixed priority order: unions, intersections,
// structural containers, functions, optionals, bottom/top, nominal names,
// then structural equality.
func (c *SubtypeChecker) IsSubtype(source, target Type) bool {
	key := source.String() + " <: " + target.String()
	if r, ok := c.memo[key]; ok {
		return r
	}
	// Seed the memo so self-referential queries terminate.
	c.memo[key] = false
	r := c.check(source, target)
	c.memo[key] = r
	return r
}

func (c *SubtypeChecker) check(source, target Type) bool {
	if u, ok := source.(Union); ok {
		for _, m := range u.Members {
			if !c.IsSubtype(m, target) {
				return false
			}
		}
		return true
	}
	if u, ok := target.(Union); ok {
		for _, m := range u.Members {
			if c.IsSubtype(source, m) {
				return true
			}
		}
		return false
	}

	if x, ok := source.(Intersection); ok {
		for _, m := range x.Members {
			if c.IsSubtype(m, target) {
				return true
			}
		}
		return false
	}
	if x, ok := target.(Intersection); ok {
		for _, m := range x.Members {
			if !c.IsSubtype(source, m) {
				return false
			}
		}
		return true
	}

	switch t := target.(type) {
	case Array:
		if s, ok := source.(Array); ok {
			return c.IsSubtype(s.Elem, t.Elem)
		}
	case Set:
		if s, ok := source.(Set); ok {
			return c.IsSubtype(s.Elem, t.Elem)
		}
	case Dictionary:
		if s, ok := source.(Dictionary); ok {
			return c.IsSubtype(s.Key, t.Key) && c.IsSubtype(s.Value, t.Value)
		}
	case Tuple:
		if s, ok := source.(Tuple); ok {
			if len(s.Elems) != len(t.Elems) {
				return false
			}
			for i := range s.Elems {
				if !c.IsSubtype(s.Elems[i], t.Elems[i]) {
					return false
				}
			}
			return true
		}
	case Tensor:
		if s, ok := source.(Tensor); ok {
			return s.Shape.Compatible(t.Shape) && c.IsSubtype(s.Elem, t.Elem)
		}
	case Vector:
		if s, ok := source.(Vector); ok {
			return s.Shape.Compatible(t.Shape) && c.IsSubtype(s.Elem, t.Elem)
		}
	case Function:
		s, ok := source.(Function)
		if !ok || len(s.Params) != len(t.Params) {
			break
		}
		// Parameters are contravariant, the return type is covariant.
		for i := range s.Params {
			if !c.IsSubtype(t.Params[i], s.Params[i]) {
				return false
			}
		}
		return c.IsSubtype(s.Return, t.Return)
	}

	if so, sok := source.(Optional); sok {
		if to, tok := target.(Optional); tok {
			return c.IsSubtype(so.Elem, to.Elem)
		}
		// An optional never narrows into its element type implicitly.
		return false
	}
	if to, ok := target.(Optional); ok {
		return c.IsSubtype(source, to.Elem)
	}

	if _, ok := source.(Never); ok {
		return true
	}
	if ct, ok := target.(Custom); ok && ct.Name == AnyTypeName {
		return true
	}

	if sc, ok := source.(Custom); ok {
		if tc, ok := target.(Custom); ok {
			return sc.Name == tc.Name
		}
	}

	return Equals(source, target)
}

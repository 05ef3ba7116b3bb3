package typesystem

// CommonSupertype finds the least type both inputs can widen to. Numeric
// primitives promote along the rank table, with any float side winning over
// an integer side. Matching container shapes recurse element-wise. Anything
// else joins into a normalized union.
func (c *SubtypeChecker) CommonSupertype(a, b Type) Type {
	if c.IsSubtype(a, b) {
		return b
	}
	if c.IsSubtype(b, a) {
		return a
	}

	if pa, ok := a.(Primitive); ok {
		if pb, ok := b.(Primitive); ok {
			if p, ok := promoteNumeric(pa, pb); ok {
				return p
			}
		}
	}

	switch va := a.(type) {
	case Optional:
		if vb, ok := b.(Optional); ok {
			return Optional{Elem: c.CommonSupertype(va.Elem, vb.Elem)}
		}
	case Array:
		if vb, ok := b.(Array); ok {
			return Array{Elem: c.CommonSupertype(va.Elem, vb.Elem)}
		}
	case Set:
		if vb, ok := b.(Set); ok {
			return Set{Elem: c.CommonSupertype(va.Elem, vb.Elem)}
		}
	case Dictionary:
		if vb, ok := b.(Dictionary); ok {
			return Dictionary{
				Key:   c.CommonSupertype(va.Key, vb.Key),
				Value: c.CommonSupertype(va.Value, vb.Value),
			}
		}
	case Tuple:
		if vb, ok := b.(Tuple); ok && len(va.Elems) == len(vb.Elems) {
			elems := make([]Type, len(va.Elems))
			for i := range va.Elems {
				elems[i] = c.CommonSupertype(va.Elems[i], vb.Elems[i])
			}
			return Tuple{Elems: elems}
		}
	}

	return NormalizeUnion([]Type{a, b})
}

// promoteNumeric resolves two numeric primitives to the wider one. Mixing an
// integer with a float always promotes to the float side, regardless of rank
// order within the integer family.
func promoteNumeric(a, b Primitive) (Primitive, bool) {
	ra, aok := numericRank[a.Kind]
	rb, bok := numericRank[b.Kind]
	if !aok || !bok {
		return Primitive{}, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

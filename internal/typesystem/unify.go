package typesystem

// Subst maps generic parameter names to the types they were bound to.
type Subst map[string]Type

// Apply rewrites t, replacing every bound generic parameter. Compound shapes
// are rebuilt; unbound parameters stay as they are.
func (s Subst) Apply(t Type) Type {
	switch v := t.(type) {
	case GenericParam:
		if bound, ok := s[v.Name]; ok {
			return bound
		}
		return v
	case Constrained:
		constraints := make([]Type, len(v.Constraints))
		for i, c := range v.Constraints {
			constraints[i] = s.Apply(c)
		}
		return Constrained{Base: s.Apply(v.Base), Constraints: constraints}
	case Array:
		return Array{Elem: s.Apply(v.Elem)}
	case Optional:
		return Optional{Elem: s.Apply(v.Elem)}
	case Set:
		return Set{Elem: s.Apply(v.Elem)}
	case Tensor:
		return Tensor{Shape: v.Shape, Elem: s.Apply(v.Elem)}
	case Vector:
		return Vector{Shape: v.Shape, Elem: s.Apply(v.Elem)}
	case Dictionary:
		return Dictionary{Key: s.Apply(v.Key), Value: s.Apply(v.Value)}
	case Tuple:
		elems := make([]Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = s.Apply(e)
		}
		return Tuple{Elems: elems}
	case Function:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = s.Apply(p)
		}
		return Function{Params: params, Return: s.Apply(v.Return)}
	case Union:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = s.Apply(m)
		}
		return NormalizeUnion(members)
	case Intersection:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = s.Apply(m)
		}
		return Intersection{Members: members}
	default:
		return t
	}
}

// Unify matches a generic type shape against a concrete one and returns the
// substitution that makes them equal. Arrays, dictionaries and functions
// recurse; a generic parameter binds to whatever faces it; anything else must
// already be structurally equal.
func Unify(a, b Type) (Subst, error) {
	subst := Subst{}
	if err := unify(a, b, subst); err != nil {
		return nil, err
	}
	return subst, nil
}

// UnifyWith is the incremental form: it threads an existing substitution
// through the match, so a sequence of pairs shares bindings. Callers use it
// to instantiate a generic signature one argument at a time.
func UnifyWith(a, b Type, subst Subst) error {
	return unify(a, b, subst)
}

func unify(a, b Type, subst Subst) error {
	a = subst.Apply(a)
	b = subst.Apply(b)

	if p, ok := a.(GenericParam); ok {
		return bind(p.Name, b, subst)
	}
	if p, ok := b.(GenericParam); ok {
		return bind(p.Name, a, subst)
	}

	switch va := a.(type) {
	case Array:
		if vb, ok := b.(Array); ok {
			return unify(va.Elem, vb.Elem, subst)
		}
	case Dictionary:
		if vb, ok := b.(Dictionary); ok {
			if err := unify(va.Key, vb.Key, subst); err != nil {
				return err
			}
			return unify(va.Value, vb.Value, subst)
		}
	case Function:
		vb, ok := b.(Function)
		if !ok || len(va.Params) != len(vb.Params) {
			break
		}
		for i := range va.Params {
			if err := unify(va.Params[i], vb.Params[i], subst); err != nil {
				return err
			}
		}
		return unify(va.Return, vb.Return, subst)
	}

	if Equals(a, b) {
		return nil
	}
	return newIncompatible(a, b)
}

// bind records name -> t, rejecting conflicting rebinds and infinite types.
func bind(name string, t Type, subst Subst) error {
	if p, ok := t.(GenericParam); ok && p.Name == name {
		return nil
	}
	if existing, ok := subst[name]; ok {
		if Equals(existing, t) {
			return nil
		}
		return &ResolutionError{
			Kind:    IncompatibleTypes,
			Name:    name,
			Message: "'" + name + "' bound to both '" + existing.String() + "' and '" + t.String() + "'",
		}
	}
	if occurs(name, t) {
		return &ResolutionError{
			Kind:    CircularTypeReference,
			Name:    name,
			Message: "'" + name + "' occurs in '" + t.String() + "'",
		}
	}
	subst[name] = t
	return nil
}

func occurs(name string, t Type) bool {
	switch v := t.(type) {
	case GenericParam:
		return v.Name == name
	case Constrained:
		if occurs(name, v.Base) {
			return true
		}
		for _, c := range v.Constraints {
			if occurs(name, c) {
				return true
			}
		}
	case Array:
		return occurs(name, v.Elem)
	case Optional:
		return occurs(name, v.Elem)
	case Set:
		return occurs(name, v.Elem)
	case Tensor:
		return occurs(name, v.Elem)
	case Vector:
		return occurs(name, v.Elem)
	case Dictionary:
		return occurs(name, v.Key) || occurs(name, v.Value)
	case Tuple:
		for _, e := range v.Elems {
			if occurs(name, e) {
				return true
			}
		}
	case Function:
		for _, p := range v.Params {
			if occurs(name, p) {
				return true
			}
		}
		return occurs(name, v.Return)
	case Union:
		for _, m := range v.Members {
			if occurs(name, m) {
				return true
			}
		}
	case Intersection:
		for _, m := range v.Members {
			if occurs(name, m) {
				return true
			}
		}
	}
	return false
}

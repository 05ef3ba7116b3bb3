package typesystem

import (
	"github.com/ouro-lang/ouro/internal/ast"
)

// Registered is one named entry in a Registry.
type Registered struct {
	Name       string
	TypeParams []string
	Underlying Type // the model type a reference to this name denotes
}

// Registry maps type names to their definitions for one compilation unit.
// A fresh registry knows every primitive plus the byte/double style aliases.
type Registry struct {
	entries map[string]Registered
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Registered)}
	for name, kind := range primitiveNames {
		r.entries[name] = Registered{Name: name, Underlying: Primitive{Kind: kind}}
	}
	r.entries["Never"] = Registered{Name: "Never", Underlying: Never{}}
	r.entries[AnyTypeName] = Registered{Name: AnyTypeName, Underlying: Custom{Name: AnyTypeName}}
	return r
}

// Register adds or replaces a named type. User declarations shadow nothing;
// redeclaration of a builtin is the caller's mistake to diagnose.
func (r *Registry) Register(entry Registered) {
	r.entries[entry.Name] = entry
}

func (r *Registry) Lookup(name string) (Registered, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// ResolutionContext is one frame of generic-parameter scope. Contexts chain
// through parent, innermost first.
type ResolutionContext struct {
	parent   *ResolutionContext
	declared map[string]bool
	bindings map[string]ast.TypeNode
}

func NewResolutionContext() *ResolutionContext {
	return &ResolutionContext{
		declared: make(map[string]bool),
		bindings: make(map[string]ast.TypeNode),
	}
}

// Child opens a nested frame, e.g. for a generic method inside a generic
// class.
func (c *ResolutionContext) Child() *ResolutionContext {
	child := NewResolutionContext()
	child.parent = c
	return child
}

// Declare introduces a generic parameter name without binding it.
func (c *ResolutionContext) Declare(name string) {
	c.declared[name] = true
}

// Bind records a concrete argument for a declared parameter.
func (c *ResolutionContext) Bind(name string, node ast.TypeNode) {
	c.declared[name] = true
	c.bindings[name] = node
}

// LookupBinding walks the chain for a bound argument.
func (c *ResolutionContext) LookupBinding(name string) (ast.TypeNode, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if node, ok := ctx.bindings[name]; ok {
			return node, true
		}
	}
	return nil, false
}

// IsDeclared walks the chain for a declared parameter name.
func (c *ResolutionContext) IsDeclared(name string) bool {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.declared[name] {
			return true
		}
	}
	return false
}

// Resolver resolves AST type annotations against a registry and lowers them
// into model types.
type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// ResolveGenericParameter substitutes a generic parameter that must be bound
// in the context chain.
func (r *Resolver) ResolveGenericParameter(name string, ctx *ResolutionContext) (ast.TypeNode, error) {
	if node, ok := ctx.LookupBinding(name); ok {
		return node, nil
	}
	return nil, &ResolutionError{
		Kind:    InvalidGenericParameter,
		Name:    name,
		Message: "generic parameter '" + name + "' is unbound",
	}
}

// ResolveType checks every name in node against the registry and the context
// chain, substituting bound generic parameters. The shape of the annotation
// is preserved otherwise.
func (r *Resolver) ResolveType(node ast.TypeNode, ctx *ResolutionContext) (ast.TypeNode, error) {
	switch t := node.(type) {
	case *ast.NamedType:
		if bound, ok := ctx.LookupBinding(t.Name); ok {
			return bound, nil
		}
		if ctx.IsDeclared(t.Name) {
			return t, nil
		}
		if _, ok := r.registry.Lookup(t.Name); ok {
			return t, nil
		}
		return nil, newUndefinedType(t.Name)

	case *ast.ArrayType:
		elem, err := r.ResolveType(t.Elem, ctx)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Token: t.Token, Elem: elem}, nil

	case *ast.OptionalType:
		elem, err := r.ResolveType(t.Elem, ctx)
		if err != nil {
			return nil, err
		}
		return &ast.OptionalType{Token: t.Token, Elem: elem}, nil

	case *ast.FunctionType:
		params := make([]ast.TypeNode, len(t.Params))
		for i, p := range t.Params {
			resolved, err := r.ResolveType(p, ctx)
			if err != nil {
				return nil, err
			}
			params[i] = resolved
		}
		ret, err := r.ResolveType(t.Return, ctx)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionType{Token: t.Token, Params: params, Return: ret}, nil

	case *ast.TupleType:
		elems := make([]ast.TypeNode, len(t.Elems))
		for i, e := range t.Elems {
			resolved, err := r.ResolveType(e, ctx)
			if err != nil {
				return nil, err
			}
			elems[i] = resolved
		}
		return &ast.TupleType{Token: t.Token, Elems: elems}, nil

	case *ast.GenericType:
		entry, ok := r.registry.Lookup(t.Name)
		if !ok {
			return nil, newUndefinedType(t.Name)
		}
		if !builtinGeneric(t.Name) && len(entry.TypeParams) != len(t.Args) {
			return nil, newWrongArity(t.Name, len(entry.TypeParams), len(t.Args))
		}
		args := make([]ast.TypeNode, len(t.Args))
		for i, a := range t.Args {
			resolved, err := r.ResolveType(a, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = resolved
		}
		return &ast.GenericType{Token: t.Token, Name: t.Name, Args: args}, nil

	case *ast.UnionType:
		members := make([]ast.TypeNode, len(t.Members))
		for i, m := range t.Members {
			resolved, err := r.ResolveType(m, ctx)
			if err != nil {
				return nil, err
			}
			members[i] = resolved
		}
		return &ast.UnionType{Token: t.Token, Members: members}, nil

	case *ast.IntersectionType:
		members := make([]ast.TypeNode, len(t.Members))
		for i, m := range t.Members {
			resolved, err := r.ResolveType(m, ctx)
			if err != nil {
				return nil, err
			}
			members[i] = resolved
		}
		return &ast.IntersectionType{Token: t.Token, Members: members}, nil

	case *ast.TensorType:
		elem, err := r.ResolveType(t.Elem, ctx)
		if err != nil {
			return nil, err
		}
		return &ast.TensorType{Token: t.Token, IsVector: t.IsVector, Shape: t.Shape, Elem: elem}, nil

	default:
		return node, nil
	}
}

// builtinGeneric names the generic spellings with fixed structural meaning.
func builtinGeneric(name string) bool {
	switch name {
	case "Map", "Dictionary", "Set", "Tensor", "Vector":
		return true
	}
	return false
}

// BuildType lowers a resolved annotation into the model. Names declared as
// generic parameters in ctx become GenericParam; unknown names fall back
// through Parse, which yields Custom.
func (r *Resolver) BuildType(node ast.TypeNode, ctx *ResolutionContext) Type {
	switch t := node.(type) {
	case *ast.NamedType:
		if ctx != nil && ctx.IsDeclared(t.Name) {
			return GenericParam{Name: t.Name}
		}
		if entry, ok := r.registry.Lookup(t.Name); ok && entry.Underlying != nil {
			return entry.Underlying
		}
		return Parse(t.Name)

	case *ast.ArrayType:
		return Array{Elem: r.BuildType(t.Elem, ctx)}

	case *ast.OptionalType:
		return Optional{Elem: r.BuildType(t.Elem, ctx)}

	case *ast.FunctionType:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = r.BuildType(p, ctx)
		}
		return Function{Params: params, Return: r.BuildType(t.Return, ctx)}

	case *ast.TupleType:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = r.BuildType(e, ctx)
		}
		return Tuple{Elems: elems}

	case *ast.GenericType:
		switch t.Name {
		case "Map", "Dictionary":
			if len(t.Args) == 2 {
				return Dictionary{Key: r.BuildType(t.Args[0], ctx), Value: r.BuildType(t.Args[1], ctx)}
			}
		case "Set":
			if len(t.Args) == 1 {
				return Set{Elem: r.BuildType(t.Args[0], ctx)}
			}
		}
		return Custom{Name: t.TypeString()}

	case *ast.UnionType:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = r.BuildType(m, ctx)
		}
		return NormalizeUnion(members)

	case *ast.IntersectionType:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = r.BuildType(m, ctx)
		}
		return Intersection{Members: members}

	case *ast.TensorType:
		shape := TensorShape(t.Shape)
		if t.IsVector {
			return Vector{Shape: shape, Elem: r.BuildType(t.Elem, ctx)}
		}
		return Tensor{Shape: shape, Elem: r.BuildType(t.Elem, ctx)}

	default:
		return Custom{Name: node.TypeString()}
	}
}

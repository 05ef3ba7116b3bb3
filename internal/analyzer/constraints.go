package analyzer

import (
	"fmt"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
	"github.com/ouro-lang/ouro/internal/typesystem"
)

// resolveConstraints fills in the declared bounds of every generic parameter.
// Runs after registerTypes so a constraint may name any type in the unit,
// and before registerMembers so member annotations check against them.
func (a *Analyzer) resolveConstraints(decls []ast.Declaration) {
	for _, decl := range decls {
		def, ctx := a.defs[decl], a.contexts[decl]
		if def == nil {
			continue
		}
		switch d := decl.(type) {
		case *ast.ClassDeclaration:
			def.Constraints = a.buildConstraints(d.TypeParameters, d.TypeParamConstraints, ctx)
		case *ast.StructDeclaration:
			def.Constraints = a.buildConstraints(d.TypeParameters, d.TypeParamConstraints, ctx)
		case *ast.InterfaceDeclaration:
			def.Constraints = a.buildConstraints(d.TypeParameters, d.TypeParamConstraints, ctx)
		}
	}
}

// buildConstraints resolves constraint annotations into Constrained entries
// aligned with the parameter list. Unconstrained slots stay nil; an all-nil
// list collapses to nil.
func (a *Analyzer) buildConstraints(names []string, nodes []ast.TypeNode, ctx *typesystem.ResolutionContext) []typesystem.Type {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]typesystem.Type, len(names))
	any := false
	for i, node := range nodes {
		if i >= len(names) || node == nil {
			continue
		}
		bound := a.resolveAnnotation(node, ctx)
		if isErrorType(bound) {
			continue
		}
		out[i] = typesystem.Constrained{
			Base:        typesystem.GenericParam{Name: names[i]},
			Constraints: []typesystem.Type{bound},
		}
		any = true
	}
	if !any {
		return nil
	}
	return out
}

// checkBindingConstraints verifies the instantiation of a generic callable:
// every bound parameter with a declared constraint must satisfy it.
func (a *Analyzer) checkBindingConstraints(tok token.Token, owner string,
	names []string, constraints []typesystem.Type, subst typesystem.Subst) {

	for i, name := range names {
		if i >= len(constraints) {
			return
		}
		c, ok := constraints[i].(typesystem.Constrained)
		if !ok {
			continue
		}
		bound, okb := subst[name]
		if !okb || isErrorType(bound) {
			continue
		}
		a.checkBound(tok, owner, name, bound, c)
	}
}

// checkTypeArguments validates explicit generic applications inside a
// resolved annotation, e.g. Box<Int> against 'class Box<T: Printable>'.
func (a *Analyzer) checkTypeArguments(node ast.TypeNode, ctx *typesystem.ResolutionContext) {
	switch t := node.(type) {
	case *ast.ArrayType:
		a.checkTypeArguments(t.Elem, ctx)
	case *ast.OptionalType:
		a.checkTypeArguments(t.Elem, ctx)
	case *ast.TensorType:
		a.checkTypeArguments(t.Elem, ctx)
	case *ast.FunctionType:
		for _, p := range t.Params {
			a.checkTypeArguments(p, ctx)
		}
		a.checkTypeArguments(t.Return, ctx)
	case *ast.TupleType:
		for _, e := range t.Elems {
			a.checkTypeArguments(e, ctx)
		}
	case *ast.UnionType:
		for _, m := range t.Members {
			a.checkTypeArguments(m, ctx)
		}
	case *ast.IntersectionType:
		for _, m := range t.Members {
			a.checkTypeArguments(m, ctx)
		}
	case *ast.GenericType:
		for _, arg := range t.Args {
			a.checkTypeArguments(arg, ctx)
		}
		def := a.table.ResolveType(t.Name)
		if def == nil || len(def.Constraints) == 0 {
			return
		}
		for i, arg := range t.Args {
			if i >= len(def.Constraints) || i >= len(def.TypeParameters) {
				return
			}
			c, ok := def.Constraints[i].(typesystem.Constrained)
			if !ok {
				continue
			}
			argType := a.resolver.BuildType(arg, ctx)
			if _, isParam := argType.(typesystem.GenericParam); isParam {
				// An open parameter is checked where it gets bound.
				continue
			}
			if isErrorType(argType) {
				continue
			}
			a.checkBound(arg.GetToken(), def.Name, def.TypeParameters[i], argType, c)
		}
	}
}

func (a *Analyzer) checkBound(tok token.Token, owner, param string, bound typesystem.Type, c typesystem.Constrained) {
	for _, req := range c.Constraints {
		if a.satisfiesBound(bound, req) {
			continue
		}
		err := &typesystem.ResolutionError{
			Kind: typesystem.InvalidGenericConstraint,
			Name: param,
			Message: fmt.Sprintf("'%s' of '%s' requires '%s', got '%s'",
				param, owner, req.String(), bound.String()),
		}
		a.errorf(diagnostics.ErrT007, tok, "%s", err.Error())
	}
}

// satisfiesBound is the constraint-satisfaction relation: structural
// subtyping or nominal conformance, without the widening arms assignment
// allows.
func (a *Analyzer) satisfiesBound(bound, req typesystem.Type) bool {
	if isErrorType(bound) || isErrorType(req) {
		return true
	}
	if typesystem.Equals(bound, req) || a.subtype.IsSubtype(bound, req) {
		return true
	}
	if bc, ok := bound.(typesystem.Custom); ok {
		if rc, ok := req.(typesystem.Custom); ok {
			bd := a.table.ResolveType(bc.Name)
			rd := a.table.ResolveType(rc.Name)
			return bd != nil && rd != nil && bd.IsSubtypeOf(rd)
		}
	}
	return false
}

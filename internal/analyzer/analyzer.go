// Package analyzer implements the semantic checker. It runs two passes over
// the declarations: the first registers every type and callable so forward
// references resolve, the second checks member wiring, bodies and interface
// conformance. Diagnostics are collected, deduplicated and position sorted;
// analysis never stops at the first error.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/symbols"
	"github.com/ouro-lang/ouro/internal/token"
	"github.com/ouro-lang/ouro/internal/typesystem"
)

// errorType is the sentinel produced by failed lookups. It satisfies every
// later check silently, so one broken reference yields one diagnostic.
var errorType = typesystem.Custom{Name: "<error>"}

func isErrorType(t typesystem.Type) bool {
	c, ok := t.(typesystem.Custom)
	return ok && c.Name == "<error>"
}

// Options tunes the checker.
type Options struct {
	// Strict reports implicit numeric widening in assignments instead of
	// accepting it.
	Strict bool
}

type Analyzer struct {
	opts     Options
	table    *symbols.SymbolTable
	registry *typesystem.Registry
	resolver *typesystem.Resolver
	subtype  *typesystem.SubtypeChecker

	errors []*diagnostics.DiagnosticError
	seen   map[string]bool

	defs     map[ast.Declaration]*symbols.TypeDefinition
	contexts map[ast.Declaration]*typesystem.ResolutionContext

	currentType   *symbols.TypeDefinition
	currentReturn typesystem.Type // nil means void
	inFunction    bool
	loopDepth     int
}

func New() *Analyzer { return NewWith(Options{}) }

func NewWith(opts Options) *Analyzer {
	registry := typesystem.NewRegistry()
	return &Analyzer{
		opts:     opts,
		table:    symbols.NewSymbolTable(),
		registry: registry,
		resolver: typesystem.NewResolver(registry),
		subtype:  typesystem.NewSubtypeChecker(),
		seen:     make(map[string]bool),
		defs:     make(map[ast.Declaration]*symbols.TypeDefinition),
		contexts: make(map[ast.Declaration]*typesystem.ResolutionContext),
	}
}

// Check analyzes a compilation unit and returns its diagnostics.
func (a *Analyzer) Check(decls []ast.Declaration) []*diagnostics.DiagnosticError {
	a.registerTypes(decls)
	a.resolveConstraints(decls)
	a.registerMembers(decls)
	for _, decl := range decls {
		a.checkDeclaration(decl)
	}

	sort.SliceStable(a.errors, func(i, j int) bool {
		x, y := a.errors[i], a.errors[j]
		if x.Token.Line != y.Token.Line {
			return x.Token.Line < y.Token.Line
		}
		if x.Token.Column != y.Token.Column {
			return x.Token.Column < y.Token.Column
		}
		return x.Code < y.Code
	})
	return a.errors
}

func (a *Analyzer) errorf(code diagnostics.Code, tok token.Token, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	key := fmt.Sprintf("%s:%d:%d:%s", code, tok.Line, tok.Column, msg)
	if a.seen[key] {
		return
	}
	a.seen[key] = true
	a.errors = append(a.errors, diagnostics.NewError(code, tok, msg))
}

// registerTypes is the first half of pass one: every nominal type gets a stub
// definition and a registry entry before anything else resolves.
func (a *Analyzer) registerTypes(decls []ast.Declaration) {
	for _, decl := range decls {
		var def *symbols.TypeDefinition
		var nameTok token.Token
		var typeParams []string

		switch d := decl.(type) {
		case *ast.ClassDeclaration:
			def = &symbols.TypeDefinition{
				Name:           d.Name.Value,
				TypeParameters: d.TypeParameters,
				IsAbstract:     d.IsAbstract,
				IsSealed:       d.IsSealed,
				Line:           d.Token.Line,
				Column:         d.Token.Column,
			}
			nameTok, typeParams = d.Name.Token, d.TypeParameters
		case *ast.StructDeclaration:
			def = &symbols.TypeDefinition{
				Name:           d.Name.Value,
				TypeParameters: d.TypeParameters,
				IsStruct:       true,
				Line:           d.Token.Line,
				Column:         d.Token.Column,
			}
			nameTok, typeParams = d.Name.Token, d.TypeParameters
		case *ast.EnumDeclaration:
			def = &symbols.TypeDefinition{
				Name:   d.Name.Value,
				IsEnum: true,
				Line:   d.Token.Line,
				Column: d.Token.Column,
			}
			nameTok = d.Name.Token
		case *ast.InterfaceDeclaration:
			def = &symbols.TypeDefinition{
				Name:           d.Name.Value,
				TypeParameters: d.TypeParameters,
				IsInterface:    true,
				Line:           d.Token.Line,
				Column:         d.Token.Column,
			}
			nameTok, typeParams = d.Name.Token, d.TypeParameters
		default:
			continue
		}

		if err := a.table.DefineType(def); err != nil {
			a.errorf(diagnostics.ErrS002, nameTok, "type '%s' is already defined", def.Name)
			continue
		}
		a.registry.Register(typesystem.Registered{
			Name:       def.Name,
			TypeParams: typeParams,
			Underlying: typesystem.Custom{Name: def.Name},
		})
		a.defs[decl] = def

		ctx := typesystem.NewResolutionContext()
		for _, p := range typeParams {
			ctx.Declare(p)
		}
		a.contexts[decl] = ctx
	}
}

// registerMembers is the second half of pass one: supertype wiring, member
// symbols and free-function symbols, all against the complete stub set.
func (a *Analyzer) registerMembers(decls []ast.Declaration) {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.ClassDeclaration:
			def, ctx := a.defs[decl], a.contexts[decl]
			if def == nil {
				continue
			}
			a.wireSuperTypes(def, d.SuperTypes, true)
			a.attachMembers(def, ctx, d.Methods, d.Properties)
		case *ast.StructDeclaration:
			def, ctx := a.defs[decl], a.contexts[decl]
			if def == nil {
				continue
			}
			a.wireSuperTypes(def, d.Interfaces, false)
			a.attachMembers(def, ctx, d.Methods, d.Properties)
		case *ast.EnumDeclaration:
			def := a.defs[decl]
			if def == nil {
				continue
			}
			a.attachEnumCases(def, d)
			a.attachMembers(def, a.contexts[decl], d.Methods, nil)
		case *ast.InterfaceDeclaration:
			def, ctx := a.defs[decl], a.contexts[decl]
			if def == nil {
				continue
			}
			a.wireSuperTypes(def, d.SuperTypes, false)
			a.attachMembers(def, ctx, d.Methods, d.Properties)
		case *ast.FunctionDeclaration:
			sym := a.buildMethodSymbol(d, typesystem.NewResolutionContext())
			if err := a.table.Define(sym); err != nil {
				a.errorf(diagnostics.ErrS002, d.Name.Token, "function '%s' is already defined", d.Name.Value)
			}
		}
	}
}

// wireSuperTypes links the ': Super, Iface' clause. At most one entry may be
// a class, and only when allowClass is set.
func (a *Analyzer) wireSuperTypes(def *symbols.TypeDefinition, supers []ast.TypeNode, allowClass bool) {
	for _, node := range supers {
		name := superTypeName(node)
		if name == "" {
			a.errorf(diagnostics.ErrT001, node.GetToken(), "invalid supertype '%s'", node.TypeString())
			continue
		}
		super := a.table.ResolveType(name)
		if super == nil {
			a.errorf(diagnostics.ErrT001, node.GetToken(), "undefined type '%s'", name)
			def.Interfaces = append(def.Interfaces, symbols.NewErrorSentinel())
			continue
		}
		if super.IsInterface {
			def.Interfaces = append(def.Interfaces, super)
			continue
		}
		if !allowClass {
			a.errorf(diagnostics.ErrS005, node.GetToken(), "'%s' is not an interface", name)
			continue
		}
		if super.IsSealed {
			a.errorf(diagnostics.ErrS005, node.GetToken(), "cannot inherit from sealed type '%s'", name)
			continue
		}
		if super.IsPrimitive || super.IsEnum || super.IsStruct {
			a.errorf(diagnostics.ErrS005, node.GetToken(), "cannot inherit from '%s'", name)
			continue
		}
		if def.SuperType != nil {
			a.errorf(diagnostics.ErrS005, node.GetToken(), "'%s' already has a superclass", def.Name)
			continue
		}
		def.SuperType = super
	}
}

// superTypeName extracts the nominal name of a supertype clause entry.
func superTypeName(node ast.TypeNode) string {
	switch t := node.(type) {
	case *ast.NamedType:
		return t.Name
	case *ast.GenericType:
		return t.Name
	default:
		return ""
	}
}

func (a *Analyzer) attachMembers(def *symbols.TypeDefinition, ctx *typesystem.ResolutionContext,
	methods []*ast.FunctionDeclaration, properties []*ast.VariableDeclaration) {

	for _, prop := range properties {
		var propType typesystem.Type = errorType
		if prop.TypeAnnotation != nil {
			propType = a.resolveAnnotation(prop.TypeAnnotation, ctx)
		}
		if def.FindProperty(prop.Name.Value) != nil {
			a.errorf(diagnostics.ErrS002, prop.Name.Token, "property '%s' is already defined", prop.Name.Value)
			continue
		}
		def.Properties = append(def.Properties, &symbols.VariableSymbol{
			Name:       prop.Name.Value,
			Type:       propType,
			IsConstant: prop.IsConstant,
			IsStatic:   prop.IsStatic,
			Line:       prop.Name.Token.Line,
			Column:     prop.Name.Token.Column,
		})
	}

	for _, method := range methods {
		sym := a.buildMethodSymbol(method, ctx)
		for _, existing := range def.Methods {
			if existing.Name == sym.Name {
				a.errorf(diagnostics.ErrS002, method.Name.Token, "method '%s' is already defined", sym.Name)
			}
		}
		def.Methods = append(def.Methods, sym)
	}
}

func (a *Analyzer) attachEnumCases(def *symbols.TypeDefinition, decl *ast.EnumDeclaration) {
	for _, c := range decl.Cases {
		if def.FindProperty(c.Name.Value) != nil {
			a.errorf(diagnostics.ErrS002, c.Name.Token, "enum case '%s' is already defined", c.Name.Value)
			continue
		}
		def.Properties = append(def.Properties, &symbols.VariableSymbol{
			Name:       c.Name.Value,
			Type:       typesystem.Custom{Name: def.Name},
			IsConstant: true,
			IsStatic:   true,
			Line:       c.Name.Token.Line,
			Column:     c.Name.Token.Column,
		})
	}
}

// buildMethodSymbol resolves a function's signature against the enclosing
// generic context. Its own type parameters open a child frame.
func (a *Analyzer) buildMethodSymbol(fn *ast.FunctionDeclaration, ctx *typesystem.ResolutionContext) *symbols.MethodSymbol {
	mctx := ctx.Child()
	for _, p := range fn.TypeParameters {
		mctx.Declare(p)
	}

	params := make([]*symbols.ParameterSymbol, len(fn.Parameters))
	for i, p := range fn.Parameters {
		var paramType typesystem.Type = errorType
		if p.TypeAnnotation != nil {
			paramType = a.resolveAnnotation(p.TypeAnnotation, mctx)
		}
		params[i] = &symbols.ParameterSymbol{
			Name:   p.Name.Value,
			Type:   paramType,
			Line:   p.Name.Token.Line,
			Column: p.Name.Token.Column,
		}
	}

	var retType typesystem.Type
	if fn.ReturnType != nil {
		retType = a.resolveAnnotation(fn.ReturnType, mctx)
	}

	return &symbols.MethodSymbol{
		Name:           fn.Name.Value,
		TypeParameters: fn.TypeParameters,
		Constraints:    a.buildConstraints(fn.TypeParameters, fn.TypeParamConstraints, mctx),
		Parameters:     params,
		ReturnType:     retType,
		IsStatic:       fn.IsStatic,
		IsAbstract:     fn.IsAbstract,
		IsOverride:     fn.IsOverride,
		IsConstructor:  fn.IsConstructor,
		IsAsync:        fn.IsAsync,
		Line:           fn.Name.Token.Line,
		Column:         fn.Name.Token.Column,
	}
}

// resolveAnnotation resolves and lowers a type annotation, reporting any
// resolution failure and degrading to the error sentinel.
func (a *Analyzer) resolveAnnotation(node ast.TypeNode, ctx *typesystem.ResolutionContext) typesystem.Type {
	resolved, err := a.resolver.ResolveType(node, ctx)
	if err != nil {
		code := diagnostics.ErrT001
		if re, ok := err.(*typesystem.ResolutionError); ok {
			switch re.Kind {
			case typesystem.WrongGenericArity:
				code = diagnostics.ErrT002
			case typesystem.InvalidGenericParameter:
				code = diagnostics.ErrT008
			}
		}
		a.errorf(code, node.GetToken(), "%s", err.Error())
		return errorType
	}
	a.checkTypeArguments(resolved, ctx)
	return a.resolver.BuildType(resolved, ctx)
}

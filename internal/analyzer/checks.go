package analyzer

import (
	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/symbols"
	"github.com/ouro-lang/ouro/internal/token"
	"github.com/ouro-lang/ouro/internal/typesystem"
)

// checkDeclaration is pass two for one top-level declaration.
func (a *Analyzer) checkDeclaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.ClassDeclaration:
		a.checkTypeBody(a.defs[decl], a.contexts[decl], d.Token, d.Methods, d.Properties, d.IsAbstract)
	case *ast.StructDeclaration:
		a.checkTypeBody(a.defs[decl], a.contexts[decl], d.Token, d.Methods, d.Properties, false)
	case *ast.EnumDeclaration:
		a.checkEnum(d)
	case *ast.InterfaceDeclaration:
		// Signatures were fully resolved in pass one; only the extends
		// graph is left to validate.
		a.rejectCycle(a.defs[decl], d.Token)
	case *ast.FunctionDeclaration:
		sym := a.table.ResolveMethod(d.Name.Value)
		if sym != nil {
			a.checkFunctionBody(d, sym, typesystem.NewResolutionContext())
		}
	case *ast.VariableDeclaration:
		a.checkGlobalVariable(d)
	}
}

func (a *Analyzer) checkTypeBody(def *symbols.TypeDefinition, ctx *typesystem.ResolutionContext,
	tok token.Token, methods []*ast.FunctionDeclaration, properties []*ast.VariableDeclaration, isAbstract bool) {

	if def == nil {
		return
	}

	a.rejectCycle(def, tok)

	a.currentType = def
	a.table.EnterScope(def)
	a.table.Define(&symbols.VariableSymbol{Name: "this", Type: typesystem.Custom{Name: def.Name}, IsConstant: true})
	for _, prop := range def.Properties {
		a.table.Define(prop)
	}

	a.checkPropertyInitializers(properties, ctx)
	for i, method := range methods {
		sym := a.methodSymbolFor(def, method, i)
		if sym == nil {
			continue
		}
		a.checkMethodModifiers(def, method, sym, isAbstract)
		if method.Body != nil {
			a.checkFunctionBody(method, sym, ctx)
		}
	}

	a.table.ExitScope()
	a.currentType = nil

	if !isAbstract {
		a.checkConformance(def, tok)
	}
}

// rejectCycle reports a cyclic inheritance graph and severs the offending
// edges so downstream walks see an acyclic hierarchy.
func (a *Analyzer) rejectCycle(def *symbols.TypeDefinition, tok token.Token) {
	if def == nil || !def.HasCycle() {
		return
	}
	a.errorf(diagnostics.ErrS012, tok, "cyclic inheritance involving '%s'", def.Name)
	def.SuperType = nil
	def.Interfaces = nil
}

// methodSymbolFor finds the symbol attached in pass one for the i-th parsed
// method. Duplicates were already reported, so position lookup is enough.
func (a *Analyzer) methodSymbolFor(def *symbols.TypeDefinition, method *ast.FunctionDeclaration, i int) *symbols.MethodSymbol {
	if i < len(def.Methods) && def.Methods[i].Name == method.Name.Value {
		return def.Methods[i]
	}
	return def.FindMethod(method.Name.Value)
}

func (a *Analyzer) checkMethodModifiers(def *symbols.TypeDefinition, method *ast.FunctionDeclaration,
	sym *symbols.MethodSymbol, classIsAbstract bool) {

	if sym.IsAbstract {
		if !classIsAbstract && !def.IsInterface {
			a.errorf(diagnostics.ErrS005, method.Name.Token,
				"abstract method '%s' requires an abstract class", sym.Name)
		}
		if method.Body != nil {
			a.errorf(diagnostics.ErrS005, method.Name.Token,
				"abstract method '%s' cannot have a body", sym.Name)
		}
	}

	if sym.IsOverride {
		var inherited *symbols.MethodSymbol
		if def.SuperType != nil {
			inherited = def.SuperType.FindMethod(sym.Name)
		}
		if inherited == nil {
			a.errorf(diagnostics.ErrS007, method.Name.Token,
				"'%s' overrides nothing in the superclass chain", sym.Name)
		} else if !inherited.SignatureMatches(sym) {
			a.errorf(diagnostics.ErrS007, method.Name.Token,
				"override of '%s' changes the inherited signature", sym.Name)
		}
	}
}

func (a *Analyzer) checkPropertyInitializers(properties []*ast.VariableDeclaration, ctx *typesystem.ResolutionContext) {
	for _, prop := range properties {
		if prop.Initializer == nil {
			continue
		}
		initType := a.inferExpression(prop.Initializer)
		if prop.TypeAnnotation == nil {
			continue
		}
		declared := a.resolveAnnotation(prop.TypeAnnotation, ctx)
		if !a.isAssignable(initType, declared) {
			a.errorf(diagnostics.ErrS003, prop.Initializer.GetToken(),
				"cannot initialize '%s' property with '%s'", declared.String(), initType.String())
		}
	}
}

// checkConformance verifies every interface method has a structurally
// matching concrete implementation.
func (a *Analyzer) checkConformance(def *symbols.TypeDefinition, tok token.Token) {
	for _, iface := range def.Interfaces {
		if iface.IsErrorSentinel() {
			continue
		}
		for _, required := range iface.Methods {
			impl := concreteMethod(def, required.Name)
			if impl == nil || impl.IsAbstract || !impl.SignatureMatches(required) {
				a.errorf(diagnostics.ErrS013, tok,
					"'%s' does not conform to '%s': missing '%s'", def.Name, iface.Name, required.Name)
			}
		}
	}
}

// concreteMethod searches def and its superclass chain only. Interface
// signatures must not satisfy their own requirement.
func concreteMethod(def *symbols.TypeDefinition, name string) *symbols.MethodSymbol {
	seen := map[*symbols.TypeDefinition]bool{}
	for cur := def; cur != nil && !seen[cur]; cur = cur.SuperType {
		seen[cur] = true
		for _, m := range cur.Methods {
			if m.Name == name {
				return m
			}
		}
	}
	return nil
}

func (a *Analyzer) checkEnum(decl *ast.EnumDeclaration) {
	def := a.defs[decl]
	if def == nil {
		return
	}

	rawKind := ""
	for _, c := range decl.Cases {
		if c.RawValue == nil {
			continue
		}
		kind := ""
		switch c.RawValue.(type) {
		case *ast.IntegerLiteral:
			kind = "Int"
		case *ast.StringLiteral:
			kind = "String"
		default:
			a.errorf(diagnostics.ErrS003, c.RawValue.GetToken(),
				"enum raw values must be integer or string literals")
			continue
		}
		if rawKind == "" {
			rawKind = kind
		} else if rawKind != kind {
			a.errorf(diagnostics.ErrS003, c.RawValue.GetToken(),
				"mixed raw value types in enum '%s'", def.Name)
		}
	}

	a.currentType = def
	a.table.EnterScope(def)
	a.table.Define(&symbols.VariableSymbol{Name: "this", Type: typesystem.Custom{Name: def.Name}, IsConstant: true})
	for _, prop := range def.Properties {
		a.table.Define(prop)
	}
	for i, method := range decl.Methods {
		sym := a.methodSymbolFor(def, method, i)
		if sym != nil && method.Body != nil {
			a.checkFunctionBody(method, sym, a.contexts[decl])
		}
	}
	a.table.ExitScope()
	a.currentType = nil
}

func (a *Analyzer) checkGlobalVariable(decl *ast.VariableDeclaration) {
	ctx := typesystem.NewResolutionContext()
	var declared typesystem.Type
	if decl.TypeAnnotation != nil {
		declared = a.resolveAnnotation(decl.TypeAnnotation, ctx)
	}

	var initType typesystem.Type
	if decl.Initializer != nil {
		initType = a.inferExpression(decl.Initializer)
	}

	varType := declared
	switch {
	case declared != nil && initType != nil:
		if !a.isAssignable(initType, declared) {
			a.errorf(diagnostics.ErrS003, decl.Initializer.GetToken(),
				"cannot assign '%s' to variable of type '%s'", initType.String(), declared.String())
		}
	case declared == nil && initType != nil:
		varType = initType
	case declared == nil:
		a.errorf(diagnostics.ErrS003, decl.Name.Token,
			"variable '%s' needs a type annotation or an initializer", decl.Name.Value)
		varType = errorType
	}

	err := a.table.Define(&symbols.VariableSymbol{
		Name:       decl.Name.Value,
		Type:       varType,
		IsConstant: decl.IsConstant,
		IsStatic:   decl.IsStatic,
		Line:       decl.Name.Token.Line,
		Column:     decl.Name.Token.Column,
	})
	if err != nil {
		a.errorf(diagnostics.ErrS002, decl.Name.Token, "'%s' is already defined", decl.Name.Value)
	}
}

// checkFunctionBody type-checks a function or method body in a fresh scope
// seeded with its parameters.
func (a *Analyzer) checkFunctionBody(fn *ast.FunctionDeclaration, sym *symbols.MethodSymbol, ctx *typesystem.ResolutionContext) {
	if fn.Body == nil {
		return
	}

	prevReturn, prevIn := a.currentReturn, a.inFunction
	a.currentReturn, a.inFunction = sym.ReturnType, true

	a.table.EnterScope(nil)
	for _, p := range sym.Parameters {
		if err := a.table.Define(p); err != nil {
			a.errorf(diagnostics.ErrS002, fn.Name.Token, "duplicate parameter '%s'", p.Name)
		}
	}
	for _, stmt := range fn.Body.Statements {
		a.checkStatement(stmt)
	}
	a.table.ExitScope()

	a.currentReturn, a.inFunction = prevReturn, prevIn
}

func (a *Analyzer) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		a.table.EnterScope(nil)
		for _, inner := range s.Statements {
			a.checkStatement(inner)
		}
		a.table.ExitScope()

	case *ast.VariableStatement:
		a.checkLocalVariable(s)

	case *ast.ExpressionStatement:
		a.inferExpression(s.Expression)

	case *ast.IfStatement:
		a.requireBool(s.Condition, "if condition")
		a.checkStatement(s.Then)
		if s.Else != nil {
			a.checkStatement(s.Else)
		}

	case *ast.WhileStatement:
		a.requireBool(s.Condition, "while condition")
		a.loopDepth++
		a.checkStatement(s.Body)
		a.loopDepth--

	case *ast.ForStatement:
		a.table.EnterScope(nil)
		if s.Initializer != nil {
			a.checkStatement(s.Initializer)
		}
		if s.Condition != nil {
			a.requireBool(s.Condition, "for condition")
		}
		if s.Increment != nil {
			a.inferExpression(s.Increment)
		}
		a.loopDepth++
		a.checkStatement(s.Body)
		a.loopDepth--
		a.table.ExitScope()

	case *ast.ForInStatement:
		a.checkForIn(s)

	case *ast.ReturnStatement:
		a.checkReturn(s)

	case *ast.BreakStatement:
		if a.loopDepth == 0 {
			a.errorf(diagnostics.ErrS010, s.Token, "'break' outside of a loop")
		}

	case *ast.ContinueStatement:
		if a.loopDepth == 0 {
			a.errorf(diagnostics.ErrS010, s.Token, "'continue' outside of a loop")
		}
	}
}

func (a *Analyzer) checkLocalVariable(s *ast.VariableStatement) {
	ctx := typesystem.NewResolutionContext()
	var declared typesystem.Type
	if s.TypeAnnotation != nil {
		declared = a.resolveAnnotation(s.TypeAnnotation, ctx)
	}
	var initType typesystem.Type
	if s.Initializer != nil {
		initType = a.inferExpression(s.Initializer)
	}

	varType := declared
	switch {
	case declared != nil && initType != nil:
		if !a.isAssignable(initType, declared) {
			a.errorf(diagnostics.ErrS003, s.Initializer.GetToken(),
				"cannot assign '%s' to variable of type '%s'", initType.String(), declared.String())
		}
	case declared == nil && initType != nil:
		varType = initType
	case declared == nil:
		a.errorf(diagnostics.ErrS003, s.Name.Token,
			"variable '%s' needs a type annotation or an initializer", s.Name.Value)
		varType = errorType
	}

	err := a.table.Define(&symbols.VariableSymbol{
		Name:       s.Name.Value,
		Type:       varType,
		IsConstant: s.IsConstant,
		Line:       s.Name.Token.Line,
		Column:     s.Name.Token.Column,
	})
	if err != nil {
		a.errorf(diagnostics.ErrS002, s.Name.Token, "'%s' is already defined in this scope", s.Name.Value)
	}
}

func (a *Analyzer) requireBool(cond ast.Expression, what string) {
	condType := a.inferExpression(cond)
	if isErrorType(condType) {
		return
	}
	if !typesystem.Equals(condType, typesystem.Primitive{Kind: typesystem.KindBool}) {
		a.errorf(diagnostics.ErrS003, cond.GetToken(),
			"%s must be 'Bool', found '%s'", what, condType.String())
	}
}

func (a *Analyzer) checkForIn(s *ast.ForInStatement) {
	elemType := a.iterationElement(s.Iterable)

	a.table.EnterScope(nil)
	a.table.Define(&symbols.VariableSymbol{
		Name:   s.Variable.Value,
		Type:   elemType,
		Line:   s.Variable.Token.Line,
		Column: s.Variable.Token.Column,
	})
	a.loopDepth++
	a.checkStatement(s.Body)
	a.loopDepth--
	a.table.ExitScope()
}

// iterationElement computes the loop-variable type for a for-in iterable.
func (a *Analyzer) iterationElement(iterable ast.Expression) typesystem.Type {
	if r, ok := iterable.(*ast.RangeExpression); ok {
		a.checkRangeBounds(r)
		return typesystem.Primitive{Kind: typesystem.KindInt}
	}

	t := a.inferExpression(iterable)
	switch v := t.(type) {
	case typesystem.Array:
		return v.Elem
	case typesystem.Set:
		return v.Elem
	case typesystem.Dictionary:
		return v.Key
	case typesystem.Primitive:
		if v.Kind == typesystem.KindString {
			return typesystem.Primitive{Kind: typesystem.KindChar}
		}
	case typesystem.Custom:
		if isErrorType(t) {
			return errorType
		}
	}
	a.errorf(diagnostics.ErrS003, iterable.GetToken(), "'%s' is not iterable", t.String())
	return errorType
}

func (a *Analyzer) checkReturn(s *ast.ReturnStatement) {
	if !a.inFunction {
		a.errorf(diagnostics.ErrS011, s.Token, "'return' outside of a function")
		return
	}

	if a.currentReturn == nil {
		if s.Value != nil {
			valType := a.inferExpression(s.Value)
			a.errorf(diagnostics.ErrS011, s.Value.GetToken(),
				"void function cannot return '%s'", valType.String())
		}
		return
	}

	if s.Value == nil {
		a.errorf(diagnostics.ErrS011, s.Token,
			"missing return value of type '%s'", a.currentReturn.String())
		return
	}

	valType := a.inferExpression(s.Value)
	if !a.isAssignable(valType, a.currentReturn) {
		a.errorf(diagnostics.ErrS011, s.Value.GetToken(),
			"cannot return '%s' from a function returning '%s'", valType.String(), a.currentReturn.String())
	}
}

func (a *Analyzer) checkRangeBounds(r *ast.RangeExpression) {
	for _, bound := range []ast.Expression{r.Start, r.End} {
		t := a.inferExpression(bound)
		if isErrorType(t) {
			continue
		}
		if !typesystem.IsInteger(t) {
			a.errorf(diagnostics.ErrS003, bound.GetToken(),
				"range bounds must be integers, found '%s'", t.String())
		}
	}
}

// isAssignable is the assignment compatibility relation: structural subtyping
// plus nominal inheritance plus numeric widening. Deliberately looser than
// bare subtyping.
func (a *Analyzer) isAssignable(source, target typesystem.Type) bool {
	if source == nil || target == nil {
		return true
	}
	if isErrorType(source) || isErrorType(target) {
		return true
	}
	if typesystem.Equals(source, target) {
		return true
	}
	if a.subtype.IsSubtype(source, target) {
		return true
	}

	if sc, ok := source.(typesystem.Custom); ok {
		if tc, ok := target.(typesystem.Custom); ok {
			sd := a.table.ResolveType(sc.Name)
			td := a.table.ResolveType(tc.Name)
			if sd != nil && td != nil && sd.IsSubtypeOf(td) {
				return true
			}
		}
	}

	if !a.opts.Strict {
		if typesystem.IsNumeric(source) && typesystem.Equals(target, typesystem.Primitive{Kind: typesystem.KindDouble}) {
			return true
		}
		if typesystem.Equals(source, typesystem.Primitive{Kind: typesystem.KindInt}) &&
			typesystem.Equals(target, typesystem.Primitive{Kind: typesystem.KindFloat}) {
			return true
		}
	}

	if to, ok := target.(typesystem.Optional); ok {
		return a.isAssignable(source, to.Elem)
	}
	return false
}

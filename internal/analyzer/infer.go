package analyzer

import (
	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/config"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/symbols"
	"github.com/ouro-lang/ouro/internal/token"
	"github.com/ouro-lang/ouro/internal/typesystem"
)

func intPrim() typesystem.Type    { return typesystem.Primitive{Kind: typesystem.KindInt} }
func boolPrim() typesystem.Type   { return typesystem.Primitive{Kind: typesystem.KindBool} }
func stringPrim() typesystem.Type { return typesystem.Primitive{Kind: typesystem.KindString} }
func doublePrim() typesystem.Type { return typesystem.Primitive{Kind: typesystem.KindDouble} }

// inferExpression computes an expression's type, reporting diagnostics along
// the way. Failures produce the error sentinel, never nil.
func (a *Analyzer) inferExpression(expr ast.Expression) typesystem.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return intPrim()
	case *ast.FloatLiteral:
		return doublePrim()
	case *ast.StringLiteral:
		return stringPrim()
	case *ast.CharLiteral:
		return typesystem.Primitive{Kind: typesystem.KindChar}
	case *ast.BooleanLiteral:
		return boolPrim()
	case *ast.NilLiteral:
		// nil fits any optional: Never? widens into T? for every T.
		return typesystem.Optional{Elem: typesystem.Never{}}

	case *ast.ArrayLiteral:
		return a.inferArrayLiteral(e)
	case *ast.DictionaryLiteral:
		return a.inferDictionaryLiteral(e)
	case *ast.SetLiteral:
		return a.inferSetLiteral(e)
	case *ast.TupleLiteral:
		elems := make([]typesystem.Type, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = a.inferExpression(el)
		}
		return typesystem.Tuple{Elems: elems}

	case *ast.Identifier:
		return a.inferIdentifier(e)
	case *ast.ThisExpression:
		if a.currentType == nil {
			a.errorf(diagnostics.ErrS005, e.Token, "'this' outside of a type body")
			return errorType
		}
		return typesystem.Custom{Name: a.currentType.Name}
	case *ast.SuperExpression:
		if a.currentType == nil || a.currentType.SuperType == nil {
			a.errorf(diagnostics.ErrS005, e.Token, "'super' requires a superclass")
			return errorType
		}
		return typesystem.Custom{Name: a.currentType.SuperType.Name}

	case *ast.UnaryExpression:
		return a.inferUnary(e)
	case *ast.BinaryExpression:
		return a.inferBinary(e)
	case *ast.RangeExpression:
		a.checkRangeBounds(e)
		return typesystem.Custom{Name: "Range"}
	case *ast.AssignExpression:
		return a.inferAssign(e)
	case *ast.CallExpression:
		return a.inferCall(e)
	case *ast.MemberExpression:
		return a.inferMember(e)
	case *ast.IndexExpression:
		return a.inferIndex(e)
	case *ast.LambdaExpression:
		return a.inferLambda(e)

	default:
		return errorType
	}
}

func (a *Analyzer) inferArrayLiteral(e *ast.ArrayLiteral) typesystem.Type {
	if len(e.Elements) == 0 {
		return typesystem.Array{Elem: typesystem.Never{}}
	}
	elem := a.inferExpression(e.Elements[0])
	for _, el := range e.Elements[1:] {
		elem = a.subtype.CommonSupertype(elem, a.inferExpression(el))
	}
	return typesystem.Array{Elem: elem}
}

func (a *Analyzer) inferDictionaryLiteral(e *ast.DictionaryLiteral) typesystem.Type {
	if len(e.Keys) == 0 {
		return typesystem.Dictionary{Key: typesystem.Never{}, Value: typesystem.Never{}}
	}
	key := a.inferExpression(e.Keys[0])
	val := a.inferExpression(e.Vals[0])
	for i := 1; i < len(e.Keys); i++ {
		key = a.subtype.CommonSupertype(key, a.inferExpression(e.Keys[i]))
		val = a.subtype.CommonSupertype(val, a.inferExpression(e.Vals[i]))
	}
	return typesystem.Dictionary{Key: key, Value: val}
}

func (a *Analyzer) inferSetLiteral(e *ast.SetLiteral) typesystem.Type {
	elem := a.inferExpression(e.Elements[0])
	for _, el := range e.Elements[1:] {
		elem = a.subtype.CommonSupertype(elem, a.inferExpression(el))
	}
	return typesystem.Set{Elem: elem}
}

func (a *Analyzer) inferIdentifier(e *ast.Identifier) typesystem.Type {
	switch sym := a.table.Resolve(e.Value).(type) {
	case *symbols.VariableSymbol:
		return sym.Type
	case *symbols.ParameterSymbol:
		return sym.Type
	case *symbols.MethodSymbol:
		return sym.FunctionType()
	case *symbols.TypeSymbol:
		return typesystem.Custom{Name: sym.Definition.Name}
	}

	// Bare member references inside a type body resolve against 'this'.
	if a.currentType != nil {
		if prop := a.currentType.FindProperty(e.Value); prop != nil {
			return prop.Type
		}
		if m := a.currentType.FindMethod(e.Value); m != nil {
			return m.FunctionType()
		}
	}

	a.errorf(diagnostics.ErrS001, e.Token, "'%s' is not defined", e.Value)
	return errorType
}

func (a *Analyzer) inferUnary(e *ast.UnaryExpression) typesystem.Type {
	operand := a.inferExpression(e.Operand)
	if isErrorType(operand) {
		return errorType
	}

	switch e.Operator {
	case token.MINUS:
		if typesystem.IsNumeric(operand) {
			return operand
		}
	case token.BANG:
		if typesystem.Equals(operand, boolPrim()) {
			return boolPrim()
		}
	case token.TILDE:
		if typesystem.IsInteger(operand) {
			return operand
		}
	}
	a.errorf(diagnostics.ErrS005, e.Token,
		"operator '%s' cannot be applied to '%s'", e.Token.Lexeme, operand.String())
	return errorType
}

func (a *Analyzer) inferBinary(e *ast.BinaryExpression) typesystem.Type {
	left := a.inferExpression(e.Left)
	right := a.inferExpression(e.Right)
	if isErrorType(left) || isErrorType(right) {
		return errorType
	}

	switch e.Operator {
	case token.PLUS:
		if typesystem.Equals(left, stringPrim()) || typesystem.Equals(right, stringPrim()) {
			return stringPrim()
		}
		fallthrough
	case token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT, token.POWER:
		if typesystem.IsNumeric(left) && typesystem.IsNumeric(right) {
			return a.subtype.CommonSupertype(left, right)
		}

	case token.EQ, token.NOT_EQ:
		return boolPrim()

	case token.LT, token.GT, token.LTE, token.GTE:
		if a.comparable(left, right) {
			return boolPrim()
		}

	case token.SPACESHIP:
		if a.comparable(left, right) {
			return intPrim()
		}

	case token.AND, token.OR:
		if typesystem.Equals(left, boolPrim()) && typesystem.Equals(right, boolPrim()) {
			return boolPrim()
		}

	case token.AMPERSAND, token.PIPE, token.CARET, token.LSHIFT, token.RSHIFT:
		if typesystem.IsInteger(left) && typesystem.IsInteger(right) {
			return a.subtype.CommonSupertype(left, right)
		}

	case token.NULL_COALESCE:
		if opt, ok := left.(typesystem.Optional); ok {
			return a.subtype.CommonSupertype(opt.Elem, right)
		}
		a.errorf(diagnostics.ErrS005, e.Token,
			"left side of '??' must be optional, found '%s'", left.String())
		return errorType
	}

	a.errorf(diagnostics.ErrS003, e.Token,
		"operator '%s' cannot be applied to '%s' and '%s'", e.Token.Lexeme, left.String(), right.String())
	return errorType
}

// comparable covers the ordered comparisons: numerics with numerics, plus
// same-type strings and chars.
func (a *Analyzer) comparable(left, right typesystem.Type) bool {
	if typesystem.IsNumeric(left) && typesystem.IsNumeric(right) {
		return true
	}
	if typesystem.Equals(left, right) {
		if p, ok := left.(typesystem.Primitive); ok {
			return p.Kind == typesystem.KindString || p.Kind == typesystem.KindChar
		}
	}
	return false
}

func (a *Analyzer) inferAssign(e *ast.AssignExpression) typesystem.Type {
	targetType := a.inferExpression(e.Target)
	valueType := a.inferExpression(e.Value)

	if ident, ok := e.Target.(*ast.Identifier); ok {
		if v := a.table.ResolveVariable(ident.Value); v != nil && v.IsConstant {
			a.errorf(diagnostics.ErrS005, ident.Token, "cannot assign to constant '%s'", ident.Value)
		}
	}

	if !a.isAssignable(valueType, targetType) {
		a.errorf(diagnostics.ErrS003, e.Value.GetToken(),
			"cannot assign '%s' to '%s'", valueType.String(), targetType.String())
	}
	return targetType
}

func (a *Analyzer) inferCall(e *ast.CallExpression) typesystem.Type {
	// A call through a plain name may be a function, a constructor or a
	// method of the enclosing type.
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		switch sym := a.table.Resolve(ident.Value).(type) {
		case *symbols.MethodSymbol:
			return a.checkCall(e, sym)
		case *symbols.TypeSymbol:
			return a.checkConstructorCall(e, sym.Definition)
		case *symbols.VariableSymbol:
			return a.checkFunctionValueCall(e, sym.Type)
		case *symbols.ParameterSymbol:
			return a.checkFunctionValueCall(e, sym.Type)
		}
		if a.currentType != nil {
			if m := a.currentType.FindMethod(ident.Value); m != nil {
				return a.checkCall(e, m)
			}
		}
		a.errorf(diagnostics.ErrS001, ident.Token, "'%s' is not defined", ident.Value)
		return errorType
	}

	if member, ok := e.Callee.(*ast.MemberExpression); ok {
		return a.inferMethodCall(e, member)
	}

	return a.checkFunctionValueCall(e, a.inferExpression(e.Callee))
}

// checkCall verifies arity and argument compatibility for a named callable.
// Generic signatures instantiate through unification, argument by argument,
// so a conflicting binding surfaces at the argument that introduced it.
func (a *Analyzer) checkCall(e *ast.CallExpression, sym *symbols.MethodSymbol) typesystem.Type {
	if len(e.Arguments) != len(sym.Parameters) {
		a.errorf(diagnostics.ErrS003, e.Token,
			"'%s' expects %d argument(s), got %d", sym.Name, len(sym.Parameters), len(e.Arguments))
		return a.returnTypeOf(sym)
	}

	if len(sym.TypeParameters) > 0 {
		subst := typesystem.Subst{}
		for i, arg := range e.Arguments {
			argType := a.inferExpression(arg)
			if isErrorType(argType) {
				continue
			}
			if err := typesystem.UnifyWith(sym.Parameters[i].Type, argType, subst); err != nil {
				a.errorf(diagnostics.ErrS004, arg.GetToken(),
					"argument %d of '%s': %s", i+1, sym.Name, err.Error())
			}
		}
		a.checkBindingConstraints(e.Token, sym.Name, sym.TypeParameters, sym.Constraints, subst)
		if sym.ReturnType == nil {
			return typesystem.Primitive{Kind: typesystem.KindVoid}
		}
		return subst.Apply(sym.ReturnType)
	}

	for i, arg := range e.Arguments {
		argType := a.inferExpression(arg)
		if !a.isAssignable(argType, sym.Parameters[i].Type) {
			a.errorf(diagnostics.ErrS003, arg.GetToken(),
				"argument %d of '%s': expected '%s', found '%s'",
				i+1, sym.Name, sym.Parameters[i].Type.String(), argType.String())
		}
	}
	return a.returnTypeOf(sym)
}

func (a *Analyzer) returnTypeOf(sym *symbols.MethodSymbol) typesystem.Type {
	if sym.ReturnType == nil {
		return typesystem.Primitive{Kind: typesystem.KindVoid}
	}
	return sym.ReturnType
}

func (a *Analyzer) checkConstructorCall(e *ast.CallExpression, def *symbols.TypeDefinition) typesystem.Type {
	if def.IsInterface {
		a.errorf(diagnostics.ErrS005, e.Token, "cannot instantiate interface '%s'", def.Name)
		return errorType
	}
	if def.IsAbstract {
		a.errorf(diagnostics.ErrS006, e.Token, "cannot instantiate abstract class '%s'", def.Name)
		return typesystem.Custom{Name: def.Name}
	}

	ctor := def.FindMethod(config.InitMethodName)
	if ctor == nil {
		if len(e.Arguments) > 0 {
			a.errorf(diagnostics.ErrS003, e.Token,
				"'%s' has no constructor taking %d argument(s)", def.Name, len(e.Arguments))
		}
		return typesystem.Custom{Name: def.Name}
	}

	if len(e.Arguments) != len(ctor.Parameters) {
		a.errorf(diagnostics.ErrS003, e.Token,
			"constructor of '%s' expects %d argument(s), got %d",
			def.Name, len(ctor.Parameters), len(e.Arguments))
		return typesystem.Custom{Name: def.Name}
	}
	for i, arg := range e.Arguments {
		argType := a.inferExpression(arg)
		if !a.isAssignable(argType, ctor.Parameters[i].Type) {
			a.errorf(diagnostics.ErrS003, arg.GetToken(),
				"argument %d of '%s' constructor: expected '%s', found '%s'",
				i+1, def.Name, ctor.Parameters[i].Type.String(), argType.String())
		}
	}
	return typesystem.Custom{Name: def.Name}
}

func (a *Analyzer) checkFunctionValueCall(e *ast.CallExpression, calleeType typesystem.Type) typesystem.Type {
	if isErrorType(calleeType) {
		for _, arg := range e.Arguments {
			a.inferExpression(arg)
		}
		return errorType
	}

	fn, ok := calleeType.(typesystem.Function)
	if !ok {
		a.errorf(diagnostics.ErrS005, e.Token, "'%s' is not callable", calleeType.String())
		return errorType
	}

	if len(e.Arguments) != len(fn.Params) {
		a.errorf(diagnostics.ErrS003, e.Token,
			"expected %d argument(s), got %d", len(fn.Params), len(e.Arguments))
		return fn.Return
	}
	for i, arg := range e.Arguments {
		argType := a.inferExpression(arg)
		if !a.isAssignable(argType, fn.Params[i]) {
			a.errorf(diagnostics.ErrS003, arg.GetToken(),
				"argument %d: expected '%s', found '%s'", i+1, fn.Params[i].String(), argType.String())
		}
	}
	return fn.Return
}

func (a *Analyzer) inferMethodCall(e *ast.CallExpression, member *ast.MemberExpression) typesystem.Type {
	objType := a.inferExpression(member.Object)
	if isErrorType(objType) {
		for _, arg := range e.Arguments {
			a.inferExpression(arg)
		}
		return errorType
	}

	wrapOptional := false
	if opt, ok := objType.(typesystem.Optional); ok {
		if !member.Optional {
			a.errorf(diagnostics.ErrS005, member.Token,
				"'%s' may be nil; use '?.'", opt.String())
			return errorType
		}
		objType = opt.Elem
		wrapOptional = true
	}

	custom, ok := objType.(typesystem.Custom)
	if !ok {
		a.errorf(diagnostics.ErrS005, member.Token,
			"'%s' has no method '%s'", objType.String(), member.Property.Value)
		return errorType
	}
	def := a.table.ResolveType(custom.Name)
	if def == nil {
		a.errorf(diagnostics.ErrS001, member.Token, "'%s' is not defined", custom.Name)
		return errorType
	}

	method := def.FindMethod(member.Property.Value)
	if method == nil {
		a.errorf(diagnostics.ErrS001, member.Property.Token,
			"'%s' has no method '%s'", def.Name, member.Property.Value)
		return errorType
	}

	result := a.checkCall(e, method)
	if wrapOptional && !isErrorType(result) {
		return typesystem.Optional{Elem: result}
	}
	return result
}

func (a *Analyzer) inferMember(e *ast.MemberExpression) typesystem.Type {
	objType := a.inferExpression(e.Object)
	if isErrorType(objType) {
		return errorType
	}

	wrapOptional := false
	if opt, ok := objType.(typesystem.Optional); ok {
		if !e.Optional {
			a.errorf(diagnostics.ErrS005, e.Token, "'%s' may be nil; use '?.'", opt.String())
			return errorType
		}
		objType = opt.Elem
		wrapOptional = true
	}

	result := a.memberType(objType, e)
	if wrapOptional && !isErrorType(result) {
		return typesystem.Optional{Elem: result}
	}
	return result
}

func (a *Analyzer) memberType(objType typesystem.Type, e *ast.MemberExpression) typesystem.Type {
	name := e.Property.Value

	switch v := objType.(type) {
	case typesystem.Array:
		if name == config.LengthMemberName {
			return intPrim()
		}
	case typesystem.Set:
		if name == config.CountMemberName {
			return intPrim()
		}
	case typesystem.Dictionary:
		if name == config.CountMemberName {
			return intPrim()
		}
		if name == "keys" {
			return typesystem.Array{Elem: v.Key}
		}
		if name == "values" {
			return typesystem.Array{Elem: v.Value}
		}
	case typesystem.Primitive:
		if v.Kind == typesystem.KindString && name == config.LengthMemberName {
			return intPrim()
		}
	case typesystem.Tuple:
		// Tuples are accessed by index expression, not by member name.
	case typesystem.Custom:
		def := a.table.ResolveType(v.Name)
		if def == nil {
			a.errorf(diagnostics.ErrS001, e.Token, "'%s' is not defined", v.Name)
			return errorType
		}
		if prop := def.FindProperty(name); prop != nil {
			return prop.Type
		}
		if m := def.FindMethod(name); m != nil {
			return m.FunctionType()
		}
		a.errorf(diagnostics.ErrS001, e.Property.Token,
			"'%s' has no member '%s'", def.Name, name)
		return errorType
	}

	a.errorf(diagnostics.ErrS001, e.Property.Token,
		"'%s' has no member '%s'", objType.String(), name)
	return errorType
}

func (a *Analyzer) inferIndex(e *ast.IndexExpression) typesystem.Type {
	objType := a.inferExpression(e.Object)
	indexType := a.inferExpression(e.Index)
	if isErrorType(objType) {
		return errorType
	}

	requireInt := func() {
		if !isErrorType(indexType) && !typesystem.IsInteger(indexType) {
			a.errorf(diagnostics.ErrS003, e.Index.GetToken(),
				"index must be an integer, found '%s'", indexType.String())
		}
	}

	switch v := objType.(type) {
	case typesystem.Array:
		requireInt()
		return v.Elem
	case typesystem.Dictionary:
		if !isErrorType(indexType) && !a.isAssignable(indexType, v.Key) {
			a.errorf(diagnostics.ErrS003, e.Index.GetToken(),
				"dictionary key must be '%s', found '%s'", v.Key.String(), indexType.String())
		}
		// Lookup misses yield nil, so the value surfaces as optional.
		return typesystem.Optional{Elem: v.Value}
	case typesystem.Tuple:
		lit, ok := e.Index.(*ast.IntegerLiteral)
		if !ok {
			a.errorf(diagnostics.ErrS005, e.Index.GetToken(), "tuple index must be an integer literal")
			return errorType
		}
		if lit.Value < 0 || lit.Value >= int64(len(v.Elems)) {
			a.errorf(diagnostics.ErrS005, lit.Token,
				"tuple index %d out of range [0, %d)", lit.Value, len(v.Elems))
			return errorType
		}
		return v.Elems[lit.Value]
	case typesystem.Tensor:
		requireInt()
		return v.Elem
	case typesystem.Vector:
		requireInt()
		return v.Elem
	case typesystem.Primitive:
		if v.Kind == typesystem.KindString {
			requireInt()
			return typesystem.Primitive{Kind: typesystem.KindChar}
		}
	}

	a.errorf(diagnostics.ErrS005, e.Token, "'%s' is not indexable", objType.String())
	return errorType
}

// inferLambda types a lambda literal. Unannotated parameters degrade to Any;
// full bidirectional inference is not attempted.
func (a *Analyzer) inferLambda(e *ast.LambdaExpression) typesystem.Type {
	ctx := typesystem.NewResolutionContext()

	params := make([]typesystem.Type, len(e.Parameters))
	a.table.EnterScope(nil)
	for i, p := range e.Parameters {
		var paramType typesystem.Type = typesystem.Custom{Name: typesystem.AnyTypeName}
		if p.TypeAnnotation != nil {
			paramType = a.resolveAnnotation(p.TypeAnnotation, ctx)
		}
		params[i] = paramType
		a.table.Define(&symbols.ParameterSymbol{
			Name:   p.Name.Value,
			Type:   paramType,
			Line:   p.Name.Token.Line,
			Column: p.Name.Token.Column,
		})
	}

	var declared typesystem.Type
	if e.ReturnType != nil {
		declared = a.resolveAnnotation(e.ReturnType, ctx)
	}

	var ret typesystem.Type = typesystem.Primitive{Kind: typesystem.KindVoid}
	if e.ExprBody != nil {
		inferred := a.inferExpression(e.ExprBody)
		if declared != nil {
			if !a.isAssignable(inferred, declared) {
				a.errorf(diagnostics.ErrS011, e.ExprBody.GetToken(),
					"lambda body has type '%s', declared '%s'", inferred.String(), declared.String())
			}
			ret = declared
		} else {
			ret = inferred
		}
	} else if e.Body != nil {
		prevReturn, prevIn := a.currentReturn, a.inFunction
		a.currentReturn, a.inFunction = declared, true
		a.checkStatement(e.Body)
		a.currentReturn, a.inFunction = prevReturn, prevIn
		if declared != nil {
			ret = declared
		}
	}
	a.table.ExitScope()

	return typesystem.Function{Params: params, Return: ret}
}

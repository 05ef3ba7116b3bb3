// Package prettyprinter renders an AST back to source text. The output is
// canonically formatted: four-space indents, one statement per line, and
// parentheses only where precedence demands them.
package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/token"
)

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[token.TokenType]int{
	token.NULL_COALESCE: 1,
	token.OR:            2,
	token.AND:           3,
	token.PIPE:          4,
	token.CARET:         5,
	token.AMPERSAND:     6,
	token.EQ:            7,
	token.NOT_EQ:        7,
	token.LT:            8,
	token.GT:            8,
	token.LTE:           8,
	token.GTE:           8,
	token.SPACESHIP:     8,
	token.LSHIFT:        9,
	token.RSHIFT:        9,
	token.PLUS:          10,
	token.MINUS:         10,
	token.ASTERISK:      11,
	token.SLASH:         11,
	token.PERCENT:       11,
	token.POWER:         12,
}

var rightAssoc = map[token.TokenType]bool{
	token.POWER: true,
}

func precedenceOf(op token.TokenType) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 13
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a whole compilation unit.
func Print(decls []ast.Declaration) string {
	p := NewCodePrinter()
	for i, d := range decls {
		if i > 0 {
			p.write("\n")
		}
		d.Accept(p)
	}
	return p.String()
}

// PrintExpression renders a single expression.
func PrintExpression(e ast.Expression) string {
	p := NewCodePrinter()
	p.printExpr(e, 0, false)
	return p.String()
}

// PrintStatement renders a single statement at indent zero.
func PrintStatement(s ast.Statement) string {
	p := NewCodePrinter()
	s.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string { return p.buf.String() }

func (p *CodePrinter) write(s string) { p.buf.WriteString(s) }

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// --- Expressions ---

// printExpr prints an expression, adding parentheses only if needed.
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		prec := precedenceOf(e.Operator)
		needParens := prec < parentPrec
		if prec == parentPrec {
			if isRight && !rightAssoc[e.Operator] {
				needParens = true
			} else if !isRight && rightAssoc[e.Operator] {
				needParens = true
			}
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + string(e.Operator) + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.UnaryExpression:
		p.write(string(e.Operator))
		p.printExpr(e.Operand, 100, false)
	case *ast.RangeExpression:
		op := ".."
		if e.Inclusive {
			op = "..."
		}
		p.printExpr(e.Start, 100, false)
		p.write(op)
		p.printExpr(e.End, 100, true)
	default:
		expr.Accept(p)
	}
}

func (p *CodePrinter) printExprList(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e, 0, false)
	}
}

func (p *CodePrinter) VisitIdentifier(e *ast.Identifier) { p.write(e.Value) }

func (p *CodePrinter) VisitIntegerLiteral(e *ast.IntegerLiteral) {
	if e.Token.Lexeme != "" {
		p.write(e.Token.Lexeme)
		return
	}
	p.write(strconv.FormatInt(e.Value, 10))
}

func (p *CodePrinter) VisitFloatLiteral(e *ast.FloatLiteral) {
	if e.Token.Lexeme != "" {
		p.write(e.Token.Lexeme)
		return
	}
	p.write(strconv.FormatFloat(e.Value, 'g', -1, 64))
}

func (p *CodePrinter) VisitStringLiteral(e *ast.StringLiteral) {
	p.write(strconv.Quote(e.Value))
}

func (p *CodePrinter) VisitCharLiteral(e *ast.CharLiteral) {
	quoted := strconv.QuoteRune(e.Value)
	p.write(quoted)
}

func (p *CodePrinter) VisitBooleanLiteral(e *ast.BooleanLiteral) {
	if e.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitNilLiteral(e *ast.NilLiteral) { p.write("nil") }

func (p *CodePrinter) VisitArrayLiteral(e *ast.ArrayLiteral) {
	p.write("[")
	p.printExprList(e.Elements)
	p.write("]")
}

func (p *CodePrinter) VisitDictionaryLiteral(e *ast.DictionaryLiteral) {
	p.write("{")
	for i := range e.Keys {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e.Keys[i], 0, false)
		p.write(": ")
		p.printExpr(e.Vals[i], 0, false)
	}
	p.write("}")
}

func (p *CodePrinter) VisitSetLiteral(e *ast.SetLiteral) {
	p.write("{")
	p.printExprList(e.Elements)
	p.write("}")
}

func (p *CodePrinter) VisitTupleLiteral(e *ast.TupleLiteral) {
	p.write("(")
	p.printExprList(e.Elements)
	p.write(")")
}

func (p *CodePrinter) VisitBinaryExpression(e *ast.BinaryExpression) {
	p.printExpr(e, 0, false)
}

func (p *CodePrinter) VisitUnaryExpression(e *ast.UnaryExpression) {
	p.printExpr(e, 0, false)
}

func (p *CodePrinter) VisitAssignExpression(e *ast.AssignExpression) {
	p.printExpr(e.Target, 0, false)
	p.write(" = ")
	p.printExpr(e.Value, 0, false)
}

func (p *CodePrinter) VisitCallExpression(e *ast.CallExpression) {
	p.printExpr(e.Callee, 100, false)
	p.write("(")
	p.printExprList(e.Arguments)
	p.write(")")
}

func (p *CodePrinter) VisitMemberExpression(e *ast.MemberExpression) {
	p.printExpr(e.Object, 100, false)
	if e.Optional {
		p.write("?.")
	} else {
		p.write(".")
	}
	p.write(e.Property.Value)
}

func (p *CodePrinter) VisitIndexExpression(e *ast.IndexExpression) {
	p.printExpr(e.Object, 100, false)
	p.write("[")
	p.printExpr(e.Index, 0, false)
	p.write("]")
}

func (p *CodePrinter) VisitLambdaExpression(e *ast.LambdaExpression) {
	p.write("(")
	p.printParameters(e.Parameters)
	p.write(")")
	if e.ReturnType != nil {
		p.write(" -> ")
		e.ReturnType.Accept(p)
	}
	p.write(" => ")
	if e.ExprBody != nil {
		p.printExpr(e.ExprBody, 0, false)
		return
	}
	e.Body.Accept(p)
}

func (p *CodePrinter) VisitRangeExpression(e *ast.RangeExpression) {
	p.printExpr(e, 0, false)
}

func (p *CodePrinter) VisitThisExpression(e *ast.ThisExpression) { p.write("this") }

func (p *CodePrinter) VisitSuperExpression(e *ast.SuperExpression) { p.write("super") }

// --- Statements ---

func (p *CodePrinter) VisitBlockStatement(s *ast.BlockStatement) {
	p.write("{\n")
	p.indent++
	for _, stmt := range s.Statements {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitExpressionStatement(s *ast.ExpressionStatement) {
	p.printExpr(s.Expression, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitVariableStatement(s *ast.VariableStatement) {
	p.writeVariable(s.IsConstant, false, s.Name.Value, s.TypeAnnotation, s.Initializer)
}

func (p *CodePrinter) writeVariable(isConstant, isStatic bool, name string, annotation ast.TypeNode, init ast.Expression) {
	if isStatic {
		p.write("static ")
	}
	if isConstant {
		p.write("let ")
	} else {
		p.write("var ")
	}
	p.write(name)
	if annotation != nil {
		p.write(": ")
		annotation.Accept(p)
	}
	if init != nil {
		p.write(" = ")
		p.printExpr(init, 0, false)
	}
	p.write(";")
}

func (p *CodePrinter) VisitIfStatement(s *ast.IfStatement) {
	p.write("if (")
	p.printExpr(s.Condition, 0, false)
	p.write(") ")
	s.Then.Accept(p)
	if s.Else != nil {
		p.write(" else ")
		s.Else.Accept(p)
	}
}

func (p *CodePrinter) VisitWhileStatement(s *ast.WhileStatement) {
	p.write("while (")
	p.printExpr(s.Condition, 0, false)
	p.write(") ")
	s.Body.Accept(p)
}

func (p *CodePrinter) VisitForStatement(s *ast.ForStatement) {
	p.write("for (")
	if s.Initializer != nil {
		s.Initializer.Accept(p)
	} else {
		p.write(";")
	}
	p.write(" ")
	if s.Condition != nil {
		p.printExpr(s.Condition, 0, false)
	}
	p.write("; ")
	if s.Increment != nil {
		p.printExpr(s.Increment, 0, false)
	}
	p.write(") ")
	s.Body.Accept(p)
}

func (p *CodePrinter) VisitForInStatement(s *ast.ForInStatement) {
	p.write("for (")
	p.write(s.Variable.Value)
	p.write(" in ")
	p.printExpr(s.Iterable, 0, false)
	p.write(") ")
	s.Body.Accept(p)
}

func (p *CodePrinter) VisitReturnStatement(s *ast.ReturnStatement) {
	p.write("return")
	if s.Value != nil {
		p.write(" ")
		p.printExpr(s.Value, 0, false)
	}
	p.write(";")
}

func (p *CodePrinter) VisitBreakStatement(s *ast.BreakStatement) { p.write("break;") }

func (p *CodePrinter) VisitContinueStatement(s *ast.ContinueStatement) { p.write("continue;") }

// --- Types ---

func (p *CodePrinter) VisitNamedType(t *ast.NamedType) { p.write(t.Name) }

func (p *CodePrinter) VisitArrayType(t *ast.ArrayType) {
	t.Elem.Accept(p)
	p.write("[]")
}

func (p *CodePrinter) VisitOptionalType(t *ast.OptionalType) {
	t.Elem.Accept(p)
	p.write("?")
}

func (p *CodePrinter) VisitFunctionType(t *ast.FunctionType) {
	p.write("(")
	p.printTypeList(t.Params, ", ")
	p.write(") -> ")
	t.Return.Accept(p)
}

func (p *CodePrinter) VisitTupleType(t *ast.TupleType) {
	p.write("(")
	p.printTypeList(t.Elems, ", ")
	p.write(")")
}

func (p *CodePrinter) VisitGenericType(t *ast.GenericType) {
	p.write(t.Name)
	p.write("<")
	p.printTypeList(t.Args, ", ")
	p.write(">")
}

func (p *CodePrinter) VisitUnionType(t *ast.UnionType) {
	p.printTypeList(t.Members, " | ")
}

func (p *CodePrinter) VisitIntersectionType(t *ast.IntersectionType) {
	p.printTypeList(t.Members, " & ")
}

func (p *CodePrinter) VisitTensorType(t *ast.TensorType) {
	// Dims and element share the 'x' separator, so TypeString already is the
	// canonical spelling.
	p.write(t.TypeString())
}

func (p *CodePrinter) printTypeList(types []ast.TypeNode, sep string) {
	for i, t := range types {
		if i > 0 {
			p.write(sep)
		}
		t.Accept(p)
	}
}

// --- Declarations ---

func (p *CodePrinter) VisitFunctionDeclaration(d *ast.FunctionDeclaration) {
	p.writeIndent()
	if d.IsStatic {
		p.write("static ")
	}
	if d.IsAbstract {
		p.write("abstract ")
	}
	if d.IsOverride {
		p.write("override ")
	}
	if d.IsAsync {
		p.write("async ")
	}
	if d.IsConstructor {
		p.write("init")
	} else {
		p.write("func ")
		p.write(d.Name.Value)
		p.writeTypeParameters(d.TypeParameters, d.TypeParamConstraints)
	}
	p.write("(")
	p.printParameters(d.Parameters)
	p.write(")")
	if d.ReturnType != nil {
		p.write(" -> ")
		d.ReturnType.Accept(p)
	}
	if d.Body == nil {
		p.write(";\n")
		return
	}
	p.write(" ")
	d.Body.Accept(p)
	p.write("\n")
}

func (p *CodePrinter) VisitClassDeclaration(d *ast.ClassDeclaration) {
	p.writeIndent()
	if d.IsAbstract {
		p.write("abstract ")
	}
	if d.IsSealed {
		p.write("sealed ")
	}
	p.write("class ")
	p.write(d.Name.Value)
	p.writeTypeParameters(d.TypeParameters, d.TypeParamConstraints)
	p.writeSuperTypes(d.SuperTypes)
	p.writeTypeBody(d.Methods, d.Properties)
}

func (p *CodePrinter) VisitStructDeclaration(d *ast.StructDeclaration) {
	p.writeIndent()
	p.write("struct ")
	p.write(d.Name.Value)
	p.writeTypeParameters(d.TypeParameters, d.TypeParamConstraints)
	p.writeSuperTypes(d.Interfaces)
	p.writeTypeBody(d.Methods, d.Properties)
}

func (p *CodePrinter) VisitEnumDeclaration(d *ast.EnumDeclaration) {
	p.writeIndent()
	p.write("enum ")
	p.write(d.Name.Value)
	p.write(" {\n")
	p.indent++
	for i, c := range d.Cases {
		p.writeIndent()
		p.write(c.Name.Value)
		if c.RawValue != nil {
			p.write(" = ")
			p.printExpr(c.RawValue, 0, false)
		}
		if i < len(d.Cases)-1 {
			p.write(",")
		}
		p.write("\n")
	}
	for _, m := range d.Methods {
		m.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *CodePrinter) VisitInterfaceDeclaration(d *ast.InterfaceDeclaration) {
	p.writeIndent()
	p.write("interface ")
	p.write(d.Name.Value)
	p.writeTypeParameters(d.TypeParameters, d.TypeParamConstraints)
	p.writeSuperTypes(d.SuperTypes)
	p.writeTypeBody(d.Methods, d.Properties)
}

func (p *CodePrinter) VisitVariableDeclaration(d *ast.VariableDeclaration) {
	p.writeIndent()
	p.writeVariable(d.IsConstant, d.IsStatic, d.Name.Value, d.TypeAnnotation, d.Initializer)
	p.write("\n")
}

func (p *CodePrinter) printParameters(params []*ast.Parameter) {
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name.Value)
		if param.TypeAnnotation != nil {
			p.write(": ")
			param.TypeAnnotation.Accept(p)
		}
	}
}

func (p *CodePrinter) writeTypeParameters(params []string, constraints []ast.TypeNode) {
	if len(params) == 0 {
		return
	}
	p.write("<")
	for i, name := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(name)
		if i < len(constraints) && constraints[i] != nil {
			p.write(": ")
			constraints[i].Accept(p)
		}
	}
	p.write(">")
}

func (p *CodePrinter) writeSuperTypes(supers []ast.TypeNode) {
	if len(supers) == 0 {
		return
	}
	p.write(" : ")
	p.printTypeList(supers, ", ")
}

func (p *CodePrinter) writeTypeBody(methods []*ast.FunctionDeclaration, properties []*ast.VariableDeclaration) {
	p.write(" {\n")
	p.indent++
	for _, prop := range properties {
		prop.Accept(p)
	}
	for _, m := range methods {
		m.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}\n")
}

package parser

import (
	"fmt"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
)

// modifiers collects the flags that may prefix a declaration.
type modifiers struct {
	isAbstract bool
	isSealed   bool
	isStatic   bool
	isOverride bool
	isAsync    bool
}

func (p *Parser) parseModifiers() modifiers {
	var m modifiers
	for {
		switch p.cur().Type {
		case token.ABSTRACT:
			m.isAbstract = true
		case token.SEALED:
			m.isSealed = true
		case token.STATIC:
			m.isStatic = true
		case token.OVERRIDE:
			m.isOverride = true
		case token.ASYNC:
			m.isAsync = true
		default:
			return m
		}
		p.advance()
	}
}

func (p *Parser) parseDeclaration() ast.Declaration {
	mods := p.parseModifiers()

	switch p.cur().Type {
	case token.CLASS:
		return p.parseClassDeclaration(mods)
	case token.STRUCT:
		return p.parseStructDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.INTERFACE:
		return p.parseInterfaceDeclaration()
	case token.FUNC:
		return p.parseFunctionDeclaration(mods)
	case token.VAR, token.LET:
		return p.parseVariableDeclaration(mods)
	default:
		p.fail(diagnostics.ErrP003, p.cur(),
			fmt.Sprintf("expected a declaration, found '%s'", describeToken(p.cur())))
		return nil
	}
}

/// parseTypeParameters parses an optional <T, U: Comparable> list after a
// name. The second slice is aligned with the first and carries each
// parameter's constraint, nil when unconstrained.
func (p *Parser) parseTypeParameters() ([]string, []ast.TypeNode) {
	if !p.check(token.LT) {
		return nil, nil
	}
	p.advance()

	var names []string
	var constraints []ast.TypeNode
	for {
		names = append(names, p.expect(token.IDENT, "a type parameter name").Lexeme)
		if p.match(token.COLON) {
			constraints = append(constraints, p.parseType())
		} else {
			constraints = append(constraints, nil)
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expectRAngle()
	return names, constraints
}

// parseSuperTypes parses the optional ': Super, Iface' clause.
func (p *Parser) parseSuperTypes() []ast.TypeNode {
	if !p.match(token.COLON) {
		return nil
	}
	supers := []ast.TypeNode{p.parseType()}
	for p.match(token.COMMA) {
		supers = append(supers, p.parseType())
	}
	return supers
}

func (p *Parser) parseClassDeclaration(mods modifiers) ast.Declaration {
	kw := p.expect(token.CLASS, "'class'")
	nameTok := p.expect(token.IDENT, "a class name")
	names, constraints := p.parseTypeParameters()

	decl := &ast.ClassDeclaration{
		Token:                kw,
		Name:                 &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		TypeParameters:       names,
		TypeParamConstraints: constraints,
		IsAbstract:           mods.isAbstract,
		IsSealed:             mods.isSealed,
	}
	decl.SuperTypes = p.parseSuperTypes()

	p.expect(token.LBRACE, "'{'")
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.parseMember(&decl.Methods, &decl.Properties)
	}
	p.expect(token.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseStructDeclaration() ast.Declaration {
	kw := p.expect(token.STRUCT, "'struct'")
	nameTok := p.expect(token.IDENT, "a struct name")
	names, constraints := p.parseTypeParameters()

	decl := &ast.StructDeclaration{
		Token:                kw,
		Name:                 &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		TypeParameters:       names,
		TypeParamConstraints: constraints,
	}
	decl.Interfaces = p.parseSuperTypes()

	p.expect(token.LBRACE, "'{'")
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.parseMember(&decl.Methods, &decl.Properties)
	}
	p.expect(token.RBRACE, "'}'")
	return decl
}

// parseMember parses one class/struct member: a property, a method or an
// init constructor.
func (p *Parser) parseMember(methods *[]*ast.FunctionDeclaration, properties *[]*ast.VariableDeclaration) {
	mods := p.parseModifiers()

	switch p.cur().Type {
	case token.VAR, token.LET:
		prop := p.parseVariableDeclaration(mods).(*ast.VariableDeclaration)
		*properties = append(*properties, prop)
	case token.FUNC:
		fn := p.parseFunctionDeclaration(mods).(*ast.FunctionDeclaration)
		*methods = append(*methods, fn)
	case token.INIT:
		*methods = append(*methods, p.parseConstructor(mods))
	default:
		p.fail(diagnostics.ErrP003, p.cur(),
			fmt.Sprintf("expected a member declaration, found '%s'", describeToken(p.cur())))
	}
}

func (p *Parser) parseConstructor(mods modifiers) *ast.FunctionDeclaration {
	kw := p.expect(token.INIT, "'init'")
	fn := &ast.FunctionDeclaration{
		Token:         kw,
		Name:          &ast.Identifier{Token: kw, Value: "init"},
		IsConstructor: true,
		IsAsync:       mods.isAsync,
	}
	fn.Parameters = p.parseParameterList()
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseEnumDeclaration() ast.Declaration {
	kw := p.expect(token.ENUM, "'enum'")
	nameTok := p.expect(token.IDENT, "an enum name")

	decl := &ast.EnumDeclaration{
		Token: kw,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
	}

	p.expect(token.LBRACE, "'{'")
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		if p.check(token.FUNC) || p.check(token.STATIC) {
			mods := p.parseModifiers()
			fn := p.parseFunctionDeclaration(mods).(*ast.FunctionDeclaration)
			decl.Methods = append(decl.Methods, fn)
			continue
		}

		caseTok := p.expect(token.IDENT, "an enum case name")
		c := &ast.EnumCase{
			Token: caseTok,
			Name:  &ast.Identifier{Token: caseTok, Value: caseTok.Lexeme},
		}
		if p.match(token.ASSIGN) {
			c.RawValue = p.parseExpression()
		}
		decl.Cases = append(decl.Cases, c)
		if !p.match(token.COMMA) && !p.check(token.RBRACE) && !p.check(token.FUNC) && !p.check(token.STATIC) {
			p.fail(diagnostics.ErrP005, p.cur(), "expected ',' or '}' after enum case")
		}
	}
	p.expect(token.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseInterfaceDeclaration() ast.Declaration {
	kw := p.expect(token.INTERFACE, "'interface'")
	nameTok := p.expect(token.IDENT, "an interface name")
	names, constraints := p.parseTypeParameters()

	decl := &ast.InterfaceDeclaration{
		Token:                kw,
		Name:                 &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		TypeParameters:       names,
		TypeParamConstraints: constraints,
	}
	decl.SuperTypes = p.parseSuperTypes()

	p.expect(token.LBRACE, "'{'")
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		mods := p.parseModifiers()
		switch p.cur().Type {
		case token.VAR, token.LET:
			prop := p.parseVariableDeclaration(mods).(*ast.VariableDeclaration)
			decl.Properties = append(decl.Properties, prop)
		case token.FUNC:
			decl.Methods = append(decl.Methods, p.parseMethodSignature(mods))
		default:
			p.fail(diagnostics.ErrP003, p.cur(),
				fmt.Sprintf("expected an interface member, found '%s'", describeToken(p.cur())))
		}
	}
	p.expect(token.RBRACE, "'}'")
	return decl
}

// parseMethodSignature parses a bodyless func inside an interface.
func (p *Parser) parseMethodSignature(mods modifiers) *ast.FunctionDeclaration {
	kw := p.expect(token.FUNC, "'func'")
	nameTok := p.expect(token.IDENT, "a method name")
	names, constraints := p.parseTypeParameters()

	fn := &ast.FunctionDeclaration{
		Token:                kw,
		Name:                 &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		TypeParameters:       names,
		TypeParamConstraints: constraints,
		IsStatic:             mods.isStatic,
		IsAsync:              mods.isAsync,
	}
	fn.Parameters = p.parseParameterList()
	if p.match(token.ARROW) {
		fn.ReturnType = p.parseType()
	}
	p.expect(token.SEMICOLON, "';'")
	return fn
}

func (p *Parser) parseFunctionDeclaration(mods modifiers) ast.Declaration {
	kw := p.expect(token.FUNC, "'func'")
	nameTok := p.expect(token.IDENT, "a function name")
	names, constraints := p.parseTypeParameters()

	fn := &ast.FunctionDeclaration{
		Token:                kw,
		Name:                 &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		TypeParameters:       names,
		TypeParamConstraints: constraints,
		IsStatic:             mods.isStatic,
		IsAbstract:           mods.isAbstract,
		IsOverride:           mods.isOverride,
		IsAsync:              mods.isAsync,
	}
	fn.Parameters = p.parseParameterList()
	if p.match(token.ARROW) {
		fn.ReturnType = p.parseType()
	}

	// Abstract methods and interface-style signatures end with ';'.
	if p.match(token.SEMICOLON) {
		return fn
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseParameterList parses '(' name: Type, ... ')'. Annotations are
// mandatory here, unlike in lambda heads.
func (p *Parser) parseParameterList() []*ast.Parameter {
	p.expect(token.LPAREN, "'('")
	params := []*ast.Parameter{}
	if !p.check(token.RPAREN) {
		params = append(params, p.parseParameter())
		for p.match(token.COMMA) {
			params = append(params, p.parseParameter())
		}
	}
	p.expect(token.RPAREN, "')'")
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	nameTok := p.expect(token.IDENT, "a parameter name")
	p.expect(token.COLON, "':'")
	return &ast.Parameter{
		Token:          nameTok,
		Name:           &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		TypeAnnotation: p.parseType(),
	}
}

func (p *Parser) parseVariableDeclaration(mods modifiers) ast.Declaration {
	kw := p.advance() // 'var' or 'let'
	nameTok := p.expect(token.IDENT, "a variable name")

	decl := &ast.VariableDeclaration{
		Token:      kw,
		Name:       &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		IsConstant: kw.Type == token.LET,
		IsStatic:   mods.isStatic,
	}
	if p.match(token.COLON) {
		decl.TypeAnnotation = p.parseType()
	}
	if p.match(token.ASSIGN) {
		decl.Initializer = p.parseExpression()
	}
	p.expect(token.SEMICOLON, "';'")
	return decl
}

package parser

import (
	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR, token.LET:
		return p.parseVariableStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		tok := p.advance()
		p.expect(token.SEMICOLON, "';'")
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		p.expect(token.SEMICOLON, "';'")
		return &ast.ContinueStatement{Token: tok}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	lbrace := p.expect(token.LBRACE, "'{'")
	block := &ast.BlockStatement{Token: lbrace}
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.expect(token.RBRACE, "'}'")
	return block
}

func (p *Parser) parseVariableStatement() ast.Statement {
	kw := p.advance() // 'var' or 'let'
	nameTok := p.expect(token.IDENT, "a variable name")

	stmt := &ast.VariableStatement{
		Token:      kw,
		Name:       &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
		IsConstant: kw.Type == token.LET,
	}
	if p.match(token.COLON) {
		stmt.TypeAnnotation = p.parseType()
	}
	if p.match(token.ASSIGN) {
		stmt.Initializer = p.parseExpression()
	}
	p.expect(token.SEMICOLON, "';'")
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	kw := p.expect(token.IF, "'if'")
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "')'")
	then := p.parseBlock()

	stmt := &ast.IfStatement{Token: kw, Condition: cond, Then: then}
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			stmt.Else = p.parseIfStatement()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	kw := p.expect(token.WHILE, "'while'")
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "')'")
	body := p.parseBlock()
	return &ast.WhileStatement{Token: kw, Condition: cond, Body: body}
}

// parseForStatement handles both for (x in iterable) and the C-style
// for (init; cond; step) form. The 'in' form is recognized by one token of
// lookahead after the loop variable.
func (p *Parser) parseForStatement() ast.Statement {
	kw := p.expect(token.FOR, "'for'")
	p.expect(token.LPAREN, "'('")

	if p.check(token.IDENT) && p.peek(1).Type == token.IN {
		nameTok := p.advance()
		p.advance() // 'in'
		iterable := p.parseExpression()
		p.expect(token.RPAREN, "')'")
		body := p.parseBlock()
		return &ast.ForInStatement{
			Token:    kw,
			Variable: &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
			Iterable: iterable,
			Body:     body,
		}
	}

	stmt := &ast.ForStatement{Token: kw}
	if !p.match(token.SEMICOLON) {
		if p.check(token.VAR) || p.check(token.LET) {
			stmt.Initializer = p.parseVariableStatement()
		} else {
			expr := p.parseExpression()
			p.expect(token.SEMICOLON, "';'")
			stmt.Initializer = &ast.ExpressionStatement{Token: expr.GetToken(), Expression: expr}
		}
	}
	if !p.check(token.SEMICOLON) {
		stmt.Condition = p.parseExpression()
	}
	p.expect(token.SEMICOLON, "';'")
	if !p.check(token.RPAREN) {
		stmt.Increment = p.parseExpression()
	}
	p.expect(token.RPAREN, "')'")
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	kw := p.expect(token.RETURN, "'return'")
	stmt := &ast.ReturnStatement{Token: kw}
	if !p.check(token.SEMICOLON) {
		stmt.Value = p.parseExpression()
	}
	p.expect(token.SEMICOLON, "';'")
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression()
	p.expect(token.SEMICOLON, "';'")
	return &ast.ExpressionStatement{Token: expr.GetToken(), Expression: expr}
}

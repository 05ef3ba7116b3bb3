package parser

import (
	"fmt"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
)

// compoundOps maps compound assignment tokens to the operator they desugar
// into.
var compoundOps = map[token.TokenType]token.TokenType{
	token.PLUS_ASSIGN:     token.PLUS,
	token.MINUS_ASSIGN:    token.MINUS,
	token.ASTERISK_ASSIGN: token.ASTERISK,
	token.SLASH_ASSIGN:    token.SLASH,
	token.PERCENT_ASSIGN:  token.PERCENT,
	token.POWER_ASSIGN:    token.POWER,
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment is right associative. Compound assignments desugar here:
// a += b becomes a = a + b.
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseCoalesce()

	if p.check(token.ASSIGN) {
		opTok := p.advance()
		p.requireAssignable(left, opTok)
		value := p.parseAssignment()
		return &ast.AssignExpression{Token: opTok, Target: left, Value: value}
	}

	if base, ok := compoundOps[p.cur().Type]; ok {
		opTok := p.advance()
		p.requireAssignable(left, opTok)
		value := p.parseAssignment()
		return &ast.AssignExpression{
			Token:  opTok,
			Target: left,
			Value: &ast.BinaryExpression{
				Token:    opTok,
				Left:     left,
				Operator: base,
				Right:    value,
			},
		}
	}

	return left
}

func (p *Parser) requireAssignable(target ast.Expression, opTok token.Token) {
	switch target.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
	default:
		p.fail(diagnostics.ErrP002, opTok, "invalid assignment target")
	}
}

func (p *Parser) parseCoalesce() ast.Expression {
	left := p.parseOr()
	for p.check(token.NULL_COALESCE) {
		opTok := p.advance()
		right := p.parseOr()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: token.NULL_COALESCE, Right: right}
	}
	return left
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(token.OR) {
		opTok := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: token.OR, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseBitOr()
	for p.check(token.AND) {
		opTok := p.advance()
		right := p.parseBitOr()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: token.AND, Right: right}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.check(token.PIPE) {
		opTok := p.advance()
		right := p.parseBitXor()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: token.PIPE, Right: right}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.check(token.CARET) {
		opTok := p.advance()
		right := p.parseBitAnd()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: token.CARET, Right: right}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(token.AMPERSAND) {
		opTok := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: token.AMPERSAND, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.check(token.EQ) || p.check(token.NOT_EQ) {
		opTok := p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseRange()
	for p.check(token.LT) || p.check(token.GT) || p.check(token.LTE) ||
		p.check(token.GTE) || p.check(token.SPACESHIP) {
		opTok := p.advance()
		right := p.parseRange()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) parseRange() ast.Expression {
	left := p.parseShift()
	if p.check(token.DOT_DOT) || p.check(token.ELLIPSIS) {
		opTok := p.advance()
		right := p.parseShift()
		return &ast.RangeExpression{
			Token:     opTok,
			Start:     left,
			End:       right,
			Inclusive: opTok.Type == token.ELLIPSIS,
		}
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseAdditive()
	for p.check(token.LSHIFT) || p.check(token.RSHIFT) {
		opTok := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Type, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parsePower()
	for p.check(token.ASTERISK) || p.check(token.SLASH) || p.check(token.PERCENT) {
		opTok := p.advance()
		right := p.parsePower()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Type, Right: right}
	}
	return left
}

// parsePower is right associative: 2 ** 3 ** 2 is 2 ** (3 ** 2).
func (p *Parser) parsePower() ast.Expression {
	left := p.parseUnary()
	if p.check(token.POWER) {
		opTok := p.advance()
		right := p.parsePower()
		return &ast.BinaryExpression{Token: opTok, Left: left, Operator: token.POWER, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.BANG) || p.check(token.MINUS) || p.check(token.TILDE) {
		opTok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Token: opTok, Operator: opTok.Type, Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur().Type {
		case token.LPAREN:
			lparen := p.advance()
			args := []ast.Expression{}
			if !p.check(token.RPAREN) {
				args = append(args, p.parseExpression())
				for p.match(token.COMMA) {
					args = append(args, p.parseExpression())
				}
			}
			p.expect(token.RPAREN, "')'")
			expr = &ast.CallExpression{Token: lparen, Callee: expr, Arguments: args}

		case token.DOT:
			dot := p.advance()
			name := p.expect(token.IDENT, "a member name")
			expr = &ast.MemberExpression{
				Token:    dot,
				Object:   expr,
				Property: &ast.Identifier{Token: name, Value: name.Lexeme},
			}

		case token.OPTIONAL_CHAIN:
			chain := p.advance()
			name := p.expect(token.IDENT, "a member name")
			expr = &ast.MemberExpression{
				Token:    chain,
				Object:   expr,
				Property: &ast.Identifier{Token: name, Value: name.Lexeme},
				Optional: true,
			}

		case token.LBRACKET:
			lbracket := p.advance()
			index := p.parseExpression()
			p.expect(token.RBRACKET, "']'")
			expr = &ast.IndexExpression{Token: lbracket, Object: expr, Index: index}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		v, _ := tok.Literal.(int64)
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case token.FLOAT:
		p.advance()
		v, _ := tok.Literal.(float64)
		return &ast.FloatLiteral{Token: tok, Value: v}
	case token.STRING:
		p.advance()
		v, _ := tok.Literal.(string)
		return &ast.StringLiteral{Token: tok, Value: v}
	case token.CHAR:
		p.advance()
		var r rune
		if v, ok := tok.Literal.(string); ok && v != "" {
			r = []rune(v)[0]
		}
		return &ast.CharLiteral{Token: tok, Value: r}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
	case token.NIL:
		p.advance()
		return &ast.NilLiteral{Token: tok}
	case token.THIS:
		p.advance()
		return &ast.ThisExpression{Token: tok}
	case token.SUPER:
		p.advance()
		return &ast.SuperExpression{Token: tok}
	case token.NEW:
		return p.parseNew()
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Lexeme}
	case token.LPAREN:
		if p.isLambdaAhead() {
			return p.parseLambda()
		}
		return p.parseGroupingOrTuple()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseBraceLiteral()
	default:
		p.fail(diagnostics.ErrP002, tok,
			fmt.Sprintf("expected an expression, found '%s'", describeToken(tok)))
		return nil
	}
}

// parseNew treats new Name(args) as a constructor call on the type name.
func (p *Parser) parseNew() ast.Expression {
	p.expect(token.NEW, "'new'")
	nameTok := p.expect(token.IDENT, "a type name")
	callee := &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}

	lparen := p.expect(token.LPAREN, "'('")
	args := []ast.Expression{}
	if !p.check(token.RPAREN) {
		args = append(args, p.parseExpression())
		for p.match(token.COMMA) {
			args = append(args, p.parseExpression())
		}
	}
	p.expect(token.RPAREN, "')'")
	return &ast.CallExpression{Token: lparen, Callee: callee, Arguments: args}
}

// isLambdaAhead decides between a lambda head and a grouping/tuple by
// scanning past the matching ')': a following '=>' means lambda. The scan is
// bounded by the paren nesting, never by a token budget.
func (p *Parser) isLambdaAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return p.peekAt(i + 1).Type == token.FAT_ARROW
			}
		case token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) peekAt(idx int) token.Token {
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) parseLambda() ast.Expression {
	lparen := p.expect(token.LPAREN, "'('")

	params := []*ast.Parameter{}
	if !p.check(token.RPAREN) {
		params = append(params, p.parseLambdaParameter())
		for p.match(token.COMMA) {
			params = append(params, p.parseLambdaParameter())
		}
	}
	p.expect(token.RPAREN, "')'")

	var retType ast.TypeNode
	if p.match(token.ARROW) {
		retType = p.parseType()
	}
	p.expect(token.FAT_ARROW, "'=>'")

	lambda := &ast.LambdaExpression{Token: lparen, Parameters: params, ReturnType: retType}
	if p.check(token.LBRACE) {
		lambda.Body = p.parseBlock()
	} else {
		lambda.ExprBody = p.parseExpression()
	}
	return lambda
}

func (p *Parser) parseLambdaParameter() *ast.Parameter {
	nameTok := p.expect(token.IDENT, "a parameter name")
	param := &ast.Parameter{
		Token: nameTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme},
	}
	if p.match(token.COLON) {
		param.TypeAnnotation = p.parseType()
	}
	return param
}

func (p *Parser) parseGroupingOrTuple() ast.Expression {
	lparen := p.expect(token.LPAREN, "'('")
	first := p.parseExpression()

	if !p.check(token.COMMA) {
		p.expect(token.RPAREN, "')'")
		return first
	}

	elements := []ast.Expression{first}
	for p.match(token.COMMA) {
		elements = append(elements, p.parseExpression())
	}
	p.expect(token.RPAREN, "')'")
	return &ast.TupleLiteral{Token: lparen, Elements: elements}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lbracket := p.expect(token.LBRACKET, "'['")
	elements := []ast.Expression{}
	if !p.check(token.RBRACKET) {
		elements = append(elements, p.parseExpression())
		for p.match(token.COMMA) {
			elements = append(elements, p.parseExpression())
		}
	}
	p.expect(token.RBRACKET, "']'")
	return &ast.ArrayLiteral{Token: lbracket, Elements: elements}
}

// parseBraceLiteral disambiguates dictionary and set literals by whether a
// ':' follows the first element. Empty braces are an empty dictionary.
func (p *Parser) parseBraceLiteral() ast.Expression {
	lbrace := p.expect(token.LBRACE, "'{'")

	if p.match(token.RBRACE) {
		return &ast.DictionaryLiteral{Token: lbrace}
	}

	first := p.parseExpression()
	if p.match(token.COLON) {
		dict := &ast.DictionaryLiteral{Token: lbrace}
		dict.Keys = append(dict.Keys, first)
		dict.Vals = append(dict.Vals, p.parseExpression())
		for p.match(token.COMMA) {
			dict.Keys = append(dict.Keys, p.parseExpression())
			p.expect(token.COLON, "':'")
			dict.Vals = append(dict.Vals, p.parseExpression())
		}
		p.expect(token.RBRACE, "'}'")
		return dict
	}

	set := &ast.SetLiteral{Token: lbrace, Elements: []ast.Expression{first}}
	for p.match(token.COMMA) {
		set.Elements = append(set.Elements, p.parseExpression())
	}
	p.expect(token.RBRACE, "'}'")
	return set
}

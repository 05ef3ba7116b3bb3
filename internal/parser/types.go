package parser

import (
	"fmt"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
	"github.com/ouro-lang/ouro/internal/typesystem"
)

// parseType parses a full type annotation: unions of intersections of
// suffixed primaries.
func (p *Parser) parseType() ast.TypeNode {
	first := p.parseIntersectionType()
	if !p.check(token.PIPE) {
		return first
	}

	tok := first.GetToken()
	members := []ast.TypeNode{first}
	for p.match(token.PIPE) {
		members = append(members, p.parseIntersectionType())
	}
	return &ast.UnionType{Token: tok, Members: members}
}

func (p *Parser) parseIntersectionType() ast.TypeNode {
	first := p.parseSuffixedType()
	if !p.check(token.AMPERSAND) {
		return first
	}

	tok := first.GetToken()
	members := []ast.TypeNode{first}
	for p.match(token.AMPERSAND) {
		members = append(members, p.parseSuffixedType())
	}
	return &ast.IntersectionType{Token: tok, Members: members}
}

// parseSuffixedType handles the postfix forms T[] and T?, left to right, so
// Int?[] is an array of optionals and Int[]? an optional array.
func (p *Parser) parseSuffixedType() ast.TypeNode {
	t := p.parsePrimaryType()
	for {
		switch {
		case p.check(token.QUESTION):
			tok := p.advance()
			t = &ast.OptionalType{Token: tok, Elem: t}
		case p.check(token.LBRACKET) && p.peek(1).Type == token.RBRACKET:
			tok := p.advance()
			p.advance()
			t = &ast.ArrayType{Token: tok, Elem: t}
		default:
			return t
		}
	}
}

func (p *Parser) parsePrimaryType() ast.TypeNode {
	switch p.cur().Type {
	case token.LPAREN:
		return p.parseParenType()
	case token.IDENT:
		return p.parseNamedOrGenericType()
	default:
		p.fail(diagnostics.ErrP004, p.cur(),
			fmt.Sprintf("expected a type, found '%s'", describeToken(p.cur())))
		return nil
	}
}

// parseParenType handles (A, B) -> R function types, (A, B) tuples and plain
// (A) groupings.
func (p *Parser) parseParenType() ast.TypeNode {
	lparen := p.expect(token.LPAREN, "'('")

	elems := []ast.TypeNode{}
	if !p.check(token.RPAREN) {
		elems = append(elems, p.parseType())
		for p.match(token.COMMA) {
			elems = append(elems, p.parseType())
		}
	}
	p.expect(token.RPAREN, "')'")

	if p.match(token.ARROW) {
		ret := p.parseType()
		return &ast.FunctionType{Token: lparen, Params: elems, Return: ret}
	}

	switch len(elems) {
	case 0:
		p.fail(diagnostics.ErrP004, lparen, "empty parentheses are not a type")
		return nil
	case 1:
		return elems[0]
	default:
		return &ast.TupleType{Token: lparen, Elems: elems}
	}
}

func (p *Parser) parseNamedOrGenericType() ast.TypeNode {
	nameTok := p.expect(token.IDENT, "a type name")
	name := nameTok.Lexeme

	if !p.check(token.LT) {
		return &ast.NamedType{Token: nameTok, Name: name}
	}
	p.advance()

	if name == "Tensor" || name == "Vector" {
		return p.parseTensorType(nameTok, name == "Vector")
	}

	args := []ast.TypeNode{p.parseType()}
	for p.match(token.COMMA) {
		args = append(args, p.parseType())
	}
	p.expectRAngle()
	return &ast.GenericType{Token: nameTok, Name: name, Args: args}
}

// parseTensorType collects the raw spelling between the angle brackets and
// splits it into dimensions and element: Tensor<2x3xFloat>, Vector<4xFloat>,
// Tensor<?x3xInt>. Dimensions and element arrive glued together in identifier
// lexemes, so the split runs on the joined text.
func (p *Parser) parseTensorType(nameTok token.Token, isVector bool) ast.TypeNode {
	raw := ""
	depth := 1
	for depth > 0 {
		switch p.cur().Type {
		case token.EOF:
			p.fail(diagnostics.ErrP004, nameTok, "unterminated tensor type")
		case token.LT:
			depth++
			raw += "<"
			p.advance()
		case token.GT:
			depth--
			if depth > 0 {
				raw += ">"
			}
			p.advance()
		case token.RSHIFT:
			if depth == 1 {
				// One '>' closes the tensor, the other belongs to an
				// enclosing generic.
				depth = 0
				p.pendingRAngle = true
			} else {
				depth -= 2
				if depth > 0 {
					raw += ">>"
				} else {
					raw += ">"
				}
			}
			p.advance()
		case token.COMMA:
			raw += ","
			p.advance()
		case token.QUESTION:
			raw += "?"
			p.advance()
		default:
			raw += p.cur().Lexeme
			p.advance()
		}
	}

	shape, elemText, err := typesystem.SplitTensorSpec(raw)
	if err != nil {
		p.fail(diagnostics.ErrP004, nameTok,
			fmt.Sprintf("malformed tensor type '%s<%s>'", nameTok.Lexeme, raw))
		return nil
	}
	return &ast.TensorType{
		Token:    nameTok,
		IsVector: isVector,
		Shape:    shape,
		Elem:     &ast.NamedType{Token: nameTok, Name: elemText},
	}
}

package ast

import "github.com/ouro-lang/ouro/internal/token"

// Identifier represents a name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v ExprVisitor)  { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// IntegerLiteral represents an integer literal (any base).
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v ExprVisitor)  { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

// FloatLiteral represents a floating point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) Accept(v ExprVisitor)  { v.VisitFloatLiteral(fl) }
func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// StringLiteral represents a double-quoted string.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v ExprVisitor)  { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// CharLiteral represents a single-quoted character.
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) Accept(v ExprVisitor)  { v.VisitCharLiteral(cl) }
func (cl *CharLiteral) expressionNode()       {}
func (cl *CharLiteral) TokenLiteral() string  { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token {
	if cl == nil {
		return token.Token{}
	}
	return cl.Token
}

// BooleanLiteral represents true/false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Accept(v ExprVisitor)  { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// NilLiteral represents the nil literal.
type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) Accept(v ExprVisitor)  { v.VisitNilLiteral(n) }
func (n *NilLiteral) expressionNode()       {}
func (n *NilLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NilLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// ArrayLiteral represents [1, 2, 3].
type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) Accept(v ExprVisitor)  { v.VisitArrayLiteral(al) }
func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token {
	if al == nil {
		return token.Token{}
	}
	return al.Token
}

// DictionaryLiteral represents { key: value, ... }.
type DictionaryLiteral struct {
	Token token.Token // the '{' token
	Keys  []Expression
	Vals  []Expression
}

func (dl *DictionaryLiteral) Accept(v ExprVisitor)  { v.VisitDictionaryLiteral(dl) }
func (dl *DictionaryLiteral) expressionNode()       {}
func (dl *DictionaryLiteral) TokenLiteral() string  { return dl.Token.Lexeme }
func (dl *DictionaryLiteral) GetToken() token.Token {
	if dl == nil {
		return token.Token{}
	}
	return dl.Token
}

// SetLiteral represents { a, b, c } (no ':' after the first element).
type SetLiteral struct {
	Token    token.Token // the '{' token
	Elements []Expression
}

func (sl *SetLiteral) Accept(v ExprVisitor)  { v.VisitSetLiteral(sl) }
func (sl *SetLiteral) expressionNode()       {}
func (sl *SetLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *SetLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// TupleLiteral represents (1, "two", true). At least two elements; a single
// parenthesized expression parses as a grouping, not a tuple.
type TupleLiteral struct {
	Token    token.Token // the '(' token
	Elements []Expression
}

func (tl *TupleLiteral) Accept(v ExprVisitor)  { v.VisitTupleLiteral(tl) }
func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token {
	if tl == nil {
		return token.Token{}
	}
	return tl.Token
}

// BinaryExpression represents left OP right, including '??' and '<=>'.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (be *BinaryExpression) Accept(v ExprVisitor)  { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token {
	if be == nil {
		return token.Token{}
	}
	return be.Token
}

// UnaryExpression represents OP operand (-x, !x, ~x).
type UnaryExpression struct {
	Token    token.Token // the operator token
	Operator token.TokenType
	Operand  Expression
}

func (ue *UnaryExpression) Accept(v ExprVisitor)  { v.VisitUnaryExpression(ue) }
func (ue *UnaryExpression) expressionNode()       {}
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Token.Lexeme }
func (ue *UnaryExpression) GetToken() token.Token {
	if ue == nil {
		return token.Token{}
	}
	return ue.Token
}

// AssignExpression represents target = value. Compound assignments are
// desugared by the parser into plain assignment with a BinaryExpression value.
type AssignExpression struct {
	Token  token.Token // the '=' token
	Target Expression
	Value  Expression
}

func (ae *AssignExpression) Accept(v ExprVisitor)  { v.VisitAssignExpression(ae) }
func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token {
	if ae == nil {
		return token.Token{}
	}
	return ae.Token
}

// CallExpression represents callee(args...).
type CallExpression struct {
	Token     token.Token // the '(' token
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v ExprVisitor)  { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// MemberExpression represents object.property and object?.property.
type MemberExpression struct {
	Token    token.Token // the '.' or '?.' token
	Object   Expression
	Property *Identifier
	Optional bool
}

func (me *MemberExpression) Accept(v ExprVisitor)  { v.VisitMemberExpression(me) }
func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token {
	if me == nil {
		return token.Token{}
	}
	return me.Token
}

// IndexExpression represents object[index].
type IndexExpression struct {
	Token  token.Token // the '[' token
	Object Expression
	Index  Expression
}

func (ie *IndexExpression) Accept(v ExprVisitor)  { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// LambdaExpression represents (a, b) => expr and (a: Int) => { ... }.
type LambdaExpression struct {
	Token      token.Token // the '(' token of the parameter list
	Parameters []*Parameter
	ReturnType TypeNode // optional
	Body       Statement
	ExprBody   Expression // set when the body is a bare expression
}

func (le *LambdaExpression) Accept(v ExprVisitor)  { v.VisitLambdaExpression(le) }
func (le *LambdaExpression) expressionNode()       {}
func (le *LambdaExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LambdaExpression) GetToken() token.Token {
	if le == nil {
		return token.Token{}
	}
	return le.Token
}

// RangeExpression represents start..end (exclusive) and start...end
// (inclusive).
type RangeExpression struct {
	Token     token.Token // the '..' or '...' token
	Start     Expression
	End       Expression
	Inclusive bool
}

func (re *RangeExpression) Accept(v ExprVisitor)  { v.VisitRangeExpression(re) }
func (re *RangeExpression) expressionNode()       {}
func (re *RangeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RangeExpression) GetToken() token.Token {
	if re == nil {
		return token.Token{}
	}
	return re.Token
}

// ThisExpression represents 'this' inside a method body.
type ThisExpression struct {
	Token token.Token
}

func (te *ThisExpression) Accept(v ExprVisitor)  { v.VisitThisExpression(te) }
func (te *ThisExpression) expressionNode()       {}
func (te *ThisExpression) TokenLiteral() string  { return te.Token.Lexeme }
func (te *ThisExpression) GetToken() token.Token {
	if te == nil {
		return token.Token{}
	}
	return te.Token
}

// SuperExpression represents 'super' inside a method body.
type SuperExpression struct {
	Token token.Token
}

func (se *SuperExpression) Accept(v ExprVisitor)  { v.VisitSuperExpression(se) }
func (se *SuperExpression) expressionNode()       {}
func (se *SuperExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SuperExpression) GetToken() token.Token {
	if se == nil {
		return token.Token{}
	}
	return se.Token
}

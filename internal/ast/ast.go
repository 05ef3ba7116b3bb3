// Package ast defines the Ouro syntax tree: four disjoint node families
// (Expression, Statement, TypeNode, Declaration). Nodes are immutable once
// constructed by the parser and carry their primary token for provenance.
//
// Traversal is double dispatch: every node accepts a per-family visitor and
// invokes the visitor method matching its concrete kind, so new traversals
// (printer, analyzer, emitters) reuse the tree without modifying node types.
package ast

import "github.com/ouro-lang/ouro/internal/token"

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
	Accept(v ExprVisitor)
}

// Statement is a Node executed for effect inside a body.
type Statement interface {
	Node
	statementNode()
	Accept(v StmtVisitor)
}

// TypeNode is a source-level type annotation.
type TypeNode interface {
	Node
	typeNode()
	Accept(v TypeVisitor)
	// TypeString returns the canonical textual spelling of the annotation.
	TypeString() string
}

// Declaration is a top-level form (also nested as class/struct members).
type Declaration interface {
	Node
	declarationNode()
	Accept(v DeclVisitor)
}

// ExprVisitor declares one method per expression kind.
type ExprVisitor interface {
	VisitIdentifier(e *Identifier)
	VisitIntegerLiteral(e *IntegerLiteral)
	VisitFloatLiteral(e *FloatLiteral)
	VisitStringLiteral(e *StringLiteral)
	VisitCharLiteral(e *CharLiteral)
	VisitBooleanLiteral(e *BooleanLiteral)
	VisitNilLiteral(e *NilLiteral)
	VisitArrayLiteral(e *ArrayLiteral)
	VisitDictionaryLiteral(e *DictionaryLiteral)
	VisitSetLiteral(e *SetLiteral)
	VisitTupleLiteral(e *TupleLiteral)
	VisitBinaryExpression(e *BinaryExpression)
	VisitUnaryExpression(e *UnaryExpression)
	VisitAssignExpression(e *AssignExpression)
	VisitCallExpression(e *CallExpression)
	VisitMemberExpression(e *MemberExpression)
	VisitIndexExpression(e *IndexExpression)
	VisitLambdaExpression(e *LambdaExpression)
	VisitRangeExpression(e *RangeExpression)
	VisitThisExpression(e *ThisExpression)
	VisitSuperExpression(e *SuperExpression)
}

// StmtVisitor declares one method per statement kind.
type StmtVisitor interface {
	VisitBlockStatement(s *BlockStatement)
	VisitExpressionStatement(s *ExpressionStatement)
	VisitVariableStatement(s *VariableStatement)
	VisitIfStatement(s *IfStatement)
	VisitWhileStatement(s *WhileStatement)
	VisitForStatement(s *ForStatement)
	VisitForInStatement(s *ForInStatement)
	VisitReturnStatement(s *ReturnStatement)
	VisitBreakStatement(s *BreakStatement)
	VisitContinueStatement(s *ContinueStatement)
}

// TypeVisitor declares one method per type-annotation kind.
type TypeVisitor interface {
	VisitNamedType(t *NamedType)
	VisitArrayType(t *ArrayType)
	VisitOptionalType(t *OptionalType)
	VisitFunctionType(t *FunctionType)
	VisitTupleType(t *TupleType)
	VisitGenericType(t *GenericType)
	VisitUnionType(t *UnionType)
	VisitIntersectionType(t *IntersectionType)
	VisitTensorType(t *TensorType)
}

// DeclVisitor declares one method per declaration kind.
type DeclVisitor interface {
	VisitFunctionDeclaration(d *FunctionDeclaration)
	VisitClassDeclaration(d *ClassDeclaration)
	VisitStructDeclaration(d *StructDeclaration)
	VisitEnumDeclaration(d *EnumDeclaration)
	VisitInterfaceDeclaration(d *InterfaceDeclaration)
	VisitVariableDeclaration(d *VariableDeclaration)
}

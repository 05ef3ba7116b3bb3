package parser

import (
	"testing"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/lexer"
	"github.com/ouro-lang/ouro/internal/token"
)

func parseSource(t *testing.T, source string) ([]ast.Declaration, []error) {
	t.Helper()
	tokens, lexErr := lexer.ScanTokens(source)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	decls, errs := Parse(tokens)
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return decls, out
}

func TestParseFunctionDeclaration(t *testing.T) {
	decls, errs := parseSource(t, `
func add(a: Int, b: Int) -> Int {
	return a + b;
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(decls))
	}

	fn, ok := decls[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected function declaration, got %T", decls[0])
	}
	if fn.Name.Value != "add" {
		t.Errorf("name = %q", fn.Name.Value)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if fn.Parameters[0].TypeAnnotation.TypeString() != "Int" {
		t.Errorf("first parameter type = %s", fn.Parameters[0].TypeAnnotation.TypeString())
	}
	if fn.ReturnType.TypeString() != "Int" {
		t.Errorf("return type = %s", fn.ReturnType.TypeString())
	}
	if len(fn.Body.Statements) != 1 {
		t.Errorf("body statements = %d", len(fn.Body.Statements))
	}
}

func TestParseClassDeclaration(t *testing.T) {
	decls, errs := parseSource(t, `
abstract class Animal<T> : Creature, Comparable {
	var name: String;
	static let count: Int = 0;

	init(name: String) {
		this.name = name;
	}

	abstract func speak() -> String;

	override func describe() -> String {
		return this.name;
	}
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	cls, ok := decls[0].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected class declaration, got %T", decls[0])
	}
	if !cls.IsAbstract {
		t.Error("abstract flag lost")
	}
	if len(cls.TypeParameters) != 1 || cls.TypeParameters[0] != "T" {
		t.Errorf("type parameters = %v", cls.TypeParameters)
	}
	if len(cls.SuperTypes) != 2 {
		t.Fatalf("expected 2 supertypes, got %d", len(cls.SuperTypes))
	}
	if len(cls.Properties) != 2 {
		t.Errorf("properties = %d", len(cls.Properties))
	}
	if !cls.Properties[1].IsStatic || !cls.Properties[1].IsConstant {
		t.Error("static let flags lost")
	}
	if len(cls.Methods) != 3 {
		t.Fatalf("methods = %d", len(cls.Methods))
	}
	if !cls.Methods[0].IsConstructor {
		t.Error("init should be a constructor")
	}
	if !cls.Methods[1].IsAbstract || cls.Methods[1].Body != nil {
		t.Error("abstract method should have no body")
	}
	if !cls.Methods[2].IsOverride {
		t.Error("override flag lost")
	}
}

func TestParseTypeParameterConstraints(t *testing.T) {
	decls, errs := parseSource(t, `
func min<T: Comparable, U>(a: T, b: T, tag: U) -> T {
	return a;
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	fn := decls[0].(*ast.FunctionDeclaration)
	if len(fn.TypeParameters) != 2 {
		t.Fatalf("type parameters = %v", fn.TypeParameters)
	}
	if len(fn.TypeParamConstraints) != 2 {
		t.Fatalf("constraints = %d, want one slot per parameter", len(fn.TypeParamConstraints))
	}
	named, ok := fn.TypeParamConstraints[0].(*ast.NamedType)
	if !ok || named.Name != "Comparable" {
		t.Errorf("T's constraint = %v, want Comparable", fn.TypeParamConstraints[0])
	}
	if fn.TypeParamConstraints[1] != nil {
		t.Errorf("U should be unconstrained, got %v", fn.TypeParamConstraints[1])
	}
}

func TestParseInterfaceAndStruct(t *testing.T) {
	decls, errs := parseSource(t, `
interface Speaker {
	func speak() -> String;
}

struct Point : Speaker {
	var x: Int;
	var y: Int;

	func speak() -> String {
		return "point";
	}
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}

	iface := decls[0].(*ast.InterfaceDeclaration)
	if len(iface.Methods) != 1 || iface.Methods[0].Body != nil {
		t.Error("interface method should be a bodyless signature")
	}

	st := decls[1].(*ast.StructDeclaration)
	if len(st.Interfaces) != 1 {
		t.Errorf("struct interfaces = %d", len(st.Interfaces))
	}
}

func TestParseEnumDeclaration(t *testing.T) {
	decls, errs := parseSource(t, `
enum Color {
	Red,
	Green = 3,
	Blue
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	en := decls[0].(*ast.EnumDeclaration)
	if len(en.Cases) != 3 {
		t.Fatalf("cases = %d", len(en.Cases))
	}
	if en.Cases[1].RawValue == nil {
		t.Error("Green should carry a raw value")
	}
}

func TestRecoveryKeepsValidDeclarations(t *testing.T) {
	decls, errs := parseSource(t, `
func good1() -> Int { return 1; }

func broken( { nonsense

func good2() -> Int { return 2; }

var good3: Int = 3;
`)
	if len(errs) == 0 {
		t.Fatal("expected at least one diagnostic for the malformed declaration")
	}
	if len(decls) != 3 {
		t.Fatalf("expected 3 surviving declarations, got %d", len(decls))
	}

	names := []string{}
	for _, d := range decls {
		switch v := d.(type) {
		case *ast.FunctionDeclaration:
			names = append(names, v.Name.Value)
		case *ast.VariableDeclaration:
			names = append(names, v.Name.Value)
		}
	}
	want := []string{"good1", "good2", "good3"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("declaration %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRecoveryStopsAtStatementKeywords(t *testing.T) {
	tokens, lexErr := lexer.ScanTokens(`
let x 1 while (true) { }
func good() -> Int { return 2; }
`)
	if lexErr != nil {
		t.Fatal(lexErr)
	}
	decls, errs := Parse(tokens)
	if len(errs) < 2 {
		t.Fatalf("expected diagnostics for both the let and the stray while, got %d", len(errs))
	}
	if errs[1].Token.Lexeme != "while" {
		t.Errorf("second diagnostic at %q, want the stray while reported", errs[1].Token.Lexeme)
	}
	if len(decls) != 1 {
		t.Fatalf("expected good to survive, got %d declarations", len(decls))
	}
	fn := decls[0].(*ast.FunctionDeclaration)
	if fn.Name.Value != "good" {
		t.Errorf("surviving declaration = %q, want good", fn.Name.Value)
	}
}

func TestLambdaVersusGrouping(t *testing.T) {
	decls, errs := parseSource(t, `
var f = (a, b) => a + b;
var g = (1 + 2) * 3;
var h = () => 42;
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	fDecl := decls[0].(*ast.VariableDeclaration)
	lambda, ok := fDecl.Initializer.(*ast.LambdaExpression)
	if !ok {
		t.Fatalf("f should be a lambda, got %T", fDecl.Initializer)
	}
	if len(lambda.Parameters) != 2 || lambda.ExprBody == nil {
		t.Error("lambda shape wrong")
	}

	gDecl := decls[1].(*ast.VariableDeclaration)
	if _, ok := gDecl.Initializer.(*ast.BinaryExpression); !ok {
		t.Errorf("g should be a binary expression, got %T", gDecl.Initializer)
	}

	hDecl := decls[2].(*ast.VariableDeclaration)
	empty, ok := hDecl.Initializer.(*ast.LambdaExpression)
	if !ok || len(empty.Parameters) != 0 {
		t.Error("empty-head lambda not recognized")
	}
}

func TestDictionaryVersusSetLiteral(t *testing.T) {
	decls, errs := parseSource(t, `
var d = {"a": 1, "b": 2};
var s = {1, 2, 3};
var e = {};
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	d := decls[0].(*ast.VariableDeclaration)
	dict, ok := d.Initializer.(*ast.DictionaryLiteral)
	if !ok || len(dict.Keys) != 2 {
		t.Errorf("d should be a 2-entry dictionary, got %T", d.Initializer)
	}

	s := decls[1].(*ast.VariableDeclaration)
	set, ok := s.Initializer.(*ast.SetLiteral)
	if !ok || len(set.Elements) != 3 {
		t.Errorf("s should be a 3-element set, got %T", s.Initializer)
	}

	e := decls[2].(*ast.VariableDeclaration)
	if _, ok := e.Initializer.(*ast.DictionaryLiteral); !ok {
		t.Errorf("empty braces should be an empty dictionary, got %T", e.Initializer)
	}
}

func TestCompoundAssignmentDesugars(t *testing.T) {
	decls, errs := parseSource(t, `
func bump() {
	x += 2;
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := decls[0].(*ast.FunctionDeclaration)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	assign, ok := stmt.Expression.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("expected assignment, got %T", stmt.Expression)
	}
	bin, ok := assign.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("compound assignment should desugar to a binary value, got %T", assign.Value)
	}
	if bin.Operator != token.PLUS {
		t.Errorf("desugared operator = %s", bin.Operator)
	}
	if _, ok := bin.Left.(*ast.Identifier); !ok {
		t.Error("desugared left side should re-reference the target")
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		source string
		check  func(t *testing.T, expr ast.Expression)
	}{
		{
			"multiplication binds tighter",
			"var x = 1 + 2 * 3;",
			func(t *testing.T, expr ast.Expression) {
				bin := expr.(*ast.BinaryExpression)
				if bin.Operator != token.PLUS {
					t.Fatalf("top operator = %s", bin.Operator)
				}
				if inner, ok := bin.Right.(*ast.BinaryExpression); !ok || inner.Operator != token.ASTERISK {
					t.Error("right side should be the product")
				}
			},
		},
		{
			"power is right associative",
			"var x = 2 ** 3 ** 2;",
			func(t *testing.T, expr ast.Expression) {
				bin := expr.(*ast.BinaryExpression)
				if inner, ok := bin.Right.(*ast.BinaryExpression); !ok || inner.Operator != token.POWER {
					t.Error("nested power should hang off the right")
				}
			},
		},
		{
			"range spans additive operands",
			"var x = 0..n+1;",
			func(t *testing.T, expr ast.Expression) {
				r := expr.(*ast.RangeExpression)
				if _, ok := r.End.(*ast.BinaryExpression); !ok {
					t.Error("range end should be n+1")
				}
				if r.Inclusive {
					t.Error(".. is exclusive")
				}
			},
		},
		{
			"null coalescing",
			"var x = a ?? b ?? c;",
			func(t *testing.T, expr ast.Expression) {
				bin := expr.(*ast.BinaryExpression)
				if bin.Operator != token.NULL_COALESCE {
					t.Fatalf("top operator = %s", bin.Operator)
				}
			},
		},
		{
			"optional chaining postfix",
			"var x = a?.b.c;",
			func(t *testing.T, expr ast.Expression) {
				outer := expr.(*ast.MemberExpression)
				if outer.Optional {
					t.Error("outer member is a plain '.'")
				}
				inner := outer.Object.(*ast.MemberExpression)
				if !inner.Optional {
					t.Error("inner member should be optional")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, errs := parseSource(t, tt.source)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			tt.check(t, decls[0].(*ast.VariableDeclaration).Initializer)
		})
	}
}

func TestParseTypeAnnotations(t *testing.T) {
	tests := []struct {
		annotation string
		want       string
	}{
		{"Int", "Int"},
		{"Int[]", "Int[]"},
		{"Int?", "Int?"},
		{"Int?[]", "Int?[]"},
		{"Map<String, Int>", "Map<String, Int>"},
		{"Map<String, Set<Int>>", "Map<String, Set<Int>>"},
		{"(Int, String) -> Bool", "(Int, String) -> Bool"},
		{"(Int, String)", "(Int, String)"},
		{"Int | String", "Int | String"},
		{"Readable & Writable", "Readable & Writable"},
		{"Tensor<2x3xFloat>", "Tensor<2x3xFloat>"},
		{"Tensor<?x3xInt>", "Tensor<?x3xInt>"},
		{"Vector<4xFloat>", "Vector<4xFloat>"},
	}

	for _, tt := range tests {
		t.Run(tt.annotation, func(t *testing.T) {
			decls, errs := parseSource(t, "var x: "+tt.annotation+";")
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			decl := decls[0].(*ast.VariableDeclaration)
			if got := decl.TypeAnnotation.TypeString(); got != tt.want {
				t.Errorf("TypeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseForStatements(t *testing.T) {
	decls, errs := parseSource(t, `
func loops() {
	for (i in 0..10) {
		continue;
	}
	for (var i: Int = 0; i < 10; i += 1) {
		break;
	}
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := decls[0].(*ast.FunctionDeclaration)
	if _, ok := fn.Body.Statements[0].(*ast.ForInStatement); !ok {
		t.Errorf("first loop should be for-in, got %T", fn.Body.Statements[0])
	}
	cFor, ok := fn.Body.Statements[1].(*ast.ForStatement)
	if !ok {
		t.Fatalf("second loop should be C-style, got %T", fn.Body.Statements[1])
	}
	if cFor.Initializer == nil || cFor.Condition == nil || cFor.Increment == nil {
		t.Error("all three for clauses should be present")
	}
}

func TestErrorPositions(t *testing.T) {
	tokens, lexErr := lexer.ScanTokens("func bad(a Int) {}")
	if lexErr != nil {
		t.Fatal(lexErr)
	}
	_, errs := Parse(tokens)
	if len(errs) == 0 {
		t.Fatal("expected a diagnostic for the missing ':'")
	}
	if errs[0].Token.Line != 1 || errs[0].Token.Column == 0 {
		t.Errorf("diagnostic should carry a source position, got %d:%d",
			errs[0].Token.Line, errs[0].Token.Column)
	}
}

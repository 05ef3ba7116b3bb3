package prettyprinter

import (
	"testing"

	"github.com/ouro-lang/ouro/internal/ast"
	"github.com/ouro-lang/ouro/internal/lexer"
	"github.com/ouro-lang/ouro/internal/parser"
)

func parseSource(t *testing.T, source string) []ast.Declaration {
	t.Helper()
	tokens, err := lexer.ScanTokens(source)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	decls, errs := parser.Parse(tokens)
	if len(errs) > 0 {
		t.Fatalf("parse: %v", errs[0])
	}
	return decls
}

func parseExpr(t *testing.T, source string) ast.Expression {
	t.Helper()
	decls := parseSource(t, "func f() { "+source+"; }")
	fn := decls[0].(*ast.FunctionDeclaration)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	return stmt.Expression
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"2 ** 3 ** 2", "2 ** 3 ** 2"},
		{"(2 ** 3) ** 2", "(2 ** 3) ** 2"},
		{"a - b - c", "a - b - c"},
		{"a - (b - c)", "a - (b - c)"},
		{"a ?? b ?? c", "a ?? b ?? c"},
		{"!done && ready", "!done && ready"},
		{"a?.b.c", "a?.b.c"},
		{"xs[0] + xs[1]", "xs[0] + xs[1]"},
		{"f(1, 2)", "f(1, 2)"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"(1, \"two\", true)", "(1, \"two\", true)"},
		{"0..n", "0..n"},
		{"1...10", "1...10"},
		{"x = y + 1", "x = y + 1"},
		{"-x * y", "-x * y"},
		{"a <=> b", "a <=> b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := PrintExpression(parseExpr(t, tt.input))
			if got != tt.want {
				t.Errorf("printed %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintFunctionDeclaration(t *testing.T) {
	source := `func add(a: Int, b: Int) -> Int { return a + b; }`
	want := "func add(a: Int, b: Int) -> Int {\n" +
		"    return a + b;\n" +
		"}\n"

	got := Print(parseSource(t, source))
	if got != want {
		t.Errorf("printed:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintConstrainedTypeParameters(t *testing.T) {
	source := `func min<T: Comparable, U>(a: T, b: T) -> T { return a; }`
	want := "func min<T: Comparable, U>(a: T, b: T) -> T {\n" +
		"    return a;\n" +
		"}\n"

	got := Print(parseSource(t, source))
	if got != want {
		t.Errorf("printed:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintClassDeclaration(t *testing.T) {
	source := `abstract class Shape : Printable { var name: String = "shape"; abstract func area() -> Double; }`
	want := "abstract class Shape : Printable {\n" +
		"    var name: String = \"shape\";\n" +
		"    abstract func area() -> Double;\n" +
		"}\n"

	got := Print(parseSource(t, source))
	if got != want {
		t.Errorf("printed:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintEnumDeclaration(t *testing.T) {
	source := `enum Color { Red = 1, Green = 2 }`
	want := "enum Color {\n" +
		"    Red = 1,\n" +
		"    Green = 2\n" +
		"}\n"

	got := Print(parseSource(t, source))
	if got != want {
		t.Errorf("printed:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintTypeAnnotations(t *testing.T) {
	tests := []string{
		"var a: Int[];",
		"var b: Int?;",
		"var c: Map<String, Set<Int>>;",
		"var d: (Int, String) -> Bool;",
		"var e: Int | String;",
		"var f: Tensor<2x3xFloat>;",
	}

	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			got := Print(parseSource(t, source))
			if got != source+"\n" {
				t.Errorf("printed %q, want %q", got, source+"\n")
			}
		})
	}
}

// Printing and reparsing must be a fixed point.
func TestPrintRoundTrip(t *testing.T) {
	source := `interface Greeter {
		func greet(name: String) -> String;
	}
	class Person : Greeter {
		var name: String = "anon";
		init(name: String) { this.name = name; }
		func greet(name: String) -> String { return "hi " + name; }
	}
	func main() -> Int {
		let p = new Person("ana");
		var total = 0;
		for (i in 0..10) {
			if (i % 2 == 0) { total += i; } else { continue; }
		}
		while (total > 100) { total = total - 1; }
		return total;
	}`

	printed := Print(parseSource(t, source))
	reprinted := Print(parseSource(t, printed))
	if printed != reprinted {
		t.Errorf("print is not a fixed point:\nfirst:\n%s\nsecond:\n%s", printed, reprinted)
	}
}

package lexer

import (
	"testing"

	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/token"
)

func scan(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, err := ScanTokens(source)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return tokens
}

func TestOperatorScanning(t *testing.T) {
	source := `= == => -> + += - -= * *= ** **= / /= % %= ! != < <= <=> << > >= >> & && | || ^ ~ ? ?? ?. . .. ...`
	want := []token.TokenType{
		token.ASSIGN, token.EQ, token.FAT_ARROW, token.ARROW,
		token.PLUS, token.PLUS_ASSIGN, token.MINUS, token.MINUS_ASSIGN,
		token.ASTERISK, token.ASTERISK_ASSIGN, token.POWER, token.POWER_ASSIGN,
		token.SLASH, token.SLASH_ASSIGN, token.PERCENT, token.PERCENT_ASSIGN,
		token.BANG, token.NOT_EQ,
		token.LT, token.LTE, token.SPACESHIP, token.LSHIFT,
		token.GT, token.GTE, token.RSHIFT,
		token.AMPERSAND, token.AND, token.PIPE, token.OR,
		token.CARET, token.TILDE,
		token.QUESTION, token.NULL_COALESCE, token.OPTIONAL_CHAIN,
		token.DOT, token.DOT_DOT, token.ELLIPSIS,
		token.EOF,
	}

	tokens := scan(t, source)
	if len(tokens) != len(want) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(want))
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d = %s, want %s", i, tokens[i].Type, tt)
		}
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		input    string
		wantType token.TokenType
		literal  interface{}
	}{
		{"42", token.INT, int64(42)},
		{"0", token.INT, int64(0)},
		{"0x1A", token.INT, int64(26)},
		{"0XFF", token.INT, int64(255)},
		{"0b101", token.INT, int64(5)},
		{"017", token.INT, int64(15)},
		{"3.14", token.FLOAT, 3.14},
		{"1.5e2", token.FLOAT, 150.0},
		{"2e3", token.FLOAT, 2000.0},
		{"1.5e-1", token.FLOAT, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := scan(t, tt.input)
			if len(tokens) != 2 {
				t.Fatalf("token count = %d, want 2", len(tokens))
			}
			tok := tokens[0]
			if tok.Type != tt.wantType {
				t.Errorf("type = %s, want %s", tok.Type, tt.wantType)
			}
			if tok.Literal != tt.literal {
				t.Errorf("literal = %v, want %v", tok.Literal, tt.literal)
			}
			if tok.Lexeme != tt.input {
				t.Errorf("lexeme = %q, want %q", tok.Lexeme, tt.input)
			}
		})
	}
}

func TestNumericLiteralErrors(t *testing.T) {
	for _, input := range []string{"0x", "0b", "0X;"} {
		t.Run(input, func(t *testing.T) {
			_, err := ScanTokens(input)
			if err == nil {
				t.Fatalf("expected an error for %q", input)
			}
			if err.Code != diagnostics.ErrL006 {
				t.Errorf("code = %s, want L006", err.Code)
			}
		})
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `"hello"`, "hello"},
		{"empty", `""`, ""},
		{"escapes", `"a\tb\nc"`, "a\tb\nc"},
		{"escaped quote", `"say \"hi\""`, `say "hi"`},
		{"escaped backslash", `"a\\b"`, `a\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := scan(t, tt.input)
			tok := tokens[0]
			if tok.Type != token.STRING {
				t.Fatalf("type = %s, want STRING", tok.Type)
			}
			if tok.Literal != tt.want {
				t.Errorf("literal = %q, want %q", tok.Literal, tt.want)
			}
		})
	}
}

func TestStringLiteralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.Code
	}{
		{"unterminated", `"abc`, diagnostics.ErrL002},
		{"newline inside", "\"ab\ncd\"", diagnostics.ErrL002},
		{"bad escape", `"a\qb"`, diagnostics.ErrL005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScanTokens(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s", err.Code, tt.code)
			}
		})
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `'a'`, "a"},
		{"newline escape", `'\n'`, "\n"},
		{"quote escape", `'\''`, "'"},
		{"nul escape", `'\0'`, "\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := scan(t, tt.input)
			tok := tokens[0]
			if tok.Type != token.CHAR {
				t.Fatalf("type = %s, want CHAR", tok.Type)
			}
			if tok.Literal != tt.want {
				t.Errorf("literal = %q, want %q", tok.Literal, tt.want)
			}
		})
	}
}

func TestCharLiteralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.Code
	}{
		{"empty", `''`, diagnostics.ErrL007},
		{"unterminated", `'a`, diagnostics.ErrL003},
		{"two chars", `'ab'`, diagnostics.ErrL003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScanTokens(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s", err.Code, tt.code)
			}
		})
	}
}

func TestComments(t *testing.T) {
	t.Run("line comment", func(t *testing.T) {
		tokens := scan(t, "1 // the rest is ignored\n2")
		if len(tokens) != 3 {
			t.Fatalf("token count = %d, want 3", len(tokens))
		}
		if tokens[0].Literal != int64(1) || tokens[1].Literal != int64(2) {
			t.Errorf("unexpected tokens %v %v", tokens[0], tokens[1])
		}
	})

	t.Run("nested block comment", func(t *testing.T) {
		tokens := scan(t, "1 /* outer /* inner */ still outer */ 2")
		if len(tokens) != 3 {
			t.Fatalf("token count = %d, want 3", len(tokens))
		}
		if tokens[1].Literal != int64(2) {
			t.Errorf("second token = %v, want 2", tokens[1])
		}
	})

	t.Run("unterminated block comment", func(t *testing.T) {
		_, err := ScanTokens("1 /* never closed")
		if err == nil {
			t.Fatal("expected an error")
		}
		if err.Code != diagnostics.ErrL004 {
			t.Errorf("code = %s, want L004", err.Code)
		}
	})
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  token.TokenType
	}{
		{"func", token.FUNC},
		{"class", token.CLASS},
		{"struct", token.STRUCT},
		{"enum", token.ENUM},
		{"interface", token.INTERFACE},
		{"var", token.VAR},
		{"let", token.LET},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"for", token.FOR},
		{"in", token.IN},
		{"return", token.RETURN},
		{"break", token.BREAK},
		{"continue", token.CONTINUE},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"nil", token.NIL},
		{"new", token.NEW},
		{"this", token.THIS},
		{"super", token.SUPER},
		{"init", token.INIT},
		{"abstract", token.ABSTRACT},
		{"sealed", token.SEALED},
		{"static", token.STATIC},
		{"override", token.OVERRIDE},
		{"async", token.ASYNC},
		{"funcy", token.IDENT},
		{"classes", token.IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := scan(t, tt.input)
			if tokens[0].Type != tt.want {
				t.Errorf("type = %s, want %s", tokens[0].Type, tt.want)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	source := "var x = 1;\n  x = 2;"
	tokens := scan(t, source)

	type pos struct{ line, col int }
	want := []pos{
		{1, 1},  // var
		{1, 5},  // x
		{1, 7},  // =
		{1, 9},  // 1
		{1, 10}, // ;
		{2, 3},  // x
		{2, 5},  // =
		{2, 7},  // 2
		{2, 8},  // ;
	}

	for i, p := range want {
		if tokens[i].Line != p.line || tokens[i].Column != p.col {
			t.Errorf("token %d (%s) at %d:%d, want %d:%d",
				i, tokens[i].Lexeme, tokens[i].Line, tokens[i].Column, p.line, p.col)
		}
	}
}

func TestLexemeRoundTrip(t *testing.T) {
	source := `func min<T: Comparable>(a: T, b: T) -> T {
	let hex = 0x1A; var f = 1.5e-2; var o = 017;
	let s = "say \"hi\"\n"; let c = '\n';
	if (a <=> b <= 0 && a ?. length ?? 0 .. 10 >= 1 >> 2) { return a; }
	return b;
}`
	for _, tok := range scan(t, source) {
		if tok.Type == token.EOF {
			continue
		}
		relexed, err := ScanTokens(tok.Lexeme)
		if err != nil {
			t.Errorf("lexeme %q does not re-lex: %v", tok.Lexeme, err)
			continue
		}
		if len(relexed) != 2 {
			t.Errorf("lexeme %q re-lexed to %d tokens, want 1", tok.Lexeme, len(relexed)-1)
			continue
		}
		if relexed[0].Type != tok.Type {
			t.Errorf("lexeme %q re-lexed as %s, want %s", tok.Lexeme, relexed[0].Type, tok.Type)
		}
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	tokens := scan(t, "größe = 1;")
	if tokens[0].Type != token.IDENT || tokens[0].Lexeme != "größe" {
		t.Errorf("token = %v, want identifier größe", tokens[0])
	}
}

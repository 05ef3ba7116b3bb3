package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProject_Valid(t *testing.T) {
	yaml := `
name: demo
source_dirs:
  - src
  - lib
strict: true
max_errors: 50
`
	p, err := ParseProject([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "demo" {
		t.Errorf("name = %q, want demo", p.Name)
	}
	if len(p.SourceDirs) != 2 || p.SourceDirs[0] != "src" || p.SourceDirs[1] != "lib" {
		t.Errorf("source_dirs = %v, want [src lib]", p.SourceDirs)
	}
	if !p.Strict {
		t.Error("expected strict to be true")
	}
	if p.MaxErrors != 50 {
		t.Errorf("max_errors = %d, want 50", p.MaxErrors)
	}
}

func TestParseProject_Defaults(t *testing.T) {
	p, err := ParseProject([]byte("name: empty\n"), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.SourceDirs) != 1 || p.SourceDirs[0] != "." {
		t.Errorf("source_dirs = %v, want [.]", p.SourceDirs)
	}
	if p.Strict {
		t.Error("expected strict to default to false")
	}
}

func TestParseProject_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative max_errors", "max_errors: -1\n"},
		{"empty source dir", "source_dirs: [\"\"]\n"},
		{"absolute source dir", "source_dirs: [/tmp/src]\n"},
		{"malformed yaml", "source_dirs: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseProject([]byte(tt.yaml), "test.yaml"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFindProject(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "a", "ouro.yaml")
	if err := os.WriteFile(cfgPath, []byte("name: demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindProject(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("found = %q, want %q", found, cfgPath)
	}
}

func TestFindProject_NotFound(t *testing.T) {
	found, err := FindProject(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Errorf("found = %q, want empty", found)
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.ouro", true},
		{"lib/util.ou", true},
		{"notes.txt", false},
		{"ouro", false},
	}

	for _, tt := range tests {
		if got := IsSourceFile(tt.path); got != tt.want {
			t.Errorf("IsSourceFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

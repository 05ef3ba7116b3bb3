// Package config holds the language constants and the ouro.yaml project file.
//
// A project file is optional: the CLI and the language server fall back to
// defaults when none is found. When present it controls which directories are
// scanned for sources and how strict the checker is.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project represents the top-level ouro.yaml configuration.
type Project struct {
	// Name is the project name, used in diagnostics output headers.
	Name string `yaml:"name,omitempty"`

	// SourceDirs lists the directories scanned for source files, relative to
	// the config file. Defaults to ["."].
	SourceDirs []string `yaml:"source_dirs,omitempty"`

	// Strict enables strict checking: implicit numeric widening in
	// assignments is reported instead of accepted.
	Strict bool `yaml:"strict,omitempty"`

	// MaxErrors caps the diagnostics reported per file. Zero means no cap.
	MaxErrors int `yaml:"max_errors,omitempty"`
}

// LoadProject reads and parses an ouro.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// ParseProject parses ouro.yaml content from bytes.
// The path argument is used only for error messages.
func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.setDefaults()
	return &p, nil
}

// FindProject searches for ouro.yaml starting from dir and walking up to
// parent directories. Returns the path and nil error if found, or an empty
// string and nil error if not found.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{"ouro.yaml", "ouro.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Default returns the configuration used when no project file exists.
func Default() *Project {
	p := &Project{}
	p.setDefaults()
	return p
}

func (p *Project) validate(path string) error {
	if p.MaxErrors < 0 {
		return fmt.Errorf("%s: max_errors must not be negative", path)
	}
	for i, dir := range p.SourceDirs {
		if dir == "" {
			return fmt.Errorf("%s: source_dirs[%d] is empty", path, i)
		}
		if filepath.IsAbs(dir) {
			return fmt.Errorf("%s: source_dirs[%d] must be relative, got %q", path, i, dir)
		}
	}
	return nil
}

func (p *Project) setDefaults() {
	if len(p.SourceDirs) == 0 {
		p.SourceDirs = []string{"."}
	}
}

// IsSourceFile reports whether path carries a recognized source extension.
func IsSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

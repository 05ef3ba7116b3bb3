package config

const SourceFileExt = ".ouro"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".ouro", ".ou"}

// Well-known member names the checker recognizes on builtin containers.
const (
	LengthMemberName = "length"
	CountMemberName  = "count"
	InitMethodName   = "init"
)

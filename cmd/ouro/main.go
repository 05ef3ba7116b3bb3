package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/repr"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/ouro-lang/ouro/internal/analyzer"
	"github.com/ouro-lang/ouro/internal/config"
	"github.com/ouro-lang/ouro/internal/diagnostics"
	"github.com/ouro-lang/ouro/internal/lexer"
	"github.com/ouro-lang/ouro/internal/parser"
	"github.com/ouro-lang/ouro/internal/pipeline"
	"github.com/ouro-lang/ouro/internal/prettyprinter"
	"github.com/ouro-lang/ouro/internal/typesystem"
)

func main() {
	app := &cli.App{
		Name:  "ouro",
		Usage: "ouro compiler front end",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "type-check source files and report diagnostics",
				ArgsUsage: "[files...]",
				Action:    runCheck,
			},
			{
				Name:      "tokens",
				Usage:     "dump the token stream of a file",
				ArgsUsage: "<file>",
				Action:    runTokens,
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "print the tree back as formatted source",
					},
				},
				Action: runAST,
			},
			{
				Name:      "types",
				Usage:     "lower a type spelling to its canonical and MLIR forms",
				ArgsUsage: "<type>",
				Action:    runTypes,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadProject locates the nearest project file above the working directory.
// Falls back to defaults when there is none.
func loadProject() (*config.Project, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	if path, err := config.FindProject(cwd); err == nil && path != "" {
		if loaded, err := config.LoadProject(path); err == nil {
			return loaded, filepath.Dir(path), nil
		}
	}
	return config.Default(), cwd, nil
}

// sourceFiles resolves the check targets: explicit arguments win, otherwise
// the project file's source directories are scanned.
func sourceFiles(c *cli.Context, project *config.Project, root string) ([]string, error) {
	if c.Args().Len() > 0 {
		return c.Args().Slice(), nil
	}

	var files []string
	for _, dir := range project.SourceDirs {
		err := filepath.Walk(filepath.Join(root, dir), func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && config.IsSourceFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", config.SourceFileExt)
	}
	return files, nil
}

func runFile(path string, project *config.Project) (*pipeline.Context, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ctx := pipeline.NewContext(path, string(source))
	ctx.MaxErrors = project.MaxErrors
	chain := pipeline.New(
		lexer.NewProcessor(),
		parser.NewProcessor(),
		analyzer.NewProcessorWith(analyzer.Options{Strict: project.Strict}),
	)
	return chain.Run(ctx), nil
}

func runCheck(c *cli.Context) error {
	project, root, err := loadProject()
	if err != nil {
		return err
	}
	files, err := sourceFiles(c, project, root)
	if err != nil {
		return err
	}

	failed := false
	for _, path := range files {
		ctx, err := runFile(path, project)
		if err != nil {
			return err
		}
		for _, diag := range ctx.Errors {
			printDiagnostic(diag)
		}
		if ctx.HasErrors() {
			failed = true
		}
	}
	if failed {
		return cli.Exit("", 1)
	}
	return nil
}

func runTokens(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: ouro tokens <file>")
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tokens, lexErr := lexer.ScanTokens(string(source))
	if lexErr != nil {
		lexErr.File = path
		return lexErr
	}
	for _, tok := range tokens {
		fmt.Printf("%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Lexeme)
	}
	return nil
}

func runAST(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: ouro ast <file>")
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tokens, lexErr := lexer.ScanTokens(string(source))
	if lexErr != nil {
		lexErr.File = path
		return lexErr
	}
	decls, parseErrs := parser.Parse(tokens)
	for _, diag := range parseErrs {
		diag.File = path
		printDiagnostic(diag)
	}

	if c.Bool("pretty") {
		fmt.Print(prettyprinter.Print(decls))
	} else {
		repr.Println(decls, repr.Indent("  "), repr.OmitEmpty(true))
	}
	if len(parseErrs) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func runTypes(c *cli.Context) error {
	spelling := c.Args().First()
	if spelling == "" {
		return fmt.Errorf("usage: ouro types <type>")
	}
	t := typesystem.Parse(spelling)
	fmt.Printf("type: %s\n", t.String())
	fmt.Printf("mlir: %s\n", t.MLIR())
	fmt.Printf("info: %s\n", typesystem.Describe(t))
	return nil
}

func printDiagnostic(diag *diagnostics.DiagnosticError) {
	if useColor() {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", diag.Error())
		return
	}
	fmt.Fprintln(os.Stderr, diag.Error())
}

func useColor() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

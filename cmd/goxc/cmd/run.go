package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/goxlang/internal/ast"
	"github.com/cwbudde/goxlang/internal/diagnostics"
	"github.com/cwbudde/goxlang/internal/ir"
	"github.com/cwbudde/goxlang/internal/lexer"
	"github.com/cwbudde/goxlang/internal/parser"
	"github.com/cwbudde/goxlang/internal/semantic"
	"github.com/cwbudde/goxlang/internal/vm"
	"github.com/cwbudde/goxlang/pkg/token"
	"github.com/spf13/cobra"
)

var dumpAST bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Lex, parse, check, lower, and execute a GoxLang file",
	Long: `Execute a GoxLang program: lex, parse, run semantic analysis, lower to
IR, and interpret it on the stack machine.

Exit codes: 0 success, 1 usage/IO or semantic error, 65 lexical errors,
66 syntactic errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed statements before execution")
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return exitCode(1, fmt.Errorf("failed to read file %s: %w", filename, err))
	}
	input := string(content)

	stmts, exitErr := lexAndParse(input, filename, colorDiag)
	if exitErr != nil {
		return exitErr
	}

	if dumpAST {
		for _, stmt := range stmts {
			dumpStatement(stmt, 0)
		}
	}

	checker := semantic.NewChecker()
	_, diags := checker.Check(stmts)
	if len(diags) > 0 {
		reportCompilerErrors(semanticDiagnosticErrors(diags, input, filename), colorDiag)
		return exitCode(1, fmt.Errorf("semantic analysis failed with %d error(s)", len(diags)))
	}

	module := ir.NewGenerator().Generate(stmts)

	if verbose {
		fmt.Fprintf(os.Stderr, "Executing %s (%d globals, %d functions)\n",
			filename, len(module.GlobalOrder), len(module.FunctionOrder))
	}

	m := vm.New(module, vm.WithOutput(os.Stdout))
	if _, err := m.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Runtime error:", err)
		return exitCode(1, fmt.Errorf("execution failed"))
	}

	return nil
}

// lexAndParse runs the parser (which pulls tokens from a single lexer
// instance as it goes) over input and reports diagnostics through
// reportCompilerError, returning the exit-code error the caller should
// propagate (nil on success).
//
// Lexical errors take priority over a resulting parse error: a lexer error
// can hand the parser a garbage token that then trips a spurious syntax
// error, so a non-empty lexer error list always wins the 65-vs-66 exit code.
func lexAndParse(input, filename string, color bool) ([]ast.Statement, error) {
	l := lexer.New(input, lexer.WithFile(filename))
	p := parser.New(l)
	stmts, perr := p.Parse()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		errs := make([]*diagnostics.CompilerError, len(lexErrs))
		for i, e := range lexErrs {
			errs[i] = diagnostics.NewCompilerError(e.Pos, e.Message, input, filename)
		}
		reportCompilerErrors(errs, color)
		return nil, exitCode(65, fmt.Errorf("lexical analysis failed with %d error(s)", len(lexErrs)))
	}

	if perr != nil {
		pe := perr.(*parser.Error)
		reportCompilerError(pe.Pos, pe.Message, input, filename, color)
		return nil, exitCode(66, fmt.Errorf("parsing failed"))
	}

	return stmts, nil
}

func reportCompilerError(pos token.Position, msg, source, file string, color bool) {
	ce := diagnostics.NewCompilerError(pos, msg, source, file)
	fmt.Fprintln(os.Stderr, ce.Format(color))
}

// semanticDiagnosticErrors converts checker diagnostics into CompilerErrors
// suitable for reportCompilerErrors.
func semanticDiagnosticErrors(diags []semantic.Diagnostic, source, file string) []*diagnostics.CompilerError {
	errs := make([]*diagnostics.CompilerError, len(diags))
	for i, d := range diags {
		errs[i] = diagnostics.NewCompilerError(d.Pos, d.Message, source, file)
	}
	return errs
}

// reportCompilerErrors prints errs through FormatErrors, which collapses to
// a single CompilerError.Format(color) when there is only one and adds the
// "Compilation failed with N error(s)" / "[Error i of N]" framing otherwise.
func reportCompilerErrors(errs []*diagnostics.CompilerError, color bool) {
	fmt.Fprintln(os.Stderr, diagnostics.FormatErrors(errs, color))
}

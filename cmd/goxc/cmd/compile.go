package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/goxlang/internal/ir"
	"github.com/cwbudde/goxlang/internal/semantic"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a GoxLang file and print its disassembled IR",
	Long: `Run the pipeline through the IR generator and print a disassembly of
the generated module: one instruction per line, grouped by function.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(_ *cobra.Command, args []string) error {
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

	checker := semantic.NewChecker()
	_, diags := checker.Check(stmts)
	if len(diags) > 0 {
		reportCompilerErrors(semanticDiagnosticErrors(diags, input, filename), colorDiag)
		return exitCode(1, fmt.Errorf("semantic analysis failed with %d error(s)", len(diags)))
	}

	module := ir.NewGenerator().Generate(stmts)
	disassemble(module)
	return nil
}

func disassemble(module *ir.Module) {
	for _, name := range module.FunctionOrder {
		fn := module.Functions[name]
		fmt.Printf("func %s:\n", fn.Name)
		if fn.Imported {
			fmt.Println("  <imported, no body>")
			continue
		}
		for i, instr := range fn.Code {
			fmt.Printf("  %4d  %s\n", i, instr)
		}
	}
}

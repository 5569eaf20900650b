package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/goxlang/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a GoxLang file and print the resulting tokens",
	Long: `Tokenize a GoxLang source file and print one token per line, for
debugging the lexer.

Example:
  goxc lex script.gox`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return exitCode(1, fmt.Errorf("failed to read file %s: %w", filename, err))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Tokenizing: %s (%d bytes)\n", filename, len(content))
	}

	toks, errs := lexer.Tokenize(string(content), lexer.WithFile(filename))
	for _, tok := range toks {
		if tok.Literal == "" {
			fmt.Printf("%-12s %s\n", tok.Type, tok.Pos)
		} else {
			fmt.Printf("%-12s %-20q %s\n", tok.Type, tok.Literal, tok.Pos)
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.String())
		}
		return exitCode(65, fmt.Errorf("lexical analysis failed with %d error(s)", len(errs)))
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose   bool
	colorDiag bool
)

var rootCmd = &cobra.Command{
	Use:   "goxc",
	Short: "GoxLang compiler and interpreter",
	Long: `goxc is the reference toolchain for GoxLang: a lexer, parser,
semantic analyzer, IR generator, and stack-machine interpreter for the
small C-like language described by its specification.`,
	Version: Version,
}

// Execute runs the root command and returns the exit code the process
// should use: 0 success, 1 usage/IO error, 65 lexical errors, 66 syntactic
// errors.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if ce, ok := err.(*exitCodeError); ok {
			return ce.code
		}
		return 1
	}
	return 0
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&colorDiag, "color", true, "colorize diagnostic output")
}

// exitCodeError carries a specific process exit code through cobra's
// RunE error-return plumbing, which otherwise only distinguishes
// success from failure.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }

func exitCode(code int, err error) error {
	return &exitCodeError{code: code, err: err}
}

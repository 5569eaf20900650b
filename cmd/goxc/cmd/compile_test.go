package cmd

import (
	"testing"

	"github.com/cwbudde/goxlang/internal/ir"
	"github.com/cwbudde/goxlang/internal/lexer"
	"github.com/cwbudde/goxlang/internal/parser"
	"github.com/cwbudde/goxlang/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCompilePrintsDisassembly(t *testing.T) {
	path := writeScript(t, `var i int = 0; while i<3 { print i; i = i+1; }`)

	output := captureStdout(t, func() {
		require.NoError(t, runCompile(compileCmd, []string{path}))
	})

	for _, want := range []string{"func main:", "LOOP", "ENDLOOP", "RET"} {
		assert.Contains(t, output, want)
	}
}

func TestRunCompileReportsSemanticErrorExitCode(t *testing.T) {
	path := writeScript(t, `var x int = 1.5;`)
	requireExitCode(t, runCompile(compileCmd, []string{path}), 1)
}

// TestDisassembleSnapshot pins the disassembly format for a small fibonacci
// program against a go-snaps snapshot, which go-snaps writes under
// __snapshots__ on the first run when none exists yet.
func TestDisassembleSnapshot(t *testing.T) {
	src := `func f(n int) int { if n<2 { return n; } else {} return f(n-1)+f(n-2); } print f(5);`
	l := lexer.New(src)
	p := parser.New(l)
	stmts, err := p.Parse()
	require.NoError(t, err)

	c := semantic.NewChecker()
	_, diags := c.Check(stmts)
	require.Empty(t, diags)

	module := ir.NewGenerator().Generate(stmts)

	output := captureStdout(t, func() { disassemble(module) })
	snaps.MatchSnapshot(t, output)
}

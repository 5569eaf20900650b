package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.gox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func requireExitCode(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	ce, ok := err.(*exitCodeError)
	require.Truef(t, ok, "expected *exitCodeError, got %T", err)
	assert.Equal(t, want, ce.code)
}

func TestRunScriptPrintsArithmeticResult(t *testing.T) {
	path := writeScript(t, `print 4 + 5;`)

	output := captureStdout(t, func() {
		require.NoError(t, runScript(runCmd, []string{path}))
	})

	assert.Contains(t, output, "9")
}

func TestRunScriptReportsLexicalErrorExitCode(t *testing.T) {
	path := writeScript(t, `print 1 $ 2;`)
	requireExitCode(t, runScript(runCmd, []string{path}), 65)
}

func TestRunScriptReportsSyntaxErrorExitCode(t *testing.T) {
	path := writeScript(t, `print ;`)
	requireExitCode(t, runScript(runCmd, []string{path}), 66)
}

func TestRunScriptMissingFileReturnsExitCodeOne(t *testing.T) {
	err := runScript(runCmd, []string{filepath.Join(t.TempDir(), "missing.gox")})
	requireExitCode(t, err, 1)
}

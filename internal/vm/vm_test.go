package vm_test

import (
	"bytes"
	"testing"

	"github.com/cwbudde/goxlang/internal/ir"
	"github.com/cwbudde/goxlang/internal/lexer"
	"github.com/cwbudde/goxlang/internal/parser"
	"github.com/cwbudde/goxlang/internal/semantic"
	"github.com/cwbudde/goxlang/internal/vm"
)

// run lexes, parses, checks and generates src, then executes it, returning
// whatever was written to stdout. It fails the test on any parse error or
// semantic diagnostic, mirroring the driver's short-circuit-on-failure
// propagation policy.
func run(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	stmts, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c := semantic.NewChecker()
	_, diags := c.Check(stmts)
	if len(diags) != 0 {
		t.Fatalf("unexpected semantic diagnostics: %v", diags)
	}
	mod := ir.NewGenerator().Generate(stmts)

	var out bytes.Buffer
	m := vm.New(mod, vm.WithOutput(&out))
	if _, err := m.Run(); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out.String()
}

// TestEvaluationProperty exercises five concrete I/O scenarios that do not
// involve a diagnostic.
func TestEvaluationProperty(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic", `print 2+3*4-5;`, "9\n"},
		{"reassignment", `var x int = 0; x = 1; x = x+2; print x;`, "3\n"},
		{"fibonacci", `func f(n int) int { if n<2 { return n; } else {} return f(n-1)+f(n-2); } print f(7);`, "13\n"},
		{"while loop", `var i int = 0; while i<3 { print i; i = i+1; }`, "0\n1\n2\n"},
		{"char literal", `print 'A';`, "A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := run(t, tc.src)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBreakExitsLoopImmediately(t *testing.T) {
	got := run(t, `var i int = 0; while i<10 { if i==3 { break; } print i; i = i+1; }`)
	if got != "0\n1\n2\n" {
		t.Fatalf("got %q, want %q", got, "0\n1\n2\n")
	}
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	got := run(t, `
		var i int = 0;
		while i<5 {
			i = i+1;
			if i==3 { continue; }
			print i;
		}
	`)
	if got != "1\n2\n4\n5\n" {
		t.Fatalf("got %q, want %q", got, "1\n2\n4\n5\n")
	}
}

func TestDivisionByZeroRaisesRuntimeError(t *testing.T) {
	l := lexer.New(`var z int = 0; print 1/z;`)
	p := parser.New(l)
	stmts, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c := semantic.NewChecker()
	_, diags := c.Check(stmts)
	if len(diags) != 0 {
		t.Fatalf("unexpected semantic diagnostics: %v", diags)
	}
	mod := ir.NewGenerator().Generate(stmts)

	var out bytes.Buffer
	m := vm.New(mod, vm.WithOutput(&out))
	_, err = m.Run()
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
	if _, ok := err.(*vm.RuntimeError); !ok {
		t.Fatalf("expected *vm.RuntimeError, got %T", err)
	}
}

// TestGrowExtendsAddressSpace confirms the corrected GROW semantics: pop n,
// extend the high-water mark by n, and push the new upper bound (not the
// previous one, and not addr+1).
func TestGrowExtendsAddressSpace(t *testing.T) {
	got := run(t, `
		var a int = ^4;
		var b int = ^4;
		print a;
		print b;
	`)
	if got != "4\n8\n" {
		t.Fatalf("got %q, want %q", got, "4\n8\n")
	}
}

func TestMemoryPeekPokeRoundTrip(t *testing.T) {
	got := run(t, `
		var base int = ^8;
		`+"`"+`base = 42;
		print `+"`"+`base;
	`)
	if got != "42\n" {
		t.Fatalf("got %q, want %q", got, "42\n")
	}
}

func TestUnsetMemoryReadsZero(t *testing.T) {
	got := run(t, "print `100;")
	if got != "0\n" {
		t.Fatalf("got %q, want %q", got, "0\n")
	}
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/goxlang/internal/ast"
	"github.com/cwbudde/goxlang/internal/lexer"
	"github.com/cwbudde/goxlang/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a GoxLang file and print a debug dump of the AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return exitCode(1, fmt.Errorf("failed to read file %s: %w", filename, err))
	}

	l := lexer.New(string(content), lexer.WithFile(filename))
	p := parser.New(l)
	stmts, perr := p.Parse()
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr.Error())
		return exitCode(66, fmt.Errorf("parsing failed"))
	}

	for _, stmt := range stmts {
		dumpStatement(stmt, 0)
	}
	return nil
}

func indent(n int) string { return strings.Repeat("  ", n) }

func dumpStatement(stmt ast.Statement, depth int) {
	switch n := stmt.(type) {
	case *ast.Variable:
		kind := "var"
		if n.IsConst {
			kind = "const"
		}
		fmt.Printf("%s%s %s %s\n", indent(depth), kind, n.Name, n.Type)
		if n.Init != nil {
			dumpExpression(n.Init, depth+1)
		}
	case *ast.Assignment:
		fmt.Printf("%sAssignment\n", indent(depth))
		dumpExpression(n.Target, depth+1)
		dumpExpression(n.Value, depth+1)
	case *ast.Print:
		fmt.Printf("%sPrint\n", indent(depth))
		dumpExpression(n.Value, depth+1)
	case *ast.If:
		fmt.Printf("%sIf\n", indent(depth))
		dumpExpression(n.Condition, depth+1)
		fmt.Printf("%sThen:\n", indent(depth))
		for _, s := range n.Then {
			dumpStatement(s, depth+1)
		}
		fmt.Printf("%sElse:\n", indent(depth))
		for _, s := range n.Else {
			dumpStatement(s, depth+1)
		}
	case *ast.While:
		fmt.Printf("%sWhile\n", indent(depth))
		dumpExpression(n.Condition, depth+1)
		for _, s := range n.Body {
			dumpStatement(s, depth+1)
		}
	case *ast.Break:
		fmt.Printf("%sBreak\n", indent(depth))
	case *ast.Continue:
		fmt.Printf("%sContinue\n", indent(depth))
	case *ast.Return:
		fmt.Printf("%sReturn\n", indent(depth))
		if n.Value != nil {
			dumpExpression(n.Value, depth+1)
		}
	case *ast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement\n", indent(depth))
		dumpExpression(n.Value, depth+1)
	case *ast.Function:
		kind := "func"
		if n.Imported {
			kind = "import func"
		}
		fmt.Printf("%s%s %s(...) %s\n", indent(depth), kind, n.Name, n.ReturnType)
		for _, param := range n.Params {
			fmt.Printf("%sParam %s %s\n", indent(depth+1), param.Name, param.Type)
		}
		for _, s := range n.Body {
			dumpStatement(s, depth+1)
		}
	default:
		fmt.Printf("%s%T: %+v\n", indent(depth), stmt, stmt)
	}
}

func dumpExpression(expr ast.Expression, depth int) {
	switch n := expr.(type) {
	case *ast.Integer:
		fmt.Printf("%sInteger: %d\n", indent(depth), n.Value)
	case *ast.Float:
		fmt.Printf("%sFloat: %g\n", indent(depth), n.Value)
	case *ast.Char:
		fmt.Printf("%sChar: %q\n", indent(depth), n.Value)
	case *ast.Bool:
		fmt.Printf("%sBool: %v\n", indent(depth), n.Value)
	case *ast.BinOp:
		fmt.Printf("%sBinOp (%s)\n", indent(depth), n.Op)
		dumpExpression(n.Left, depth+1)
		dumpExpression(n.Right, depth+1)
	case *ast.UnaryOp:
		fmt.Printf("%sUnaryOp (%s)\n", indent(depth), n.Op)
		dumpExpression(n.Operand, depth+1)
	case *ast.TypeCast:
		fmt.Printf("%sTypeCast -> %s\n", indent(depth), n.Target)
		dumpExpression(n.Value, depth+1)
	case *ast.NamedLocation:
		fmt.Printf("%sNamedLocation: %s\n", indent(depth), n.Name)
	case *ast.MemoryLocation:
		fmt.Printf("%sMemoryLocation\n", indent(depth))
		dumpExpression(n.Address, depth+1)
	case *ast.FunctionCall:
		fmt.Printf("%sFunctionCall: %s\n", indent(depth), n.Name)
		for _, arg := range n.Args {
			dumpExpression(arg, depth+1)
		}
	default:
		fmt.Printf("%s%T: %+v\n", indent(depth), expr, expr)
	}
}

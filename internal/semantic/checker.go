// Package semantic implements GoxLang's two-pass semantic checker: name
// resolution, type checking, and per-expression type annotation.
//
// Grounded on CWBudde/go-dws's internal/semantic/analyzer.go dispatch shape
// and on the Python reference's semantic/check.py, whose two-pass
// Checker.check classmethod this package's Checker.Check mirrors almost
// line for line in structure (hoist Functions/Variables, then visit
// everything else).
package semantic

import (
	"fmt"

	"github.com/cwbudde/goxlang/internal/ast"
	"github.com/cwbudde/goxlang/internal/types"
	"github.com/cwbudde/goxlang/pkg/token"
)

// Diagnostic is a single semantic error, positioned in source.
type Diagnostic struct {
	Message string
	Pos     token.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Checker performs GoxLang's two-pass semantic analysis: name resolution
// and hoisting in pass 1, type checking and annotation in pass 2.
type Checker struct {
	diagnostics     []Diagnostic
	currentFunction *ast.Function
	loopDepth       int
}

// NewChecker constructs an empty Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Diagnostics returns every diagnostic recorded during Check, in detection
// order.
func (c *Checker) Diagnostics() []Diagnostic { return c.diagnostics }

func (c *Checker) errorf(pos token.Position, format string, args ...any) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Check runs both passes over program's top-level statements, returning the
// accumulated diagnostics (empty if the program is well-formed) and the
// global scope.
func (c *Checker) Check(program []ast.Statement) (*SymbolTable, []Diagnostic) {
	global := NewSymbolTable()

	// Pass 1 (hoisting): register every top-level Function and Variable so
	// forward references type-check.
	for _, stmt := range program {
		switch n := stmt.(type) {
		case *ast.Function:
			if global.DefinedLocally(n.Name) {
				c.errorf(n.Position, "function '%s' already declared", n.Name)
				continue
			}
			global.Define(n.Name, n)
		case *ast.Variable:
			if global.DefinedLocally(n.Name) {
				c.errorf(n.Position, "variable '%s' already declared", n.Name)
				continue
			}
			global.Define(n.Name, n)
		}
	}

	// Pass 2 (validation): visit every top-level item, including the
	// Functions/Variables registered above (so their bodies/initializers
	// are actually checked).
	for _, stmt := range program {
		c.visitStatement(stmt, global)
	}

	return global, c.diagnostics
}

func (c *Checker) visitStatement(stmt ast.Statement, env *SymbolTable) {
	switch n := stmt.(type) {
	case *ast.Assignment:
		c.visitAssignment(n, env)
	case *ast.Print:
		c.visitExpression(n.Value, env)
	case *ast.If:
		c.visitIf(n, env)
	case *ast.While:
		c.visitWhile(n, env)
	case *ast.Break:
		if c.loopDepth <= 0 {
			c.errorf(n.Position, "'break' outside a loop")
		}
	case *ast.Continue:
		if c.loopDepth <= 0 {
			c.errorf(n.Position, "'continue' outside a loop")
		}
	case *ast.Return:
		c.visitReturn(n, env)
	case *ast.ExpressionStatement:
		c.visitExpression(n.Value, env)
	case *ast.Variable:
		c.visitVariable(n, env)
	case *ast.Function:
		if c.currentFunction != nil {
			c.errorf(n.Position, "nested function '%s' is not allowed", n.Name)
			return
		}
		c.visitFunction(n, env)
	default:
		c.errorf(stmt.Pos(), "internal error: unhandled statement %T", stmt)
	}
}

func (c *Checker) visitAssignment(n *ast.Assignment, env *SymbolTable) {
	switch target := n.Target.(type) {
	case *ast.NamedLocation:
		sym, ok := env.Resolve(target.Name)
		if !ok {
			c.errorf(target.Position, "undeclared variable '%s'", target.Name)
			c.visitExpression(n.Value, env)
			return
		}
		var declType types.GoxType
		readOnly := false
		switch decl := sym.(type) {
		case *ast.Parameter:
			readOnly = true
			declType = decl.Type
		case *ast.Variable:
			readOnly = decl.IsConst
			declType = decl.Type
		default:
			c.errorf(n.Position, "'%s' is not an assignable variable", target.Name)
		}
		target.SetResolvedType(declType)
		if readOnly {
			c.errorf(n.Position, "cannot assign to constant or parameter '%s'", target.Name)
			c.visitExpression(n.Value, env)
			return
		}
		exprType := c.visitExpression(n.Value, env)
		if declType != types.Invalid && exprType != types.Invalid && !sameType(declType, exprType) {
			c.errorf(n.Position, "cannot assign type '%s' to '%s'", exprType, declType)
		}
	case *ast.MemoryLocation:
		c.visitExpression(target.Address, env)
		target.SetResolvedType(types.Int)
		c.visitExpression(n.Value, env)
	}
}

// sameType compares two types by their case-insensitive type-name string
// for assignment compatibility; GoxType.String() is already lowercase so
// the comparison is trivially case-insensitive.
func sameType(a, b types.GoxType) bool {
	return a.String() == b.String()
}

func (c *Checker) visitIf(n *ast.If, env *SymbolTable) {
	condType := c.visitExpression(n.Condition, env)
	if condType != types.Invalid && condType != types.Bool {
		c.errorf(n.Position, "if condition must be bool")
	}
	for _, stmt := range n.Then {
		c.visitStatement(stmt, env)
	}
	for _, stmt := range n.Else {
		c.visitStatement(stmt, env)
	}
}

func (c *Checker) visitWhile(n *ast.While, env *SymbolTable) {
	condType := c.visitExpression(n.Condition, env)
	if condType != types.Invalid && condType != types.Bool {
		c.errorf(n.Position, "while condition must be bool")
	}
	c.loopDepth++
	for _, stmt := range n.Body {
		c.visitStatement(stmt, env)
	}
	c.loopDepth--
}

func (c *Checker) visitReturn(n *ast.Return, env *SymbolTable) {
	if c.currentFunction == nil {
		c.errorf(n.Position, "'return' outside a function")
		c.visitExpression(n.Value, env)
		return
	}
	exprType := c.visitExpression(n.Value, env)
	wantType := c.currentFunction.ReturnType
	if exprType != types.Invalid && wantType != types.Invalid && !sameType(exprType, wantType) {
		c.errorf(n.Position, "function '%s' must return '%s', but returns '%s'", c.currentFunction.Name, wantType, exprType)
	}
}

func (c *Checker) visitVariable(n *ast.Variable, env *SymbolTable) {
	if n.IsConst && n.Init == nil {
		c.errorf(n.Position, "constant '%s' requires an initializer", n.Name)
	}
	if n.Init != nil {
		exprType := c.visitExpression(n.Init, env)
		if n.Type != types.Invalid && exprType != types.Invalid && !sameType(n.Type, exprType) {
			c.errorf(n.Position, "incompatible type in initialization of variable '%s'", n.Name)
		} else if n.Type == types.Invalid {
			n.Type = exprType
		}
	}
	// Globals are already defined by Check's hoisting pass, so this is a
	// no-op for them; locals are defined here, when their declaration is
	// visited (visitFunction only defines the parameters).
	if !env.DefinedLocally(n.Name) {
		env.Define(n.Name, n)
	}
}

func (c *Checker) visitFunction(n *ast.Function, env *SymbolTable) {
	funcEnv := NewEnclosedSymbolTable(env)
	for _, param := range n.Params {
		funcEnv.Define(param.Name, param)
	}
	prevFunction := c.currentFunction
	c.currentFunction = n
	for _, stmt := range n.Body {
		c.visitStatement(stmt, funcEnv)
	}
	c.currentFunction = prevFunction
}

// visitExpression type-checks expr, annotates it with its resolved type
// (SUPPLEMENTED FEATURES #5), and returns that type. It returns
// types.Invalid (without emitting a duplicate diagnostic) when a sub-
// expression already failed, so one bad leaf does not cascade into a storm
// of unrelated errors.
func (c *Checker) visitExpression(expr ast.Expression, env *SymbolTable) types.GoxType {
	var result types.GoxType
	switch n := expr.(type) {
	case *ast.Integer:
		result = types.Int
	case *ast.Float:
		result = types.Float
	case *ast.Char:
		result = types.Char
	case *ast.Bool:
		result = types.Bool
	case *ast.BinOp:
		result = c.visitBinOp(n, env)
	case *ast.UnaryOp:
		result = c.visitUnaryOp(n, env)
	case *ast.TypeCast:
		valueType := c.visitExpression(n.Value, env)
		switch {
		case valueType == types.Invalid:
			result = types.Invalid
		case !types.CheckCast(n.Target, valueType):
			c.errorf(n.Position, "invalid cast to '%s'", n.Target)
			result = types.Invalid
		default:
			result = n.Target
		}
	case *ast.NamedLocation:
		result = c.visitNamedLocation(n, env)
	case *ast.MemoryLocation:
		c.visitExpression(n.Address, env)
		result = types.Int
	case *ast.FunctionCall:
		result = c.visitFunctionCall(n, env)
	default:
		c.errorf(expr.Pos(), "internal error: unhandled expression %T", expr)
		result = types.Invalid
	}
	expr.SetResolvedType(result)
	return result
}

func (c *Checker) visitBinOp(n *ast.BinOp, env *SymbolTable) types.GoxType {
	left := c.visitExpression(n.Left, env)
	right := c.visitExpression(n.Right, env)
	if left == types.Invalid || right == types.Invalid {
		return types.Invalid
	}
	result := types.CheckBinOp(n.Op, left, right)
	if result == types.Invalid {
		c.errorf(n.Position, "invalid binary operation: %s %s %s", left, n.Op, right)
	}
	return result
}

func (c *Checker) visitUnaryOp(n *ast.UnaryOp, env *SymbolTable) types.GoxType {
	operand := c.visitExpression(n.Operand, env)
	if operand == types.Invalid {
		return types.Invalid
	}
	result := types.CheckUnaryOp(n.Op, operand)
	if result == types.Invalid {
		c.errorf(n.Position, "invalid unary operator: %s %s", n.Op, operand)
	}
	return result
}

func (c *Checker) visitNamedLocation(n *ast.NamedLocation, env *SymbolTable) types.GoxType {
	sym, ok := env.Resolve(n.Name)
	if !ok {
		c.errorf(n.Position, "undeclared name: %s", n.Name)
		return types.Invalid
	}
	switch decl := sym.(type) {
	case *ast.Variable:
		return decl.Type
	case *ast.Parameter:
		return decl.Type
	default:
		c.errorf(n.Position, "'%s' does not name a variable", n.Name)
		return types.Invalid
	}
}

func (c *Checker) visitFunctionCall(n *ast.FunctionCall, env *SymbolTable) types.GoxType {
	sym, ok := env.Resolve(n.Name)
	if !ok {
		c.errorf(n.Position, "undefined function: %s", n.Name)
		for _, arg := range n.Args {
			c.visitExpression(arg, env)
		}
		return types.Invalid
	}
	fn, ok := sym.(*ast.Function)
	if !ok {
		c.errorf(n.Position, "'%s' is not a function", n.Name)
		for _, arg := range n.Args {
			c.visitExpression(arg, env)
		}
		return types.Invalid
	}
	if len(n.Args) != len(fn.Params) {
		c.errorf(n.Position, "wrong argument count for '%s': expected %d, got %d", n.Name, len(fn.Params), len(n.Args))
	}
	count := len(n.Args)
	if len(fn.Params) < count {
		count = len(fn.Params)
	}
	for i := 0; i < count; i++ {
		argType := c.visitExpression(n.Args[i], env)
		paramType := fn.Params[i].Type
		if argType != types.Invalid && paramType != types.Invalid && !sameType(argType, paramType) {
			c.errorf(n.Args[i].Pos(), "incompatible argument in call to '%s': expected '%s', got '%s'", n.Name, paramType, argType)
		}
	}
	for i := count; i < len(n.Args); i++ {
		c.visitExpression(n.Args[i], env)
	}
	return fn.ReturnType
}

package ir

import (
	"fmt"

	"github.com/cwbudde/goxlang/internal/ast"
	"github.com/cwbudde/goxlang/internal/types"
	"github.com/cwbudde/goxlang/pkg/token"
)

// Generator lowers a semantically validated AST into a Module. It is only
// safe to run after internal/semantic.Checker.Check has reported zero
// diagnostics: the IR stage is skipped entirely if any diagnostic is
// present.
//
// Grounded on the Python reference's ircode.py IRCode.gencode/visit_* shape:
// same synthetic-`main` wrapping of global initializers plus free-standing
// top-level statements, same per-construct visitor dispatch. Unlike
// ircode.py, binary/unary/cast lowering here reads the operand's
// ast.Expression.ResolvedType() set by the checker instead of hardcoding
// 'int' (ircode.py's own "# Simplificación" comment on visit_BinOp marks
// that shortcut; see DESIGN.md for the fix).
type Generator struct {
	module  *Module
	current *Function
}

// NewGenerator constructs a Generator.
func NewGenerator() *Generator {
	return &Generator{module: NewModule()}
}

func irType(t types.GoxType) Type {
	if t == types.Float {
		return F
	}
	return I
}

// Generate lowers program's top-level statements into a Module. program
// must have already passed semantic checking.
func (g *Generator) Generate(program []ast.Statement) *Module {
	g.module = NewModule()

	main := &Function{Name: "main", ReturnType: I, Locals: make(map[string]Type)}
	g.module.AddFunction(main)

	// Register every global up front so forward-referencing function bodies
	// resolve GLOBAL_GET/GLOBAL_SET correctly regardless of lowering order.
	for _, stmt := range program {
		if v, ok := stmt.(*ast.Variable); ok {
			g.module.AddGlobal(&Global{Name: v.Name, Type: irType(v.Type)})
		}
	}

	// Lower function bodies first (order does not matter: they only
	// reference globals/functions by name, already registered above/below).
	for _, stmt := range program {
		if fn, ok := stmt.(*ast.Function); ok {
			g.lowerFunctionDecl(fn)
		}
	}

	// Synthetic main: global initializers in declaration order, then
	// free-standing top-level statements in source order, then `CONSTI 0; RET`.
	g.current = main
	for _, stmt := range program {
		if v, ok := stmt.(*ast.Variable); ok {
			g.lowerGlobalInit(v)
		}
	}
	for _, stmt := range program {
		switch stmt.(type) {
		case *ast.Variable, *ast.Function:
			continue
		default:
			g.lowerStatement(stmt)
		}
	}
	g.emit(CONSTI, int64(0))
	g.emit(RET, nil)

	return g.module
}

func (g *Generator) emit(op OpCode, operand any) {
	g.current.Code = append(g.current.Code, Instruction{Op: op, Operand: operand})
}

func (g *Generator) lowerGlobalInit(v *ast.Variable) {
	if v.Init == nil {
		return
	}
	g.lowerExpression(v.Init)
	g.emit(GLOBAL_SET, v.Name)
}

func (g *Generator) lowerFunctionDecl(fn *ast.Function) {
	irFn := &Function{
		Name:       fn.Name,
		ReturnType: irType(fn.ReturnType),
		Imported:   fn.Imported,
		Locals:     make(map[string]Type),
	}
	for _, param := range fn.Params {
		irFn.ParamNames = append(irFn.ParamNames, param.Name)
		irFn.ParamTypes = append(irFn.ParamTypes, irType(param.Type))
		irFn.Locals[param.Name] = irType(param.Type)
	}
	g.module.AddFunction(irFn)

	if fn.Imported {
		// Declared but not executable: an `import func` parses but produces
		// no executable body.
		return
	}

	prev := g.current
	g.current = irFn
	for _, stmt := range fn.Body {
		g.lowerStatement(stmt)
	}
	// The checker accepts a non-void function whose body doesn't end in
	// `return` (e.g. one that only prints), so every function needs a
	// trailing fallback RET the way synthetic main gets one in Generate,
	// or the VM falls off the end of Code with no return value on the stack.
	g.emit(CONSTI, int64(0))
	g.emit(RET, nil)
	g.current = prev
}

func (g *Generator) isLocal(name string) bool {
	_, ok := g.current.Locals[name]
	return ok
}

func (g *Generator) lowerStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.Assignment:
		g.lowerAssignment(n)
	case *ast.Print:
		g.lowerPrint(n)
	case *ast.If:
		g.lowerIf(n)
	case *ast.While:
		g.lowerWhile(n)
	case *ast.Break:
		g.emit(BREAK, nil)
	case *ast.Continue:
		g.emit(CONTINUE, nil)
	case *ast.Return:
		g.lowerExpression(n.Value)
		g.emit(RET, nil)
	case *ast.ExpressionStatement:
		g.lowerExpression(n.Value)
	case *ast.Variable:
		g.lowerLocalVariable(n)
	case *ast.Function:
		// Nested function declarations are rejected by the semantic checker;
		// top-level Functions are lowered by lowerFunctionDecl.
		panic(fmt.Sprintf("internal error: unexpected nested function %q", n.Name))
	default:
		panic(fmt.Sprintf("internal error: unhandled statement %T", stmt))
	}
}

func (g *Generator) lowerLocalVariable(v *ast.Variable) {
	g.current.Locals[v.Name] = irType(v.Type)
	if v.Init != nil {
		g.lowerExpression(v.Init)
		g.emit(LOCAL_SET, v.Name)
	}
}

func (g *Generator) lowerAssignment(a *ast.Assignment) {
	switch target := a.Target.(type) {
	case *ast.NamedLocation:
		g.lowerExpression(a.Value)
		if g.isLocal(target.Name) {
			g.emit(LOCAL_SET, target.Name)
		} else {
			g.emit(GLOBAL_SET, target.Name)
		}
	case *ast.MemoryLocation:
		g.lowerExpression(a.Value)
		g.lowerExpression(target.Address)
		g.emit(POKEI, nil)
	default:
		panic(fmt.Sprintf("internal error: unhandled assignment target %T", a.Target))
	}
}

func (g *Generator) lowerPrint(p *ast.Print) {
	g.lowerExpression(p.Value)
	switch p.Value.ResolvedType() {
	case types.Char:
		g.emit(PRINTB, nil)
	case types.Float:
		g.emit(PRINTF, nil)
	default:
		g.emit(PRINTI, nil)
	}
}

func (g *Generator) lowerIf(n *ast.If) {
	g.lowerExpression(n.Condition)
	g.emit(IF, nil)
	for _, stmt := range n.Then {
		g.lowerStatement(stmt)
	}
	g.emit(ELSE, nil)
	for _, stmt := range n.Else {
		g.lowerStatement(stmt)
	}
	g.emit(ENDIF, nil)
}

// lowerWhile emits the shape `LOOP cond CBREAK body ENDLOOP`, where CBREAK
// exits the loop when the condition is false (the exit-on-false resolution
// implemented in internal/vm).
func (g *Generator) lowerWhile(n *ast.While) {
	g.emit(LOOP, nil)
	g.lowerExpression(n.Condition)
	g.emit(CBREAK, nil)
	for _, stmt := range n.Body {
		g.lowerStatement(stmt)
	}
	g.emit(ENDLOOP, nil)
}

func (g *Generator) lowerExpression(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.Integer:
		g.emit(CONSTI, n.Value)
	case *ast.Float:
		g.emit(CONSTF, n.Value)
	case *ast.Char:
		g.emit(CONSTI, int64(n.Value))
	case *ast.Bool:
		if n.Value {
			g.emit(CONSTI, int64(1))
		} else {
			g.emit(CONSTI, int64(0))
		}
	case *ast.BinOp:
		g.lowerBinOp(n)
	case *ast.UnaryOp:
		g.lowerUnaryOp(n)
	case *ast.TypeCast:
		g.lowerTypeCast(n)
	case *ast.NamedLocation:
		if g.isLocal(n.Name) {
			g.emit(LOCAL_GET, n.Name)
		} else {
			g.emit(GLOBAL_GET, n.Name)
		}
	case *ast.MemoryLocation:
		g.lowerExpression(n.Address)
		g.emit(PEEKI, nil)
	case *ast.FunctionCall:
		for _, arg := range n.Args {
			g.lowerExpression(arg)
		}
		g.emit(CALL, n.Name)
	default:
		panic(fmt.Sprintf("internal error: unhandled expression %T", expr))
	}
}

type binOpKey struct {
	t  types.GoxType
	op token.Type
}

// binOpTable picks an opcode from a (left_type, op, right_type) table. Since
// the semantic checker already guarantees left/right agree (CheckBinOp),
// keying on the left operand's type alone is sufficient; LTI..NEI are
// reused for char comparisons.
var binOpTable = map[binOpKey]OpCode{
	{types.Int, token.PLUS}: ADDI, {types.Float, token.PLUS}: ADDF,
	{types.Int, token.MINUS}: SUBI, {types.Float, token.MINUS}: SUBF,
	{types.Int, token.TIMES}: MULI, {types.Float, token.TIMES}: MULF,
	{types.Int, token.DIVIDE}: DIVI, {types.Float, token.DIVIDE}: DIVF,
	{types.Int, token.LT}: LTI, {types.Float, token.LT}: LTF, {types.Char, token.LT}: LTI,
	{types.Int, token.LE}: LEI, {types.Float, token.LE}: LEF, {types.Char, token.LE}: LEI,
	{types.Int, token.GT}: GTI, {types.Float, token.GT}: GTF, {types.Char, token.GT}: GTI,
	{types.Int, token.GE}: GEI, {types.Float, token.GE}: GEF, {types.Char, token.GE}: GEI,
	{types.Int, token.EQ}: EQI, {types.Float, token.EQ}: EQF, {types.Char, token.EQ}: EQI,
	{types.Int, token.NE}: NEI, {types.Float, token.NE}: NEF, {types.Char, token.NE}: NEI,
	{types.Bool, token.LAND}: ANDI,
	{types.Bool, token.LOR}: ORI,
	{types.Bool, token.EQ}: EQI,
	{types.Bool, token.NE}: NEI,
}

func (g *Generator) lowerBinOp(n *ast.BinOp) {
	g.lowerExpression(n.Left)
	g.lowerExpression(n.Right)
	// The operand type, not the result type, selects the opcode variant:
	// relational ops resolve to bool but still need to know whether their
	// operands were int/float/char. n.Left.ResolvedType() carries exactly
	// that (see SUPPLEMENTED FEATURES #5).
	operandType := n.Left.ResolvedType()
	op, ok := binOpTable[binOpKey{operandType, n.Op}]
	if !ok {
		panic(fmt.Sprintf("internal error: no opcode for %s %s (operand type %s) -- should have been rejected by the semantic checker", operandType, n.Op, operandType))
	}
	g.emit(op, nil)
}

func (g *Generator) lowerUnaryOp(n *ast.UnaryOp) {
	switch n.Op {
	case token.PLUS:
		g.lowerExpression(n.Operand)
	case token.MINUS:
		g.lowerExpression(n.Operand)
		if n.Operand.ResolvedType() == types.Float {
			g.emit(CONSTF, -1.0)
			g.emit(MULF, nil)
		} else {
			g.emit(CONSTI, int64(-1))
			g.emit(MULI, nil)
		}
	case token.GROW:
		g.lowerExpression(n.Operand)
		g.emit(GROW, nil)
	default:
		panic(fmt.Sprintf("internal error: unhandled unary operator %s", n.Op))
	}
}

func (g *Generator) lowerTypeCast(n *ast.TypeCast) {
	g.lowerExpression(n.Value)
	source := n.Value.ResolvedType()
	switch {
	case source == types.Int && n.Target == types.Float:
		g.emit(ITOF, nil)
	case source == types.Float && n.Target == types.Int:
		g.emit(FTOI, nil)
	default:
		// Same-width scalar conversions (int<->char, int<->bool, and the
		// identity cast) share the IR integer representation and emit no
		// instruction.
	}
}

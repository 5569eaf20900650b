// Package ast defines the GoxLang abstract syntax tree.
//
// Nodes are expressed as a closed set of concrete types implementing one of
// the Statement, Expression, or Location interfaces. Each interface carries
// an unexported marker method so the set of implementers is closed to this
// package, so a type switch over a Statement or Expression can list every
// variant the way a sum-type match would in a language with native variants
// (CWBudde/go-dws's AST instead uses a reflection-based visitor; see
// DESIGN.md). Go does not check such a switch for completeness; the switches
// in this module end in a default case.
package ast

import (
	"github.com/cwbudde/goxlang/internal/types"
	"github.com/cwbudde/goxlang/pkg/token"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Statement is implemented by every statement-position node, including the
// two declaration forms (Variable, Function) that may also appear at top
// level.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression-position node. Every
// Expression carries a ResolvedType slot, set by the semantic checker's
// second pass and read back by the IR generator instead of recomputing or
// assuming a type (see SUPPLEMENTED FEATURES #5).
type Expression interface {
	Node
	expressionNode()
	ResolvedType() types.GoxType
	SetResolvedType(types.GoxType)
}

// Location is an assignable Expression: the target of an Assignment, or (for
// MemoryLocation) also valid on the right-hand side as a dereferencing read.
type Location interface {
	Expression
	locationNode()
}

// ExprBase is embedded by every Expression to supply the ResolvedType slot.
// It is exported so that other packages (parser, semantic) can construct
// expression nodes directly with a keyed struct literal.
type ExprBase struct {
	Position token.Position
	Type     types.GoxType
}

// NewExprBase constructs an ExprBase at pos with an as-yet-unresolved type.
func NewExprBase(pos token.Position) ExprBase {
	return ExprBase{Position: pos, Type: types.Invalid}
}

func (e *ExprBase) Pos() token.Position             { return e.Position }
func (e *ExprBase) expressionNode()                 {}
func (e *ExprBase) ResolvedType() types.GoxType      { return e.Type }
func (e *ExprBase) SetResolvedType(t types.GoxType) { e.Type = t }

// ---- Statements ----

// Assignment stores Expression into Target.
type Assignment struct {
	Position token.Position
	Target   Location
	Value    Expression
}

func (a *Assignment) Pos() token.Position { return a.Position }
func (a *Assignment) statementNode()      {}

// Print evaluates Value and writes it to standard output.
type Print struct {
	Position token.Position
	Value    Expression
}

func (p *Print) Pos() token.Position { return p.Position }
func (p *Print) statementNode()      {}

// If is structured conditional branching; Else is nil when the source has no
// else branch or an empty one.
type If struct {
	Position  token.Position
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (i *If) Pos() token.Position { return i.Position }
func (i *If) statementNode()      {}

// While is structured pretest looping.
type While struct {
	Position  token.Position
	Condition Expression
	Body      []Statement
}

func (w *While) Pos() token.Position { return w.Position }
func (w *While) statementNode()      {}

// Break exits the nearest enclosing While.
type Break struct {
	Position token.Position
}

func (b *Break) Pos() token.Position { return b.Position }
func (b *Break) statementNode()      {}

// Continue restarts the nearest enclosing While's condition test.
type Continue struct {
	Position token.Position
}

func (c *Continue) Pos() token.Position { return c.Position }
func (c *Continue) statementNode()      {}

// Return exits the current function with Value.
type Return struct {
	Position token.Position
	Value    Expression
}

func (r *Return) Pos() token.Position { return r.Position }
func (r *Return) statementNode()      {}

// ExpressionStatement is a bare expression in statement position, typically
// a FunctionCall invoked for its side effects with its result discarded.
type ExpressionStatement struct {
	Position token.Position
	Value    Expression
}

func (e *ExpressionStatement) Pos() token.Position { return e.Position }
func (e *ExpressionStatement) statementNode()      {}

// ---- Declarations (also Statements) ----

// Variable declares a global or local. Type may be types.Invalid if it was
// omitted in source, in which case the checker infers it from Init and
// writes the inferred type back here.
type Variable struct {
	Position token.Position
	Name     string
	Type     types.GoxType
	Init     Expression
	IsConst  bool
}

func (v *Variable) Pos() token.Position { return v.Position }
func (v *Variable) statementNode()      {}

// Parameter is a single (name, type) entry in a Function's parameter list.
// It is not itself a Statement or Expression; it only appears inside Function.
type Parameter struct {
	Position token.Position
	Name     string
	Type     types.GoxType
}

func (p *Parameter) Pos() token.Position { return p.Position }

// Function declares a named, typed, callable unit. Imported marks a
// function declared with the `import` qualifier: it parses and type-checks
// like any other function but the IR generator emits no callable body for
// it — an import func parses but produces no executable body.
type Function struct {
	Position   token.Position
	Name       string
	Params     []*Parameter
	ReturnType types.GoxType
	Body       []Statement
	Imported   bool
}

func (f *Function) Pos() token.Position { return f.Position }
func (f *Function) statementNode()      {}

// ---- Expressions ----

// Integer is a decimal integer literal.
type Integer struct {
	ExprBase
	Value int64
}

// Float is a decimal floating point literal.
type Float struct {
	ExprBase
	Value float64
}

// Char is a character literal; Value holds the Unicode code point.
type Char struct {
	ExprBase
	Value rune
}

// Bool is a `true`/`false` literal.
type Bool struct {
	ExprBase
	Value bool
}

// BinOp is a binary arithmetic, relational, or logical expression.
type BinOp struct {
	ExprBase
	Op    token.Type
	Left  Expression
	Right Expression
}

// UnaryOp is a prefix `+`, `-`, or `^` (grow) expression.
type UnaryOp struct {
	ExprBase
	Op      token.Type
	Operand Expression
}

// TypeCast converts Value to Target, e.g. `int(1.5)`.
type TypeCast struct {
	ExprBase
	Target types.GoxType
	Value  Expression
}

// FunctionCall invokes the function named Name with Args in source order.
type FunctionCall struct {
	ExprBase
	Name string
	Args []Expression
}

// ---- Locations ----

// NamedLocation refers to a declared variable or parameter by name.
type NamedLocation struct {
	ExprBase
	Name string
}

func (n *NamedLocation) locationNode() {}

// MemoryLocation dereferences Address: ``` `e ``` reads the value stored at
// address e, or (in assignment position) writes it.
type MemoryLocation struct {
	ExprBase
	Address Expression
}

func (m *MemoryLocation) locationNode() {}

// Package parser implements a recursive-descent, precedence-climbing parser
// that turns a GoxLang token stream into an internal/ast tree.
//
// The parser fails fast: the first mismatch returns a structured Error
// immediately rather than accumulating diagnostics and recovering. This is a
// deliberate departure from CWBudde/go-dws's error-accumulating,
// cursor-backed parser (internal/parser/cursor.go) — DWScript's parser
// recovers so an IDE can report many errors per keystroke; GoxLang's
// batch-compiler contract only needs the first.
package parser

import (
	"fmt"

	"github.com/cwbudde/goxlang/internal/ast"
	"github.com/cwbudde/goxlang/internal/lexer"
	"github.com/cwbudde/goxlang/internal/types"
	"github.com/cwbudde/goxlang/pkg/token"
)

// Error is a single syntax error: an expected construct was not found at
// the current token.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parser consumes tokens from a Lexer one at a time, keeping a single
// token of lookahead.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token
}

// New constructs a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.cur = p.lex.Next()
	p.peek = p.lex.Next()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: p.cur.Pos}
}

func (p *Parser) expect(typ token.Type, what string) (token.Token, error) {
	if p.cur.Type != typ {
		return token.Token{}, p.errorf("expected %s", what)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// Parse consumes the entire token stream and returns the top-level
// statement list, or the first syntax error encountered.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.cur.Type != token.EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch p.cur.Type {
	case token.IDENT:
		if p.peek.Type == token.ASSIGN {
			return p.assignment()
		}
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, "';' after expression"); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Position: expr.Pos(), Value: expr}, nil
	case token.DEREF:
		return p.assignment()
	case token.VAR, token.CONST:
		return p.varDecl()
	case token.IMPORT, token.FUNC:
		return p.funcDecl()
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.BREAK:
		pos := p.cur.Pos
		p.advance()
		if _, err := p.expect(token.SEMI, "';' after break"); err != nil {
			return nil, err
		}
		return &ast.Break{Position: pos}, nil
	case token.CONTINUE:
		pos := p.cur.Pos
		p.advance()
		if _, err := p.expect(token.SEMI, "';' after continue"); err != nil {
			return nil, err
		}
		return &ast.Continue{Position: pos}, nil
	case token.RETURN:
		pos := p.cur.Pos
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, "';' after return"); err != nil {
			return nil, err
		}
		return &ast.Return{Position: pos, Value: expr}, nil
	case token.PRINT:
		pos := p.cur.Pos
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, "';' after print"); err != nil {
			return nil, err
		}
		return &ast.Print{Position: pos, Value: expr}, nil
	default:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, "';' after expression"); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Position: expr.Pos(), Value: expr}, nil
	}
}

func (p *Parser) assignment() (ast.Statement, error) {
	loc, err := p.location()
	if err != nil {
		return nil, err
	}
	pos := loc.Pos()
	if _, err := p.expect(token.ASSIGN, "'=' in assignment"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI, "';' after assignment"); err != nil {
		return nil, err
	}
	return &ast.Assignment{Position: pos, Target: loc, Value: value}, nil
}

func (p *Parser) location() (ast.Location, error) {
	if p.cur.Type == token.DEREF {
		pos := p.cur.Pos
		p.advance()
		addr, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.MemoryLocation{ExprBase: ast.NewExprBase(pos), Address: addr}, nil
	}
	name, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	return &ast.NamedLocation{ExprBase: ast.NewExprBase(name.Pos), Name: name.Literal}, nil
}

func (p *Parser) varDecl() (ast.Statement, error) {
	pos := p.cur.Pos
	isConst := p.cur.Type == token.CONST
	p.advance()
	name, err := p.expect(token.IDENT, "variable name")
	if err != nil {
		return nil, err
	}
	declType := types.Invalid
	if t, ok := types.FromKeyword(p.cur.Type); ok {
		declType = t
		p.advance()
	}
	var init ast.Expression
	if p.cur.Type == token.ASSIGN {
		p.advance()
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI, "';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.Variable{Position: pos, Name: name.Literal, Type: declType, Init: init, IsConst: isConst}, nil
}

func (p *Parser) funcDecl() (ast.Statement, error) {
	pos := p.cur.Pos
	imported := false
	if p.cur.Type == token.IMPORT {
		imported = true
		p.advance()
	}
	if _, err := p.expect(token.FUNC, "'func'"); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	returnType, ok := types.FromKeyword(p.cur.Type)
	if !ok {
		return nil, p.errorf("expected explicit return type after function parameters")
	}
	p.advance()
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Position:   pos,
		Name:       name.Literal,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Imported:   imported,
	}, nil
}

func (p *Parser) parameters() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	if p.cur.Type != token.IDENT {
		return params, nil
	}
	for {
		name, err := p.expect(token.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		typ, ok := types.FromKeyword(p.cur.Type)
		if !ok {
			return nil, p.errorf("expected type for parameter")
		}
		p.advance()
		params = append(params, &ast.Parameter{Position: name.Pos, Name: name.Literal, Type: typ})
		if p.cur.Type != token.COMMA {
			break
		}
		p.advance()
	}
	return params, nil
}

// block parses statements until the closing brace, which it consumes.
func (p *Parser) block() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStmt() (ast.Statement, error) {
	pos := p.cur.Pos
	p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	thenBranch, err := p.block()
	if err != nil {
		return nil, err
	}
	var elseBranch []ast.Statement
	if p.cur.Type == token.ELSE {
		p.advance()
		if _, err := p.expect(token.LBRACE, "'{' after else"); err != nil {
			return nil, err
		}
		elseBranch, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Position: pos, Condition: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) whileStmt() (ast.Statement, error) {
	pos := p.cur.Pos
	p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.While{Position: pos, Condition: cond, Body: body}, nil
}

// ---- expressions, lowest to highest precedence ----

func (p *Parser) expression() (ast.Expression, error) {
	return p.binary([]token.Type{token.LOR}, p.andTerm)
}

func (p *Parser) andTerm() (ast.Expression, error) {
	return p.binary([]token.Type{token.LAND}, p.relTerm)
}

func (p *Parser) relTerm() (ast.Expression, error) {
	return p.binary([]token.Type{token.LT, token.GT, token.LE, token.GE, token.EQ, token.NE}, p.addTerm)
}

func (p *Parser) addTerm() (ast.Expression, error) {
	return p.binary([]token.Type{token.PLUS, token.MINUS}, p.factor)
}

func (p *Parser) factorTerm() (ast.Expression, error) {
	return p.binary([]token.Type{token.TIMES, token.DIVIDE}, p.unary)
}

// factor is aliased to factorTerm as the next rule below addTerm, matching
// go-dws's precedence-climbing shape (one binary helper per level).
func (p *Parser) factor() (ast.Expression, error) {
	return p.factorTerm()
}

func (p *Parser) binary(ops []token.Type, next func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for oneOf(p.cur.Type, ops) {
		opTok := p.cur
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{ExprBase: ast.NewExprBase(opTok.Pos), Op: opTok.Type, Left: left, Right: right}
	}
	return left, nil
}

func oneOf(t token.Type, ops []token.Type) bool {
	for _, op := range ops {
		if t == op {
			return true
		}
	}
	return false
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.cur.Type == token.PLUS || p.cur.Type == token.MINUS || p.cur.Type == token.GROW {
		opTok := p.cur
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{ExprBase: ast.NewExprBase(opTok.Pos), Op: opTok.Type, Operand: operand}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.cur
	switch tok.Type {
	case token.INT:
		p.advance()
		var v int64
		if _, err := fmt.Sscanf(tok.Literal, "%d", &v); err != nil {
			return nil, &Error{Message: "malformed integer literal", Pos: tok.Pos}
		}
		return &ast.Integer{ExprBase: ast.NewExprBase(tok.Pos), Value: v}, nil
	case token.FLOAT:
		p.advance()
		var v float64
		if _, err := fmt.Sscanf(tok.Literal, "%g", &v); err != nil {
			return nil, &Error{Message: "malformed float literal", Pos: tok.Pos}
		}
		return &ast.Float{ExprBase: ast.NewExprBase(tok.Pos), Value: v}, nil
	case token.CHAR:
		p.advance()
		r, err := decodeCharLiteral(tok.Literal)
		if err != nil {
			return nil, &Error{Message: err.Error(), Pos: tok.Pos}
		}
		return &ast.Char{ExprBase: ast.NewExprBase(tok.Pos), Value: r}, nil
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.Bool{ExprBase: ast.NewExprBase(tok.Pos), Value: tok.Type == token.TRUE}, nil
	case token.LPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.INT_TYPE, token.FLOAT_TYPE, token.CHAR_TYPE, token.BOOL_TYPE:
		target, _ := types.FromKeyword(tok.Type)
		p.advance()
		if _, err := p.expect(token.LPAREN, "'(' for type cast"); err != nil {
			return nil, err
		}
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')' in type cast"); err != nil {
			return nil, err
		}
		return &ast.TypeCast{ExprBase: ast.NewExprBase(tok.Pos), Target: target, Value: expr}, nil
	case token.IDENT:
		if p.peek.Type == token.LPAREN {
			return p.functionCall()
		}
		p.advance()
		return &ast.NamedLocation{ExprBase: ast.NewExprBase(tok.Pos), Name: tok.Literal}, nil
	case token.DEREF:
		p.advance()
		addr, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.MemoryLocation{ExprBase: ast.NewExprBase(tok.Pos), Address: addr}, nil
	default:
		return nil, p.errorf("unrecognized expression")
	}
}

func (p *Parser) functionCall() (ast.Expression, error) {
	name, err := p.expect(token.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if p.cur.Type != token.RPAREN {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.cur.Type == token.COMMA {
			p.advance()
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{ExprBase: ast.NewExprBase(name.Pos), Name: name.Literal, Args: args}, nil
}

func decodeCharLiteral(lit string) (rune, error) {
	if len(lit) >= 2 && lit[0] == '\\' && lit[1] == 'x' {
		var v int64
		if _, err := fmt.Sscanf(lit[2:], "%x", &v); err != nil {
			return 0, fmt.Errorf("malformed \\x escape in character literal")
		}
		return rune(v), nil
	}
	runes := []rune(lit)
	if len(runes) != 1 {
		return 0, fmt.Errorf("character literal must contain exactly one character")
	}
	return runes[0], nil
}
